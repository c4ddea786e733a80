package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gmlexport/pkg/cache"
	"github.com/matzehuels/gmlexport/pkg/config"
	"github.com/matzehuels/gmlexport/pkg/server"
)

// serveCommand creates the serve command running the HTTP export endpoint.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve GML export over HTTP",
		Long: `Run an HTTP server converting posted graphs into GML.

  POST /v1/export?param=vertex-labels&creator=name   JSON or YAML body
  GET  /v1/parameters
  GET  /healthz

The server stops gracefully on interrupt.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			srv, err := server.New(cfg, loggerFromContext(cmd.Context()))
			if err != nil {
				return err
			}
			defer srv.Close()

			printInfo(c.stderr, "Serving on %s", StyleHighlight.Render(cfg.Server.Addr))
			if cfg.Server.Cache.Enabled {
				printKeyValue(c.stderr, "cache", cacheDescription(cfg))
			}
			return srv.ListenAndServe(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, "+`"127.0.0.1:8080"`+")")
	return cmd
}

func cacheDescription(cfg *config.Config) string {
	cc := cfg.Server.Cache
	size := cc.MaxEntries
	if size == 0 {
		size = cache.DefaultMaxEntries
	}
	where := fmt.Sprintf("memory, %d entries", size)
	if cc.Dir != "" {
		where = cc.Dir
	}
	if cc.TTL.Duration > 0 {
		return fmt.Sprintf("%s, ttl %s", where, cc.TTL.Duration)
	}
	return where
}
