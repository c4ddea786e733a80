package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// paramsCommand creates the params command listing export parameters and
// whether the loaded config switches them on.
func (c *CLI) paramsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "params",
		Short: "List export parameters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			enabled, err := cfg.Parameters()
			if err != nil {
				return err
			}
			on := make(map[string]bool, len(enabled))
			for _, p := range enabled {
				on[p.String()] = true
			}

			fmt.Fprintln(c.stdout, StyleTitle.Render("Export parameters"))
			for _, pf := range parameterFlags {
				printParameter(c.stdout, pf.param.String(), on[pf.param.String()], pf.usage+" (--"+pf.flag+")")
			}
			printKeyValue(c.stdout, "creator", cfg.Export.Creator)
			return nil
		},
	}
}
