package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gmlexport/pkg/config"
	"github.com/matzehuels/gmlexport/pkg/gml"
	gmlio "github.com/matzehuels/gmlexport/pkg/io"
)

// parameterFlags maps each export parameter to its command-line switch.
var parameterFlags = []struct {
	param gml.Parameter
	flag  string
	usage string
}{
	{gml.ExportVertexLabels, "vertex-labels", "write a label line for every node"},
	{gml.ExportEdgeLabels, "edge-labels", "write a label line for every edge"},
	{gml.ExportEdgeWeights, "edge-weights", "write edge weights (weighted graphs only)"},
	{gml.ExportCustomVertexAttributes, "vertex-attrs", "write node attrs as custom attributes"},
	{gml.ExportCustomEdgeAttributes, "edge-attrs", "write edge attrs as custom attributes"},
	{gml.ExportCustomVertexGraphicsAttributes, "vertex-graphics", "write node graphics blocks"},
	{gml.ExportCustomEdgeGraphicsAttributes, "edge-graphics", "write edge graphics blocks"},
}

// exportOpts holds the command-line flags for the export command.
type exportOpts struct {
	output  string // output file path, "-" or empty for stdout
	creator string // Creator header override
	all     bool   // switch every parameter on
}

// exportCommand creates the export command for converting graph files to GML.
func (c *CLI) exportCommand() *cobra.Command {
	var opts exportOpts

	cmd := &cobra.Command{
		Use:   "export <graph.json|graph.yaml>",
		Short: "Convert a graph file to GML",
		Long: `Convert a JSON or YAML graph file into a GML document.

Optional content is switched on with flags or in the [export] table of the
config file. Flags add to what the config file enables.`,
		Example: `  gmlexport export graph.json
  gmlexport export graph.yaml -o graph.gml --vertex-labels --edge-weights
  gmlexport export graph.json --all --creator "my tool"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := applyExportFlags(cmd, cfg, opts); err != nil {
				return err
			}
			return c.runExport(cmd, args[0], cfg, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVar(&opts.creator, "creator", "", "Creator header (default \""+gml.DefaultCreator+"\")")
	cmd.Flags().BoolVar(&opts.all, "all", false, "switch on every export parameter")
	for _, pf := range parameterFlags {
		cmd.Flags().Bool(pf.flag, false, pf.usage)
	}

	return cmd
}

// applyExportFlags layers command-line switches over the loaded config.
func applyExportFlags(cmd *cobra.Command, cfg *config.Config, opts exportOpts) error {
	for _, pf := range parameterFlags {
		on, err := cmd.Flags().GetBool(pf.flag)
		if err != nil {
			return err
		}
		if on || opts.all {
			cfg.Enable(pf.param)
		}
	}
	if cmd.Flags().Changed("creator") {
		cfg.Export.Creator = opts.creator
	}
	return cfg.Validate()
}

func (c *CLI) runExport(cmd *cobra.Command, input string, cfg *config.Config, opts exportOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	exportOptions, err := cfg.ExportOptions()
	if err != nil {
		return err
	}

	g, err := gmlio.ImportGraph(ctx, input)
	if err != nil {
		return err
	}
	logger.Debug("graph loaded", "nodes", g.NodeCount(), "edges", g.EdgeCount())

	names := make([]string, len(exportOptions.Parameters))
	for i, p := range exportOptions.Parameters {
		names[i] = p.String()
	}

	if opts.output == "" || opts.output == stdoutPath {
		return gmlio.WriteGML(ctx, g, c.stdout, exportOptions)
	}

	if err := gmlio.ExportGML(ctx, g, opts.output, exportOptions); err != nil {
		return fmt.Errorf("export %s: %w", input, err)
	}
	prog.done("Exported " + input)

	if filepath.Ext(opts.output) != ".gml" {
		printWarning(c.stderr, "output %s does not end in .gml", opts.output)
	}
	printSuccess(c.stderr, "Exported %s", StyleHighlight.Render(input))
	printStats(c.stderr, g.NodeCount(), g.EdgeCount(), g.Directed())
	printKeyValue(c.stderr, "parameters", joinNames(names))
	printFile(c.stderr, opts.output)
	return nil
}
