package commands

import (
	"github.com/spf13/cobra"

	"github.com/homelab-ops/eklab/cmd/eklab/handlers"
)

// Graph returns the command that renders the addon dependency graph.
//
// Optional flags:
//
//	--config, -c: Path to configuration YAML file (default: eklab.yaml)
func Graph() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Render the addon dependency graph as Graphviz DOT",
		Long: `Render the addon dependency graph in Graphviz DOT format.

Disabled addons are drawn with dashed borders. Pipe the output to dot to
produce an image:

  eklab graph | dot -Tsvg -o addons.svg`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Graph(cmd.Context(), configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", DefaultConfigPath, "Path to configuration file")

	return cmd
}
