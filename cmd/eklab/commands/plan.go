package commands

import (
	"github.com/spf13/cobra"

	"github.com/homelab-ops/eklab/cmd/eklab/handlers"
)

// Plan returns the command that prints the deployment plan without
// touching any cluster.
//
// Optional flags:
//
//	--config, -c: Path to configuration YAML file (default: eklab.yaml)
func Plan() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Show the deployment order and planned resources",
		Long: `Validate the configuration and print the deployment plan.

The plan lists every addon in the order it would be deployed, which addons
are disabled, the namespace manifests that would be applied, and any
configuration warnings. No cluster access is required.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Plan(cmd.Context(), configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", DefaultConfigPath, "Path to configuration file")

	return cmd
}
