package commands

import (
	"github.com/spf13/cobra"

	"github.com/homelab-ops/eklab/cmd/eklab/handlers"
)

// Deploy returns the command that deploys the configured addon set.
//
// Optional flags:
//
//	--config, -c: Path to configuration YAML file (default: eklab.yaml)
func Deploy() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Deploy the configured addons in dependency order",
		Long: `Deploy the configured addons onto the cluster.

Addons are validated, ordered so every dependency deploys before its
dependents, and then deployed one at a time: namespace manifest, federated
service-account role, Helm release.

Examples:
  # Deploy using eklab.yaml in the current directory
  eklab deploy

  # Deploy using a specific config file
  eklab deploy -c prod.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Deploy(cmd.Context(), configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", DefaultConfigPath, "Path to configuration file")

	return cmd
}
