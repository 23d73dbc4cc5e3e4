// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument
// parsing and flag binding. Command execution is delegated to handler
// functions in the handlers package.
package commands

import "github.com/spf13/cobra"

// DefaultConfigPath is used when no --config flag is given.
const DefaultConfigPath = "eklab.yaml"

// Root returns the root command for the eklab CLI.
func Root() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eklab",
		Short: "Deploy dependency-ordered addons onto a homelab cluster",
	}

	cmd.AddCommand(Deploy())
	cmd.AddCommand(Plan())
	cmd.AddCommand(Graph())
	cmd.AddCommand(Version())

	return cmd
}
