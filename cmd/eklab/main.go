// Package main is the entry point for the eklab CLI.
//
// eklab deploys a dependency-ordered set of addons (Helm releases,
// namespaces, federated service-account roles) onto an existing
// EKS-style homelab cluster.
//
// Commands: deploy, plan, graph, version.
//
// For detailed usage information, run:
//
//	eklab --help
package main

import (
	"fmt"
	"os"

	"github.com/homelab-ops/eklab/cmd/eklab/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
