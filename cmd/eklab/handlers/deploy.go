// Package handlers implements the business logic for CLI commands.
//
// This package contains handler functions that are called by command definitions
// in the commands package. Handlers are framework-agnostic and can be tested
// independently of the CLI framework.
package handlers

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"

	"github.com/homelab-ops/eklab/internal/addon"
	"github.com/homelab-ops/eklab/internal/cluster"
	"github.com/homelab-ops/eklab/internal/cluster/eks"
	"github.com/homelab-ops/eklab/internal/config"
)

// Factory function variables - can be replaced in tests for dependency injection.
var (
	// loadConfigFile loads config from file (for testing injection).
	loadConfigFile = config.LoadFile

	// readFile reads a file from disk (for testing injection).
	readFile = os.ReadFile

	// newClusterHandle connects to the target cluster.
	newClusterHandle = func(ctx context.Context, opts eks.Options) (cluster.Handle, error) {
		return eks.New(ctx, opts)
	}

	// deployAddons runs the orchestrator.
	deployAddons = addon.Deploy
)

// Deploy loads the configuration, connects to the configured cluster, and
// deploys the addon set in dependency order.
//
// The workflow:
//  1. Loads and validates the configuration file
//  2. Reads the kubeconfig referenced by the cluster section
//  3. Discovers the cluster's OIDC identity and prepares AWS clients
//  4. Runs the orchestrator: namespaces, federated roles, Helm releases
//  5. Prints a summary of what was deployed, plus any warnings
//
// AWS credentials come from the default credential chain; the handler does
// not manage them itself.
func Deploy(ctx context.Context, configPath string) error {
	cfg, err := loadConfigFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	addons, deps, err := cfg.Specs()
	if err != nil {
		return err
	}

	kubeconfig, err := readFile(cfg.Cluster.Kubeconfig)
	if err != nil {
		return fmt.Errorf("failed to read kubeconfig %q: %w", cfg.Cluster.Kubeconfig, err)
	}

	logger := newLogger()

	log.Printf("Connecting to cluster %s (%s)", cfg.Cluster.Name, cfg.Cluster.Region)
	handle, err := newClusterHandle(ctx, eks.Options{
		ClusterName: cfg.Cluster.Name,
		Region:      cfg.Cluster.Region,
		Kubeconfig:  kubeconfig,
		Log:         logger,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to cluster: %w", err)
	}

	result, err := deployAddons(ctx, addon.Options{
		Cluster:      handle,
		Environment:  cfg.Environment,
		HomelabType:  cfg.HomelabType,
		Addons:       addons,
		Dependencies: deps,
		Log:          logger,
	})
	if err != nil {
		return err
	}

	printDeploySummary(result)
	return nil
}

// newLogger adapts the standard logger so the orchestrator and cluster
// handle share the CLI's log output.
func newLogger() logr.Logger {
	return funcr.New(func(prefix, args string) {
		if prefix != "" {
			log.Printf("%s: %s", prefix, args)
		} else {
			log.Print(args)
		}
	}, funcr.Options{})
}

// printDeploySummary outputs what the run actually did.
func printDeploySummary(result *addon.Result) {
	fmt.Printf("\nDeployment complete!\n")

	fmt.Printf("\nDeployment order:\n")
	for _, name := range result.DeploymentOrder() {
		fmt.Printf("  %s\n", name)
	}

	if releases := result.HelmReleases(); len(releases) > 0 {
		fmt.Printf("\nHelm releases:\n")
		for _, r := range releases {
			fmt.Printf("  %s (namespace %s)\n", r.ReleaseName, r.Namespace)
		}
	}

	if namespaces := result.Namespaces(); len(namespaces) > 0 {
		fmt.Printf("\nNamespaces applied:\n")
		for _, ns := range namespaces {
			fmt.Printf("  %s\n", ns.Name)
		}
	}

	if len(result.ServiceAccountRoles()) > 0 {
		fmt.Printf("\nService account roles:\n")
		for _, name := range result.DeploymentOrder() {
			if role, ok := result.ServiceAccountRole(name); ok {
				fmt.Printf("  %s: %s\n", name, role.ARN)
			}
		}
	}

	printWarnings(result.Warnings())
}

// printWarnings lists non-fatal findings, if any.
func printWarnings(warnings []addon.Warning) {
	if len(warnings) == 0 {
		return
	}

	fmt.Printf("\nWarnings:\n")
	for _, w := range warnings {
		fmt.Printf("  %s: %s\n", w.Addon, w.Message)
	}
}
