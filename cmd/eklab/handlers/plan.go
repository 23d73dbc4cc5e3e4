package handlers

import (
	"context"
	"fmt"

	sigsyaml "sigs.k8s.io/yaml"

	"github.com/homelab-ops/eklab/internal/addon"
)

// Plan validates the configuration and prints the deployment plan without
// contacting any cluster: the resolved order, disabled addons, the
// namespace manifests that a deploy would apply, and any warnings.
func Plan(_ context.Context, configPath string) error {
	cfg, err := loadConfigFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	addons, deps, err := cfg.Specs()
	if err != nil {
		return err
	}

	plan, err := addon.NewPlan(addons, deps)
	if err != nil {
		return err
	}

	fmt.Printf("Deployment order:\n")
	for i, name := range plan.Order {
		spec, _ := plan.Spec(name)
		status := ""
		if !spec.Enabled {
			status = " (disabled)"
		}
		fmt.Printf("  %d. %s%s\n", i+1, name, status)
	}

	if err := printNamespacePreviews(plan); err != nil {
		return err
	}

	printWarnings(plan.Warnings)
	return nil
}

// printNamespacePreviews renders the namespace manifests a deploy would
// apply, in deployment order.
func printNamespacePreviews(plan *addon.Plan) error {
	var printed bool
	for _, name := range plan.Order {
		spec, _ := plan.Spec(name)
		if !spec.Enabled || !spec.CreateNamespace || spec.Namespace == "" {
			continue
		}

		doc := addon.NamespaceManifest(spec.Name, spec.Namespace)
		out, err := sigsyaml.Marshal(doc)
		if err != nil {
			return fmt.Errorf("failed to render namespace manifest for %q: %w", name, err)
		}

		if !printed {
			fmt.Printf("\nNamespace manifests:\n")
			printed = true
		}
		fmt.Printf("---\n%s", out)
	}
	return nil
}
