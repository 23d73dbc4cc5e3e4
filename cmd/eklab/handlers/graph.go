package handlers

import (
	"context"
	"fmt"

	"github.com/emicklei/dot"

	"github.com/homelab-ops/eklab/internal/addon"
)

// Graph validates the configuration and prints the addon dependency graph
// in Graphviz DOT format. Edges point from a dependency to its dependents,
// so the drawing reads in deployment direction. Disabled addons are drawn
// dashed.
func Graph(_ context.Context, configPath string) error {
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

	fmt.Print(renderGraph(plan))
	return nil
}

// renderGraph builds the DOT document for a plan.
func renderGraph(plan *addon.Plan) string {
	graph := dot.NewGraph(dot.Directed)
	graph.Attr("rankdir", "TB")
	graph.Attr("label", "addon deployment graph")

	for _, name := range plan.Order {
		n := graph.Node(name)
		n.Attr("shape", "box")

		spec, _ := plan.Spec(name)
		if !spec.Enabled {
			n.Attr("style", "dashed")
		}
	}

	// Edges run dependency -> dependent, matching deployment direction.
	// The plan tolerates duplicate edges (inline and external declarations
	// can repeat a reference); draw each pair once.
	drawn := make(map[string]bool)
	for _, name := range plan.Order {
		for _, dep := range plan.Edges[name] {
			key := dep + "->" + name
			if drawn[key] {
				continue
			}
			drawn[key] = true
			graph.Edge(graph.Node(dep), graph.Node(name))
		}
	}

	return graph.String()
}
