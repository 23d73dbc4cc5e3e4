package addon

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// Plan is the validated, ordered view of an addon set before any side
// effect. It backs both the deploy path and the read-only CLI surfaces
// (order listing, graph rendering).
type Plan struct {
	// Order is the full deployment order over all addon names, enabled and
	// disabled alike.
	Order []string

	// Edges holds the merged dependency edges restricted to names present
	// in the set, keyed by dependent addon.
	Edges map[string][]string

	// Warnings are non-fatal findings about the input.
	Warnings []Warning

	specs map[string]Spec
}

// NewPlan validates the addon set and computes the deployment order.
// Construction fails, with no partial result, on duplicate names, schema
// violations, unresolved external dependency references, or cycles.
func NewPlan(addons []Spec, deps []Dependency) (*Plan, error) {
	if err := validate(addons, deps); err != nil {
		return nil, err
	}

	merged := mergeDependencies(addons, deps)
	order, err := resolveOrder(addons, merged)
	if err != nil {
		return nil, err
	}

	specs := make(map[string]Spec, len(addons))
	for _, a := range addons {
		specs[a.Name] = a
	}

	inSet := func(name string) bool { _, ok := specs[name]; return ok }
	edges := make(map[string][]string, len(merged))
	for name, refs := range merged {
		if !inSet(name) {
			continue
		}
		for _, ref := range refs {
			if inSet(ref) {
				edges[name] = append(edges[name], ref)
			}
		}
	}

	return &Plan{
		Order:    order,
		Edges:    edges,
		Warnings: planWarnings(addons),
		specs:    specs,
	}, nil
}

// Spec returns the addon spec for a name in the plan.
func (p *Plan) Spec(name string) (Spec, bool) {
	s, ok := p.specs[name]
	return s, ok
}

// planWarnings surfaces input conditions worth flagging without failing
// validation.
func planWarnings(addons []Spec) []Warning {
	var warnings []Warning
	for _, a := range addons {
		if a.Enabled && a.method() != MethodHelm {
			warnings = append(warnings, Warning{Addon: a.Name, Message: fmt.Sprintf(
				"deployment method %q is not executed yet; addon will be ordered but not deployed", a.method())})
		}
		if a.CreateNamespace && a.Namespace == "" {
			warnings = append(warnings, Warning{Addon: a.Name,
				Message: "createNamespace is set but no namespace is given; ignoring"})
		}
		if a.Helm != nil && a.Helm.Version != "" {
			if _, err := semver.NewVersion(a.Helm.Version); err != nil {
				warnings = append(warnings, Warning{Addon: a.Name, Message: fmt.Sprintf(
					"chart version %q is not semantic versioning; pinning may not behave as expected", a.Helm.Version)})
			}
		}
	}
	return warnings
}
