package addon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanOrderIsPermutationOfInput(t *testing.T) {
	addons := []Spec{
		helmAddon("cert-manager"),
		helmAddon("ingress-nginx"),
		helmAddon("prometheus"),
		helmAddon("external-dns"),
	}
	addons[1].DependsOn = []string{"cert-manager"}
	addons[3].Enabled = false

	plan, err := NewPlan(addons, nil)
	require.NoError(t, err)

	require.Len(t, plan.Order, len(addons))
	seen := make(map[string]bool)
	for _, name := range plan.Order {
		assert.False(t, seen[name], "name %q appears twice", name)
		seen[name] = true
	}
	for _, a := range addons {
		assert.True(t, seen[a.Name], "name %q missing from order", a.Name)
	}
}

func TestPlanDependenciesPrecedeDependents(t *testing.T) {
	addons := []Spec{
		helmAddon("cert-manager"),
		helmAddon("ingress-nginx"),
		helmAddon("prometheus"),
	}
	addons[1].DependsOn = []string{"cert-manager"}

	plan, err := NewPlan(addons, nil)
	require.NoError(t, err)

	idx := make(map[string]int, len(plan.Order))
	for i, name := range plan.Order {
		idx[name] = i
	}
	assert.Less(t, idx["cert-manager"], idx["ingress-nginx"])
}

func TestPlanKeepsDeclarationOrderForUnconstrainedAddons(t *testing.T) {
	addons := []Spec{
		helmAddon("charlie"),
		helmAddon("alpha"),
		helmAddon("bravo"),
	}

	plan, err := NewPlan(addons, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"charlie", "alpha", "bravo"}, plan.Order)
}

func TestPlanOrderIsDeterministic(t *testing.T) {
	addons := []Spec{
		helmAddon("a"), helmAddon("b"), helmAddon("c"), helmAddon("d"),
	}
	addons[0].DependsOn = []string{"c"}
	deps := []Dependency{{Addon: "b", DependsOn: []string{"d", "c"}}}

	first, err := NewPlan(addons, deps)
	require.NoError(t, err)
	second, err := NewPlan(addons, deps)
	require.NoError(t, err)

	assert.Equal(t, first.Order, second.Order)
}

func TestPlanMergesExternalAndInlineDependencies(t *testing.T) {
	addons := []Spec{
		helmAddon("app"),
		helmAddon("db"),
		helmAddon("cache"),
	}
	addons[0].DependsOn = []string{"db"}
	deps := []Dependency{{Addon: "app", DependsOn: []string{"cache", "db"}}} // duplicate edge tolerated

	plan, err := NewPlan(addons, deps)
	require.NoError(t, err)

	idx := make(map[string]int)
	for i, name := range plan.Order {
		idx[name] = i
	}
	assert.Less(t, idx["db"], idx["app"])
	assert.Less(t, idx["cache"], idx["app"])
	assert.ElementsMatch(t, []string{"db", "cache", "db"}, plan.Edges["app"])
}

func TestPlanIgnoresInlineReferencesOutsideTheSet(t *testing.T) {
	addon := helmAddon("solo")
	addon.DependsOn = []string{"not-in-this-batch"}

	plan, err := NewPlan([]Spec{addon}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"solo"}, plan.Order)
	assert.Empty(t, plan.Edges["solo"])
}

func TestPlanDetectsTwoNodeCycle(t *testing.T) {
	addons := []Spec{helmAddon("addon-a"), helmAddon("addon-b")}
	addons[0].DependsOn = []string{"addon-b"}
	addons[1].DependsOn = []string{"addon-a"}

	_, err := NewPlan(addons, nil)
	require.Error(t, err)

	var cycle *CycleError
	require.ErrorAs(t, err, &cycle)
	assert.Contains(t, []string{"addon-a", "addon-b"}, cycle.Addon)
}

func TestPlanDetectsSelfDependency(t *testing.T) {
	addon := helmAddon("narcissus")
	addon.DependsOn = []string{"narcissus"}

	var cycle *CycleError
	_, err := NewPlan([]Spec{addon}, nil)
	require.ErrorAs(t, err, &cycle)
	assert.Equal(t, "narcissus", cycle.Addon)
}

func TestPlanDetectsLongerCycle(t *testing.T) {
	addons := []Spec{helmAddon("a"), helmAddon("b"), helmAddon("c")}
	deps := []Dependency{
		{Addon: "a", DependsOn: []string{"b"}},
		{Addon: "b", DependsOn: []string{"c"}},
		{Addon: "c", DependsOn: []string{"a"}},
	}

	var cycle *CycleError
	_, err := NewPlan(addons, deps)
	require.ErrorAs(t, err, &cycle)
}

func TestPlanWarnings(t *testing.T) {
	kustomized := Spec{Name: "flux", Enabled: true, Method: MethodKustomize}
	noNamespace := helmAddon("orphan")
	noNamespace.CreateNamespace = true
	oddVersion := helmAddon("legacy")
	oddVersion.Helm.Version = "latest-stable"

	plan, err := NewPlan([]Spec{kustomized, noNamespace, oddVersion}, nil)
	require.NoError(t, err)
	require.Len(t, plan.Warnings, 3)

	assert.Equal(t, "flux", plan.Warnings[0].Addon)
	assert.Contains(t, plan.Warnings[0].Message, `"kustomize"`)
	assert.Equal(t, "orphan", plan.Warnings[1].Addon)
	assert.Contains(t, plan.Warnings[1].Message, "createNamespace")
	assert.Equal(t, "legacy", plan.Warnings[2].Addon)
	assert.Contains(t, plan.Warnings[2].Message, "latest-stable")
}

func TestPlanDisabledAddonsStillOrdered(t *testing.T) {
	enabled := helmAddon("up")
	disabled := helmAddon("down")
	disabled.Enabled = false
	disabled.DependsOn = []string{"up"}

	plan, err := NewPlan([]Spec{disabled, enabled}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"up", "down"}, plan.Order)
}
