package addon

import (
	"maps"
	"slices"

	"github.com/homelab-ops/eklab/internal/cluster"
)

// Result is the frozen outcome of a successful orchestrator run. Accessors
// return copies, so a Result never exposes mutable internals.
type Result struct {
	order      []string
	orderSet   map[string]bool
	releases   []cluster.ReleaseHandle
	roles      map[string]cluster.RoleHandle
	namespaces []cluster.ManifestHandle
	warnings   []Warning
}

func newResult(order []string, acc *accumulator) *Result {
	set := make(map[string]bool, len(order))
	for _, name := range order {
		set[name] = true
	}
	return &Result{
		order:      order,
		orderSet:   set,
		releases:   acc.releases,
		roles:      acc.roles,
		namespaces: acc.namespaces,
		warnings:   acc.warnings,
	}
}

// DeploymentOrder returns the resolved order over all addon names, enabled
// and disabled alike.
func (r *Result) DeploymentOrder() []string {
	return slices.Clone(r.order)
}

// HelmReleases returns the releases actually installed, in deployment order.
func (r *Result) HelmReleases() []cluster.ReleaseHandle {
	return slices.Clone(r.releases)
}

// Namespaces returns the namespace manifests applied, in deployment order.
func (r *Result) Namespaces() []cluster.ManifestHandle {
	return slices.Clone(r.namespaces)
}

// ServiceAccountRoles returns the created roles keyed by addon name.
func (r *Result) ServiceAccountRoles() map[string]cluster.RoleHandle {
	return maps.Clone(r.roles)
}

// IsAddonDeployed reports whether the addon occupies a slot in the resolved
// deployment order. Disabled addons are ordered too, so this returns true
// for them as well; it answers "was the addon scheduled", not "did a
// release ship". Callers wanting the latter should consult HelmReleases.
func (r *Result) IsAddonDeployed(name string) bool {
	return r.orderSet[name]
}

// ServiceAccountRole returns the federated role created for an addon, if
// one was.
func (r *Result) ServiceAccountRole(name string) (cluster.RoleHandle, bool) {
	role, ok := r.roles[name]
	return role, ok
}

// Warnings returns the non-fatal findings recorded during the run.
func (r *Result) Warnings() []Warning {
	return slices.Clone(r.warnings)
}
