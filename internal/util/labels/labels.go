// Package labels provides consistent labeling for resources created by the
// addon orchestrator.
//
// Every managed resource carries the managed-by marker plus an addon label
// under the eklab.homelab domain, enabling selection and cleanup of
// everything belonging to one addon.
package labels

// Standard label keys and values for orchestrated resources.
const (
	// KeyManagedBy identifies the management system.
	KeyManagedBy = "managed-by"

	// KeyAddon identifies which addon a resource belongs to.
	KeyAddon = "eklab.homelab/addon"

	// ManagedByValue marks resources created by this tool.
	ManagedByValue = "eklab"
)

// ForAddon returns the fixed label set applied to resources created on
// behalf of one addon.
func ForAddon(addon string) map[string]string {
	return map[string]string{
		KeyManagedBy: ManagedByValue,
		KeyAddon:     addon,
	}
}

// Selector returns a label selector string matching every resource created
// for the given addon.
func Selector(addon string) string {
	return KeyAddon + "=" + addon
}
