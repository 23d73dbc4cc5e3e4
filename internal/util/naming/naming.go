// Package naming provides consistent naming functions for orchestrated
// cluster resources.
//
// IAM resources follow the pattern eklab-{environment}-{type}-{name}; Helm
// releases default to {addon}-{environment}. Deterministic names keep
// repeated deployments of the same configuration idempotent and make
// resources easy to identify and clean up.
package naming

import "fmt"

// Product is the prefix carried by every resource this tool creates.
const Product = "eklab"

// ServiceAccountRole returns the federated role name for a service account.
func ServiceAccountRole(environment, serviceAccount string) string {
	return fmt.Sprintf("%s-%s-sa-%s", Product, environment, serviceAccount)
}

// Release returns the default Helm release name for an addon.
func Release(addon, environment string) string {
	return fmt.Sprintf("%s-%s", addon, environment)
}

// NamespaceManifest returns the manifest identifier for an addon's namespace.
func NamespaceManifest(addon string) string {
	return fmt.Sprintf("%s-namespace", addon)
}
