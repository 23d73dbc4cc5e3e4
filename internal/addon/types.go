// Package addon implements the dependency-aware addon deployment
// orchestrator. A set of named addons with optional dependencies is
// validated, brought into a deterministic topological order, and deployed
// one at a time against a cluster handle: namespace manifest, federated
// service-account role, then the Helm release wired to that role.
package addon

// DeploymentMethod selects how an addon is materialized on the cluster.
type DeploymentMethod string

// Supported deployment methods. Only MethodHelm is executed today; the
// others are accepted so configurations can declare them ahead of support,
// and deploying such an addon records a warning instead of a release.
const (
	MethodHelm      DeploymentMethod = "helm"
	MethodHelmCLI   DeploymentMethod = "helm-cli"
	MethodKustomize DeploymentMethod = "kustomize"
	MethodKubectl   DeploymentMethod = "kubectl"
)

// knownMethods lists every accepted deployment method tag.
var knownMethods = map[DeploymentMethod]bool{
	MethodHelm:      true,
	MethodHelmCLI:   true,
	MethodKustomize: true,
	MethodKubectl:   true,
}

// HelmConfig describes the chart behind an addon.
type HelmConfig struct {
	// Chart is the chart name. Required whenever HelmConfig is present.
	Chart string

	// Repository is the chart repository URL.
	Repository string

	// Version pins the chart version. Empty means latest.
	Version string

	// ReleaseName overrides the default {addon}-{environment} release name.
	ReleaseName string
}

// ServiceAccountSpec requests a federated IAM role for a Kubernetes service
// account (the IRSA pattern).
type ServiceAccountSpec struct {
	Name      string
	Namespace string

	// PolicyStatements are opaque permission statements attached to the
	// role. The orchestrator passes them through unexamined.
	PolicyStatements []map[string]any
}

// Spec describes a single addon in the deployment set.
type Spec struct {
	// Name uniquely identifies the addon within one orchestrator run.
	Name string

	// Enabled controls whether the addon is deployed. Disabled addons still
	// participate in validation and ordering.
	Enabled bool

	// Method selects the deployment mechanism. Empty defaults to MethodHelm.
	Method DeploymentMethod

	// Helm configures the chart. Required for MethodHelm.
	Helm *HelmConfig

	// Namespace is the target Kubernetes namespace.
	Namespace string

	// CreateNamespace requests a namespace manifest before deployment.
	// Ignored (with a warning) when Namespace is empty.
	CreateNamespace bool

	// DependsOn lists addon names that must deploy before this one.
	// References to names outside the current set are silently ignored
	// during ordering.
	DependsOn []string

	// ServiceAccount requests a federated role bound to a cluster service
	// account.
	ServiceAccount *ServiceAccountSpec

	// Values are free-form Helm values merged into the release. The
	// orchestrator only ever touches the serviceAccount block it injects.
	Values map[string]any
}

// method returns the effective deployment method for the spec.
func (s Spec) method() DeploymentMethod {
	if s.Method == "" {
		return MethodHelm
	}
	return s.Method
}

// Dependency is the external dependency-declaration form. Entries are
// unioned with the inline DependsOn list of the named addon. Unlike inline
// references, every name here must exist in the addon set.
type Dependency struct {
	Addon     string
	DependsOn []string
}

// Warning is a non-fatal condition noticed during planning or deployment,
// reported on the result rather than printed.
type Warning struct {
	// Addon names the addon the warning concerns; empty for global warnings.
	Addon string

	Message string
}
