// Package cluster defines the capability contract the addon orchestrator
// needs from a target cluster. The orchestrator never talks to Kubernetes,
// Helm, or IAM directly; it goes through a Handle, which keeps the
// orchestration logic testable against a fake.
package cluster

import "context"

// STSAudience is the token audience federated roles trust.
const STSAudience = "sts.amazonaws.com"

// OIDCProvider identifies the cluster's OIDC identity provider.
type OIDCProvider struct {
	// IssuerURL is the provider's issuer, including the https scheme.
	IssuerURL string

	// ARN is the IAM OIDC provider resource for this issuer.
	ARN string
}

// ChartRequest asks for a Helm release to be installed or upgraded.
type ChartRequest struct {
	Chart       string
	Repository  string
	Version     string
	ReleaseName string
	Namespace   string
	Values      map[string]any

	// CreateNamespace lets Helm create the target namespace. The
	// orchestrator applies namespaces itself, so it always passes false.
	CreateNamespace bool
}

// RoleRequest asks for an IAM role assumable by a cluster workload through
// the cluster's OIDC provider.
type RoleRequest struct {
	// Name is the role name. Names are deterministic so re-runs reuse the
	// same role.
	Name string

	// Subject is the federated subject claim, in the
	// system:serviceaccount:<namespace>:<name> form.
	Subject string

	// Audience is the token audience, normally STSAudience.
	Audience string

	// PolicyStatements are raw IAM statements attached inline to the role.
	PolicyStatements []map[string]any

	Tags map[string]string
}

// ManifestHandle refers to a manifest accepted by the cluster.
type ManifestHandle struct {
	// ID is the caller-chosen identifier the manifest was submitted under.
	ID   string
	Kind string
	Name string
}

// ReleaseHandle refers to an installed Helm release.
type ReleaseHandle struct {
	// ID is the caller-chosen identifier, normally the addon name.
	ID          string
	ReleaseName string
	Namespace   string
}

// RoleHandle refers to a created (or reused) IAM role.
type RoleHandle struct {
	Name string
	ARN  string
}

// Handle is the cluster capability the orchestrator deploys through.
//
// All methods are synchronous: they return only once the cluster has
// accepted the resource. Sequential calls therefore give ordering for
// free, in particular a namespace applied before a chart install exists
// when the release's objects land.
type Handle interface {
	// OIDCProvider returns the identity provider backing federated roles.
	OIDCProvider() OIDCProvider

	// ApplyManifest submits a structured Kubernetes manifest under a
	// caller-chosen identifier.
	ApplyManifest(ctx context.Context, id string, doc map[string]any) (ManifestHandle, error)

	// InstallHelmChart installs or upgrades a release.
	InstallHelmChart(ctx context.Context, id string, req ChartRequest) (ReleaseHandle, error)

	// CreateFederatedRole creates an IAM role trusted for the requested
	// subject and audience. Creating a role that already exists reuses it.
	CreateFederatedRole(ctx context.Context, req RoleRequest) (RoleHandle, error)
}
