package addon

import (
	"context"
	"fmt"

	"github.com/go-logr/logr"

	"github.com/homelab-ops/eklab/internal/cluster"
	"github.com/homelab-ops/eklab/internal/metrics"
	"github.com/homelab-ops/eklab/internal/util/labels"
	"github.com/homelab-ops/eklab/internal/util/naming"
)

// RoleARNAnnotation is the service-account annotation that binds a pod
// identity to a federated role.
const RoleARNAnnotation = "eks.amazonaws.com/role-arn"

// Options is the construction input for one orchestrator run.
type Options struct {
	// Cluster is the handle to the target cluster. Required for Deploy.
	Cluster cluster.Handle

	// Environment tags resource names ("prod", "staging", ...).
	Environment string

	// HomelabType describes the cluster's purpose; carried onto role tags.
	HomelabType string

	// Addons is the full addon set, enabled and disabled entries alike.
	Addons []Spec

	// Dependencies are external dependency declarations, unioned with each
	// addon's inline DependsOn list.
	Dependencies []Dependency

	// Log receives deployment progress. Defaults to logr.Discard.
	Log logr.Logger
}

// accumulator collects side-effect handles while the walk is in flight.
// Only the frozen Result is ever exposed, so no partially-built state
// escapes the constructor.
type accumulator struct {
	releases   []cluster.ReleaseHandle
	roles      map[string]cluster.RoleHandle
	namespaces []cluster.ManifestHandle
	warnings   []Warning
}

// Deploy validates the addon set, resolves the deployment order, and walks
// it sequentially, materializing namespace, role, and release for every
// enabled addon. Validation failures abort before any side effect; a
// cluster error aborts the remaining walk without rolling back addons
// already deployed.
func Deploy(ctx context.Context, opts Options) (*Result, error) {
	if opts.Cluster == nil {
		return nil, fmt.Errorf("cluster handle is required")
	}
	log := opts.Log
	if log.GetSink() == nil {
		log = logr.Discard()
	}

	plan, err := NewPlan(opts.Addons, opts.Dependencies)
	if err != nil {
		return nil, err
	}

	acc := &accumulator{
		roles:    make(map[string]cluster.RoleHandle),
		warnings: plan.Warnings,
	}

	for _, name := range plan.Order {
		spec, _ := plan.Spec(name)
		if !spec.Enabled {
			log.V(1).Info("skipping disabled addon", "addon", name)
			continue
		}
		if err := deployOne(ctx, log, opts, spec, acc); err != nil {
			metrics.DeployFailures.Inc()
			return nil, err
		}
	}

	return newResult(plan.Order, acc), nil
}

// deployOne materializes a single enabled addon: namespace first, then the
// federated role, then the Helm release. The cluster handle is synchronous,
// so the release always installs after its namespace exists.
func deployOne(ctx context.Context, log logr.Logger, opts Options, spec Spec, acc *accumulator) error {
	log.Info("deploying addon", "addon", spec.Name, "method", spec.method())

	var nsCreated bool
	if spec.CreateNamespace && spec.Namespace != "" {
		doc := NamespaceManifest(spec.Name, spec.Namespace)
		handle, err := opts.Cluster.ApplyManifest(ctx, naming.NamespaceManifest(spec.Name), doc)
		if err != nil {
			return fmt.Errorf("addon %q: creating namespace %q: %w", spec.Name, spec.Namespace, err)
		}
		acc.namespaces = append(acc.namespaces, handle)
		nsCreated = true
		metrics.NamespacesCreated.Inc()
		log.V(1).Info("namespace created", "addon", spec.Name, "namespace", spec.Namespace)
	}

	if sa := spec.ServiceAccount; sa != nil {
		role, err := opts.Cluster.CreateFederatedRole(ctx, cluster.RoleRequest{
			Name:             naming.ServiceAccountRole(opts.Environment, sa.Name),
			Subject:          fmt.Sprintf("system:serviceaccount:%s:%s", sa.Namespace, sa.Name),
			Audience:         cluster.STSAudience,
			PolicyStatements: sa.PolicyStatements,
			Tags: map[string]string{
				labels.KeyManagedBy: labels.ManagedByValue,
				labels.KeyAddon:     spec.Name,
				"environment":       opts.Environment,
				"homelab-type":      opts.HomelabType,
			},
		})
		if err != nil {
			return fmt.Errorf("addon %q: creating role for service account %q: %w", spec.Name, sa.Name, err)
		}
		acc.roles[spec.Name] = role
		metrics.RolesCreated.Inc()
		log.V(1).Info("federated role created", "addon", spec.Name, "role", role.Name)
	}

	if spec.method() != MethodHelm || spec.Helm == nil {
		return nil
	}

	releaseName := spec.Helm.ReleaseName
	if releaseName == "" {
		releaseName = naming.Release(spec.Name, opts.Environment)
	}

	release, err := opts.Cluster.InstallHelmChart(ctx, spec.Name, cluster.ChartRequest{
		Chart:           spec.Helm.Chart,
		Repository:      spec.Helm.Repository,
		Version:         spec.Helm.Version,
		ReleaseName:     releaseName,
		Namespace:       spec.Namespace,
		Values:          releaseValues(spec, acc.roles),
		CreateNamespace: false,
	})
	if err != nil {
		return fmt.Errorf("addon %q: installing chart %q: %w", spec.Name, spec.Helm.Chart, err)
	}
	acc.releases = append(acc.releases, release)
	metrics.ReleasesInstalled.Inc()
	log.Info("release installed", "addon", spec.Name, "release", releaseName,
		"namespace", spec.Namespace, "ownNamespace", nsCreated)
	return nil
}

// NamespaceManifest builds the namespace document for an addon, carrying
// the fixed addon labels.
func NamespaceManifest(addon, namespace string) map[string]any {
	lbls := make(map[string]any)
	for k, v := range labels.ForAddon(addon) {
		lbls[k] = v
	}
	return map[string]any{
		"apiVersion": "v1",
		"kind":       "Namespace",
		"metadata": map[string]any{
			"name":   namespace,
			"labels": lbls,
		},
	}
}

// releaseValues deep-copies the caller-supplied values and, when a role was
// created for the addon, sets the serviceAccount block that wires the
// annotation-based role binding. The injected keys (create, name, the role
// annotation) always win; unrelated caller keys, including other
// annotations, survive.
func releaseValues(spec Spec, roles map[string]cluster.RoleHandle) map[string]any {
	values := copyValues(spec.Values)

	role, ok := roles[spec.Name]
	if !ok {
		return values
	}

	sa, _ := values["serviceAccount"].(map[string]any)
	if sa == nil {
		sa = make(map[string]any)
		values["serviceAccount"] = sa
	}
	sa["create"] = false
	sa["name"] = spec.ServiceAccount.Name

	annotations, _ := sa["annotations"].(map[string]any)
	if annotations == nil {
		annotations = make(map[string]any)
		sa["annotations"] = annotations
	}
	annotations[RoleARNAnnotation] = role.ARN

	return values
}

// copyValues clones a values document so the merge never mutates
// caller-owned maps.
func copyValues(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for k, v := range in {
		switch v := v.(type) {
		case map[string]any:
			out[k] = copyValues(v)
		case []any:
			cp := make([]any, len(v))
			for i, e := range v {
				if m, ok := e.(map[string]any); ok {
					cp[i] = copyValues(m)
				} else {
					cp[i] = e
				}
			}
			out[k] = cp
		default:
			out[k] = v
		}
	}
	return out
}
