// Package metrics exposes Prometheus counters for addon deployment
// activity.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ReleasesInstalled counts Helm releases installed by the orchestrator.
	ReleasesInstalled = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "eklab",
		Subsystem: "addons",
		Name:      "releases_installed_total",
		Help:      "Number of Helm releases installed.",
	})

	// NamespacesCreated counts namespace manifests applied.
	NamespacesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "eklab",
		Subsystem: "addons",
		Name:      "namespaces_created_total",
		Help:      "Number of namespace manifests applied.",
	})

	// RolesCreated counts federated service-account roles created.
	RolesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "eklab",
		Subsystem: "addons",
		Name:      "roles_created_total",
		Help:      "Number of federated service-account roles created.",
	})

	// DeployFailures counts addon deployments aborted by a cluster error.
	DeployFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "eklab",
		Subsystem: "addons",
		Name:      "deploy_failures_total",
		Help:      "Number of addon deployments that failed.",
	})
)
