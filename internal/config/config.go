// Package config loads and validates the eklab configuration file and
// converts it into the orchestrator's addon specs.
package config

import (
	"fmt"

	"github.com/homelab-ops/eklab/internal/addon"
	"github.com/homelab-ops/eklab/internal/helm"
)

// Config is the top-level configuration.
type Config struct {
	// Environment names the deployment environment ("dev", "prod", ...).
	Environment string `mapstructure:"environment" yaml:"environment"`

	// HomelabType describes the cluster's purpose ("media", "iot", ...).
	HomelabType string `mapstructure:"homelab_type" yaml:"homelab_type"`

	// Cluster identifies the target cluster.
	Cluster ClusterConfig `mapstructure:"cluster" yaml:"cluster"`

	// Addons is the addon set to orchestrate.
	Addons []AddonConfig `mapstructure:"addons" yaml:"addons"`

	// Dependencies are external dependency declarations, merged with each
	// addon's inline depends_on list.
	Dependencies []DependencyConfig `mapstructure:"dependencies" yaml:"dependencies"`
}

// ClusterConfig identifies the target cluster.
type ClusterConfig struct {
	Name string `mapstructure:"name" yaml:"name"`

	// Region is the AWS region hosting the cluster.
	Region string `mapstructure:"region" yaml:"region"`

	// Kubeconfig is the path to a kubeconfig file for the cluster.
	Kubeconfig string `mapstructure:"kubeconfig" yaml:"kubeconfig"`
}

// HelmChartConfig defines the chart behind an addon.
type HelmChartConfig struct {
	Repository  string `mapstructure:"repository" yaml:"repository"`
	Chart       string `mapstructure:"chart" yaml:"chart"`
	Version     string `mapstructure:"version" yaml:"version"`
	ReleaseName string `mapstructure:"release_name" yaml:"release_name"`

	// Values are chart-level value overrides, merged over the addon's
	// values with these winning on conflict.
	Values map[string]any `mapstructure:"values" yaml:"values"`
}

// ServiceAccountConfig requests a federated role for a service account.
type ServiceAccountConfig struct {
	Name             string           `mapstructure:"name" yaml:"name"`
	Namespace        string           `mapstructure:"namespace" yaml:"namespace"`
	PolicyStatements []map[string]any `mapstructure:"policy_statements" yaml:"policy_statements"`
}

// AddonConfig is one addon entry in the configuration file.
type AddonConfig struct {
	Name string `mapstructure:"name" yaml:"name"`

	// Enabled defaults to true when omitted.
	Enabled *bool `mapstructure:"enabled" yaml:"enabled"`

	Method          string                `mapstructure:"method" yaml:"method"`
	Helm            *HelmChartConfig      `mapstructure:"helm" yaml:"helm"`
	Namespace       string                `mapstructure:"namespace" yaml:"namespace"`
	CreateNamespace bool                  `mapstructure:"create_namespace" yaml:"create_namespace"`
	DependsOn       []string              `mapstructure:"depends_on" yaml:"depends_on"`
	ServiceAccount  *ServiceAccountConfig `mapstructure:"service_account" yaml:"service_account"`
	Values          map[string]any        `mapstructure:"values" yaml:"values"`
}

// Validate checks the configuration for errors the decoder cannot catch.
// Addon-level structure (duplicate names, chart fields, service accounts)
// is validated by the orchestrator itself.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Cluster.Name == "" {
		return fmt.Errorf("cluster.name is required")
	}
	if c.Cluster.Region == "" {
		return fmt.Errorf("cluster.region is required")
	}
	if len(c.Addons) == 0 {
		return fmt.Errorf("at least one addon must be configured")
	}
	return nil
}

// Specs converts the file-level addon entries into orchestrator inputs.
func (c *Config) Specs() ([]addon.Spec, []addon.Dependency, error) {
	specs := make([]addon.Spec, 0, len(c.Addons))
	for _, a := range c.Addons {
		values, err := helm.Merge(a.Values, chartValues(a.Helm))
		if err != nil {
			return nil, nil, fmt.Errorf("addon %q: %w", a.Name, err)
		}

		spec := addon.Spec{
			Name:            a.Name,
			Enabled:         a.Enabled == nil || *a.Enabled,
			Method:          addon.DeploymentMethod(a.Method),
			Namespace:       a.Namespace,
			CreateNamespace: a.CreateNamespace,
			DependsOn:       a.DependsOn,
			Values:          values,
		}
		if a.Helm != nil {
			spec.Helm = &addon.HelmConfig{
				Chart:       a.Helm.Chart,
				Repository:  a.Helm.Repository,
				Version:     a.Helm.Version,
				ReleaseName: a.Helm.ReleaseName,
			}
		}
		if sa := a.ServiceAccount; sa != nil {
			spec.ServiceAccount = &addon.ServiceAccountSpec{
				Name:             sa.Name,
				Namespace:        sa.Namespace,
				PolicyStatements: sa.PolicyStatements,
			}
		}
		specs = append(specs, spec)
	}

	deps := make([]addon.Dependency, 0, len(c.Dependencies))
	for _, d := range c.Dependencies {
		deps = append(deps, addon.Dependency{Addon: d.Addon, DependsOn: d.DependsOn})
	}
	return specs, deps, nil
}

// DependencyConfig is the external dependency-declaration form.
type DependencyConfig struct {
	Addon     string   `mapstructure:"addon" yaml:"addon"`
	DependsOn []string `mapstructure:"depends_on" yaml:"depends_on"`
}

func chartValues(h *HelmChartConfig) helm.Values {
	if h == nil {
		return nil
	}
	return h.Values
}
