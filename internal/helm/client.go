package helm

import (
	"context"
	"fmt"
	"os"
	"time"

	"helm.sh/helm/v3/pkg/action"
	"helm.sh/helm/v3/pkg/chart"
	"helm.sh/helm/v3/pkg/chart/loader"
	"helm.sh/helm/v3/pkg/cli"
	"helm.sh/helm/v3/pkg/getter"
	"helm.sh/helm/v3/pkg/release"
	"helm.sh/helm/v3/pkg/repo"
)

// InstallSpec describes one chart installation.
type InstallSpec struct {
	ReleaseName string
	Repository  string
	Chart       string
	Version     string
	Values      map[string]any

	// CreateNamespace lets Helm create the target namespace. Orchestrated
	// installs keep this false; namespaces are applied as explicit
	// manifests beforehand.
	CreateNamespace bool
}

// Client provides Helm operations using in-memory kubeconfig. A client is
// bound to one namespace; create one per target namespace.
type Client struct {
	namespace    string
	actionConfig *action.Configuration
}

// NewClient creates a Helm client from kubeconfig bytes.
func NewClient(kubeconfig []byte, namespace string) (*Client, error) {
	actionConfig := new(action.Configuration)
	restGetter := NewInMemoryRESTClientGetter(kubeconfig, namespace)

	// Init with a no-op logger; progress is reported by the caller.
	if err := actionConfig.Init(restGetter, namespace, "secret", func(format string, v ...interface{}) {}); err != nil {
		return nil, fmt.Errorf("failed to initialize helm action config: %w", err)
	}

	return &Client{namespace: namespace, actionConfig: actionConfig}, nil
}

// InstallOrUpgrade installs the chart or upgrades it if the release already
// exists.
func (c *Client) InstallOrUpgrade(ctx context.Context, spec InstallSpec) (*release.Release, error) {
	histClient := action.NewHistory(c.actionConfig)
	histClient.Max = 1
	if _, err := histClient.Run(spec.ReleaseName); err != nil {
		return c.install(ctx, spec)
	}
	return c.upgrade(ctx, spec)
}

func (c *Client) install(ctx context.Context, spec InstallSpec) (*release.Release, error) {
	installClient := action.NewInstall(c.actionConfig)
	installClient.ReleaseName = spec.ReleaseName
	installClient.Namespace = c.namespace
	installClient.CreateNamespace = spec.CreateNamespace
	installClient.Version = spec.Version
	installClient.Wait = true
	installClient.Timeout = 10 * time.Minute

	chrt, err := c.loadChart(spec)
	if err != nil {
		return nil, fmt.Errorf("failed to load chart: %w", err)
	}

	return installClient.RunWithContext(ctx, chrt, spec.Values)
}

func (c *Client) upgrade(ctx context.Context, spec InstallSpec) (*release.Release, error) {
	upgradeClient := action.NewUpgrade(c.actionConfig)
	upgradeClient.Namespace = c.namespace
	upgradeClient.Version = spec.Version
	upgradeClient.Wait = true
	upgradeClient.Timeout = 10 * time.Minute
	upgradeClient.ReuseValues = false

	chrt, err := c.loadChart(spec)
	if err != nil {
		return nil, fmt.Errorf("failed to load chart: %w", err)
	}

	return upgradeClient.RunWithContext(ctx, spec.ReleaseName, chrt, spec.Values)
}

func (c *Client) loadChart(spec InstallSpec) (*chart.Chart, error) {
	settings := cli.New()

	chartPath, err := repo.FindChartInRepoURL(
		spec.Repository,
		spec.Chart,
		spec.Version,
		"", "", "",
		getter.All(settings),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to find chart %s in repo %s: %w", spec.Chart, spec.Repository, err)
	}

	defer func() {
		_ = os.Remove(chartPath)
	}()

	return loader.Load(chartPath)
}

// Uninstall removes a Helm release.
func (c *Client) Uninstall(releaseName string) error {
	uninstallClient := action.NewUninstall(c.actionConfig)
	uninstallClient.Wait = true
	uninstallClient.Timeout = 5 * time.Minute

	_, err := uninstallClient.Run(releaseName)
	return err
}

// ReleaseExists checks if a release exists in the client's namespace.
func (c *Client) ReleaseExists(releaseName string) bool {
	histClient := action.NewHistory(c.actionConfig)
	histClient.Max = 1
	_, err := histClient.Run(releaseName)
	return err == nil
}
