package handlers

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/homelab-ops/eklab/internal/addon"
	"github.com/homelab-ops/eklab/internal/cluster"
	"github.com/homelab-ops/eklab/internal/cluster/eks"
)

const testConfig = `environment: prod
homelab_type: media
cluster:
  name: homelab
  region: eu-central-1
  kubeconfig: %s
addons:
  - name: cert-manager
    namespace: cert-manager
    create_namespace: true
    helm:
      repository: https://charts.jetstack.io
      chart: cert-manager
      version: v1.14.4
  - name: external-dns
    namespace: external-dns
    depends_on: [cert-manager]
    helm:
      repository: https://kubernetes-sigs.github.io/external-dns
      chart: external-dns
    service_account:
      name: external-dns
      namespace: external-dns
      policy_statements:
        - Effect: Allow
          Action: ["route53:ChangeResourceRecordSets"]
          Resource: "*"
`

// stubCluster is a recording cluster.Handle for handler tests.
type stubCluster struct {
	releases []cluster.ChartRequest
	roles    []cluster.RoleRequest
}

func (s *stubCluster) OIDCProvider() cluster.OIDCProvider {
	return cluster.OIDCProvider{
		IssuerURL: "https://oidc.example.com/id/TEST",
		ARN:       "arn:aws:iam::123456789012:oidc-provider/oidc.example.com/id/TEST",
	}
}

func (s *stubCluster) ApplyManifest(_ context.Context, id string, doc map[string]any) (cluster.ManifestHandle, error) {
	meta, _ := doc["metadata"].(map[string]any)
	name, _ := meta["name"].(string)
	kind, _ := doc["kind"].(string)
	return cluster.ManifestHandle{ID: id, Kind: kind, Name: name}, nil
}

func (s *stubCluster) InstallHelmChart(_ context.Context, id string, req cluster.ChartRequest) (cluster.ReleaseHandle, error) {
	s.releases = append(s.releases, req)
	return cluster.ReleaseHandle{ID: id, ReleaseName: req.ReleaseName, Namespace: req.Namespace}, nil
}

func (s *stubCluster) CreateFederatedRole(_ context.Context, req cluster.RoleRequest) (cluster.RoleHandle, error) {
	s.roles = append(s.roles, req)
	return cluster.RoleHandle{Name: req.Name, ARN: "arn:aws:iam::123456789012:role/" + req.Name}, nil
}

func saveAndRestoreFactories(t *testing.T) {
	t.Helper()
	origLoadConfigFile := loadConfigFile
	origReadFile := readFile
	origNewClusterHandle := newClusterHandle
	origDeployAddons := deployAddons

	t.Cleanup(func() {
		loadConfigFile = origLoadConfigFile
		readFile = origReadFile
		newClusterHandle = origNewClusterHandle
		deployAddons = origDeployAddons
	})
}

// writeTestConfig writes a config file plus the kubeconfig it references
// and returns the config path.
func writeTestConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	kubeconfigPath := filepath.Join(dir, "kubeconfig")
	require.NoError(t, os.WriteFile(kubeconfigPath, []byte("apiVersion: v1\nkind: Config\n"), 0600))

	configPath := filepath.Join(dir, "eklab.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(fmt.Sprintf(testConfig, kubeconfigPath)), 0600))

	return configPath
}

func TestDeploy_FullRun(t *testing.T) {
	saveAndRestoreFactories(t)

	stub := &stubCluster{}
	newClusterHandle = func(_ context.Context, opts eks.Options) (cluster.Handle, error) {
		assert.Equal(t, "homelab", opts.ClusterName)
		assert.Equal(t, "eu-central-1", opts.Region)
		assert.NotEmpty(t, opts.Kubeconfig)
		return stub, nil
	}

	err := Deploy(context.Background(), writeTestConfig(t))
	require.NoError(t, err)

	// Both addons deployed, dependency first.
	require.Len(t, stub.releases, 2)
	assert.Equal(t, "cert-manager", stub.releases[0].Chart)
	assert.Equal(t, "external-dns", stub.releases[1].Chart)

	// Federated role for external-dns, named for the environment.
	require.Len(t, stub.roles, 1)
	assert.Equal(t, "eklab-prod-sa-external-dns", stub.roles[0].Name)
}

func TestDeploy_ConfigFileMissing(t *testing.T) {
	saveAndRestoreFactories(t)

	err := Deploy(context.Background(), filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config")
}

func TestDeploy_KubeconfigMissing(t *testing.T) {
	saveAndRestoreFactories(t)

	configPath := writeTestConfig(t)

	readFile = func(string) ([]byte, error) {
		return nil, errors.New("no such file")
	}

	err := Deploy(context.Background(), configPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read kubeconfig")
}

func TestDeploy_ClusterConnectFails(t *testing.T) {
	saveAndRestoreFactories(t)

	newClusterHandle = func(context.Context, eks.Options) (cluster.Handle, error) {
		return nil, errors.New("DescribeCluster: access denied")
	}

	err := Deploy(context.Background(), writeTestConfig(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to connect to cluster")
}

func TestDeploy_OrchestratorErrorPropagates(t *testing.T) {
	saveAndRestoreFactories(t)

	newClusterHandle = func(context.Context, eks.Options) (cluster.Handle, error) {
		return &stubCluster{}, nil
	}

	sentinel := errors.New("chart pull failed")
	deployAddons = func(context.Context, addon.Options) (*addon.Result, error) {
		return nil, sentinel
	}

	err := Deploy(context.Background(), writeTestConfig(t))
	require.ErrorIs(t, err, sentinel)
}
