package handlers

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlan_ValidConfig(t *testing.T) {
	saveAndRestoreFactories(t)

	err := Plan(context.Background(), writeTestConfig(t))
	require.NoError(t, err)
}

func TestPlan_ConfigFileMissing(t *testing.T) {
	saveAndRestoreFactories(t)

	err := Plan(context.Background(), filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config")
}

func TestPlan_CycleIsRejected(t *testing.T) {
	saveAndRestoreFactories(t)

	config := `environment: dev
cluster:
  name: homelab
  region: eu-central-1
  kubeconfig: kubeconfig
addons:
  - name: a
    depends_on: [b]
    helm:
      chart: a
  - name: b
    depends_on: [a]
    helm:
      chart: b
`
	configPath := filepath.Join(t.TempDir(), "eklab.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(config), 0600))

	err := Plan(context.Background(), configPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cycle")
}
