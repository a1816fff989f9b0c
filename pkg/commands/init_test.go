package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hardkit-labs/hardkit-cli/pkg/common"
	"github.com/hardkit-labs/hardkit-cli/pkg/common/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestCopyDefaultConfigToProject(t *testing.T) {
	tmpDir := t.TempDir()
	log := logger.NewNoopLogger()

	err := copyDefaultConfigToProject(log, tmpDir, "demo-project", "uuid-1234", true)
	require.NoError(t, err)

	// config.yaml carries the project name, UUID and telemetry choice
	data, err := os.ReadFile(filepath.Join(tmpDir, "config", common.BaseConfig))
	require.NoError(t, err)

	var cfg common.Config
	require.NoError(t, yaml.Unmarshal(data, &cfg))
	assert.Equal(t, "demo-project", cfg.Config.Project.Name)
	assert.Equal(t, "uuid-1234", cfg.Config.Project.ProjectUUID)
	assert.True(t, cfg.Config.Project.TelemetryEnabled)

	// default solidity settings survive the rewrite
	assert.Equal(t, "0.8.17", cfg.Config.Solidity.Version)
	assert.True(t, cfg.Config.Solidity.Optimizer.Enabled)
	assert.Equal(t, 200, cfg.Config.Solidity.Optimizer.Runs)

	// network profiles land next to it
	for _, name := range []string{"hardhat", "localhost"} {
		_, err := os.Stat(filepath.Join(tmpDir, "config", "networks", name+".yaml"))
		require.NoError(t, err, "expected network profile %s", name)
	}
}

func TestCopySampleContractToProject(t *testing.T) {
	tmpDir := t.TempDir()

	err := copySampleContractToProject(logger.NewNoopLogger(), tmpDir)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(tmpDir, common.ContractsDir, "Counter.sol"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "pragma solidity")
}

func TestCreateProjectDirRefusesExistingWithoutOverwrite(t *testing.T) {
	tmpDir := t.TempDir()
	target := filepath.Join(tmpDir, "proj")
	require.NoError(t, os.MkdirAll(target, 0755))

	err := createProjectDir(logger.NewNoopLogger(), target, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	require.NoError(t, createProjectDir(logger.NewNoopLogger(), target, true))
}
