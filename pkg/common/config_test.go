package common

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBaseConfigYaml = `version: 0.0.2
config:
  project:
    name: test-project
    version: 0.1.0
    default_network: hardhat
    telemetry_enabled: false
  solidity:
    version: 0.8.17
    optimizer:
      enabled: true
      runs: 200
`

const testHardhatNetworkYaml = `version: 0.0.2
network:
  chain_id: 31337
  mining:
    automine: false
    interval: 0
    mempool:
      order: fifo
`

// writeTestProject lays out a minimal project config dir and chdirs into it
func writeTestProject(t *testing.T, baseYaml, networkYaml string) {
	t.Helper()
	tmpDir := t.TempDir()

	networksDir := filepath.Join(tmpDir, "config", "networks")
	require.NoError(t, os.MkdirAll(networksDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config", BaseConfig), []byte(baseYaml), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(networksDir, "hardhat.yaml"), []byte(networkYaml), 0644))

	originalCwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tmpDir))
	t.Cleanup(func() {
		require.NoError(t, os.Chdir(originalCwd))
	})
}

func TestLoadConfigWithNetworks(t *testing.T) {
	writeTestProject(t, testBaseConfigYaml, testHardhatNetworkYaml)

	cfg, err := LoadConfigWithNetworks(HardhatNetwork)
	require.NoError(t, err)

	// Compiler settings pass through unmodified
	assert.Equal(t, "0.8.17", cfg.Config.Solidity.Version)
	assert.True(t, cfg.Config.Solidity.Optimizer.Enabled)
	assert.Equal(t, 200, cfg.Config.Solidity.Optimizer.Runs)

	// The hardhat profile resolves to manual FIFO mining
	profile, found := cfg.Networks[HardhatNetwork]
	require.True(t, found)
	assert.Equal(t, 31337, profile.ChainID)
	assert.False(t, profile.Mining.Automine)
	assert.Equal(t, 0, profile.Mining.Interval)
	assert.Equal(t, MempoolOrderFIFO, profile.Mining.Mempool.Order)
	assert.Zero(t, profile.MiningInterval())
}

func TestLoadConfigWithNetworksDefaultsToHardhat(t *testing.T) {
	writeTestProject(t, testBaseConfigYaml, testHardhatNetworkYaml)

	cfg, err := LoadConfigWithNetworks("")
	require.NoError(t, err)
	_, found := cfg.Networks[HardhatNetwork]
	assert.True(t, found)
}

func TestLoadConfigWithNetworksRejectsUnsupportedCompiler(t *testing.T) {
	badConfig := `version: 0.0.2
config:
  project:
    name: test-project
    version: 0.1.0
    default_network: hardhat
  solidity:
    version: 0.9.99
    optimizer:
      enabled: true
      runs: 200
`
	writeTestProject(t, badConfig, testHardhatNetworkYaml)

	_, err := LoadConfigWithNetworks(HardhatNetwork)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported solc version")
}

func TestValidateSolidityConfig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     SolidityConfig
		wantErr string
	}{
		{
			name: "supported version with optimizer",
			cfg:  SolidityConfig{Version: "0.8.17", Optimizer: OptimizerConfig{Enabled: true, Runs: 200}},
		},
		{
			name: "v-prefixed version",
			cfg:  SolidityConfig{Version: "v0.8.17", Optimizer: OptimizerConfig{Enabled: false}},
		},
		{
			name: "optimizer disabled needs no runs",
			cfg:  SolidityConfig{Version: "0.8.26"},
		},
		{
			name:    "missing version",
			cfg:     SolidityConfig{},
			wantErr: "solidity.version is required",
		},
		{
			name:    "unsupported version",
			cfg:     SolidityConfig{Version: "0.4.24"},
			wantErr: "unsupported solc version",
		},
		{
			name:    "optimizer enabled without runs",
			cfg:     SolidityConfig{Version: "0.8.17", Optimizer: OptimizerConfig{Enabled: true}},
			wantErr: "optimizer.runs must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSolidityConfig(tt.cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestValidateMiningConfig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     MiningConfig
		wantErr string
	}{
		{
			name: "manual fifo mining",
			cfg:  MiningConfig{Automine: false, Interval: 0, Mempool: MempoolConfig{Order: MempoolOrderFIFO}},
		},
		{
			name: "interval mining by fees",
			cfg:  MiningConfig{Interval: 5, Mempool: MempoolConfig{Order: MempoolOrderFees}},
		},
		{
			name:    "negative interval",
			cfg:     MiningConfig{Interval: -1, Mempool: MempoolConfig{Order: MempoolOrderFIFO}},
			wantErr: "must not be negative",
		},
		{
			name:    "missing order",
			cfg:     MiningConfig{},
			wantErr: "mempool.order is required",
		},
		{
			name:    "unknown order",
			cfg:     MiningConfig{Mempool: MempoolConfig{Order: "random"}},
			wantErr: "unknown mempool order",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateMiningConfig(HardhatNetwork, tt.cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestListNetworkProfiles(t *testing.T) {
	writeTestProject(t, testBaseConfigYaml, testHardhatNetworkYaml)

	names, err := ListNetworkProfiles()
	require.NoError(t, err)
	assert.Equal(t, []string{"hardhat"}, names)
}

func TestRequireNonZero(t *testing.T) {
	type inner struct {
		Order string `yaml:"order"`
	}
	type outer struct {
		Name     string `yaml:"name"`
		Optional string `yaml:"optional,omitempty"`
		Nested   inner  `yaml:"nested"`
	}

	err := RequireNonZero(outer{Name: "x", Nested: inner{Order: "fifo"}})
	assert.NoError(t, err)

	err = RequireNonZero(outer{Nested: inner{Order: "fifo"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Name")

	err = RequireNonZero(outer{Name: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Nested")
}
