package common

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const DefaultConfigPath = "config"

type ConfigBlock struct {
	Project  ProjectConfig  `json:"project" yaml:"project"`
	Solidity SolidityConfig `json:"solidity" yaml:"solidity"`
}

type ProjectConfig struct {
	Name             string `json:"name" yaml:"name"`
	Version          string `json:"version" yaml:"version"`
	DefaultNetwork   string `json:"default_network,omitempty" yaml:"default_network,omitempty"`
	ProjectUUID      string `json:"project_uuid,omitempty" yaml:"project_uuid,omitempty"`
	TelemetryEnabled bool   `json:"telemetry_enabled,omitempty" yaml:"telemetry_enabled,omitempty"`
}

// SolidityConfig holds the compiler settings passed to the external solc runner
type SolidityConfig struct {
	Version   string          `json:"version" yaml:"version"`
	Optimizer OptimizerConfig `json:"optimizer" yaml:"optimizer"`
}

// OptimizerConfig tunes the code-size/gas tradeoff. Runs estimates how often
// deployed code is expected to execute: higher values bias toward cheaper
// runtime gas at the cost of larger deployment size.
type OptimizerConfig struct {
	Enabled bool `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	Runs    int  `json:"runs,omitempty" yaml:"runs,omitempty"`
}

// MempoolConfig selects the pending-transaction ordering policy
type MempoolConfig struct {
	Order string `json:"order" yaml:"order"`
}

// MiningConfig declares how a local test network produces blocks.
// Automine mines one block per submitted transaction. Interval (seconds)
// mines on a fixed cadence; zero means no periodic mining. With both off,
// blocks are only produced on an explicit mine trigger.
type MiningConfig struct {
	Automine bool          `json:"automine,omitempty" yaml:"automine,omitempty"`
	Interval int           `json:"interval,omitempty" yaml:"interval,omitempty"`
	Mempool  MempoolConfig `json:"mempool" yaml:"mempool"`
}

// NetworkProfile describes one entry of the network profile set. Profiles
// with an rpc_url attach to an external node; profiles without one run the
// in-process local network.
type NetworkProfile struct {
	ChainID int          `json:"chain_id" yaml:"chain_id"`
	RPCURL  string       `json:"rpc_url,omitempty" yaml:"rpc_url,omitempty"`
	Mining  MiningConfig `json:"mining" yaml:"mining"`
}

// MiningInterval returns the configured interval as a duration
func (p NetworkProfile) MiningInterval() time.Duration {
	return time.Duration(p.Mining.Interval) * time.Second
}

type ConfigWithNetworksConfig struct {
	Config   ConfigBlock               `json:"config" yaml:"config"`
	Networks map[string]NetworkProfile `json:"networks" yaml:"networks"`
}

type Config struct {
	Version string      `json:"version" yaml:"version"`
	Config  ConfigBlock `json:"config" yaml:"config"`
}

type NetworkConfig struct {
	Version string         `json:"version" yaml:"version"`
	Network NetworkProfile `json:"network" yaml:"network"`
}

func LoadBaseConfig() (map[string]interface{}, error) {
	path := filepath.Join(DefaultConfigPath, "config.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read base config: %w", err)
	}
	var cfg map[string]interface{}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse base config: %w", err)
	}
	return cfg, nil
}

func LoadBaseConfigYaml() (*Config, error) {
	path := filepath.Join(DefaultConfigPath, "config.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg *Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := ValidateSolidityConfig(cfg.Config.Solidity); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfigWithNetworks loads the base config plus the requested network
// profile. An empty name resolves to the hardhat profile. The returned config
// is a fresh value on every call and is never mutated by the toolchain.
func LoadConfigWithNetworks(networkName string) (*ConfigWithNetworksConfig, error) {
	if networkName == "" {
		networkName = HardhatNetwork
	}

	// Load base config
	configPath := filepath.Join(DefaultConfigPath, BaseConfig)
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read base config: %w", err)
	}

	var cfg ConfigWithNetworksConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse base config: %w", err)
	}

	// Load requested network profile file
	networkFile := filepath.Join(DefaultConfigPath, "networks", networkName+".yaml")
	netData, err := os.ReadFile(networkFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read network %q file: %w", networkName, err)
	}

	var wrapper struct {
		Version string         `yaml:"version"`
		Network NetworkProfile `yaml:"network"`
	}

	if err := yaml.Unmarshal(netData, &wrapper); err != nil {
		return nil, fmt.Errorf("failed to parse network file %q: %w", networkFile, err)
	}

	if err := ValidateSolidityConfig(cfg.Config.Solidity); err != nil {
		return nil, err
	}
	if err := ValidateMiningConfig(networkName, wrapper.Network.Mining); err != nil {
		return nil, err
	}

	cfg.Networks = map[string]NetworkProfile{
		networkName: wrapper.Network,
	}

	return &cfg, nil
}

// LoadNetwork loads a network profile file as a YAML AST, returning the path,
// document root and the inner 'network' mapping node
func LoadNetwork(network string) (string, *yaml.Node, *yaml.Node, error) {
	networkDir := filepath.Join("config", "networks")
	yamlPath := path.Join(networkDir, fmt.Sprintf("%s.%s", network, "yaml"))

	// Load YAML as *yaml.Node
	rootNode, err := LoadYAML(yamlPath)
	if err != nil {
		return yamlPath, nil, nil, err
	}

	// YAML is parsed into a DocumentNode:
	//   - rootNode.Content[0] is the top-level MappingNode
	//   - It contains the 'network' mapping we're interested in
	if len(rootNode.Content) == 0 {
		return yamlPath, rootNode, nil, fmt.Errorf("empty YAML root node")
	}

	networkNode := GetChildByKey(rootNode.Content[0], "network")
	if networkNode == nil {
		return yamlPath, rootNode, nil, fmt.Errorf("missing 'network' key in ./config/networks/%s.yaml", network)
	}

	return yamlPath, rootNode, networkNode, nil
}

// ListNetworkProfiles returns the names of all network profile files on disk
func ListNetworkProfiles() ([]string, error) {
	networkDir := filepath.Join(DefaultConfigPath, "networks")
	entries, err := os.ReadDir(networkDir)
	if err != nil {
		return nil, fmt.Errorf("read networks dir: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		ext := filepath.Ext(name)
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		names = append(names, strings.TrimSuffix(name, ext))
	}
	return names, nil
}

// ValidateSolidityConfig rejects compiler settings the external runner cannot
// honor. An unsupported version fails here, at startup, before any command
// action runs.
func ValidateSolidityConfig(cfg SolidityConfig) error {
	if cfg.Version == "" {
		return fmt.Errorf("solidity.version is required; set it in ./config/%s", BaseConfig)
	}
	version := strings.TrimPrefix(cfg.Version, "v")
	supported := false
	for _, v := range SupportedSolcVersions {
		if v == version {
			supported = true
			break
		}
	}
	if !supported {
		return fmt.Errorf("unsupported solc version %q; supported versions are %s to %s",
			cfg.Version, SupportedSolcVersions[0], SupportedSolcVersions[len(SupportedSolcVersions)-1])
	}
	if cfg.Optimizer.Enabled && cfg.Optimizer.Runs <= 0 {
		return fmt.Errorf("solidity.optimizer.runs must be positive when the optimizer is enabled, got %d", cfg.Optimizer.Runs)
	}
	return nil
}

// ValidateMiningConfig rejects mining policies the local network cannot honor
func ValidateMiningConfig(networkName string, cfg MiningConfig) error {
	if cfg.Interval < 0 {
		return fmt.Errorf("network %q: mining.interval must not be negative, got %d", networkName, cfg.Interval)
	}
	switch cfg.Mempool.Order {
	case MempoolOrderFIFO, MempoolOrderFees:
		return nil
	case "":
		return fmt.Errorf("network %q: mining.mempool.order is required (%q or %q)", networkName, MempoolOrderFIFO, MempoolOrderFees)
	default:
		return fmt.Errorf("network %q: unknown mempool order %q (want %q or %q)", networkName, cfg.Mempool.Order, MempoolOrderFIFO, MempoolOrderFees)
	}
}

func RequireNonZero(s interface{}) error {
	v := reflect.ValueOf(s)
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return fmt.Errorf("must be non-nil")
		}
		v = v.Elem()
	}
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		// skip private or omitempty-tagged fields
		if f.PkgPath != "" || strings.Contains(f.Tag.Get("yaml"), "omitempty") {
			continue
		}
		fv := v.Field(i)
		if reflect.DeepEqual(fv.Interface(), reflect.Zero(f.Type).Interface()) {
			return fmt.Errorf("missing required field: %s", f.Name)
		}
		// if nested struct, recurse
		if fv.Kind() == reflect.Struct || (fv.Kind() == reflect.Ptr && fv.Elem().Kind() == reflect.Struct) {
			if err := RequireNonZero(fv.Interface()); err != nil {
				return fmt.Errorf("%s.%w", f.Name, err)
			}
		}
	}
	return nil
}
