package testutils

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/hardkit-labs/hardkit-cli/config/configs"
	"github.com/hardkit-labs/hardkit-cli/config/networks"
	"github.com/hardkit-labs/hardkit-cli/pkg/common"
	"github.com/hardkit-labs/hardkit-cli/pkg/common/logger"

	"github.com/urfave/cli/v2"
)

type ctxKey string

// ConfigContextKey identifies the ConfigWithNetworksConfig in context
const ConfigContextKey ctxKey = "ConfigWithNetworksConfig"

func testConfig() *common.ConfigWithNetworksConfig {
	return &common.ConfigWithNetworksConfig{
		Config: common.ConfigBlock{
			Project: common.ProjectConfig{
				Name:           "test-project",
				DefaultNetwork: common.HardhatNetwork,
			},
			Solidity: common.SolidityConfig{
				Version: "0.8.17",
				Optimizer: common.OptimizerConfig{
					Enabled: true,
					Runs:    200,
				},
			},
		},
		Networks: map[string]common.NetworkProfile{
			common.HardhatNetwork: {
				ChainID: common.DefaultLocalChainId,
				Mining: common.MiningConfig{
					Automine: false,
					Interval: 0,
					Mempool: common.MempoolConfig{
						Order: common.MempoolOrderFIFO,
					},
				},
			},
		},
	}
}

func WithTestConfig(cmd *cli.Command) *cli.Command {
	cmd.Before = func(cCtx *cli.Context) error {
		ctx := context.WithValue(cCtx.Context, ConfigContextKey, testConfig())
		cCtx.Context = ctx
		return nil
	}
	return cmd
}

// WithTestConfigAndNoopLogger sets up a test configuration and no-op logger for silent testing
func WithTestConfigAndNoopLogger(cmd *cli.Command) *cli.Command {
	cmd.Before = func(cCtx *cli.Context) error {
		noopLogger := logger.NewNoopLogger()
		noopProgressTracker := logger.NewNoopProgressTracker()

		ctx := context.WithValue(cCtx.Context, ConfigContextKey, testConfig())
		ctx = common.WithLogger(ctx, noopLogger)
		ctx = common.WithProgressTracker(ctx, noopProgressTracker)
		cCtx.Context = ctx
		return nil
	}
	return cmd
}

// CreateTestAppWithNoopLoggerAndAccess creates a CLI app with no-op logger and returns both app and logger
func CreateTestAppWithNoopLoggerAndAccess(name string, flags []cli.Flag, action cli.ActionFunc) (*cli.App, *logger.NoopLogger) {
	noopLogger := logger.NewNoopLogger()
	noopProgressTracker := logger.NewNoopProgressTracker()
	app := &cli.App{
		Name:  name,
		Flags: flags,
		Before: func(cCtx *cli.Context) error {
			// Use the same logger instance
			ctx := common.WithLogger(cCtx.Context, noopLogger)
			ctx = common.WithProgressTracker(ctx, noopProgressTracker)
			cCtx.Context = ctx
			return nil
		},
		Action: action,
	}
	return app, noopLogger
}

// WithTestConfigAndNoopLoggerAndAccess sets up test config and no-op logger, returning both command and logger
func WithTestConfigAndNoopLoggerAndAccess(cmd *cli.Command) (*cli.Command, *logger.NoopLogger) {
	noopLogger := logger.NewNoopLogger()
	noopProgressTracker := logger.NewNoopProgressTracker()
	cmd.Before = func(cCtx *cli.Context) error {
		ctx := context.WithValue(cCtx.Context, ConfigContextKey, testConfig())
		ctx = common.WithLogger(ctx, noopLogger)
		ctx = common.WithProgressTracker(ctx, noopProgressTracker)
		cCtx.Context = ctx
		return nil
	}
	return cmd, noopLogger
}

// CreateTempProject creates a temp project dir with the embedded default
// config.yaml and hardhat network profile written under config/.
func CreateTempProject(t *testing.T) (string, error) {
	tempDir, err := os.MkdirTemp("", "hardkit-test-project-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp dir: %w", err)
	}

	// Create config/ directory
	destConfigDir := filepath.Join(tempDir, "config")
	if err := os.MkdirAll(destConfigDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create config dir: %w", err)
	}

	// Copy config.yaml
	destConfigFile := filepath.Join(destConfigDir, common.BaseConfig)
	err = os.WriteFile(destConfigFile, configs.ConfigYamls[configs.LatestVersion], 0644)
	if err != nil {
		return "", fmt.Errorf("failed to copy %s: %w", common.BaseConfig, err)
	}

	// Create config/networks directory
	destNetworksDir := filepath.Join(destConfigDir, "networks")
	if err := os.MkdirAll(destNetworksDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create config/networks dir: %w", err)
	}

	// Copy every embedded network profile
	for name, yamlBytes := range networks.NetworkYamls[networks.LatestVersion] {
		destNetworkFile := filepath.Join(destNetworksDir, name+".yaml")
		if err := os.WriteFile(destNetworkFile, yamlBytes, 0644); err != nil {
			return "", fmt.Errorf("failed to create config/networks/%s.yaml: %w", name, err)
		}
	}

	return tempDir, nil
}

func FindSubcommandByName(name string, commands []*cli.Command) *cli.Command {
	for _, cmd := range commands {
		if cmd.Name == name {
			return cmd
		}
	}
	return nil
}

func CaptureOutput(fn func()) (stdout string, stderr string) {
	// Get the logger
	log, _ := common.GetLogger(true)
	// Capture stdout
	origStdout := os.Stdout
	origStderr := os.Stderr
	rOut, wOut, _ := os.Pipe()
	rErr, wErr, _ := os.Pipe()
	os.Stdout = wOut
	os.Stderr = wErr

	outC := make(chan string)
	errC := make(chan string)

	go func() {
		var buf bytes.Buffer
		if _, err := buf.ReadFrom(rOut); err != nil {
			log.Warn("failed to read stdout: %v", err)
		}
		outC <- buf.String()
	}()

	go func() {
		var buf bytes.Buffer
		if _, err := buf.ReadFrom(rErr); err != nil {
			log.Warn("failed to read stdout: %v", err)
		}
		errC <- buf.String()
	}()

	// Run target code
	fn()

	// Restore
	wOut.Close()
	wErr.Close()
	os.Stdout = origStdout
	os.Stderr = origStderr

	stdout = <-outC
	stderr = <-errC

	return stdout, stderr
}
