package commands

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/hardkit-labs/hardkit-cli/config"
	"github.com/hardkit-labs/hardkit-cli/config/configs"
	"github.com/hardkit-labs/hardkit-cli/config/networks"
	"github.com/hardkit-labs/hardkit-cli/pkg/common"
	"github.com/hardkit-labs/hardkit-cli/pkg/common/iface"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

// InitCommand defines the "init" command
var InitCommand = &cli.Command{
	Name:      "init",
	Usage:     "Initializes a new smart contract project scaffold",
	ArgsUsage: "<project-name> [target-dir]",
	Flags: append([]cli.Flag{
		&cli.StringFlag{
			Name:  "dir",
			Usage: "Set output directory for the new project",
			Value: ".",
		},
		&cli.BoolFlag{
			Name:  "overwrite",
			Usage: "Force overwrite if project directory already exists",
		},
		&cli.BoolFlag{
			Name:  "no-git",
			Usage: "Skip initializing a git repository",
		},
	}, common.GlobalFlags...),
	Action: func(cCtx *cli.Context) error {
		// exit early if no project name is provided
		if cCtx.NArg() == 0 {
			return fmt.Errorf("project name is required\nUsage: hardkit init <project-name> [flags]")
		}
		projectName := cCtx.Args().First()
		dest := cCtx.Args().Get(1)

		logger := common.LoggerFromContext(cCtx.Context)

		// use dest from dir flag or positional
		targetDir := dest
		if targetDir == "" {
			targetDir = cCtx.String("dir")
		}

		// ensure provided dir is absolute
		targetDir, err := filepath.Abs(filepath.Join(targetDir, projectName))
		if err != nil {
			return fmt.Errorf("failed to resolve absolute path for target directory: %w", err)
		}

		logger.Debug("Creating new project: %s", projectName)
		logger.Debug("Directory: %s", targetDir)

		if err := createProjectDir(logger, targetDir, cCtx.Bool("overwrite")); err != nil {
			return err
		}

		// Get app environment for UUID
		appEnv, ok := common.AppEnvironmentFromContext(cCtx.Context)
		if !ok {
			return fmt.Errorf("could not determine application environment")
		}

		// Save the users user_uuid to global config
		if err := common.SaveUserId(appEnv.UserUUID); err != nil {
			return fmt.Errorf("failed to save global settings: %w", err)
		}

		// Get global telemetry preference
		globalTelemetryEnabled, err := common.GetGlobalTelemetryPreference()
		if err != nil {
			logger.Debug("Unable to get global telemetry preference, defaulting to false: %v", err)
		}
		telemetryEnabled := false
		if globalTelemetryEnabled != nil {
			telemetryEnabled = *globalTelemetryEnabled
		}

		// Copy config.yaml and network profiles into the project
		if err := copyDefaultConfigToProject(logger, targetDir, projectName, appEnv.ProjectUUID, telemetryEnabled); err != nil {
			return fmt.Errorf("failed to initialize %s: %w", common.BaseConfig, err)
		}

		// Seed contracts/ with the sample contract
		if err := copySampleContractToProject(logger, targetDir); err != nil {
			return fmt.Errorf("failed to initialize contracts: %w", err)
		}

		// Write the example .env file
		err = os.WriteFile(filepath.Join(targetDir, ".env.example"), []byte(config.EnvExample), 0644)
		if err != nil {
			return fmt.Errorf("failed to write .env.example: %w", err)
		}

		if !cCtx.Bool("no-git") {
			if err := initGitRepo(cCtx, targetDir, logger); err != nil {
				logger.Warn("Failed to initialize Git repository in %s: %v", targetDir, err)
			}
		}

		logger.Info("\nProject %s created successfully in %s. Run 'cd %s' to get started.", projectName, targetDir, targetDir)
		return nil
	},
}

func createProjectDir(logger iface.Logger, targetDir string, overwrite bool) error {
	// Check if directory exists and handle overwrite
	if _, err := os.Stat(targetDir); !os.IsNotExist(err) {
		if !overwrite {
			return fmt.Errorf("directory %s already exists. Use --overwrite flag to force overwrite", targetDir)
		}
		if err := os.RemoveAll(targetDir); err != nil {
			return fmt.Errorf("failed to remove existing directory: %w", err)
		}
		logger.Debug("Removed existing directory: %s", targetDir)
	}

	// Create main project directory
	if err := os.MkdirAll(targetDir, 0755); err != nil {
		return fmt.Errorf("failed to create project directory: %w", err)
	}
	return nil
}

// copyDefaultConfigToProject writes config.yaml with the project's
// name, UUID and telemetry settings, plus the default network profiles.
func copyDefaultConfigToProject(logger iface.Logger, targetDir, projectName, projectUUID string, telemetryEnabled bool) error {
	destConfigDir := filepath.Join(targetDir, "config")
	if err := os.MkdirAll(destConfigDir, 0755); err != nil {
		return fmt.Errorf("failed to create target config directory: %w", err)
	}

	// Read config.yaml from config embed
	configContent := configs.ConfigYamls[configs.LatestVersion]

	var cfg common.Config
	if err := yaml.Unmarshal(configContent, &cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config YAML: %w", err)
	}
	cfg.Config.Project.Name = projectName
	cfg.Config.Project.ProjectUUID = projectUUID
	cfg.Config.Project.TelemetryEnabled = telemetryEnabled

	newContentBytes, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal modified config: %w", err)
	}

	err = os.WriteFile(filepath.Join(destConfigDir, common.BaseConfig), newContentBytes, 0644)
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", common.BaseConfig, err)
	}

	logger.Debug("Created config/%s in project directory", common.BaseConfig)

	// Copy all default network profiles
	destNetworksDir := filepath.Join(destConfigDir, "networks")
	if err := os.MkdirAll(destNetworksDir, 0755); err != nil {
		return fmt.Errorf("failed to create target networks directory: %w", err)
	}
	for name, content := range networks.NetworkYamls[networks.LatestVersion] {
		entryName := fmt.Sprintf("%s.yaml", name)

		err := os.WriteFile(filepath.Join(destNetworksDir, entryName), content, 0644)
		if err != nil {
			return fmt.Errorf("failed to write %s: %w", entryName, err)
		}

		logger.Debug("Copied network profile: %s", entryName)
	}

	return nil
}

func copySampleContractToProject(logger iface.Logger, targetDir string) error {
	destContractsDir := filepath.Join(targetDir, common.ContractsDir)
	if err := os.MkdirAll(destContractsDir, 0755); err != nil {
		return fmt.Errorf("failed to create contracts directory: %w", err)
	}
	err := os.WriteFile(filepath.Join(destContractsDir, "Counter.sol"), []byte(config.SampleContract), 0644)
	if err != nil {
		return fmt.Errorf("failed to write Counter.sol: %w", err)
	}
	logger.Debug("Created %s/Counter.sol", common.ContractsDir)
	return nil
}

// initGitRepo initializes a fresh Git repository in the target directory.
func initGitRepo(ctx *cli.Context, targetDir string, logger iface.Logger) error {
	logger.Debug("Initializing Git repository in %s...", targetDir)

	cmd := exec.CommandContext(ctx.Context, "git", "init")
	cmd.Dir = targetDir
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("git init failed: %w\nOutput: %s", err, string(output))
	}

	// write a .gitignore into the new dir
	return os.WriteFile(filepath.Join(targetDir, ".gitignore"), []byte(config.GitIgnore), 0644)
}
