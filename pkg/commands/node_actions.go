package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	assets "github.com/hardkit-labs/hardkit-cli/docker/anvil"
	"github.com/hardkit-labs/hardkit-cli/config/configs"
	"github.com/hardkit-labs/hardkit-cli/config/networks"
	"github.com/hardkit-labs/hardkit-cli/pkg/common"
	"github.com/hardkit-labs/hardkit-cli/pkg/common/iface"
	"github.com/hardkit-labs/hardkit-cli/pkg/common/node"
	"github.com/hardkit-labs/hardkit-cli/pkg/migration"

	"github.com/ethereum/go-ethereum/rpc"
	"github.com/urfave/cli/v2"
)

// FoundryImage is the image the node container runs.
const FoundryImage = "ghcr.io/foundry-rs/foundry:latest"

func StartNodeAction(cCtx *cli.Context) error {
	// Check if docker is running, else try to start it
	if err := common.EnsureDockerIsRunning(cCtx); err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		return cli.Exit(err.Error(), 1)
	}

	logger := common.LoggerFromContext(cCtx.Context)

	// Migrate config
	configMigrated, err := migrateConfig(logger)
	if err != nil {
		logger.Error("config migration failed: %v", err)
	}
	if configMigrated > 0 {
		logger.Info("Config migration complete")
	}

	// Migrate network profiles
	networksMigrated, err := migrateNetworks(logger)
	if err != nil {
		logger.Error("network migrations failed: %v", err)
	}
	if networksMigrated > 0 {
		suffix := "s"
		if networksMigrated == 1 {
			suffix = ""
		}
		logger.Info("%d network migration%s complete", networksMigrated, suffix)
	}

	networkName := common.SelectedNetwork(cCtx)
	config, err := common.LoadConfigWithNetworks(networkName)
	if err != nil {
		return err
	}
	profile, found := config.Networks[networkName]
	if !found {
		return fmt.Errorf("network %q not found in config/networks", networkName)
	}

	port := cCtx.Int("port")
	if !node.IsPortAvailable(port) {
		return fmt.Errorf("❌ Port %d is already in use. Please choose a different port using --port", port)
	}

	startTime := time.Now()
	logger.Info("Starting local node on network %s...\n", networkName)

	composePath, err := assets.WriteDockerComposeToPath()
	if err != nil {
		return fmt.Errorf("could not write embedded docker-compose.yaml: %w", err)
	}

	anvilArgs, err := buildAnvilArgs(profile, cCtx)
	if err != nil {
		return err
	}

	containerName := node.ContainerName(config.Config.Project.Name)
	cmd := exec.CommandContext(cCtx.Context, "docker", "compose", "-p", config.Config.Project.Name, "-f", composePath, "up", "-d")
	cmd.Env = append(os.Environ(),
		"FOUNDRY_IMAGE="+FoundryImage,
		"ANVIL_ARGS="+anvilArgs,
		fmt.Sprintf("NODE_PORT=%d", port),
		"NODE_CONTAINER_NAME="+containerName,
	)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("❌ Failed to start node: %w", err)
	}

	rpcUrl := node.GetRPCURL(port)
	logger.Info("Waiting for node to be ready...")
	if err := node.WaitForNode(cCtx.Context, rpcUrl, 30*time.Second); err != nil {
		return err
	}

	// Record the live RPC URL in the network profile so other commands
	// pick it up.
	if err := updateNetworkRPCURL(networkName, rpcUrl); err != nil {
		return err
	}

	if !cCtx.Bool("no-fund") {
		if err := node.FundDevAccounts(cCtx.Context, rpcUrl, logger); err != nil {
			return err
		}
	}

	logger.Info("✅ Node %s listening at %s (took %s)", containerName, rpcUrl, time.Since(startTime).Round(time.Millisecond))
	return nil
}

// buildAnvilArgs maps the network profile's chain and mining settings
// onto anvil's flags.
func buildAnvilArgs(profile common.NetworkProfile, cCtx *cli.Context) (string, error) {
	args := []string{fmt.Sprintf("--chain-id %d", profile.ChainID)}

	if !profile.Mining.Automine {
		args = append(args, "--no-mining")
	}
	if profile.Mining.Interval > 0 {
		args = append(args, fmt.Sprintf("--block-time %d", profile.Mining.Interval))
	}
	args = append(args, "--order "+profile.Mining.Mempool.Order)

	if fork := cCtx.String("fork"); fork != "" {
		args = append(args, "--fork-url "+node.EnsureDockerHost(fork))
		if block := cCtx.Uint64("fork-block"); block > 0 {
			args = append(args, fmt.Sprintf("--fork-block-number %d", block))
		}
	}
	return strings.Join(args, " "), nil
}

func updateNetworkRPCURL(networkName string, rpcUrl string) error {
	yamlPath, rootNode, networkNode, err := common.LoadNetwork(networkName)
	if err != nil {
		return fmt.Errorf("network profile loading failed: %w", err)
	}
	rpcUrlNode := common.GetChildByKey(networkNode, "rpc_url")
	if rpcUrlNode == nil {
		return nil
	}
	rpcUrlNode.Value = rpcUrl
	return common.WriteYAML(yamlPath, rootNode)
}

func StopNodeAction(cCtx *cli.Context) error {
	log := common.LoggerFromContext(cCtx.Context)

	if cCtx.Bool("all") {
		cmd := exec.CommandContext(cCtx.Context, "docker", node.GetDockerPsNodeArgs()...)
		output, err := cmd.Output()
		if err != nil {
			return fmt.Errorf("failed to list node containers: %w", err)
		}
		lines := strings.Split(strings.TrimSpace(string(output)), "\n")
		if len(lines) == 0 || (len(lines) == 1 && lines[0] == "") {
			fmt.Printf("%s🚫 No node containers running.%s\n", node.Yellow, node.Reset)
			return nil
		}

		if cCtx.Bool("verbose") {
			log.Info("Attempting to stop node containers...")
		}
		for _, line := range lines {
			name := strings.TrimSpace(strings.Split(line, ": ")[0])
			if name == "" {
				continue
			}
			node.StopAndRemoveContainer(cCtx, name)
		}
		return nil
	}

	projectName := cCtx.String("project.name")
	projectPort := cCtx.Int("port")

	if projectName != "" || projectPort != 0 {
		if projectName != "" {
			node.StopAndRemoveContainer(cCtx, node.ContainerName(projectName))
			return nil
		}

		// Only a port was given; find the container bound to it.
		cmd := exec.CommandContext(cCtx.Context, "docker", node.GetDockerPsNodeArgs()...)
		output, err := cmd.Output()
		if err != nil {
			log.Warn("Failed to list running node containers: %v", err)
		}
		lines := strings.Split(strings.TrimSpace(string(output)), "\n")
		for _, line := range lines {
			parts := strings.Split(line, ": ")
			if len(parts) != 2 {
				continue
			}
			containerName := parts[0]
			hostPort := extractHostPort(parts[1])
			if hostPort == fmt.Sprintf("%d", projectPort) {
				node.StopAndRemoveContainer(cCtx, containerName)
				log.Info("Stopped node container running on port %d", projectPort)
				return nil
			}
		}
		log.Info("No container found with port %d. Try %shardkit node list%s to get a list of running node containers", projectPort, node.Cyan, node.Reset)
		return nil
	}

	if _, err := os.Stat(filepath.Join("config", common.BaseConfig)); err == nil {
		config, err := common.LoadBaseConfigYaml()
		if err != nil {
			return err
		}
		node.StopAndRemoveContainer(cCtx, node.ContainerName(config.Config.Project.Name))
		return nil
	}

	log.Info("Run this command from the project directory or run %shardkit node stop --help%s for available commands", node.Cyan, node.Reset)
	return nil
}

func ListNodeContainersAction(cCtx *cli.Context) error {
	cmd := exec.CommandContext(cCtx.Context, "docker", node.GetDockerPsNodeArgs()...)
	output, err := cmd.Output()
	if err != nil {
		return fmt.Errorf("failed to list node containers: %w", err)
	}
	lines := strings.Split(strings.TrimSpace(string(output)), "\n")
	if len(lines) == 0 || (len(lines) == 1 && lines[0] == "") {
		fmt.Printf("%s🚫 No node containers running.%s\n", node.Yellow, node.Reset)
		return nil
	}
	fmt.Printf("%s📦 Running Node Containers:%s\n\n", node.Blue, node.Reset)
	for _, line := range lines {
		parts := strings.Split(line, ": ")
		if len(parts) != 2 {
			continue
		}
		name := parts[0]
		port := extractHostPort(parts[1])
		fmt.Printf("%s  -  %s%-25s%s %s→%s  %shttp://localhost:%s%s\n",
			node.Cyan, node.Reset,
			name,
			node.Reset,
			node.Green, node.Reset,
			node.Yellow, port, node.Reset,
		)
	}
	return nil
}

// MineAction mines blocks on the selected network's node via evm_mine.
func MineAction(cCtx *cli.Context) error {
	logger := common.LoggerFromContext(cCtx.Context)

	networkName := common.SelectedNetwork(cCtx)
	config, err := common.LoadConfigWithNetworks(networkName)
	if err != nil {
		return err
	}
	profile, found := config.Networks[networkName]
	if !found {
		return fmt.Errorf("network %q not found in config/networks", networkName)
	}
	rpcUrl := profile.RPCURL
	if rpcUrl == "" {
		rpcUrl = node.GetRPCURL(common.DefaultLocalNodePort)
	}

	client, err := rpc.DialContext(cCtx.Context, rpcUrl)
	if err != nil {
		return fmt.Errorf("failed to dial node at %s: %w", rpcUrl, err)
	}
	defer client.Close()

	blocks := cCtx.Int("blocks")
	if err := common.MineBlocks(client, blocks); err != nil {
		return err
	}
	logger.Info("Mined %d block(s) on %s", blocks, networkName)
	return nil
}

// extractHostPort pulls the host port out of a docker port mapping like
// "0.0.0.0:8545->8545/tcp".
func extractHostPort(portStr string) string {
	parts := strings.Split(portStr, "->")
	if len(parts) == 0 {
		return ""
	}
	hostParts := strings.Split(parts[0], ":")
	return hostParts[len(hostParts)-1]
}

func migrateConfig(logger iface.Logger) (int, error) {
	configPath := filepath.Join("config", common.BaseConfig)

	err := migration.MigrateYaml(logger, configPath, configs.LatestVersion, configs.MigrationChain)
	alreadyUptoDate := errors.Is(err, migration.ErrAlreadyUpToDate)
	if err != nil && !alreadyUptoDate {
		return 0, fmt.Errorf("failed to migrate: %v", err)
	}
	if !alreadyUptoDate {
		logger.Info("Migrated %s\n", configPath)
		return 1, nil
	}
	return 0, nil
}

func migrateNetworks(logger iface.Logger) (int, error) {
	networksMigrated := 0
	networkDir := filepath.Join("config", "networks")

	entries, err := os.ReadDir(networkDir)
	if err != nil {
		return 0, fmt.Errorf("unable to read network directory: %v", err)
	}

	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		networkPath := filepath.Join(networkDir, e.Name())

		err := migration.MigrateYaml(logger, networkPath, networks.LatestVersion, networks.MigrationChain)
		alreadyUptoDate := errors.Is(err, migration.ErrAlreadyUpToDate)
		if err != nil && !alreadyUptoDate {
			logger.Error("failed to migrate: %v", err)
			continue
		}
		if !alreadyUptoDate {
			networksMigrated += 1
			logger.Info("Migrated %s\n", networkPath)
		}
	}

	return networksMigrated, nil
}
