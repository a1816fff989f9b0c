package network

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hardkit-labs/hardkit-cli/pkg/commands/config"
	"github.com/hardkit-labs/hardkit-cli/pkg/common"
	"gopkg.in/yaml.v3"

	"github.com/urfave/cli/v2"
)

var Command = &cli.Command{
	Name:  "network",
	Usage: "Views or manages network profiles (stored in config/networks directory)",
	Subcommands: []*cli.Command{
		CreateNetworkCommand,
	},
	Flags: append([]cli.Flag{
		&cli.BoolFlag{
			Name:  "list",
			Usage: "Display all settings of the selected network profile",
		},
		&cli.BoolFlag{
			Name:  "edit",
			Usage: "Open selected network profile in a text editor for manual editing",
		},
		&cli.StringSliceFlag{
			Name:  "set",
			Usage: "Set a value into the selected network profile (--set mining.interval=5)",
		},
	}, common.GlobalFlags...),
	Action: func(cCtx *cli.Context) error {
		logger := common.LoggerFromContext(cCtx.Context)

		// Identify the network we are working against
		network := cCtx.String("network")
		// Locate the networks directory
		networkDir := filepath.Join("config", "networks")
		// Pull positional args
		args := cCtx.Args().Slice()
		// Get the sets
		items := cCtx.StringSlice("set")

		// Pull available networks
		if network == "" && (len(args) == 0 || len(items) > 0) {
			// List available profiles and prompt for a pick
			picked, err := ListNetworks(networkDir, cCtx.Bool("list"))
			if err != nil {
				return fmt.Errorf("failed to list networks %w", err)
			}
			network = picked[0]
			// add empty line
			fmt.Println()
		} else if network == "" && len(args) > 0 {
			// Select the last arg
			last := len(args) - 1
			// Only treat as network if it’s not a key=value
			if !strings.Contains(args[last], "=") {
				network = args[last]
				args = args[:last]
			}
		}

		// No network provided
		if network == "" {
			return fmt.Errorf("cannot proceed without a selected network")
		}

		// Path to the network profile yaml
		networkPath := filepath.Join(networkDir, fmt.Sprintf("%s.yaml", network))

		// Open editor for the network profile
		if cCtx.Bool("edit") {
			logger.Info("Opening network profile for editing...")
			return config.EditConfig(cCtx, networkPath, config.Network, network)
		}

		// Set values using dot.delim to navigate keys
		if len(items) > 0 {
			// Slice any position args to the items list
			items = append(items, args...)

			// Load the network yaml
			rootDoc, err := common.LoadYAML(networkPath)
			if err != nil {
				return fmt.Errorf("read network YAML: %w", err)
			}
			root := rootDoc.Content[0]
			networkNode := common.GetChildByKey(root, "network")
			if networkNode == nil {
				networkNode = &yaml.Node{Kind: yaml.MappingNode}
				root.Content = append(root.Content,
					&yaml.Node{Kind: yaml.ScalarNode, Value: "network"},
					networkNode,
				)
			}
			for _, item := range items {
				// Split into "key.path.to.field" and "value"
				idx := strings.LastIndex(item, "=")
				if idx < 0 {
					return fmt.Errorf("invalid --set syntax %q (want key=val)", item)
				}
				pathStr := item[:idx]
				val := item[idx+1:]

				// Break the key path into segments
				path := strings.Split(pathStr, ".")

				// Set val at path
				networkNode, err = common.WriteToPath(networkNode, path, val)
				if err != nil {
					return fmt.Errorf("setting value %s failed: %w", item, err)
				}
				logger.Info("Set %s = %s", pathStr, val)
			}
			if err := common.WriteYAML(networkPath, rootDoc); err != nil {
				return fmt.Errorf("write network YAML: %w", err)
			}
			return nil
		}

		// Persist the chosen network into base config.yaml
		if !cCtx.Bool("list") {
			// Verify network profile exists
			if _, err := os.Stat(networkPath); os.IsNotExist(err) {
				return fmt.Errorf("this network does not exist, create it with `hardkit network create %s`", network)
			}
			cfgPath := filepath.Join("config", common.BaseConfig)

			// synthesize a single project.default_network assignment
			items := []string{"project.default_network=" + network}
			doc, err := common.LoadYAML(cfgPath)
			if err != nil {
				return fmt.Errorf("read base config: %w", err)
			}
			root := doc.Content[0]
			cfgNode := common.GetChildByKey(root, "config")
			if cfgNode == nil {
				cfgNode = &yaml.Node{Kind: yaml.MappingNode}
				root.Content = append(
					root.Content,
					&yaml.Node{Kind: yaml.ScalarNode, Value: "config"},
					cfgNode,
				)
			}
			for _, it := range items {
				parts := strings.SplitN(it, "=", 2)
				cfgNode, err = common.WriteToPath(cfgNode, strings.Split(parts[0], "."), parts[1])
				if err != nil {
					return fmt.Errorf("failed to set %s: %w", it, err)
				}
			}

			// Write the base config.yaml back to disk
			if err := common.WriteYAML(cfgPath, doc); err != nil {
				return fmt.Errorf("write config: %w", err)
			}
			logger.Info("Default network successfully set to %s", network)
			return nil
		}

		// List the network profile
		err := common.ListYaml(networkPath, logger)
		if err != nil {
			return fmt.Errorf("this network does not exist, create it with `hardkit network create %s`", network)
		}

		return nil
	},
}
