package network

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hardkit-labs/hardkit-cli/config/networks"
	"github.com/hardkit-labs/hardkit-cli/pkg/common"
	"github.com/urfave/cli/v2"
)

// CreateNetworkCommand defines the "network create" subcommand
var CreateNetworkCommand = &cli.Command{
	Name:  "create",
	Usage: "Create a new network profile",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "network",
			Usage: "Name of the network profile to create",
		},
		&cli.BoolFlag{
			Name:  "force",
			Usage: "Force the profile to be overwritten",
		},
	},
	Action: func(cCtx *cli.Context) error {
		logger := common.LoggerFromContext(cCtx.Context)

		networkName := cCtx.String("network")
		if args := cCtx.Args().Slice(); len(args) > 0 {
			networkName = args[0]
		}
		if networkName == "" {
			return fmt.Errorf("cannot create a network profile without a name")
		}

		// path + ensure dir
		networkPath := filepath.Join("config", "networks", fmt.Sprintf("%s.yaml", networkName))
		if err := os.MkdirAll(filepath.Dir(networkPath), 0755); err != nil {
			return fmt.Errorf("failed to make networks dir: %w", err)
		}

		// create if missing or forced
		if _, err := os.Stat(networkPath); err != nil || cCtx.Bool("force") {
			logger.Info("Creating a new network profile for %s", networkName)
			if err := CreateNetwork(networkPath, networkName); err != nil {
				return fmt.Errorf("failed to create new network profile: %w", err)
			}
		} else {
			return fmt.Errorf("network already exists, if you want to recreate try `hardkit network create --force %s`", networkName)
		}

		logger.Info("Network profile successfully created at %s", networkPath)
		logger.Info("")
		logger.Info("  - To view your new profile call: `hardkit network --list %s`", networkName)
		logger.Info("  - To edit your new profile call: `hardkit network --edit %s`", networkName)
		logger.Info("")
		return nil
	},
}

// CreateNetwork writes a new profile seeded from the latest embedded
// hardhat defaults.
func CreateNetwork(networkPath, networkName string) error {
	content := networks.NetworkYamls[networks.LatestVersion][common.HardhatNetwork]
	entryName := fmt.Sprintf("%s.yaml", networkName)

	// Write the new profile
	err := os.WriteFile(networkPath, content, 0644)
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", entryName, err)
	}

	return nil
}
