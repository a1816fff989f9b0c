package commands

import (
	"github.com/hardkit-labs/hardkit-cli/pkg/common"
	"github.com/urfave/cli/v2"
)

// NodeCommand defines the "node" command
var NodeCommand = &cli.Command{
	Name:  "node",
	Usage: "Manage the local development node (Docker-based)",
	Subcommands: []*cli.Command{
		{
			Name:  "start",
			Usage: "Starts a local node configured by the selected network profile",
			Flags: append([]cli.Flag{
				&cli.IntFlag{
					Name:  "port",
					Usage: "Specify a custom port for the local node",
					Value: common.DefaultLocalNodePort,
				},
				&cli.StringFlag{
					Name:  "fork",
					Usage: "Fork state from a remote RPC URL",
				},
				&cli.Uint64Flag{
					Name:  "fork-block",
					Usage: "Pin the fork to a specific block number",
				},
				&cli.BoolFlag{
					Name:  "no-fund",
					Usage: "Skip topping up the dev accounts after startup",
				},
			}, common.GlobalFlags...),
			Action: StartNodeAction,
		},
		{
			Name:  "stop",
			Usage: "Stops and removes node containers",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  "all",
					Usage: "Stop all running node containers",
				},
				&cli.StringFlag{
					Name:  "project.name",
					Usage: "Stop the container associated with the given project name",
				},
				&cli.IntFlag{
					Name:  "port",
					Usage: "Stop the container running on the specified port",
				},
			},
			Action: StopNodeAction,
		},
		{
			Name:   "list",
			Usage:  "Lists all running hardkit node containers with their ports",
			Action: ListNodeContainersAction,
		},
		{
			Name:  "mine",
			Usage: "Mine blocks on demand on the running node",
			Flags: append([]cli.Flag{
				&cli.IntFlag{
					Name:  "blocks",
					Usage: "Number of blocks to mine",
					Value: 1,
				},
			}, common.GlobalFlags...),
			Action: MineAction,
		},
	},
}
