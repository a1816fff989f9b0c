package common

import "github.com/urfave/cli/v2"

// GlobalFlags defines flags that apply to the entire application (global flags).
var GlobalFlags = []cli.Flag{
	&cli.BoolFlag{
		Name:    "verbose",
		Aliases: []string{"v"},
		Usage:   "Enable verbose logging",
	},
	&cli.StringFlag{
		Name:  "network",
		Usage: "Network profile to run against (defaults to project.default_network)",
	},
	&cli.BoolFlag{
		Name:  "enable-telemetry",
		Usage: "Enable telemetry collection on first run without prompting",
	},
	&cli.BoolFlag{
		Name:  "disable-telemetry",
		Usage: "Disable telemetry collection on first run without prompting",
	},
}

// SelectedNetwork resolves the network profile name for a command: the
// --network flag wins, then the project default, then the hardhat profile.
func SelectedNetwork(cCtx *cli.Context) string {
	if name := cCtx.String("network"); name != "" {
		return name
	}
	if cfg, err := LoadBaseConfigYaml(); err == nil && cfg.Config.Project.DefaultNetwork != "" {
		return cfg.Config.Project.DefaultNetwork
	}
	return HardhatNetwork
}
