package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/hardkit-labs/hardkit-cli/pkg/commands"
	configcmd "github.com/hardkit-labs/hardkit-cli/pkg/commands/config"
	keystorecmd "github.com/hardkit-labs/hardkit-cli/pkg/commands/keystore"
	networkcmd "github.com/hardkit-labs/hardkit-cli/pkg/commands/network"
	versioncmd "github.com/hardkit-labs/hardkit-cli/pkg/commands/version"
	"github.com/hardkit-labs/hardkit-cli/pkg/common"
	"github.com/hardkit-labs/hardkit-cli/pkg/hooks"

	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "hardkit",
		Usage: "CLI for compiling, testing and running Solidity projects against local and remote networks",
		Flags: common.GlobalFlags,
		Commands: []*cli.Command{
			commands.InitCommand,
			commands.AccountsCommand,
			commands.NodeCommand,
			commands.TelemetryCommand,
			configcmd.Command,
			networkcmd.Command,
			keystorecmd.KeystoreCommand,
			versioncmd.VersionCommand,
		},
		Before: func(cCtx *cli.Context) error {
			// Logger and progress tracker travel on the context.
			logger, tracker := common.GetLoggerFromCLIContext(cCtx)
			ctx := common.WithLogger(cCtx.Context, logger)
			ctx = common.WithProgressTracker(ctx, tracker)
			ctx = common.WithShutdown(ctx)
			cCtx.Context = ctx

			common.WithAppEnvironment(cCtx)

			if err := hooks.LoadEnvFile(cCtx); err != nil {
				return err
			}
			if err := hooks.WithFirstRunTelemetryPrompt(cCtx); err != nil {
				return err
			}
			return hooks.WithCommandMetricsContext(cCtx)
		},
	}

	chain := hooks.NewActionChain()
	chain.Use(hooks.WithMetricEmission)
	hooks.ApplyMiddleware(app.Commands, chain)

	if err := app.Run(os.Args); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
