package commands

import (
	"fmt"

	"github.com/hardkit-labs/hardkit-cli/pkg/common"
	"github.com/hardkit-labs/hardkit-cli/pkg/localnet"
	"github.com/hardkit-labs/hardkit-cli/pkg/runtime"

	"github.com/urfave/cli/v2"
)

// resolveEnvironment returns the runtime environment for the selected
// network. An environment injected into the context (by tests or
// embedders) wins; otherwise a profile with an rpc_url gets a JSON-RPC
// connection and a profile without one gets an in-process local node.
// The returned cleanup must be called when the command is done.
func resolveEnvironment(cCtx *cli.Context) (runtime.Environment, func(), error) {
	if env, ok := runtime.EnvironmentFromContext(cCtx.Context); ok {
		return env, func() {}, nil
	}

	logger := common.LoggerFromContext(cCtx.Context)
	networkName := common.SelectedNetwork(cCtx)
	cfg, err := common.LoadConfigWithNetworks(networkName)
	if err != nil {
		return nil, nil, err
	}
	profile, found := cfg.Networks[networkName]
	if !found {
		return nil, nil, fmt.Errorf("network %q not found in config/networks", networkName)
	}

	if profile.RPCURL != "" {
		logger.Debug("Connecting to %s at %s", networkName, profile.RPCURL)
		env, err := runtime.NewRPCEnvironment(cCtx.Context, profile.RPCURL)
		if err != nil {
			return nil, nil, err
		}
		return env, env.Close, nil
	}

	logger.Debug("Starting in-process node for network %s", networkName)
	node, err := localnet.NewLocalNode(profile, logger)
	if err != nil {
		return nil, nil, err
	}
	return node, node.Close, nil
}
