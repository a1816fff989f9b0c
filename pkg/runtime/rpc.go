package runtime

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/hardkit-labs/hardkit-cli/pkg/common"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
)

// RPCEnvironment is an Environment backed by an external JSON-RPC node
// (anvil, hardhat node, or a full client).
type RPCEnvironment struct {
	rpcClient *rpc.Client
	ethClient *ethclient.Client
}

var _ Environment = (*RPCEnvironment)(nil)

// NewRPCEnvironment dials the node at rawURL.
func NewRPCEnvironment(ctx context.Context, rawURL string) (*RPCEnvironment, error) {
	client, err := rpc.DialContext(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("failed to dial node at %s: %w", rawURL, err)
	}
	return &RPCEnvironment{
		rpcClient: client,
		ethClient: ethclient.NewClient(client),
	}, nil
}

func (e *RPCEnvironment) Signers(ctx context.Context) ([]Signer, error) {
	var addresses []ethcommon.Address
	if err := e.rpcClient.CallContext(ctx, &addresses, "eth_accounts"); err != nil {
		return nil, fmt.Errorf("eth_accounts failed: %w", err)
	}
	signers := make([]Signer, 0, len(addresses))
	for _, addr := range addresses {
		signers = append(signers, Signer{Address: addr})
	}
	return signers, nil
}

func (e *RPCEnvironment) SendTransaction(ctx context.Context, tx *types.Transaction) error {
	return e.ethClient.SendTransaction(ctx, tx)
}

func (e *RPCEnvironment) Mine(ctx context.Context, n int) error {
	return common.MineBlocks(e.rpcClient, n)
}

func (e *RPCEnvironment) SetAutomine(ctx context.Context, enabled bool) error {
	return common.SetAutomine(e.rpcClient, enabled)
}

func (e *RPCEnvironment) SetIntervalMining(ctx context.Context, interval time.Duration) error {
	return common.SetIntervalMining(e.rpcClient, interval)
}

func (e *RPCEnvironment) ChainID(ctx context.Context) (*big.Int, error) {
	return e.ethClient.ChainID(ctx)
}

func (e *RPCEnvironment) Close() {
	e.rpcClient.Close()
}
