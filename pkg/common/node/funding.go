package node

import (
	"context"
	"fmt"
	"math/big"
	"os"
	"time"

	"github.com/hardkit-labs/hardkit-cli/pkg/common"
	"github.com/hardkit-labs/hardkit-cli/pkg/common/iface"
	"github.com/hardkit-labs/hardkit-cli/pkg/runtime"

	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/params"
	"github.com/ethereum/go-ethereum/rpc"
)

// DevAccountBalanceETH is the balance each dev account is topped up to
// on a fresh node.
const DevAccountBalanceETH = 10_000

// minimum balance below which an account gets re-funded
var fundingThreshold = new(big.Int).Mul(big.NewInt(100), big.NewInt(params.Ether))

// WaitForNode polls the node until it answers eth_chainId or the
// timeout elapses.
func WaitForNode(ctx context.Context, rpcURL string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for {
		client, err := ethclient.DialContext(ctx, rpcURL)
		if err == nil {
			_, err = client.ChainID(ctx)
			client.Close()
			if err == nil {
				return nil
			}
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("node at %s not ready after %s: %w", rpcURL, timeout, err)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(500 * time.Millisecond):
		}
	}
}

// FundDevAccounts tops the well-known dev accounts back up to the
// standard balance using the node's setBalance cheat. Accounts above
// the threshold are left alone.
func FundDevAccounts(ctx context.Context, rpcURL string, logger iface.Logger) error {
	if os.Getenv("SKIP_NODE_FUNDING") == "true" {
		logger.Info("🔧 Skipping dev account funding (test mode)")
		return nil
	}

	rpcClient, err := rpc.DialContext(ctx, rpcURL)
	if err != nil {
		return fmt.Errorf("failed to connect to node: %w", err)
	}
	defer rpcClient.Close()
	ethClient := ethclient.NewClient(rpcClient)

	signers, err := runtime.DevSigners()
	if err != nil {
		return err
	}

	target := new(big.Int).Mul(big.NewInt(DevAccountBalanceETH), big.NewInt(params.Ether))
	for _, signer := range signers {
		balance, err := ethClient.BalanceAt(ctx, signer.Address, nil)
		if err != nil {
			return fmt.Errorf("failed to read balance of %s: %w", signer.Address.Hex(), err)
		}
		if balance.Cmp(fundingThreshold) >= 0 {
			continue
		}
		if err := common.SetBalance(rpcClient, signer.Address, target); err != nil {
			return fmt.Errorf("failed to fund %s: %w", signer.Address.Hex(), err)
		}
		logger.Debug("Funded %s", signer.Address.Hex())
	}
	return nil
}
