package localnet

import (
	"context"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/hardkit-labs/hardkit-cli/pkg/common"
	"github.com/hardkit-labs/hardkit-cli/pkg/common/iface"
	"github.com/hardkit-labs/hardkit-cli/pkg/runtime"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient/simulated"
	"github.com/ethereum/go-ethereum/params"
	"github.com/robfig/cron/v3"
)

// devAccountBalance is 10000 ETH in wei, matching what anvil funds.
var devAccountBalance = new(big.Int).Mul(big.NewInt(10_000), big.NewInt(params.Ether))

// chainBackend is the sealing engine under the local node. Split out
// so ordering behavior is testable without a full EVM.
type chainBackend interface {
	sendTransaction(ctx context.Context, tx *types.Transaction) error
	commit() ethcommon.Hash
	chainID(ctx context.Context) (*big.Int, error)
	close() error
}

type simulatedChain struct {
	backend *simulated.Backend
	client  simulated.Client
}

func newSimulatedChain(signers []runtime.Signer) *simulatedChain {
	alloc := types.GenesisAlloc{}
	for _, s := range signers {
		alloc[s.Address] = types.Account{Balance: new(big.Int).Set(devAccountBalance)}
	}
	backend := simulated.NewBackend(alloc)
	return &simulatedChain{backend: backend, client: backend.Client()}
}

func (c *simulatedChain) sendTransaction(ctx context.Context, tx *types.Transaction) error {
	return c.client.SendTransaction(ctx, tx)
}

func (c *simulatedChain) commit() ethcommon.Hash {
	return c.backend.Commit()
}

func (c *simulatedChain) chainID(ctx context.Context) (*big.Int, error) {
	return c.client.ChainID(ctx)
}

func (c *simulatedChain) close() error {
	return c.backend.Close()
}

// LocalNode is an in-process development chain. It implements
// runtime.Environment with the dev accounts unlocked and mining driven
// by the network profile: automine, a fixed interval, or on-demand
// Mine calls.
type LocalNode struct {
	logger  iface.Logger
	chain   chainBackend
	pool    *Mempool
	signers []runtime.Signer

	mu       sync.Mutex
	automine bool
	ticker   *cron.Cron
}

var _ runtime.Environment = (*LocalNode)(nil)

// NewLocalNode starts a node configured by profile.
func NewLocalNode(profile common.NetworkProfile, logger iface.Logger) (*LocalNode, error) {
	signers, err := runtime.DevSigners()
	if err != nil {
		return nil, err
	}
	return newLocalNode(profile, logger, signers, newSimulatedChain(signers))
}

func newLocalNode(profile common.NetworkProfile, logger iface.Logger, signers []runtime.Signer, chain chainBackend) (*LocalNode, error) {
	pool, err := NewMempool(profile.Mining.Mempool.Order)
	if err != nil {
		return nil, err
	}
	node := &LocalNode{
		logger:   logger,
		chain:    chain,
		pool:     pool,
		signers:  signers,
		automine: profile.Mining.Automine,
	}
	if interval := profile.MiningInterval(); interval > 0 {
		if err := node.SetIntervalMining(context.Background(), interval); err != nil {
			_ = chain.close()
			return nil, err
		}
	}
	return node, nil
}

func (n *LocalNode) Signers(ctx context.Context) ([]runtime.Signer, error) {
	signers := make([]runtime.Signer, len(n.signers))
	copy(signers, n.signers)
	return signers, nil
}

// SendTransaction queues tx, or mines it immediately when automine is
// on.
func (n *LocalNode) SendTransaction(ctx context.Context, tx *types.Transaction) error {
	n.mu.Lock()
	automine := n.automine
	n.mu.Unlock()

	if !automine {
		n.pool.Add(tx)
		n.logger.Debug("Queued transaction %s (%d pending)", tx.Hash().Hex(), n.pool.Len())
		return nil
	}

	if err := n.chain.sendTransaction(ctx, tx); err != nil {
		return fmt.Errorf("failed to submit transaction %s: %w", tx.Hash().Hex(), err)
	}
	block := n.chain.commit()
	n.logger.Debug("Mined transaction %s in block %s", tx.Hash().Hex(), block.Hex())
	return nil
}

// Mine seals n mining rounds. Each round drains the mempool in its
// configured order; every drained transaction is sealed in its own
// block, so block order on chain is exactly the mempool's sequencing.
// A round with an empty mempool seals one empty block.
func (n *LocalNode) Mine(ctx context.Context, rounds int) error {
	if rounds <= 0 {
		return fmt.Errorf("block count must be positive, got %d", rounds)
	}
	n.mu.Lock()
	defer n.mu.Unlock()

	for i := 0; i < rounds; i++ {
		txs := n.pool.Drain()
		if len(txs) == 0 {
			n.chain.commit()
			continue
		}
		for _, tx := range txs {
			if err := n.chain.sendTransaction(ctx, tx); err != nil {
				return fmt.Errorf("failed to mine transaction %s: %w", tx.Hash().Hex(), err)
			}
			n.chain.commit()
		}
		n.logger.Debug("Mined %d pending transactions", len(txs))
	}
	return nil
}

func (n *LocalNode) SetAutomine(ctx context.Context, enabled bool) error {
	n.mu.Lock()
	n.automine = enabled
	n.mu.Unlock()

	if enabled {
		// Flush anything queued while automine was off.
		if n.pool.Len() > 0 {
			return n.Mine(ctx, 1)
		}
	}
	return nil
}

func (n *LocalNode) SetIntervalMining(ctx context.Context, interval time.Duration) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.ticker != nil {
		n.ticker.Stop()
		n.ticker = nil
	}
	if interval <= 0 {
		return nil
	}

	ticker := cron.New()
	_, err := ticker.AddFunc(fmt.Sprintf("@every %s", interval), func() {
		if err := n.Mine(context.Background(), 1); err != nil {
			n.logger.Warn("interval mining failed: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule interval mining: %w", err)
	}
	ticker.Start()
	n.ticker = ticker
	return nil
}

func (n *LocalNode) ChainID(ctx context.Context) (*big.Int, error) {
	return n.chain.chainID(ctx)
}

// PendingCount reports how many transactions are queued for the next
// block.
func (n *LocalNode) PendingCount() int {
	return n.pool.Len()
}

func (n *LocalNode) Close() {
	n.mu.Lock()
	if n.ticker != nil {
		n.ticker.Stop()
		n.ticker = nil
	}
	n.mu.Unlock()
	if err := n.chain.close(); err != nil {
		n.logger.Warn("failed to close local chain: %v", err)
	}
}
