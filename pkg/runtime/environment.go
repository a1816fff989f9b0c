package runtime

import (
	"context"
	"math/big"
	"time"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// Signer is an account the connected node can sign with.
type Signer struct {
	Address ethcommon.Address
}

// Environment is the runtime handle commands use to talk to a chain.
// Implementations exist for external JSON-RPC nodes and for the
// in-process local node.
type Environment interface {
	// Signers returns the node's unlocked accounts, in the node's
	// enumeration order.
	Signers(ctx context.Context) ([]Signer, error)

	// SendTransaction submits a signed transaction. Depending on the
	// node's mining mode the transaction is either mined immediately
	// or queued until the next block.
	SendTransaction(ctx context.Context, tx *types.Transaction) error

	// Mine produces n blocks on demand.
	Mine(ctx context.Context, n int) error

	// SetAutomine toggles per-transaction mining.
	SetAutomine(ctx context.Context, enabled bool) error

	// SetIntervalMining sets the fixed block cadence. Zero disables
	// interval mining.
	SetIntervalMining(ctx context.Context, interval time.Duration) error

	// ChainID reports the chain the environment is connected to.
	ChainID(ctx context.Context) (*big.Int, error)

	// Close releases the underlying connection or node.
	Close()
}

type environmentContextKey struct{}

// WithEnvironment returns a context carrying env. Commands resolve
// their environment from context first so tests and embedders can
// inject one.
func WithEnvironment(ctx context.Context, env Environment) context.Context {
	return context.WithValue(ctx, environmentContextKey{}, env)
}

// EnvironmentFromContext extracts an injected Environment, if any.
func EnvironmentFromContext(ctx context.Context) (Environment, bool) {
	env, ok := ctx.Value(environmentContextKey{}).(Environment)
	return env, ok
}
