package localnet

import (
	"math/big"
	"testing"

	"github.com/hardkit-labs/hardkit-cli/pkg/common"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTx(nonce uint64, tipGwei int64) *types.Transaction {
	to := ethcommon.HexToAddress("0x70997970C51812dc3A010C7d01b50e0d17dc79C8")
	return types.NewTx(&types.DynamicFeeTx{
		Nonce:     nonce,
		GasTipCap: new(big.Int).Mul(big.NewInt(tipGwei), big.NewInt(1e9)),
		GasFeeCap: new(big.Int).Mul(big.NewInt(tipGwei+100), big.NewInt(1e9)),
		Gas:       21000,
		To:        &to,
		Value:     big.NewInt(1),
	})
}

func TestNewMempoolRejectsUnknownOrder(t *testing.T) {
	_, err := NewMempool("priority")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown mempool order")
}

func TestMempoolFIFOKeepsSubmissionOrder(t *testing.T) {
	pool, err := NewMempool(common.MempoolOrderFIFO)
	require.NoError(t, err)

	// Submit with descending tips; FIFO must ignore them.
	first := testTx(0, 30)
	second := testTx(1, 20)
	third := testTx(2, 10)
	pool.Add(first)
	pool.Add(second)
	pool.Add(third)

	require.Equal(t, 3, pool.Len())
	drained := pool.Drain()
	require.Len(t, drained, 3)
	assert.Equal(t, first.Hash(), drained[0].Hash())
	assert.Equal(t, second.Hash(), drained[1].Hash())
	assert.Equal(t, third.Hash(), drained[2].Hash())
	assert.Equal(t, 0, pool.Len())
}

func TestMempoolFeesOrdersByTip(t *testing.T) {
	pool, err := NewMempool(common.MempoolOrderFees)
	require.NoError(t, err)

	low := testTx(0, 1)
	high := testTx(1, 50)
	mid := testTx(2, 10)
	pool.Add(low)
	pool.Add(high)
	pool.Add(mid)

	drained := pool.Drain()
	require.Len(t, drained, 3)
	assert.Equal(t, high.Hash(), drained[0].Hash())
	assert.Equal(t, mid.Hash(), drained[1].Hash())
	assert.Equal(t, low.Hash(), drained[2].Hash())
}

func TestMempoolFeesBreaksTiesByArrival(t *testing.T) {
	pool, err := NewMempool(common.MempoolOrderFees)
	require.NoError(t, err)

	first := testTx(0, 10)
	second := testTx(1, 10)
	pool.Add(first)
	pool.Add(second)

	drained := pool.Drain()
	require.Len(t, drained, 2)
	assert.Equal(t, first.Hash(), drained[0].Hash())
	assert.Equal(t, second.Hash(), drained[1].Hash())
}

func TestMempoolPendingDoesNotDrain(t *testing.T) {
	pool, err := NewMempool(common.MempoolOrderFIFO)
	require.NoError(t, err)

	pool.Add(testTx(0, 1))
	assert.Len(t, pool.Pending(), 1)
	assert.Equal(t, 1, pool.Len())
}
