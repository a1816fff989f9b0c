package localnet

import (
	"fmt"
	"sort"
	"sync"

	"github.com/hardkit-labs/hardkit-cli/pkg/common"

	"github.com/ethereum/go-ethereum/core/types"
)

type pendingTx struct {
	tx  *types.Transaction
	seq uint64
}

// Mempool queues transactions between blocks. The order policy decides
// how queued transactions are sequenced when a block is mined: "fifo"
// preserves strict submission order, "fees" sorts by tip with
// submission order breaking ties.
type Mempool struct {
	mu      sync.Mutex
	order   string
	nextSeq uint64
	pending []pendingTx
}

func NewMempool(order string) (*Mempool, error) {
	switch order {
	case common.MempoolOrderFIFO, common.MempoolOrderFees:
	default:
		return nil, fmt.Errorf("unknown mempool order %q", order)
	}
	return &Mempool{order: order}, nil
}

// Add queues tx. The submission sequence number is assigned under the
// lock so concurrent senders still get a total arrival order.
func (m *Mempool) Add(tx *types.Transaction) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pending = append(m.pending, pendingTx{tx: tx, seq: m.nextSeq})
	m.nextSeq++
}

// Len reports the number of queued transactions.
func (m *Mempool) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pending)
}

// Pending returns the queued transactions in the order they would be
// mined, without removing them.
func (m *Mempool) Pending() []*types.Transaction {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sequencedLocked()
}

// Drain removes and returns all queued transactions in mining order.
func (m *Mempool) Drain() []*types.Transaction {
	m.mu.Lock()
	defer m.mu.Unlock()
	txs := m.sequencedLocked()
	m.pending = nil
	return txs
}

func (m *Mempool) sequencedLocked() []*types.Transaction {
	queued := make([]pendingTx, len(m.pending))
	copy(queued, m.pending)

	if m.order == common.MempoolOrderFees {
		// Stable sort keeps arrival order among equal tips.
		sort.SliceStable(queued, func(i, j int) bool {
			return queued[i].tx.GasTipCap().Cmp(queued[j].tx.GasTipCap()) > 0
		})
	}

	txs := make([]*types.Transaction, 0, len(queued))
	for _, p := range queued {
		txs = append(txs, p.tx)
	}
	return txs
}
