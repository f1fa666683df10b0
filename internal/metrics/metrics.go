// internal/metrics/metrics.go
package metrics

import (
	"encoding/json"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

// TransferHeader summarizes one verification attempt for the recent list.
// Only non-secret data goes in here: account prefixes, sizes, verdicts.
type TransferHeader struct {
	Sender    string `json:"sender"`
	Recipient string `json:"recipient"`
	ProofLen  int    `json:"proof_len"`
	Accepted  bool   `json:"accepted"`
	Reason    string `json:"reason,omitempty"`
}

type Snapshot struct {
	GeneratedAt time.Time        `json:"generated_at"`
	Transfer    TransferMetrics  `json:"transfer"`
	Account     AccountMetrics   `json:"account"`
	Recent      []TransferHeader `json:"recent"`
}

type TransferMetrics struct {
	Verified         uint64 `json:"verified"`
	DropZKFail       uint64 `json:"drop_zk_fail"`
	DropBadRequest   uint64 `json:"drop_bad_request"`
	DropInsufficient uint64 `json:"drop_insufficient"`
}

type AccountMetrics struct {
	Opened      uint64 `json:"opened"`
	Deposits    uint64 `json:"deposits"`
	Withdrawals uint64 `json:"withdrawals"`
}

type Metrics struct {
	transferVerified         atomic.Uint64
	transferDropZKFail       atomic.Uint64
	transferDropBadRequest   atomic.Uint64
	transferDropInsufficient atomic.Uint64
	accountsOpened           atomic.Uint64
	deposits                 atomic.Uint64
	withdrawals              atomic.Uint64
	recent                   *TransferRecent
}

func New() *Metrics {
	return &Metrics{recent: NewTransferRecent(64)}
}

func (m *Metrics) Recent() *TransferRecent {
	return m.recent
}

func (m *Metrics) IncTransferVerified() {
	m.transferVerified.Add(1)
}

func (m *Metrics) IncTransferDropZKFail() {
	m.transferDropZKFail.Add(1)
}

func (m *Metrics) IncTransferDropBadRequest() {
	m.transferDropBadRequest.Add(1)
}

func (m *Metrics) IncTransferDropInsufficient() {
	m.transferDropInsufficient.Add(1)
}

func (m *Metrics) IncAccountsOpened() {
	m.accountsOpened.Add(1)
}

func (m *Metrics) IncDeposits() {
	m.deposits.Add(1)
}

func (m *Metrics) IncWithdrawals() {
	m.withdrawals.Add(1)
}

func (m *Metrics) Snapshot() Snapshot {
	recent := []TransferHeader{}
	if m.recent != nil {
		recent = m.recent.List()
	}
	return Snapshot{
		GeneratedAt: time.Now().UTC(),
		Transfer: TransferMetrics{
			Verified:         m.transferVerified.Load(),
			DropZKFail:       m.transferDropZKFail.Load(),
			DropBadRequest:   m.transferDropBadRequest.Load(),
			DropInsufficient: m.transferDropInsufficient.Load(),
		},
		Account: AccountMetrics{
			Opened:      m.accountsOpened.Load(),
			Deposits:    m.deposits.Load(),
			Withdrawals: m.withdrawals.Load(),
		},
		Recent: recent,
	}
}

func (m *Metrics) WriteSnapshot(path string) error {
	if path == "" {
		return nil
	}
	snap := m.Snapshot()
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

type TransferRecent struct {
	mu   sync.Mutex
	cap  int
	list []TransferHeader
}

func NewTransferRecent(capacity int) *TransferRecent {
	if capacity <= 0 {
		capacity = 64
	}
	return &TransferRecent{cap: capacity}
}

func (r *TransferRecent) Add(h TransferHeader) {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.list) >= r.cap {
		copy(r.list, r.list[1:])
		r.list[len(r.list)-1] = h
		return
	}
	r.list = append(r.list, h)
}

func (r *TransferRecent) List() []TransferHeader {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]TransferHeader, len(r.list))
	copy(out, r.list)
	return out
}
