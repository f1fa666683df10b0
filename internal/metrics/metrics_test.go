package metrics

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestMetricsCounters(t *testing.T) {
	m := New()
	m.IncTransferVerified()
	m.IncTransferVerified()
	m.IncTransferDropZKFail()
	m.IncTransferDropBadRequest()
	m.IncTransferDropInsufficient()
	m.IncAccountsOpened()
	m.IncDeposits()
	m.IncDeposits()
	m.IncWithdrawals()
	snap := m.Snapshot()
	if snap.Transfer.Verified != 2 {
		t.Fatalf("expected verified=2, got %d", snap.Transfer.Verified)
	}
	if snap.Transfer.DropZKFail != 1 || snap.Transfer.DropBadRequest != 1 || snap.Transfer.DropInsufficient != 1 {
		t.Fatalf("unexpected transfer drop counts: %+v", snap.Transfer)
	}
	if snap.Account.Opened != 1 || snap.Account.Deposits != 2 || snap.Account.Withdrawals != 1 {
		t.Fatalf("unexpected account counts: %+v", snap.Account)
	}
}

func TestWriteSnapshot(t *testing.T) {
	m := New()
	m.IncTransferVerified()
	m.Recent().Add(TransferHeader{Sender: "aa", Recipient: "bb", ProofLen: 1026, Accepted: true})
	path := filepath.Join(t.TempDir(), "metrics.json")
	if err := m.WriteSnapshot(path); err != nil {
		t.Fatalf("write snapshot failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if snap.Transfer.Verified != 1 || len(snap.Recent) != 1 {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}

	// Empty path is a no-op.
	if err := m.WriteSnapshot(""); err != nil {
		t.Fatalf("empty path errored: %v", err)
	}
}

func TestRecentRing(t *testing.T) {
	r := NewTransferRecent(2)
	r.Add(TransferHeader{Sender: "a"})
	r.Add(TransferHeader{Sender: "b"})
	r.Add(TransferHeader{Sender: "c"})
	list := r.List()
	if len(list) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(list))
	}
	if list[0].Sender != "b" || list[1].Sender != "c" {
		t.Fatalf("ring did not evict oldest: %+v", list)
	}
}
