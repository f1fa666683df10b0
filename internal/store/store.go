// internal/store/store.go

// Package store persists the ledger's accepted-transfer journal as
// line-delimited JSON. Appends are fsynced; compaction rewrites through a
// temp file and rename so a crash never leaves a torn journal.
package store

import (
	"bufio"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"time"
)

// Record is one accepted transfer. Commitments are stored hex-encoded;
// plaintext amounts never appear here.
type Record struct {
	Sender              string    `json:"sender"`
	Recipient           string    `json:"recipient"`
	SenderCommitment    string    `json:"sender_commitment"`
	RecipientCommitment string    `json:"recipient_commitment"`
	SenderVersion       uint64    `json:"sender_version"`
	RecipientVersion    uint64    `json:"recipient_version"`
	ProofLen            int       `json:"proof_len"`
	AppliedAt           time.Time `json:"applied_at"`
}

type Journal struct {
	path string
}

const maxScanSize = 1 << 20

func New(path string) *Journal {
	_ = os.MkdirAll(filepath.Dir(path), 0700)
	return &Journal{path: path}
}

func newScanner(r io.Reader) *bufio.Scanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxScanSize)
	return sc
}

func syncFile(f *os.File) error {
	if f == nil {
		return nil
	}
	return f.Sync()
}

func syncDir(path string) {
	dir, err := os.Open(filepath.Dir(path))
	if err != nil {
		return
	}
	defer dir.Close()
	_ = dir.Sync()
}

func (j *Journal) Append(r Record) error {
	f, err := os.OpenFile(j.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := json.NewEncoder(f).Encode(r); err != nil {
		return err
	}
	return syncFile(f)
}

func (j *Journal) List() ([]Record, error) {
	f, err := os.OpenFile(j.path, os.O_CREATE|os.O_RDONLY, 0600)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []Record
	sc := newScanner(f)
	for sc.Scan() {
		var r Record
		if err := json.Unmarshal(sc.Bytes(), &r); err == nil {
			out = append(out, r)
		}
	}
	return out, sc.Err()
}

// Compact keeps only the newest keep records, rewriting atomically.
func (j *Journal) Compact(keep int) error {
	recs, err := j.List()
	if err != nil {
		return err
	}
	if keep > 0 && len(recs) > keep {
		recs = recs[len(recs)-keep:]
	}

	tmp := j.path + ".tmp"
	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0600)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(f)
	for _, r := range recs {
		if err := enc.Encode(r); err != nil {
			_ = f.Close()
			return err
		}
	}
	if err := syncFile(f); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmp, j.path); err != nil {
		return err
	}
	syncDir(j.path)
	return nil
}
