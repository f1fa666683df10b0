// Package wallet keeps client-side transfer receipts. A receipt records
// the verification verdict for a submitted proof, with commitments hex
// encoded and no plaintext amounts.
package wallet

import (
	"bufio"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

type Receipt struct {
	ID               string    `json:"id"`
	Sender           string    `json:"sender,omitempty"`
	Recipient        string    `json:"recipient,omitempty"`
	AmountCommitment string    `json:"amount_commitment"`
	ProofLen         int       `json:"proof_len"`
	Accepted         bool      `json:"accepted"`
	Reason           string    `json:"reason,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

type Store struct {
	path string
}

func NewStore(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("missing path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, err
	}
	return &Store{path: path}, nil
}

func NewReceipt(amountCommitment string, proofLen int, accepted bool, reason string) (Receipt, error) {
	if amountCommitment == "" {
		return Receipt{}, fmt.Errorf("missing amount commitment")
	}
	var id [32]byte
	if _, err := rand.Read(id[:]); err != nil {
		return Receipt{}, err
	}
	return Receipt{
		ID:               hex.EncodeToString(id[:]),
		AmountCommitment: amountCommitment,
		ProofLen:         proofLen,
		Accepted:         accepted,
		Reason:           reason,
		CreatedAt:        time.Now().UTC(),
	}, nil
}

func (s *Store) Add(r Receipt) error {
	if s == nil || s.path == "" {
		return fmt.Errorf("missing store")
	}
	if r.ID == "" {
		return fmt.Errorf("missing receipt id")
	}
	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	return enc.Encode(r)
}

func (s *Store) List(limit int) ([]Receipt, error) {
	if s == nil || s.path == "" {
		return nil, fmt.Errorf("missing store")
	}
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()
	if limit <= 0 {
		limit = 100
	}
	out := make([]Receipt, 0, limit)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var r Receipt
		if err := json.Unmarshal(scanner.Bytes(), &r); err != nil {
			continue
		}
		out = append(out, r)
		if len(out) >= limit {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return out, err
	}
	return out, nil
}
