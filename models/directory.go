package models

import (
	"encoding/hex"
	"fmt"
)

// ValueState is one published version of a user's key material, stored as json in the kv.
type ValueState struct {
	User       string `json:"user"`
	Value      string `json:"value"`
	Version    uint64 `json:"version"`
	Epoch      uint64 `json:"epoch"`
	Commitment string `json:"commitment"`
}

func (v ValueState) String() string {
	return fmt.Sprintf("ValueState:%s, version: %d, epoch: %d, value: %s", v.User, v.Version, v.Epoch, v.Value)
}

// EpochHash is the root hash of the directory at one epoch.
type EpochHash struct {
	Epoch uint64 `json:"epoch"`
	Hash  []byte `json:"-"`
}

// Hex returns the hex encoding of the hash.
func (e EpochHash) Hex() string {
	return hex.EncodeToString(e.Hash)
}

// MarshalJSON renders the hash as hex.
func (e EpochHash) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf(`{"epoch":%d,"hash":%q}`, e.Epoch, e.Hex())), nil
}

// LookupProof is the latest state of a user together with the root it was resolved against.
type LookupProof struct {
	State ValueState `json:"state"`
	Root  EpochHash  `json:"root"`
}

// HistoryEntry pairs a published version with the root of the epoch it landed in.
type HistoryEntry struct {
	State ValueState `json:"state"`
	Root  EpochHash  `json:"root"`
}

// HistoryProof lists every version of a user in ascending order.
type HistoryProof struct {
	User    string         `json:"user"`
	Entries []HistoryEntry `json:"entries"`
}

// AuditProof carries what is needed to recompute the root chain from Start to End.
// Commitments[i] is the commitment published in epoch Start.Epoch+i+1.
type AuditProof struct {
	Start       EpochHash `json:"start"`
	End         EpochHash `json:"end"`
	Commitments []string  `json:"commitments"`
}
