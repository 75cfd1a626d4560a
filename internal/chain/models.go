// Package chain implements a tamper-evident, append-only event log. Every
// entry commits to the SHA-256 digest of its predecessor, so rewriting any
// historical record breaks every link after it.
//
// The log lives in a single line-delimited JSON file inside a data directory.
// A Log owns the path and the write lock; create one per data directory and
// share it between callers.
package chain

import (
	"strings"
	"time"
)

// FileName is the log file created inside the data directory.
const FileName = "audit_chain.jsonl"

// GenesisHash is the previous_hash of the first entry in every chain.
var GenesisHash = strings.Repeat("0", 64)

// Entry is one persisted record of the chain.
type Entry struct {
	Timestamp    time.Time `json:"timestamp"`
	Event        string    `json:"event"`
	Payload      Payload   `json:"payload"`
	PreviousHash string    `json:"previous_hash"`
	Hash         string    `json:"hash"`
}

// IsGenesis reports whether the entry claims to be the first in its chain.
func (e Entry) IsGenesis() bool {
	return e.PreviousHash == GenesisHash
}

// canonicalEntry fixes the field order used for hashing. Keys are declared in
// lexicographic order so the encoding matches a sorted-key serializer.
type canonicalEntry struct {
	Event        string  `json:"event"`
	Payload      Payload `json:"payload"`
	PreviousHash string  `json:"previous_hash"`
	Timestamp    string  `json:"timestamp"`
}
