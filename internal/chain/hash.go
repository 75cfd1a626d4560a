package chain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// CanonicalBytes returns the deterministic encoding an entry's hash is
// computed over. The hash field itself is excluded.
func CanonicalBytes(e Entry) ([]byte, error) {
	if err := e.Payload.Validate(); err != nil {
		return nil, err
	}
	return marshalCompact(canonicalEntry{
		Event:        e.Event,
		Payload:      e.Payload.Clone(),
		PreviousHash: e.PreviousHash,
		Timestamp:    e.Timestamp.UTC().Format(time.RFC3339Nano),
	})
}

// ComputeHash returns the hex-encoded SHA-256 of the entry's canonical bytes.
func ComputeHash(e Entry) (string, error) {
	b, err := CanonicalBytes(e)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:]), nil
}

// verifier checks entries one at a time so a file can be verified without
// loading it into memory.
type verifier struct {
	line int
	prev string
}

func newVerifier() *verifier {
	return &verifier{prev: GenesisHash}
}

func (v *verifier) next(e Entry) error {
	v.line++
	if e.PreviousHash != v.prev {
		if v.line == 1 {
			return &IntegrityError{Line: v.line, Reason: "first entry does not reference the genesis hash"}
		}
		return &IntegrityError{
			Line:   v.line,
			Reason: fmt.Sprintf("previous_hash %s does not match predecessor hash %s", short(e.PreviousHash), short(v.prev)),
		}
	}
	computed, err := ComputeHash(e)
	if err != nil {
		return &IntegrityError{Line: v.line, Reason: err.Error()}
	}
	if computed != e.Hash {
		return &IntegrityError{
			Line:   v.line,
			Reason: fmt.Sprintf("stored hash %s does not match recomputed %s", short(e.Hash), short(computed)),
		}
	}
	v.prev = e.Hash
	return nil
}

// VerifyEntries checks an in-memory sequence, returning an *IntegrityError for
// the first broken link or nil if the chain is intact.
func VerifyEntries(entries []Entry) error {
	v := newVerifier()
	for _, e := range entries {
		if err := v.next(e); err != nil {
			return err
		}
	}
	return nil
}

func short(h string) string {
	if len(h) > 16 {
		return h[:16] + "..."
	}
	return h
}
