// Package evidence accepts uploaded evidence files and records their digest
// in the audit chain before acknowledging them.
package evidence

import "time"

// EventUpload is the chain event recorded for every accepted upload.
const EventUpload = "EVIDENCE_UPLOAD"

// StatusAdmissible marks evidence whose digest is anchored in the chain.
const StatusAdmissible = "Admissible"

// Receipt acknowledges an accepted upload.
type Receipt struct {
	// ID is the first 12 hex characters of the content digest.
	ID        string    `json:"id"`
	Filename  string    `json:"filename"`
	Status    string    `json:"status"`
	SHA256    string    `json:"sha256"`
	Size      int64     `json:"size"`
	Timestamp time.Time `json:"timestamp"`
	// ChainHash is the hash of the audit entry that records this upload.
	ChainHash string `json:"chain_hash"`
}
