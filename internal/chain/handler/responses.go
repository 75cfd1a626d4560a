package handler

import "auditarmor/internal/chain"

// SummaryResponse describes the current state of the chain.
type SummaryResponse struct {
	Length int          `json:"length"`
	Tip    *chain.Entry `json:"tip"`
}

type EntriesResponse struct {
	Total   int           `json:"total"`
	Entries []chain.Entry `json:"entries"`
}

// VerifyResponse reports a verification run. Line and Reason are set only
// when an integrity violation was found.
type VerifyResponse struct {
	Valid  bool   `json:"valid"`
	Length int    `json:"length"`
	Error  string `json:"error,omitempty"`
	Line   int    `json:"line,omitempty"`
	Reason string `json:"reason,omitempty"`
}
