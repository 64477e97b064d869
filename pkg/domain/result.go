package domain

import "time"

// TapeSnapshot is a read-only copy of one tape's materialized cells.
type TapeSnapshot struct {
	// Symbols holds the materialized cells, leftmost first.
	Symbols []Symbol `json:"-"`
	// Start is the signed offset of Symbols[0] from the tape origin.
	Start int `json:"start"`
	// Head is the signed head position.
	Head int `json:"head"`
	// Content is the display rendering of Symbols, blanks replaced by the placeholder.
	Content string `json:"content"`
}

// RunResult is the outcome of one run of a machine on one input.
type RunResult struct {
	Accepted   bool           `json:"accepted"`
	FinalState StateID        `json:"final_state"`
	Steps      int            `json:"steps"`
	Exceeded   bool           `json:"exceeded,omitempty"`
	Tapes      []TapeSnapshot `json:"tapes,omitempty"`
}

// Verdict values of a RunRecord.
const (
	VerdictAccept = "accept"
	VerdictReject = "reject"
	VerdictError  = "error"
)

// RunRecord is the persisted form of a run.
type RunRecord struct {
	ID        string        `json:"id"`
	Machine   string        `json:"machine"`
	Input     string        `json:"input"`
	MaxSteps  int           `json:"max_steps"`
	Result    *RunResult    `json:"result,omitempty"`
	Error     string        `json:"error,omitempty"`
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration"`
}

// Verdict summarizes the record as accept, reject or error.
func (r *RunRecord) Verdict() string {
	switch {
	case r.Error != "":
		return VerdictError
	case r.Result != nil && r.Result.Accepted:
		return VerdictAccept
	default:
		return VerdictReject
	}
}
