package model

import "time"

// Status is the operating-status label assigned to an airline.
type Status string

const (
	StatusOperating Status = "operating" // airline appears to run scheduled service
	StatusDefunct   Status = "defunct"   // airline has ceased operations
	StatusRenamed   Status = "renamed"   // airline continues under a different name
	StatusUnknown   Status = "unknown"   // source text gave no usable signal
)

// Confidence is a coarse reliability tier for a classification.
// It is a label, not a probability.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// Classification is the outcome of running the status heuristics over
// source text for one airline.
type Classification struct {
	Status        Status     `json:"status"`
	SuccessorName string     `json:"successor_name,omitempty"` // set whenever a rename phrase yields a name, whatever the status
	Confidence    Confidence `json:"confidence"`
	CeasedYear    string     `json:"ceased_year,omitempty"` // 4-digit year, defunct only
}

// CheckRecord is one row of the final report: the airline that was
// queried, what the lookup found, and how the text was classified.
type CheckRecord struct {
	Airline   string    `json:"airline"`
	Found     bool      `json:"found"`
	Source    string    `json:"source,omitempty"` // article URL when found
	CheckedAt time.Time `json:"checked_at"`

	Classification

	// LLMNote is an optional second opinion on low-confidence records.
	// It is annotation only and never changes Status or Confidence.
	LLMNote string `json:"llm_note,omitempty"`
}
