package model

import (
	"time"

	"github.com/ppiankov/bacitit/internal/phoneme"
)

// Report represents the complete result of one generation run
type Report struct {
	RunID       string    `json:"run_id"`       // Unique per run
	Recipe      string    `json:"recipe"`       // Recipe path
	GeneratedAt time.Time `json:"generated_at"` // When the run started
	Elapsed     string    `json:"elapsed"`      // Wall-clock search time

	Stop    StopReason         `json:"stop"`           // Why enumeration ended
	Records []CandidateNumbers `json:"records"`        // Running-best records in discovery order
	Best    *CandidateNumbers  `json:"best,omitempty"` // Last record, nil when none

	WeightSum float64    `json:"weight_sum"` // Sum of all populations
	Slots     []SlotInfo `json:"slots"`      // Per-digit candidates and weights
	Origins   []Origin   `json:"origins"`    // Per-digit loanword provenance

	Space   string      `json:"space"`             // Unpruned cross-product size, decimal
	Stats   SearchStats `json:"stats"`             // Counters gathered from the metrics registry
	Signals []Signal    `json:"signals,omitempty"` // Diagnostics
}

// StopReason explains why a run ended
type StopReason string

const (
	StopExhausted StopReason = "exhausted"  // Whole pruned space enumerated
	StopTimeout   StopReason = "timeout"    // Wall-clock budget hit
	StopMaxStates StopReason = "max_states" // State budget hit
)

// SlotInfo is the diagnostic view of one digit slot
type SlotInfo struct {
	Digit      int                         `json:"digit"`
	Vowel      phoneme.Phoneme             `json:"vowel"`
	Candidates []phoneme.Phoneme           `json:"candidates"` // Search order
	Weights    map[phoneme.Phoneme]float64 `json:"weights"`
}

// Origin documents one loanword's contribution to a digit
type Origin struct {
	Digit         int     `json:"digit"`
	Language      string  `json:"language"`
	Population    float64 `json:"population"`
	RegularWeight float64 `json:"regular_weight"` // population / weight_sum
	Word          string  `json:"word,omitempty"`
	IPA           string  `json:"ipa,omitempty"`
	Loan          string  `json:"loan"`
}

// SearchStats summarizes the work done by the enumeration engine
type SearchStats struct {
	States          int64 `json:"states"`           // Tentative assignments examined
	Valid           int64 `json:"valid"`            // Conflict-free assignments surfaced
	FirstConflicts  int64 `json:"first_conflicts"`  // Resolved by carry
	SecondConflicts int64 `json:"second_conflicts"` // Resolved by advance
	Records         int64 `json:"records"`          // Assignments retained
}

// Signal represents a diagnostic signal with transparent data
type Signal struct {
	Type        SignalType             `json:"type"`
	Severity    SignalSeverity         `json:"severity"`
	Description string                 `json:"description"`
	Data        map[string]interface{} `json:"data,omitempty"`
}

// SignalType classifies the type of diagnostic signal
type SignalType string

const (
	SignalScarceSlot SignalType = "scarce_slot" // Fewer than two candidate consonants
	SignalNoSolution SignalType = "no_solution" // Enumeration ended without a record
	SignalBudget     SignalType = "budget"      // Stopped before exhaustion
)

// SignalSeverity indicates the importance of the signal
type SignalSeverity string

const (
	SeverityInfo     SignalSeverity = "info"
	SeverityWarning  SignalSeverity = "warning"
	SeverityCritical SignalSeverity = "critical"
)
