package model

import "time"

// Execution states reported for a detection rule.
const (
	StatusSucceeded      = "succeeded"
	StatusFailed         = "failed"
	StatusGoingToRun     = "going to run"
	StatusPartialFailure = "partial failure"
)

// StatusRecord captures one execution-status entry for a detection rule.
type StatusRecord struct {
	RuleID           string    `json:"ruleId"`
	Status           string    `json:"status"` // succeeded/failed/going to run/partial failure
	Message          string    `json:"message,omitempty"`
	Gap              string    `json:"gap,omitempty"` // detection gap, e.g. "2m"
	SearchDurationMs int64     `json:"searchDurationMs,omitempty"`
	IndexDurationMs  int64     `json:"indexDurationMs,omitempty"`
	Timestamp        time.Time `json:"timestamp"`
}

// RuleStatusResult splits a rule's recent history into the latest record and
// the trailing failure history shown in the console.
type RuleStatusResult struct {
	Current  *StatusRecord  `json:"current_status"`
	Failures []StatusRecord `json:"failures"`
}

// StatusResponse maps rule ID to its partitioned status history. One entry
// per distinct requested ID.
type StatusResponse map[string]RuleStatusResult
