package models

import "time"

type OutcomeState string

const (
	OutcomeSucceeded OutcomeState = "succeeded"
	OutcomeExhausted OutcomeState = "exhausted"
	OutcomeCancelled OutcomeState = "cancelled"
)

type ReportStatus string

const (
	StatusCompleted ReportStatus = "completed"
	StatusCancelled ReportStatus = "cancelled"
)

// Attempt records one fetch against a source. Error is empty on success,
// otherwise the failure kind ("timeout", "connection_failed", ...).
type Attempt struct {
	Number int    `json:"number"`
	Error  string `json:"error,omitempty"`
}

// SourceOutcome is the per-source entry of the provenance trail, recorded
// in chain order whether or not the source ended up serving the result.
type SourceOutcome struct {
	Source      string       `json:"source"`
	State       OutcomeState `json:"state"`
	Attempts    []Attempt    `json:"attempts"`
	Offers      int          `json:"offers"`
	Dropped     int          `json:"dropped,omitempty"`
	FailureKind string       `json:"failure_kind,omitempty"`
}

// SearchReport is the final artifact of one orchestrator invocation.
// Immutable once returned; WinningSource is empty when the whole chain
// was exhausted.
type SearchReport struct {
	ID            string          `json:"id"`
	Request       SearchRequest   `json:"search_parameters"`
	Status        ReportStatus    `json:"status"`
	WinningSource string          `json:"winning_source,omitempty"`
	Offers        []Offer         `json:"flights"`
	Outcomes      []SourceOutcome `json:"source_outcomes"`
	SearchedAt    time.Time       `json:"search_timestamp"`
	ElapsedMs     int64           `json:"search_time_ms"`
	CacheHit      bool            `json:"cache_hit,omitempty"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}
