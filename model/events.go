package model

import "time"

// Event is an observability record with no semantic effect on the model
// (spec §4.2). Analyzers and the orchestrator call
// SharedContext.RecordEvent to append these.
type Event struct {
	Kind    string
	Payload map[string]interface{}
	At      time.Time
}

// IssueSummary aggregates recoverable-error events into the model's
// user-visible issues list (spec §7).
type IssueSummary struct {
	Kind    string
	Path    string
	Phase   string
	Message string
	Count   int
}
