// Package observe carries scan progress events to pluggable sinks.
//
// The engine itself performs no I/O; sinks decide what to do with the
// events (discard them, forward them to tracing, feed a progress bar).
// The default sink is a no-op, so observation is strictly opt-in.
package observe

import "time"

// Kind distinguishes whole-scan events from per-check events.
type Kind string

const (
	KindScan  Kind = "scan"
	KindCheck Kind = "check"
)

// Status is the lifecycle stage an event reports.
type Status string

const (
	StatusStarted   Status = "started"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Event is one progress notification.
type Event struct {
	Timestamp    time.Time `json:"timestamp"`
	Kind         Kind      `json:"kind"`
	Status       Status    `json:"status,omitempty"`
	ScanID       string    `json:"scanId,omitempty"`
	WorkflowName string    `json:"workflowName,omitempty"`
	Check        string    `json:"check,omitempty"`
	Findings     int       `json:"findings,omitempty"`
	Error        string    `json:"error,omitempty"`
	DurationMs   int64     `json:"durationMs,omitempty"`
}

// Normalize fills defaulted fields in place.
func (e *Event) Normalize() {
	if e == nil {
		return
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}
	if e.Kind == "" {
		e.Kind = KindScan
	}
}
