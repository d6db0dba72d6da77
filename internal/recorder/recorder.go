package recorder

import "time"

// CycleEvent is one primary fetch attempt.
type CycleEvent struct {
	ID        string // shared by a user action and its 404 retry
	Ticker    string
	StartDate string
	EndDate   string
	Attempt   int
	Outcome   string // "rendered", "errored", "not_found", "stale"
	Status    int    // HTTP status, 0 for success or transport errors
	Detail    string
	Rows      int
	Elapsed   time.Duration
}

// ValuationEvent is one priced portfolio snapshot.
type ValuationEvent struct {
	Holdings   int
	Priced     int
	TotalValue string // decimal string in major units
	Currency   string
}

// Recorder persists fetch and valuation history for later analysis.
type Recorder interface {
	RecordCycle(evt *CycleEvent) error
	RecordValuation(evt *ValuationEvent) error
	Close() error
}
