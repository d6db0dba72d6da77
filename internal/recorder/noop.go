package recorder

// NoopRecorder is used when no journal database is configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordCycle(_ *CycleEvent) error         { return nil }
func (n *NoopRecorder) RecordValuation(_ *ValuationEvent) error { return nil }
func (n *NoopRecorder) Close() error                            { return nil }
