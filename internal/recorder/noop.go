package recorder

// NoopRecorder is a no-op implementation used when SQLite is not configured.
type NoopRecorder struct{}

// NewNoopRecorder creates a NoopRecorder.
func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

// RecordSignals discards the run and returns an empty ID.
func (n *NoopRecorder) RecordSignals(_ *SignalRun) (string, error) { return "", nil }

// RecordSimulation discards the run and returns an empty ID.
func (n *NoopRecorder) RecordSimulation(_ *SimulationRun) (string, error) { return "", nil }

// RecordAllocation discards the run and returns an empty ID.
func (n *NoopRecorder) RecordAllocation(_ *AllocationRun) (string, error) { return "", nil }

// RecordClusters discards the run and returns an empty ID.
func (n *NoopRecorder) RecordClusters(_ *ClusterRun) (string, error) { return "", nil }

// RecordPayoff discards the run and returns an empty ID.
func (n *NoopRecorder) RecordPayoff(_ *PayoffRun) (string, error) { return "", nil }

// RecentRuns always returns no runs.
func (n *NoopRecorder) RecentRuns(_ int) ([]RunInfo, error) { return nil, nil }

// Close does nothing.
func (n *NoopRecorder) Close() error { return nil }
