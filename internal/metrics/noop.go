package metrics

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

// IncAccountCreated is a no-op.
func (n *NoopRecorder) IncAccountCreated() {}

// IncAccountUpdated is a no-op.
func (n *NoopRecorder) IncAccountUpdated() {}

// IncAccountDeleted is a no-op.
func (n *NoopRecorder) IncAccountDeleted() {}

// IncNovelistCreated is a no-op.
func (n *NoopRecorder) IncNovelistCreated() {}

// IncNovelistDeleted is a no-op.
func (n *NoopRecorder) IncNovelistDeleted() {}

// IncBookCreated is a no-op.
func (n *NoopRecorder) IncBookCreated() {}

// IncBookDeleted is a no-op.
func (n *NoopRecorder) IncBookDeleted() {}

// IncTokenIssued is a no-op.
func (n *NoopRecorder) IncTokenIssued() {}

// IncTokenRefreshed is a no-op.
func (n *NoopRecorder) IncTokenRefreshed() {}

// IncAuthFailure is a no-op.
func (n *NoopRecorder) IncAuthFailure() {}

// IncIdentityCacheHit is a no-op.
func (n *NoopRecorder) IncIdentityCacheHit() {}

// IncIdentityCacheMiss is a no-op.
func (n *NoopRecorder) IncIdentityCacheMiss() {}
