// Package metrics provides lightweight hooks for instrumentation.
package metrics

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus, StatsD, etc.
type Recorder interface {
	// Catalog mutations
	IncAccountCreated()
	IncAccountUpdated()
	IncAccountDeleted()
	IncNovelistCreated()
	IncNovelistDeleted()
	IncBookCreated()
	IncBookDeleted()

	// Authentication
	IncTokenIssued()
	IncTokenRefreshed()
	IncAuthFailure()
	IncIdentityCacheHit()
	IncIdentityCacheMiss()
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}
