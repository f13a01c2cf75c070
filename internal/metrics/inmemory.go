package metrics

import "sync/atomic"

// Snapshot captures current in-memory counters.
type Snapshot struct {
	AccountsCreated     uint64 `json:"accounts_created"`
	AccountsUpdated     uint64 `json:"accounts_updated"`
	AccountsDeleted     uint64 `json:"accounts_deleted"`
	NovelistsCreated    uint64 `json:"novelists_created"`
	NovelistsDeleted    uint64 `json:"novelists_deleted"`
	BooksCreated        uint64 `json:"books_created"`
	BooksDeleted        uint64 `json:"books_deleted"`
	TokensIssued        uint64 `json:"tokens_issued"`
	TokensRefreshed     uint64 `json:"tokens_refreshed"`
	AuthFailures        uint64 `json:"auth_failures"`
	IdentityCacheHits   uint64 `json:"identity_cache_hits"`
	IdentityCacheMisses uint64 `json:"identity_cache_misses"`
}

// InMemoryRecorder stores counters in memory.
type InMemoryRecorder struct {
	accountsCreated     uint64
	accountsUpdated     uint64
	accountsDeleted     uint64
	novelistsCreated    uint64
	novelistsDeleted    uint64
	booksCreated        uint64
	booksDeleted        uint64
	tokensIssued        uint64
	tokensRefreshed     uint64
	authFailures        uint64
	identityCacheHits   uint64
	identityCacheMisses uint64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		AccountsCreated:     atomic.LoadUint64(&m.accountsCreated),
		AccountsUpdated:     atomic.LoadUint64(&m.accountsUpdated),
		AccountsDeleted:     atomic.LoadUint64(&m.accountsDeleted),
		NovelistsCreated:    atomic.LoadUint64(&m.novelistsCreated),
		NovelistsDeleted:    atomic.LoadUint64(&m.novelistsDeleted),
		BooksCreated:        atomic.LoadUint64(&m.booksCreated),
		BooksDeleted:        atomic.LoadUint64(&m.booksDeleted),
		TokensIssued:        atomic.LoadUint64(&m.tokensIssued),
		TokensRefreshed:     atomic.LoadUint64(&m.tokensRefreshed),
		AuthFailures:        atomic.LoadUint64(&m.authFailures),
		IdentityCacheHits:   atomic.LoadUint64(&m.identityCacheHits),
		IdentityCacheMisses: atomic.LoadUint64(&m.identityCacheMisses),
	}
}

// IncAccountCreated increments the account created counter.
func (m *InMemoryRecorder) IncAccountCreated() {
	atomic.AddUint64(&m.accountsCreated, 1)
}

// IncAccountUpdated increments the account updated counter.
func (m *InMemoryRecorder) IncAccountUpdated() {
	atomic.AddUint64(&m.accountsUpdated, 1)
}

// IncAccountDeleted increments the account deleted counter.
func (m *InMemoryRecorder) IncAccountDeleted() {
	atomic.AddUint64(&m.accountsDeleted, 1)
}

// IncNovelistCreated increments the novelist created counter.
func (m *InMemoryRecorder) IncNovelistCreated() {
	atomic.AddUint64(&m.novelistsCreated, 1)
}

// IncNovelistDeleted increments the novelist deleted counter.
func (m *InMemoryRecorder) IncNovelistDeleted() {
	atomic.AddUint64(&m.novelistsDeleted, 1)
}

// IncBookCreated increments the book created counter.
func (m *InMemoryRecorder) IncBookCreated() {
	atomic.AddUint64(&m.booksCreated, 1)
}

// IncBookDeleted increments the book deleted counter.
func (m *InMemoryRecorder) IncBookDeleted() {
	atomic.AddUint64(&m.booksDeleted, 1)
}

// IncTokenIssued increments the token issued counter.
func (m *InMemoryRecorder) IncTokenIssued() {
	atomic.AddUint64(&m.tokensIssued, 1)
}

// IncTokenRefreshed increments the token refreshed counter.
func (m *InMemoryRecorder) IncTokenRefreshed() {
	atomic.AddUint64(&m.tokensRefreshed, 1)
}

// IncAuthFailure increments the auth failure counter.
func (m *InMemoryRecorder) IncAuthFailure() {
	atomic.AddUint64(&m.authFailures, 1)
}

// IncIdentityCacheHit increments the identity cache hit counter.
func (m *InMemoryRecorder) IncIdentityCacheHit() {
	atomic.AddUint64(&m.identityCacheHits, 1)
}

// IncIdentityCacheMiss increments the identity cache miss counter.
func (m *InMemoryRecorder) IncIdentityCacheMiss() {
	atomic.AddUint64(&m.identityCacheMisses, 1)
}
