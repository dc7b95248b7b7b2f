package ledger_gateway

import (
	"context"
	"sync"
	"time"

	"imgpress/domain"
)

// LedgerGateway implements LedgerPort as a capped in-process ring buffer.
// It is constructed explicitly and injected; there is no package-level
// instance. The mutex makes appends and snapshots safe under concurrent
// requests.
type LedgerGateway struct {
	mu       sync.Mutex
	entries  []domain.LedgerEntry
	start    int
	count    int
	nextID   int64
	capacity int
}

// NewLedgerGateway creates a ledger holding at most capacity entries. Once
// full, the oldest entry is evicted on each append.
func NewLedgerGateway(capacity int) *LedgerGateway {
	if capacity < 1 {
		capacity = 1
	}
	return &LedgerGateway{
		entries:  make([]domain.LedgerEntry, capacity),
		nextID:   1,
		capacity: capacity,
	}
}

// Record appends an entry, assigning the next monotonic id and the current
// timestamp.
func (g *LedgerGateway) Record(ctx context.Context, entry domain.LedgerEntry) (domain.LedgerEntry, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	entry.ID = g.nextID
	entry.CreatedAt = time.Now()
	g.nextID++

	pos := (g.start + g.count) % g.capacity
	g.entries[pos] = entry
	if g.count < g.capacity {
		g.count++
	} else {
		g.start = (g.start + 1) % g.capacity
	}

	return entry, nil
}

// Recent returns up to limit entries, newest first. The result is a snapshot
// taken under the lock.
func (g *LedgerGateway) Recent(ctx context.Context, limit int) ([]domain.LedgerEntry, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if limit <= 0 || limit > g.count {
		limit = g.count
	}

	result := make([]domain.LedgerEntry, 0, limit)
	for i := 0; i < limit; i++ {
		pos := (g.start + g.count - 1 - i + g.capacity) % g.capacity
		result = append(result, g.entries[pos])
	}

	return result, nil
}

// Len returns the number of entries currently held.
func (g *LedgerGateway) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.count
}
