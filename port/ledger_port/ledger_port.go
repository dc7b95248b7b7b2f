package ledger_port

import (
	"context"

	"imgpress/domain"
)

// LedgerPort defines the interface for the optimization ledger.
type LedgerPort interface {
	// Record appends an entry, assigning it a monotonically increasing id
	// and a creation timestamp.
	Record(ctx context.Context, entry domain.LedgerEntry) (domain.LedgerEntry, error)

	// Recent returns the most recently created entries, newest first,
	// truncated to limit.
	Recent(ctx context.Context, limit int) ([]domain.LedgerEntry, error)
}
