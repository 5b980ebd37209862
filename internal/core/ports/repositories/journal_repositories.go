package repositories

import (
	"context"

	"github.com/slms-erp/slms_backend/internal/core/domain"
)

// JournalRepository is the Ledger Store's write and readback surface for
// posted journal entries. Entries are immutable once saved.
type JournalRepository interface {
	// SaveJournal atomically inserts a journal and its transaction lines
	// within a single database transaction.
	SaveJournal(ctx context.Context, journal domain.Journal, transactions []domain.Transaction) error

	// FindJournalByID retrieves a journal scoped to a company.
	FindJournalByID(ctx context.Context, companyID, journalID string) (*domain.Journal, error)

	// FindTransactionsByJournalID retrieves all lines of a journal in
	// insertion order.
	FindTransactionsByJournalID(ctx context.Context, journalID string) ([]domain.Transaction, error)
}
