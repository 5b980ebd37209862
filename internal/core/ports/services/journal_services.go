package services

import (
	"context"

	"github.com/slms-erp/slms_backend/internal/core/domain"
	"github.com/slms-erp/slms_backend/internal/dto"
)

// JournalSvcFacade records and retrieves journal entries.
type JournalSvcFacade interface {
	// CreateJournal validates and persists a balanced journal entry with
	// its lines atomically.
	CreateJournal(ctx context.Context, companyID string, req dto.CreateJournalRequest, userID string) (*domain.Journal, []domain.Transaction, error)

	// GetJournalByID retrieves a journal with its lines.
	GetJournalByID(ctx context.Context, companyID, journalID string) (*domain.Journal, []domain.Transaction, error)
}
