package services

import (
	"context"

	"github.com/slms-erp/slms_backend/internal/core/domain"
	"github.com/slms-erp/slms_backend/internal/dto"
)

// OpeningBalanceSvcFacade manages the opening balance batch lifecycle.
type OpeningBalanceSvcFacade interface {
	// AddLine appends a line to the batch named in the request, creating
	// the batch in draft status when it does not exist yet.
	AddLine(ctx context.Context, companyID string, req dto.AddOpeningBalanceLineRequest, userID string) (*domain.OpeningBalanceLine, error)

	// PostBatch posts a balanced draft batch, materializing its lines into
	// the period's account balances.
	PostBatch(ctx context.Context, companyID, batchID, userID string) (*domain.OpeningBalanceBatch, error)

	// ReverseBatch reverses a posted batch, zeroing the balances it wrote.
	ReverseBatch(ctx context.Context, companyID, batchID, userID string) (*domain.OpeningBalanceBatch, error)

	// GetBatch retrieves a batch with its lines.
	GetBatch(ctx context.Context, companyID, batchID string) (*domain.OpeningBalanceBatch, []domain.OpeningBalanceLine, error)

	// ListBatches returns a page of the company's batches.
	ListBatches(ctx context.Context, companyID string, params dto.ListBatchesParams) ([]domain.OpeningBalanceBatch, *string, error)
}
