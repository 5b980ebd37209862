package services

import (
	"context"

	"github.com/slms-erp/slms_backend/internal/core/domain"
	"github.com/slms-erp/slms_backend/internal/dto"
)

// IncomeStatementSvcFacade builds income statements over posted journals.
type IncomeStatementSvcFacade interface {
	GetIncomeStatement(ctx context.Context, companyID string, params dto.IncomeStatementParams) (*domain.IncomeStatementReport, error)
}
