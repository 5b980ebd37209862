package services

import "context"

// CompanyAuthorizerSvc checks whether a user may act within a company.
// Implementations return apperrors.ErrForbidden when access is denied.
type CompanyAuthorizerSvc interface {
	AuthorizeCompanyAccess(ctx context.Context, userID, companyID string) error
}
