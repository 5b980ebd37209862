package services

import (
	"context"
	"log/slog"

	portssvc "github.com/slms-erp/slms_backend/internal/core/ports/services"
	"github.com/slms-erp/slms_backend/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct {
	CompanyAuthorizer portssvc.CompanyAuthorizerSvc
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	logger := middleware.GetLoggerFromCtx(ctx)
	if logger == nil {
		return slog.Default()
	}
	return logger
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+2)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	logger.Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	logger.Debug(msg, keyvals...)
}

// AuthorizeCompany checks that the user may act within the company.
func (s *BaseService) AuthorizeCompany(ctx context.Context, userID, companyID string) error {
	if s.CompanyAuthorizer != nil {
		return s.CompanyAuthorizer.AuthorizeCompanyAccess(ctx, userID, companyID)
	}
	s.LogDebug(ctx, "No company authorizer provided, access granted by default",
		slog.String("user_id", userID),
		slog.String("company_id", companyID))
	return nil
}
