package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// CompanyContext extracts the :company_id path parameter, stores it in the
// request scope and enriches the request logger with it. Every tenant-scoped
// route group mounts this after authentication.
func CompanyContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		companyID := c.Param("company_id")
		if companyID == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "company_id path parameter required"})
			return
		}

		enrichedLogger := GetLoggerFromCtx(c.Request.Context()).With(slog.String("company_id", companyID))
		ctx := context.WithValue(c.Request.Context(), companyIDKey, companyID)
		ctx = context.WithValue(ctx, loggerKey, enrichedLogger)
		c.Request = c.Request.WithContext(ctx)
		c.Set(string(companyIDKey), companyID)
		c.Set(string(loggerKey), enrichedLogger)

		c.Next()
	}
}
