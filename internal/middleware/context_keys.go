package middleware

import "github.com/gin-gonic/gin"

// userIDKey is the key used to store the authenticated user's ID.
const userIDKey = contextKey("userID")

// companyIDKey is the key used to store the tenant scope of the request.
const companyIDKey = contextKey("companyID")

// GetUserIDFromContext retrieves the authenticated user ID from the Gin
// context, checking the request context as a fallback.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	if userIDVal, exists := c.Get(string(userIDKey)); exists {
		if userID, ok := userIDVal.(string); ok {
			return userID, true
		}
		return "", false
	}
	if userIDVal := c.Request.Context().Value(userIDKey); userIDVal != nil {
		if userID, ok := userIDVal.(string); ok {
			return userID, true
		}
	}
	return "", false
}

// GetCompanyIDFromContext retrieves the company scope set by CompanyContext.
func GetCompanyIDFromContext(c *gin.Context) (string, bool) {
	if companyIDVal, exists := c.Get(string(companyIDKey)); exists {
		if companyID, ok := companyIDVal.(string); ok {
			return companyID, true
		}
	}
	return "", false
}
