package middleware

import (
	"github.com/SscSPs/currency_conversion_service/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// contextKey is a private type for values stored in contexts.
// Using a custom type prevents collisions.
type contextKey string

const (
	loggerKey = contextKey("logger")
	userKey   = contextKey("user")
	apiKeyKey = contextKey("apiKey")
)

// GetUserFromContext retrieves the user authenticated by APIKeyAuth.
func GetUserFromContext(c *gin.Context) (*domain.User, bool) {
	val, exists := c.Get(string(userKey))
	if !exists {
		return nil, false
	}
	user, ok := val.(*domain.User)
	return user, ok && user != nil
}

// GetAPIKeyFromContext retrieves the API key that APIKeyAuth accepted.
func GetAPIKeyFromContext(c *gin.Context) (string, bool) {
	apiKey := c.GetString(string(apiKeyKey))
	return apiKey, apiKey != ""
}
