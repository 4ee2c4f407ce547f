package middleware

import (
	"log/slog"
	"strings"

	"github.com/SscSPs/currency_conversion_service/internal/apperrors"
	"github.com/SscSPs/currency_conversion_service/internal/core/ports/services"
	"github.com/gin-gonic/gin"
)

// APIKeyHeader is the request header carrying a client's API key.
const APIKeyHeader = "X-API-KEY"

// ErrorResponder writes err to the client and aborts the request.
type ErrorResponder func(c *gin.Context, err error)

// APIKeyAuth rejects requests without a known API key. On success the user
// and key are stored in the context and added to the request logger.
func APIKeyAuth(userSvc services.UserReaderSvc, respond ErrorResponder) gin.HandlerFunc {
	return func(c *gin.Context) {
		apiKey := strings.TrimSpace(c.GetHeader(APIKeyHeader))
		if apiKey == "" {
			respond(c, apperrors.MissingHeader(APIKeyHeader))
			return
		}

		user, err := userSvc.LookupByKey(c.Request.Context(), apiKey)
		if err != nil {
			GetLoggerFromContext(c).Error("Failed to look up API key", slog.String("error", err.Error()))
			respond(c, err)
			return
		}
		if user == nil {
			GetLoggerFromContext(c).Warn("Rejected unknown API key")
			respond(c, apperrors.NewAppError(apperrors.KindInvalidAPIKey, apperrors.MsgInvalidAPIKey))
			return
		}

		c.Set(string(userKey), user)
		c.Set(string(apiKeyKey), apiKey)
		SetLogger(c, GetLoggerFromContext(c).With(slog.Int64("user_id", user.ID)))
		c.Next()
	}
}
