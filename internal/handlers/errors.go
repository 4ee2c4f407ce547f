package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/currency_conversion_service/internal/apperrors"
	"github.com/SscSPs/currency_conversion_service/internal/middleware"
	"github.com/gin-gonic/gin"
)

// errorMapper turns service errors into plain-text HTTP responses. By default
// every failure other than an unknown API key is a 400; with rich status codes
// enabled, throttling, upstream and internal failures get 429, 503 and 500.
type errorMapper struct {
	richStatusCodes bool
}

func (m errorMapper) status(kind apperrors.Kind) int {
	switch kind {
	case apperrors.KindInvalidAPIKey:
		return http.StatusUnauthorized
	case apperrors.KindCooldown, apperrors.KindQuotaExceeded:
		if m.richStatusCodes {
			return http.StatusTooManyRequests
		}
	case apperrors.KindUpstreamUnavailable:
		if m.richStatusCodes {
			return http.StatusServiceUnavailable
		}
	case apperrors.KindInternal:
		if m.richStatusCodes {
			return http.StatusInternalServerError
		}
	}
	return http.StatusBadRequest
}

// respond writes err and aborts the handler chain.
func (m errorMapper) respond(c *gin.Context, err error) {
	kind := apperrors.KindOf(err)
	status := m.status(kind)

	message := apperrors.MessageOf(err)
	logger := middleware.GetLoggerFromContext(c)
	if kind == apperrors.KindInternal {
		logger.Error("Request failed", slog.String("error", err.Error()))
		message = apperrors.MsgInternal
	} else {
		logger.Info("Request rejected", slog.String("kind", kind.String()), slog.String("error", err.Error()))
	}

	c.Abort()
	c.String(status, message)
}
