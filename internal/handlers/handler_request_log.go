package handlers

import (
	"net/http"

	"github.com/SscSPs/currency_conversion_service/internal/apperrors"
	portssvc "github.com/SscSPs/currency_conversion_service/internal/core/ports/services"
	"github.com/SscSPs/currency_conversion_service/internal/dto"
	"github.com/SscSPs/currency_conversion_service/internal/middleware"
	"github.com/gin-gonic/gin"
)

// NextTokenHeader carries the cursor of the next page of logs.
const NextTokenHeader = "X-Next-Token"

// requestLogHandler handles HTTP requests for the audit log.
type requestLogHandler struct {
	requestLogService portssvc.RequestLogSvc
	errs              errorMapper
}

// registerRequestLogRoutes registers the audit log route behind API key auth.
func registerRequestLogRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer, errs errorMapper) {
	h := &requestLogHandler{requestLogService: services.RequestLog, errs: errs}

	rg.GET("/logs", middleware.APIKeyAuth(services.User, errs.respond), h.listLogs)
}

// listLogs godoc
// @Summary List the caller's conversions
// @Description Returns the audit log of the API key. Without limit the full history is returned; with limit the response is paged and X-Next-Token names the next page.
// @Tags logs
// @Produce json
// @Param X-API-KEY header string true "API key"
// @Param limit query int false "Page size (1-500)"
// @Param nextToken query string false "Cursor from a previous X-Next-Token header"
// @Success 200 {array} dto.RequestLogResponse
// @Header 200 {string} X-Next-Token "Cursor of the next page"
// @Failure 400 {string} string "Invalid paging parameters"
// @Failure 401 {string} string "Invalid API Key"
// @Security ApiKeyAuth
// @Router /logs [get]
func (h *requestLogHandler) listLogs(c *gin.Context) {
	apiKey, _ := middleware.GetAPIKeyFromContext(c)

	var params dto.ListRequestLogsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		h.errs.respond(c, apperrors.Wrap(apperrors.KindInvalidRequest, "limit must be between 1 and 500.", err))
		return
	}

	logs, next, err := h.requestLogService.ListLogs(c.Request.Context(), apiKey, params.Limit, params.NextToken)
	if err != nil {
		h.errs.respond(c, err)
		return
	}

	if next != "" {
		c.Header(NextTokenHeader, next)
	}
	c.JSON(http.StatusOK, dto.ToListRequestLogResponse(logs))
}
