package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/currency_conversion_service/internal/apperrors"
	portssvc "github.com/SscSPs/currency_conversion_service/internal/core/ports/services"
	"github.com/SscSPs/currency_conversion_service/internal/dto"
	"github.com/SscSPs/currency_conversion_service/internal/middleware"
	"github.com/gin-gonic/gin"
)

// conversionHandler handles HTTP requests for currency conversion.
type conversionHandler struct {
	conversionService portssvc.ConversionSvc
	currencyService   portssvc.CurrencyValidatorSvc
	errs              errorMapper
}

// registerConversionRoutes registers the conversion route behind API key auth.
func registerConversionRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer, errs errorMapper) {
	h := &conversionHandler{
		conversionService: services.Conversion,
		currencyService:   services.Currency,
		errs:              errs,
	}

	rg.GET("/convert", middleware.APIKeyAuth(services.User, errs.respond), h.convert)
}

// convert godoc
// @Summary Convert an amount between currencies
// @Description Converts amount from one currency to another using live rates. Each key may convert once every 2 minutes and up to 100 times a weekday (200 on weekends); repeated identical requests within 5 minutes are served from cache.
// @Tags conversion
// @Produce json
// @Param X-API-KEY header string true "API key"
// @Param from query string true "Source currency code" minlength(3) maxlength(3)
// @Param to query string true "Target currency code" minlength(3) maxlength(3)
// @Param amount query number true "Positive amount to convert"
// @Success 200 {object} dto.ConvertResponse
// @Failure 400 {string} string "Invalid input, rate limit or upstream failure"
// @Failure 401 {string} string "Invalid API Key"
// @Security ApiKeyAuth
// @Router /convert [get]
func (h *conversionHandler) convert(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromContext(c)
	apiKey, _ := middleware.GetAPIKeyFromContext(c)

	from, to := c.Query("from"), c.Query("to")
	var req dto.ConvertRequest
	bindErr := c.ShouldBindQuery(&req)
	if err := classifyConvertRequest(&req, bindErr, from, to); err != nil {
		h.errs.respond(c, err)
		return
	}

	for _, code := range []string{req.From, req.To} {
		valid, err := h.currencyService.IsValid(ctx, code)
		if err != nil {
			h.errs.respond(c, err)
			return
		}
		if !valid {
			h.errs.respond(c, apperrors.InvalidCurrency(from, to))
			return
		}
	}

	converted, err := h.conversionService.Convert(ctx, apiKey, req.From, req.To, *req.Amount)
	if err != nil {
		h.errs.respond(c, err)
		return
	}

	logger.Debug("Conversion served", slog.Float64("converted_amount", converted))
	c.JSON(http.StatusOK, dto.ConvertResponse{ConvertedAmount: converted})
}
