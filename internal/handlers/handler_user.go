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

// userHandler handles HTTP requests related to users.
type userHandler struct {
	userService portssvc.UserSvcFacade
	errs        errorMapper
}

// newUserHandler creates a new userHandler.
func newUserHandler(us portssvc.UserSvcFacade, errs errorMapper) *userHandler {
	return &userHandler{
		userService: us,
		errs:        errs,
	}
}

// registerUserRoutes registers all user-related routes.
func registerUserRoutes(rg *gin.RouterGroup, userService portssvc.UserSvcFacade, errs errorMapper) {
	h := newUserHandler(userService, errs)

	rg.POST("/register", h.registerUser)
}

// registerUser godoc
// @Summary Register a new API client
// @Description Creates a user with a unique name and returns a freshly generated API key
// @Tags users
// @Produce json
// @Param name query string true "Unique user name"
// @Success 200 {object} dto.RegisterUserResponse
// @Failure 400 {string} string "Username already exists."
// @Router /register [post]
func (h *userHandler) registerUser(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	var req dto.RegisterUserRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		logger.Warn("Failed to bind register request", slog.String("error", err.Error()))
		h.errs.respond(c, apperrors.MissingParameter("name"))
		return
	}

	user, err := h.userService.Register(c.Request.Context(), req.Name)
	if err != nil {
		h.errs.respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.RegisterUserResponse{APIKey: user.APIKey})
}
