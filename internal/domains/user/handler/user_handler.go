package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"inkwell-backend/internal/domains/user/model"
	"inkwell-backend/internal/domains/user/service"
	"inkwell-backend/internal/shared/middleware"
	"inkwell-backend/internal/shared/response"
	"inkwell-backend/pkg/logger"
)

// Handler - HTTP handlers for accounts and profiles
type Handler struct {
	service service.ServiceInterface
}

// NewHandler - Constructor with DI
func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{service: service}
}

// Register - POST /v1/auth/register
func (h *Handler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request data")
		return
	}

	dto, err := h.service.Register(c.Request.Context(), req)
	if handleUserError(c, err) {
		return
	}

	response.Success(c, http.StatusCreated, dto)
}

// Login - POST /v1/auth/login
func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request data")
		return
	}

	resp, err := h.service.Login(c.Request.Context(), req)
	if handleUserError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// Refresh - POST /v1/auth/refresh
func (h *Handler) Refresh(c *gin.Context) {
	var req model.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request data")
		return
	}

	resp, err := h.service.Refresh(c.Request.Context(), req)
	if handleUserError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// GetProfile - GET /v1/me
func (h *Handler) GetProfile(c *gin.Context) {
	viewer := middleware.GetViewer(c)

	dto, err := h.service.GetProfile(c.Request.Context(), viewer.ID)
	if handleUserError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, dto)
}

// UpdateProfile - PUT /v1/me
func (h *Handler) UpdateProfile(c *gin.Context) {
	viewer := middleware.GetViewer(c)

	var req model.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request data")
		return
	}

	dto, err := h.service.UpdateProfile(c.Request.Context(), viewer.ID, req)
	if handleUserError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, dto)
}

// GetWriterProfile - GET /v1/writers/:id
func (h *Handler) GetWriterProfile(c *gin.Context) {
	viewer := middleware.GetViewer(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Writer id must be a valid UUID")
		return
	}

	profile, err := h.service.GetWriterProfile(c.Request.Context(), viewer, id)
	if handleUserError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, profile)
}

// SearchWriters - GET /v1/writers/search?q=keyword&limit=10
func (h *Handler) SearchWriters(c *gin.Context) {
	var req model.SearchWritersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid search parameters")
		return
	}

	profiles, err := h.service.SearchWriters(c.Request.Context(), req)
	if handleUserError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, gin.H{"writers": profiles})
}

func handleUserError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	var validationErrs validation.Errors
	if errors.As(err, &validationErrs) {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "Validation failed", validationErrs)
		return true
	}

	var userErr *model.UserError
	if errors.As(err, &userErr) {
		switch {
		case errors.Is(err, model.ErrUserNotFound):
			response.ErrorResponse(c, http.StatusNotFound, userErr.Code, userErr.Message)
		case errors.Is(err, model.ErrEmailAlreadyExists), errors.Is(err, model.ErrPenNameTaken):
			response.ErrorResponse(c, http.StatusConflict, userErr.Code, userErr.Message)
		case errors.Is(err, model.ErrInvalidCredentials), errors.Is(err, model.ErrInvalidToken):
			response.ErrorResponse(c, http.StatusUnauthorized, userErr.Code, userErr.Message)
		case errors.Is(err, model.ErrAccountLocked):
			response.ErrorResponse(c, http.StatusTooManyRequests, userErr.Code, userErr.Message)
		case errors.Is(err, model.ErrUserInactive):
			response.ErrorResponse(c, http.StatusForbidden, userErr.Code, userErr.Message)
		default:
			response.ErrorResponse(c, http.StatusBadRequest, userErr.Code, userErr.Message)
		}
		return true
	}

	logger.Error("user operation failed: "+c.FullPath(), err)
	response.InternalServerError(c, "Something went wrong")
	return true
}
