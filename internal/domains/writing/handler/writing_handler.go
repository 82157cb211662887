package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"inkwell-backend/internal/domains/writing/model"
	"inkwell-backend/internal/domains/writing/service"
	"inkwell-backend/internal/shared/middleware"
	"inkwell-backend/internal/shared/response"
	"inkwell-backend/pkg/logger"
)

// Handler - HTTP handlers for writings
type Handler struct {
	service service.ServiceInterface
}

// NewHandler - Constructor with DI
func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{service: service}
}

// CreateWriting - POST /v1/writings
func (h *Handler) CreateWriting(c *gin.Context) {
	viewer := middleware.GetViewer(c)

	// 1. Bind request
	var req model.CreateWritingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("invalid create writing request", map[string]interface{}{"error": err.Error()})
		response.BadRequest(c, "Invalid request data")
		return
	}

	// 2. Call service (validation and policy live there)
	writing, err := h.service.Create(c.Request.Context(), viewer, req)
	if handleWritingError(c, err) {
		return
	}

	response.Success(c, http.StatusCreated, writing)
}

// GetWriting - GET /v1/writings/:id
// Returns the raw stored record, used by the editor.
func (h *Handler) GetWriting(c *gin.Context) {
	viewer := middleware.GetViewer(c)

	id, ok := parseWritingID(c)
	if !ok {
		return
	}

	writing, err := h.service.Get(c.Request.Context(), viewer, id)
	if handleWritingError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, writing)
}

// ReadWriting - GET /v1/writings/:id/read
// Returns the reading view with rendered HTML instead of markdown.
func (h *Handler) ReadWriting(c *gin.Context) {
	viewer := middleware.GetViewer(c)

	id, ok := parseWritingID(c)
	if !ok {
		return
	}

	view, err := h.service.Read(c.Request.Context(), viewer, id)
	if handleWritingError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, view)
}

// UpdateWriting - PUT /v1/writings/:id
func (h *Handler) UpdateWriting(c *gin.Context) {
	viewer := middleware.GetViewer(c)

	id, ok := parseWritingID(c)
	if !ok {
		return
	}

	var req model.UpdateWritingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("invalid update writing request", map[string]interface{}{"error": err.Error()})
		response.BadRequest(c, "Invalid request data")
		return
	}

	writing, err := h.service.Update(c.Request.Context(), viewer, id, req)
	if handleWritingError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, writing)
}

// DeleteWriting - DELETE /v1/writings/:id
func (h *Handler) DeleteWriting(c *gin.Context) {
	viewer := middleware.GetViewer(c)

	id, ok := parseWritingID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), viewer, id); handleWritingError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": id})
}

// ListWritings - GET /v1/writings
// Query params: category, visibility, page, limit. The visibility
// filter is honored for admins only.
func (h *Handler) ListWritings(c *gin.Context) {
	viewer := middleware.GetViewer(c)

	var req model.ListWritingsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.service.List(c.Request.Context(), viewer, req)
	if handleWritingError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, result)
}

func parseWritingID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Writing id must be a valid UUID")
		return uuid.Nil, false
	}
	return id, true
}

// handleWritingError maps service errors onto the HTTP taxonomy:
// not-found 404, policy denials 403 (401 for anonymous viewers),
// validation failures 400, everything else 500 with the cause logged
// but not exposed.
func handleWritingError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	var validationErrs validation.Errors
	if errors.As(err, &validationErrs) {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "Validation failed", validationErrs)
		return true
	}

	var writingErr *model.WritingError
	if errors.As(err, &writingErr) {
		switch {
		case errors.Is(err, model.ErrWritingNotFound):
			response.ErrorResponse(c, http.StatusNotFound, writingErr.Code, writingErr.Message)
		case errors.Is(err, model.ErrUnauthorized):
			status := http.StatusForbidden
			if !middleware.GetViewer(c).Authenticated {
				status = http.StatusUnauthorized
			}
			response.ErrorResponse(c, status, writingErr.Code, writingErr.Message)
		default:
			// Empty draft, tag limits, unknown category.
			response.ErrorResponse(c, http.StatusBadRequest, writingErr.Code, writingErr.Message)
		}
		return true
	}

	logger.Error("writing operation failed: "+c.FullPath(), err)
	response.InternalServerError(c, "Something went wrong")
	return true
}
