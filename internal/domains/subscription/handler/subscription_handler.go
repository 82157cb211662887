package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"inkwell-backend/internal/domains/subscription/model"
	"inkwell-backend/internal/domains/subscription/service"
	"inkwell-backend/internal/shared/response"
	"inkwell-backend/pkg/logger"
)

// Handler - HTTP handlers for newsletter subscriptions
type Handler struct {
	service service.ServiceInterface
}

// NewHandler - Constructor with DI
func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{service: service}
}

// Subscribe - POST /v1/subscriptions
func (h *Handler) Subscribe(c *gin.Context) {
	var req model.SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request data")
		return
	}

	dto, err := h.service.Subscribe(c.Request.Context(), req)
	if handleSubscriptionError(c, err) {
		return
	}

	response.Success(c, http.StatusCreated, dto)
}

// Unsubscribe - DELETE /v1/subscriptions/:token
// The token arrives by email, so this endpoint needs no session.
func (h *Handler) Unsubscribe(c *gin.Context) {
	token := c.Param("token")

	if err := h.service.Unsubscribe(c.Request.Context(), token); handleSubscriptionError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, gin.H{"unsubscribed": true})
}

// List - GET /v1/admin/subscriptions?page=1&limit=20
func (h *Handler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	dtos, total, err := h.service.List(c.Request.Context(), page, limit)
	if handleSubscriptionError(c, err) {
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, gin.H{"subscriptions": dtos}, &response.Meta{
		Page:  page,
		Limit: limit,
		Total: total,
	})
}

func handleSubscriptionError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	var validationErrs validation.Errors
	if errors.As(err, &validationErrs) {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "Validation failed", validationErrs)
		return true
	}

	var subErr *model.SubscriptionError
	if errors.As(err, &subErr) {
		switch {
		case errors.Is(err, model.ErrSubscriptionNotFound):
			response.ErrorResponse(c, http.StatusNotFound, subErr.Code, subErr.Message)
		case errors.Is(err, model.ErrAlreadySubscribed):
			response.ErrorResponse(c, http.StatusConflict, subErr.Code, subErr.Message)
		default:
			response.ErrorResponse(c, http.StatusBadRequest, subErr.Code, subErr.Message)
		}
		return true
	}

	logger.Error("subscription operation failed: "+c.FullPath(), err)
	response.InternalServerError(c, "Something went wrong")
	return true
}
