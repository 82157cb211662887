package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"inkwell-backend/internal/domains/follow/model"
	"inkwell-backend/internal/domains/follow/service"
	"inkwell-backend/internal/shared/middleware"
	"inkwell-backend/internal/shared/response"
	"inkwell-backend/pkg/logger"
)

// Handler - HTTP handlers for the follow graph
type Handler struct {
	service service.ServiceInterface
}

// NewHandler - Constructor with DI
func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{service: service}
}

// Follow - POST /v1/writers/:id/follow
func (h *Handler) Follow(c *gin.Context) {
	viewer := middleware.GetViewer(c)

	followeeID, ok := parseWriterID(c)
	if !ok {
		return
	}

	if err := h.service.Follow(c.Request.Context(), viewer.ID, followeeID); handleFollowError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, gin.H{"following": true})
}

// Unfollow - DELETE /v1/writers/:id/follow
func (h *Handler) Unfollow(c *gin.Context) {
	viewer := middleware.GetViewer(c)

	followeeID, ok := parseWriterID(c)
	if !ok {
		return
	}

	if err := h.service.Unfollow(c.Request.Context(), viewer.ID, followeeID); handleFollowError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, gin.H{"following": false})
}

// Followers - GET /v1/writers/:id/followers
func (h *Handler) Followers(c *gin.Context) {
	writerID, ok := parseWriterID(c)
	if !ok {
		return
	}

	ids, err := h.service.Followers(c.Request.Context(), writerID)
	if handleFollowError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, gin.H{"followers": ids})
}

// Following - GET /v1/writers/:id/following
func (h *Handler) Following(c *gin.Context) {
	writerID, ok := parseWriterID(c)
	if !ok {
		return
	}

	ids, err := h.service.Following(c.Request.Context(), writerID)
	if handleFollowError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, gin.H{"following": ids})
}

// Feed - GET /v1/feed?limit=20
func (h *Handler) Feed(c *gin.Context) {
	viewer := middleware.GetViewer(c)

	limit := 0
	if limitStr := c.Query("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil {
			limit = l
		}
	}

	cards, err := h.service.Feed(c.Request.Context(), viewer.ID, limit)
	if handleFollowError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, gin.H{"feed": cards})
}

func parseWriterID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Writer id must be a valid UUID")
		return uuid.Nil, false
	}
	return id, true
}

func handleFollowError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	var followErr *model.FollowError
	if errors.As(err, &followErr) {
		switch {
		case errors.Is(err, model.ErrWriterNotFound):
			response.ErrorResponse(c, http.StatusNotFound, followErr.Code, followErr.Message)
		default:
			response.ErrorResponse(c, http.StatusBadRequest, followErr.Code, followErr.Message)
		}
		return true
	}

	logger.Error("follow operation failed: "+c.FullPath(), err)
	response.InternalServerError(c, "Something went wrong")
	return true
}
