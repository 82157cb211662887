package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"inkwell-backend/internal/policy"
)

// =====================================================
// REQUEST DTOs
// =====================================================

// CreateWritingRequest is an author draft. Excerpt is never accepted
// from the client; it is recomputed from content on every save.
type CreateWritingRequest struct {
	Title      string   `json:"title"`
	Content    string   `json:"content"`
	Tags       []string `json:"tags"`
	Category   string   `json:"category"`
	Visibility string   `json:"visibility"`
}

func (r CreateWritingRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Length(0, MaxTitleLength)),
		validation.Field(&r.Content, validation.Length(0, MaxContentLength)),
		validation.Field(&r.Category,
			validation.In("", "poetry", "fiction", "essay", "reflection", "other"),
		),
		validation.Field(&r.Visibility,
			validation.In("", "public", "private"),
		),
	)
}

// UpdateWritingRequest carries partial changes; nil fields keep the
// stored value. Tags are replaced wholesale when present.
type UpdateWritingRequest struct {
	Title      *string   `json:"title"`
	Content    *string   `json:"content"`
	Tags       *[]string `json:"tags"`
	Category   *string   `json:"category"`
	Visibility *string   `json:"visibility"`
}

func (r UpdateWritingRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Length(0, MaxTitleLength)),
		validation.Field(&r.Content, validation.Length(0, MaxContentLength)),
		validation.Field(&r.Category,
			validation.In("poetry", "fiction", "essay", "reflection", "other"),
		),
		validation.Field(&r.Visibility,
			validation.In("public", "private"),
		),
	)
}

// ListWritingsRequest mirrors the filter bar: category and visibility,
// both defaulting to "all". The visibility filter only has effect for
// admin viewers.
type ListWritingsRequest struct {
	Category   string `form:"category"`
	Visibility string `form:"visibility"`
	Page       int    `form:"page"`
	Limit      int    `form:"limit"`
}

func (r *ListWritingsRequest) Normalize() {
	if r.Category == "" {
		r.Category = policy.FilterAll
	}
	if r.Visibility == "" {
		r.Visibility = policy.FilterAll
	}
	if r.Page < 1 {
		r.Page = 1
	}
	if r.Limit < 1 || r.Limit > MaxPageSize {
		r.Limit = DefaultPageSize
	}
}

func (r ListWritingsRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Category,
			validation.In("all", "poetry", "fiction", "essay", "reflection", "other"),
		),
		validation.Field(&r.Visibility,
			validation.In("all", "public", "private"),
		),
	)
}

func (r ListWritingsRequest) Filters() policy.Filters {
	return policy.Filters{Category: r.Category, Visibility: r.Visibility}
}

// =====================================================
// RESPONSE DTOs
// =====================================================

// WritingResponse is the full stored record, used for owners and for
// editor round-trips.
type WritingResponse struct {
	ID         uuid.UUID  `json:"id"`
	Title      string     `json:"title"`
	Content    string     `json:"content"`
	Excerpt    string     `json:"excerpt"`
	Tags       []string   `json:"tags"`
	Category   Category   `json:"category"`
	Visibility Visibility `json:"visibility"`
	AuthorID   uuid.UUID  `json:"author_id"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// ReadWritingResponse is the reading view: metadata plus rendered HTML
// instead of raw markdown source.
type ReadWritingResponse struct {
	ID         uuid.UUID  `json:"id"`
	Title      string     `json:"title"`
	HTML       string     `json:"html"`
	Tags       []string   `json:"tags"`
	Category   Category   `json:"category"`
	Visibility Visibility `json:"visibility"`
	AuthorID   uuid.UUID  `json:"author_id"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// WritingCardResponse is the grid card: excerpt, no content.
type WritingCardResponse struct {
	ID         uuid.UUID  `json:"id"`
	Title      string     `json:"title"`
	Excerpt    string     `json:"excerpt"`
	Tags       []string   `json:"tags"`
	Category   Category   `json:"category"`
	Visibility Visibility `json:"visibility"`
	AuthorID   uuid.UUID  `json:"author_id"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

type ListWritingsResponse struct {
	Writings   []WritingCardResponse `json:"writings"`
	Pagination PaginationMeta        `json:"pagination"`
}

type PaginationMeta struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

func NewWritingResponse(w *Writing) *WritingResponse {
	return &WritingResponse{
		ID:         w.ID,
		Title:      w.Title,
		Content:    w.Content,
		Excerpt:    w.Excerpt,
		Tags:       w.Tags,
		Category:   w.Category,
		Visibility: w.Visibility,
		AuthorID:   w.AuthorID,
		CreatedAt:  w.CreatedAt,
		UpdatedAt:  w.UpdatedAt,
	}
}

func NewWritingCardResponse(w Writing) WritingCardResponse {
	return WritingCardResponse{
		ID:         w.ID,
		Title:      w.Title,
		Excerpt:    w.Excerpt,
		Tags:       w.Tags,
		Category:   w.Category,
		Visibility: w.Visibility,
		AuthorID:   w.AuthorID,
		CreatedAt:  w.CreatedAt,
		UpdatedAt:  w.UpdatedAt,
	}
}
