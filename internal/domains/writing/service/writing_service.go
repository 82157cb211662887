package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"inkwell-backend/internal/domains/writing/model"
	"inkwell-backend/internal/domains/writing/repository"
	"inkwell-backend/internal/markdown"
	"inkwell-backend/internal/policy"
	"inkwell-backend/pkg/cache"
)

const renderCacheTTL = 1 * time.Hour

type writingService struct {
	writingRepo repository.WritingRepository
	cache       cache.Cache
}

func NewWritingService(writingRepo repository.WritingRepository, c cache.Cache) ServiceInterface {
	return &writingService{
		writingRepo: writingRepo,
		cache:       c,
	}
}

// =====================================================
// CREATE
// =====================================================

func (s *writingService) Create(
	ctx context.Context,
	viewer policy.Viewer,
	req model.CreateWritingRequest,
) (*model.WritingResponse, error) {
	// Step 1: Only authenticated authors create writings
	if !viewer.Authenticated {
		return nil, model.NewUnauthorizedError("Sign in to publish a writing")
	}

	// Step 2: Validate request
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if req.Title == "" && req.Content == "" {
		return nil, model.NewEmptyDraftError()
	}

	// Step 3: Normalize tags (trim, lowercase, dedupe; reject over cap)
	tags, err := model.NormalizeTags(req.Tags)
	if err != nil {
		return nil, err
	}

	title := req.Title
	if title == "" {
		title = model.DefaultTitle
	}
	category := model.Category(req.Category)
	if category == "" {
		category = model.CategoryOther
	}
	visibility := model.Visibility(req.Visibility)
	if visibility == "" {
		visibility = model.VisibilityPrivate
	}

	// Step 4: Build the record. Excerpt is derived, never client-supplied;
	// both timestamps are set to the same instant at creation.
	now := time.Now().UTC()
	writing := &model.Writing{
		ID:         uuid.New(),
		Title:      title,
		Content:    req.Content,
		Excerpt:    markdown.Excerpt(req.Content, markdown.DefaultExcerptLength),
		Tags:       tags,
		Category:   category,
		Visibility: visibility,
		AuthorID:   viewer.ID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	// Step 5: Persist
	if err := s.writingRepo.Create(ctx, writing); err != nil {
		return nil, fmt.Errorf("failed to create writing: %w", err)
	}

	return model.NewWritingResponse(writing), nil
}

// =====================================================
// UPDATE
// =====================================================

func (s *writingService) Update(
	ctx context.Context,
	viewer policy.Viewer,
	id uuid.UUID,
	req model.UpdateWritingRequest,
) (*model.WritingResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	writing, err := s.writingRepo.GetByID(ctx, id)
	if err != nil {
		if err == model.ErrWritingNotFound {
			return nil, model.NewWritingNotFoundError()
		}
		return nil, fmt.Errorf("failed to load writing: %w", err)
	}

	// The policy check runs before any mutation is applied.
	if !policy.CanEdit(viewer, writing) {
		return nil, model.NewUnauthorizedError("You may not edit this writing")
	}

	if req.Title != nil {
		writing.Title = *req.Title
	}
	if req.Content != nil {
		writing.Content = *req.Content
	}
	if req.Category != nil {
		writing.Category = model.Category(*req.Category)
	}
	if req.Visibility != nil {
		writing.Visibility = model.Visibility(*req.Visibility)
	}
	if req.Tags != nil {
		tags, err := model.NormalizeTags(*req.Tags)
		if err != nil {
			return nil, err
		}
		writing.Tags = tags
	}

	// Excerpt is always recomputed from the effective content, even when
	// this update did not touch it.
	writing.Excerpt = markdown.Excerpt(writing.Content, markdown.DefaultExcerptLength)
	writing.UpdatedAt = time.Now().UTC()

	if err := s.writingRepo.Update(ctx, writing); err != nil {
		if err == model.ErrWritingNotFound {
			return nil, model.NewWritingNotFoundError()
		}
		return nil, fmt.Errorf("failed to update writing: %w", err)
	}

	return model.NewWritingResponse(writing), nil
}

// =====================================================
// DELETE
// =====================================================

func (s *writingService) Delete(ctx context.Context, viewer policy.Viewer, id uuid.UUID) error {
	writing, err := s.writingRepo.GetByID(ctx, id)
	if err != nil {
		if err == model.ErrWritingNotFound {
			return model.NewWritingNotFoundError()
		}
		return fmt.Errorf("failed to load writing: %w", err)
	}

	if !policy.CanEdit(viewer, writing) {
		return model.NewUnauthorizedError("You may not delete this writing")
	}

	// Deletion is permanent; there is no tombstone or undo.
	if err := s.writingRepo.Delete(ctx, id); err != nil {
		if err == model.ErrWritingNotFound {
			return model.NewWritingNotFoundError()
		}
		return fmt.Errorf("failed to delete writing: %w", err)
	}

	return nil
}

// =====================================================
// GET / READ
// =====================================================

func (s *writingService) Get(
	ctx context.Context,
	viewer policy.Viewer,
	id uuid.UUID,
) (*model.WritingResponse, error) {
	writing, err := s.loadReadable(ctx, viewer, id)
	if err != nil {
		return nil, err
	}

	return model.NewWritingResponse(writing), nil
}

// Read is the reading view: the raw source is rendered to sanitized
// HTML after the read policy check passed.
func (s *writingService) Read(
	ctx context.Context,
	viewer policy.Viewer,
	id uuid.UUID,
) (*model.ReadWritingResponse, error) {
	writing, err := s.loadReadable(ctx, viewer, id)
	if err != nil {
		return nil, err
	}

	return &model.ReadWritingResponse{
		ID:         writing.ID,
		Title:      writing.Title,
		HTML:       s.renderContent(ctx, writing),
		Tags:       writing.Tags,
		Category:   writing.Category,
		Visibility: writing.Visibility,
		AuthorID:   writing.AuthorID,
		CreatedAt:  writing.CreatedAt,
		UpdatedAt:  writing.UpdatedAt,
	}, nil
}

func (s *writingService) loadReadable(
	ctx context.Context,
	viewer policy.Viewer,
	id uuid.UUID,
) (*model.Writing, error) {
	writing, err := s.writingRepo.GetByID(ctx, id)
	if err != nil {
		if err == model.ErrWritingNotFound {
			return nil, model.NewWritingNotFoundError()
		}
		return nil, fmt.Errorf("failed to load writing: %w", err)
	}

	if !policy.CanRead(viewer, writing) {
		return nil, model.NewUnauthorizedError("You may not view this writing")
	}

	return writing, nil
}

// =====================================================
// LIST
// =====================================================

func (s *writingService) List(
	ctx context.Context,
	viewer policy.Viewer,
	req model.ListWritingsRequest,
) (*model.ListWritingsResponse, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	scope := policy.ScopeFor(viewer)
	offset := (req.Page - 1) * req.Limit

	writings, total, err := s.writingRepo.List(ctx, scope, viewer, req.Filters(), req.Limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list writings: %w", err)
	}

	cards := make([]model.WritingCardResponse, 0, len(writings))
	for _, writing := range writings {
		cards = append(cards, model.NewWritingCardResponse(writing))
	}

	totalPages := (total + req.Limit - 1) / req.Limit

	return &model.ListWritingsResponse{
		Writings: cards,
		Pagination: model.PaginationMeta{
			Page:       req.Page,
			Limit:      req.Limit,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    req.Page < totalPages,
			HasPrev:    req.Page > 1,
		},
	}, nil
}

// =====================================================
// RENDER CACHE
// =====================================================

// renderContent renders through the cache. Rendered HTML does not
// depend on the viewer, so one entry per (id, updatedAt) is safe once
// the read policy check has passed. Keys carry the update timestamp,
// so an edit rolls the key over and stale entries age out via TTL.
func (s *writingService) renderContent(ctx context.Context, writing *model.Writing) string {
	if s.cache == nil {
		return markdown.Render(writing.Content)
	}

	key := renderCacheKey(writing.ID, writing.UpdatedAt)

	var html string
	if found, err := s.cache.Get(ctx, key, &html); err == nil && found {
		return html
	}

	html = markdown.Render(writing.Content)

	// Cache failures only cost a re-render.
	_ = s.cache.Set(ctx, key, html, renderCacheTTL)

	return html
}

func renderCacheKey(id uuid.UUID, updatedAt time.Time) string {
	return fmt.Sprintf("writing:html:%s:%d", id, updatedAt.UnixNano())
}
