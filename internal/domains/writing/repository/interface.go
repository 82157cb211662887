package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"inkwell-backend/internal/domains/writing/model"
	"inkwell-backend/internal/policy"
)

// WritingRepository is the data access contract for writings.
type WritingRepository interface {
	Create(ctx context.Context, writing *model.Writing) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Writing, error)
	Update(ctx context.Context, writing *model.Writing) error
	Delete(ctx context.Context, id uuid.UUID) error

	// List returns the writings visible under the given scope, newest
	// first, plus the total count for pagination. The scope is applied
	// in the query itself so rows a viewer may not see never leave the
	// database.
	List(ctx context.Context, scope policy.ListScope, viewer policy.Viewer, filters policy.Filters, limit, offset int) ([]model.Writing, int, error)

	// CountByAuthor returns (total, public) writing counts for profile stats.
	CountByAuthor(ctx context.Context, authorID uuid.UUID) (int, int, error)

	// ListPublicByAuthors backs the follow feed.
	ListPublicByAuthors(ctx context.Context, authorIDs []uuid.UUID, limit int) ([]model.Writing, error)

	// ListPublicSince backs the newsletter digest.
	ListPublicSince(ctx context.Context, since time.Time) ([]model.Writing, error)
}
