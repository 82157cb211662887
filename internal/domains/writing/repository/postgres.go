package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"

	"inkwell-backend/internal/domains/writing/model"
	"inkwell-backend/internal/policy"
)

type postgresWritingRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresWritingRepository(pool *pgxpool.Pool) WritingRepository {
	return &postgresWritingRepository{pool: pool}
}

const writingColumns = `
	id, title, content, excerpt, tags, category, visibility,
	author_id, created_at, updated_at
`

// =====================================================
// CREATE
// =====================================================

func (r *postgresWritingRepository) Create(ctx context.Context, writing *model.Writing) error {
	query := `
		INSERT INTO writings (
			id, title, content, excerpt, tags, category, visibility,
			author_id, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.pool.Exec(ctx, query,
		writing.ID,
		writing.Title,
		writing.Content,
		writing.Excerpt,
		pq.Array(writing.Tags),
		writing.Category,
		writing.Visibility,
		writing.AuthorID,
		writing.CreatedAt,
		writing.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create writing: %w", err)
	}

	return nil
}

// =====================================================
// GET BY ID
// =====================================================

func (r *postgresWritingRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Writing, error) {
	query := `SELECT ` + writingColumns + ` FROM writings WHERE id = $1`

	writing, err := scanWriting(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrWritingNotFound
		}
		return nil, fmt.Errorf("failed to get writing: %w", err)
	}

	return writing, nil
}

// =====================================================
// UPDATE
// =====================================================

func (r *postgresWritingRepository) Update(ctx context.Context, writing *model.Writing) error {
	query := `
		UPDATE writings
		SET
			title = $2,
			content = $3,
			excerpt = $4,
			tags = $5,
			category = $6,
			visibility = $7,
			updated_at = $8
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query,
		writing.ID,
		writing.Title,
		writing.Content,
		writing.Excerpt,
		pq.Array(writing.Tags),
		writing.Category,
		writing.Visibility,
		writing.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to update writing: %w", err)
	}

	if result.RowsAffected() == 0 {
		return model.ErrWritingNotFound
	}

	return nil
}

// =====================================================
// DELETE
// =====================================================

func (r *postgresWritingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM writings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete writing: %w", err)
	}

	if result.RowsAffected() == 0 {
		return model.ErrWritingNotFound
	}

	return nil
}

// =====================================================
// LIST
// =====================================================

func (r *postgresWritingRepository) List(
	ctx context.Context,
	scope policy.ListScope,
	viewer policy.Viewer,
	filters policy.Filters,
	limit, offset int,
) ([]model.Writing, int, error) {
	where, args := buildListConditions(scope, viewer, filters)

	countQuery := `SELECT COUNT(*) FROM writings` + where
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count writings: %w", err)
	}

	listQuery := fmt.Sprintf(
		`SELECT %s FROM writings%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		writingColumns, where, len(args)+1, len(args)+2,
	)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list writings: %w", err)
	}
	defer rows.Close()

	writings, err := collectWritings(rows)
	if err != nil {
		return nil, 0, err
	}

	return writings, total, nil
}

// buildListConditions translates list scope and filter criteria into
// WHERE clauses. The scope clause always comes first; filters can only
// narrow it further, never widen it.
func buildListConditions(scope policy.ListScope, viewer policy.Viewer, filters policy.Filters) (string, []interface{}) {
	var conditions []string
	var args []interface{}

	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	switch scope {
	case policy.ScopeEverything:
		// no scope condition
	case policy.ScopePublicOrOwn:
		conditions = append(conditions,
			fmt.Sprintf("(visibility = 'public' OR author_id = %s)", arg(viewer.ID)))
	default:
		conditions = append(conditions, "visibility = 'public'")
	}

	if filters.Category != "" && filters.Category != policy.FilterAll {
		conditions = append(conditions, fmt.Sprintf("category = %s", arg(filters.Category)))
	}

	// The visibility filter is an admin-only control.
	if viewer.IsAdmin() && filters.Visibility != "" && filters.Visibility != policy.FilterAll {
		conditions = append(conditions, fmt.Sprintf("visibility = %s", arg(filters.Visibility)))
	}

	if len(conditions) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

// =====================================================
// PROFILE STATS
// =====================================================

func (r *postgresWritingRepository) CountByAuthor(ctx context.Context, authorID uuid.UUID) (int, int, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE visibility = 'public')
		FROM writings
		WHERE author_id = $1
	`

	var total, public int
	if err := r.pool.QueryRow(ctx, query, authorID).Scan(&total, &public); err != nil {
		return 0, 0, fmt.Errorf("failed to count writings by author: %w", err)
	}

	return total, public, nil
}

// =====================================================
// FOLLOW FEED
// =====================================================

func (r *postgresWritingRepository) ListPublicByAuthors(
	ctx context.Context,
	authorIDs []uuid.UUID,
	limit int,
) ([]model.Writing, error) {
	if len(authorIDs) == 0 {
		return []model.Writing{}, nil
	}

	query := `
		SELECT ` + writingColumns + `
		FROM writings
		WHERE visibility = 'public' AND author_id = ANY($1)
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, authorIDs, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list feed writings: %w", err)
	}
	defer rows.Close()

	return collectWritings(rows)
}

// =====================================================
// NEWSLETTER DIGEST
// =====================================================

func (r *postgresWritingRepository) ListPublicSince(ctx context.Context, since time.Time) ([]model.Writing, error) {
	query := `
		SELECT ` + writingColumns + `
		FROM writings
		WHERE visibility = 'public' AND created_at >= $1
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent public writings: %w", err)
	}
	defer rows.Close()

	return collectWritings(rows)
}

// =====================================================
// SCAN HELPERS
// =====================================================

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanWriting(row rowScanner) (*model.Writing, error) {
	writing := &model.Writing{}
	var tags []string

	err := row.Scan(
		&writing.ID,
		&writing.Title,
		&writing.Content,
		&writing.Excerpt,
		pq.Array(&tags),
		&writing.Category,
		&writing.Visibility,
		&writing.AuthorID,
		&writing.CreatedAt,
		&writing.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	writing.Tags = tags
	return writing, nil
}

func collectWritings(rows pgx.Rows) ([]model.Writing, error) {
	writings := []model.Writing{}
	for rows.Next() {
		writing, err := scanWriting(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan writing: %w", err)
		}
		writings = append(writings, *writing)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read writings: %w", err)
	}

	return writings, nil
}
