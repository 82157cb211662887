package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Category string

const (
	CategoryPoetry     Category = "poetry"
	CategoryFiction    Category = "fiction"
	CategoryEssay      Category = "essay"
	CategoryReflection Category = "reflection"
	CategoryOther      Category = "other"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryPoetry, CategoryFiction, CategoryEssay, CategoryReflection, CategoryOther:
		return true
	}
	return false
}

type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

func (v Visibility) Valid() bool {
	return v == VisibilityPublic || v == VisibilityPrivate
}

// Writing is a single authored text artifact.
// Excerpt is always derived from Content at save time, never edited
// independently. Visibility and AuthorID jointly gate read access.
type Writing struct {
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

// policy.Resource / policy.Listable
func (w Writing) OwnerID() uuid.UUID  { return w.AuthorID }
func (w Writing) IsPublic() bool      { return w.Visibility == VisibilityPublic }
func (w Writing) CategoryKey() string { return string(w.Category) }

// NormalizeTags trims, lowercases and de-duplicates tags, keeping the
// order of first occurrence. Tags over the per-tag length cap or a set
// exceeding MaxTags are rejected, not silently dropped.
func NormalizeTags(tags []string) ([]string, error) {
	normalized := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))

	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" {
			continue
		}
		if len([]rune(tag)) > MaxTagLength {
			return nil, NewTagTooLongError(tag)
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		normalized = append(normalized, tag)
	}

	if len(normalized) > MaxTags {
		return nil, NewTooManyTagsError(len(normalized))
	}

	return normalized, nil
}
