package model

import (
	"errors"
	"fmt"
)

// Error codes
const (
	ErrCodeWritingNotFound = "WRT001"
	ErrCodeUnauthorized    = "WRT002"
	ErrCodeEmptyDraft      = "WRT003"
	ErrCodeTooManyTags     = "WRT004"
	ErrCodeTagTooLong      = "WRT005"
	ErrCodeInvalidCategory = "WRT006"
)

// Errors
var (
	ErrWritingNotFound = errors.New("writing not found")
	ErrUnauthorized    = errors.New("unauthorized to perform this action")
	ErrEmptyDraft      = errors.New("a title or content is required")
	ErrTooManyTags     = errors.New("too many tags")
	ErrTagTooLong      = errors.New("tag too long")
	ErrInvalidCategory = errors.New("invalid category")
)

// WritingError carries a stable code alongside the sentinel.
type WritingError struct {
	Code    string
	Message string
	Err     error
}

func (e *WritingError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *WritingError) Unwrap() error {
	return e.Err
}

// Error constructors
func NewWritingNotFoundError() *WritingError {
	return &WritingError{
		Code:    ErrCodeWritingNotFound,
		Message: "Writing not found",
		Err:     ErrWritingNotFound,
	}
}

func NewUnauthorizedError(message string) *WritingError {
	return &WritingError{
		Code:    ErrCodeUnauthorized,
		Message: message,
		Err:     ErrUnauthorized,
	}
}

func NewEmptyDraftError() *WritingError {
	return &WritingError{
		Code:    ErrCodeEmptyDraft,
		Message: "Please add a title or some content",
		Err:     ErrEmptyDraft,
	}
}

func NewTooManyTagsError(count int) *WritingError {
	return &WritingError{
		Code:    ErrCodeTooManyTags,
		Message: fmt.Sprintf("At most %d tags are allowed, got %d", MaxTags, count),
		Err:     ErrTooManyTags,
	}
}

func NewTagTooLongError(tag string) *WritingError {
	return &WritingError{
		Code:    ErrCodeTagTooLong,
		Message: fmt.Sprintf("Tag %q exceeds %d characters", tag, MaxTagLength),
		Err:     ErrTagTooLong,
	}
}

func NewInvalidCategoryError(category string) *WritingError {
	return &WritingError{
		Code:    ErrCodeInvalidCategory,
		Message: fmt.Sprintf("Unknown category %q", category),
		Err:     ErrInvalidCategory,
	}
}
