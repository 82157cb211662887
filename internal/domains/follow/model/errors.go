package model

import (
	"errors"
	"fmt"
)

// Error codes
const (
	ErrCodeSelfFollow     = "FLW001"
	ErrCodeWriterNotFound = "FLW002"
)

// Errors
var (
	ErrSelfFollow     = errors.New("cannot follow yourself")
	ErrWriterNotFound = errors.New("writer not found")
)

type FollowError struct {
	Code    string
	Message string
	Err     error
}

func (e *FollowError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *FollowError) Unwrap() error {
	return e.Err
}

func NewSelfFollowError() *FollowError {
	return &FollowError{Code: ErrCodeSelfFollow, Message: "You cannot follow yourself", Err: ErrSelfFollow}
}

func NewWriterNotFoundError() *FollowError {
	return &FollowError{Code: ErrCodeWriterNotFound, Message: "Writer not found", Err: ErrWriterNotFound}
}
