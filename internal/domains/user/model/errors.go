package model

import (
	"errors"
	"fmt"
)

// Error codes
const (
	ErrCodeUserNotFound       = "USR001"
	ErrCodeEmailAlreadyExists = "USR002"
	ErrCodeInvalidCredentials = "USR003"
	ErrCodeAccountLocked      = "USR004"
	ErrCodeUserInactive       = "USR005"
	ErrCodeInvalidToken       = "USR006"
	ErrCodePenNameTaken       = "USR007"
)

// Errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountLocked      = errors.New("too many failed attempts, try again later")
	ErrUserInactive       = errors.New("account is deactivated")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrPenNameTaken       = errors.New("pen name already in use")
)

// UserError carries a stable code alongside the sentinel.
type UserError struct {
	Code    string
	Message string
	Err     error
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *UserError) Unwrap() error {
	return e.Err
}

func NewUserNotFoundError() *UserError {
	return &UserError{Code: ErrCodeUserNotFound, Message: "User not found", Err: ErrUserNotFound}
}

func NewEmailAlreadyExistsError() *UserError {
	return &UserError{Code: ErrCodeEmailAlreadyExists, Message: "Email already registered", Err: ErrEmailAlreadyExists}
}

func NewInvalidCredentialsError() *UserError {
	// Deliberately the same message for unknown email and wrong password.
	return &UserError{Code: ErrCodeInvalidCredentials, Message: "Invalid email or password", Err: ErrInvalidCredentials}
}

func NewAccountLockedError() *UserError {
	return &UserError{Code: ErrCodeAccountLocked, Message: "Too many failed attempts, try again later", Err: ErrAccountLocked}
}

func NewUserInactiveError() *UserError {
	return &UserError{Code: ErrCodeUserInactive, Message: "Account is deactivated", Err: ErrUserInactive}
}

func NewInvalidTokenError() *UserError {
	return &UserError{Code: ErrCodeInvalidToken, Message: "Invalid or expired token", Err: ErrInvalidToken}
}

func NewPenNameTakenError(penName string) *UserError {
	return &UserError{
		Code:    ErrCodePenNameTaken,
		Message: fmt.Sprintf("Pen name %q is already in use", penName),
		Err:     ErrPenNameTaken,
	}
}
