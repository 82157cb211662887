package model

import (
	"errors"
	"fmt"
)

// Error codes
const (
	ErrCodeAlreadySubscribed    = "SUB001"
	ErrCodeSubscriptionNotFound = "SUB002"
)

// Errors
var (
	ErrAlreadySubscribed    = errors.New("email already subscribed")
	ErrSubscriptionNotFound = errors.New("subscription not found")
)

type SubscriptionError struct {
	Code    string
	Message string
	Err     error
}

func (e *SubscriptionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *SubscriptionError) Unwrap() error {
	return e.Err
}

func NewAlreadySubscribedError() *SubscriptionError {
	return &SubscriptionError{Code: ErrCodeAlreadySubscribed, Message: "This email is already subscribed", Err: ErrAlreadySubscribed}
}

func NewSubscriptionNotFoundError() *SubscriptionError {
	return &SubscriptionError{Code: ErrCodeSubscriptionNotFound, Message: "Subscription not found", Err: ErrSubscriptionNotFound}
}
