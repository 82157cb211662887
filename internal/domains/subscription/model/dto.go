package model

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

type SubscribeRequest struct {
	Email string `json:"email"`
}

// Normalize folds the address into its stored form. Runs before
// Validate: the email check is case-sensitive on the domain part.
func (r *SubscribeRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

func (r SubscribeRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email,
			validation.Required.Error("email is required"),
			is.Email.Error("invalid email format"),
			validation.Length(5, 255),
		),
	)
}

type SubscriptionDTO struct {
	Email    string `json:"email"`
	IsActive bool   `json:"is_active"`
}

func (s *Subscription) ToDTO() SubscriptionDTO {
	return SubscriptionDTO{Email: s.Email, IsActive: s.IsActive}
}
