package model

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
)

// =====================================================
// AUTH DTOs
// =====================================================

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	PenName  string `json:"pen_name"`
}

// Normalize folds the email into its stored form and trims the pen
// name. Runs before Validate: the email check is case-sensitive on
// the domain part.
func (r *RegisterRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.PenName = strings.TrimSpace(r.PenName)
}

func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email,
			validation.Required.Error("email is required"),
			is.Email.Error("invalid email format"),
			validation.Length(5, 255),
		),
		validation.Field(&r.Password,
			validation.Required.Error("password is required"),
			validation.Length(8, 128).Error("password must be 8-128 characters"),
		),
		validation.Field(&r.PenName,
			validation.Required.Error("pen name is required"),
			validation.Length(2, 60),
		),
	)
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required),
	)
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (r RefreshTokenRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.RefreshToken, validation.Required),
	)
}

type LoginResponse struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
	User         UserDTO   `json:"user"`
}

// =====================================================
// PROFILE DTOs
// =====================================================

type UpdateProfileRequest struct {
	PenName *string `json:"pen_name"`
	Bio     *string `json:"bio"`
}

func (r UpdateProfileRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.PenName, validation.Length(2, 60)),
		validation.Field(&r.Bio, validation.Length(0, 500)),
	)
}

type SearchWritersRequest struct {
	Query string `form:"q"`
	Limit int    `form:"limit"`
}

func (r *SearchWritersRequest) Normalize() {
	if r.Limit < 1 || r.Limit > 50 {
		r.Limit = 10
	}
}

func (r SearchWritersRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Query, validation.Required, validation.Length(2, 100)),
	)
}

// UserDTO is the account owner's view of their own record.
type UserDTO struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	PenName   string    `json:"pen_name"`
	Bio       string    `json:"bio"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// WriterProfileDTO is the public face of an account: no email, plus
// writing counts. TotalWritings is only filled for the owner or an
// admin; everyone else sees public counts only.
type WriterProfileDTO struct {
	ID             uuid.UUID `json:"id"`
	PenName        string    `json:"pen_name"`
	Bio            string    `json:"bio"`
	PublicWritings int       `json:"public_writings"`
	TotalWritings  *int      `json:"total_writings,omitempty"`
	Followers      int       `json:"followers"`
	Following      int       `json:"following"`
	JoinedAt       time.Time `json:"joined_at"`
}

func (u *User) ToDTO() UserDTO {
	return UserDTO{
		ID:        u.ID,
		Email:     u.Email,
		PenName:   u.PenName,
		Bio:       u.Bio,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}
