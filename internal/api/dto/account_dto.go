package dto

import "time"

// SignUpRequest payload for POST /accounts/signup. Length limits follow migrations/001_users.sql.
type SignUpRequest struct {
	Username         string `json:"username" validate:"required,max=150,username"`
	Email            string `json:"email" validate:"required,email"`
	Password         string `json:"password" validate:"required,min=8,max=128"`
	FirstName        string `json:"first_name" validate:"max=30"`
	LastName         string `json:"last_name" validate:"max=150"`
	Skill            string `json:"skill" validate:"required,skill"`
	Area             string `json:"area" validate:"required,area"`
	RequestFee       string `json:"request_fee" validate:"required,fee"`
	Portfolio        string `json:"portfolio" validate:"max=450"`
	SelfIntroduction string `json:"self_introduction" validate:"max=500"`
	Twitter          string `json:"twitter" validate:"omitempty,max=200,url"`
	Instagram        string `json:"instagram" validate:"omitempty,max=150,url"`
}

// LoginRequest payload for POST /accounts/login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// PasswordResetRequest asks for a reset link by username or email.
type PasswordResetRequest struct {
	Login string `json:"login" validate:"required,max=254"`
}

// PasswordResetConfirmRequest sets the new password.
type PasswordResetConfirmRequest struct {
	NewPassword     string `json:"new_password" validate:"required,min=8,max=128"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=NewPassword"`
}

// ProfileUpdateRequest payload for PATCH /accounts/:id. Absent fields are unchanged.
type ProfileUpdateRequest struct {
	FirstName        *string `json:"first_name" validate:"omitempty,max=30"`
	LastName         *string `json:"last_name" validate:"omitempty,max=150"`
	Email            *string `json:"email" validate:"omitempty,email"`
	Skill            *string `json:"skill" validate:"omitempty,skill"`
	Area             *string `json:"area" validate:"omitempty,area"`
	RequestFee       *string `json:"request_fee" validate:"omitempty,fee"`
	Portfolio        *string `json:"portfolio" validate:"omitempty,max=450"`
	SelfIntroduction *string `json:"self_introduction" validate:"omitempty,max=500"`
	Twitter          *string `json:"twitter" validate:"omitempty,max=200,url"`
	Instagram        *string `json:"instagram" validate:"omitempty,max=150,url"`
	TopImage         *string `json:"top_image" validate:"omitempty,max=255"`
}
