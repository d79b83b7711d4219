package domain

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrAlreadyActive      = errors.New("account already active")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrValueTooLong       = errors.New("value too long for field")

	// ErrActivationRejected covers every failed activation; callers must not learn which check failed.
	ErrActivationRejected = errors.New("activation rejected")
	ErrResetRejected      = errors.New("password reset rejected")
)
