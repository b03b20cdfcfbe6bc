// Package common defines shared constants and sentinel errors used across
// client and server layers of PortraitStudio. Callers should use errors.Is
// to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Validation errors.
	ErrorValidation    = errors.New("validation error")
	ErrorAlreadyExists = errors.New("already exists")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	// Payment errors.
	ErrPaymentRequired = errors.New("payment required")
	ErrCodeConsumed    = errors.New("license code already consumed")

	// Gallery errors.
	ErrGalleryFull = errors.New("gallery storage exhausted")
)
