package api

import "errors"

var (
	ErrUnavailable     = errors.New("server unavailable")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrPaymentRequired = errors.New("premium account required")
	ErrConflict        = errors.New("conflict")
	ErrNotFound        = errors.New("not found")
)
