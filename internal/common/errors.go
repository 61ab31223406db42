// Package common holds sentinel errors and small helpers shared by the
// storage, service and front-end layers. Match the errors with errors.Is.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound          = errors.New("not found")
	ErrDuplicateUsername = errors.New("username already taken")

	// ErrStorage marks a failure of the underlying persistence medium.
	ErrStorage = errors.New("storage unavailable")

	// ErrNetwork marks a failed remote fetch.
	ErrNetwork = errors.New("network error")

	// Session token errors.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
