package services

import (
	"errors"
	"strings"
)

var (
	ErrValidation         = errors.New("validation error")
	ErrEmptyInput         = errors.New("username and password cannot be empty")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// ValidationError lists the required fields that were left blank.
// errors.Is(err, ErrValidation) holds for every ValidationError.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "please fill all fields: " + strings.Join(e.Fields, ", ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
