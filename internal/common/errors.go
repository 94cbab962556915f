package common

import "errors"

var (
	// client-side validation errors, raised before any request is sent
	ErrorValidation = errors.New("validation error")

	// repository-specific errors
	ErrorNotFound = errors.New("not found")
)
