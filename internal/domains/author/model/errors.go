package model

import "errors"

var (
	// Validation errors
	ErrMissingFields = errors.New("name, profession and link are required")

	// Business rule errors
	ErrAuthorNotFound = errors.New("author not found")
)
