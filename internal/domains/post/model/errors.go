package model

import "errors"

var (
	// Validation errors
	ErrValidation      = errors.New("post validation failed")
	ErrInvalidAuthorID = errors.New("authorId is not a valid id")

	// Business rule errors
	ErrPostNotFound = errors.New("post not found")
)
