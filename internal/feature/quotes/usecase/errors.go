// Package usecase implements the business logic for the quotes feature.
package usecase

import "errors"

var (
	// ErrQuoteNotFound is returned when a delete matches no entry in the collection.
	ErrQuoteNotFound = errors.New("quote not found")

	// ErrInvalidQuote is returned when a quote is missing its category or text.
	ErrInvalidQuote = errors.New("quote category and text are required")

	// ErrMissingCategory is returned when a generation request has no category.
	ErrMissingCategory = errors.New("category is required")

	// ErrGeneration wraps every failure of the external text generator.
	ErrGeneration = errors.New("quote generation failed")

	// ErrMissingUser is returned when an operation is attempted without an owner.
	ErrMissingUser = errors.New("user id is required")
)
