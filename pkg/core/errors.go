package core

import "errors"

// Common errors.
var (
	ErrEmptyID      = errors.New("note ID cannot be empty")
	ErrEmptyContent = errors.New("note content cannot be empty")
	ErrNotFound     = errors.New("note not found")
	ErrInvalidEvent = errors.New("change event is missing its payload")
)
