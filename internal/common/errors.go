// Package common defines sentinel errors shared by the repositories, the
// blob stores, the services and the HTTP layer of profilekeeper. Callers
// should match them with errors.Is.
package common

import "errors"

var (
	// Store-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Workflow-level errors.
	ErrDuplicateEmail   = errors.New("email already exists")
	ErrInvalidName      = errors.New("invalid full name")
	ErrInvalidPassword  = errors.New("invalid password")
	ErrStoreUnavailable = errors.New("store unavailable")
)
