// Package common defines shared constants, sentinel errors and small helpers
// used by the DeployHQ stores and their console front end. Callers should use
// errors.Is to match the sentinel values.
package common

import "errors"

var (
	// Session errors.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrDuplicateAccount   = errors.New("user with this email already exists")

	// Catalog errors.
	ErrValidation          = errors.New("validation error")
	ErrDuplicateSubmission = errors.New("you already have an agent with this name")

	// Storage errors. ErrStorageCorrupt is recovered inside the stores and is
	// only ever logged.
	ErrStorageCorrupt = errors.New("stored value is corrupt")

	// ErrNotFound is used internally for absent ids; public mutations treat it
	// as a no-op.
	ErrNotFound = errors.New("not found")
)
