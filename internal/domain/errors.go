package domain

import "errors"

// Error taxonomy shared by stores and handlers
var (
	ErrValidation     = errors.New("validation failed")        // Malformed or missing input
	ErrConflict       = errors.New("conflict")                 // Unique constraint or restrict violation
	ErrNotFound       = errors.New("not found")                // Absent, or owned by someone else
	ErrAuthentication = errors.New("invalid or expired token") // Any credential failure
)
