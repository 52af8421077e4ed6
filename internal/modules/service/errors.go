package service

import "errors"

// Expected, recoverable-by-caller conditions. Handlers map these to 4xx;
// anything else is an opaque internal failure.
var (
	ErrInvalidAccessCode = errors.New("invalid access code")
	ErrNotFound          = errors.New("not found")
	ErrStaleRevision     = errors.New("record was modified by another request")

	ErrPaidExceedsTotal = errors.New("paid amount cannot exceed total cost")
	ErrSlugTaken        = errors.New("slug already in use")
)
