package domain

import "errors"

var (
	// Common domain errors
	ErrCorruptSnapshot = errors.New("membership snapshot is corrupt")
	ErrUnknownAction   = errors.New("unknown callback action")
)
