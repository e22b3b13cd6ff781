package core

import (
	"errors"

	"github.com/biodynlabs/cellculture-simulator/kb"
)

// Re-export the registry sentinel so API callers can match on core.* errors
// without importing kb directly.
var (
	// ErrUnknownCellLine indicates the requested cell line is not registered.
	ErrUnknownCellLine = kb.ErrLineNotFound
	// ErrInvalidParameter indicates a construction or run parameter failed
	// validation (non-positive cell count, domain size, duration, or dt).
	ErrInvalidParameter = errors.New("invalid simulation parameter")
)
