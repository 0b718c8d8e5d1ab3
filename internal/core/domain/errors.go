package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnknownFacetField indicates a facet field that is not part of
	// the facet catalog.
	ErrUnknownFacetField = errors.New("unknown facet field")

	// ErrEngineUnavailable indicates the search engine is not configured.
	ErrEngineUnavailable = errors.New("search engine unavailable")
)
