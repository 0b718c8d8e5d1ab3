// Package domain defines the core business entities for Deskseek.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Content: An extracted file ready for indexing
//   - FieldSet: The flattened record handed to the search engine
//   - QueryResult: The full answer to one user query
//   - Settings: The immutable search configuration
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
