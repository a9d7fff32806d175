// Package domain defines the core business entities for Wordbook.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Word: A single unique entry, acting as its own primary key
//   - Snapshot: The full, ordered contents of the store at one commit
//   - AppSettings: Storage and change-watching configuration
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
