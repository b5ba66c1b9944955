// Package domain defines the core business entities for rustyrag.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Record: A stored package-metadata entity with tags and timestamps
//   - RecordDraft: Client-supplied input used to construct a Record
//   - SearchResult: The display projection served by both search paths
//   - SearchResponse: The {results, total, query} envelope
//   - Metadata / MetaValue: Typed open-ended key-value metadata
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
