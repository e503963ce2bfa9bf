// Package domain defines the core business entities for Vynal.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - FieldDefinition: A canonical field key, its kind and synonyms
//   - InputRecord: Raw field names and values supplied by a caller
//   - CanonicalRecord: Validated values keyed by canonical field key
//   - Template: Literal text and placeholder segments
//   - GeneratedDocument: An assembled document with its reference id
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
