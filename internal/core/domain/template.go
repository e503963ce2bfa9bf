package domain

import "time"

// SegmentKind distinguishes literal text from placeholders.
type SegmentKind int

const (
	// SegmentLiteral is text emitted as-is.
	SegmentLiteral SegmentKind = iota

	// SegmentPlaceholder is replaced by a canonical field value.
	SegmentPlaceholder
)

// Segment is one element of a parsed template.
type Segment struct {
	// Kind is the segment type.
	Kind SegmentKind

	// Text is the literal text, or the raw placeholder marker.
	Text string

	// Key is the canonical key named by a placeholder.
	Key string
}

// Template is a document template.
type Template struct {
	// ID is the unique identifier for the template.
	ID string

	// Name is the human-readable template name.
	Name string

	// DocumentType is the declared document type, used for titles (e.g., "Contrat de prestation").
	DocumentType string

	// Category groups templates for listing.
	Category string

	// Description is optional free text.
	Description string

	// Content is the raw template text with placeholder markers.
	Content string

	// Segments is the parsed form of Content.
	// Populated by the template service; stores persist Content only.
	Segments []Segment

	// CreatedAt is when the template was first stored.
	CreatedAt time.Time

	// UpdatedAt is when the template was last changed.
	UpdatedAt time.Time
}
