package domain

// FieldKind selects the validation rule applied to a canonical field.
type FieldKind string

// Available field kinds.
const (
	// FieldKindText is free text with no format rule.
	FieldKindText FieldKind = "text"

	// FieldKindDate is a calendar date, canonical form YYYY-MM-DD.
	FieldKindDate FieldKind = "date"

	// FieldKindAmount is a non-negative decimal amount with two decimals.
	FieldKindAmount FieldKind = "amount"

	// FieldKindEmail is an email address.
	FieldKindEmail FieldKind = "email"

	// FieldKindPhone is a phone number made of digits with an optional leading +.
	FieldKindPhone FieldKind = "phone"

	// FieldKindAddress is a single-line postal address.
	FieldKindAddress FieldKind = "address"
)

// IsValid returns true if the field kind is recognised.
func (k FieldKind) IsValid() bool {
	switch k {
	case FieldKindText, FieldKindDate, FieldKindAmount, FieldKindEmail, FieldKindPhone, FieldKindAddress:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (k FieldKind) String() string {
	return string(k)
}

// FieldDefinition declares one canonical field of the field mapping.
type FieldDefinition struct {
	// Key is the canonical key (e.g., "client_email").
	Key string

	// Kind selects the validation rule.
	Kind FieldKind

	// Label is a human-readable name for display.
	Label string

	// Synonyms are the accepted raw field names, matched case- and accent-insensitively.
	Synonyms []string
}

// FieldSuggestion is a guessed mapping from a raw field name to a canonical key.
type FieldSuggestion struct {
	// Field is the raw input field name.
	Field string

	// Key is the proposed canonical key.
	Key string

	// Confidence is the suggester's score in [0,1].
	Confidence float64
}
