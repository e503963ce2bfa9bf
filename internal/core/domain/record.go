package domain

import (
	"sort"
	"time"
)

// InputRecord holds the raw fields of one generation request.
type InputRecord struct {
	// Fields maps arbitrary raw field names to raw values.
	Fields map[string]string

	// Confidence holds optional scores for guessed fields, keyed by raw field name.
	// Fields without an entry are treated as certain.
	Confidence map[string]float64
}

// ConfidenceFor returns the confidence score of a raw field (1 when none was supplied).
func (r InputRecord) ConfidenceFor(name string) float64 {
	if score, ok := r.Confidence[name]; ok {
		return score
	}
	return 1
}

// NormalisedField is a raw value attached to its canonical key.
type NormalisedField struct {
	// Key is the canonical key.
	Key string

	// Source is the raw field name that supplied the value.
	Source string

	// Raw is the unvalidated value.
	Raw string

	// Confidence is carried over from the input record.
	Confidence float64
}

// NormalisedRecord is the output of field normalisation.
type NormalisedRecord struct {
	// Fields maps canonical keys to their raw values.
	Fields map[string]NormalisedField

	// Unmapped lists raw field names that matched no canonical key.
	Unmapped []string
}

// Value is a validated, typed field value.
type Value struct {
	// Kind is the field kind the value was validated against.
	Kind FieldKind

	// Text is the canonical string form used when rendering.
	Text string

	// Date is set for valid date values.
	Date time.Time

	// Cents is set for valid amount values.
	Cents int64

	// Valid reports whether the value passed its format rule.
	Valid bool
}

// String returns the formatted value.
func (v Value) String() string {
	return v.Text
}

// CanonicalRecord maps canonical keys to validated values.
type CanonicalRecord map[string]Value

// Format returns the formatted value for key, or "" when absent.
func (r CanonicalRecord) Format(key string) string {
	v, ok := r[key]
	if !ok {
		return ""
	}
	return v.Text
}

// Keys returns the record's keys in sorted order.
func (r CanonicalRecord) Keys() []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Strings flattens the record to formatted values.
func (r CanonicalRecord) Strings() map[string]string {
	out := make(map[string]string, len(r))
	for k, v := range r {
		out[k] = v.Text
	}
	return out
}

// Correction records a value rewritten by the validator.
type Correction struct {
	Field string
	Rule  string
	From  string
	To    string
}
