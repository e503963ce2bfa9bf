// Package validation checks and corrects normalised field values against
// the format rule of their field kind.
package validation

import (
	"sort"
	"strings"

	"github.com/vynal-docs/vynal/internal/core/domain"
	"github.com/vynal-docs/vynal/internal/logger"
)

// KindResolver looks up the definition of a canonical key.
// *fields.Mapping implements it.
type KindResolver interface {
	Definition(key string) (domain.FieldDefinition, bool)
}

// Validator turns a normalised record into a canonical record.
type Validator struct {
	settings domain.ValidationSettings
}

// New creates a validator with the given settings.
func New(settings domain.ValidationSettings) *Validator {
	return &Validator{settings: settings}
}

// Settings returns the validator settings.
func (v *Validator) Settings() domain.ValidationSettings {
	return v.settings
}

// Validate checks every field of rec against its kind's rule.
//
// Fields scored below the confidence threshold are dropped. A value
// failing its rule is fixed when a deterministic fix exists and either
// auto-correction is on or strict mode is off. Otherwise strict mode
// returns a *domain.ValidationError and lenient mode keeps the raw value.
// Fields are visited in key order so the reported error is stable.
func (v *Validator) Validate(rec domain.NormalisedRecord, kinds KindResolver) (domain.CanonicalRecord, []domain.Correction, error) {
	out := make(domain.CanonicalRecord, len(rec.Fields))
	var corrections []domain.Correction

	keys := make([]string, 0, len(rec.Fields))
	for key := range rec.Fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		field := rec.Fields[key]
		if field.Confidence < v.settings.ConfidenceThreshold {
			logger.Debug("dropping %s from %q: confidence %.2f below %.2f",
				key, field.Source, field.Confidence, v.settings.ConfidenceThreshold)
			continue
		}

		kind := domain.FieldKindText
		if def, ok := kinds.Definition(key); ok {
			kind = def.Kind
		}

		value, correction, err := v.check(key, kind, field.Raw)
		if err != nil {
			return nil, nil, err
		}
		if correction != nil {
			corrections = append(corrections, *correction)
		}
		out[key] = value
	}

	return out, corrections, nil
}

// Check validates a single value of the given kind.
func (v *Validator) Check(key string, kind domain.FieldKind, raw string) (domain.Value, error) {
	value, _, err := v.check(key, kind, raw)
	return value, err
}

func (v *Validator) check(key string, kind domain.FieldKind, raw string) (domain.Value, *domain.Correction, error) {
	r, hasRule := rules[kind]
	if !hasRule {
		return domain.Value{Kind: kind, Text: strings.TrimSpace(raw), Valid: true}, nil, nil
	}
	if !v.settings.Enabled(kind) {
		return domain.Value{Kind: kind, Text: strings.TrimSpace(raw)}, nil, nil
	}

	if value, ok := r.parse(raw); ok {
		return value, nil, nil
	}

	if v.settings.AutoCorrect || !v.settings.StrictMode {
		if fixed, ok := r.fix(raw); ok {
			if value, ok := r.parse(fixed); ok {
				logger.Debug("corrected %s: %q -> %q", key, raw, value.Text)
				return value, &domain.Correction{Field: key, Rule: r.name, From: raw, To: value.Text}, nil
			}
		}
	}

	if v.settings.StrictMode {
		return domain.Value{}, nil, &domain.ValidationError{Field: key, Rule: r.name, Value: raw}
	}

	logger.Warn("%s value %q does not match the %s rule, keeping it", key, raw, r.name)
	return domain.Value{Kind: kind, Text: raw}, nil, nil
}
