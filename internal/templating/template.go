// Package templating parses template text into literal and placeholder
// segments and renders them against a canonical record.
package templating

import (
	"iter"
	"strings"

	"github.com/vynal-docs/vynal/internal/core/domain"
)

// marker is a placeholder delimiter pair.
type marker struct {
	open  string
	close string
}

var markers = []marker{
	{open: "{{", close: "}}"},
	{open: "<<", close: ">>"},
}

// Parse splits content into segments. Placeholders are written
// {{ key }} or <<key>>. Unterminated or malformed markers stay literal.
func Parse(content string) []domain.Segment {
	var segs []domain.Segment
	var lit strings.Builder

	flush := func() {
		if lit.Len() > 0 {
			segs = append(segs, domain.Segment{Kind: domain.SegmentLiteral, Text: lit.String()})
			lit.Reset()
		}
	}

	rest := content
	for rest != "" {
		idx, m := nextMarker(rest)
		if idx < 0 {
			lit.WriteString(rest)
			break
		}
		lit.WriteString(rest[:idx])
		rest = rest[idx:]

		end := strings.Index(rest[len(m.open):], m.close)
		if end < 0 {
			lit.WriteString(rest)
			break
		}
		raw := rest[:len(m.open)+end+len(m.close)]
		key := strings.TrimSpace(rest[len(m.open) : len(m.open)+end])
		if !validKey(key) {
			// Keep the opener and rescan from the next byte.
			lit.WriteString(m.open)
			rest = rest[len(m.open):]
			continue
		}

		flush()
		segs = append(segs, domain.Segment{Kind: domain.SegmentPlaceholder, Text: raw, Key: key})
		rest = rest[len(raw):]
	}
	flush()

	return segs
}

// nextMarker returns the position of the earliest opener in s.
func nextMarker(s string) (int, marker) {
	best, found := -1, marker{}
	for _, m := range markers {
		if i := strings.Index(s, m.open); i >= 0 && (best < 0 || i < best) {
			best, found = i, m
		}
	}
	return best, found
}

func validKey(key string) bool {
	if key == "" {
		return false
	}
	for _, r := range key {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '_', r == '-', r == '.':
		default:
			return false
		}
	}
	return true
}

// Segments yields the rendered pieces of tpl in order. Placeholders
// whose key is absent from rec yield "".
func Segments(tpl domain.Template, rec domain.CanonicalRecord) iter.Seq[string] {
	segs := tpl.Segments
	if segs == nil {
		segs = Parse(tpl.Content)
	}
	return func(yield func(string) bool) {
		for _, seg := range segs {
			text := seg.Text
			if seg.Kind == domain.SegmentPlaceholder {
				text = rec.Format(seg.Key)
			}
			if !yield(text) {
				return
			}
		}
	}
}

// Render substitutes rec into tpl.
func Render(tpl domain.Template, rec domain.CanonicalRecord) string {
	var b strings.Builder
	b.Grow(len(tpl.Content))
	for piece := range Segments(tpl, rec) {
		b.WriteString(piece)
	}
	return b.String()
}

// Placeholders returns the distinct placeholder keys of tpl in order of first appearance.
func Placeholders(tpl domain.Template) []string {
	segs := tpl.Segments
	if segs == nil {
		segs = Parse(tpl.Content)
	}
	seen := make(map[string]bool)
	var keys []string
	for _, seg := range segs {
		if seg.Kind != domain.SegmentPlaceholder || seen[seg.Key] {
			continue
		}
		seen[seg.Key] = true
		keys = append(keys, seg.Key)
	}
	return keys
}
