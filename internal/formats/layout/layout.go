// Package layout turns a generated document into styled lines shared by
// every output format.
package layout

import (
	"strings"

	"github.com/vynal-docs/vynal/internal/core/domain"
)

// DateLayout is the timestamp format printed in document headers.
const DateLayout = "2006-01-02 15:04"

// Style is the presentation of one line.
type Style int

const (
	// Body is a normal paragraph.
	Body Style = iota

	// Heading1 is a top-level heading ("# " prefix in the body).
	Heading1

	// Heading2 is a section heading ("## " prefix in the body).
	Heading2

	// Meta is a header block line (reference, date, client info).
	Meta

	// Blank separates paragraphs.
	Blank
)

// Line is a single styled line of text.
type Line struct {
	Style Style
	Text  string
}

// Header returns the header block: title, reference, date and client info.
func Header(doc *domain.GeneratedDocument) []Line {
	lines := []Line{
		{Style: Heading1, Text: doc.Title},
		{Style: Meta, Text: "Reference: " + doc.Reference},
		{Style: Meta, Text: "Date: " + doc.GeneratedAt.Format(DateLayout)},
	}
	for _, f := range []struct{ label, value string }{
		{"Client", doc.Client.Name},
		{"Company", doc.Client.Company},
		{"Email", doc.Client.Email},
		{"Phone", doc.Client.Phone},
		{"Address", doc.Client.Address},
	} {
		if strings.TrimSpace(f.value) != "" {
			lines = append(lines, Line{Style: Meta, Text: f.label + ": " + f.value})
		}
	}
	return lines
}

// BodyLines classifies the lines of a rendered body.
func BodyLines(body string) []Line {
	body = strings.ReplaceAll(body, "\r\n", "\n")
	raw := strings.Split(body, "\n")
	lines := make([]Line, 0, len(raw))
	for _, text := range raw {
		switch {
		case strings.HasPrefix(text, "## "):
			lines = append(lines, Line{Style: Heading2, Text: strings.TrimSpace(text[3:])})
		case strings.HasPrefix(text, "# "):
			lines = append(lines, Line{Style: Heading1, Text: strings.TrimSpace(text[2:])})
		case strings.TrimSpace(text) == "":
			lines = append(lines, Line{Style: Blank})
		default:
			lines = append(lines, Line{Style: Body, Text: text})
		}
	}
	return lines
}

// Document returns the header block, a blank line, then the body lines.
func Document(doc *domain.GeneratedDocument) []Line {
	lines := Header(doc)
	lines = append(lines, Line{Style: Blank})
	return append(lines, BodyLines(doc.Body)...)
}

// Text is the canonical plain-text form of doc.
func Text(doc *domain.GeneratedDocument) string {
	var b strings.Builder
	for _, line := range Header(doc) {
		b.WriteString(line.Text)
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	b.WriteString(doc.Body)
	if !strings.HasSuffix(doc.Body, "\n") {
		b.WriteByte('\n')
	}
	return b.String()
}
