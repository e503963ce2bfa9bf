package domain

import (
	"strings"
	"time"
)

// OutputFormat identifies the file format of a generated document.
type OutputFormat string

// Available output formats.
const (
	// FormatText is the canonical plain-text representation.
	FormatText OutputFormat = "txt"

	// FormatPDF is a fixed-layout PDF rendering of the text.
	FormatPDF OutputFormat = "pdf"

	// FormatDOCX is a WordprocessingML rendering of the text.
	FormatDOCX OutputFormat = "docx"
)

// ParseOutputFormat maps user input to an OutputFormat.
// Unknown names are returned lower-cased so the caller can report them.
func ParseOutputFormat(s string) OutputFormat {
	name := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), "."))
	switch name {
	case "", "txt", "text", "plain":
		return FormatText
	case "pdf":
		return FormatPDF
	case "docx", "word":
		return FormatDOCX
	default:
		return OutputFormat(name)
	}
}

// IsValid returns true if the format is one of the built-in formats.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatText, FormatPDF, FormatDOCX:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (f OutputFormat) String() string {
	return string(f)
}

// ClientInfo is the client block stamped on a generated document.
type ClientInfo struct {
	Name    string `json:"name,omitempty"`
	Company string `json:"company,omitempty"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

// IsEmpty returns true if no client field is set.
func (c ClientInfo) IsEmpty() bool {
	return c == ClientInfo{}
}

// Fields returns the client info as canonical client_* fields, skipping empty ones.
func (c ClientInfo) Fields() map[string]string {
	fields := make(map[string]string, 5)
	for key, value := range map[string]string{
		"client_name":    c.Name,
		"client_company": c.Company,
		"client_email":   c.Email,
		"client_phone":   c.Phone,
		"client_address": c.Address,
	} {
		if strings.TrimSpace(value) != "" {
			fields[key] = value
		}
	}
	return fields
}

// GeneratedDocument is an assembled document. Immutable once written.
type GeneratedDocument struct {
	// Reference is the short unique token stamped on the document.
	Reference string

	// Title is derived from the template's document type and the client name.
	Title string

	// TemplateID links to the Template used.
	TemplateID string

	// GeneratedAt is the wall-clock time of assembly.
	GeneratedAt time.Time

	// Client is the client info block.
	Client ClientInfo

	// Body is the rendered template text.
	Body string

	// Format is the file format written.
	Format OutputFormat

	// Path is the location of the written file.
	Path string

	// Fields holds the formatted canonical values used for rendering.
	Fields map[string]string
}

// GenerateRequest is the input of a single document generation.
type GenerateRequest struct {
	// TemplateID selects the template.
	TemplateID string

	// Fields are raw input fields keyed by arbitrary names.
	Fields map[string]string

	// Confidence holds optional auto-fill scores keyed by raw field name.
	Confidence map[string]float64

	// Client is the client info block.
	Client ClientInfo

	// Format is the requested output format.
	Format OutputFormat
}
