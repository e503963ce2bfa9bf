// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/vynal-docs/vynal/internal/core/domain"
	"github.com/vynal-docs/vynal/internal/core/ports/driving"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewTemplates lists templates to generate from.
	ViewTemplates
	// ViewForm is the field entry form for one template.
	ViewForm
	// ViewDocuments lists generated documents.
	ViewDocuments
	// ViewDocContent shows a generated document's text.
	ViewDocContent
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewTemplates:
		return "templates"
	case ViewForm:
		return "form"
	case ViewDocuments:
		return "documents"
	case ViewDocContent:
		return "doc_content"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// TemplatesLoaded carries the template list.
type TemplatesLoaded struct {
	Templates []domain.Template
	Err       error
}

// TemplateSelected signals a template was picked for generation.
type TemplateSelected struct {
	Template domain.Template
}

// PlaceholdersLoaded carries the keys a template uses.
type PlaceholdersLoaded struct {
	TemplateID string
	Keys       []string
	Err        error
}

// PreviewReady carries the outcome of a dry run.
type PreviewReady struct {
	Preview *driving.Preview
	Err     error
}

// DocumentGenerated signals a document was written.
type DocumentGenerated struct {
	Document *domain.GeneratedDocument
	Err      error
}

// DocumentsLoaded carries the generated documents, newest first.
type DocumentsLoaded struct {
	Documents []domain.GeneratedDocument
	Err       error
}

// DocumentSelected signals a document was selected.
type DocumentSelected struct {
	Document domain.GeneratedDocument
}

// DocumentContentLoaded carries the plain-text rendering of a document.
type DocumentContentLoaded struct {
	Reference string
	Content   string
	Err       error
}

// DocumentDeleted signals a document was removed.
type DocumentDeleted struct {
	Reference string
	Err       error
}
