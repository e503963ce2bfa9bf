// Package documents provides the generated documents list view for the TUI.
package documents

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vynal-docs/vynal/internal/adapters/driving/tui/messages"
	"github.com/vynal-docs/vynal/internal/adapters/driving/tui/styles"
	"github.com/vynal-docs/vynal/internal/core/domain"
	"github.com/vynal-docs/vynal/internal/core/ports/driving"
)

// View is the documents list view.
type View struct {
	ctx             context.Context
	styles          *styles.Styles
	documentService driving.DocumentService

	documents     []domain.GeneratedDocument
	selected      int
	scrollOffset  int
	confirmDelete bool
	width         int
	height        int
	ready         bool
	loading       bool
	err           error
}

// NewView creates a new documents view.
func NewView(s *styles.Styles, documentService driving.DocumentService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		ctx:             context.Background(),
		styles:          s,
		documentService: documentService,
	}
}

// SetContext sets the context used for service calls.
func (v *View) SetContext(ctx context.Context) {
	v.ctx = ctx
}

// Init starts loading the documents.
func (v *View) Init() tea.Cmd {
	v.loading = true
	v.err = nil
	v.confirmDelete = false
	return v.loadDocuments()
}

func (v *View) loadDocuments() tea.Cmd {
	ctx, svc := v.ctx, v.documentService
	return func() tea.Msg {
		if svc == nil {
			return messages.DocumentsLoaded{Err: errors.New("document service not available")}
		}
		docs, err := svc.List(ctx, 0)
		return messages.DocumentsLoaded{Documents: docs, Err: err}
	}
}

// Update handles messages for the documents view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		if v.confirmDelete {
			return v.handleConfirmKeyMsg(msg)
		}
		return v.handleKeyMsg(msg)

	case messages.DocumentsLoaded:
		v.loading = false
		v.err = msg.Err
		if msg.Err == nil {
			v.documents = msg.Documents
			if v.selected >= len(v.documents) {
				v.selected = max(len(v.documents)-1, 0)
			}
			v.adjustScroll()
		}
		return v, nil

	case messages.DocumentDeleted:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		return v, v.loadDocuments()

	case messages.ErrorOccurred:
		v.err = msg.Err
		return v, nil
	}

	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.selected > 0 {
			v.selected--
			v.adjustScroll()
		}
	case "down", "j":
		if v.selected < len(v.documents)-1 {
			v.selected++
			v.adjustScroll()
		}
	case "enter":
		if doc, ok := v.current(); ok {
			return v, func() tea.Msg {
				return messages.DocumentSelected{Document: doc}
			}
		}
	case "o":
		if doc, ok := v.current(); ok {
			return v, v.openDocument(doc.Reference)
		}
	case "d":
		if _, ok := v.current(); ok {
			v.confirmDelete = true
		}
	case "r":
		return v, v.Init()
	case "esc":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}

	return v, nil
}

func (v *View) handleConfirmKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	v.confirmDelete = false
	if msg.String() != "y" {
		return v, nil
	}
	doc, ok := v.current()
	if !ok {
		return v, nil
	}
	return v, v.deleteDocument(doc.Reference)
}

func (v *View) current() (domain.GeneratedDocument, bool) {
	if v.selected < 0 || v.selected >= len(v.documents) {
		return domain.GeneratedDocument{}, false
	}
	return v.documents[v.selected], true
}

func (v *View) openDocument(reference string) tea.Cmd {
	ctx, svc := v.ctx, v.documentService
	return func() tea.Msg {
		if svc == nil {
			return messages.ErrorOccurred{Err: errors.New("document service not available")}
		}
		if err := svc.Open(ctx, reference); err != nil {
			return messages.ErrorOccurred{Err: err}
		}
		return nil
	}
}

func (v *View) deleteDocument(reference string) tea.Cmd {
	ctx, svc := v.ctx, v.documentService
	return func() tea.Msg {
		if svc == nil {
			return messages.DocumentDeleted{Reference: reference, Err: errors.New("document service not available")}
		}
		return messages.DocumentDeleted{Reference: reference, Err: svc.Delete(ctx, reference)}
	}
}

// adjustScroll keeps the selected item visible.
func (v *View) adjustScroll() {
	visible := v.visibleItemCount()
	if v.selected < v.scrollOffset {
		v.scrollOffset = v.selected
	} else if v.selected >= v.scrollOffset+visible {
		v.scrollOffset = v.selected - visible + 1
	}
}

func (v *View) visibleItemCount() int {
	available := v.height - 8
	if available < 1 {
		available = 1
	}
	return available
}

// View renders the documents view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render(fmt.Sprintf("Documents (%d)", len(v.documents))))
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading documents..."))
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
	case len(v.documents) == 0:
		b.WriteString(v.styles.Muted.Render("No documents generated yet."))
	default:
		visible := v.visibleItemCount()
		for i := v.scrollOffset; i < len(v.documents) && i < v.scrollOffset+visible; i++ {
			b.WriteString(v.renderDocument(i, &v.documents[i]))
			b.WriteString("\n")
		}
		if len(v.documents) > visible {
			b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  [%d-%d of %d]",
				v.scrollOffset+1, min(v.scrollOffset+visible, len(v.documents)), len(v.documents))))
		}
	}

	b.WriteString("\n\n")
	if v.confirmDelete {
		if doc, ok := v.current(); ok {
			b.WriteString(v.styles.Warning.Render(fmt.Sprintf("Delete %s? [y/N]", doc.Reference)))
			return b.String()
		}
	}
	b.WriteString(v.styles.Help.Render("[j/k] Navigate  [Enter] View  [o] Open  [d] Delete  [r] Reload  [esc] Back"))
	return b.String()
}

func (v *View) renderDocument(index int, doc *domain.GeneratedDocument) string {
	title := doc.Title
	maxTitleLen := v.width/2 - 4
	if maxTitleLen < 10 {
		maxTitleLen = 10
	}
	if len(title) > maxTitleLen {
		title = title[:maxTitleLen-3] + "..."
	}

	meta := v.styles.Muted.Render(fmt.Sprintf("%s  %s  %s",
		doc.Reference, doc.Format, doc.GeneratedAt.Format("2006-01-02 15:04")))

	if index == v.selected {
		return "> " + v.styles.Subtitle.Render(title) + "  " + meta
	}
	return "  " + v.styles.Normal.Render(title) + "  " + meta
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Documents returns the loaded documents.
func (v *View) Documents() []domain.GeneratedDocument {
	return v.documents
}

// Selected returns the currently selected index.
func (v *View) Selected() int {
	return v.selected
}

// ConfirmingDelete reports whether a delete confirmation is pending.
func (v *View) ConfirmingDelete() bool {
	return v.confirmDelete
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
