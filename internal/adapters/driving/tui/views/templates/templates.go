// Package templates provides the template picker view for the TUI.
package templates

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

// View lists templates grouped by category.
type View struct {
	ctx             context.Context
	styles          *styles.Styles
	templateService driving.TemplateService

	templates    []domain.Template
	selected     int
	scrollOffset int
	width        int
	height       int
	ready        bool
	loading      bool
	err          error
}

// NewView creates a new templates view.
func NewView(s *styles.Styles, templateService driving.TemplateService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		ctx:             context.Background(),
		styles:          s,
		templateService: templateService,
	}
}

// SetContext sets the context used for service calls.
func (v *View) SetContext(ctx context.Context) {
	v.ctx = ctx
}

// Init starts loading the template list.
func (v *View) Init() tea.Cmd {
	v.loading = true
	v.err = nil
	return v.loadTemplates()
}

func (v *View) loadTemplates() tea.Cmd {
	ctx := v.ctx
	svc := v.templateService
	return func() tea.Msg {
		if svc == nil {
			return messages.TemplatesLoaded{Err: errors.New("template service not available")}
		}
		templates, err := svc.List(ctx)
		return messages.TemplatesLoaded{Templates: templates, Err: err}
	}
}

// Update handles messages for the templates view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.TemplatesLoaded:
		v.loading = false
		v.err = msg.Err
		if msg.Err == nil {
			v.templates = msg.Templates
			if v.selected >= len(v.templates) {
				v.selected = 0
				v.scrollOffset = 0
			}
		}
		return v, nil

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
		if v.selected < len(v.templates)-1 {
			v.selected++
			v.adjustScroll()
		}
	case "enter":
		if v.selected < len(v.templates) {
			tpl := v.templates[v.selected]
			return v, func() tea.Msg {
				return messages.TemplateSelected{Template: tpl}
			}
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

// View renders the templates view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render(fmt.Sprintf("Templates (%d)", len(v.templates))))
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading templates..."))
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
	case len(v.templates) == 0:
		b.WriteString(v.styles.Muted.Render(`No templates. Add one with "vynal template add <file>".`))
	default:
		v.renderList(&b)
	}

	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render("[j/k] Navigate  [Enter] Fill  [r] Reload  [esc] Back"))
	return b.String()
}

func (v *View) renderList(b *strings.Builder) {
	visible := v.visibleItemCount()
	category := "\x00"
	for i := v.scrollOffset; i < len(v.templates) && i < v.scrollOffset+visible; i++ {
		tpl := &v.templates[i]
		if tpl.Category != category {
			category = tpl.Category
			name := category
			if name == "" {
				name = "uncategorised"
			}
			b.WriteString(v.styles.Muted.Render("[" + name + "]"))
			b.WriteString("\n")
		}

		if i == v.selected {
			b.WriteString("> " + v.styles.Subtitle.Render(tpl.Name))
		} else {
			b.WriteString("  " + v.styles.Normal.Render(tpl.Name))
		}
		if tpl.DocumentType != "" {
			b.WriteString("  " + v.styles.Muted.Render(tpl.DocumentType))
		}
		b.WriteString("\n")
	}

	if len(v.templates) > visible {
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  [%d-%d of %d]",
			v.scrollOffset+1, min(v.scrollOffset+visible, len(v.templates)), len(v.templates))))
	}
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Templates returns the loaded templates.
func (v *View) Templates() []domain.Template {
	return v.templates
}

// Selected returns the currently selected index.
func (v *View) Selected() int {
	return v.selected
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
