// Package form provides the field entry view used to fill a template.
package form

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vynal-docs/vynal/internal/adapters/driving/tui/components/input"
	"github.com/vynal-docs/vynal/internal/adapters/driving/tui/keymap"
	"github.com/vynal-docs/vynal/internal/adapters/driving/tui/messages"
	"github.com/vynal-docs/vynal/internal/adapters/driving/tui/styles"
	"github.com/vynal-docs/vynal/internal/core/domain"
	"github.com/vynal-docs/vynal/internal/core/ports/driving"
	"github.com/vynal-docs/vynal/internal/fields"
)

// formats is the ctrl+f cycle order.
var formats = []domain.OutputFormat{domain.FormatText, domain.FormatPDF, domain.FormatDOCX}

// View collects one value per template placeholder and previews or
// generates the document.
type View struct {
	ctx             context.Context
	styles          *styles.Styles
	keymap          *keymap.KeyMap
	templateService driving.TemplateService
	generation      driving.GenerationService
	mapping         *fields.Mapping

	template  *domain.Template
	inputs    []*input.Field
	focus     int
	format    int
	preview   *driving.Preview
	generated *domain.GeneratedDocument
	loading   bool
	working   bool
	err       error
	width     int
	height    int
}

// NewView creates a new form view. mapping may be nil.
func NewView(
	s *styles.Styles,
	templateService driving.TemplateService,
	generation driving.GenerationService,
	mapping *fields.Mapping,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		ctx:             context.Background(),
		styles:          s,
		keymap:          keymap.DefaultKeyMap(),
		templateService: templateService,
		generation:      generation,
		mapping:         mapping,
		width:           80,
		height:          24,
	}
}

// SetContext sets the context used for service calls.
func (v *View) SetContext(ctx context.Context) {
	v.ctx = ctx
}

// SetTemplate resets the form for tpl and loads its placeholders.
func (v *View) SetTemplate(tpl domain.Template) tea.Cmd {
	v.template = &tpl
	v.inputs = nil
	v.focus = 0
	v.format = 0
	v.preview = nil
	v.generated = nil
	v.err = nil
	v.loading = true

	ctx := v.ctx
	svc := v.templateService
	return func() tea.Msg {
		if svc == nil {
			return messages.PlaceholdersLoaded{TemplateID: tpl.ID, Err: errors.New("template service not available")}
		}
		keys, err := svc.Placeholders(ctx, tpl.ID)
		return messages.PlaceholdersLoaded{TemplateID: tpl.ID, Keys: keys, Err: err}
	}
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the form view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.PlaceholdersLoaded:
		if v.template == nil || msg.TemplateID != v.template.ID {
			return v, nil
		}
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		return v, v.buildInputs(msg.Keys)

	case messages.PreviewReady:
		v.working = false
		v.err = msg.Err
		if msg.Err == nil {
			v.preview = msg.Preview
		}
		return v, nil

	case messages.DocumentGenerated:
		v.working = false
		v.err = msg.Err
		if msg.Err == nil {
			v.generated = msg.Document
		}
		return v, nil

	case messages.ErrorOccurred:
		v.working = false
		v.err = msg.Err
		return v, nil
	}

	return v, nil
}

func (v *View) buildInputs(keys []string) tea.Cmd {
	v.inputs = make([]*input.Field, 0, len(keys))
	for _, key := range keys {
		label := ""
		if v.mapping != nil {
			if def, ok := v.mapping.Definition(key); ok {
				label = def.Label
			}
		}
		placeholder := ""
		if key == "current_date" {
			placeholder = "today"
		}
		field := input.NewField(v.styles, key, label, placeholder)
		field.SetWidth(v.width)
		v.inputs = append(v.inputs, field)
	}
	if len(v.inputs) == 0 {
		return nil
	}
	return v.inputs[0].Focus()
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	keyStr := msg.String()
	switch {
	case keyStr == "esc":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewTemplates}
		}
	case keymap.Matches(keyStr, v.keymap.NextField):
		return v, v.moveFocus(1)
	case keymap.Matches(keyStr, v.keymap.PrevField):
		return v, v.moveFocus(-1)
	case keymap.Matches(keyStr, v.keymap.Format):
		v.format = (v.format + 1) % len(formats)
		return v, nil
	case keymap.Matches(keyStr, v.keymap.Preview):
		return v, v.runPreview()
	case keymap.Matches(keyStr, v.keymap.Generate), keyStr == "enter" && v.focus == len(v.inputs)-1:
		return v, v.runGenerate()
	case keyStr == "enter":
		return v, v.moveFocus(1)
	}

	if v.focus < len(v.inputs) {
		var cmd tea.Cmd
		v.inputs[v.focus], cmd = v.inputs[v.focus].Update(msg)
		return v, cmd
	}
	return v, nil
}

func (v *View) moveFocus(delta int) tea.Cmd {
	if len(v.inputs) == 0 {
		return nil
	}
	v.inputs[v.focus].Blur()
	v.focus = (v.focus + delta + len(v.inputs)) % len(v.inputs)
	return v.inputs[v.focus].Focus()
}

// Request builds a generation request from the filled fields.
// Empty inputs are left out so the pipeline reports them as missing.
func (v *View) Request() domain.GenerateRequest {
	req := domain.GenerateRequest{
		Fields: make(map[string]string, len(v.inputs)),
		Format: formats[v.format],
	}
	if v.template != nil {
		req.TemplateID = v.template.ID
	}
	for _, field := range v.inputs {
		if value := strings.TrimSpace(field.Value()); value != "" {
			req.Fields[field.Key()] = value
		}
	}
	return req
}

func (v *View) runPreview() tea.Cmd {
	if v.template == nil || v.working {
		return nil
	}
	v.working = true
	v.generated = nil
	ctx, svc, req := v.ctx, v.generation, v.Request()
	return func() tea.Msg {
		if svc == nil {
			return messages.PreviewReady{Err: errors.New("generation service not available")}
		}
		preview, err := svc.Preview(ctx, req)
		return messages.PreviewReady{Preview: preview, Err: err}
	}
}

func (v *View) runGenerate() tea.Cmd {
	if v.template == nil || v.working {
		return nil
	}
	v.working = true
	ctx, svc, req := v.ctx, v.generation, v.Request()
	return func() tea.Msg {
		if svc == nil {
			return messages.DocumentGenerated{Err: errors.New("generation service not available")}
		}
		doc, err := svc.Generate(ctx, req)
		return messages.DocumentGenerated{Document: doc, Err: err}
	}
}

// View renders the form, followed by the preview or generation result.
func (v *View) View() string {
	var b strings.Builder

	title := "New document"
	if v.template != nil {
		title = v.template.Name
		if v.template.DocumentType != "" {
			title += " - " + v.template.DocumentType
		}
	}
	b.WriteString(v.styles.Title.Render(title))
	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render("Format: " + formats[v.format].String()))
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading fields..."))
		b.WriteString("\n")
	case len(v.inputs) == 0 && v.err == nil:
		b.WriteString(v.styles.Muted.Render("Template has no placeholders."))
		b.WriteString("\n")
	default:
		for _, field := range v.inputs {
			b.WriteString(field.View())
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	switch {
	case v.working:
		b.WriteString(v.styles.Muted.Render("Working..."))
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
	case v.generated != nil:
		b.WriteString(v.styles.Success.Render(fmt.Sprintf("Generated %s", v.generated.Title)))
		b.WriteString("\n")
		b.WriteString(v.styles.Normal.Render(fmt.Sprintf("Reference: %s", v.generated.Reference)))
		b.WriteString("\n")
		b.WriteString(v.styles.Normal.Render(fmt.Sprintf("Path:      %s", v.generated.Path)))
	case v.preview != nil:
		b.WriteString(v.renderPreview())
	}

	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render("[tab] Next  [ctrl+p] Preview  [ctrl+s] Generate  [ctrl+f] Format  [esc] Back"))
	return b.String()
}

func (v *View) renderPreview() string {
	var b strings.Builder
	b.WriteString(v.styles.Preview.Render(v.clip(v.preview.Body)))
	b.WriteString("\n")
	for _, c := range v.preview.Corrections {
		b.WriteString(v.styles.Warning.Render(fmt.Sprintf("  %s: %q -> %q (%s)", c.Field, c.From, c.To, c.Rule)))
		b.WriteString("\n")
	}
	if len(v.preview.Missing) > 0 {
		b.WriteString(v.styles.Warning.Render("Missing: " + strings.Join(v.preview.Missing, ", ")))
	} else {
		b.WriteString(v.styles.Success.Render("All placeholders filled."))
	}
	return b.String()
}

// clip keeps the preview within the space left under the form.
func (v *View) clip(body string) string {
	limit := v.height - len(v.inputs) - 12
	if limit < 3 {
		limit = 3
	}
	lines := strings.Split(strings.TrimRight(body, "\n"), "\n")
	if len(lines) <= limit {
		return strings.Join(lines, "\n")
	}
	return strings.Join(lines[:limit], "\n") + "\n..."
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	for _, field := range v.inputs {
		field.SetWidth(width)
	}
}

// Template returns the template being filled.
func (v *View) Template() *domain.Template {
	return v.template
}

// Inputs returns the form fields in placeholder order.
func (v *View) Inputs() []*input.Field {
	return v.inputs
}

// Focus returns the index of the focused field.
func (v *View) Focus() int {
	return v.focus
}

// Format returns the selected output format.
func (v *View) Format() domain.OutputFormat {
	return formats[v.format]
}

// Preview returns the last preview.
func (v *View) Preview() *driving.Preview {
	return v.preview
}

// Generated returns the last generated document.
func (v *View) Generated() *domain.GeneratedDocument {
	return v.generated
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
