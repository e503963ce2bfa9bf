package form

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vynal-docs/vynal/internal/adapters/driving/tui/messages"
	"github.com/vynal-docs/vynal/internal/core/domain"
	"github.com/vynal-docs/vynal/internal/core/ports/driving"
	"github.com/vynal-docs/vynal/internal/fields"
)

type mockTemplateService struct {
	driving.TemplateService
	keys []string
}

func (m *mockTemplateService) Placeholders(_ context.Context, _ string) ([]string, error) {
	return m.keys, nil
}

type mockGenerationService struct {
	driving.GenerationService
	lastReq domain.GenerateRequest
	err     error
}

func (m *mockGenerationService) Generate(
	_ context.Context, req domain.GenerateRequest,
) (*domain.GeneratedDocument, error) {
	m.lastReq = req
	if m.err != nil {
		return nil, m.err
	}
	return &domain.GeneratedDocument{Reference: "CTR-20260301-0001", Title: "Contrat - Jean", Path: "/tmp/x.txt"}, nil
}

func (m *mockGenerationService) Preview(_ context.Context, req domain.GenerateRequest) (*driving.Preview, error) {
	m.lastReq = req
	return &driving.Preview{
		Body:        "Client : " + req.Fields["client_name"],
		Corrections: []domain.Correction{{Field: "amount", Rule: "amount", From: "1500", To: "1500.00"}},
		Missing:     []string{"amount"},
	}, nil
}

func newForm(t *testing.T, keys ...string) (*View, *mockGenerationService) {
	t.Helper()
	mapping, err := fields.DefaultMapping()
	require.NoError(t, err)

	gen := &mockGenerationService{}
	view := NewView(nil, &mockTemplateService{keys: keys}, gen, mapping)
	view.SetDimensions(100, 40)

	cmd := view.SetTemplate(domain.Template{ID: "t1", Name: "contrat", DocumentType: "Contrat"})
	require.NotNil(t, cmd)
	view.Update(cmd())
	return view, gen
}

func typeText(view *View, text string) {
	for _, r := range text {
		view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func run(view *View, cmd tea.Cmd) {
	if cmd != nil {
		if msg := cmd(); msg != nil {
			view.Update(msg)
		}
	}
}

func TestView_BuildsOneInputPerPlaceholder(t *testing.T) {
	view, _ := newForm(t, "client_name", "amount", "current_date")

	require.Len(t, view.Inputs(), 3)
	assert.Equal(t, "client_name", view.Inputs()[0].Key())
	assert.True(t, view.Inputs()[0].Focused())
	assert.NotEqual(t, "client_name", view.Inputs()[0].Label())
	assert.Contains(t, view.View(), "contrat - Contrat")
}

func TestView_NoPlaceholders(t *testing.T) {
	view, _ := newForm(t)

	assert.Empty(t, view.Inputs())
	assert.Contains(t, view.View(), "Template has no placeholders.")
}

func TestView_StalePlaceholdersIgnored(t *testing.T) {
	view, _ := newForm(t, "client_name")

	view.Update(messages.PlaceholdersLoaded{TemplateID: "other", Keys: []string{"a", "b"}})

	assert.Len(t, view.Inputs(), 1)
}

func TestView_FocusCycles(t *testing.T) {
	view, _ := newForm(t, "client_name", "amount")

	view.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, 1, view.Focus())

	view.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, 0, view.Focus())

	view.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, 1, view.Focus())
	assert.True(t, view.Inputs()[1].Focused())
	assert.False(t, view.Inputs()[0].Focused())
}

func TestView_RequestSkipsEmptyFields(t *testing.T) {
	view, _ := newForm(t, "client_name", "amount")
	typeText(view, "  Jean  ")

	req := view.Request()

	assert.Equal(t, "t1", req.TemplateID)
	assert.Equal(t, map[string]string{"client_name": "Jean"}, req.Fields)
	assert.Equal(t, domain.FormatText, req.Format)
}

func TestView_FormatCycle(t *testing.T) {
	view, _ := newForm(t, "client_name")

	view.Update(tea.KeyMsg{Type: tea.KeyCtrlF})
	assert.Equal(t, domain.FormatPDF, view.Format())
	view.Update(tea.KeyMsg{Type: tea.KeyCtrlF})
	assert.Equal(t, domain.FormatDOCX, view.Format())
	view.Update(tea.KeyMsg{Type: tea.KeyCtrlF})
	assert.Equal(t, domain.FormatText, view.Format())
}

func TestView_Preview(t *testing.T) {
	view, gen := newForm(t, "client_name", "amount")
	typeText(view, "Jean")

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyCtrlP})
	run(view, cmd)

	require.NotNil(t, view.Preview())
	assert.Equal(t, "Jean", gen.lastReq.Fields["client_name"])

	out := view.View()
	assert.Contains(t, out, "Client : Jean")
	assert.Contains(t, out, `"1500" -> "1500.00"`)
	assert.Contains(t, out, "Missing: amount")
}

func TestView_Generate(t *testing.T) {
	view, gen := newForm(t, "client_name")
	typeText(view, "Jean")
	view.Update(tea.KeyMsg{Type: tea.KeyCtrlF})

	// Enter on the last field generates.
	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})
	run(view, cmd)

	require.NotNil(t, view.Generated())
	assert.Equal(t, domain.FormatPDF, gen.lastReq.Format)
	assert.Contains(t, view.View(), "Reference: CTR-20260301-0001")
}

func TestView_GenerateError(t *testing.T) {
	view, gen := newForm(t, "client_name")
	gen.err = domain.ErrValidation

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	run(view, cmd)

	assert.ErrorIs(t, view.Err(), domain.ErrValidation)
	assert.Nil(t, view.Generated())
	assert.Contains(t, view.View(), "Error: validation failed")
}

func TestView_EscReturnsToTemplates(t *testing.T) {
	view, _ := newForm(t, "client_name")

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEsc})

	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewTemplates}, cmd())
}

func TestView_NoTemplateDoesNothing(t *testing.T) {
	view := NewView(nil, nil, nil, nil)

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyCtrlS})

	assert.Nil(t, cmd)
	assert.Contains(t, view.View(), "New document")
}
