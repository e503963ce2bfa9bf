package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vynal-docs/vynal/internal/adapters/driving/tui/components/status"
	"github.com/vynal-docs/vynal/internal/adapters/driving/tui/keymap"
	"github.com/vynal-docs/vynal/internal/adapters/driving/tui/messages"
	"github.com/vynal-docs/vynal/internal/adapters/driving/tui/styles"
	"github.com/vynal-docs/vynal/internal/adapters/driving/tui/views/doccontent"
	"github.com/vynal-docs/vynal/internal/adapters/driving/tui/views/documents"
	"github.com/vynal-docs/vynal/internal/adapters/driving/tui/views/form"
	"github.com/vynal-docs/vynal/internal/adapters/driving/tui/views/menu"
	"github.com/vynal-docs/vynal/internal/adapters/driving/tui/views/templates"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles
	keymap *keymap.KeyMap

	menuView       *menu.View
	templatesView  *templates.View
	formView       *form.View
	documentsView  *documents.View
	docContentView *doccontent.View
	statusBar      *status.Bar

	// currentView tracks which view is active.
	currentView messages.ViewType

	// err holds the last error that occurred.
	err error

	width  int
	height int
	ready  bool
}

var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	return &App{
		ports:          ports,
		ctx:            context.Background(),
		styles:         s,
		keymap:         km,
		menuView:       menu.NewView(s),
		templatesView:  templates.NewView(s, ports.Template),
		formView:       form.NewView(s, ports.Template, ports.Generation, ports.Mapping),
		documentsView:  documents.NewView(s, ports.Document),
		docContentView: doccontent.NewView(s, ports.Document),
		statusBar:      status.NewBar(s, km),
		currentView:    messages.ViewMenu,
	}, nil
}

// WithContext sets the context passed to service calls.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.templatesView.SetContext(ctx)
	a.formView.SetContext(ctx)
	a.documentsView.SetContext(ctx)
	a.docContentView.SetContext(ctx)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("vynal"),
	)
}

// Update implements tea.Model.
//
//nolint:gocyclo // central message handler
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		return a, a.forwardKey(msg)

	case messages.ViewChanged:
		return a, a.switchView(msg.View)

	case messages.TemplatesLoaded:
		a.trackError(msg.Err)
		a.templatesView, cmd = a.templatesView.Update(msg)
		return a, cmd

	case messages.TemplateSelected:
		a.currentView = messages.ViewForm
		a.statusBar.SetState(status.StateReady, "")
		a.statusBar.SetBindings(a.keymap.FormHelp())
		return a, a.formView.SetTemplate(msg.Template)

	case messages.PlaceholdersLoaded:
		a.trackError(msg.Err)
		a.formView, cmd = a.formView.Update(msg)
		return a, cmd

	case messages.PreviewReady:
		if !a.trackError(msg.Err) {
			a.statusBar.SetState(status.StateReady, "")
		}
		a.formView, cmd = a.formView.Update(msg)
		return a, cmd

	case messages.DocumentGenerated:
		if !a.trackError(msg.Err) && msg.Document != nil {
			a.statusBar.SetState(status.StateDone, "Generated "+msg.Document.Reference)
		}
		a.formView, cmd = a.formView.Update(msg)
		return a, cmd

	case messages.DocumentsLoaded:
		a.trackError(msg.Err)
		a.documentsView, cmd = a.documentsView.Update(msg)
		return a, cmd

	case messages.DocumentDeleted:
		if !a.trackError(msg.Err) {
			a.statusBar.SetState(status.StateDone, "Deleted "+msg.Reference)
		}
		a.documentsView, cmd = a.documentsView.Update(msg)
		return a, cmd

	case messages.DocumentSelected:
		a.currentView = messages.ViewDocContent
		a.statusBar.SetBindings(nil)
		return a, a.docContentView.SetDocument(msg.Document)

	case messages.DocumentContentLoaded:
		a.trackError(msg.Err)
		a.docContentView, cmd = a.docContentView.Update(msg)
		return a, cmd

	case messages.ErrorOccurred:
		a.trackError(msg.Err)
		switch a.currentView {
		case messages.ViewTemplates:
			a.templatesView, cmd = a.templatesView.Update(msg)
		case messages.ViewForm:
			a.formView, cmd = a.formView.Update(msg)
		case messages.ViewDocuments:
			a.documentsView, cmd = a.documentsView.Update(msg)
		case messages.ViewDocContent:
			a.docContentView, cmd = a.docContentView.Update(msg)
		case messages.ViewMenu, messages.ViewHelp:
		}
		return a, cmd

	case messages.Quit:
		return a, tea.Quit
	}

	return a, nil
}

// forwardKey hands a key press to the active view.
func (a *App) forwardKey(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewTemplates:
		a.templatesView, cmd = a.templatesView.Update(msg)
	case messages.ViewForm:
		a.formView, cmd = a.formView.Update(msg)
	case messages.ViewDocuments:
		a.documentsView, cmd = a.documentsView.Update(msg)
	case messages.ViewDocContent:
		a.docContentView, cmd = a.docContentView.Update(msg)
	case messages.ViewHelp:
		if msg.Type == tea.KeyEsc || msg.String() == "q" {
			return a.switchView(messages.ViewMenu)
		}
	}
	return cmd
}

// switchView activates view and starts whatever loading it needs.
func (a *App) switchView(view messages.ViewType) tea.Cmd {
	a.currentView = view
	a.statusBar.SetBindings(nil)

	switch view {
	case messages.ViewTemplates:
		return a.templatesView.Init()
	case messages.ViewDocuments:
		a.statusBar.SetBindings(a.keymap.DocumentsHelp())
		return a.documentsView.Init()
	case messages.ViewMenu:
		a.statusBar.SetState(status.StateReady, "")
	case messages.ViewForm, messages.ViewDocContent, messages.ViewHelp:
	}
	return nil
}

// trackError records err in the status bar and reports whether it was set.
func (a *App) trackError(err error) bool {
	if err == nil {
		return false
	}
	a.err = err
	a.statusBar.SetState(status.StateError, err.Error())
	return true
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	var body string
	switch a.currentView {
	case messages.ViewTemplates:
		body = a.templatesView.View()
	case messages.ViewForm:
		body = a.formView.View()
	case messages.ViewDocuments:
		body = a.documentsView.View()
	case messages.ViewDocContent:
		body = a.docContentView.View()
	case messages.ViewHelp:
		body = a.viewHelp()
	default:
		body = a.menuView.View()
	}

	return body + "\n" + a.statusBar.View()
}

func (a *App) viewHelp() string {
	var b strings.Builder
	b.WriteString(a.styles.Title.Render("Help"))
	b.WriteString("\n\n")
	for _, group := range a.keymap.FullHelp() {
		for _, binding := range group {
			h := binding.Help()
			b.WriteString(fmt.Sprintf("  %-12s %s\n", h.Key, h.Desc))
		}
		b.WriteString("\n")
	}
	b.WriteString(a.styles.Help.Render("[esc] back to menu"))
	return b.String()
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has received its dimensions.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions on every view.
// One line is kept for the status bar.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true

	body := max(height-1, 1)
	a.menuView.SetDimensions(width, body)
	a.templatesView.SetDimensions(width, body)
	a.formView.SetDimensions(width, body)
	a.documentsView.SetDimensions(width, body)
	a.docContentView.SetDimensions(width, body)
	a.statusBar.SetWidth(width)
}
