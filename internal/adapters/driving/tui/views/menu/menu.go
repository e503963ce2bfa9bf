// Package menu is the start screen: new document, documents, help, quit.
package menu

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vynal-docs/vynal/internal/adapters/driving/tui/keymap"
	"github.com/vynal-docs/vynal/internal/adapters/driving/tui/messages"
	"github.com/vynal-docs/vynal/internal/adapters/driving/tui/styles"
)

// Item is one menu entry. Shortcut jumps to it directly; an item with
// Quit set exits instead of switching views.
type Item struct {
	Label    string
	Hint     string
	Shortcut string
	View     messages.ViewType
	Quit     bool
}

func defaultItems() []Item {
	return []Item{
		{Label: "New document", Hint: "fill a template", Shortcut: "n", View: messages.ViewTemplates},
		{Label: "Documents", Hint: "browse generated documents", Shortcut: "d", View: messages.ViewDocuments},
		{Label: "Help", Shortcut: "?", View: messages.ViewHelp},
		{Label: "Quit", Shortcut: "q", Quit: true},
	}
}

type View struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	items    []Item
	selected int
	width    int
	height   int
	ready    bool
}

func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles: s,
		keymap: keymap.DefaultKeyMap(),
		items:  defaultItems(),
		width:  80,
		height: 24,
	}
}

func (v *View) Init() tea.Cmd {
	return nil
}

func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)

	case tea.KeyMsg:
		keyStr := msg.String()
		switch {
		case keymap.Matches(keyStr, v.keymap.Up):
			v.selected = max(v.selected-1, 0)
		case keymap.Matches(keyStr, v.keymap.Down):
			v.selected = min(v.selected+1, len(v.items)-1)
		case keymap.Matches(keyStr, v.keymap.Select):
			return v, v.activate(v.selected)
		default:
			for i, item := range v.items {
				if item.Shortcut == keyStr {
					v.selected = i
					return v, v.activate(i)
				}
			}
		}
	}
	return v, nil
}

func (v *View) activate(i int) tea.Cmd {
	item := v.items[i]
	if item.Quit {
		return tea.Quit
	}
	return func() tea.Msg {
		return messages.ViewChanged{View: item.View}
	}
}

func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder
	b.WriteString(v.styles.Title.Render("Vynal"))
	b.WriteString("\n\n")
	b.WriteString(v.styles.Muted.Render("Template-based document generation"))
	b.WriteString("\n\n")

	for i, item := range v.items {
		cursor, label := "  ", v.styles.Normal.Render(item.Label)
		if i == v.selected {
			cursor, label = "> ", v.styles.Subtitle.Render(item.Label)
		}
		b.WriteString(cursor + label)
		if item.Hint != "" {
			b.WriteString("  " + v.styles.Muted.Render(item.Hint))
		}
		b.WriteString("  " + v.styles.Help.Render("["+item.Shortcut+"]"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[j/k] Navigate  [Enter] Select  [?] Help  [q] Quit"))
	return b.String()
}

func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

func (v *View) Selected() int {
	return v.selected
}

func (v *View) Items() []Item {
	return v.items
}
