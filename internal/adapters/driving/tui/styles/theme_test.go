package styles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStyles_NilThemeUsesDefault(t *testing.T) {
	s := NewStyles(nil)

	require.NotNil(t, s.Theme())
	assert.Equal(t, DefaultTheme().Primary, s.Theme().Primary)
}

func TestDefaultStyles_RenderPlainText(t *testing.T) {
	s := DefaultStyles()

	assert.Contains(t, s.Title.Render("Vynal"), "Vynal")
	assert.Contains(t, s.Label.Render("Client"), "Client")
}
