package keymap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultKeyMap(t *testing.T) {
	km := DefaultKeyMap()

	assert.Equal(t, []string{"q", "ctrl+c"}, km.Quit.Keys())
	assert.Equal(t, []string{"ctrl+s"}, km.Generate.Keys())
	assert.Equal(t, "preview", km.Preview.Help().Desc)
}

func TestMatches(t *testing.T) {
	km := DefaultKeyMap()

	assert.True(t, Matches("tab", km.NextField))
	assert.True(t, Matches("down", km.NextField))
	assert.True(t, Matches("shift+tab", km.PrevField))
	assert.False(t, Matches("j", km.NextField))
	assert.False(t, Matches("", km.Generate))
}

func TestKeyMap_HelpGroups(t *testing.T) {
	km := DefaultKeyMap()

	assert.Len(t, km.ShortHelp(), 2)
	assert.Contains(t, km.FormHelp(), km.Generate)
	assert.Contains(t, km.DocumentsHelp(), km.Delete)

	total := 0
	for _, group := range km.FullHelp() {
		total += len(group)
	}
	assert.Equal(t, 14, total)
}
