package status

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vynal-docs/vynal/internal/adapters/driving/tui/keymap"
)

func TestNewBar_Defaults(t *testing.T) {
	bar := NewBar(nil, nil)

	assert.Equal(t, StateReady, bar.State())
	assert.Equal(t, 80, bar.Width())
	assert.Contains(t, bar.View(), "Ready")
	assert.Contains(t, bar.View(), "q: quit")
}

func TestBar_States(t *testing.T) {
	tests := []struct {
		state   State
		message string
		want    string
	}{
		{StateWorking, "", "Working..."},
		{StateWorking, "Generating", "Generating..."},
		{StateError, "boom", "Error: boom"},
		{StateError, "", "Error"},
		{StateDone, "Generated DOC-1", "Generated DOC-1"},
	}

	for _, tt := range tests {
		t.Run(string(tt.state)+"/"+tt.message, func(t *testing.T) {
			bar := NewBar(nil, nil)
			bar.SetWidth(120)
			bar.SetState(tt.state, tt.message)

			assert.Contains(t, bar.View(), tt.want)
			assert.Equal(t, tt.message, bar.Message())
		})
	}
}

func TestBar_SetBindings(t *testing.T) {
	km := keymap.DefaultKeyMap()
	bar := NewBar(nil, km)
	bar.SetWidth(160)

	bar.SetBindings(km.FormHelp())
	assert.Contains(t, bar.View(), "ctrl+s: generate")

	bar.SetBindings(nil)
	assert.NotContains(t, bar.View(), "ctrl+s")
}

func TestBar_Clear(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetState(StateError, "boom")

	bar.Clear()

	assert.Equal(t, StateReady, bar.State())
	assert.Empty(t, bar.Message())
}
