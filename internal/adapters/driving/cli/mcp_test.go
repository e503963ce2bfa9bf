package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMCPServeCmd_PortFlag(t *testing.T) {
	flag := mcpServeCmd.Flags().Lookup("port")
	require.NotNil(t, flag)
	assert.Equal(t, "0", flag.DefValue)
}

func TestMCPServe_RequiresGenerationService(t *testing.T) {
	SetServices(nil)

	_, err := runCLI(t, "mcp", "serve")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "generation service is required")
}

func TestWatchedTemplateDirs(t *testing.T) {
	setupTestServices(t)

	assert.Empty(t, watchedTemplateDirs())

	require.NoError(t, settingsService.Set("templates.directories", "/a,/b"))
	assert.Empty(t, watchedTemplateDirs())

	require.NoError(t, settingsService.Set("templates.watch", "true"))
	assert.Equal(t, []string{"/a", "/b"}, watchedTemplateDirs())
}
