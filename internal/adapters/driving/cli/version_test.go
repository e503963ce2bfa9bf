package cli

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withVersion(t *testing.T, v string) {
	t.Helper()
	original := version
	version = v
	t.Cleanup(func() { version = original })
}

func TestVersionCmd(t *testing.T) {
	tests := []struct {
		name    string
		version string
		args    []string
		want    []string
		absent  []string
	}{
		{
			name:    "plain",
			version: "1.4.0",
			args:    []string{"version"},
			want:    []string{"vynal version 1.4.0"},
			absent:  []string{"platform:"},
		},
		{
			name:    "dev build",
			version: "dev",
			args:    []string{"version"},
			want:    []string{"vynal version dev"},
		},
		{
			name:    "details",
			version: "1.4.0",
			args:    []string{"version", "--details"},
			want: []string{
				"vynal version 1.4.0",
				"platform: " + runtime.GOOS + "/" + runtime.GOARCH,
				"txt", "pdf", "docx",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withVersion(t, tt.version)

			out, err := runCLI(t, tt.args...)
			require.NoError(t, err)
			for _, w := range tt.want {
				assert.Contains(t, out, w)
			}
			for _, a := range tt.absent {
				assert.NotContains(t, out, a)
			}
		})
	}
}

func TestVersionCmd_RejectsArgs(t *testing.T) {
	_, err := runCLI(t, "version", "extra")
	assert.Error(t, err)
}

func TestSetVersion(t *testing.T) {
	withVersion(t, "dev")

	SetVersion("1.2.3")
	assert.Equal(t, "1.2.3", version)

	SetVersion("")
	assert.Equal(t, "1.2.3", version, "empty version keeps the current one")
}
