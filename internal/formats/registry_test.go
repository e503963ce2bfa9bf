package formats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vynal-docs/vynal/internal/core/domain"
	"github.com/vynal-docs/vynal/internal/formats/plaintext"
)

func TestNewDefaultRegistry(t *testing.T) {
	r := NewDefaultRegistry()

	assert.Equal(t, []domain.OutputFormat{domain.FormatDOCX, domain.FormatPDF, domain.FormatText}, r.Formats())
	for _, f := range r.Formats() {
		renderer, err := r.Get(f)
		require.NoError(t, err)
		assert.Equal(t, f, renderer.Format())
		assert.Equal(t, string(f), renderer.Extension())
	}
}

func TestRegistry_Get_Unsupported(t *testing.T) {
	r := NewRegistry(plaintext.New())

	_, err := r.Get("odt")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
	var ferr *domain.UnsupportedFormatError
	require.ErrorAs(t, err, &ferr)
	assert.Equal(t, "odt", ferr.Format)
}

func TestRegistry_Has(t *testing.T) {
	r := NewRegistry(plaintext.New())

	assert.True(t, r.Has(domain.FormatText))
	assert.False(t, r.Has(domain.FormatPDF))
}
