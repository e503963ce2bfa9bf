package mcp

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vynal-docs/vynal/internal/core/domain"
)

func TestExtractTemplateID(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		expected string
	}{
		{
			name:     "valid template URI",
			uri:      "vynal://templates/tpl-123",
			expected: "tpl-123",
		},
		{
			name:     "percent-encoded name",
			uri:      "vynal://templates/Contrat%20de%20prestation",
			expected: "Contrat de prestation",
		},
		{
			name:     "invalid prefix",
			uri:      "file://templates/tpl-123",
			expected: "",
		},
		{
			name:     "nested path",
			uri:      "vynal://templates/tpl-123/extra",
			expected: "",
		},
		{
			name:     "empty URI",
			uri:      "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractTemplateID(tt.uri))
		})
	}
}

func TestExtractReference(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		expected string
	}{
		{
			name:     "valid document URI",
			uri:      "vynal://documents/AB12CD34",
			expected: "AB12CD34",
		},
		{
			name:     "invalid prefix",
			uri:      "file://documents/AB12CD34",
			expected: "",
		},
		{
			name:     "empty URI",
			uri:      "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractReference(tt.uri))
		})
	}
}

// Helper to create a ReadResourceRequest with the given URI.
func makeReadResourceRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}

func newTestServer(t *testing.T, ports *Ports) *Server {
	t.Helper()
	if ports.Generation == nil {
		ports.Generation = &mockGenerationService{}
	}
	server, err := NewServer(ports)
	require.NoError(t, err)
	return server
}

func TestServer_handleTemplatesResource(t *testing.T) {
	ctx := context.Background()

	t.Run("nil template service returns empty list", func(t *testing.T) {
		server := newTestServer(t, &Ports{})

		result, err := server.handleTemplatesResource(ctx, makeReadResourceRequest("vynal://templates"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "[]", result.Contents[0].Text)
	})

	t.Run("returns templates", func(t *testing.T) {
		server := newTestServer(t, &Ports{Template: &mockTemplateService{
			templates: []domain.Template{{ID: "tpl-1", Name: "Contract", Category: "legal"}},
		}})

		result, err := server.handleTemplatesResource(ctx, makeReadResourceRequest("vynal://templates"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "application/json", result.Contents[0].MIMEType)
		assert.Contains(t, result.Contents[0].Text, `"id": "tpl-1"`)
		assert.Contains(t, result.Contents[0].Text, `"category": "legal"`)
	})

	t.Run("returns error on list failure", func(t *testing.T) {
		server := newTestServer(t, &Ports{Template: &mockTemplateService{err: errors.New("database error")}})

		_, err := server.handleTemplatesResource(ctx, makeReadResourceRequest("vynal://templates"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "listing templates")
	})
}

func TestServer_handleTemplateContentResource(t *testing.T) {
	ctx := context.Background()

	t.Run("nil template service returns not found", func(t *testing.T) {
		server := newTestServer(t, &Ports{})

		_, err := server.handleTemplateContentResource(ctx, makeReadResourceRequest("vynal://templates/tpl-1"))

		require.Error(t, err)
	})

	t.Run("returns raw content", func(t *testing.T) {
		server := newTestServer(t, &Ports{Template: &mockTemplateService{
			template: &domain.Template{ID: "tpl-1", Content: "Bonjour {{client_name}}"},
		}})

		result, err := server.handleTemplateContentResource(ctx, makeReadResourceRequest("vynal://templates/tpl-1"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "text/plain", result.Contents[0].MIMEType)
		assert.Equal(t, "Bonjour {{client_name}}", result.Contents[0].Text)
	})

	t.Run("unknown template returns not found", func(t *testing.T) {
		server := newTestServer(t, &Ports{Template: &mockTemplateService{
			err: fmt.Errorf("template x: %w", domain.ErrNotFound),
		}})

		_, err := server.handleTemplateContentResource(ctx, makeReadResourceRequest("vynal://templates/x"))

		require.Error(t, err)
		assert.NotContains(t, err.Error(), "getting template")
	})

	t.Run("invalid URI returns not found", func(t *testing.T) {
		server := newTestServer(t, &Ports{Template: &mockTemplateService{}})

		_, err := server.handleTemplateContentResource(ctx, makeReadResourceRequest("vynal://invalid"))

		require.Error(t, err)
	})
}

func TestServer_handleDocumentsResource(t *testing.T) {
	ctx := context.Background()

	t.Run("nil document service returns empty list", func(t *testing.T) {
		server := newTestServer(t, &Ports{})

		result, err := server.handleDocumentsResource(ctx, makeReadResourceRequest("vynal://documents"))

		require.NoError(t, err)
		assert.Equal(t, "[]", result.Contents[0].Text)
	})

	t.Run("returns documents", func(t *testing.T) {
		server := newTestServer(t, &Ports{Document: &mockDocumentService{
			documents: []domain.GeneratedDocument{{
				Reference:   "AB12CD34",
				Title:       "Contrat - Jean Dupont",
				TemplateID:  "tpl-1",
				Format:      domain.FormatPDF,
				Path:        "/out/AB12CD34.pdf",
				GeneratedAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
			}},
		}})

		result, err := server.handleDocumentsResource(ctx, makeReadResourceRequest("vynal://documents"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		text := result.Contents[0].Text
		assert.Contains(t, text, `"reference": "AB12CD34"`)
		assert.Contains(t, text, `"format": "pdf"`)
		assert.Contains(t, text, `"generated_at": "2026-03-01T10:00:00Z"`)
	})

	t.Run("returns error on list failure", func(t *testing.T) {
		server := newTestServer(t, &Ports{Document: &mockDocumentService{err: errors.New("database error")}})

		_, err := server.handleDocumentsResource(ctx, makeReadResourceRequest("vynal://documents"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "listing documents")
	})
}

func TestServer_handleDocumentContentResource(t *testing.T) {
	ctx := context.Background()

	t.Run("nil document service returns not found", func(t *testing.T) {
		server := newTestServer(t, &Ports{})

		_, err := server.handleDocumentContentResource(ctx, makeReadResourceRequest("vynal://documents/AB12CD34"))

		require.Error(t, err)
	})

	t.Run("returns content", func(t *testing.T) {
		server := newTestServer(t, &Ports{Document: &mockDocumentService{content: "Référence : AB12CD34"}})

		result, err := server.handleDocumentContentResource(ctx, makeReadResourceRequest("vynal://documents/AB12CD34"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "vynal://documents/AB12CD34", result.Contents[0].URI)
		assert.Equal(t, "Référence : AB12CD34", result.Contents[0].Text)
	})

	t.Run("returns error on content failure", func(t *testing.T) {
		server := newTestServer(t, &Ports{Document: &mockDocumentService{err: errors.New("disk error")}})

		_, err := server.handleDocumentContentResource(ctx, makeReadResourceRequest("vynal://documents/AB12CD34"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "getting document content")
	})

	t.Run("invalid URI returns not found", func(t *testing.T) {
		server := newTestServer(t, &Ports{Document: &mockDocumentService{}})

		_, err := server.handleDocumentContentResource(ctx, makeReadResourceRequest("vynal://invalid/uri"))

		require.Error(t, err)
	})
}
