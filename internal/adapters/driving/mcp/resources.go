package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/vynal-docs/vynal/internal/core/domain"
)

const (
	// URIScheme is the custom URI scheme for Vynal resources.
	uriScheme = "vynal://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for listing templates.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "templates",
		Name:        "templates",
		Description: "List of all document templates",
		MIMEType:    "application/json",
	}, s.handleTemplatesResource)

	// Template for a single template's content.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "templates/{templateId}",
		Name:        "template-content",
		Description: "Raw content of a document template",
		MIMEType:    "text/plain",
	}, s.handleTemplateContentResource)

	// Static resource for listing generated documents.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "documents",
		Name:        "documents",
		Description: "Generated documents, newest first",
		MIMEType:    "application/json",
	}, s.handleDocumentsResource)

	// Template for document content.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "documents/{reference}",
		Name:        "document-content",
		Description: "Content of a generated document",
		MIMEType:    "text/plain",
	}, s.handleDocumentContentResource)
}

// handleTemplatesResource returns a list of all templates.
func (s *Server) handleTemplatesResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Template == nil {
		return jsonResult(req.Params.URI, "[]"), nil
	}

	templates, err := s.ports.Template.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing templates: %w", err)
	}

	infos := make([]TemplateInfo, len(templates))
	for i := range templates {
		infos[i] = templateInfo(&templates[i])
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling templates: %w", err)
	}

	return jsonResult(req.Params.URI, string(data)), nil
}

// handleTemplateContentResource returns the raw content of a template.
func (s *Server) handleTemplateContentResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Template == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	// Extract templateId from URI: vynal://templates/{templateId}
	id := extractTemplateID(req.Params.URI)
	if id == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	tpl, err := s.ports.Template.Get(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("getting template: %w", err)
	}

	return textResult(req.Params.URI, tpl.Content), nil
}

// handleDocumentsResource returns the generated documents.
func (s *Server) handleDocumentsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Document == nil {
		return jsonResult(req.Params.URI, "[]"), nil
	}

	docs, err := s.ports.Document.List(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}

	// Build simplified document list.
	type docInfo struct {
		Reference   string `json:"reference"`
		Title       string `json:"title"`
		TemplateID  string `json:"template_id"`
		Format      string `json:"format"`
		Path        string `json:"path"`
		GeneratedAt string `json:"generated_at"`
	}

	infos := make([]docInfo, len(docs))
	for i := range docs {
		infos[i] = docInfo{
			Reference:   docs[i].Reference,
			Title:       docs[i].Title,
			TemplateID:  docs[i].TemplateID,
			Format:      docs[i].Format.String(),
			Path:        docs[i].Path,
			GeneratedAt: docs[i].GeneratedAt.Format(time.RFC3339),
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling documents: %w", err)
	}

	return jsonResult(req.Params.URI, string(data)), nil
}

// handleDocumentContentResource returns the content of a specific document.
func (s *Server) handleDocumentContentResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Document == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	// Extract reference from URI: vynal://documents/{reference}
	ref := extractReference(req.Params.URI)
	if ref == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	content, err := s.ports.Document.Content(ctx, ref)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("getting document content: %w", err)
	}

	return textResult(req.Params.URI, content), nil
}

func jsonResult(uri, text string) *mcp.ReadResourceResult {
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     text,
		}},
	}
}

func textResult(uri, text string) *mcp.ReadResourceResult {
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "text/plain",
			Text:     text,
		}},
	}
}

// extractTemplateID extracts the template ID from a URI like vynal://templates/{templateId}.
func extractTemplateID(uri string) string {
	return trimSegment(uri, uriScheme+"templates/")
}

// extractReference extracts the reference from a URI like vynal://documents/{reference}.
func extractReference(uri string) string {
	return trimSegment(uri, uriScheme+"documents/")
}

// trimSegment returns the single path segment following prefix.
func trimSegment(uri, prefix string) string {
	if !strings.HasPrefix(uri, prefix) {
		return ""
	}
	rest := strings.TrimPrefix(uri, prefix)
	if strings.Contains(rest, "/") {
		return ""
	}
	// Template names may be percent-encoded.
	if unescaped, err := url.PathUnescape(rest); err == nil {
		return unescaped
	}
	return rest
}
