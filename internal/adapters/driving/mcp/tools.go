package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/vynal-docs/vynal/internal/core/domain"
)

// GenerateInput is the input schema for the generate_document and preview_document tools.
type GenerateInput struct {
	Template   string             `json:"template" jsonschema:"template ID or name"`
	Fields     map[string]string  `json:"fields,omitempty" jsonschema:"input fields keyed by any name, e.g. {\"Nom client\": \"Jean Dupont\"}"`
	Confidence map[string]float64 `json:"confidence,omitempty" jsonschema:"optional auto-fill confidence in [0,1] per input field"`
	Client     ClientInput        `json:"client,omitempty" jsonschema:"client info block"`
	Format     string             `json:"format,omitempty" jsonschema:"output format: txt, pdf or docx (default from settings)"`
}

// ClientInput is the client info block of a request.
type ClientInput struct {
	Name    string `json:"name,omitempty"`
	Company string `json:"company,omitempty"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

// GenerateOutput is the output schema for the generate_document tool.
type GenerateOutput struct {
	Reference string `json:"reference"`
	Title     string `json:"title"`
	Path      string `json:"path"`
	Format    string `json:"format"`
}

// PreviewOutput is the output schema for the preview_document tool.
type PreviewOutput struct {
	Body        string            `json:"body"`
	Fields      map[string]string `json:"fields"`
	Corrections []CorrectionInfo  `json:"corrections,omitempty"`
	Unmapped    []string          `json:"unmapped,omitempty"`
	Missing     []string          `json:"missing,omitempty"`
}

// CorrectionInfo describes a value rewritten by the validator.
type CorrectionInfo struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
	From  string `json:"from"`
	To    string `json:"to"`
}

// ListTemplatesInput is the input schema for the list_templates tool.
type ListTemplatesInput struct {
	Category string `json:"category,omitempty" jsonschema:"only list templates in this category"`
}

// ListTemplatesOutput is the output schema for the list_templates tool.
type ListTemplatesOutput struct {
	Templates []TemplateInfo `json:"templates"`
	Count     int            `json:"count"`
}

// TemplateInfo summarises a template.
type TemplateInfo struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	DocumentType string `json:"document_type,omitempty"`
	Category     string `json:"category,omitempty"`
	Description  string `json:"description,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "generate_document",
		Description: "Fill a template with input fields and write the document",
	}, s.handleGenerate)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "preview_document",
		Description: "Render a template with input fields without writing anything",
	}, s.handlePreview)

	if s.ports.Template != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "list_templates",
			Description: "List the available document templates",
		}, s.handleListTemplates)
	}
}

// handleGenerate handles the generate_document tool invocation.
func (s *Server) handleGenerate(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GenerateInput,
) (*mcp.CallToolResult, GenerateOutput, error) {
	req, err := input.request()
	if err != nil {
		return nil, GenerateOutput{}, err
	}

	doc, err := s.ports.Generation.Generate(ctx, req)
	if err != nil {
		return nil, GenerateOutput{}, err
	}

	return nil, GenerateOutput{
		Reference: doc.Reference,
		Title:     doc.Title,
		Path:      doc.Path,
		Format:    doc.Format.String(),
	}, nil
}

// handlePreview handles the preview_document tool invocation.
func (s *Server) handlePreview(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GenerateInput,
) (*mcp.CallToolResult, PreviewOutput, error) {
	req, err := input.request()
	if err != nil {
		return nil, PreviewOutput{}, err
	}

	preview, err := s.ports.Generation.Preview(ctx, req)
	if err != nil {
		return nil, PreviewOutput{}, err
	}

	output := PreviewOutput{
		Body:     preview.Body,
		Fields:   preview.Fields,
		Unmapped: preview.Unmapped,
		Missing:  preview.Missing,
	}
	for _, c := range preview.Corrections {
		output.Corrections = append(output.Corrections, CorrectionInfo(c))
	}

	return nil, output, nil
}

// handleListTemplates handles the list_templates tool invocation.
func (s *Server) handleListTemplates(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListTemplatesInput,
) (*mcp.CallToolResult, ListTemplatesOutput, error) {
	templates, err := s.ports.Template.List(ctx)
	if err != nil {
		return nil, ListTemplatesOutput{}, err
	}

	output := ListTemplatesOutput{Templates: make([]TemplateInfo, 0, len(templates))}
	for i := range templates {
		if input.Category != "" && templates[i].Category != input.Category {
			continue
		}
		output.Templates = append(output.Templates, templateInfo(&templates[i]))
	}
	output.Count = len(output.Templates)

	return nil, output, nil
}

// request converts tool input into a generation request.
func (in GenerateInput) request() (domain.GenerateRequest, error) {
	if in.Template == "" {
		return domain.GenerateRequest{}, fmt.Errorf("template is required: %w", domain.ErrInvalidInput)
	}

	req := domain.GenerateRequest{
		TemplateID: in.Template,
		Fields:     in.Fields,
		Confidence: in.Confidence,
		Client:     domain.ClientInfo(in.Client),
	}
	if in.Format != "" {
		format := domain.ParseOutputFormat(in.Format)
		if !format.IsValid() {
			return domain.GenerateRequest{}, &domain.UnsupportedFormatError{Format: in.Format}
		}
		req.Format = format
	}
	return req, nil
}

func templateInfo(t *domain.Template) TemplateInfo {
	return TemplateInfo{
		ID:           t.ID,
		Name:         t.Name,
		DocumentType: t.DocumentType,
		Category:     t.Category,
		Description:  t.Description,
	}
}
