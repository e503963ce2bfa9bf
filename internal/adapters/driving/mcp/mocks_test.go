package mcp

import (
	"context"

	"github.com/vynal-docs/vynal/internal/core/domain"
	"github.com/vynal-docs/vynal/internal/core/ports/driving"
)

// mockGenerationService is a mock implementation of driving.GenerationService.
type mockGenerationService struct {
	document *domain.GeneratedDocument
	preview  *driving.Preview
	err      error
	lastReq  domain.GenerateRequest
}

func (m *mockGenerationService) Generate(_ context.Context, req domain.GenerateRequest) (*domain.GeneratedDocument, error) {
	m.lastReq = req
	return m.document, m.err
}

func (m *mockGenerationService) Preview(_ context.Context, req domain.GenerateRequest) (*driving.Preview, error) {
	m.lastReq = req
	return m.preview, m.err
}

func (m *mockGenerationService) GenerateBatch(_ context.Context, reqs []domain.GenerateRequest, _ int) []driving.BatchResult {
	results := make([]driving.BatchResult, len(reqs))
	for i := range reqs {
		results[i] = driving.BatchResult{Index: i, Document: m.document, Err: m.err}
	}
	return results
}

// mockTemplateService is a mock implementation of driving.TemplateService.
type mockTemplateService struct {
	templates []domain.Template
	template  *domain.Template
	err       error
}

func (m *mockTemplateService) Create(_ context.Context, tpl domain.Template) (*domain.Template, error) {
	return &tpl, m.err
}

func (m *mockTemplateService) Update(_ context.Context, tpl domain.Template) (*domain.Template, error) {
	return &tpl, m.err
}

func (m *mockTemplateService) Get(_ context.Context, _ string) (*domain.Template, error) {
	return m.template, m.err
}

func (m *mockTemplateService) List(_ context.Context) ([]domain.Template, error) {
	return m.templates, m.err
}

func (m *mockTemplateService) Delete(_ context.Context, _ string) error {
	return m.err
}

func (m *mockTemplateService) Placeholders(_ context.Context, _ string) ([]string, error) {
	return nil, m.err
}

func (m *mockTemplateService) Import(_ context.Context, _ string) ([]domain.Template, error) {
	return m.templates, m.err
}

func (m *mockTemplateService) Watch(_ context.Context, _ string) error {
	return m.err
}

// mockDocumentService is a mock implementation of driving.DocumentService.
type mockDocumentService struct {
	documents []domain.GeneratedDocument
	document  *domain.GeneratedDocument
	content   string
	err       error
}

func (m *mockDocumentService) List(_ context.Context, _ int) ([]domain.GeneratedDocument, error) {
	return m.documents, m.err
}

func (m *mockDocumentService) Get(_ context.Context, _ string) (*domain.GeneratedDocument, error) {
	return m.document, m.err
}

func (m *mockDocumentService) Content(_ context.Context, _ string) (string, error) {
	return m.content, m.err
}

func (m *mockDocumentService) Delete(_ context.Context, _ string) error {
	return m.err
}

func (m *mockDocumentService) Open(_ context.Context, _ string) error {
	return m.err
}
