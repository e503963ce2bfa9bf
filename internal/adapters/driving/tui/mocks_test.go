package tui

import (
	"context"

	"github.com/vynal-docs/vynal/internal/core/domain"
	"github.com/vynal-docs/vynal/internal/core/ports/driving"
)

// MockGenerationService implements driving.GenerationService for testing.
type MockGenerationService struct {
	driving.GenerationService
	GenerateFunc func(ctx context.Context, req domain.GenerateRequest) (*domain.GeneratedDocument, error)
	PreviewFunc  func(ctx context.Context, req domain.GenerateRequest) (*driving.Preview, error)
}

func (m *MockGenerationService) Generate(
	ctx context.Context, req domain.GenerateRequest,
) (*domain.GeneratedDocument, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, req)
	}
	return &domain.GeneratedDocument{Reference: "DOC-1", Title: "Doc", TemplateID: req.TemplateID}, nil
}

func (m *MockGenerationService) Preview(ctx context.Context, req domain.GenerateRequest) (*driving.Preview, error) {
	if m.PreviewFunc != nil {
		return m.PreviewFunc(ctx, req)
	}
	return &driving.Preview{Body: "body"}, nil
}

// MockTemplateService implements driving.TemplateService for testing.
type MockTemplateService struct {
	driving.TemplateService
	Templates []domain.Template
	Keys      []string
	Err       error
}

func (m *MockTemplateService) List(_ context.Context) ([]domain.Template, error) {
	return m.Templates, m.Err
}

func (m *MockTemplateService) Placeholders(_ context.Context, _ string) ([]string, error) {
	return m.Keys, m.Err
}

// MockDocumentService implements driving.DocumentService for testing.
type MockDocumentService struct {
	driving.DocumentService
	Documents []domain.GeneratedDocument
	Err       error
}

func (m *MockDocumentService) List(_ context.Context, _ int) ([]domain.GeneratedDocument, error) {
	return m.Documents, m.Err
}

func (m *MockDocumentService) Content(_ context.Context, reference string) (string, error) {
	return "content of " + reference, m.Err
}

func newTestPorts() *Ports {
	return &Ports{
		Generation: &MockGenerationService{},
		Template: &MockTemplateService{
			Templates: []domain.Template{{ID: "t1", Name: "contrat", Category: "legal"}},
			Keys:      []string{"client_name", "amount"},
		},
		Document: &MockDocumentService{
			Documents: []domain.GeneratedDocument{{Reference: "DOC-1", Title: "Contrat - Jean"}},
		},
	}
}
