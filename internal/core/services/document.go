package services

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"

	"github.com/vynal-docs/vynal/internal/core/domain"
	"github.com/vynal-docs/vynal/internal/core/ports/driven"
	"github.com/vynal-docs/vynal/internal/core/ports/driving"
	"github.com/vynal-docs/vynal/internal/formats/layout"
	"github.com/vynal-docs/vynal/internal/logger"
)

// Ensure DocumentService implements the interface.
var _ driving.DocumentService = (*DocumentService)(nil)

// DocumentService manages the registry of generated documents.
type DocumentService struct {
	docStore driven.DocumentStore
	output   driven.OutputStore
	opener   func(path string) error
}

// NewDocumentService creates a new document service.
func NewDocumentService(docStore driven.DocumentStore, output driven.OutputStore) *DocumentService {
	return &DocumentService{
		docStore: docStore,
		output:   output,
		opener:   openPath,
	}
}

// List returns generated documents newest first.
func (s *DocumentService) List(ctx context.Context, limit int) ([]domain.GeneratedDocument, error) {
	return s.docStore.List(ctx, limit)
}

// Get retrieves a generated document by reference.
func (s *DocumentService) Get(ctx context.Context, reference string) (*domain.GeneratedDocument, error) {
	if reference == "" {
		return nil, domain.ErrInvalidInput
	}
	return s.docStore.Get(ctx, reference)
}

// Content returns the canonical plain-text rendering of a document.
// PDF and DOCX files are fixed-layout renderings of the same text.
func (s *DocumentService) Content(ctx context.Context, reference string) (string, error) {
	doc, err := s.Get(ctx, reference)
	if err != nil {
		return "", err
	}
	return layout.Text(doc), nil
}

// Delete removes the document's file and its record.
// A file already gone is not an error.
func (s *DocumentService) Delete(ctx context.Context, reference string) error {
	doc, err := s.Get(ctx, reference)
	if err != nil {
		return err
	}

	if err := s.output.Remove(ctx, doc.Path); err != nil {
		return fmt.Errorf("removing %s: %w", doc.Path, err)
	}
	if err := s.docStore.Delete(ctx, reference); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("deleting record %s: %w", reference, err)
	}

	logger.Debug("deleted document %s", reference)
	return nil
}

// Open opens the document's file in the default application.
func (s *DocumentService) Open(ctx context.Context, reference string) error {
	doc, err := s.Get(ctx, reference)
	if err != nil {
		return err
	}

	f, err := s.output.Open(ctx, doc.Path)
	if err != nil {
		return err
	}
	f.Close()
	return s.opener(doc.Path)
}

// openPath opens a path using the system default handler.
func openPath(path string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", path)
	case "linux":
		cmd = exec.Command("xdg-open", path)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", path)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	return cmd.Start()
}
