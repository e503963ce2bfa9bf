package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/vynal-docs/vynal/internal/core/domain"
	"github.com/vynal-docs/vynal/internal/core/ports/driven"
)

// Ensure DocumentStore implements the interface.
var _ driven.DocumentStore = (*DocumentStore)(nil)

// DocumentStore is an in-memory implementation of driven.DocumentStore.
type DocumentStore struct {
	mu        sync.RWMutex
	documents map[string]domain.GeneratedDocument
}

// NewDocumentStore creates a new in-memory document store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		documents: make(map[string]domain.GeneratedDocument),
	}
}

// Save stores a generated document record.
func (s *DocumentStore) Save(_ context.Context, doc *domain.GeneratedDocument) error {
	if doc == nil || doc.Reference == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.documents[doc.Reference]; ok {
		return domain.ErrAlreadyExists
	}
	s.documents[doc.Reference] = *doc
	return nil
}

// Get retrieves a document by reference.
func (s *DocumentStore) Get(_ context.Context, reference string) (*domain.GeneratedDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.documents[reference]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &doc, nil
}

// Exists returns true if the reference has been issued.
func (s *DocumentStore) Exists(_ context.Context, reference string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.documents[reference]
	return ok, nil
}

// List returns documents newest first.
func (s *DocumentStore) List(_ context.Context, limit int) ([]domain.GeneratedDocument, error) {
	s.mu.RLock()
	docs := make([]domain.GeneratedDocument, 0, len(s.documents))
	for _, doc := range s.documents {
		docs = append(docs, doc)
	}
	s.mu.RUnlock()

	sort.Slice(docs, func(i, j int) bool {
		if !docs[i].GeneratedAt.Equal(docs[j].GeneratedAt) {
			return docs[i].GeneratedAt.After(docs[j].GeneratedAt)
		}
		return docs[i].Reference < docs[j].Reference
	})
	if limit > 0 && len(docs) > limit {
		docs = docs[:limit]
	}
	return docs, nil
}

// Delete removes a document record.
func (s *DocumentStore) Delete(_ context.Context, reference string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.documents[reference]; !ok {
		return domain.ErrNotFound
	}
	delete(s.documents, reference)
	return nil
}
