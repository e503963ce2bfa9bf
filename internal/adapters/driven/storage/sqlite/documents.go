package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/vynal-docs/vynal/internal/core/domain"
	"github.com/vynal-docs/vynal/internal/core/ports/driven"
)

// documentStore implements driven.DocumentStore.
type documentStore struct {
	store *Store
}

var _ driven.DocumentStore = (*documentStore)(nil)

const documentColumns = `reference, title, template_id, generated_at, client, body, format, path, fields`

// Save stores a generated document record.
// The reference is never overwritten.
func (s *documentStore) Save(ctx context.Context, doc *domain.GeneratedDocument) error {
	if doc == nil || doc.Reference == "" {
		return domain.ErrInvalidInput
	}

	clientJSON, err := json.Marshal(doc.Client)
	if err != nil {
		return fmt.Errorf("marshalling client: %w", err)
	}
	fields := doc.Fields
	if fields == nil {
		fields = map[string]string{}
	}
	fieldsJSON, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("marshalling fields: %w", err)
	}

	res, err := s.store.db.ExecContext(ctx, `
		INSERT INTO generated_documents (`+documentColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT DO NOTHING
	`, doc.Reference, doc.Title, doc.TemplateID, doc.GeneratedAt.UTC(), string(clientJSON),
		doc.Body, string(doc.Format), doc.Path, string(fieldsJSON))
	if err != nil {
		return fmt.Errorf("saving document: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("saving document: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("document %s: %w", doc.Reference, domain.ErrAlreadyExists)
	}
	return nil
}

// Get retrieves a document by reference.
func (s *documentStore) Get(ctx context.Context, reference string) (*domain.GeneratedDocument, error) {
	row := s.store.db.QueryRowContext(ctx,
		`SELECT `+documentColumns+` FROM generated_documents WHERE reference = ?`, reference)
	return scanDocument(row)
}

// Exists returns true if the reference has been issued.
func (s *documentStore) Exists(ctx context.Context, reference string) (bool, error) {
	var one int
	err := s.store.db.QueryRowContext(ctx,
		"SELECT 1 FROM generated_documents WHERE reference = ?", reference).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking reference: %w", err)
	}
	return true, nil
}

// List returns documents newest first.
func (s *documentStore) List(ctx context.Context, limit int) ([]domain.GeneratedDocument, error) {
	query := `SELECT ` + documentColumns + ` FROM generated_documents ORDER BY generated_at DESC, reference`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	var docs []domain.GeneratedDocument //nolint:prealloc // size unknown from query
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, *doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating documents: %w", err)
	}
	return docs, nil
}

// Delete removes a document record.
func (s *documentStore) Delete(ctx context.Context, reference string) error {
	res, err := s.store.db.ExecContext(ctx, "DELETE FROM generated_documents WHERE reference = ?", reference)
	if err != nil {
		return fmt.Errorf("deleting document: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanDocument(row rowScanner) (*domain.GeneratedDocument, error) {
	var doc domain.GeneratedDocument
	var format, clientJSON, fieldsJSON string
	var generatedAt sql.NullTime
	if err := row.Scan(&doc.Reference, &doc.Title, &doc.TemplateID, &generatedAt, &clientJSON,
		&doc.Body, &format, &doc.Path, &fieldsJSON); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning document: %w", err)
	}

	if err := json.Unmarshal([]byte(clientJSON), &doc.Client); err != nil {
		return nil, fmt.Errorf("unmarshalling client: %w", err)
	}
	if err := json.Unmarshal([]byte(fieldsJSON), &doc.Fields); err != nil {
		return nil, fmt.Errorf("unmarshalling fields: %w", err)
	}
	doc.Format = domain.OutputFormat(format)
	if generatedAt.Valid {
		doc.GeneratedAt = generatedAt.Time
	}
	return &doc, nil
}
