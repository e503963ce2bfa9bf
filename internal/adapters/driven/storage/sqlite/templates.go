package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/vynal-docs/vynal/internal/core/domain"
	"github.com/vynal-docs/vynal/internal/core/ports/driven"
)

// templateStore implements driven.TemplateStore.
type templateStore struct {
	store *Store
}

var _ driven.TemplateStore = (*templateStore)(nil)

const templateColumns = `id, name, document_type, category, description, content, created_at, updated_at`

// Save stores or updates a template.
func (s *templateStore) Save(ctx context.Context, tpl domain.Template) error {
	if tpl.ID == "" {
		return domain.ErrInvalidInput
	}

	now := time.Now().UTC()
	if tpl.CreatedAt.IsZero() {
		tpl.CreatedAt = now
	}
	if tpl.UpdatedAt.IsZero() {
		tpl.UpdatedAt = now
	}

	// A different template already using the name is a conflict.
	var owner string
	err := s.store.db.QueryRowContext(ctx, "SELECT id FROM templates WHERE name = ?", tpl.Name).Scan(&owner)
	switch {
	case err == nil && owner != tpl.ID:
		return fmt.Errorf("template %q: %w", tpl.Name, domain.ErrAlreadyExists)
	case err != nil && !errors.Is(err, sql.ErrNoRows):
		return fmt.Errorf("checking template name: %w", err)
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO templates (`+templateColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			document_type = excluded.document_type,
			category = excluded.category,
			description = excluded.description,
			content = excluded.content,
			updated_at = excluded.updated_at
	`, tpl.ID, tpl.Name, tpl.DocumentType, tpl.Category, tpl.Description, tpl.Content,
		tpl.CreatedAt, tpl.UpdatedAt)
	if err != nil {
		return fmt.Errorf("saving template: %w", err)
	}
	return nil
}

// Get retrieves a template by ID.
func (s *templateStore) Get(ctx context.Context, id string) (*domain.Template, error) {
	row := s.store.db.QueryRowContext(ctx, `SELECT `+templateColumns+` FROM templates WHERE id = ?`, id)
	return scanTemplate(row)
}

// GetByName retrieves a template by name.
func (s *templateStore) GetByName(ctx context.Context, name string) (*domain.Template, error) {
	row := s.store.db.QueryRowContext(ctx, `SELECT `+templateColumns+` FROM templates WHERE name = ?`, name)
	return scanTemplate(row)
}

// List returns all templates ordered by category then name.
func (s *templateStore) List(ctx context.Context) ([]domain.Template, error) {
	rows, err := s.store.db.QueryContext(ctx, `SELECT `+templateColumns+` FROM templates ORDER BY category, name`)
	if err != nil {
		return nil, fmt.Errorf("querying templates: %w", err)
	}
	defer rows.Close()

	var templates []domain.Template //nolint:prealloc // size unknown from query
	for rows.Next() {
		tpl, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		templates = append(templates, *tpl)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating templates: %w", err)
	}
	return templates, nil
}

// Delete removes a template.
func (s *templateStore) Delete(ctx context.Context, id string) error {
	res, err := s.store.db.ExecContext(ctx, "DELETE FROM templates WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting template: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanTemplate(row rowScanner) (*domain.Template, error) {
	var tpl domain.Template
	var createdAt, updatedAt sql.NullTime
	if err := row.Scan(&tpl.ID, &tpl.Name, &tpl.DocumentType, &tpl.Category, &tpl.Description,
		&tpl.Content, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning template: %w", err)
	}
	if createdAt.Valid {
		tpl.CreatedAt = createdAt.Time
	}
	if updatedAt.Valid {
		tpl.UpdatedAt = updatedAt.Time
	}
	return &tpl, nil
}
