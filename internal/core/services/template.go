package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vynal-docs/vynal/internal/core/domain"
	"github.com/vynal-docs/vynal/internal/core/ports/driven"
	"github.com/vynal-docs/vynal/internal/core/ports/driving"
	"github.com/vynal-docs/vynal/internal/fields"
	"github.com/vynal-docs/vynal/internal/logger"
	"github.com/vynal-docs/vynal/internal/templating"
)

// Ensure TemplateService implements the interface.
var _ driving.TemplateService = (*TemplateService)(nil)

// TemplateService manages document templates.
type TemplateService struct {
	store   driven.TemplateStore
	loader  driven.TemplateLoader
	mapping *fields.Mapping
	now     func() time.Time
}

// NewTemplateService creates a new template service.
// loader may be nil when directory import is not needed.
func NewTemplateService(store driven.TemplateStore, loader driven.TemplateLoader, mapping *fields.Mapping) *TemplateService {
	return &TemplateService{
		store:   store,
		loader:  loader,
		mapping: mapping,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Create stores a new template.
func (s *TemplateService) Create(ctx context.Context, tpl domain.Template) (*domain.Template, error) {
	if err := s.check(tpl); err != nil {
		return nil, err
	}

	if _, err := s.store.GetByName(ctx, tpl.Name); err == nil {
		return nil, fmt.Errorf("template %q: %w", tpl.Name, domain.ErrAlreadyExists)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	if tpl.ID == "" {
		tpl.ID = uuid.NewString()
	} else if _, err := s.store.Get(ctx, tpl.ID); err == nil {
		return nil, fmt.Errorf("template %s: %w", tpl.ID, domain.ErrAlreadyExists)
	}

	now := s.now()
	tpl.CreatedAt = now
	tpl.UpdatedAt = now
	if err := s.store.Save(ctx, tpl); err != nil {
		return nil, fmt.Errorf("saving template: %w", err)
	}

	logger.Debug("created template %s (%s)", tpl.ID, tpl.Name)
	return withSegments(tpl), nil
}

// Update replaces an existing template's content and metadata.
func (s *TemplateService) Update(ctx context.Context, tpl domain.Template) (*domain.Template, error) {
	if tpl.ID == "" {
		return nil, fmt.Errorf("template id is required: %w", domain.ErrInvalidInput)
	}
	if err := s.check(tpl); err != nil {
		return nil, err
	}

	existing, err := s.store.Get(ctx, tpl.ID)
	if err != nil {
		return nil, err
	}

	tpl.CreatedAt = existing.CreatedAt
	tpl.UpdatedAt = s.now()
	if err := s.store.Save(ctx, tpl); err != nil {
		return nil, fmt.Errorf("saving template: %w", err)
	}
	return withSegments(tpl), nil
}

// Get retrieves a template by ID or, failing that, by name.
func (s *TemplateService) Get(ctx context.Context, idOrName string) (*domain.Template, error) {
	if idOrName == "" {
		return nil, domain.ErrInvalidInput
	}
	tpl, err := s.store.Get(ctx, idOrName)
	if errors.Is(err, domain.ErrNotFound) {
		tpl, err = s.store.GetByName(ctx, idOrName)
	}
	if err != nil {
		return nil, err
	}
	return withSegments(*tpl), nil
}

// List returns all templates ordered by category then name.
func (s *TemplateService) List(ctx context.Context) ([]domain.Template, error) {
	return s.store.List(ctx)
}

// Delete removes a template. Documents generated from it are kept.
func (s *TemplateService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrInvalidInput
	}
	return s.store.Delete(ctx, id)
}

// Placeholders returns the distinct keys a template uses.
func (s *TemplateService) Placeholders(ctx context.Context, idOrName string) ([]string, error) {
	tpl, err := s.Get(ctx, idOrName)
	if err != nil {
		return nil, err
	}
	return templating.Placeholders(*tpl), nil
}

// Import loads every template file in dir, creating or updating by name.
// Invalid files are skipped and reported together in the returned error.
func (s *TemplateService) Import(ctx context.Context, dir string) ([]domain.Template, error) {
	if s.loader == nil {
		return nil, fmt.Errorf("template import unavailable: %w", domain.ErrInvalidInput)
	}

	loaded, err := s.loader.Load(ctx, dir)
	if err != nil {
		return nil, err
	}

	imported := make([]domain.Template, 0, len(loaded))
	var errs []error
	for _, tpl := range loaded {
		saved, err := s.upsert(ctx, tpl)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", tpl.Name, err))
			continue
		}
		imported = append(imported, *saved)
	}

	logger.Info("imported %d of %d templates from %s", len(imported), len(loaded), filepath.Base(dir))
	return imported, errors.Join(errs...)
}

// Watch re-imports template files in dir as they change, until ctx is cancelled.
func (s *TemplateService) Watch(ctx context.Context, dir string) error {
	if s.loader == nil {
		return fmt.Errorf("template watch unavailable: %w", domain.ErrInvalidInput)
	}
	return s.loader.Watch(ctx, dir, func(tpl domain.Template) {
		if _, err := s.upsert(ctx, tpl); err != nil {
			logger.Warn("template %q not updated: %v", tpl.Name, err)
		}
	})
}

// upsert stores tpl, reusing the ID of an existing template with the same name.
func (s *TemplateService) upsert(ctx context.Context, tpl domain.Template) (*domain.Template, error) {
	existing, err := s.store.GetByName(ctx, tpl.Name)
	switch {
	case err == nil:
		tpl.ID = existing.ID
		return s.Update(ctx, tpl)
	case errors.Is(err, domain.ErrNotFound):
		return s.Create(ctx, tpl)
	default:
		return nil, err
	}
}

// check rejects templates without a name or content, and placeholders
// naming keys outside the field mapping.
func (s *TemplateService) check(tpl domain.Template) error {
	if strings.TrimSpace(tpl.Name) == "" {
		return fmt.Errorf("template name is required: %w", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(tpl.Content) == "" {
		return fmt.Errorf("template content is required: %w", domain.ErrInvalidInput)
	}

	tpl.Segments = nil
	var unknown []string
	for _, key := range templating.Placeholders(tpl) {
		if !s.mapping.Has(key) {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) > 0 {
		return fmt.Errorf("unknown placeholders %s: %w", strings.Join(unknown, ", "), domain.ErrInvalidInput)
	}
	return nil
}

// withSegments returns a copy of tpl with its content parsed.
func withSegments(tpl domain.Template) *domain.Template {
	tpl.Segments = templating.Parse(tpl.Content)
	return &tpl
}
