package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vynal-docs/vynal/internal/assembly"
	"github.com/vynal-docs/vynal/internal/core/domain"
	"github.com/vynal-docs/vynal/internal/core/ports/driven"
	"github.com/vynal-docs/vynal/internal/core/ports/driving"
	"github.com/vynal-docs/vynal/internal/fields"
	"github.com/vynal-docs/vynal/internal/logger"
	"github.com/vynal-docs/vynal/internal/templating"
	"github.com/vynal-docs/vynal/internal/validation"
)

// Ensure GenerationService implements the interface.
var _ driving.GenerationService = (*GenerationService)(nil)

// Reserved canonical keys filled by the service.
const (
	keyCurrentDate = "current_date"
	sourceClient   = "client"
	sourceClock    = "clock"
)

// DefaultBatchConcurrency is used when GenerateBatch is given no limit.
const DefaultBatchConcurrency = 4

// GenerationService runs the field mapping and document assembly pipeline.
type GenerationService struct {
	templates     driven.TemplateStore
	documents     driven.DocumentStore
	output        driven.OutputStore
	mapping       *fields.Mapping
	validator     *validation.Validator
	assembler     *assembly.Assembler
	suggester     driven.FieldSuggester
	defaultFormat domain.OutputFormat
	now           func() time.Time
}

// GenerationConfig bundles the collaborators of a GenerationService.
type GenerationConfig struct {
	Templates driven.TemplateStore
	Documents driven.DocumentStore
	Output    driven.OutputStore
	Mapping   *fields.Mapping
	Validator *validation.Validator
	Assembler *assembly.Assembler

	// Suggester is optional; without it unmapped fields are only reported.
	Suggester driven.FieldSuggester

	// DefaultFormat applies when a request names no format.
	DefaultFormat domain.OutputFormat

	// Now supplies current_date. Defaults to time.Now.
	Now func() time.Time
}

// NewGenerationService creates a new generation service.
func NewGenerationService(cfg GenerationConfig) *GenerationService {
	if cfg.DefaultFormat == "" {
		cfg.DefaultFormat = domain.FormatText
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &GenerationService{
		templates:     cfg.Templates,
		documents:     cfg.Documents,
		output:        cfg.Output,
		mapping:       cfg.Mapping,
		validator:     cfg.Validator,
		assembler:     cfg.Assembler,
		suggester:     cfg.Suggester,
		defaultFormat: cfg.DefaultFormat,
		now:           cfg.Now,
	}
}

// prepared is the validated state of a request, ready to render.
type prepared struct {
	template    domain.Template
	record      domain.CanonicalRecord
	corrections []domain.Correction
	unmapped    []string
	body        string
}

// Generate runs the full pipeline and records the generated document.
// The written file is removed again when its record cannot be saved.
// A reference another process recorded first is retried with a fresh one.
func (s *GenerationService) Generate(ctx context.Context, req domain.GenerateRequest) (*domain.GeneratedDocument, error) {
	p, err := s.prepare(ctx, req)
	if err != nil {
		return nil, err
	}

	format := req.Format
	if format == "" {
		format = s.defaultFormat
	}
	in := assembly.Input{
		Template: p.template,
		Body:     p.body,
		Client:   clientFromRecord(p.record),
		Format:   format,
		Fields:   p.record.Strings(),
	}

	for attempt := 1; attempt <= assembly.DefaultMaxAttempts; attempt++ {
		doc, err := s.assembler.Assemble(ctx, in)
		if err != nil {
			return nil, err
		}

		err = s.documents.Save(ctx, doc)
		if err == nil {
			logger.Info("generated %s (%s) from %q", doc.Reference, doc.Format, p.template.Name)
			return doc, nil
		}

		if rmErr := s.output.Remove(context.WithoutCancel(ctx), doc.Path); rmErr != nil {
			logger.Warn("failed to remove %s after record error: %v", doc.Path, rmErr)
		}
		if !errors.Is(err, domain.ErrAlreadyExists) {
			return nil, fmt.Errorf("recording document %s: %w", doc.Reference, err)
		}
		logger.Debug("reference %s recorded concurrently, retrying", doc.Reference)
	}

	return nil, &domain.ReferenceCollisionError{Attempts: assembly.DefaultMaxAttempts, Dir: s.output.Dir()}
}

// Preview renders the template body without writing anything.
func (s *GenerationService) Preview(ctx context.Context, req domain.GenerateRequest) (*driving.Preview, error) {
	p, err := s.prepare(ctx, req)
	if err != nil {
		return nil, err
	}

	var missing []string
	for _, key := range templating.Placeholders(p.template) {
		if p.record.Format(key) == "" {
			missing = append(missing, key)
		}
	}

	return &driving.Preview{
		Body:        p.body,
		Fields:      p.record.Strings(),
		Corrections: p.corrections,
		Unmapped:    p.unmapped,
		Missing:     missing,
	}, nil
}

// GenerateBatch generates many documents with at most concurrency in flight.
func (s *GenerationService) GenerateBatch(ctx context.Context, reqs []domain.GenerateRequest, concurrency int) []driving.BatchResult {
	if concurrency <= 0 {
		concurrency = DefaultBatchConcurrency
	}

	results := make([]driving.BatchResult, len(reqs))
	var g errgroup.Group
	g.SetLimit(concurrency)

	for i, req := range reqs {
		results[i].Index = i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i].Err = err
				return nil
			}
			doc, err := s.Generate(ctx, req)
			results[i].Document = doc
			results[i].Err = err
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// prepare loads the template, then normalises, validates and renders the input.
func (s *GenerationService) prepare(ctx context.Context, req domain.GenerateRequest) (*prepared, error) {
	if req.TemplateID == "" {
		return nil, fmt.Errorf("template id is required: %w", domain.ErrInvalidInput)
	}

	tpl, err := s.loadTemplate(ctx, req.TemplateID)
	if err != nil {
		return nil, err
	}

	input := domain.InputRecord{Fields: req.Fields, Confidence: req.Confidence}
	norm := s.mapping.Normalise(input)
	s.applySuggestions(ctx, input, &norm)
	s.mergeClient(&norm, req.Client)
	s.mergeCurrentDate(&norm)

	record, corrections, err := s.validator.Validate(norm, s.mapping)
	if err != nil {
		return nil, err
	}
	if len(norm.Unmapped) > 0 {
		logger.Debug("ignored unmapped fields: %v", norm.Unmapped)
	}

	return &prepared{
		template:    *tpl,
		record:      record,
		corrections: corrections,
		unmapped:    norm.Unmapped,
		body:        templating.Render(*tpl, record),
	}, nil
}

// loadTemplate resolves a template by ID, then by name.
func (s *GenerationService) loadTemplate(ctx context.Context, idOrName string) (*domain.Template, error) {
	tpl, err := s.templates.Get(ctx, idOrName)
	if errors.Is(err, domain.ErrNotFound) {
		tpl, err = s.templates.GetByName(ctx, idOrName)
	}
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("template %q: %w", idOrName, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("loading template: %w", err)
	}
	if tpl.Segments == nil {
		tpl.Segments = templating.Parse(tpl.Content)
	}
	return tpl, nil
}

// applySuggestions asks the suggester to place unmapped fields. Accepted
// suggestions carry the lower of the input and suggester confidence, so
// the validator's confidence gate decides whether they are used.
func (s *GenerationService) applySuggestions(ctx context.Context, input domain.InputRecord, norm *domain.NormalisedRecord) {
	if s.suggester == nil || len(norm.Unmapped) == 0 {
		return
	}

	suggestions, err := s.suggester.Suggest(ctx, norm.Unmapped, input.Fields, s.mapping.Definitions())
	if err != nil {
		logger.Warn("field suggestions unavailable: %v", err)
		return
	}

	placed := make(map[string]bool, len(suggestions))
	for _, sug := range suggestions {
		if !s.mapping.Has(sug.Key) {
			continue
		}
		if _, taken := norm.Fields[sug.Key]; taken {
			continue
		}
		if norm.Fields == nil {
			norm.Fields = make(map[string]domain.NormalisedField)
		}
		norm.Fields[sug.Key] = domain.NormalisedField{
			Key:        sug.Key,
			Source:     sug.Field,
			Raw:        input.Fields[sug.Field],
			Confidence: min(input.ConfidenceFor(sug.Field), sug.Confidence),
		}
		placed[sug.Field] = true
		logger.Debug("suggested %s for %q (confidence %.2f)", sug.Key, sug.Field, sug.Confidence)
	}

	if len(placed) == 0 {
		return
	}
	remaining := make([]string, 0, len(norm.Unmapped)-len(placed))
	for _, name := range norm.Unmapped {
		if !placed[name] {
			remaining = append(remaining, name)
		}
	}
	norm.Unmapped = remaining
}

// mergeClient adds the client block as client_* fields. Input fields win.
func (s *GenerationService) mergeClient(norm *domain.NormalisedRecord, client domain.ClientInfo) {
	extra := client.Fields()
	keys := make([]string, 0, len(extra))
	for key := range extra {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		s.addField(norm, key, sourceClient, extra[key])
	}
}

// mergeCurrentDate fills current_date unless the input supplied it.
func (s *GenerationService) mergeCurrentDate(norm *domain.NormalisedRecord) {
	s.addField(norm, keyCurrentDate, sourceClock, s.now().Format(time.DateOnly))
}

func (s *GenerationService) addField(norm *domain.NormalisedRecord, key, source, value string) {
	if !s.mapping.Has(key) {
		return
	}
	if _, exists := norm.Fields[key]; exists {
		return
	}
	if norm.Fields == nil {
		norm.Fields = make(map[string]domain.NormalisedField)
	}
	norm.Fields[key] = domain.NormalisedField{Key: key, Source: source, Raw: value, Confidence: 1}
}

// clientFromRecord builds the document's client block from validated values.
func clientFromRecord(rec domain.CanonicalRecord) domain.ClientInfo {
	return domain.ClientInfo{
		Name:    rec.Format("client_name"),
		Company: rec.Format("client_company"),
		Email:   rec.Format("client_email"),
		Phone:   rec.Format("client_phone"),
		Address: rec.Format("client_address"),
	}
}
