// Package assembly turns a rendered body into a stamped, uniquely
// referenced file in the output directory.
package assembly

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vynal-docs/vynal/internal/core/domain"
	"github.com/vynal-docs/vynal/internal/core/ports/driven"
	"github.com/vynal-docs/vynal/internal/logger"
)

// DefaultMaxAttempts is the number of reference ids tried before giving up.
const DefaultMaxAttempts = 5

// ReferenceLength is the number of hex characters in a reference id.
const ReferenceLength = 8

// dirLocks serialises reference allocation per output directory.
var dirLocks sync.Map // map[string]*sync.Mutex

func lockDir(dir string) func() {
	mu, _ := dirLocks.LoadOrStore(dir, &sync.Mutex{})
	m := mu.(*sync.Mutex)
	m.Lock()
	return m.Unlock
}

// NewReference returns 8 random lowercase hex characters.
func NewReference() string {
	return uuid.NewString()[:ReferenceLength]
}

// Input is what the assembler needs to produce one document.
type Input struct {
	// Template is the template the body was rendered from.
	Template domain.Template

	// Body is the rendered template text.
	Body string

	// Client is stamped in the header block.
	Client domain.ClientInfo

	// Format selects the renderer. Empty means plain text.
	Format domain.OutputFormat

	// Fields are the formatted canonical values, kept on the record.
	Fields map[string]string
}

// Assembler writes generated documents.
type Assembler struct {
	formats      driven.FormatRegistry
	output       driven.OutputStore
	documents    driven.DocumentStore
	now          func() time.Time
	newReference func() string
	maxAttempts  int
}

// Option configures an Assembler.
type Option func(*Assembler)

// WithClock sets the time source.
func WithClock(now func() time.Time) Option {
	return func(a *Assembler) {
		a.now = now
	}
}

// WithReferenceGenerator sets the reference id source.
func WithReferenceGenerator(gen func() string) Option {
	return func(a *Assembler) {
		a.newReference = gen
	}
}

// WithMaxAttempts sets the reference allocation retry budget.
func WithMaxAttempts(n int) Option {
	return func(a *Assembler) {
		if n > 0 {
			a.maxAttempts = n
		}
	}
}

// New creates an assembler. documents may be nil, in which case only
// the output directory is checked for reference collisions.
func New(formats driven.FormatRegistry, output driven.OutputStore, documents driven.DocumentStore, opts ...Option) *Assembler {
	a := &Assembler{
		formats:      formats,
		output:       output,
		documents:    documents,
		now:          time.Now,
		newReference: NewReference,
		maxAttempts:  DefaultMaxAttempts,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Title returns "<document type> - <client name>", or the document type
// alone when the client name is blank.
func Title(documentType, clientName string) string {
	documentType = strings.TrimSpace(documentType)
	clientName = strings.TrimSpace(clientName)
	if clientName == "" {
		return documentType
	}
	return documentType + " - " + clientName
}

// Assemble allocates a reference, then renders and writes the document.
// The metadata record is not saved here.
func (a *Assembler) Assemble(ctx context.Context, in Input) (*domain.GeneratedDocument, error) {
	format := in.Format
	if format == "" {
		format = domain.FormatText
	}
	renderer, err := a.formats.Get(format)
	if err != nil {
		return nil, err
	}

	docType := in.Template.DocumentType
	if docType == "" {
		docType = in.Template.Name
	}

	doc := &domain.GeneratedDocument{
		Title:       Title(docType, in.Client.Name),
		TemplateID:  in.Template.ID,
		GeneratedAt: a.now(),
		Client:      in.Client,
		Body:        in.Body,
		Format:      format,
		Fields:      in.Fields,
	}

	w, err := a.allocate(ctx, doc, renderer.Extension())
	if err != nil {
		return nil, err
	}

	renderErr := renderer.Render(ctx, doc, w)
	closeErr := w.Close()
	if renderErr != nil || closeErr != nil {
		if rmErr := a.output.Remove(context.WithoutCancel(ctx), doc.Path); rmErr != nil {
			logger.Warn("failed to remove partial file %s: %v", doc.Path, rmErr)
		}
		if renderErr != nil {
			return nil, fmt.Errorf("rendering %s: %w", format, renderErr)
		}
		return nil, &domain.StorageError{Op: "write", Path: doc.Path, Err: closeErr}
	}

	logger.Debug("assembled %s (%s) at %s", doc.Reference, doc.Title, doc.Path)
	return doc, nil
}

// allocate picks a free reference and creates its file. It sets
// doc.Reference and doc.Path on success. A reference is free when no
// record holds it and no file in the directory uses it as a stem,
// whatever the extension. The file is created under the directory lock,
// so a request still rendering or recording keeps its reference claimed.
func (a *Assembler) allocate(ctx context.Context, doc *domain.GeneratedDocument, ext string) (io.WriteCloser, error) {
	unlock := lockDir(a.output.Dir())
	defer unlock()

	for attempt := 1; attempt <= a.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		ref := a.newReference()
		if a.documents != nil {
			taken, err := a.documents.Exists(ctx, ref)
			if err != nil {
				return nil, fmt.Errorf("checking reference %s: %w", ref, err)
			}
			if taken {
				logger.Debug("reference %s already recorded, retrying", ref)
				continue
			}
		}

		claimed, err := a.output.Claimed(ctx, ref)
		if err != nil {
			return nil, fmt.Errorf("checking reference %s: %w", ref, err)
		}
		if claimed {
			logger.Debug("reference %s already on disk, retrying", ref)
			continue
		}

		w, path, err := a.output.Create(ctx, ref+"."+ext)
		if errors.Is(err, domain.ErrAlreadyExists) {
			logger.Debug("reference %s already on disk, retrying", ref)
			continue
		}
		if err != nil {
			return nil, err
		}

		doc.Reference = ref
		doc.Path = path
		return w, nil
	}

	return nil, &domain.ReferenceCollisionError{Attempts: a.maxAttempts, Dir: a.output.Dir()}
}
