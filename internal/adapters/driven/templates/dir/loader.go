package dir

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/vynal-docs/vynal/internal/core/domain"
	"github.com/vynal-docs/vynal/internal/core/ports/driven"
)

// Verify interface compliance.
var _ driven.TemplateLoader = (*Loader)(nil)

// DefaultDebounce is how long the watcher waits for more changes before reloading.
const DefaultDebounce = 300 * time.Millisecond

// templateNamespace seeds name-derived template IDs.
var templateNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://vynal.dev/templates"))

// frontMatter is the optional YAML header of a template file.
type frontMatter struct {
	ID           string `yaml:"id"`
	Name         string `yaml:"name"`
	DocumentType string `yaml:"document_type"`
	Category     string `yaml:"category"`
	Description  string `yaml:"description"`
}

// Loader reads template files from directories.
type Loader struct {
	extensions map[string]bool
	debounce   time.Duration
}

// Option configures a Loader.
type Option func(*Loader)

// WithExtensions overrides the file extensions treated as templates.
func WithExtensions(exts ...string) Option {
	return func(l *Loader) {
		l.extensions = make(map[string]bool, len(exts))
		for _, ext := range exts {
			if !strings.HasPrefix(ext, ".") {
				ext = "." + ext
			}
			l.extensions[strings.ToLower(ext)] = true
		}
	}
}

// WithDebounce sets the watch debounce delay.
func WithDebounce(d time.Duration) Option {
	return func(l *Loader) {
		if d > 0 {
			l.debounce = d
		}
	}
}

// New creates a Loader accepting .txt, .md and .tmpl files.
func New(opts ...Option) *Loader {
	l := &Loader{
		extensions: map[string]bool{".txt": true, ".md": true, ".tmpl": true},
		debounce:   DefaultDebounce,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load parses every template file directly inside dir, sorted by file name.
// Hidden files and subdirectories are skipped.
func (l *Loader) Load(ctx context.Context, dir string) ([]domain.Template, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("template directory %s: %w", dir, domain.ErrNotFound)
		}
		return nil, &domain.StorageError{Op: "read", Path: dir, Err: err}
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !l.accepts(entry.Name()) {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	templates := make([]domain.Template, 0, len(names))
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		tpl, err := l.LoadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		templates = append(templates, tpl)
	}
	return templates, nil
}

// LoadFile parses a single template file.
func (l *Loader) LoadFile(path string) (domain.Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.Template{}, fmt.Errorf("template file %s: %w", path, domain.ErrNotFound)
		}
		return domain.Template{}, &domain.StorageError{Op: "read", Path: path, Err: err}
	}

	tpl, err := Parse(data)
	if err != nil {
		return domain.Template{}, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	if tpl.Name == "" {
		base := filepath.Base(path)
		tpl.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	if tpl.ID == "" {
		tpl.ID = TemplateID(tpl.Name)
	}

	if info, err := os.Stat(path); err == nil {
		tpl.UpdatedAt = info.ModTime().UTC()
	}
	return tpl, nil
}

// TemplateID derives the stable ID of a template from its name.
func TemplateID(name string) string {
	return uuid.NewSHA1(templateNamespace, []byte(strings.TrimSpace(name))).String()
}

// Parse splits optional YAML front matter from the template body.
func Parse(data []byte) (domain.Template, error) {
	data = bytes.TrimPrefix(data, []byte("\ufeff"))
	text := strings.ReplaceAll(string(data), "\r\n", "\n")

	if !strings.HasPrefix(text, "---\n") {
		return domain.Template{Content: text}, nil
	}

	rest := text[len("---\n"):]
	var header, body string
	switch {
	case strings.HasPrefix(rest, "---\n"):
		body = rest[len("---\n"):]
	case strings.Contains(rest, "\n---\n"):
		idx := strings.Index(rest, "\n---\n")
		header, body = rest[:idx], rest[idx+len("\n---\n"):]
	case strings.HasSuffix(rest, "\n---"):
		header = strings.TrimSuffix(rest, "\n---")
	default:
		return domain.Template{}, fmt.Errorf("unterminated front matter: %w", domain.ErrInvalidInput)
	}

	var fm frontMatter
	if err := yaml.Unmarshal([]byte(header), &fm); err != nil {
		return domain.Template{}, fmt.Errorf("parsing front matter: %v: %w", err, domain.ErrInvalidInput)
	}

	return domain.Template{
		ID:           strings.TrimSpace(fm.ID),
		Name:         strings.TrimSpace(fm.Name),
		DocumentType: strings.TrimSpace(fm.DocumentType),
		Category:     strings.TrimSpace(fm.Category),
		Description:  strings.TrimSpace(fm.Description),
		Content:      body,
	}, nil
}

func (l *Loader) accepts(name string) bool {
	if strings.HasPrefix(name, ".") {
		return false
	}
	return l.extensions[strings.ToLower(filepath.Ext(name))]
}
