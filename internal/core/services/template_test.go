package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vynal-docs/vynal/internal/adapters/driven/storage/memory"
	templatedir "github.com/vynal-docs/vynal/internal/adapters/driven/templates/dir"
	"github.com/vynal-docs/vynal/internal/core/domain"
	"github.com/vynal-docs/vynal/internal/fields"
)

func newTemplateService(t *testing.T) (*TemplateService, *memory.TemplateStore) {
	t.Helper()
	mapping, err := fields.DefaultMapping()
	require.NoError(t, err)
	store := memory.NewTemplateStore()
	return NewTemplateService(store, templatedir.New(templatedir.WithDebounce(20*time.Millisecond)), mapping), store
}

func contractTemplate() domain.Template {
	return domain.Template{
		Name:         "Contrat",
		DocumentType: "Contrat de prestation",
		Category:     "legal",
		Content:      "Entre {{client_name}} et {{provider_name}}, pour <<amount>> EUR.",
	}
}

func TestTemplateService_Create(t *testing.T) {
	svc, store := newTemplateService(t)
	ctx := context.Background()

	tpl, err := svc.Create(ctx, contractTemplate())
	require.NoError(t, err)

	assert.NotEmpty(t, tpl.ID)
	assert.False(t, tpl.CreatedAt.IsZero())
	assert.NotEmpty(t, tpl.Segments)

	stored, err := store.Get(ctx, tpl.ID)
	require.NoError(t, err)
	assert.Equal(t, "Contrat", stored.Name)
}

func TestTemplateService_Create_Errors(t *testing.T) {
	svc, _ := newTemplateService(t)
	ctx := context.Background()

	tests := []struct {
		name string
		tpl  domain.Template
		want error
	}{
		{"no name", domain.Template{Content: "x"}, domain.ErrInvalidInput},
		{"no content", domain.Template{Name: "x", Content: "  "}, domain.ErrInvalidInput},
		{"unknown placeholder", domain.Template{Name: "x", Content: "{{nope}} {{client_name}}"}, domain.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tt.tpl)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	_, err := svc.Create(ctx, contractTemplate())
	require.NoError(t, err)
	_, err = svc.Create(ctx, contractTemplate())
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
}

func TestTemplateService_UnknownPlaceholderNamed(t *testing.T) {
	svc, _ := newTemplateService(t)

	_, err := svc.Create(context.Background(), domain.Template{Name: "x", Content: "{{foo_bar}}"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "foo_bar")
}

func TestTemplateService_Update(t *testing.T) {
	svc, _ := newTemplateService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, contractTemplate())
	require.NoError(t, err)

	changed := *created
	changed.Content = "Nouveau: {{client_email}}"
	updated, err := svc.Update(ctx, changed)
	require.NoError(t, err)

	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.Equal(t, []string{"client_email"}, func() []string {
		keys, err := svc.Placeholders(ctx, created.ID)
		require.NoError(t, err)
		return keys
	}())

	_, err = svc.Update(ctx, domain.Template{ID: "missing", Name: "x", Content: "y"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.Update(ctx, domain.Template{Name: "x", Content: "y"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTemplateService_GetByIDOrName(t *testing.T) {
	svc, _ := newTemplateService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, contractTemplate())
	require.NoError(t, err)

	byID, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	byName, err := svc.Get(ctx, "Contrat")
	require.NoError(t, err)
	assert.Equal(t, byID.ID, byName.ID)
	assert.NotEmpty(t, byName.Segments)

	_, err = svc.Get(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTemplateService_Placeholders(t *testing.T) {
	svc, _ := newTemplateService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, contractTemplate())
	require.NoError(t, err)

	keys, err := svc.Placeholders(ctx, "Contrat")
	require.NoError(t, err)
	assert.Equal(t, []string{"client_name", "provider_name", "amount"}, keys)
}

func TestTemplateService_ListAndDelete(t *testing.T) {
	svc, _ := newTemplateService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, contractTemplate())
	require.NoError(t, err)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, svc.Delete(ctx, created.ID))
	list, err = svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	assert.ErrorIs(t, svc.Delete(ctx, ""), domain.ErrInvalidInput)
}

func TestTemplateService_Import(t *testing.T) {
	svc, _ := newTemplateService(t)
	ctx := context.Background()
	dir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "devis.txt"),
		[]byte("---\nname: Devis\ncategory: sales\n---\nTotal: {{amount}}"), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "nda.md"),
		[]byte("NDA pour {{client_name}}"), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.txt"),
		[]byte("{{not_a_field}}"), 0600))

	imported, err := svc.Import(ctx, dir)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "broken")
	require.Len(t, imported, 2)

	// Re-importing updates in place.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "devis.txt"),
		[]byte("---\nname: Devis\n---\nMontant: {{amount}}"), 0600))
	require.NoError(t, os.Remove(filepath.Join(dir, "broken.txt")))

	again, err := svc.Import(ctx, dir)
	require.NoError(t, err)
	require.Len(t, again, 2)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	devis, err := svc.Get(ctx, "Devis")
	require.NoError(t, err)
	assert.Equal(t, "Montant: {{amount}}", devis.Content)
}

func TestTemplateService_Import_ReusesExistingID(t *testing.T) {
	svc, _ := newTemplateService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.Template{Name: "nda", Content: "v1 {{client_name}}"})
	require.NoError(t, err)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "nda.txt"), []byte("v2 {{client_name}}"), 0600))

	imported, err := svc.Import(ctx, dir)
	require.NoError(t, err)
	require.Len(t, imported, 1)
	assert.Equal(t, created.ID, imported[0].ID)
}

func TestTemplateService_Import_NoLoader(t *testing.T) {
	mapping, err := fields.DefaultMapping()
	require.NoError(t, err)
	svc := NewTemplateService(memory.NewTemplateStore(), nil, mapping)

	_, err = svc.Import(context.Background(), t.TempDir())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.ErrorIs(t, svc.Watch(context.Background(), t.TempDir()), domain.ErrInvalidInput)
}

func TestTemplateService_Watch(t *testing.T) {
	svc, _ := newTemplateService(t)
	dir := t.TempDir()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Watch(ctx, dir) }()

	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "lettre.txt"), []byte("Bonjour {{client_name}}"), 0600))

	require.Eventually(t, func() bool {
		tpl, err := svc.Get(context.Background(), "lettre")
		return err == nil && tpl.Content == "Bonjour {{client_name}}"
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	assert.NoError(t, <-done)
}
