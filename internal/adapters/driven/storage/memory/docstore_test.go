package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vynal-docs/vynal/internal/core/domain"
)

func TestDocumentStore_SaveGetDelete(t *testing.T) {
	ctx := context.Background()
	store := NewDocumentStore()
	doc := &domain.GeneratedDocument{Reference: "a1b2c3d4", Title: "Devis", Format: domain.FormatText}

	require.NoError(t, store.Save(ctx, doc))

	got, err := store.Get(ctx, "a1b2c3d4")
	require.NoError(t, err)
	assert.Equal(t, "Devis", got.Title)

	exists, err := store.Exists(ctx, "a1b2c3d4")
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, store.Delete(ctx, "a1b2c3d4"))
	_, err = store.Get(ctx, "a1b2c3d4")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, store.Delete(ctx, "a1b2c3d4"), domain.ErrNotFound)
}

func TestDocumentStore_Save_DuplicateReference(t *testing.T) {
	ctx := context.Background()
	store := NewDocumentStore()
	require.NoError(t, store.Save(ctx, &domain.GeneratedDocument{Reference: "dup00000"}))

	err := store.Save(ctx, &domain.GeneratedDocument{Reference: "dup00000"})

	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
}

func TestDocumentStore_Save_Invalid(t *testing.T) {
	store := NewDocumentStore()

	assert.ErrorIs(t, store.Save(context.Background(), nil), domain.ErrInvalidInput)
	assert.ErrorIs(t, store.Save(context.Background(), &domain.GeneratedDocument{}), domain.ErrInvalidInput)
}

func TestDocumentStore_List_NewestFirst(t *testing.T) {
	ctx := context.Background()
	store := NewDocumentStore()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, ref := range []string{"00000001", "00000002", "00000003"} {
		require.NoError(t, store.Save(ctx, &domain.GeneratedDocument{
			Reference:   ref,
			GeneratedAt: base.Add(time.Duration(i) * time.Hour),
		}))
	}

	all, err := store.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "00000003", all[0].Reference)
	assert.Equal(t, "00000001", all[2].Reference)

	limited, err := store.List(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}
