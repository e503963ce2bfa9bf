package filesystem

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vynal-docs/vynal/internal/core/domain"
)

func TestStore_CreateWriteOpen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s := New(dir)

	w, path, err := s.Create(ctx, "abcd1234.txt")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "abcd1234.txt"), path)
	_, err = io.WriteString(w, "hello")
	require.NoError(t, err)
	require.NoError(t, w.Close())

	exists, err := s.Exists(ctx, "abcd1234.txt")
	require.NoError(t, err)
	assert.True(t, exists)

	r, err := s.Open(ctx, path)
	require.NoError(t, err)
	defer r.Close()
	data, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}

func TestStore_Create_ExistingFile(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "taken.txt"), []byte("x"), 0o644))

	_, _, err := New(dir).Create(ctx, "taken.txt")

	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
	data, _ := os.ReadFile(filepath.Join(dir, "taken.txt"))
	assert.Equal(t, "x", string(data), "existing file must not be truncated")
}

func TestStore_Create_MissingDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "missing")

	_, _, err := New(dir).Create(context.Background(), "a.txt")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStorage)
	var serr *domain.StorageError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, dir, serr.Path)
}

func TestStore_Create_DirectoryIsFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	_, _, err := New(file).Create(context.Background(), "a.txt")

	assert.ErrorIs(t, err, domain.ErrStorage)
}

func TestStore_Create_BadNames(t *testing.T) {
	s := New(t.TempDir())

	for _, name := range []string{"", "../escape.txt", "sub/dir.txt", ".hidden"} {
		_, _, err := s.Create(context.Background(), name)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, name)
	}
}

func TestStore_Remove(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, "gone.txt")
	require.NoError(t, os.WriteFile(path, nil, 0o644))
	s := New(dir)

	require.NoError(t, s.Remove(ctx, path))
	require.NoError(t, s.Remove(ctx, path))

	exists, err := s.Exists(ctx, "gone.txt")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestStore_Open_Missing(t *testing.T) {
	_, err := New(t.TempDir()).Open(context.Background(), "/nonexistent/file.txt")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_Claimed(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s := New(dir)
	for _, name := range []string{"aaaaaaaa.pdf", "bbbbbbbb", "cccccccc1.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}

	tests := []struct {
		stem string
		want bool
	}{
		{"aaaaaaaa", true},
		{"bbbbbbbb", true},
		{"cccccccc", false},
		{"dddddddd", false},
	}
	for _, tt := range tests {
		t.Run(tt.stem, func(t *testing.T) {
			got, err := s.Claimed(ctx, tt.stem)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStore_Claimed_Errors(t *testing.T) {
	ctx := context.Background()

	_, err := New(t.TempDir()).Claimed(ctx, "../escape")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = New(filepath.Join(t.TempDir(), "missing")).Claimed(ctx, "aaaaaaaa")
	assert.ErrorIs(t, err, domain.ErrStorage)
}
