package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"primertail-core/primer"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSaveGet(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	p := primer.Named("fw18", "atgactgctaacccttcc")
	p.Description = "fw18 pUC19"
	p.Concentration = 1000
	require.NoError(t, s.Save(ctx, p))

	got, err := s.Get(ctx, "fw18")
	require.NoError(t, err)
	assert.Equal(t, "fw18", got.Name)
	assert.Equal(t, "atgactgctaacccttcc", got.Seq)
	assert.Equal(t, "fw18 pUC19", got.Description)
	assert.Equal(t, 1000.0, got.Concentration)
	assert.NotEmpty(t, got.CreatedAt)
}

func TestSaveReplaces(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, primer.Named("p", "acgt")))
	require.NoError(t, s.Save(ctx, primer.Named("p", "ttttgggg")))

	got, err := s.Get(ctx, "p")
	require.NoError(t, err)
	assert.Equal(t, "ttttgggg", got.Seq)

	all, err := s.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestSaveRejects(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	require.Error(t, s.Save(ctx, primer.New("acgt")))
	require.Error(t, s.Save(ctx, primer.Named("bad", "acgtZ")))
}

func TestGetMissing(t *testing.T) {
	s := newStore(t)
	_, err := s.Get(context.Background(), "nope")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestListFilter(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, primer.Named("a", "atgactgctaacccttcc")))
	require.NoError(t, s.Save(ctx, primer.Named("b", "catcgtaagtttcgaacga")))

	all, err := s.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 2)

	hits, err := s.List(ctx, "CCCTT")
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "a", hits[0].ID)
}

func TestReopenKeepsData(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	s, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, primer.Named("keep", "ggatcc")))
	require.NoError(t, s.Close())

	s, err = Open(dir)
	require.NoError(t, err)
	defer func() { _ = s.Close() }()
	got, err := s.Get(ctx, "keep")
	require.NoError(t, err)
	assert.Equal(t, "ggatcc", got.Seq)
}

func TestOpenError(t *testing.T) {
	orig := openDB
	t.Cleanup(func() { openDB = orig })
	openDB = func(string, string) (*sql.DB, error) { return nil, errors.New("boom") }

	_, err := Open(t.TempDir())
	require.ErrorContains(t, err, "boom")
}
