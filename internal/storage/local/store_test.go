package local

import (
	"context"
	"path/filepath"
	"testing"

	sheeterr "github.com/KirkDiggler/character-sheet/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type StoreTestSuite struct {
	suite.Suite
	open  func(t *testing.T) Store
	store Store
	ctx   context.Context
}

func (s *StoreTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = s.open(s.T())
}

func (s *StoreTestSuite) TestGetMissing() {
	_, err := s.store.Get(s.ctx, "app_settings")
	s.True(sheeterr.IsNotFound(err))
	s.Equal("app_settings", sheeterr.GetMeta(err)["key"])
}

func (s *StoreTestSuite) TestSetGetOverwrite() {
	s.Require().NoError(s.store.Set(s.ctx, "k", []byte(`{"a":1}`)))
	s.Require().NoError(s.store.Set(s.ctx, "k", []byte(`{"a":2}`)))

	got, err := s.store.Get(s.ctx, "k")
	s.Require().NoError(err)
	s.Equal(`{"a":2}`, string(got))
}

func (s *StoreTestSuite) TestSetEmptyValue() {
	s.Require().NoError(s.store.Set(s.ctx, "empty", nil))

	got, err := s.store.Get(s.ctx, "empty")
	s.Require().NoError(err)
	s.Empty(got)
}

func (s *StoreTestSuite) TestSetRequiresKey() {
	s.True(sheeterr.IsInvalidArgument(s.store.Set(s.ctx, "", []byte("x"))))
}

func (s *StoreTestSuite) TestDelete() {
	s.Require().NoError(s.store.Set(s.ctx, "k", []byte("v")))
	s.Require().NoError(s.store.Delete(s.ctx, "k"))
	s.Require().NoError(s.store.Delete(s.ctx, "k"))

	_, err := s.store.Get(s.ctx, "k")
	s.True(sheeterr.IsNotFound(err))
}

func TestMemoryStore(t *testing.T) {
	suite.Run(t, &StoreTestSuite{open: func(*testing.T) Store { return NewMemoryStore() }})
}

func TestSQLiteStore(t *testing.T) {
	suite.Run(t, &StoreTestSuite{open: func(t *testing.T) Store {
		store, err := OpenSQLite(":memory:")
		require.NoError(t, err)
		t.Cleanup(func() { _ = store.Close() })
		return store
	}})
}

func TestSQLiteStore_PersistsAcrossOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sheet.db")
	ctx := context.Background()

	store, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, "app_settings", []byte(`{"supabaseUrl":"x"}`)))
	require.NoError(t, store.Close())

	reopened, err := OpenSQLite(path)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Get(ctx, "app_settings")
	require.NoError(t, err)
	assert.JSONEq(t, `{"supabaseUrl":"x"}`, string(got))
}

func TestOpenSQLite_RequiresPath(t *testing.T) {
	_, err := OpenSQLite(" ")
	assert.Error(t, err)
}

func TestMemoryStore_CopiesValues(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	value := []byte("abc")
	require.NoError(t, store.Set(ctx, "k", value))
	value[0] = 'z'

	got, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
}
