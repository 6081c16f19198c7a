package spells

import (
	"context"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/character-sheet/internal/domain/character"
	sheeterr "github.com/KirkDiggler/character-sheet/internal/errors"
)

func TestListQuery(t *testing.T) {
	level := 3

	query, args := listQuery(ListFilter{})
	assert.Equal(t, `SELECT `+spellColumns+` FROM spells ORDER BY level, name`, query)
	assert.Empty(t, args)

	query, args = listQuery(ListFilter{Level: &level, School: "Evocation", Class: "wizard"})
	assert.Contains(t, query, "level = $1 AND lower(school) = lower($2) AND EXISTS")
	assert.Contains(t, query, "lower(c) = lower($3)")
	assert.Equal(t, []any{3, "Evocation", "wizard"}, args)
}

func TestNewPostgresRepository_Panics(t *testing.T) {
	assert.Panics(t, func() { NewPostgresRepository(nil) })
	assert.Panics(t, func() { NewPostgresRepository(&PostgresRepoConfig{}) })
}

type rowFunc func(dest ...any) error

func (f rowFunc) Scan(dest ...any) error { return f(dest...) }

// catalogQuerier answers QueryRow from an in-memory catalogue, matching names
// the way getQuery does
type catalogQuerier struct {
	Querier
	names []string
	sql   string
}

func (q *catalogQuerier) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	q.sql = sql
	want := args[0].(string)
	return rowFunc(func(dest ...any) error {
		for _, name := range q.names {
			if strings.EqualFold(name, want) {
				*dest[0].(*string) = name
				*dest[1].(*int) = 1
				return nil
			}
		}
		return pgx.ErrNoRows
	})
}

func TestGet_IgnoresCase(t *testing.T) {
	q := &catalogQuerier{names: []string{"Magic Missile"}}
	repo := NewPostgresRepository(&PostgresRepoConfig{DB: q})

	got, err := repo.Get(context.Background(), "magic missile")
	require.NoError(t, err)
	assert.Equal(t, &character.Spell{Name: "Magic Missile", Level: 1}, got)
	assert.Contains(t, q.sql, "lower(name) = lower($1)")
	assert.Contains(t, q.sql, "LIMIT 1")

	_, err = repo.Get(context.Background(), "Wish")
	assert.True(t, sheeterr.IsNotFound(err))
}
