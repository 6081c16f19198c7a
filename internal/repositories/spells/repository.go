package spells

//go:generate mockgen -destination=mock/mock_repository.go -package=mockspells . Repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/KirkDiggler/character-sheet/internal/domain/character"
)

// Repository stores the shared spell catalogue
type Repository interface {
	// Upsert inserts the spell or replaces the row with the same name
	Upsert(ctx context.Context, spell *character.Spell) error
	// Get finds a spell by name, ignoring case
	Get(ctx context.Context, name string) (*character.Spell, error)
	List(ctx context.Context, filter ListFilter) ([]*character.Spell, error)
}

// ListFilter narrows List. Zero values match everything.
type ListFilter struct {
	Level  *int
	School string
	Class  string
}

// Querier is the part of pgxpool.Pool the repository needs
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}
