package skills

//go:generate mockgen -destination=mock/mock_repository.go -package=mockskills . Repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Skill is a described ability a player can look up by meaning
type Skill struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Distance    float64 `json:"distance"`
}

type Repository interface {
	Upsert(ctx context.Context, skill *Skill, embedding []float32) error
	// Nearest orders skills by cosine distance to embedding
	Nearest(ctx context.Context, embedding []float32, limit int) ([]*Skill, error)
}

// Querier is the part of pgxpool.Pool the repository needs
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}
