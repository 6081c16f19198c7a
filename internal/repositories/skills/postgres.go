package skills

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	sheeterr "github.com/KirkDiggler/character-sheet/internal/errors"
)

// MaxLimit caps Nearest
const MaxLimit = 50

type postgresRepo struct {
	db         Querier
	dimensions int
}

type PostgresRepoConfig struct {
	DB Querier
	// Dimensions is the declared vector width; zero skips the length check
	Dimensions int
}

func NewPostgresRepository(cfg *PostgresRepoConfig) Repository {
	if cfg == nil {
		panic("cfg cannot be nil")
	}
	if cfg.DB == nil {
		panic("db cannot be nil")
	}

	return &postgresRepo{db: cfg.DB, dimensions: cfg.Dimensions}
}

func (r *postgresRepo) Upsert(ctx context.Context, skill *Skill, embedding []float32) error {
	if skill == nil || strings.TrimSpace(skill.Name) == "" {
		return sheeterr.InvalidArgument("skill name is required")
	}
	if err := r.checkVector(embedding); err != nil {
		return err
	}

	_, err := r.db.Exec(ctx, `
		INSERT INTO skills (name, description, embedding)
		VALUES ($1, $2, $3::vector)
		ON CONFLICT (name) DO UPDATE SET
			description = EXCLUDED.description,
			embedding = EXCLUDED.embedding`,
		skill.Name, skill.Description, vectorLiteral(embedding),
	)
	if err != nil {
		return fmt.Errorf("upserting skill %s: %w", skill.Name, err)
	}
	return nil
}

func (r *postgresRepo) Nearest(ctx context.Context, embedding []float32, limit int) ([]*Skill, error) {
	if err := r.checkVector(embedding); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > MaxLimit {
		return nil, sheeterr.InvalidArgumentf("limit %d must be between 1 and %d", limit, MaxLimit)
	}

	rows, err := r.db.Query(ctx, `
		SELECT name, description, embedding <=> $1::vector AS distance
		FROM skills
		WHERE embedding IS NOT NULL
		ORDER BY distance
		LIMIT $2`,
		vectorLiteral(embedding), limit,
	)
	if err != nil {
		return nil, fmt.Errorf("querying nearest skills: %w", err)
	}
	defer rows.Close()

	var skills []*Skill
	for rows.Next() {
		var s Skill
		if err := rows.Scan(&s.Name, &s.Description, &s.Distance); err != nil {
			return nil, fmt.Errorf("scanning skill: %w", err)
		}
		skills = append(skills, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating skills: %w", err)
	}
	return skills, nil
}

func (r *postgresRepo) checkVector(embedding []float32) error {
	if len(embedding) == 0 {
		return sheeterr.InvalidArgument("embedding is required")
	}
	if r.dimensions > 0 && len(embedding) != r.dimensions {
		return sheeterr.InvalidArgumentf("embedding has %d dimensions, want %d", len(embedding), r.dimensions)
	}
	return nil
}

// vectorLiteral renders the pgvector text form, e.g. [0.5,-0.25,1]
func vectorLiteral(v []float32) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, f := range v {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatFloat(float64(f), 'f', -1, 32))
	}
	b.WriteByte(']')
	return b.String()
}
