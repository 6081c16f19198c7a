package spells

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/KirkDiggler/character-sheet/internal/domain/character"
	sheeterr "github.com/KirkDiggler/character-sheet/internal/errors"
)

const spellColumns = `name, level, school, casting_time, range, duration, concentration, ritual, classes`

// getQuery matches names case-insensitively, preferring an exact match when
// two stored names differ only in case
const getQuery = `SELECT ` + spellColumns + ` FROM spells
	WHERE lower(name) = lower($1)
	ORDER BY name = $1 DESC, name
	LIMIT 1`

type postgresRepo struct {
	db Querier
}

type PostgresRepoConfig struct {
	DB Querier
}

func NewPostgresRepository(cfg *PostgresRepoConfig) Repository {
	if cfg == nil {
		panic("cfg cannot be nil")
	}
	if cfg.DB == nil {
		panic("db cannot be nil")
	}

	return &postgresRepo{db: cfg.DB}
}

func (r *postgresRepo) Upsert(ctx context.Context, spell *character.Spell) error {
	if spell == nil {
		return sheeterr.InvalidArgument("spell cannot be nil")
	}
	name := strings.TrimSpace(spell.Name)
	if name == "" {
		return sheeterr.InvalidArgument("spell name is required")
	}
	if spell.Level < 0 || spell.Level > 9 {
		return sheeterr.InvalidArgumentf("spell level %d out of range", spell.Level).
			WithMeta("spell", name)
	}

	classes := spell.Classes
	if classes == nil {
		classes = []string{}
	}

	_, err := r.db.Exec(ctx, `
		INSERT INTO spells (`+spellColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (name) DO UPDATE SET
			level = EXCLUDED.level,
			school = EXCLUDED.school,
			casting_time = EXCLUDED.casting_time,
			range = EXCLUDED.range,
			duration = EXCLUDED.duration,
			concentration = EXCLUDED.concentration,
			ritual = EXCLUDED.ritual,
			classes = EXCLUDED.classes,
			updated_at = NOW()`,
		name, spell.Level, spell.School, spell.CastingTime, spell.Range, spell.Duration,
		spell.Concentration, spell.Ritual, classes,
	)
	if err != nil {
		return fmt.Errorf("upserting spell %s: %w", name, err)
	}
	return nil
}

func (r *postgresRepo) Get(ctx context.Context, name string) (*character.Spell, error) {
	row := r.db.QueryRow(ctx, getQuery, name)

	spell, err := scanSpell(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, sheeterr.NotFoundf("spell %s not found", name).WithMeta("spell", name)
	}
	if err != nil {
		return nil, fmt.Errorf("selecting spell %s: %w", name, err)
	}
	return spell, nil
}

func (r *postgresRepo) List(ctx context.Context, filter ListFilter) ([]*character.Spell, error) {
	query, args := listQuery(filter)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing spells: %w", err)
	}
	defer rows.Close()

	var spells []*character.Spell
	for rows.Next() {
		spell, err := scanSpell(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning spell: %w", err)
		}
		spells = append(spells, spell)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating spells: %w", err)
	}
	return spells, nil
}

func listQuery(filter ListFilter) (string, []any) {
	var (
		where []string
		args  []any
	)
	if filter.Level != nil {
		args = append(args, *filter.Level)
		where = append(where, fmt.Sprintf("level = $%d", len(args)))
	}
	if filter.School != "" {
		args = append(args, filter.School)
		where = append(where, fmt.Sprintf("lower(school) = lower($%d)", len(args)))
	}
	if filter.Class != "" {
		args = append(args, filter.Class)
		where = append(where, fmt.Sprintf("EXISTS (SELECT 1 FROM unnest(classes) c WHERE lower(c) = lower($%d))", len(args)))
	}

	query := `SELECT ` + spellColumns + ` FROM spells`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	return query + ` ORDER BY level, name`, args
}

func scanSpell(row pgx.Row) (*character.Spell, error) {
	var s character.Spell
	err := row.Scan(
		&s.Name, &s.Level, &s.School, &s.CastingTime, &s.Range, &s.Duration,
		&s.Concentration, &s.Ritual, &s.Classes,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
