// Package spellimport copies spells from the public API into the backend
// spells table, one request at a time.
package spellimport

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/KirkDiggler/character-sheet/internal/clients/dnd5e"
	"github.com/KirkDiggler/character-sheet/internal/domain/character"
	sheeterr "github.com/KirkDiggler/character-sheet/internal/errors"
	"github.com/KirkDiggler/character-sheet/internal/repositories/spells"
)


// Result counts rows by outcome
type Result struct {
	Success  int
	Failed   int
	Skipped  int
	Failures []Failure
}

type Failure struct {
	Name string
	Err  error
}

func (r *Result) fail(name string, err error) {
	r.Failed++
	r.Failures = append(r.Failures, Failure{Name: name, Err: err})
}

// Row is one spell to import, with the sheet's own level and school used
// when the API leaves them out
type Row struct {
	// Key is the API key; empty means NormalizeKey(Name)
	Key    string
	Name   string
	Level  int
	School string
}

// Importer is not safe for concurrent use
type Importer struct {
	client  dnd5e.Client
	repo    spells.Repository
	delay   time.Duration
	logger  *zap.Logger
	fetched bool
}

type Config struct {
	Client     dnd5e.Client
	Repository spells.Repository
	// Delay between API requests; zero or negative means none
	Delay  time.Duration
	Logger *zap.Logger
}

func New(cfg *Config) *Importer {
	if cfg == nil {
		panic("cfg cannot be nil")
	}
	if cfg.Client == nil {
		panic("client cannot be nil")
	}
	if cfg.Repository == nil {
		panic("repository cannot be nil")
	}

	imp := &Importer{
		client: cfg.Client,
		repo:   cfg.Repository,
		delay:  cfg.Delay,
		logger: cfg.Logger,
	}
	if imp.logger == nil {
		imp.logger = zap.NewNop()
	}
	imp.logger = imp.logger.Named("spellimport")

	return imp
}

// NormalizeKey turns a spell name into its API key: "Magic Missile" becomes
// "magic-missile"
func NormalizeKey(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "-")
}

// ReadRows parses a CSV whose header names at least name, level and school
// columns, in any case and order
func ReadRows(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, sheeterr.InvalidArgument("csv is empty")
	}
	if err != nil {
		return nil, sheeterr.InvalidArgumentf("reading csv header: %v", err)
	}

	cols := map[string]int{}
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, want := range []string{"name", "level", "school"} {
		if _, ok := cols[want]; !ok {
			return nil, sheeterr.InvalidArgumentf("csv header is missing a %s column", want).
				WithMeta("column", want)
		}
	}

	field := func(record []string, col string) string {
		i := cols[col]
		if i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	var rows []Row
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, sheeterr.InvalidArgumentf("reading csv: %v", err)
		}

		level, _ := strconv.Atoi(field(record, "level"))
		rows = append(rows, Row{
			Name:   field(record, "name"),
			Level:  level,
			School: field(record, "school"),
		})
	}
	return rows, nil
}

// ImportCSV reads the rows and imports them
func (i *Importer) ImportCSV(ctx context.Context, r io.Reader) (*Result, error) {
	rows, err := ReadRows(r)
	if err != nil {
		return nil, err
	}
	return i.Import(ctx, rows)
}

// ImportClass imports every spell the API lists for a class, optionally at
// one level
func (i *Importer) ImportClass(ctx context.Context, classKey string, level *int) (*Result, error) {
	var (
		refs []dnd5e.SpellRef
		err  error
	)
	if level != nil {
		refs, err = i.client.ListSpellsByClassAndLevel(ctx, classKey, *level)
	} else {
		refs, err = i.client.ListSpellsByClass(ctx, classKey)
	}
	if err != nil {
		return nil, err
	}
	i.fetched = true

	rows := make([]Row, len(refs))
	for n, ref := range refs {
		rows[n] = Row{Key: ref.Key, Name: ref.Name}
	}
	return i.Import(ctx, rows)
}

// Import fetches and stores each row. A failed row is logged and counted
// and the batch carries on; only a cancelled context stops it early.
func (i *Importer) Import(ctx context.Context, rows []Row) (*Result, error) {
	result := &Result{}

	for _, row := range rows {
		if row.Name == "" {
			result.Skipped++
			continue
		}

		if err := i.wait(ctx); err != nil {
			return result, err
		}

		spell, err := i.fetch(ctx, row)
		if err != nil {
			i.logger.Warn("failed to fetch spell", zap.String("spell", row.Name), zap.Error(err))
			result.fail(row.Name, err)
			continue
		}

		if err := i.repo.Upsert(ctx, spell); err != nil {
			i.logger.Warn("failed to store spell", zap.String("spell", row.Name), zap.Error(err))
			result.fail(row.Name, err)
			continue
		}

		i.logger.Debug("imported spell", zap.String("spell", spell.Name))
		result.Success++
	}

	i.logger.Info("spell import finished",
		zap.Int("success", result.Success),
		zap.Int("failed", result.Failed),
		zap.Int("skipped", result.Skipped))

	return result, nil
}

func (i *Importer) fetch(ctx context.Context, row Row) (*character.Spell, error) {
	key := row.Key
	if key == "" {
		key = NormalizeKey(row.Name)
	}
	spell, err := i.client.GetSpell(ctx, key)
	if err != nil {
		return nil, err
	}

	if spell.Name == "" {
		spell.Name = row.Name
	}
	if spell.School == "" {
		spell.School = row.School
	}
	if spell.Level == 0 && row.Level > 0 {
		spell.Level = row.Level
	}
	return spell, nil
}

// wait sleeps between API requests, not before the first
func (i *Importer) wait(ctx context.Context) error {
	if !i.fetched || i.delay <= 0 {
		i.fetched = true
		return ctx.Err()
	}

	timer := time.NewTimer(i.delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
