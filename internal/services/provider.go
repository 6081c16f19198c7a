package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/KirkDiggler/character-sheet/internal/clients/embeddings"
	"github.com/KirkDiggler/character-sheet/internal/domain/character"
	"github.com/KirkDiggler/character-sheet/internal/domain/rules"
	"github.com/KirkDiggler/character-sheet/internal/events"
	"github.com/KirkDiggler/character-sheet/internal/repositories/characters"
	skillsrepo "github.com/KirkDiggler/character-sheet/internal/repositories/skills"
	"github.com/KirkDiggler/character-sheet/internal/repositories/spells"
	"github.com/KirkDiggler/character-sheet/internal/services/backend"
	"github.com/KirkDiggler/character-sheet/internal/services/settings"
	"github.com/KirkDiggler/character-sheet/internal/services/sheet"
	"github.com/KirkDiggler/character-sheet/internal/services/skills"
	"github.com/KirkDiggler/character-sheet/internal/storage/local"
)

// Provider holds all service instances
type Provider struct {
	Settings settings.Service
	Backend  *backend.Connector
	Skills   skills.Service
	Sheet    sheet.Service
	// Events carries every sheet change; subscribe for more than debug logs
	Events *events.Bus
}

// ProviderConfig holds configuration for creating services
type ProviderConfig struct {
	// Store keeps settings, and characters when no repository is given
	Store               local.Store
	CharacterRepository characters.Repository
	Rules               *rules.Rules
	// Defaults seed settings that were never saved
	Defaults       settings.Settings
	BackendTimeout time.Duration
	Logger         *zap.Logger
	// OpenPool replaces the postgres connection, for tests
	OpenPool backend.PoolOpener
}

// NewProvider wires every service. Nothing touches the network until
// Settings.Load or Settings.Update finds the backend configured.
func NewProvider(cfg *ProviderConfig) *Provider {
	if cfg == nil {
		panic("cfg cannot be nil")
	}
	if cfg.Store == nil {
		panic("store cannot be nil")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	charRepo := cfg.CharacterRepository
	if charRepo == nil {
		charRepo = characters.NewLocalRepository(&characters.LocalRepoConfig{Store: cfg.Store})
	}

	conn := backend.NewConnector(&backend.ConnectorConfig{
		Open:    cfg.OpenPool,
		Timeout: cfg.BackendTimeout,
		Logger:  logger,
	})

	skillSvc := skills.NewService(&skills.ServiceConfig{
		NewRepository: func(context.Context) (skillsrepo.Repository, error) {
			pool, err := conn.Pool()
			if err != nil {
				return nil, err
			}
			return skillsrepo.NewPostgresRepository(&skillsrepo.PostgresRepoConfig{
				DB:         pool.DB(),
				Dimensions: embeddings.Dimensions,
			}), nil
		},
		Logger: logger,
	})

	settingsSvc := settings.NewService(&settings.ServiceConfig{
		Store:    cfg.Store,
		Logger:   logger,
		Defaults: cfg.Defaults,
		// the skills repository needs the pool the connector opens
		Initializers: []settings.Initializer{conn, skillSvc},
	})

	bus := events.NewBus(logger)
	bus.Subscribe(events.LogListener(logger.Named("sheet")), events.AllTypes()...)

	sheetSvc := sheet.NewService(&sheet.ServiceConfig{
		Repository: charRepo,
		Rules:      cfg.Rules,
		Catalog:    &spellCatalog{conn: conn},
		Events:     bus,
		Logger:     logger,
	})

	return &Provider{
		Settings: settingsSvc,
		Backend:  conn,
		Skills:   skillSvc,
		Sheet:    sheetSvc,
		Events:   bus,
	}
}

// Close releases the backend pool
func (p *Provider) Close() {
	p.Backend.Close()
}

// spellCatalog reads the spells table through whatever pool is open now
type spellCatalog struct {
	conn *backend.Connector
}

func (c *spellCatalog) Get(ctx context.Context, name string) (*character.Spell, error) {
	pool, err := c.conn.Pool()
	if err != nil {
		return nil, err
	}
	repo := spells.NewPostgresRepository(&spells.PostgresRepoConfig{DB: pool.DB()})
	return repo.Get(ctx, name)
}
