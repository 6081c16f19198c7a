package settings

import (
	"context"
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	sheeterr "github.com/KirkDiggler/character-sheet/internal/errors"
	"github.com/KirkDiggler/character-sheet/internal/storage/local"
)

type Service interface {
	// Load merges the stored blob over the defaults. Read and parse failures
	// are logged and leave the defaults in place.
	Load(ctx context.Context) Settings
	Get() Settings
	IsConfigured() bool
	// Update applies s in memory, persists it and runs the initializers.
	// A failed write is returned but the in-memory value stays.
	Update(ctx context.Context, s Settings) error
	// Register adds an initializer for later loads and updates
	Register(init Initializer)
}

type service struct {
	mu           sync.Mutex
	store        local.Store
	logger       *zap.Logger
	current      Settings
	defaults     Settings
	initializers []Initializer
}

type ServiceConfig struct {
	Store  local.Store
	Logger *zap.Logger
	// Defaults seed fields the stored blob does not carry
	Defaults     Settings
	Initializers []Initializer
}

func NewService(cfg *ServiceConfig) Service {
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

	return &service{
		store:        cfg.Store,
		logger:       logger.Named("settings"),
		current:      cfg.Defaults,
		defaults:     cfg.Defaults,
		initializers: append([]Initializer(nil), cfg.Initializers...),
	}
}

func (s *service) Load(ctx context.Context) Settings {
	loaded := s.read(ctx)

	s.mu.Lock()
	s.current = loaded
	s.mu.Unlock()

	s.initialize(ctx, loaded)
	return loaded
}

func (s *service) read(ctx context.Context) Settings {
	loaded := s.defaults

	data, err := s.store.Get(ctx, StorageKey)
	if err != nil {
		if !sheeterr.IsNotFound(err) {
			s.logger.Warn("failed to read settings", zap.Error(err))
		}
		return loaded
	}

	if err := json.Unmarshal(data, &loaded); err != nil {
		s.logger.Warn("failed to parse stored settings", zap.Error(err))
		return s.defaults
	}
	return loaded
}

func (s *service) Get() Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

func (s *service) IsConfigured() bool {
	return s.Get().Configured()
}

func (s *service) Update(ctx context.Context, next Settings) error {
	s.mu.Lock()
	s.current = next
	s.mu.Unlock()

	data, err := json.Marshal(next)
	if err != nil {
		return sheeterr.Wrap(err, "failed to encode settings")
	}

	saveErr := s.store.Set(ctx, StorageKey, data)
	if saveErr != nil {
		s.logger.Error("failed to save settings", zap.Error(saveErr))
	}

	s.initialize(ctx, next)

	if saveErr != nil {
		return sheeterr.Wrap(saveErr, "failed to save settings")
	}
	return nil
}

func (s *service) Register(init Initializer) {
	if init == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.initializers = append(s.initializers, init)
}

func (s *service) initialize(ctx context.Context, current Settings) {
	if !current.Configured() {
		return
	}

	s.mu.Lock()
	inits := append([]Initializer(nil), s.initializers...)
	s.mu.Unlock()

	for _, init := range inits {
		if err := init.Initialize(ctx, current); err != nil {
			s.logger.Warn("initializer failed", zap.Error(err))
		}
	}
}
