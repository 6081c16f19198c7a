// Package skills answers free-text questions like "sneak past guards" with
// the closest described skills.
package skills

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/KirkDiggler/character-sheet/internal/clients/embeddings"
	sheeterr "github.com/KirkDiggler/character-sheet/internal/errors"
	skillsrepo "github.com/KirkDiggler/character-sheet/internal/repositories/skills"
	"github.com/KirkDiggler/character-sheet/internal/services/settings"
)

// DefaultLimit applies when Lookup is asked for zero results
const DefaultLimit = 5

type Service interface {
	settings.Initializer
	Lookup(ctx context.Context, query string, limit int) ([]*skillsrepo.Skill, error)
	// Index embeds the skill description and stores it for lookups
	Index(ctx context.Context, skill *skillsrepo.Skill) error
	Ready() bool
}

type EmbedderFactory func(apiKey string) (embeddings.Embedder, error)

type RepositoryFactory func(ctx context.Context) (skillsrepo.Repository, error)

type service struct {
	mu          sync.RWMutex
	newEmbedder EmbedderFactory
	newRepo     RepositoryFactory
	logger      *zap.Logger

	apiKey   string
	embedder embeddings.Embedder
	repo     skillsrepo.Repository
}

type ServiceConfig struct {
	// NewEmbedder defaults to the OpenAI client
	NewEmbedder EmbedderFactory
	// NewRepository is required; it usually opens the repository on the
	// backend pool
	NewRepository RepositoryFactory
	Logger        *zap.Logger
}

func NewService(cfg *ServiceConfig) Service {
	if cfg == nil {
		panic("cfg cannot be nil")
	}
	if cfg.NewRepository == nil {
		panic("repository factory cannot be nil")
	}

	svc := &service{
		newEmbedder: cfg.NewEmbedder,
		newRepo:     cfg.NewRepository,
		logger:      cfg.Logger,
	}
	if svc.newEmbedder == nil {
		svc.newEmbedder = func(apiKey string) (embeddings.Embedder, error) {
			return embeddings.New(&embeddings.Config{APIKey: apiKey, MaxRetries: 2})
		}
	}
	if svc.logger == nil {
		svc.logger = zap.NewNop()
	}
	svc.logger = svc.logger.Named("skills")

	return svc
}

// Initialize builds the embedder and repository. A missing OpenAI key leaves
// the service unavailable without failing.
func (s *service) Initialize(ctx context.Context, cfg settings.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cfg.OpenAIAPIKey == "" {
		s.logger.Info("openai api key not set, skill lookup disabled")
		s.apiKey, s.embedder = "", nil
		return nil
	}

	if s.embedder == nil || s.apiKey != cfg.OpenAIAPIKey {
		embedder, err := s.newEmbedder(cfg.OpenAIAPIKey)
		if err != nil {
			return sheeterr.Wrap(err, "failed to create embedder")
		}
		s.apiKey, s.embedder = cfg.OpenAIAPIKey, embedder
	}

	repo, err := s.newRepo(ctx)
	if err != nil {
		return sheeterr.Wrap(err, "failed to open skills repository")
	}
	s.repo = repo

	return nil
}

func (s *service) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.embedder != nil && s.repo != nil
}

func (s *service) clients() (embeddings.Embedder, skillsrepo.Repository, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.embedder == nil || s.repo == nil {
		return nil, nil, sheeterr.Unavailable("skill lookup is not configured")
	}
	return s.embedder, s.repo, nil
}

func (s *service) Lookup(ctx context.Context, query string, limit int) ([]*skillsrepo.Skill, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, sheeterr.InvalidArgument("query is required")
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	embedder, repo, err := s.clients()
	if err != nil {
		return nil, err
	}

	vector, err := embedder.Embed(ctx, query)
	if err != nil {
		s.logger.Warn("failed to embed query", zap.String("query", query), zap.Error(err))
		return nil, sheeterr.Wrap(err, "failed to embed query")
	}

	found, err := repo.Nearest(ctx, vector, limit)
	if err != nil {
		return nil, sheeterr.Wrap(err, "failed to search skills").WithMeta("query", query)
	}
	return found, nil
}

func (s *service) Index(ctx context.Context, skill *skillsrepo.Skill) error {
	if skill == nil || strings.TrimSpace(skill.Name) == "" {
		return sheeterr.InvalidArgument("skill name is required")
	}

	embedder, repo, err := s.clients()
	if err != nil {
		return err
	}

	text := skill.Name
	if skill.Description != "" {
		text += ": " + skill.Description
	}

	vector, err := embedder.Embed(ctx, text)
	if err != nil {
		return sheeterr.Wrapf(err, "failed to embed skill %s", skill.Name)
	}

	if err := repo.Upsert(ctx, skill, vector); err != nil {
		return sheeterr.Wrapf(err, "failed to store skill %s", skill.Name)
	}
	return nil
}
