package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/KirkDiggler/character-sheet/internal/config"
	"github.com/KirkDiggler/character-sheet/internal/domain/rules"
	"github.com/KirkDiggler/character-sheet/internal/observability"
	"github.com/KirkDiggler/character-sheet/internal/repositories/characters"
	"github.com/KirkDiggler/character-sheet/internal/services"
	"github.com/KirkDiggler/character-sheet/internal/services/settings"
	"github.com/KirkDiggler/character-sheet/internal/storage/local"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ruleSet, err := rules.Load(cfg.Rules.Path)
	if err != nil {
		logger.Fatal("failed to load rules", zap.Error(err))
	}

	store, err := local.OpenSQLite(cfg.Storage.Path)
	if err != nil {
		logger.Fatal("failed to open local storage", zap.String("path", cfg.Storage.Path), zap.Error(err))
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Warn("failed to close local storage", zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	providerConfig := &services.ProviderConfig{
		Store: store,
		Rules: ruleSet,
		Defaults: settings.Settings{
			SupabaseURL:        cfg.Backend.URL,
			SupabaseServiceKey: cfg.Backend.ServiceKey,
			OpenAIAPIKey:       cfg.OpenAI.APIKey,
		},
		Logger: logger,
	}

	if redisClient := connectRedis(ctx, cfg.Redis.URL, logger); redisClient != nil {
		defer func() { _ = redisClient.Close() }()
		providerConfig.CharacterRepository = characters.NewRedisRepository(&characters.RedisRepoConfig{
			Client: redisClient,
		})
	}

	provider := services.NewProvider(providerConfig)
	defer provider.Close()

	provider.Settings.Load(ctx)

	a := &app{provider: provider, out: os.Stdout, in: os.Stdin}
	if err := a.run(ctx, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// connectRedis returns nil, and characters stay on the device, when no URL
// is set or Redis cannot be reached
func connectRedis(ctx context.Context, url string, logger *zap.Logger) *redis.Client {
	if url == "" {
		logger.Debug("no REDIS_URL set, using local storage for characters")
		return nil
	}

	opts, err := redis.ParseURL(url)
	if err != nil {
		logger.Warn("failed to parse redis url, falling back to local storage", zap.Error(err))
		return nil
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		logger.Warn("failed to connect to redis, falling back to local storage", zap.Error(err))
		return nil
	}

	logger.Info("using redis for characters", zap.String("addr", opts.Addr))
	return client
}
