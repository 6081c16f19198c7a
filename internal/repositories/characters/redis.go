package characters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/KirkDiggler/character-sheet/internal/domain/character"
	sheeterr "github.com/KirkDiggler/character-sheet/internal/errors"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

// indexKey is the set of every stored character id
const indexKey = "characters"

// RedisRepoConfig holds configuration for the Redis repository
type RedisRepoConfig struct {
	Client       redis.UniversalClient
	TimeProvider TimeProvider
}

type redisRepo struct {
	client       redis.UniversalClient
	timeProvider TimeProvider
}

// NewRedisRepository creates a new Redis-backed character repository
func NewRedisRepository(cfg *RedisRepoConfig) Repository {
	if cfg == nil {
		panic("RedisRepoConfig cannot be nil")
	}
	if cfg.Client == nil {
		panic("Redis client cannot be nil")
	}
	timeProvider := cfg.TimeProvider
	if timeProvider == nil {
		timeProvider = utcClock{}
	}

	return &redisRepo{
		client:       cfg.Client,
		timeProvider: timeProvider,
	}
}

func validateCharacter(char *character.Character) error {
	if char == nil {
		return sheeterr.InvalidArgument("character cannot be nil")
	}
	if strings.TrimSpace(char.ID) == "" {
		return sheeterr.InvalidArgument("character ID is required")
	}
	return nil
}

func (r *redisRepo) Create(ctx context.Context, char *character.Character) error {
	if err := validateCharacter(char); err != nil {
		return err
	}

	exists, err := r.client.Exists(ctx, key(char.ID)).Result()
	if err != nil {
		return fmt.Errorf("failed to check character existence: %w", err)
	}
	if exists > 0 {
		return sheeterr.AlreadyExistsf("character with ID '%s' already exists", char.ID).
			WithMeta("character_id", char.ID)
	}

	now := r.timeProvider.Now()
	jsonData, err := json.Marshal(Data{Character: char, CreatedAt: now, UpdatedAt: now})
	if err != nil {
		return fmt.Errorf("failed to marshal character: %w", err)
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, key(char.ID), string(jsonData), 0)
	pipe.SAdd(ctx, indexKey, char.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to create character: %w", err)
	}

	return nil
}

func (r *redisRepo) getData(ctx context.Context, id string) (*Data, error) {
	if id == "" {
		return nil, sheeterr.InvalidArgument("character ID is required")
	}

	jsonData, err := r.client.Get(ctx, key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, sheeterr.NotFoundf("character with ID '%s' not found", id).
			WithMeta("character_id", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get character: %w", err)
	}

	var data Data
	if err := json.Unmarshal(jsonData, &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal character %s: %w", id, err)
	}
	if data.Character == nil {
		return nil, fmt.Errorf("character %s has no document", id)
	}
	return &data, nil
}

func (r *redisRepo) Get(ctx context.Context, id string) (*character.Character, error) {
	data, err := r.getData(ctx, id)
	if err != nil {
		return nil, err
	}
	return data.Character, nil
}

// List loads every indexed character concurrently. Index entries whose
// document is gone are skipped.
func (r *redisRepo) List(ctx context.Context) ([]*character.Character, error) {
	ids, err := r.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list character IDs: %w", err)
	}

	loaded := make([]*character.Character, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		g.Go(func() error {
			char, err := r.Get(gctx, id)
			if sheeterr.IsNotFound(err) {
				return nil
			}
			if err != nil {
				return fmt.Errorf("failed to get character %s: %w", id, err)
			}
			loaded[i] = char
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return compact(loaded), nil
}

func (r *redisRepo) Update(ctx context.Context, char *character.Character) error {
	if err := validateCharacter(char); err != nil {
		return err
	}

	existing, err := r.getData(ctx, char.ID)
	if err != nil {
		return err
	}

	jsonData, err := json.Marshal(Data{
		Character: char,
		CreatedAt: existing.CreatedAt,
		UpdatedAt: r.timeProvider.Now(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal character: %w", err)
	}

	if err := r.client.Set(ctx, key(char.ID), string(jsonData), 0).Err(); err != nil {
		return fmt.Errorf("failed to update character: %w", err)
	}
	return nil
}

func (r *redisRepo) Delete(ctx context.Context, id string) error {
	if id == "" {
		return sheeterr.InvalidArgument("character ID is required")
	}

	pipe := r.client.Pipeline()
	del := pipe.Del(ctx, key(id))
	pipe.SRem(ctx, indexKey, id)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete character: %w", err)
	}

	if del.Val() == 0 {
		return sheeterr.NotFoundf("character with ID '%s' not found", id).
			WithMeta("character_id", id)
	}
	return nil
}

// compact drops nil entries and orders the rest by name, then ID
func compact(chars []*character.Character) []*character.Character {
	out := make([]*character.Character, 0, len(chars))
	for _, c := range chars {
		if c != nil {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out
}
