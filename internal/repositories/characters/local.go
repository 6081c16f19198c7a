package characters

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/KirkDiggler/character-sheet/internal/domain/character"
	sheeterr "github.com/KirkDiggler/character-sheet/internal/errors"
	"github.com/KirkDiggler/character-sheet/internal/storage/local"
)

// localIndexKey holds the JSON list of stored ids
const localIndexKey = "characters:index"

// LocalRepoConfig holds configuration for the device-local repository
type LocalRepoConfig struct {
	Store        local.Store
	TimeProvider TimeProvider
}

type localRepo struct {
	mu           sync.Mutex
	store        local.Store
	timeProvider TimeProvider
}

// NewLocalRepository keeps characters in the on-device key/value store
func NewLocalRepository(cfg *LocalRepoConfig) Repository {
	if cfg == nil {
		panic("LocalRepoConfig cannot be nil")
	}
	if cfg.Store == nil {
		panic("local store cannot be nil")
	}
	timeProvider := cfg.TimeProvider
	if timeProvider == nil {
		timeProvider = utcClock{}
	}

	return &localRepo{
		store:        cfg.Store,
		timeProvider: timeProvider,
	}
}

func (r *localRepo) index(ctx context.Context) ([]string, error) {
	raw, err := r.store.Get(ctx, localIndexKey)
	if sheeterr.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read character index: %w", err)
	}

	var ids []string
	if err := json.Unmarshal(raw, &ids); err != nil {
		return nil, fmt.Errorf("failed to parse character index: %w", err)
	}
	return ids, nil
}

func (r *localRepo) writeIndex(ctx context.Context, ids []string) error {
	raw, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("failed to marshal character index: %w", err)
	}
	if err := r.store.Set(ctx, localIndexKey, raw); err != nil {
		return fmt.Errorf("failed to write character index: %w", err)
	}
	return nil
}

func (r *localRepo) getData(ctx context.Context, id string) (*Data, error) {
	if strings.TrimSpace(id) == "" {
		return nil, sheeterr.InvalidArgument("character ID is required")
	}

	raw, err := r.store.Get(ctx, key(id))
	if sheeterr.IsNotFound(err) {
		return nil, sheeterr.NotFoundf("character with ID '%s' not found", id).
			WithMeta("character_id", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get character: %w", err)
	}

	var data Data
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal character %s: %w", id, err)
	}
	if data.Character == nil {
		return nil, fmt.Errorf("character %s has no document", id)
	}
	return &data, nil
}

func (r *localRepo) put(ctx context.Context, data Data) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal character: %w", err)
	}
	if err := r.store.Set(ctx, key(data.Character.ID), raw); err != nil {
		return fmt.Errorf("failed to store character: %w", err)
	}
	return nil
}

func (r *localRepo) Create(ctx context.Context, char *character.Character) error {
	if err := validateCharacter(char); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.getData(ctx, char.ID)
	if err == nil {
		return sheeterr.AlreadyExistsf("character with ID '%s' already exists", char.ID).
			WithMeta("character_id", char.ID)
	}
	if !sheeterr.IsNotFound(err) {
		return err
	}

	ids, err := r.index(ctx)
	if err != nil {
		return err
	}

	now := r.timeProvider.Now()
	if err := r.put(ctx, Data{Character: char, CreatedAt: now, UpdatedAt: now}); err != nil {
		return err
	}
	if !slices.Contains(ids, char.ID) {
		ids = append(ids, char.ID)
	}
	return r.writeIndex(ctx, ids)
}

func (r *localRepo) Get(ctx context.Context, id string) (*character.Character, error) {
	data, err := r.getData(ctx, id)
	if err != nil {
		return nil, err
	}
	return data.Character, nil
}

func (r *localRepo) List(ctx context.Context) ([]*character.Character, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ids, err := r.index(ctx)
	if err != nil {
		return nil, err
	}

	loaded := make([]*character.Character, 0, len(ids))
	for _, id := range ids {
		char, err := r.Get(ctx, id)
		if sheeterr.IsNotFound(err) {
			continue
		}
		if err != nil {
			return nil, err
		}
		loaded = append(loaded, char)
	}
	return compact(loaded), nil
}

func (r *localRepo) Update(ctx context.Context, char *character.Character) error {
	if err := validateCharacter(char); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	existing, err := r.getData(ctx, char.ID)
	if err != nil {
		return err
	}
	return r.put(ctx, Data{
		Character: char,
		CreatedAt: existing.CreatedAt,
		UpdatedAt: r.timeProvider.Now(),
	})
}

func (r *localRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := r.getData(ctx, id); err != nil {
		return err
	}
	if err := r.store.Delete(ctx, key(id)); err != nil {
		return fmt.Errorf("failed to delete character: %w", err)
	}

	ids, err := r.index(ctx)
	if err != nil {
		return err
	}
	return r.writeIndex(ctx, slices.DeleteFunc(ids, func(s string) bool { return s == id }))
}
