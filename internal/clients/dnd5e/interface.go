package dnd5e

//go:generate mockgen -destination=mock/mock_client.go -package=mockdnd5e . Client

import (
	"context"

	"github.com/KirkDiggler/character-sheet/internal/domain/character"
)

// SpellRef names a spell in the API's listings
type SpellRef struct {
	Key  string
	Name string
}

type Client interface {
	GetSpell(ctx context.Context, key string) (*character.Spell, error)
	ListSpellsByClass(ctx context.Context, classKey string) ([]SpellRef, error)
	ListSpellsByClassAndLevel(ctx context.Context, classKey string, level int) ([]SpellRef, error)
}
