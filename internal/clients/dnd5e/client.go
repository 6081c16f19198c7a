package dnd5e

import (
	"context"
	"net/http"

	"github.com/fadedpez/dnd5e-api/clients/dnd5e"
	apiEntities "github.com/fadedpez/dnd5e-api/entities"

	"github.com/KirkDiggler/character-sheet/internal/domain/character"
	sheeterr "github.com/KirkDiggler/character-sheet/internal/errors"
)

// BaseURL is the public API the underlying client talks to
const BaseURL = "https://www.dnd5eapi.co/api"

// the upstream client does not take a context, so calls only check it before
// going out
type client struct {
	client dnd5e.Interface
}

type Config struct {
	HttpClient *http.Client
}

func New(cfg *Config) (Client, error) {
	if cfg == nil {
		return nil, sheeterr.InvalidArgument("dnd5e: config is required")
	}

	dndClient, err := dnd5e.NewDND5eAPI(&dnd5e.DND5eAPIConfig{
		Client: cfg.HttpClient,
	})
	if err != nil {
		return nil, sheeterr.Wrap(err, "dnd5e: failed to create client")
	}

	return NewWithAPI(dndClient), nil
}

// NewWithAPI wraps an existing upstream client
func NewWithAPI(api dnd5e.Interface) Client {
	return &client{client: api}
}

func (c *client) GetSpell(ctx context.Context, key string) (*character.Spell, error) {
	if key == "" {
		return nil, sheeterr.InvalidArgument("spell key is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	apiSpell, err := c.client.GetSpell(key)
	if err != nil {
		return nil, sheeterr.Wrapf(err, "failed to get spell %s", key).
			WithMeta("spell_key", key)
	}
	if apiSpell == nil {
		return nil, sheeterr.NotFoundf("spell %s not found", key).
			WithMeta("spell_key", key)
	}

	return convertSpell(apiSpell), nil
}

func (c *client) ListSpellsByClass(ctx context.Context, classKey string) ([]SpellRef, error) {
	return c.listSpells(ctx, &dnd5e.ListSpellsInput{Class: classKey})
}

func (c *client) ListSpellsByClassAndLevel(ctx context.Context, classKey string, level int) ([]SpellRef, error) {
	if level < 0 || level > 9 {
		return nil, sheeterr.InvalidArgumentf("spell level %d out of range", level)
	}
	return c.listSpells(ctx, &dnd5e.ListSpellsInput{Class: classKey, Level: &level})
}

func (c *client) listSpells(ctx context.Context, input *dnd5e.ListSpellsInput) ([]SpellRef, error) {
	if input.Class == "" {
		return nil, sheeterr.InvalidArgument("class key is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	refs, err := c.client.ListSpells(input)
	if err != nil {
		return nil, sheeterr.Wrapf(err, "failed to list spells for class %s", input.Class).
			WithMeta("class_key", input.Class)
	}

	return convertSpellReferences(refs), nil
}

func convertSpellReferences(refs []*apiEntities.ReferenceItem) []SpellRef {
	result := make([]SpellRef, 0, len(refs))
	for _, ref := range refs {
		if ref == nil {
			continue
		}
		result = append(result, SpellRef{Key: ref.Key, Name: ref.Name})
	}
	return result
}

func convertSpell(apiSpell *apiEntities.Spell) *character.Spell {
	spell := &character.Spell{
		Name:          apiSpell.Name,
		Level:         apiSpell.SpellLevel,
		CastingTime:   apiSpell.CastingTime,
		Range:         apiSpell.Range,
		Duration:      apiSpell.Duration,
		Concentration: apiSpell.Concentration,
		Ritual:        apiSpell.Ritual,
	}

	if apiSpell.SpellSchool != nil {
		spell.School = apiSpell.SpellSchool.Name
	}

	for _, class := range apiSpell.SpellClasses {
		if class != nil && class.Name != "" {
			spell.Classes = append(spell.Classes, class.Name)
		}
	}

	return spell
}
