// Package sheet holds the character being edited and exposes every change
// to it as a named transition. Transitions only touch memory; Save writes
// the character through the repository.
package sheet

import (
	"context"
	"errors"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/KirkDiggler/character-sheet/internal/dice"
	"github.com/KirkDiggler/character-sheet/internal/domain/calculators"
	"github.com/KirkDiggler/character-sheet/internal/domain/character"
	"github.com/KirkDiggler/character-sheet/internal/domain/equipment"
	"github.com/KirkDiggler/character-sheet/internal/domain/rules"
	sheeterr "github.com/KirkDiggler/character-sheet/internal/errors"
	"github.com/KirkDiggler/character-sheet/internal/events"
	"github.com/KirkDiggler/character-sheet/internal/repositories/characters"
	"github.com/KirkDiggler/character-sheet/internal/uuid"
)

// ErrNoCharacter is returned by every transition before New, Load or Import
var ErrNoCharacter = errors.New("no character loaded")

// SpellCatalog looks up full spell records by name
type SpellCatalog interface {
	Get(ctx context.Context, name string) (*character.Spell, error)
}

type Service interface {
	New(ctx context.Context, name string) (*character.Character, error)
	Load(ctx context.Context, id string) (*character.Character, error)
	// Current returns a copy of the character being edited
	Current() (*character.Character, error)
	Save(ctx context.Context) error
	Export() ([]byte, error)
	Import(ctx context.Context, data []byte) (*character.Character, error)
	List(ctx context.Context) ([]*character.Character, error)
	Delete(ctx context.Context, id string) error
	Summary() (*calculators.Summary, error)

	AddWeapon(w *equipment.Weapon) (string, error)
	AddArmor(a *equipment.Armor) (string, error)
	AddShield(sh *equipment.Shield) (string, error)
	AddEquipment(e *equipment.Equipment) (string, error)
	AddConsumable(item *equipment.Consumable) (string, error)
	RemoveItem(id string) error

	EquipArmor(id string) error
	UnequipArmor(id string) error
	EquipShield(id string) error
	UnequipShield(id string) error
	ToggleWeapon(id string) (bool, error)
	ToggleEquipment(id string) (bool, error)
	Attune(id string) error
	Unattune(id string) error

	UseConsumable(id string) error
	UseCharge(id string) error
	Recharge(id string) error
	DamageShield(id string, amount int) (int, error)
	RepairShield(id string, amount int) (int, error)
	AddGold(amount int) error
	SpendGold(amount int) error

	EarnPoints(amount int) error
	// UpgradeSkill raises "dodge", "parry" or a weapon class like
	// "2H/Swing" by one level and returns the new level
	UpgradeSkill(skill string) (int, error)

	LearnSpell(ctx context.Context, name string) (*character.Spell, error)
	ForgetSpell(name string) error
	AddNote(title, body string) (*character.Note, error)
	RemoveNote(id string) error

	RollDamage(weaponID string) (*dice.RollResult, error)
}

type service struct {
	mu      sync.Mutex
	repo    characters.Repository
	rules   *rules.Rules
	calc    *calculators.StatCalculator
	roller  dice.Roller
	ids     uuid.Generator
	catalog SpellCatalog
	bus     *events.Bus
	logger  *zap.Logger

	current *character.Character
	// stored is false until the current character exists in the repository
	stored bool
}

type ServiceConfig struct {
	Repository characters.Repository
	// Rules defaults to the built-in tables
	Rules  *rules.Rules
	Roller dice.Roller
	IDs    uuid.Generator
	// Catalog is optional; without it LearnSpell records the name only
	Catalog SpellCatalog
	// Events receives every change after it happens; optional
	Events *events.Bus
	Logger *zap.Logger
}

func NewService(cfg *ServiceConfig) Service {
	if cfg == nil {
		panic("cfg cannot be nil")
	}
	if cfg.Repository == nil {
		panic("repository cannot be nil")
	}

	svc := &service{
		repo:    cfg.Repository,
		rules:   cfg.Rules,
		roller:  cfg.Roller,
		ids:     cfg.IDs,
		catalog: cfg.Catalog,
		bus:     cfg.Events,
		logger:  cfg.Logger,
	}
	if svc.rules == nil {
		svc.rules = rules.Default()
	}
	if svc.roller == nil {
		svc.roller = dice.NewRandomRoller()
	}
	if svc.ids == nil {
		svc.ids = uuid.NewGoogleUUIDGenerator()
	}
	if svc.logger == nil {
		svc.logger = zap.NewNop()
	}
	svc.logger = svc.logger.Named("sheet")
	svc.calc = calculators.NewStatCalculator(svc.rules.Armor)

	return svc
}

func noCharacter() error {
	return sheeterr.WrapWithCode(ErrNoCharacter, sheeterr.CodeNotFound, "no character loaded")
}

func (s *service) New(_ context.Context, name string) (*character.Character, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, sheeterr.InvalidArgument("character name is required")
	}

	char := character.New(s.ids.New(), name)

	s.mu.Lock()
	s.current, s.stored = char, false
	s.mu.Unlock()

	s.logger.Info("created character", zap.String("character_id", char.ID))
	s.emit(events.CharacterCreated, char.ID, "", nil)
	return char.Clone()
}

func (s *service) Load(ctx context.Context, id string) (*character.Character, error) {
	char, err := s.repo.Get(ctx, id)
	if err != nil {
		s.logger.Warn("failed to load character", zap.String("character_id", id), zap.Error(err))
		return nil, err
	}
	if char == nil {
		return nil, sheeterr.NotFoundf("character %s not found", id).WithMeta("character_id", id)
	}

	s.mu.Lock()
	s.current, s.stored = char, true
	s.mu.Unlock()

	s.emit(events.CharacterLoaded, id, "", nil)
	return char.Clone()
}

func (s *service) Current() (*character.Character, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return nil, noCharacter()
	}
	return s.current.Clone()
}

func (s *service) Save(ctx context.Context) error {
	s.mu.Lock()
	if s.current == nil {
		s.mu.Unlock()
		return noCharacter()
	}

	id := s.current.ID
	err := s.write(ctx, s.current)
	if err == nil {
		s.stored = true
	}
	s.mu.Unlock()

	if err != nil {
		s.logger.Error("failed to save character",
			zap.String("character_id", id),
			zap.Error(err))
		return err
	}

	s.emit(events.CharacterSaved, id, "", nil)
	return nil
}

func (s *service) write(ctx context.Context, char *character.Character) error {
	if s.stored {
		err := s.repo.Update(ctx, char)
		if !sheeterr.IsNotFound(err) {
			return err
		}
		// deleted underneath us; store it again
	}

	err := s.repo.Create(ctx, char)
	if sheeterr.IsAlreadyExists(err) {
		return s.repo.Update(ctx, char)
	}
	return err
}

func (s *service) Export() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return nil, noCharacter()
	}
	return character.Export(s.current)
}

func (s *service) Import(_ context.Context, data []byte) (*character.Character, error) {
	char, err := character.Import(data)
	if err != nil {
		s.logger.Warn("rejected character import", zap.Error(err))
		return nil, err
	}

	s.mu.Lock()
	s.current, s.stored = char, false
	s.mu.Unlock()

	s.logger.Info("imported character", zap.String("character_id", char.ID))
	s.emit(events.CharacterImported, char.ID, "", nil)
	return char.Clone()
}

func (s *service) List(ctx context.Context) ([]*character.Character, error) {
	return s.repo.List(ctx)
}

func (s *service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.mu.Lock()
	if s.current != nil && s.current.ID == id {
		s.stored = false
	}
	s.mu.Unlock()

	s.emit(events.CharacterDeleted, id, "", nil)
	return nil
}

func (s *service) Summary() (*calculators.Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return nil, noCharacter()
	}
	return s.calc.Summarize(s.current), nil
}

// apply runs one transition under the lock. Domain methods leave the
// character untouched when they reject. Listeners run after the lock is
// released.
func (s *service) apply(op string, fn func(c *character.Character) error) error {
	s.mu.Lock()
	if s.current == nil {
		s.mu.Unlock()
		return noCharacter()
	}
	id := s.current.ID
	err := fn(s.current)
	s.mu.Unlock()

	if err != nil {
		s.logger.Debug("transition rejected", zap.String("op", op), zap.Error(err))
		s.emit(events.TransitionRejected, id, op, err)
		return err
	}
	s.emit(events.TransitionApplied, id, op, nil)
	return nil
}

// emit publishes to the bus. A failing listener is logged and never undoes
// the change.
func (s *service) emit(eventType events.EventType, characterID, op string, cause error) {
	if s.bus == nil {
		return
	}
	err := s.bus.Emit(&events.Event{Type: eventType, CharacterID: characterID, Op: op, Err: cause})
	if err != nil {
		s.logger.Warn("event listener failed",
			zap.String("event", string(eventType)),
			zap.String("character_id", characterID),
			zap.Error(err))
	}
}
