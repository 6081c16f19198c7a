package sheet_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/character-sheet/internal/dice"
	"github.com/KirkDiggler/character-sheet/internal/domain/character"
	"github.com/KirkDiggler/character-sheet/internal/domain/equipment"
	sheeterr "github.com/KirkDiggler/character-sheet/internal/errors"
	"github.com/KirkDiggler/character-sheet/internal/events"
	"github.com/KirkDiggler/character-sheet/internal/repositories/characters"
	mockcharacters "github.com/KirkDiggler/character-sheet/internal/repositories/characters/mock"
	mockspells "github.com/KirkDiggler/character-sheet/internal/repositories/spells/mock"
	"github.com/KirkDiggler/character-sheet/internal/services/sheet"
	"github.com/KirkDiggler/character-sheet/internal/storage/local"
	"github.com/KirkDiggler/character-sheet/internal/uuid"
)

type SheetServiceTestSuite struct {
	suite.Suite
	ctx    context.Context
	repo   characters.Repository
	roller *dice.ScriptedRoller
	svc    sheet.Service
}

func (s *SheetServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.repo = characters.NewLocalRepository(&characters.LocalRepoConfig{Store: local.NewMemoryStore()})
	s.roller = dice.NewScriptedRoller()
	s.svc = sheet.NewService(&sheet.ServiceConfig{
		Repository: s.repo,
		Roller:     s.roller,
		IDs:        uuid.Sequence("id"),
	})
}

func TestSheetServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SheetServiceTestSuite))
}

func (s *SheetServiceTestSuite) newCharacter() *character.Character {
	char, err := s.svc.New(s.ctx, "Wren")
	s.Require().NoError(err)
	return char
}

func (s *SheetServiceTestSuite) TestTransitionsRequireCharacter() {
	_, err := s.svc.Current()
	s.ErrorIs(err, sheet.ErrNoCharacter)
	s.True(sheeterr.IsNotFound(err))

	s.ErrorIs(s.svc.Attune("x"), sheet.ErrNoCharacter)
	s.ErrorIs(s.svc.Save(s.ctx), sheet.ErrNoCharacter)

	_, err = s.svc.Export()
	s.ErrorIs(err, sheet.ErrNoCharacter)
}

func (s *SheetServiceTestSuite) TestNew() {
	char := s.newCharacter()
	s.Equal("id-1", char.ID)
	s.Equal("Wren", char.Name)

	_, err := s.svc.New(s.ctx, "  ")
	s.True(sheeterr.IsInvalidArgument(err))
}

func (s *SheetServiceTestSuite) TestSaveAndLoad() {
	char := s.newCharacter()
	s.Require().NoError(s.svc.AddGold(25))
	s.Require().NoError(s.svc.Save(s.ctx))

	s.Require().NoError(s.svc.AddGold(5))
	s.Require().NoError(s.svc.Save(s.ctx))

	stored, err := s.repo.Get(s.ctx, char.ID)
	s.Require().NoError(err)
	s.Equal(30, stored.Inventory.Gold)

	_, err = s.svc.New(s.ctx, "Ash")
	s.Require().NoError(err)

	loaded, err := s.svc.Load(s.ctx, char.ID)
	s.Require().NoError(err)
	s.Equal(30, loaded.Inventory.Gold)

	list, err := s.svc.List(s.ctx)
	s.Require().NoError(err)
	s.Len(list, 1)
}

func (s *SheetServiceTestSuite) TestCurrentIsACopy() {
	s.newCharacter()

	char, err := s.svc.Current()
	s.Require().NoError(err)
	char.Inventory.Gold = 1000

	again, err := s.svc.Current()
	s.Require().NoError(err)
	s.Zero(again.Inventory.Gold)
}

func (s *SheetServiceTestSuite) TestAddAssignsIDs() {
	s.newCharacter()

	weaponID, err := s.svc.AddWeapon(&equipment.Weapon{Name: "Longsword", DiceType: equipment.DiceD8, DiceCount: 1})
	s.Require().NoError(err)
	s.Equal("id-2", weaponID)

	shieldID, err := s.svc.AddShield(&equipment.Shield{ID: "kite", Name: "Kite Shield", Durability: 5, MaxDurability: 5})
	s.Require().NoError(err)
	s.Equal("kite", shieldID)

	char, err := s.svc.Current()
	s.Require().NoError(err)
	s.NotNil(char.Inventory.Find(weaponID))
	s.NotNil(char.Inventory.Find("kite"))

	s.Require().NoError(s.svc.RemoveItem(weaponID))
	s.True(sheeterr.IsNotFound(s.svc.RemoveItem(weaponID)))
}

func (s *SheetServiceTestSuite) TestAttunementCap() {
	s.newCharacter()
	var ids []string
	for _, name := range []string{"Ring", "Amulet", "Cloak", "Boots"} {
		id, err := s.svc.AddEquipment(&equipment.Equipment{Name: name, Quantity: 1, RequiresAttunement: true})
		s.Require().NoError(err)
		ids = append(ids, id)
	}

	for _, id := range ids[:3] {
		s.Require().NoError(s.svc.Attune(id))
	}

	err := s.svc.Attune(ids[3])
	s.ErrorIs(err, character.ErrAttunementLimit)
	s.True(sheeterr.IsValidation(err))

	summary, err := s.svc.Summary()
	s.Require().NoError(err)
	s.Equal(3, summary.Attuned)

	s.Require().NoError(s.svc.Unattune(ids[0]))
	s.NoError(s.svc.Attune(ids[3]))
}

func (s *SheetServiceTestSuite) TestUseConsumable_RejectedLeavesState() {
	s.newCharacter()
	id, err := s.svc.AddConsumable(&equipment.Consumable{
		Name:         "Cursed Draught",
		Quantity:     1,
		StatEffected: equipment.StatHitPoints,
		StatModifier: -10,
	})
	s.Require().NoError(err)

	err = s.svc.UseConsumable(id)
	s.True(sheeterr.IsValidation(err))

	char, err := s.svc.Current()
	s.Require().NoError(err)
	s.Equal(1, char.Inventory.Find(id).(*equipment.Consumable).Quantity)
}

func (s *SheetServiceTestSuite) TestShieldDamageRepair() {
	s.newCharacter()
	_, err := s.svc.AddShield(&equipment.Shield{ID: "buckler", Name: "Buckler", ParryBonus: 1, Durability: 6, MaxDurability: 6})
	s.Require().NoError(err)

	d, err := s.svc.DamageShield("buckler", 4)
	s.Require().NoError(err)
	s.Equal(2, d)

	d, err = s.svc.RepairShield("buckler", 10)
	s.Require().NoError(err)
	s.Equal(6, d)
}

func (s *SheetServiceTestSuite) TestEquipAndSummary() {
	s.newCharacter()
	armorID, err := s.svc.AddArmor(&equipment.Armor{Name: "Chain", Category: equipment.ArmorCategoryMedium})
	s.Require().NoError(err)
	s.Require().NoError(s.svc.EquipArmor(armorID))

	weaponID, err := s.svc.AddWeapon(&equipment.Weapon{Name: "Axe", DiceType: equipment.DiceD8, DiceCount: 1, AttackBonus: 1})
	s.Require().NoError(err)
	equipped, err := s.svc.ToggleWeapon(weaponID)
	s.Require().NoError(err)
	s.True(equipped)

	summary, err := s.svc.Summary()
	s.Require().NoError(err)
	s.Equal(3, summary.DamageReduction)
	s.Equal("d8", summary.DamageReductionDie)
	s.Require().Len(summary.Weapons, 1)
	s.Equal("+1", summary.Weapons[0].AttackBonus)
	s.Equal("1d8", summary.Weapons[0].Dice)

	s.Require().NoError(s.svc.UnequipArmor(armorID))
	summary, err = s.svc.Summary()
	s.Require().NoError(err)
	s.Zero(summary.DamageReduction)
}

func (s *SheetServiceTestSuite) TestUpgradeSkill() {
	s.newCharacter()
	s.Require().NoError(s.svc.EarnPoints(3))

	level, err := s.svc.UpgradeSkill("dodge")
	s.Require().NoError(err)
	s.Equal(1, level)

	level, err = s.svc.UpgradeSkill("dodge")
	s.Require().NoError(err)
	s.Equal(2, level)

	_, err = s.svc.UpgradeSkill("dodge")
	s.ErrorIs(err, character.ErrInsufficientPoints)

	_, err = s.svc.UpgradeSkill("juggling")
	s.True(sheeterr.IsInvalidArgument(err))

	char, err := s.svc.Current()
	s.Require().NoError(err)
	s.Equal(2, char.Skills.Dodge)
	s.Equal(3, char.Base.BuildPoints.Spent)
}

func (s *SheetServiceTestSuite) TestRollDamage() {
	s.newCharacter()
	weaponID, err := s.svc.AddWeapon(&equipment.Weapon{Name: "Greatsword", DiceType: equipment.DiceD6, DiceCount: 2, DamageBonus: 1})
	s.Require().NoError(err)

	s.roller.SetRolls(3, 5)
	result, err := s.svc.RollDamage(weaponID)
	s.Require().NoError(err)
	s.Equal(9, result.Total)

	_, err = s.svc.RollDamage("missing")
	s.True(sheeterr.IsNotFound(err))
}

func (s *SheetServiceTestSuite) TestNotesAndSpells() {
	s.newCharacter()

	note, err := s.svc.AddNote("Debts", "Owes the ferryman 3 gold")
	s.Require().NoError(err)
	s.NotEmpty(note.ID)

	_, err = s.svc.AddNote("", " ")
	s.True(sheeterr.IsInvalidArgument(err))

	spell, err := s.svc.LearnSpell(s.ctx, "Light")
	s.Require().NoError(err)
	s.Equal("Light", spell.Name)

	_, err = s.svc.LearnSpell(s.ctx, "light")
	s.True(sheeterr.IsAlreadyExists(err))

	s.Require().NoError(s.svc.ForgetSpell("LIGHT"))
	s.Require().NoError(s.svc.RemoveNote(note.ID))

	char, err := s.svc.Current()
	s.Require().NoError(err)
	s.Empty(char.Notes)
	s.Empty(char.Magic.Spells)
}

func (s *SheetServiceTestSuite) TestExportImport() {
	s.newCharacter()
	_, err := s.svc.AddWeapon(&equipment.Weapon{Name: "Dagger", DiceType: equipment.DiceD4, DiceCount: 1})
	s.Require().NoError(err)
	s.Require().NoError(s.svc.AddGold(12))

	before, err := s.svc.Current()
	s.Require().NoError(err)
	data, err := s.svc.Export()
	s.Require().NoError(err)

	_, err = s.svc.New(s.ctx, "Other")
	s.Require().NoError(err)

	imported, err := s.svc.Import(s.ctx, data)
	s.Require().NoError(err)
	s.Equal(before, imported)

	s.Require().NoError(s.svc.Save(s.ctx))
	stored, err := s.repo.Get(s.ctx, before.ID)
	s.Require().NoError(err)
	s.Equal(before, stored)
}

func (s *SheetServiceTestSuite) TestImport_InvalidKeepsCurrent() {
	char := s.newCharacter()

	_, err := s.svc.Import(s.ctx, []byte(`{"id": "x", "inventory": `))
	s.True(sheeterr.IsInvalidArgument(err))

	current, err := s.svc.Current()
	s.Require().NoError(err)
	s.Equal(char.ID, current.ID)
}

func (s *SheetServiceTestSuite) TestDeleteThenSaveRecreates() {
	char := s.newCharacter()
	s.Require().NoError(s.svc.Save(s.ctx))
	s.Require().NoError(s.svc.Delete(s.ctx, char.ID))

	_, err := s.repo.Get(s.ctx, char.ID)
	s.True(sheeterr.IsNotFound(err))

	s.Require().NoError(s.svc.Save(s.ctx))
	_, err = s.repo.Get(s.ctx, char.ID)
	s.NoError(err)
}

func TestService_SaveFailureKeepsState(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mockcharacters.NewMockRepository(ctrl)
	svc := sheet.NewService(&sheet.ServiceConfig{Repository: repo, IDs: uuid.Sequence("c")})
	ctx := context.Background()

	_, err := svc.New(ctx, "Wren")
	if err != nil {
		t.Fatal(err)
	}
	if err := svc.AddGold(7); err != nil {
		t.Fatal(err)
	}

	repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(sheeterr.Unavailable("redis down"))
	if err := svc.Save(ctx); !sheeterr.IsUnavailable(err) {
		t.Fatalf("Save() = %v, want unavailable", err)
	}

	char, err := svc.Current()
	if err != nil || char.Inventory.Gold != 7 {
		t.Fatalf("Current() = %+v, %v; want gold 7 kept", char, err)
	}
}

func TestService_LearnSpellFromCatalog(t *testing.T) {
	ctrl := gomock.NewController(t)
	catalog := mockspells.NewMockRepository(ctrl)
	svc := sheet.NewService(&sheet.ServiceConfig{
		Repository: characters.NewLocalRepository(&characters.LocalRepoConfig{Store: local.NewMemoryStore()}),
		Catalog:    catalog,
	})
	ctx := context.Background()
	if _, err := svc.New(ctx, "Wren"); err != nil {
		t.Fatal(err)
	}

	fireball := &character.Spell{Name: "Fireball", Level: 3, School: "Evocation"}
	catalog.EXPECT().Get(gomock.Any(), "Fireball").Return(fireball, nil)
	catalog.EXPECT().Get(gomock.Any(), "Wish").Return(nil, sheeterr.NotFound("spell Wish not found"))
	catalog.EXPECT().Get(gomock.Any(), "Light").Return(nil, errors.New("connection refused"))

	got, err := svc.LearnSpell(ctx, "Fireball")
	if err != nil || got.Level != 3 {
		t.Fatalf("LearnSpell(Fireball) = %+v, %v", got, err)
	}
	if _, err := svc.LearnSpell(ctx, "Wish"); !sheeterr.IsNotFound(err) {
		t.Fatalf("LearnSpell(Wish) = %v, want not found", err)
	}
	got, err = svc.LearnSpell(ctx, "Light")
	if err != nil || got.Name != "Light" || got.School != "" {
		t.Fatalf("LearnSpell(Light) = %+v, %v; want bare record", got, err)
	}
}

func TestSheetService_PublishesEvents(t *testing.T) {
	ctx := context.Background()
	bus := events.NewBus(nil)

	var got []string
	bus.Subscribe(&events.ListenerFunc{
		Name: "recorder",
		Fn: func(e *events.Event) error {
			got = append(got, string(e.Type)+":"+e.Op)
			return nil
		},
	}, events.AllTypes()...)

	svc := sheet.NewService(&sheet.ServiceConfig{
		Repository: characters.NewLocalRepository(&characters.LocalRepoConfig{Store: local.NewMemoryStore()}),
		IDs:        uuid.Sequence("id"),
		Events:     bus,
	})

	_, err := svc.New(ctx, "Wren")
	require.NoError(t, err)
	require.NoError(t, svc.AddGold(5))
	require.Error(t, svc.SpendGold(50))
	require.NoError(t, svc.Save(ctx))
	require.NoError(t, svc.Delete(ctx, "id-1"))

	assert.Equal(t, []string{
		"character_created:",
		"transition_applied:add_gold",
		"transition_rejected:spend_gold",
		"character_saved:",
		"character_deleted:",
	}, got)
}

func TestSheetService_ListenerCanReadSheet(t *testing.T) {
	ctx := context.Background()
	bus := events.NewBus(nil)

	var svc sheet.Service
	gold := -1
	bus.Subscribe(&events.ListenerFunc{
		Name: "reader",
		Fn: func(*events.Event) error {
			char, err := svc.Current()
			if err != nil {
				return err
			}
			gold = char.Inventory.Gold
			return nil
		},
	}, events.TransitionApplied)

	svc = sheet.NewService(&sheet.ServiceConfig{
		Repository: characters.NewLocalRepository(&characters.LocalRepoConfig{Store: local.NewMemoryStore()}),
		Events:     bus,
	})

	_, err := svc.New(ctx, "Wren")
	require.NoError(t, err)
	require.NoError(t, svc.AddGold(9))
	assert.Equal(t, 9, gold)
}

func (s *SheetServiceTestSuite) TestAddWeapon_HalfClassKeepsSheetLoadable() {
	char := s.newCharacter()

	_, err := s.svc.AddWeapon(&equipment.Weapon{
		Name:      "Spear",
		DiceType:  equipment.DiceD6,
		DiceCount: 1,
		Class:     equipment.WeaponClass{Heft: equipment.HeftOneHanded},
	})
	s.True(sheeterr.IsInvalidArgument(err))

	_, err = s.svc.AddWeapon(&equipment.Weapon{Name: "Catapult", DiceType: equipment.DiceD6, DiceCount: equipment.MaxDiceCount + 1})
	s.True(sheeterr.IsInvalidArgument(err))

	_, err = s.svc.AddWeapon(&equipment.Weapon{
		Name:      "Spear",
		DiceType:  equipment.DiceD6,
		DiceCount: 1,
		Class:     equipment.WeaponClass{Heft: equipment.HeftOneHanded, Type: equipment.WeaponTypeThrust},
	})
	s.Require().NoError(err)
	s.Require().NoError(s.svc.Save(s.ctx))

	loaded, err := s.svc.Load(s.ctx, char.ID)
	s.Require().NoError(err)
	s.Require().Len(loaded.Inventory.Weapons, 1)
	s.Equal("1H/Thrust", loaded.Inventory.Weapons[0].Class.String())
}

func TestService_LoadNeverReturnsNilCharacter(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mockcharacters.NewMockRepository(ctrl)
	svc := sheet.NewService(&sheet.ServiceConfig{Repository: repo})
	ctx := context.Background()

	repo.EXPECT().Get(gomock.Any(), "ghost").Return(nil, nil)
	char, err := svc.Load(ctx, "ghost")
	assert.Nil(t, char)
	assert.True(t, sheeterr.IsNotFound(err))

	_, err = svc.Current()
	assert.ErrorIs(t, err, sheet.ErrNoCharacter)
}

func TestService_ImportNeverReturnsNilCharacter(t *testing.T) {
	svc := sheet.NewService(&sheet.ServiceConfig{
		Repository: characters.NewLocalRepository(&characters.LocalRepoConfig{Store: local.NewMemoryStore()}),
	})

	char, err := svc.Import(context.Background(), []byte(`{"id":"c1","name":"Ash","inventory":{"weapons":[{"id":"w1","name":"Spear","class":"1H/"}]}}`))
	assert.Nil(t, char)
	assert.True(t, sheeterr.IsInvalidArgument(err))

	char, err = svc.Import(context.Background(), []byte(`{"id":"c1","name":"Ash"}`))
	require.NoError(t, err)
	require.NotNil(t, char)
	assert.Equal(t, "Ash", char.Name)
}

func TestService_LearnSpellMatchesCatalogName(t *testing.T) {
	ctrl := gomock.NewController(t)
	catalog := mockspells.NewMockRepository(ctrl)
	svc := sheet.NewService(&sheet.ServiceConfig{
		Repository: characters.NewLocalRepository(&characters.LocalRepoConfig{Store: local.NewMemoryStore()}),
		Catalog:    catalog,
	})
	ctx := context.Background()
	_, err := svc.New(ctx, "Wren")
	require.NoError(t, err)

	catalog.EXPECT().Get(gomock.Any(), "magic missile").
		Return(&character.Spell{Name: "Magic Missile", Level: 1, School: "Evocation"}, nil)
	catalog.EXPECT().Get(gomock.Any(), "Gate").Return(nil, nil)

	got, err := svc.LearnSpell(ctx, "  magic missile ")
	require.NoError(t, err)
	assert.Equal(t, "Magic Missile", got.Name)

	char, err := svc.Current()
	require.NoError(t, err)
	require.Len(t, char.Magic.Spells, 1)
	assert.Equal(t, 1, char.Magic.Spells[0].Level)

	_, err = svc.LearnSpell(ctx, "Gate")
	assert.True(t, sheeterr.IsNotFound(err))
}
