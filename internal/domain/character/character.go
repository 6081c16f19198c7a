package character

import (
	"github.com/KirkDiggler/character-sheet/internal/domain/equipment"
)

// Character is one player character sheet. It is a plain value: services own
// synchronization and persistence.
type Character struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Base      Base      `json:"base"`
	Inventory Inventory `json:"inventory"`
	Skills    Skills    `json:"skills"`
	Magic     Magic     `json:"magic"`
	Notes     []*Note   `json:"notes"`
}

// Base holds the raw attributes and tracked resources
type Base struct {
	Strength     int         `json:"strength"`
	Dexterity    int         `json:"dexterity"`
	HitPoints    int         `json:"hitPoints"`
	MaxHitPoints int         `json:"maxHitPoints"`
	Energy       int         `json:"energy"`
	MaxEnergy    int         `json:"maxEnergy"`
	BuildPoints  BuildPoints `json:"buildPoints"`
}

// BuildPoints is the character-creation currency. Spent is only written by
// SpendPoints and RefundPoints.
type BuildPoints struct {
	Earned int `json:"earned"`
	Spent  int `json:"spent"`
}

// Remaining is the unspent balance
func (b BuildPoints) Remaining() int {
	return b.Earned - b.Spent
}

// Skills are the learned defensive skills plus weapon skills keyed by class
type Skills struct {
	Dodge   int                           `json:"dodge"`
	Parry   int                           `json:"parry"`
	Weapons map[equipment.WeaponClass]int `json:"weapons"`
}

// WeaponLevel returns the learned level for a weapon class, 0 if unlearned
func (s Skills) WeaponLevel(class equipment.WeaponClass) int {
	return s.Weapons[class]
}

type Note struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

// New creates an empty character sheet
func New(id, name string) *Character {
	return &Character{
		ID:   id,
		Name: name,
	}
}
