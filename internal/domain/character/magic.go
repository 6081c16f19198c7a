package character

import (
	"strings"

	sheeterr "github.com/KirkDiggler/character-sheet/internal/errors"
)

type Magic struct {
	Spells []*Spell `json:"spells"`
}

// Spell is a known spell. The same record shape is stored in the hosted
// spells table.
type Spell struct {
	Name          string   `json:"name"`
	Level         int      `json:"level"`
	School        string   `json:"school"`
	CastingTime   string   `json:"castingTime"`
	Range         string   `json:"range"`
	Duration      string   `json:"duration"`
	Concentration bool     `json:"concentration"`
	Ritual        bool     `json:"ritual"`
	Classes       []string `json:"classes"`
}

// KnowsSpell matches names case-insensitively
func (c *Character) KnowsSpell(name string) bool {
	return c.spellIndex(name) >= 0
}

func (c *Character) spellIndex(name string) int {
	for i, s := range c.Magic.Spells {
		if s != nil && strings.EqualFold(s.Name, name) {
			return i
		}
	}
	return -1
}

func (c *Character) LearnSpell(spell *Spell) error {
	if spell == nil || strings.TrimSpace(spell.Name) == "" {
		return sheeterr.InvalidArgument("spell name is required")
	}
	if c.KnowsSpell(spell.Name) {
		return sheeterr.AlreadyExistsf("spell '%s' already known", spell.Name)
	}

	c.Magic.Spells = append(c.Magic.Spells, spell)
	return nil
}

func (c *Character) ForgetSpell(name string) error {
	idx := c.spellIndex(name)
	if idx < 0 {
		return sheeterr.NotFoundf("spell '%s' not known", name)
	}

	c.Magic.Spells = append(c.Magic.Spells[:idx], c.Magic.Spells[idx+1:]...)
	return nil
}

func (c *Character) AddNote(note *Note) error {
	if note == nil || strings.TrimSpace(note.ID) == "" {
		return sheeterr.InvalidArgument("note ID is required")
	}
	for _, n := range c.Notes {
		if n.ID == note.ID {
			return sheeterr.AlreadyExistsf("note with ID '%s' already exists", note.ID)
		}
	}

	c.Notes = append(c.Notes, note)
	return nil
}

func (c *Character) RemoveNote(id string) error {
	for i, n := range c.Notes {
		if n.ID == id {
			c.Notes = append(c.Notes[:i], c.Notes[i+1:]...)
			return nil
		}
	}
	return sheeterr.NotFoundf("note '%s' not found", id)
}
