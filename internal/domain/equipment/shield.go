package equipment

type Shield struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	ParryBonus    int    `json:"parryBonus"`
	Durability    int    `json:"durability"`
	MaxDurability int    `json:"maxDurability"`
	Equipped      bool   `json:"equipped"`
}

func (s *Shield) GetID() string         { return s.ID }
func (s *Shield) GetName() string       { return s.Name }
func (s *Shield) GetItemType() ItemType { return ItemTypeShield }

// Damage lowers durability by amount, never below 0, and returns the new value
func (s *Shield) Damage(amount int) int {
	if amount <= 0 {
		return s.Durability
	}

	s.Durability -= amount
	if s.Durability < 0 {
		s.Durability = 0
	}
	return s.Durability
}

// Repair raises durability by amount, never above MaxDurability, and returns the new value
func (s *Shield) Repair(amount int) int {
	if amount <= 0 {
		return s.Durability
	}

	s.Durability += amount
	if s.Durability > s.MaxDurability {
		s.Durability = s.MaxDurability
	}
	return s.Durability
}

// Broken reports whether the shield has no durability left
func (s *Shield) Broken() bool {
	return s.Durability <= 0
}
