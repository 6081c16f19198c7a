package characters

import (
	"context"
	"time"

	"github.com/KirkDiggler/character-sheet/internal/domain/character"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=mockcharacters -source=repository.go

// Repository defines the interface for character persistence
type Repository interface {
	// Create stores a new character; the ID must not exist yet
	Create(ctx context.Context, char *character.Character) error

	// Get retrieves a character by ID
	Get(ctx context.Context, id string) (*character.Character, error)

	// List returns every stored character ordered by name
	List(ctx context.Context) ([]*character.Character, error)

	// Update replaces an existing character
	Update(ctx context.Context, char *character.Character) error

	// Delete removes a character
	Delete(ctx context.Context, id string) error
}

// TimeProvider stamps created and updated times
type TimeProvider interface {
	Now() time.Time
}

type utcClock struct{}

func (utcClock) Now() time.Time { return time.Now().UTC() }

// Data is the stored form of a character
type Data struct {
	Character *character.Character `json:"character"`
	CreatedAt time.Time            `json:"created_at"`
	UpdatedAt time.Time            `json:"updated_at"`
}

func key(id string) string {
	return "character:" + id
}
