package uuid

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestGoogleUUIDGenerator(t *testing.T) {
	gen := NewGoogleUUIDGenerator()

	a, b := gen.New(), gen.New()
	assert.NoError(t, uuid.Validate(a))
	assert.NotEqual(t, a, b)
}

func TestSequence(t *testing.T) {
	gen := Sequence("item")

	assert.Equal(t, "item-1", gen.New())
	assert.Equal(t, "item-2", gen.New())
}
