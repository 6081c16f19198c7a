// Package uuid generates identifiers for characters, items and notes behind
// an interface so tests can pin them.
package uuid

import (
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
)

// Generator is an interface for generating UUIDs
type Generator interface {
	New() string
}

// GoogleUUIDGenerator implements the Generator interface using Google's UUID package
type GoogleUUIDGenerator struct{}

// New generates a new random (v4) UUID string
func (g *GoogleUUIDGenerator) New() string {
	return uuid.New().String()
}

func NewGoogleUUIDGenerator() *GoogleUUIDGenerator {
	return &GoogleUUIDGenerator{}
}

// GeneratorFunc adapts a function to Generator
type GeneratorFunc func() string

func (f GeneratorFunc) New() string {
	return f()
}

// Sequence returns a generator yielding prefix-1, prefix-2, ...
func Sequence(prefix string) Generator {
	var n atomic.Int64
	return GeneratorFunc(func() string {
		return prefix + "-" + strconv.FormatInt(n.Add(1), 10)
	})
}
