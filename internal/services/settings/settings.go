// Package settings keeps the hosted backend and OpenAI credentials on the
// device and brings up the clients that need them.
package settings

//go:generate mockgen -destination=mock/mock_initializer.go -package=mocksettings . Initializer

import "context"

// StorageKey is where the settings blob lives in the local store
const StorageKey = "app_settings"

type Settings struct {
	SupabaseURL        string `json:"supabaseUrl"`
	SupabaseServiceKey string `json:"supabaseServiceKey"`
	OpenAIAPIKey       string `json:"openaiApiKey"`
}

// Configured reports whether the hosted backend can be reached. The OpenAI
// key does not count.
func (s Settings) Configured() bool {
	return s.SupabaseURL != "" && s.SupabaseServiceKey != ""
}

// Initializer sets up a client from configured settings. It is called again
// on every change so it must be idempotent.
type Initializer interface {
	Initialize(ctx context.Context, s Settings) error
}

// InitializerFunc adapts a function to Initializer
type InitializerFunc func(ctx context.Context, s Settings) error

func (f InitializerFunc) Initialize(ctx context.Context, s Settings) error {
	return f(ctx, s)
}
