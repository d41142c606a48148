// Package provider abstracts model invocation behind one chat contract.
// Two wire shapes are supported: an OpenAI-style completions API and an
// Anthropic-style messages API. The shape is chosen by static
// configuration, never by inspecting response bodies.
package provider

import (
	"context"
	"fmt"
	"time"
)

// WireShape selects the concrete client implementation.
type WireShape string

const (
	ShapeCompletions WireShape = "completions"
	ShapeMessages    WireShape = "messages"
)

// DefaultTimeout bounds a single chat call when the configuration does
// not say otherwise.
const DefaultTimeout = 60 * time.Second

// DefaultMaxTokens caps the response length requested from the model.
const DefaultMaxTokens = 1024

// Provider is the uniform chat contract over heterogeneous backends.
type Provider interface {
	// Name returns the configured provider name.
	Name() string

	// Chat sends one system/user exchange and returns the response
	// text. Failures are typed: *NetworkError, *AuthError,
	// *TimeoutError, or *MalformedResponseError.
	Chat(ctx context.Context, systemPrompt, userMessage string) (string, error)

	// HasCredential reports whether an API key was resolved. A missing
	// credential is not a construction failure; callers decide whether
	// to proceed in static-only mode.
	HasCredential() bool
}

// Config describes one provider entry.
type Config struct {
	Name      string
	Endpoint  string
	Model     string
	WireShape WireShape

	// APIKey is the resolved credential, possibly empty.
	APIKey string

	// Timeout applies per call. Zero means DefaultTimeout.
	Timeout time.Duration

	// MaxTokens caps the response. Zero means DefaultMaxTokens.
	MaxTokens int
}

func (c Config) timeout() time.Duration {
	if c.Timeout <= 0 {
		return DefaultTimeout
	}
	return c.Timeout
}

func (c Config) maxTokens() int {
	if c.MaxTokens <= 0 {
		return DefaultMaxTokens
	}
	return c.MaxTokens
}

// New constructs the client for the configured wire shape.
func New(cfg Config) (Provider, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("provider %q: endpoint is required", cfg.Name)
	}
	switch cfg.WireShape {
	case ShapeCompletions:
		return newCompletionsClient(cfg), nil
	case ShapeMessages:
		return newMessagesClient(cfg), nil
	default:
		return nil, fmt.Errorf("provider %q: unknown wire shape %q", cfg.Name, cfg.WireShape)
	}
}
