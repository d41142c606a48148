package config

import (
	"fmt"
	"sort"
	"time"

	"github.com/go-viper/mapstructure/v2"

	"github.com/ontos-ai/ontos/internal/provider"
)

// ProviderSpec describes one model backend: where to send requests,
// which wire shape to speak, and which env var carries the credential.
type ProviderSpec struct {
	Endpoint         string `mapstructure:"endpoint"`
	Model            string `mapstructure:"model"`
	CredentialEnvVar string `mapstructure:"credential_env_var"`
	WireShape        string `mapstructure:"wire_shape"`
}

// decodeProviders turns schema-validated free-form provider entries
// into typed specs.
func decodeProviders(raw map[string]map[string]any) (map[string]ProviderSpec, error) {
	out := make(map[string]ProviderSpec, len(raw))
	for name, params := range raw {
		var spec ProviderSpec
		if err := mapstructure.Decode(params, &spec); err != nil {
			return nil, fmt.Errorf("provider %q: %w", name, err)
		}
		out[name] = spec
	}
	return out, nil
}

// builtinProviders are always available without any config file.
var builtinProviders = map[string]ProviderSpec{
	"openai": {
		Endpoint:         "https://api.openai.com/v1/chat/completions",
		Model:            "gpt-4o-mini",
		CredentialEnvVar: "OPENAI_API_KEY",
		WireShape:        string(provider.ShapeCompletions),
	},
	"anthropic": {
		Endpoint:         "https://api.anthropic.com/v1/messages",
		Model:            "claude-3-5-haiku-latest",
		CredentialEnvVar: "ANTHROPIC_API_KEY",
		WireShape:        string(provider.ShapeMessages),
	},
}

// assembleProviders layers custom definitions over the built-ins.
// User-file entries override project-file entries of the same name.
func assembleProviders(project, user map[string]ProviderSpec) (map[string]ProviderSpec, error) {
	out := make(map[string]ProviderSpec, len(builtinProviders)+len(project)+len(user))
	for name, spec := range builtinProviders {
		out[name] = spec
	}
	for _, layer := range []map[string]ProviderSpec{project, user} {
		for name, spec := range layer {
			if spec.Endpoint == "" {
				return nil, &Error{Detail: fmt.Sprintf("provider %q: endpoint is required", name)}
			}
			out[name] = spec
		}
	}
	return out, nil
}

// ProviderNames lists every known provider, sorted for stable output.
func (c *Config) ProviderNames() []string {
	names := make([]string, 0, len(c.providers))
	for name := range c.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Provider looks up a provider definition. Referencing an unlisted
// name is a configuration error.
func (c *Config) Provider(name string) (ProviderSpec, error) {
	spec, ok := c.providers[name]
	if !ok {
		return ProviderSpec{}, &Error{
			Detail: fmt.Sprintf("unknown provider %q (known: %v)", name, c.ProviderNames()),
		}
	}
	return spec, nil
}

// ProviderConfig resolves a provider name into a ready-to-construct
// provider.Config, applying the settings-level model override and the
// layered credential lookup. A missing credential is not an error
// here; provider.Provider exposes HasCredential for that decision.
func (c *Config) ProviderConfig(name string) (provider.Config, error) {
	spec, err := c.Provider(name)
	if err != nil {
		return provider.Config{}, err
	}
	model := spec.Model
	if c.Settings.Model != "" {
		model = c.Settings.Model
	}
	return provider.Config{
		Name:      name,
		Endpoint:  spec.Endpoint,
		Model:     model,
		WireShape: provider.WireShape(spec.WireShape),
		APIKey:    c.ResolveCredential(spec.CredentialEnvVar),
		Timeout:   time.Duration(c.Settings.TimeoutSecs) * time.Second,
	}, nil
}
