// Package config loads layered settings and provider definitions for
// the evaluator. Values resolve in precedence order: process
// environment, then the user-scoped config file, then the
// project-local .ontos.yaml found by walking up from the working
// directory. The first non-empty value per key wins. Settings are
// loaded once per process start and read-only afterwards.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Default values for settings. These are the single source of truth;
// Defaults() references them and no other code should duplicate them.
const (
	DefaultProvider      = "anthropic"
	DefaultModel         = ""
	DefaultJudgeMode     = "hybrid"
	DefaultPromptCount   = 5
	DefaultPassThreshold = 0.70
	DefaultTimeoutSecs   = 60

	// ProjectFileName is the project-local config file, found by
	// walking up from the working directory.
	ProjectFileName = ".ontos.yaml"

	// maxWalkUpLevels bounds the project file search.
	maxWalkUpLevels = 10
)

// Error is a fatal configuration problem, reported before any network
// call is attempted.
type Error struct {
	Detail string
}

func (e *Error) Error() string {
	return "config: " + e.Detail
}

// Settings holds the resolved execution parameters.
type Settings struct {
	Provider      string  `yaml:"provider,omitempty"`
	Model         string  `yaml:"model,omitempty"`
	JudgeMode     string  `yaml:"judge_mode,omitempty"`
	PromptCount   int     `yaml:"prompt_count,omitempty"`
	PassThreshold float64 `yaml:"pass_threshold,omitempty"`
	TimeoutSecs   int     `yaml:"timeout,omitempty"`
}

// fileConfig is the on-disk shape shared by the project and user
// files. Provider entries stay free-form here; they are schema-checked
// and then decoded into ProviderSpec.
type fileConfig struct {
	Settings    Settings                  `yaml:"settings,omitempty"`
	Credentials map[string]string         `yaml:"credentials,omitempty"`
	Providers   map[string]map[string]any `yaml:"providers,omitempty"`

	providers map[string]ProviderSpec
}

// Config is the fully layered configuration for one process.
type Config struct {
	Settings Settings

	// user and project retain the raw file layers for credential
	// resolution, which is per-key rather than merged up front.
	user    fileConfig
	project fileConfig

	providers map[string]ProviderSpec
}

// Defaults returns Settings with all hard-coded defaults populated.
func Defaults() Settings {
	return Settings{
		Provider:      DefaultProvider,
		Model:         DefaultModel,
		JudgeMode:     DefaultJudgeMode,
		PromptCount:   DefaultPromptCount,
		PassThreshold: DefaultPassThreshold,
		TimeoutSecs:   DefaultTimeoutSecs,
	}
}

// Load assembles the configuration from all layers. A missing file is
// not an error; a malformed one is. Real I/O errors (e.g. permission
// denied) are returned to the caller.
func Load(startDir string) (*Config, error) {
	cfg := &Config{Settings: Defaults()}

	project, err := loadProjectFile(startDir)
	if err != nil {
		return nil, err
	}
	cfg.project = project

	user, err := loadUserFile()
	if err != nil {
		return nil, err
	}
	cfg.user = user

	// Lowest-precedence layer first; each overlay only replaces
	// fields it sets, so higher layers win per key.
	overlaySettings(&cfg.Settings, project.Settings)
	overlaySettings(&cfg.Settings, user.Settings)
	if err := overlayEnv(&cfg.Settings); err != nil {
		return nil, err
	}

	cfg.providers, err = assembleProviders(project.providers, user.providers)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// ResolveCredential returns the credential stored under envVar,
// checking the process environment first, then the user file, then the
// project file. Empty means no credential anywhere.
func (c *Config) ResolveCredential(envVar string) string {
	if v := os.Getenv(envVar); v != "" {
		return v
	}
	if v := c.user.Credentials[envVar]; v != "" {
		return v
	}
	return c.project.Credentials[envVar]
}

// loadProjectFile finds .ontos.yaml by walking up from startDir.
func loadProjectFile(startDir string) (fileConfig, error) {
	data, err := findProjectFile(startDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fileConfig{}, nil
		}
		return fileConfig{}, fmt.Errorf("loading %s: %w", ProjectFileName, err)
	}
	return parseFileConfig(data, ProjectFileName)
}

// loadUserFile reads the user-scoped config, honoring
// ONTOS_CONFIG_HOME for tests and unusual setups.
func loadUserFile() (fileConfig, error) {
	dir := os.Getenv("ONTOS_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fileConfig{}, nil
		}
		dir = filepath.Join(home, ".config", "ontos")
	}
	path := filepath.Join(dir, "config.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fileConfig{}, nil
		}
		return fileConfig{}, fmt.Errorf("reading %q: %w", path, err)
	}
	return parseFileConfig(data, path)
}

func parseFileConfig(data []byte, name string) (fileConfig, error) {
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fileConfig{}, &Error{Detail: fmt.Sprintf("parsing %s: %v", name, err)}
	}
	if len(fc.Providers) > 0 {
		if errs := validateProviders(data); len(errs) > 0 {
			return fileConfig{}, &Error{
				Detail: fmt.Sprintf("invalid providers in %s: %s", name, errs[0]),
			}
		}
		decoded, err := decodeProviders(fc.Providers)
		fc.providers = decoded
		if err != nil {
			return fileConfig{}, &Error{Detail: fmt.Sprintf("%s: %v", name, err)}
		}
	}
	return fc, nil
}

// findProjectFile walks up from dir looking for the project file.
// Returns os.ErrNotExist when no file is found within the walk limit.
func findProjectFile(dir string) ([]byte, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path %q: %w", dir, err)
	}
	dir = absDir

	for i := 0; i < maxWalkUpLevels; i++ {
		p := filepath.Join(dir, ProjectFileName)
		data, err := os.ReadFile(p)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("reading %q: %w", p, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return nil, os.ErrNotExist
}

// overlaySettings replaces dst fields that src sets.
func overlaySettings(dst *Settings, src Settings) {
	if src.Provider != "" {
		dst.Provider = src.Provider
	}
	if src.Model != "" {
		dst.Model = src.Model
	}
	if src.JudgeMode != "" {
		dst.JudgeMode = src.JudgeMode
	}
	if src.PromptCount != 0 {
		dst.PromptCount = src.PromptCount
	}
	if src.PassThreshold != 0 {
		dst.PassThreshold = src.PassThreshold
	}
	if src.TimeoutSecs != 0 {
		dst.TimeoutSecs = src.TimeoutSecs
	}
}

// overlayEnv applies ONTOS_* environment variables, the highest layer.
func overlayEnv(dst *Settings) error {
	if v := os.Getenv("ONTOS_PROVIDER"); v != "" {
		dst.Provider = v
	}
	if v := os.Getenv("ONTOS_MODEL"); v != "" {
		dst.Model = v
	}
	if v := os.Getenv("ONTOS_JUDGE_MODE"); v != "" {
		dst.JudgeMode = v
	}
	if v := os.Getenv("ONTOS_PROMPT_COUNT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return &Error{Detail: fmt.Sprintf("ONTOS_PROMPT_COUNT: %v", err)}
		}
		dst.PromptCount = n
	}
	if v := os.Getenv("ONTOS_PASS_THRESHOLD"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return &Error{Detail: fmt.Sprintf("ONTOS_PASS_THRESHOLD: %v", err)}
		}
		dst.PassThreshold = f
	}
	if v := os.Getenv("ONTOS_TIMEOUT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return &Error{Detail: fmt.Sprintf("ONTOS_TIMEOUT: %v", err)}
		}
		dst.TimeoutSecs = n
	}
	return nil
}
