// Package config loads the application configuration and the separate
// secrets file, both TOML, with environment variable overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/taleforge/internal/nlp"
)

// Default file locations, relative to the working directory.
const (
	DefaultConfigFile  = "taleforge.toml"
	DefaultSecretsFile = "secrets.toml"
	DefaultDBFile      = "data/stories.sqlite3"
)

// envPrefix namespaces the override variables.
const envPrefix = "TALEFORGE_"

// Config is the non-secret application configuration.
type Config struct {
	// Model names the text-generation model, optionally "name:extra".
	Model string `toml:"model"`
	// DBPath locates the SQLite story database.
	DBPath string `toml:"db_path"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `toml:"log_level"`
	// LogFile receives the debug log; empty disables file logging.
	LogFile string `toml:"log_file"`
}

// Secrets keeps the API keys out of the main config file.
type Secrets struct {
	OpenAIKey    string `toml:"openai_key"`
	AnthropicKey string `toml:"anthropic_key"`
	GeminiKey    string `toml:"gemini_key"`
	MistralKey   string `toml:"mistral_key"`
}

// Keys converts the secrets into the nlp key set.
func (s Secrets) Keys() nlp.Keys {
	return nlp.Keys{
		OpenAI:    s.OpenAIKey,
		Anthropic: s.AnthropicKey,
		Gemini:    s.GeminiKey,
		Mistral:   s.MistralKey,
	}
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Model:    "gemini-1.5-flash",
		DBPath:   DefaultDBFile,
		LogLevel: "warn",
		LogFile:  "taleforge.log",
	}
}

// DefaultSecrets returns placeholder secrets.
func DefaultSecrets() Secrets {
	return Secrets{
		OpenAIKey:    nlp.Placeholder,
		AnthropicKey: nlp.Placeholder,
		GeminiKey:    nlp.Placeholder,
		MistralKey:   nlp.Placeholder,
	}
}

// Load reads the config file over the defaults and then applies
// environment overrides. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if err := readTOML(path, &cfg); err != nil {
		return cfg, err
	}
	applyEnv(map[string]*string{
		"MODEL":     &cfg.Model,
		"DB_PATH":   &cfg.DBPath,
		"LOG_LEVEL": &cfg.LogLevel,
		"LOG_FILE":  &cfg.LogFile,
	})
	if err := validLogLevel(cfg.LogLevel); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadSecrets reads the secrets file over the placeholders and then
// applies environment overrides. A missing file is not an error.
func LoadSecrets(path string) (Secrets, error) {
	sec := DefaultSecrets()
	if err := readTOML(path, &sec); err != nil {
		return sec, err
	}
	applyEnv(map[string]*string{
		"OPENAI_KEY":    &sec.OpenAIKey,
		"ANTHROPIC_KEY": &sec.AnthropicKey,
		"GEMINI_KEY":    &sec.GeminiKey,
		"MISTRAL_KEY":   &sec.MistralKey,
	})
	return sec, nil
}

func readTOML(path string, v any) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

func applyEnv(vars map[string]*string) {
	for name, dst := range vars {
		if val, ok := os.LookupEnv(envPrefix + name); ok {
			*dst = val
		}
	}
}

func validLogLevel(level string) error {
	switch level {
	case "debug", "info", "warn", "error":
		return nil
	}
	return fmt.Errorf("invalid log level %q (must be debug, info, warn, or error)", level)
}

// WriteDefaults materializes the default config and secrets files,
// refusing to clobber existing ones.
func WriteDefaults(configPath, secretsPath string) error {
	if err := writeTOML(configPath, Default(), 0o644); err != nil {
		return err
	}
	// Secrets hold API keys; keep them out of other users' reach.
	return writeTOML(secretsPath, DefaultSecrets(), 0o600)
}

func writeTOML(path string, v any, mode os.FileMode) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists, refusing to overwrite", path)
	}
	data, err := toml.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, mode); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
