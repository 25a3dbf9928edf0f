package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	def := Default()
	if cfg != def {
		t.Errorf("cfg = %+v, want defaults %+v", cfg, def)
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taleforge.toml")
	content := "model = \"gpt-4o-mini\"\nlog_level = \"debug\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Model != "gpt-4o-mini" {
		t.Errorf("model = %q", cfg.Model)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("log level = %q", cfg.LogLevel)
	}
	if cfg.DBPath != DefaultDBFile {
		t.Errorf("db path should keep its default, got %q", cfg.DBPath)
	}
}

func TestLoadEnvWinsOverFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taleforge.toml")
	if err := os.WriteFile(path, []byte("model = \"gpt-4o\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("TALEFORGE_MODEL", "mock")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Model != "mock" {
		t.Errorf("model = %q, want env override", cfg.Model)
	}
}

func TestLoadRejectsBadLogLevel(t *testing.T) {
	t.Setenv("TALEFORGE_LOG_LEVEL", "loud")
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("expected an error for an invalid log level")
	}
}

func TestLoadSecrets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "secrets.toml")
	if err := os.WriteFile(path, []byte("gemini_key = \"g123\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("TALEFORGE_OPENAI_KEY", "o456")

	sec, err := LoadSecrets(path)
	if err != nil {
		t.Fatalf("LoadSecrets: %v", err)
	}
	keys := sec.Keys()
	if keys.Gemini != "g123" {
		t.Errorf("gemini key = %q", keys.Gemini)
	}
	if keys.OpenAI != "o456" {
		t.Errorf("openai key = %q, want env override", keys.OpenAI)
	}
	if keys.Mistral != "CHANGEME" {
		t.Errorf("mistral key = %q, want placeholder", keys.Mistral)
	}
}

func TestWriteDefaults(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "taleforge.toml")
	secretsPath := filepath.Join(dir, "secrets.toml")

	if err := WriteDefaults(configPath, secretsPath); err != nil {
		t.Fatalf("WriteDefaults: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load written config: %v", err)
	}
	if cfg != Default() {
		t.Errorf("round-tripped config = %+v", cfg)
	}

	data, err := os.ReadFile(secretsPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "CHANGEME") {
		t.Error("secrets file should carry placeholders")
	}

	// A second write must refuse to clobber.
	if err := WriteDefaults(configPath, secretsPath); err == nil {
		t.Error("expected refusal to overwrite existing files")
	}
}

func TestWatcherNotifiesOnChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "taleforge.toml")
	if err := os.WriteFile(path, []byte("model = \"mock\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := Watch(path)
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte("model = \"gpt-4o\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-w.Changes():
	case <-time.After(debounceDelay * 20):
		t.Fatal("no change notification arrived")
	}
}
