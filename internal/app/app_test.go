package app

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/dshills/taleforge/internal/config"
)

func TestLoadConfigOverrides(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "taleforge.toml")
	content := "model = \"gpt-4o\"\ndb_path = \"from-file.sqlite3\"\nlog_level = \"info\"\n"
	if err := os.WriteFile(cfgPath, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name      string
		opts      Options
		wantModel string
		wantDB    string
		wantLevel string
	}{
		{
			name:      "file values stand without flags",
			opts:      Options{ConfigPath: cfgPath},
			wantModel: "gpt-4o",
			wantDB:    "from-file.sqlite3",
			wantLevel: "info",
		},
		{
			name:      "flags win over the file",
			opts:      Options{ConfigPath: cfgPath, Model: "mock", DBPath: "cli.sqlite3"},
			wantModel: "mock",
			wantDB:    "cli.sqlite3",
			wantLevel: "info",
		},
		{
			name:      "debug flag forces the level",
			opts:      Options{ConfigPath: cfgPath, LogLevel: "error", Debug: true},
			wantModel: "gpt-4o",
			wantDB:    "from-file.sqlite3",
			wantLevel: "debug",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &App{opts: tt.opts}
			if err := a.loadConfig(); err != nil {
				t.Fatalf("loadConfig: %v", err)
			}
			if a.cfg.Model != tt.wantModel {
				t.Errorf("Model = %q, want %q", a.cfg.Model, tt.wantModel)
			}
			if a.cfg.DBPath != tt.wantDB {
				t.Errorf("DBPath = %q, want %q", a.cfg.DBPath, tt.wantDB)
			}
			if a.cfg.LogLevel != tt.wantLevel {
				t.Errorf("LogLevel = %q, want %q", a.cfg.LogLevel, tt.wantLevel)
			}
		})
	}
}

func TestLogLevel(t *testing.T) {
	tests := []struct {
		name string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"bogus", slog.LevelWarn},
	}
	for _, tt := range tests {
		if got := logLevel(tt.name); got != tt.want {
			t.Errorf("logLevel(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestOpenLoggerDiscardsWithoutFile(t *testing.T) {
	a := &App{cfg: mustConfig(t, "")}
	if err := a.openLogger(); err != nil {
		t.Fatalf("openLogger: %v", err)
	}
	if a.logger == nil {
		t.Fatal("logger not set")
	}
	if a.logFile != nil {
		t.Error("no log file expected when logging is disabled")
	}
}

func TestOpenLoggerWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	a := &App{cfg: mustConfig(t, path)}
	if err := a.openLogger(); err != nil {
		t.Fatalf("openLogger: %v", err)
	}
	defer a.logFile.Close()

	a.logger.Error("boom", "detail", "value")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) == 0 {
		t.Error("log record not written")
	}
}

func TestConnectModelMock(t *testing.T) {
	a := &App{cfg: mustConfig(t, "")}
	a.cfg.Model = "mock"
	if err := a.openLogger(); err != nil {
		t.Fatal(err)
	}
	if err := a.connectModel(); err != nil {
		t.Fatalf("connectModel: %v", err)
	}
	if a.handler == nil {
		t.Fatal("handler not set")
	}
}

func TestConnectModelUnknown(t *testing.T) {
	a := &App{cfg: mustConfig(t, "")}
	a.cfg.Model = "no-such-model"
	if err := a.openLogger(); err != nil {
		t.Fatal(err)
	}
	if err := a.connectModel(); err == nil {
		t.Fatal("expected an error for an unknown model")
	}
}

func mustConfig(t *testing.T, logFile string) config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.LogFile = logFile
	return cfg
}
