// Package app wires the pieces together and runs the menu and story
// loops.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/dshills/taleforge/internal/config"
	"github.com/dshills/taleforge/internal/nlp"
	"github.com/dshills/taleforge/internal/store"
	"github.com/dshills/taleforge/internal/tui"
)

// ErrQuit reports a normal user-requested exit.
var ErrQuit = errors.New("app: quit")

// promptTimeout bounds one generation round trip.
const promptTimeout = 2 * time.Minute

// Options come from the command line.
type Options struct {
	ConfigPath  string
	SecretsPath string
	DBPath      string
	Model       string
	Debug       bool
	LogLevel    string
}

// App owns the application state and the main loops.
type App struct {
	opts    Options
	cfg     config.Config
	keys    nlp.Keys
	store   *store.Store
	handler *nlp.Handler
	screen  *tui.Screen
	watcher *config.Watcher
	logger  *slog.Logger
	logFile io.Closer
}

// New loads configuration, opens the story database, and connects the
// text-generation client. The terminal is not touched yet.
func New(opts Options) (*App, error) {
	a := &App{opts: opts}

	if err := a.loadConfig(); err != nil {
		return nil, err
	}
	if err := a.openLogger(); err != nil {
		return nil, err
	}

	if dir := filepath.Dir(a.cfg.DBPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
	}
	st, err := store.Open(a.cfg.DBPath)
	if err != nil {
		return nil, err
	}
	a.store = st

	if err := a.connectModel(); err != nil {
		a.store.Close()
		return nil, err
	}
	return a, nil
}

// loadConfig reads config and secrets, then lays the command-line
// overrides on top.
func (a *App) loadConfig() error {
	cfg, err := config.Load(a.opts.ConfigPath)
	if err != nil {
		return err
	}
	sec, err := config.LoadSecrets(a.opts.SecretsPath)
	if err != nil {
		return err
	}
	if a.opts.Model != "" {
		cfg.Model = a.opts.Model
	}
	if a.opts.DBPath != "" {
		cfg.DBPath = a.opts.DBPath
	}
	if a.opts.LogLevel != "" {
		cfg.LogLevel = a.opts.LogLevel
	}
	if a.opts.Debug {
		cfg.LogLevel = "debug"
	}
	a.cfg = cfg
	a.keys = sec.Keys()
	return nil
}

func (a *App) openLogger() error {
	if a.cfg.LogFile == "" {
		a.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
		return nil
	}
	f, err := os.OpenFile(a.cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	a.logFile = f
	a.logger = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{
		Level: logLevel(a.cfg.LogLevel),
	}))
	return nil
}

func logLevel(name string) slog.Level {
	switch name {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// connectModel (re)builds the generation client from the current
// config.
func (a *App) connectModel() error {
	client, err := nlp.NewClient(a.cfg.Model, a.keys)
	if err != nil {
		return err
	}
	a.handler = nlp.NewHandler(client)
	a.logger.Debug("model connected", "model", a.cfg.Model)
	return nil
}

// Run takes over the terminal and drives the main menu until the user
// quits.
func (a *App) Run() error {
	screen, err := tui.NewScreen()
	if err != nil {
		return fmt.Errorf("initializing terminal: %w", err)
	}
	a.screen = screen

	if w, err := config.Watch(a.opts.ConfigPath); err == nil {
		a.watcher = w
	} else {
		a.logger.Warn("config watch unavailable", "error", err)
	}

	err = a.mainMenu()
	if errors.Is(err, ErrQuit) {
		return nil
	}
	return err
}

// Shutdown releases everything. Safe to call more than once.
func (a *App) Shutdown() {
	if a.screen != nil {
		a.screen.Fini()
		a.screen = nil
	}
	if a.watcher != nil {
		a.watcher.Close()
		a.watcher = nil
	}
	if a.store != nil {
		a.store.Close()
		a.store = nil
	}
	if a.logFile != nil {
		a.logFile.Close()
		a.logFile = nil
	}
}

// reloadConfigIfChanged applies a pending config-file change, switching
// models mid-session when the model name moved.
func (a *App) reloadConfigIfChanged() string {
	if a.watcher == nil {
		return ""
	}
	select {
	case <-a.watcher.Changes():
	default:
		return ""
	}

	cfg, err := config.Load(a.opts.ConfigPath)
	if err != nil {
		a.logger.Warn("config reload failed", "error", err)
		return "Config reload failed"
	}
	if cfg.Model == a.cfg.Model {
		return ""
	}
	a.cfg.Model = cfg.Model
	if err := a.connectModel(); err != nil {
		a.logger.Warn("model switch failed", "error", err)
		return "Model switch failed: " + err.Error()
	}
	return "Switched model to " + a.cfg.Model
}

// promptCtx returns the bounded context used for one generation call.
func promptCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), promptTimeout)
}
