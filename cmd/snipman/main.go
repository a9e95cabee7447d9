package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/4thel00z/snipman/internal"
	"github.com/4thel00z/snipman/internal/picker"
	"github.com/charmbracelet/fang"
)

// version is set via ldflags at build time
var version = "dev"

func main() {
	ctx := context.Background()

	a := newApp(internal.DefaultPaths())
	rootCmd := NewRootCmd(version, a)
	err := fang.Execute(ctx, rootCmd)
	a.Close()
	if err != nil {
		os.Exit(1)
	}
}

type app struct {
	paths      internal.Paths
	configPath string
	cfg        *internal.Config

	repo      internal.SnippetRepository
	logCloser io.Closer

	useCases  *internal.UseCases
	clipboard internal.ClipboardSink
	runPicker pickerRunner
}

func newApp(paths internal.Paths) *app {
	a := &app{
		paths:     paths,
		cfg:       internal.DefaultConfig(),
		clipboard: internal.SystemClipboard{},
		runPicker: picker.Run,
	}
	a.useCases = internal.NewUseCases(a.repository, internal.NewExecEditor())
	return a
}

// setup loads the config file and starts logging. It runs once per
// invocation, before any command touches storage.
func (a *app) setup(configPath string) error {
	a.Close()

	if configPath == "" {
		configPath = a.paths.ConfigPath()
	}
	a.configPath = configPath

	cfg, err := internal.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	a.cfg = cfg

	level, err := cfg.SlogLevel()
	if err != nil {
		return err
	}
	logPath := cfg.Log.File
	if logPath == "" {
		logPath = internal.Paths{DataDir: a.dataDir()}.LogPath()
	}
	closer, err := internal.InitLogger(logPath, level)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	a.logCloser = closer

	internal.ForComponent("cli").Debug("config loaded", "path", configPath, "backend", cfg.Storage.Backend)
	return nil
}

func (a *app) config() *internal.Config {
	return a.cfg
}

func (a *app) dataDir() string {
	return a.cfg.DataDir(a.paths)
}

// repository opens the configured backend on first use.
func (a *app) repository() (internal.SnippetRepository, error) {
	if a.repo != nil {
		return a.repo, nil
	}

	repo, err := a.cfg.OpenRepository(a.dataDir())
	if err != nil {
		return nil, fmt.Errorf("open %s storage: %w", a.cfg.Storage.Backend, err)
	}
	a.repo = repo
	return repo, nil
}

// Close releases the repository and the log file. The app can be set up
// again afterwards.
func (a *app) Close() {
	if c, ok := a.repo.(io.Closer); ok {
		_ = c.Close()
	}
	a.repo = nil
	if a.logCloser != nil {
		_ = a.logCloser.Close()
		a.logCloser = nil
	}
}
