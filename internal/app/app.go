package app

import (
	"context"
	"fmt"

	"github.com/five82/carousel/internal/config"
	"github.com/five82/carousel/internal/deck"
	"github.com/five82/carousel/internal/logging"
	"github.com/five82/carousel/internal/prefs"
	"github.com/five82/carousel/internal/state"
	"github.com/five82/carousel/internal/ui"
)

// Options configure the carousel application.
type Options struct {
	DeckPath   string
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/carousel/prefs.toml
	Overrides  Overrides
}

// Overrides are command line values that win over the config file. Zero
// values leave the config untouched.
type Overrides struct {
	SlidesVisible  int
	SlidesToScroll int
	Loop           *bool
	Theme          string
	LogLevel       string
}

// Apply copies the set overrides into cfg.
func (o Overrides) Apply(cfg *config.Config) {
	if o.SlidesVisible != 0 {
		cfg.SlidesVisible = o.SlidesVisible
	}
	if o.SlidesToScroll != 0 {
		cfg.SlidesToScroll = o.SlidesToScroll
	}
	if o.Loop != nil {
		cfg.Loop = *o.Loop
	}
	if o.LogLevel != "" {
		cfg.LogLevel = o.LogLevel
	}
}

// Run boots the carousel TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	opts.Overrides.Apply(&cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if err := logging.Setup(cfg.LogFile, cfg.LogLevel); err != nil {
		return fmt.Errorf("setup logging: %w", err)
	}
	defer logging.Close()
	logger := logging.NewLogger("app")

	userPrefs := prefs.Load(opts.PrefsPath)
	theme := userPrefs.Theme
	if opts.Overrides.Theme != "" {
		theme = opts.Overrides.Theme
	}

	d, err := deck.Load(opts.DeckPath)
	if err != nil {
		return fmt.Errorf("load deck: %w", err)
	}
	logger.WithField("slides", d.Len()).Infof("Loaded deck %s", d.Path)

	store := &state.Store{}
	store.Update(&d, nil)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Start background watcher
	StartWatcher(ctx, store, opts.DeckPath, deck.DefaultDebounce)

	uiOpts := ui.Options{
		Context:       ctx,
		Store:         store,
		Config:        cfg,
		ThemeName:     theme,
		MarkdownStyle: userPrefs.Markdown,
		PrefsPath:     opts.PrefsPath,
	}
	return ui.Run(uiOpts)
}
