package app

import (
	"context"
	"fmt"
	"time"

	myweblog "github.com/faluke/go-myweblog"
	"github.com/faluke/go-myweblog/internal/config"
	"github.com/faluke/go-myweblog/internal/prefs"
	"github.com/faluke/go-myweblog/internal/state"
	"github.com/faluke/go-myweblog/internal/ui"
)

// Options configure the booking manager application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/boka/prefs.toml
	PollEvery  int    // seconds; zero uses the config value, then the default
}

// Run boots the booking manager TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	userPrefs := prefs.Load(opts.PrefsPath)

	client, err := myweblog.New(cfg.Username, cfg.Password, cfg.ClientOptions()...)
	if err != nil {
		return fmt.Errorf("init myweblog client: %w", err)
	}
	defer client.Close()

	store := &state.Store{}

	interval := defaultPollInterval
	switch {
	case opts.PollEvery > 0:
		interval = time.Duration(opts.PollEvery) * time.Second
	case cfg.PollSeconds > 0:
		interval = time.Duration(cfg.PollSeconds) * time.Second
	}

	// Populate the store before the UI starts; the first call also
	// performs the lazy token exchange.
	Refresh(ctx, store, client)

	StartPoller(ctx, store, client, interval)

	uiOpts := ui.Options{
		Context: ctx,
		Client:  client,
		Store:   store,
		Refresh: func(c context.Context) {
			Refresh(c, store, client)
		},
		ThemeName: userPrefs.Theme,
		PrefsPath: opts.PrefsPath,
	}
	return ui.Run(uiOpts)
}
