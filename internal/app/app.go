package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/five82/lostfound/internal/catalogue"
	"github.com/five82/lostfound/internal/config"
	"github.com/five82/lostfound/internal/logging"
	"github.com/five82/lostfound/internal/prefs"
	"github.com/five82/lostfound/internal/present"
	"github.com/five82/lostfound/internal/state"
	"github.com/five82/lostfound/internal/ui"
)

// Options configure the lostfound client.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/lostfound/prefs.toml
	APIBase    string // overrides config and environment when set
	Debug      bool
	Admin      bool // open the TUI on the Admin page
}

// Runtime is the wired set of dependencies shared by every command.
type Runtime struct {
	Config config.Config
	Prefs  prefs.Prefs
	Client *catalogue.Client
	Logger *slog.Logger

	prefsPath string
	closeLog  func() error
}

// Setup loads configuration, opens the log file and builds the client.
func Setup(opts Options) (*Runtime, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if opts.APIBase != "" {
		cfg.APIBase = opts.APIBase
	}

	logger, closeLog, err := logging.Open(cfg.LogPath(), opts.Debug)
	if err != nil {
		return nil, err
	}

	userPrefs, _ := prefs.Load(opts.PrefsPath)

	client, err := catalogue.NewClient(cfg.APIBase, cfg.AssetPath, cfg.RequestTimeout)
	if err != nil {
		_ = closeLog()
		return nil, fmt.Errorf("init catalogue client: %w", err)
	}

	logger.Debug("runtime ready", "api_base", client.BaseURL(), "asset_path", cfg.AssetPath)
	return &Runtime{
		Config:    cfg,
		Prefs:     userPrefs,
		Client:    client,
		Logger:    logger,
		prefsPath: opts.PrefsPath,
		closeLog:  closeLog,
	}, nil
}

// Close releases the log file.
func (r *Runtime) Close() error {
	if r == nil || r.closeLog == nil {
		return nil
	}
	return r.closeLog()
}

// Renderer returns the presenter bound to the client's URLs.
func (r *Runtime) Renderer() present.Renderer {
	return present.Renderer{URLs: r.Client}
}

// Driver returns a headless workflow driver for this runtime.
func (r *Runtime) Driver() Driver {
	return Driver{Service: r.Client, Render: r.Renderer(), Logger: r.Logger}
}

// Run boots the TUI until the user quits or ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	rt, err := Setup(opts)
	if err != nil {
		return err
	}
	defer rt.Close()

	store := &state.Store{}

	// Populate the listing before the UI starts so the admin page opens with data.
	_ = refresh(ctx, store, rt.Client, rt.Logger)

	rt.Logger.Info("starting tui", "api_base", rt.Client.BaseURL())
	return ui.Run(ui.Options{
		Context:   ctx,
		Service:   rt.Client,
		Renderer:  rt.Renderer(),
		Store:     store,
		Config:    &rt.Config,
		Prefs:     rt.Prefs,
		PrefsPath: rt.prefsPath,
		Logger:    rt.Logger,
		Admin:     opts.Admin,
	})
}
