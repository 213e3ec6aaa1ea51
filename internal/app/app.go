package app

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/five82/bloglist/internal/blog"
	"github.com/five82/bloglist/internal/blogapi"
	"github.com/five82/bloglist/internal/config"
	"github.com/five82/bloglist/internal/logging"
	"github.com/five82/bloglist/internal/prefs"
	"github.com/five82/bloglist/internal/session"
	"github.com/five82/bloglist/internal/state"
	"github.com/five82/bloglist/internal/ui"
)

// Options configure the bloglist application.
type Options struct {
	ConfigPath string
	APIURL     string // overrides api_url from the config file
	LogLevel   string // overrides log_level from the config file
	PrefsPath  string // empty uses ~/.config/bloglist/prefs.toml
	// LogToStderr sends logs to stderr instead of the log file. The TUI
	// never sets it because it owns the terminal.
	LogToStderr bool
}

// App holds every long-lived collaborator of one client instance.
type App struct {
	Config  config.Config
	Log     *zap.Logger
	Client  *blogapi.Client
	Stores  *state.Stores
	Service *blog.Service
}

// New loads configuration and wires the logger, API client, stores and
// service, then restores any saved session. Nothing touches the network.
func New(opts Options) (*App, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if v := strings.TrimSpace(opts.APIURL); v != "" {
		cfg.APIURL = v
	}
	if v := strings.TrimSpace(opts.LogLevel); v != "" {
		cfg.LogLevel = v
	}

	logPath := cfg.LogFile
	if opts.LogToStderr {
		logPath = ""
	}
	log, err := logging.New(cfg.LogLevel, logPath)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	client, err := blogapi.NewClient(cfg.APIURL,
		blogapi.WithTimeout(cfg.RequestTimeout()),
		blogapi.WithLogger(log.Named("api")),
	)
	if err != nil {
		_ = log.Sync()
		return nil, fmt.Errorf("init api client: %w", err)
	}

	storage, err := session.NewFileStorage(cfg.SessionPath)
	if err != nil {
		_ = log.Sync()
		return nil, fmt.Errorf("init session storage: %w", err)
	}

	stores := &state.Stores{}
	svc := blog.NewService(client, stores, storage,
		blog.WithLogger(log.Named("blog")),
		blog.WithNotifyFor(cfg.NotifyFor()),
	)
	if sess, ok := svc.Restore(); ok {
		log.Info("session restored", zap.String("username", sess.Username))
	}

	return &App{
		Config:  cfg,
		Log:     log,
		Client:  client,
		Stores:  stores,
		Service: svc,
	}, nil
}

// Bootstrap performs the initial load of posts and authors concurrently.
// Each load runs to completion on its own; a failure in one never aborts the
// other. Failures have already been published as notifications and the
// first one is returned.
func (a *App) Bootstrap(ctx context.Context) error {
	var g errgroup.Group
	g.Go(func() error { return a.Service.LoadPosts(ctx) })
	g.Go(func() error { return a.Service.LoadAuthors(ctx) })
	return g.Wait()
}

// Close flushes buffered log entries.
func (a *App) Close() {
	_ = a.Log.Sync()
}

// Run boots the TUI until the user quits or ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	opts.LogToStderr = false
	a, err := New(opts)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := a.Bootstrap(ctx); err != nil {
		// The banner already shows it; the UI starts anyway.
		a.Log.Warn("initial load failed", zap.Error(err))
	}
	if interval := a.Config.RefreshInterval(); interval > 0 {
		StartPoller(ctx, a.Service, interval, a.Log.Named("poller"))
	}

	return ui.Run(ui.Options{
		Context:   ctx,
		Service:   a.Service,
		Log:       a.Log.Named("ui"),
		ThemeName: prefs.Load(opts.PrefsPath).Theme,
		PrefsPath: opts.PrefsPath,
	})
}
