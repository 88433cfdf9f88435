// Package app orchestrates all components of prbridge.
package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/prbridge/prbridge/internal/adapters/git"
	"github.com/prbridge/prbridge/internal/config"
	"github.com/prbridge/prbridge/internal/domain/events"
	"github.com/prbridge/prbridge/internal/forge"
	"github.com/prbridge/prbridge/internal/hub"
	"github.com/prbridge/prbridge/internal/picker"
	"github.com/prbridge/prbridge/internal/report"
	"github.com/prbridge/prbridge/internal/rpc/handler"
	"github.com/prbridge/prbridge/internal/rpc/handler/methods"
	"github.com/prbridge/prbridge/internal/server/ws"
	"github.com/prbridge/prbridge/internal/session"
	"github.com/prbridge/prbridge/internal/state"
	"github.com/prbridge/prbridge/internal/status"
	"github.com/rs/zerolog/log"
)

// App is the main application struct that wires all components together.
type App struct {
	cfg     *config.Config
	version string

	hub        *hub.Hub
	store      *state.Store
	sess       *session.Session
	sctx       session.Context
	repo       *git.Repo
	forge      *forge.Client
	reporter   *report.Reporter
	indicator  *status.Indicator
	picker     *picker.Picker
	dispatcher *handler.Dispatcher
	server     *ws.Server

	mu      sync.RWMutex
	running bool
}

// New creates a new App instance. This is the activation bootstrap: it
// captures the workspace root, loads persisted state and, when a token is
// present, initializes the forge client with it.
func New(cfg *config.Config, version string) (*App, error) {
	a := &App{
		cfg:     cfg,
		version: version,
		hub:     hub.New(),
	}

	a.repo = git.NewRepo(cfg.Repository.Path, cfg.Git.Command)

	owner, repoName := cfg.Forge.Owner, cfg.Forge.Repo
	if owner == "" && a.repo.IsGitRepo() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		derived, derivedName, err := a.repo.OriginOwnerRepo(ctx)
		cancel()
		if err != nil {
			log.Warn().Err(err).Msg("cannot derive owner/repo from origin remote; set forge.owner and forge.repo")
		} else {
			owner, repoName = derived, derivedName
		}
	}

	a.forge = forge.New(owner, repoName, cfg.Forge.APIBaseURL, log.Logger)

	statePath := cfg.State.Path
	if statePath == "" {
		statePath = state.DefaultPath()
	}
	store, err := state.Load(statePath)
	if err != nil {
		log.Warn().Str("path", statePath).Err(err).Msg("failed to load persisted state, starting empty")
	}
	a.store = store

	a.sess = session.New()
	if token := a.store.Token(); token != "" {
		a.sess.Establish(a.forge, token)
	}

	a.sctx = session.Context{
		WorkspaceRoot: a.repo.Root(),
		Session:       a.sess,
	}

	a.reporter = report.New(a.hub, log.Logger)
	a.indicator = status.New(a.forge, a.repo, a.hub, log.Logger)
	a.picker = picker.New(a.hub, log.Logger)

	registry := handler.NewRegistry()
	guard := handler.Guard(a.sctx, a.hub)

	registry.RegisterService(methods.NewPRService(
		a.forge, a.repo, a.picker, a.indicator, a.reporter, a.hub,
		cfg.Forge.BaseBranch, guard,
	))
	registry.RegisterService(methods.NewTokenService(a.sess, a.forge, a.store, a.hub))
	registry.RegisterService(methods.NewPickService(a.picker))
	registry.RegisterService(methods.NewStatusService(version, a.sctx, a.repo.Name(), a.indicator))

	a.dispatcher = handler.NewDispatcher(registry)

	a.server = ws.NewServer(cfg.Server.Host, cfg.Server.Port, a.dispatcher, a.hub, a.statusPayload)

	return a, nil
}

// Start starts the application and blocks until the context is cancelled.
func (a *App) Start(ctx context.Context) error {
	a.mu.Lock()
	if a.running {
		a.mu.Unlock()
		return fmt.Errorf("application is already running")
	}
	a.running = true
	a.mu.Unlock()

	if err := a.hub.Start(); err != nil {
		return fmt.Errorf("failed to start event hub: %w", err)
	}

	// Trace every broadcast event for debugging
	a.hub.Subscribe(hub.NewLogSubscriber("internal-logger", func(event events.Event) {
		log.Trace().
			Str("event_type", string(event.Type())).
			Time("timestamp", event.Timestamp()).
			Msg("event broadcast")
	}))

	if err := a.server.Start(); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	// Fire-and-forget relative to activation: the version notice and the
	// initial indicator value arrive whenever they arrive.
	go a.notifyVersionChange()
	if a.sess.Connected() {
		go func() {
			updateCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			a.indicator.Update(updateCtx, nil)
		}()
	}

	log.Info().
		Str("version", a.version).
		Str("workspace", a.sctx.WorkspaceRoot).
		Bool("connected", a.sess.Connected()).
		Msg("prbridge started")

	<-ctx.Done()

	return a.shutdown()
}

func (a *App) shutdown() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.server.Stop(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("server shutdown error")
	}

	if err := a.hub.Stop(); err != nil {
		log.Warn().Err(err).Msg("hub shutdown error")
	}

	a.mu.Lock()
	a.running = false
	a.mu.Unlock()

	log.Info().Msg("prbridge stopped")
	return nil
}

// notifyVersionChange shows a one-time setup prompt when the daemon version
// changed since the last notice and no token is configured yet.
func (a *App) notifyVersionChange() {
	stored := a.store.NotifiedVersion()
	if stored == a.version || a.sess.Token() != "" {
		return
	}

	a.hub.Publish(events.NewNotificationEvent(events.LevelInfo,
		fmt.Sprintf("prbridge %s: set a GitHub token to enable pull-request commands", a.version)))

	if err := a.store.SetNotifiedVersion(a.version); err != nil {
		log.Warn().Err(err).Msg("failed to persist notified version")
	}
}

// statusPayload backs GET /api/status.
func (a *App) statusPayload() interface{} {
	return methods.StatusResult{
		Version:       a.version,
		Connected:     a.sess.Connected(),
		WorkspaceRoot: a.sctx.WorkspaceRoot,
		RepoName:      a.repo.Name(),
		HasOpenPR:     a.indicator.HasOpenPR(),
	}
}
