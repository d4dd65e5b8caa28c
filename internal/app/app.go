package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/thenoetrevino/mytasks/internal/config"
	"github.com/thenoetrevino/mytasks/internal/database"
	"github.com/thenoetrevino/mytasks/internal/events"
	"github.com/thenoetrevino/mytasks/internal/feature/details"
	"github.com/thenoetrevino/mytasks/internal/feature/home"
	"github.com/thenoetrevino/mytasks/internal/feature/newtask"
	"github.com/thenoetrevino/mytasks/internal/feature/selected"
	"github.com/thenoetrevino/mytasks/internal/feature/updatetask"
	"github.com/thenoetrevino/mytasks/internal/repository"
	"github.com/thenoetrevino/mytasks/internal/usecase"
)

// App holds the wired object graph shared by every front end: the TUI, the
// CLI commands and the HTTP API.
type App struct {
	db          *sql.DB
	eventClient events.EventPublisher
	logger      *slog.Logger

	// Store is the task DAO backing the repository
	Store *database.TaskDAO
	// Repo classifies store outcomes for the view models
	Repo     repository.TasksRepository
	UseCases usecase.Set
	// CreateTask is AddTask reporting the new id
	CreateTask usecase.CreateTask
	Selected   *selected.Holder

	cancel context.CancelFunc
}

// Open initializes the database from cfg, connects to the event daemon when
// it is running, and wires the application.
func Open(ctx context.Context, cfg *config.Config, opts ...Option) (*App, error) {
	ac := buildConfig(opts)

	db, err := database.InitDB(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if ac.eventClient == nil && !ac.noDaemon {
		ac.eventClient = connectDaemon(ctx, cfg.SocketPath, cfg.EventDebounce(), ac.logger)
	}

	return newApp(db, ac), nil
}

// New wires an application over an already initialized database
func New(db *sql.DB, opts ...Option) *App {
	return newApp(db, buildConfig(opts))
}

func buildConfig(opts []Option) *appConfig {
	ac := &appConfig{logger: slog.Default()}
	for _, opt := range opts {
		opt(ac)
	}
	return ac
}

func newApp(db *sql.DB, ac *appConfig) *App {
	ctx, cancel := context.WithCancel(context.Background())

	var daoOpts []database.Option
	if ac.eventClient != nil {
		daoOpts = append(daoOpts, database.WithPublisher(ac.eventClient))
	}
	store := database.NewTaskDAO(db, daoOpts...)

	if ac.eventClient != nil {
		if err := store.WatchExternal(ctx, ac.eventClient); err != nil {
			ac.logger.Warn("live updates from other processes disabled", "error", err)
		}
	}

	repo := repository.New(store)

	return &App{
		db:          db,
		eventClient: ac.eventClient,
		logger:      ac.logger,
		Store:       store,
		Repo:        repo,
		UseCases:    usecase.NewSet(repo),
		CreateTask:  usecase.CreateTask{Repo: repo},
		Selected:    &selected.Holder{},
		cancel:      cancel,
	}
}

// connectDaemon dials the daemon; a missing daemon only disables live
// updates between processes
func connectDaemon(ctx context.Context, socketPath string, debounce time.Duration, logger *slog.Logger) events.EventPublisher {
	client, err := events.NewClient(socketPath, debounce)
	if err != nil {
		logger.Warn("event client unavailable", "error", err)
		return nil
	}

	dialCtx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()

	if err := client.Connect(dialCtx); err != nil {
		logger.Info("daemon not reachable, running without live updates",
			"socket", socketPath, "reason", events.ClassifyDaemonError(err).Error())
		_ = client.Close()
		return nil
	}

	logger.Debug("connected to daemon", "socket", socketPath)
	return client
}

// NewHome creates the task list view model
func (a *App) NewHome() *home.ViewModel {
	return home.NewViewModel(a.UseCases.GetTasks, a.UseCases.UpdateTask)
}

// NewNewTask creates the create-task view model
func (a *App) NewNewTask() *newtask.ViewModel {
	return newtask.NewViewModel(a.UseCases.AddTask)
}

// NewUpdateTask creates the edit-task view model
func (a *App) NewUpdateTask() *updatetask.ViewModel {
	return updatetask.NewViewModel(a.UseCases.UpdateTask)
}

// NewDetails creates the details view model
func (a *App) NewDetails() *details.ViewModel {
	return details.NewViewModel(a.UseCases.DeleteTask)
}

// Connected reports whether writes are announced to the daemon
func (a *App) Connected() bool {
	return a.eventClient != nil
}

// Close stops watching the daemon, flushes pending events and closes the database
func (a *App) Close() error {
	a.cancel()

	var errs []error
	if a.eventClient != nil {
		if err := a.eventClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close event client: %w", err))
		}
	}
	if err := a.db.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close database: %w", err))
	}
	return errors.Join(errs...)
}
