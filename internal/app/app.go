package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"github.com/vancomm/maze-server/internal/config"
	"github.com/vancomm/maze-server/internal/database"
	"github.com/vancomm/maze-server/internal/driver"
	"github.com/vancomm/maze-server/internal/maze"
	"github.com/vancomm/maze-server/internal/metrics"
	"github.com/vancomm/maze-server/internal/middleware"
	"github.com/vancomm/maze-server/internal/repository"
)

type App struct {
	logger     *slog.Logger
	router     *http.ServeMux
	db         *pgxpool.Pool
	cfg        *config.Maze
	ws         *config.WebSocket
	metrics    *metrics.Metrics
	driver     *driver.Driver
	migrations fs.FS
}

func New(logger *slog.Logger, migrations fs.FS) *App {
	router := http.NewServeMux()

	app := &App{
		logger:     logger,
		router:     router,
		migrations: migrations,
	}

	return app
}

// setup reads the configuration and builds the maze, its driver and, when a
// database is configured, the run recorder.
func (a *App) setup(ctx context.Context) error {
	cfg, err := config.NewMaze()
	if err != nil {
		return fmt.Errorf("invalid maze config: %w", err)
	}
	a.cfg = cfg

	ws, err := config.NewWebSocket()
	if err != nil {
		return err
	}
	a.ws = ws

	a.metrics = metrics.New()
	opts := []driver.Option{driver.WithMetrics(a.metrics)}

	db, _, err := database.ConnectAndMigrate(ctx, a.migrations)
	switch {
	case errors.Is(err, config.ErrNoDatabase):
		a.logger.Warn("no database configured, solve runs will not be recorded")
	case err != nil:
		return fmt.Errorf("unable to connect to db: %w", err)
	default:
		a.db = db
		opts = append(opts, driver.WithRecorder(repository.New(db)))
	}

	m, err := maze.New(cfg.Rows, cfg.Cols, createRand(cfg.Seed))
	if err != nil {
		return err
	}
	a.driver = driver.New(a.logger.With(slog.String("component", "driver")), m, cfg.TickInterval, opts...)

	return nil
}

func (a *App) Start(ctx context.Context) error {
	if err := a.setup(ctx); err != nil {
		return err
	}
	if a.db != nil {
		defer a.db.Close()
	}

	a.loadRoutes()

	addr := config.Port()
	server := &http.Server{
		Addr: addr,
		Handler: middleware.Wrap(
			a.router,
			middleware.Logging(a.logger),
			middleware.Cors(config.AllowedOrigins()...),
		),
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return a.driver.Run(gCtx)
	})
	g.Go(func() error {
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("unable to listen and serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		sCtx, cancel := context.WithTimeout(context.Background(), time.Second*30)
		defer cancel()
		return server.Shutdown(sCtx)
	})

	a.logger.Info("server listening", slog.String("addr", addr))
	return g.Wait()
}
