package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/vancomm/maze-server/internal/config"
	"github.com/vancomm/maze-server/internal/driver"
	"github.com/vancomm/maze-server/internal/repository"
)

var (
	ErrBadSteps       = fmt.Errorf("steps must be between 1 and %d", maxStepsPerRequest)
	ErrSearchRejected = errors.New("search can not start now")
	ErrNoRunsDatabase = errors.New("run history is not available")
	ErrDatabaseDown   = errors.New("database unavailable")
)

type RunLister interface {
	ListSolveRuns(ctx context.Context, f repository.SolveRunFilter) ([]repository.SolveRun, error)
}

type MazeHandler struct {
	logger *slog.Logger
	driver *driver.Driver
	cfg    *config.Maze
	ws     *config.WebSocket
	runs   RunLister
}

// NewMazeHandler builds the handler. runs may be nil when no database is
// configured; the history endpoint then answers 503.
func NewMazeHandler(
	logger *slog.Logger,
	d *driver.Driver,
	cfg *config.Maze,
	ws *config.WebSocket,
	runs RunLister,
) *MazeHandler {
	return &MazeHandler{
		logger: logger,
		driver: d,
		cfg:    cfg,
		ws:     ws,
		runs:   runs,
	}
}

func (h MazeHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	sendJSONOrLog(w, h.logger, h.driver.Snapshot())
}

func (h MazeHandler) Reset(w http.ResponseWriter, r *http.Request) {
	dto, err := ParseResetDTO(r.URL.Query())
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.logger, wrapError(err))
		return
	}

	rows, cols := dto.Dimensions(h.driver.Dimensions())
	if err := h.cfg.ValidateDimensions(rows, cols); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.logger, wrapError(err))
		return
	}

	frame, err := h.driver.Reset(rows, cols)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.logger, wrapError(err))
		return
	}

	sendJSONOrLog(w, h.logger, frame)
}

func (h MazeHandler) Search(w http.ResponseWriter, r *http.Request) {
	mode, err := ParseSearchDTO(r.URL.Query())
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.logger, wrapError(err))
		return
	}

	if !h.driver.Search(mode) {
		w.WriteHeader(http.StatusConflict)
		sendJSONOrLog(w, h.logger, wrapError(ErrSearchRejected))
		return
	}

	sendJSONOrLog(w, h.logger, h.driver.Snapshot())
}

func (h MazeHandler) Advance(w http.ResponseWriter, r *http.Request) {
	dto, err := ParseAdvanceDTO(r.URL.Query())
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.logger, wrapError(err))
		return
	}

	frame, err := h.driver.Step(r.Context(), dto.Steps)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("unable to advance maze", slog.Any("error", err))
		return
	}

	sendJSONOrLog(w, h.logger, frame)
}

func (h MazeHandler) Runs(w http.ResponseWriter, r *http.Request) {
	if h.runs == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		sendJSONOrLog(w, h.logger, wrapError(ErrNoRunsDatabase))
		return
	}

	filter, err := ParseRunsFilter(r.URL.Query())
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.logger, wrapError(err))
		return
	}

	runs, err := h.runs.ListSolveRuns(r.Context(), filter)
	if unavailable(err) {
		w.WriteHeader(http.StatusServiceUnavailable)
		sendJSONOrLog(w, h.logger, wrapError(ErrDatabaseDown))
		h.logger.Warn("database unavailable", slog.Any("error", err))
		return
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("unable to list runs", slog.Any("error", err))
		return
	}

	sendJSONOrLog(w, h.logger, runs)
}

func unavailable(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgerrcode.IsConnectionException(pgErr.Code) ||
			pgerrcode.IsInsufficientResources(pgErr.Code) ||
			pgErr.Code == pgerrcode.CannotConnectNow
	}
	var connErr *pgconn.ConnectError
	return errors.As(err, &connErr)
}
