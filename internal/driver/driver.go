/*
Package driver owns the single maze of a process and decides when it ticks.

The engine in package maze only moves when told to. A [Driver] serialises all
access to it: ticks from the timer loop, manual steps and commands from
clients never overlap, so every command lands between two ticks. After each
tick that did work the new frame is fanned out to subscribers, and a finished
search is handed to the [Recorder].
*/
package driver

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vancomm/maze-server/internal/maze"
	"github.com/vancomm/maze-server/internal/metrics"
)

// Run describes a finished search.
type Run struct {
	ID         uuid.UUID
	Rows       int
	Cols       int
	Mode       maze.Mode
	Moves      int
	PathLength int
	Ticks      int
	TreeWeight int64
	StartedAt  time.Time
	SolvedAt   time.Time
}

type Recorder interface {
	RecordRun(ctx context.Context, run Run) error
}

type Option func(*Driver)

func WithRecorder(r Recorder) Option {
	return func(d *Driver) {
		d.recorder = r
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(d *Driver) {
		d.metrics = m
	}
}

func WithClock(now func() time.Time) Option {
	return func(d *Driver) {
		d.now = now
	}
}

const subscriberBuffer = 16

type Driver struct {
	logger   *slog.Logger
	metrics  *metrics.Metrics
	recorder Recorder
	interval time.Duration
	now      func() time.Time

	mu            sync.Mutex
	maze          *maze.Maze
	searchStarted time.Time

	subMu sync.Mutex
	subs  map[chan maze.Frame]struct{}
}

func New(logger *slog.Logger, m *maze.Maze, interval time.Duration, opts ...Option) *Driver {
	d := &Driver{
		logger:   logger,
		interval: interval,
		now:      time.Now,
		maze:     m,
		subs:     make(map[chan maze.Frame]struct{}),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.metrics == nil {
		d.metrics = metrics.New()
	}
	return d
}

// Run ticks the maze every interval until ctx is done.
func (d *Driver) Run(ctx context.Context) error {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	d.logger.Info("driver started", slog.Duration("interval", d.interval))
	for {
		select {
		case <-ctx.Done():
			d.logger.Info("driver stopped")
			return nil
		case <-ticker.C:
			if _, err := d.Step(ctx, 1); err != nil {
				return err
			}
		}
	}
}

// advance wraps one engine tick, turning an invariant breach into an error.
func (d *Driver) advance() (err error) {
	defer func() {
		if r := recover(); r != nil {
			ae, ok := r.(maze.AssertionError)
			if !ok {
				panic(r)
			}
			err = fmt.Errorf("maze invariant violated: %w", ae)
		}
	}()
	d.maze.Advance()
	return nil
}

// Step advances the maze up to n times, stopping early once it has nothing
// left to do, and returns the resulting frame.
func (d *Driver) Step(ctx context.Context, n int) (maze.Frame, error) {
	var (
		run    *Run
		worked bool
		err    error
	)

	d.mu.Lock()
	for range n {
		if d.maze.Idle() {
			break
		}
		phase := d.maze.Phase()
		if err = d.advance(); err != nil {
			break
		}
		worked = true
		d.metrics.Ticks.WithLabelValues(phase.String()).Inc()
		if d.maze.Phase() == maze.Solved {
			run = d.finishRun()
			break
		}
	}
	d.metrics.Worklist.Set(float64(d.maze.WorklistLen()))
	frame := d.maze.Snapshot()
	if worked {
		d.broadcast(frame)
	}
	d.mu.Unlock()

	if err != nil {
		d.logger.Error("tick failed", slog.Any("error", err))
		return frame, err
	}
	if run != nil {
		d.record(ctx, *run)
	}
	return frame, nil
}

// finishRun must be called with d.mu held.
func (d *Driver) finishRun() *Run {
	summary, ok := d.maze.Summary()
	if !ok {
		return nil
	}
	var weight int64
	for _, e := range d.maze.TreeEdges() {
		weight += int64(e.Weight)
	}

	mode := summary.Mode.String()
	d.metrics.Solved.WithLabelValues(mode).Inc()
	d.metrics.Moves.WithLabelValues(mode).Observe(float64(summary.Moves))

	return &Run{
		ID:         uuid.New(),
		Rows:       d.maze.Rows(),
		Cols:       d.maze.Cols(),
		Mode:       summary.Mode,
		Moves:      summary.Moves,
		PathLength: summary.PathLength,
		Ticks:      summary.Ticks,
		TreeWeight: weight,
		StartedAt:  d.searchStarted,
		SolvedAt:   d.now(),
	}
}

func (d *Driver) record(ctx context.Context, run Run) {
	d.logger.Info(
		"maze solved",
		slog.String("run", run.ID.String()),
		slog.String("mode", run.Mode.String()),
		slog.Int("moves", run.Moves),
		slog.Int("path_length", run.PathLength),
	)
	if d.recorder == nil {
		return
	}
	if err := d.recorder.RecordRun(ctx, run); err != nil {
		d.logger.Error("unable to record run", slog.String("run", run.ID.String()), slog.Any("error", err))
	}
}

// Search asks the maze to start a search in mode. It reports whether the
// request was accepted.
func (d *Driver) Search(mode maze.Mode) bool {
	d.mu.Lock()
	ok := d.maze.RequestSearch(mode)
	if ok {
		d.searchStarted = d.now()
	}
	frame := d.maze.Snapshot()
	if ok {
		d.broadcast(frame)
	}
	d.mu.Unlock()

	if ok {
		d.logger.Debug("search requested", slog.String("mode", mode.String()))
	} else {
		d.logger.Debug("search request ignored", slog.String("mode", mode.String()), slog.String("phase", frame.Phase.String()))
	}
	return ok
}

// Reset rebuilds the maze with the given dimensions.
func (d *Driver) Reset(rows, cols int) (maze.Frame, error) {
	d.mu.Lock()
	err := d.maze.Reset(rows, cols)
	frame := d.maze.Snapshot()
	if err == nil {
		d.broadcast(frame)
	}
	d.mu.Unlock()

	if err != nil {
		return frame, err
	}
	d.metrics.Resets.Inc()
	d.logger.Debug("maze reset", slog.Int("rows", rows), slog.Int("cols", cols))
	return frame, nil
}

func (d *Driver) Snapshot() maze.Frame {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.maze.Snapshot()
}

// Dimensions returns the current rows and cols.
func (d *Driver) Dimensions() (int, int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.maze.Rows(), d.maze.Cols()
}

// Subscribe returns a channel receiving a frame after every tick that did
// work and after every accepted command. Frames are dropped for a subscriber
// that falls behind. The returned func unsubscribes and closes the channel.
func (d *Driver) Subscribe() (<-chan maze.Frame, func()) {
	ch := make(chan maze.Frame, subscriberBuffer)

	d.subMu.Lock()
	d.subs[ch] = struct{}{}
	d.metrics.Subscribers.Set(float64(len(d.subs)))
	d.subMu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			d.subMu.Lock()
			delete(d.subs, ch)
			d.metrics.Subscribers.Set(float64(len(d.subs)))
			d.subMu.Unlock()
			close(ch)
		})
	}
}

// broadcast must be called with d.mu held so subscribers see frames in the
// order the maze changed.
func (d *Driver) broadcast(frame maze.Frame) {
	d.subMu.Lock()
	defer d.subMu.Unlock()
	for ch := range d.subs {
		select {
		case ch <- frame:
		default:
		}
	}
}
