package driver

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/maze-server/internal/maze"
)

type recorderStub struct {
	mu   sync.Mutex
	runs []Run
}

func (r *recorderStub) RecordRun(_ context.Context, run Run) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.runs = append(r.runs, run)
	return nil
}

func (r *recorderStub) Runs() []Run {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Run(nil), r.runs...)
}

func newTestDriver(t *testing.T, rows, cols int, opts ...Option) *Driver {
	t.Helper()
	m, err := maze.New(rows, cols, rand.New(rand.NewPCG(1, 2)))
	require.NoError(t, err)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(logger, m, time.Millisecond, opts...)
}

func TestStepStopsWhenIdle(t *testing.T) {
	d := newTestDriver(t, 4, 4)

	frame, err := d.Step(context.Background(), 1_000)
	require.NoError(t, err)
	assert.Equal(t, maze.Ready, frame.Phase)
	assert.Equal(t, 15, frame.TreeEdges)

	again, err := d.Step(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, frame.Ticks, again.Ticks)
}

func TestSolveIsRecorded(t *testing.T) {
	rec := &recorderStub{}
	solvedAt := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	d := newTestDriver(t, 5, 6, WithRecorder(rec), WithClock(func() time.Time { return solvedAt }))
	ctx := context.Background()

	assert.False(t, d.Search(maze.BreadthFirst), "search accepted while generating")

	_, err := d.Step(ctx, 1_000)
	require.NoError(t, err)
	require.True(t, d.Search(maze.BreadthFirst))

	frame, err := d.Step(ctx, 10_000)
	require.NoError(t, err)
	require.Equal(t, maze.Solved, frame.Phase)
	require.NotNil(t, frame.Summary)
	assert.Equal(t, fmt.Sprintf("Maze Solved in %d moves!", frame.Summary.Moves), frame.Message)

	runs := rec.Runs()
	require.Len(t, runs, 1)
	run := runs[0]
	assert.Equal(t, maze.BreadthFirst, run.Mode)
	assert.Equal(t, 5, run.Rows)
	assert.Equal(t, 6, run.Cols)
	assert.Equal(t, frame.Summary.Moves, run.Moves)
	assert.Equal(t, frame.Summary.PathLength, run.PathLength)
	assert.Equal(t, solvedAt, run.StartedAt)
	assert.Equal(t, solvedAt, run.SolvedAt)
	assert.Positive(t, run.TreeWeight)
	assert.NotZero(t, run.ID)

	_, err = d.Step(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, rec.Runs(), 1, "solved maze recorded twice")
}

func TestSubscribe(t *testing.T) {
	d := newTestDriver(t, 3, 3)
	frames, unsubscribe := d.Subscribe()

	_, err := d.Step(context.Background(), 1)
	require.NoError(t, err)

	select {
	case f := <-frames:
		assert.Equal(t, 1, f.Ticks)
	case <-time.After(time.Second):
		t.Fatal("no frame after tick")
	}

	unsubscribe()
	unsubscribe()
	_, ok := <-frames
	assert.False(t, ok)
}

func TestSubscriberDropsWhenFull(t *testing.T) {
	d := newTestDriver(t, 10, 10)
	frames, unsubscribe := d.Subscribe()
	defer unsubscribe()

	for range subscriberBuffer * 2 {
		_, err := d.Step(context.Background(), 1)
		require.NoError(t, err)
	}
	assert.Len(t, frames, subscriberBuffer)
}

func TestReset(t *testing.T) {
	d := newTestDriver(t, 3, 3)
	_, err := d.Step(context.Background(), 1_000)
	require.NoError(t, err)

	frame, err := d.Reset(2, 7)
	require.NoError(t, err)
	assert.Equal(t, maze.Generating, frame.Phase)
	assert.Equal(t, 0, frame.Ticks)
	rows, cols := d.Dimensions()
	assert.Equal(t, 2, rows)
	assert.Equal(t, 7, cols)

	_, err = d.Reset(0, 7)
	assert.ErrorIs(t, err, maze.ErrInvalidDimensions)
	rows, cols = d.Dimensions()
	assert.Equal(t, 2, rows)
	assert.Equal(t, 7, cols)
}

func TestRunStopsOnCancel(t *testing.T) {
	d := newTestDriver(t, 3, 3)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error)
	go func() { done <- d.Run(ctx) }()

	require.Eventually(t, func() bool {
		return d.Snapshot().Phase == maze.Ready
	}, time.Second, time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("driver did not stop")
	}
}

func TestFramesArriveInOrder(t *testing.T) {
	d := newTestDriver(t, 3, 3)
	frames, unsubscribe := d.Subscribe()
	ctx := context.Background()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for range 200 {
			_, err := d.Step(ctx, 1)
			assert.NoError(t, err)
		}
	}()
	go func() {
		defer wg.Done()
		for rows := 4; rows < 12; rows++ {
			_, err := d.Reset(rows, 3)
			assert.NoError(t, err)
		}
	}()

	var received []maze.Frame
	done := make(chan struct{})
	go func() {
		defer close(done)
		for f := range frames {
			received = append(received, f)
		}
	}()
	wg.Wait()
	unsubscribe()
	<-done

	require.NotEmpty(t, received)
	for i := 1; i < len(received); i++ {
		prev, cur := received[i-1], received[i]
		require.GreaterOrEqual(t, cur.Rows, prev.Rows, "frame %d from an older maze", i)
		if cur.Rows == prev.Rows {
			require.Greater(t, cur.Ticks, prev.Ticks, "frame %d went back in time", i)
		}
	}
}
