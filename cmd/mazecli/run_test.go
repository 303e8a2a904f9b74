package main

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/maze-server/internal/maze"
)

func init() {
	log.SetOutput(io.Discard)
}

func TestRunMaze(t *testing.T) {
	for _, mode := range []maze.Mode{maze.DepthFirst, maze.BreadthFirst} {
		t.Run(mode.String(), func(t *testing.T) {
			var out bytes.Buffer
			summary, err := runMaze(context.Background(), &out, runOptions{
				rows: 6, cols: 8, seed: 3, seeded: true, mode: mode, maxTicks: 10_000,
			})
			require.NoError(t, err)
			assert.Equal(t, mode, summary.Mode)
			assert.GreaterOrEqual(t, summary.Moves, summary.PathLength-1)
			assert.True(t, strings.HasSuffix(out.String(), summary.String()+"\n"))
		})
	}
}

func TestRunMazeSeeded(t *testing.T) {
	opts := runOptions{rows: 5, cols: 5, seed: 11, seeded: true, mode: maze.BreadthFirst, maxTicks: 10_000}
	var a, b bytes.Buffer
	_, err := runMaze(context.Background(), &a, opts)
	require.NoError(t, err)
	_, err = runMaze(context.Background(), &b, opts)
	require.NoError(t, err)
	assert.Equal(t, a.String(), b.String())
}

func TestRunMazeTickLimit(t *testing.T) {
	_, err := runMaze(context.Background(), io.Discard, runOptions{
		rows: 10, cols: 10, mode: maze.DepthFirst, maxTicks: 5,
	})
	assert.ErrorIs(t, err, ErrTickLimit)
}

func TestRunMazeCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := runMaze(ctx, io.Discard, runOptions{rows: 3, cols: 3, mode: maze.DepthFirst, maxTicks: 100})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunMazeBadDimensions(t *testing.T) {
	_, err := runMaze(context.Background(), io.Discard, runOptions{rows: 0, cols: 3, mode: maze.DepthFirst, maxTicks: 100})
	assert.ErrorIs(t, err, maze.ErrInvalidDimensions)
}
