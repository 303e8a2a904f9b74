package maze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// handLinked returns a 2x2 grid whose passages are 0-1, 0-2 and 1-3:
//
//	0 1
//	2 3
func handLinked() *Grid {
	g := newGrid(2, 2)
	link(g, []Edge{{To: 0, From: 1}, {To: 0, From: 2}, {To: 1, From: 3}})
	return g
}

func TestLinkSetsBothSides(t *testing.T) {
	g := handLinked()
	assert.Equal(t, [4]CellID{NoCell, 1, NoCell, 2}, g.Cell(0).Neighbors)
	assert.Equal(t, [4]CellID{NoCell, NoCell, 0, 3}, g.Cell(1).Neighbors)
	assert.Equal(t, [4]CellID{0, NoCell, NoCell, NoCell}, g.Cell(2).Neighbors)
	assert.Equal(t, [4]CellID{1, NoCell, NoCell, NoCell}, g.Cell(3).Neighbors)
}

func TestDepthFirstStepOrder(t *testing.T) {
	g := handLinked()
	s := newSearch(g, DepthFirst)

	require.False(t, s.step())
	assert.Equal(t, []CellID{2, 1}, s.worklist.Items())
	assert.Equal(t, map[CellID]CellID{1: 0, 2: 0}, s.backtrace)
	assert.Equal(t, Visited, g.Cell(0).Status)
	assert.Equal(t, Frontier, g.Cell(1).Status)

	require.False(t, s.step()) // 2 is a dead end
	require.False(t, s.step()) // 1 discovers the goal
	assert.Equal(t, []CellID{3, 0, 0}, s.worklist.Items())
	assert.Equal(t, Goal, g.Cell(3).Status)

	require.True(t, s.step())
	assert.Equal(t, []CellID{0, 2, 1}, s.order)

	assert.False(t, s.beginTrace())
	assert.False(t, s.traceStep())
	assert.True(t, s.traceStep())
	assert.Equal(t, []CellID{3, 1, 0}, s.path)
	for _, c := range []CellID{0, 1, 3} {
		assert.Equal(t, OnPath, g.Cell(c).Status)
	}
	assert.Equal(t, Visited, g.Cell(2).Status)

	assert.Equal(t, Summary{Mode: DepthFirst, Moves: 3, PathLength: 3, Ticks: 6}, s.summary())
}

func TestBreadthFirstStepOrder(t *testing.T) {
	g := handLinked()
	s := newSearch(g, BreadthFirst)

	require.False(t, s.step())
	assert.Equal(t, []CellID{1, 2}, s.worklist.Items())
	require.False(t, s.step())
	assert.Equal(t, []CellID{2, 0, 3}, s.worklist.Items())
	require.False(t, s.step())
	require.False(t, s.step()) // origin again, already explored
	assert.Equal(t, []CellID{3, 0, 0}, s.worklist.Items())
	require.True(t, s.step())
	assert.Equal(t, []CellID{0, 1, 2}, s.order)
}

func TestOriginIsNeverDiscovered(t *testing.T) {
	g := handLinked()
	s := newSearch(g, BreadthFirst)
	for !s.step() {
	}
	_, ok := s.backtrace[g.Origin()]
	assert.False(t, ok)
}

func TestTraceWithoutDiscovererPanics(t *testing.T) {
	g := handLinked()
	s := newSearch(g, BreadthFirst)
	s.beginTrace()
	assert.Panics(t, func() { s.traceStep() })
}
