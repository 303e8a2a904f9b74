/*
Package maze builds a random perfect maze over a rectangular grid and solves
it, one step at a time.

A [Maze] moves through its phases only when [Maze.Advance] is called: every
call does one bounded unit of work. Generation considers one candidate edge
per call (Kruskal's algorithm over a randomly weighted edge pool), the tick
after the spanning tree is complete links neighboring cells, and each search
call processes one worklist item, depth-first or breadth-first. Once the goal
is reached, the solution path is traced back one cell per call.

A Maze is not safe for concurrent use.
*/
package maze

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

type Phase uint8

const (
	Generating Phase = iota
	Ready
	Searching
	Tracing
	Solved
)

func (p Phase) String() string {
	switch p {
	case Generating:
		return "generating"
	case Ready:
		return "ready"
	case Searching:
		return "searching"
	case Tracing:
		return "tracing"
	case Solved:
		return "solved"
	}
	return fmt.Sprintf("Unknown phase: %d", uint8(p))
}

func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Phase) UnmarshalText(text []byte) error {
	for v := Generating; v <= Solved; v++ {
		if v.String() == string(text) {
			*p = v
			return nil
		}
	}
	return fmt.Errorf("unknown phase %q", text)
}

// state is everything a reset replaces.
type state struct {
	grid    *Grid
	pool    EdgePool
	gen     *generator
	linked  bool
	search  *search
	phase   Phase
	summary *Summary
	ticks   int
}

func newState(rows, cols int, r *rand.Rand) *state {
	grid := newGrid(rows, cols)
	pool := newEdgePool(grid, r)
	return &state{
		grid:  grid,
		pool:  pool,
		gen:   newGenerator(grid, pool),
		phase: Generating,
	}
}

type Maze struct {
	rnd *rand.Rand
	st  *state
}

// New creates a rows x cols maze whose edge weights are drawn from r.
func New(rows, cols int, r *rand.Rand) (*Maze, error) {
	if r == nil {
		return nil, errors.New("nil random source")
	}
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, rows, cols)
	}
	return &Maze{rnd: r, st: newState(rows, cols, r)}, nil
}

// Reset discards all state and starts generating a new rows x cols maze with
// freshly drawn weights. Invalid dimensions leave the maze untouched.
func (m *Maze) Reset(rows, cols int) error {
	if rows <= 0 || cols <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, rows, cols)
	}
	m.st = newState(rows, cols, m.rnd)
	return nil
}

// Advance performs one unit of work of the current phase. It does nothing
// when the maze is ready and no search has been requested, or when it is
// solved.
//
// panics [AssertionError]
func (m *Maze) Advance() {
	s := m.st
	switch s.phase {
	case Generating:
		if !s.gen.done() {
			s.gen.step()
			break
		}
		link(s.grid, s.gen.tree)
		s.linked = true
		s.phase = Ready
	case Searching:
		if s.search.step() {
			s.phase = Tracing
			if s.search.beginTrace() {
				s.finish()
			}
		}
	case Tracing:
		if s.search.traceStep() {
			s.finish()
		}
	default:
		return
	}
	s.ticks++
}

func (s *state) finish() {
	summary := s.search.summary()
	s.summary = &summary
	s.phase = Solved
}

// RequestSearch arms a search in the given mode. It is ignored, and returns
// false, until the maze is linked and while a search is running. Requesting a
// search on a solved maze starts a new run over the same maze.
func (m *Maze) RequestSearch(mode Mode) bool {
	s := m.st
	if mode != DepthFirst && mode != BreadthFirst {
		return false
	}
	if s.phase != Ready && s.phase != Solved {
		return false
	}
	if s.phase == Solved {
		s.grid.resetStatuses()
		s.summary = nil
	}
	s.search = newSearch(s.grid, mode)
	s.phase = Searching
	return true
}

func (m *Maze) Rows() int {
	return m.st.grid.Rows
}

func (m *Maze) Cols() int {
	return m.st.grid.Cols
}

func (m *Maze) Phase() Phase {
	return m.st.phase
}

// Idle reports whether Advance would currently do nothing.
func (m *Maze) Idle() bool {
	return m.st.phase == Ready || m.st.phase == Solved
}

func (m *Maze) Linked() bool {
	return m.st.linked
}

// SearchActive reports whether a search or its path tracing is in progress.
func (m *Maze) SearchActive() bool {
	return m.st.phase == Searching || m.st.phase == Tracing
}

// Mode returns the mode of the current or last search run.
func (m *Maze) Mode() Mode {
	if m.st.search == nil {
		return NoMode
	}
	return m.st.search.mode
}

// Ticks counts the Advance calls that did work since the last reset.
func (m *Maze) Ticks() int {
	return m.st.ticks
}

func (m *Maze) Origin() CellID {
	return m.st.grid.Origin()
}

func (m *Maze) Goal() CellID {
	return m.st.grid.Goal()
}

func (m *Maze) At(col, row int) CellID {
	return m.st.grid.At(col, row)
}

// panics [AssertionError]
func (m *Maze) Cell(id CellID) Cell {
	return m.st.grid.Cell(id)
}

func (m *Maze) Cells() []Cell {
	cells := make([]Cell, m.st.grid.Len())
	copy(cells, m.st.grid.cells)
	return cells
}

func (m *Maze) Grid() string {
	return m.st.grid.String()
}

// Candidates returns every potential edge in ascending weight order.
func (m *Maze) Candidates() []Edge {
	return append([]Edge(nil), m.st.pool...)
}

func (m *Maze) TotalWeight() int {
	return m.st.pool.TotalWeight()
}

// TreeEdges returns the accepted spanning tree edges in acceptance order.
func (m *Maze) TreeEdges() []Edge {
	return append([]Edge(nil), m.st.gen.tree...)
}

// Considered returns how many candidate edges generation has consumed.
func (m *Maze) Considered() int {
	return m.st.gen.considered()
}

func (m *Maze) Discarded() int {
	return m.st.gen.discarded()
}

// Find returns the representative of c in the generator's disjoint set.
//
// panics [AssertionError]
func (m *Maze) Find(c CellID) CellID {
	return m.st.gen.sets.Find(c)
}

func (m *Maze) Sets() int {
	return m.st.gen.sets.Sets()
}

// Walls returns the candidate edges that are not part of the spanning tree.
func (m *Maze) Walls() []Edge {
	inTree := make(map[[2]CellID]struct{}, len(m.st.gen.tree))
	for _, e := range m.st.gen.tree {
		inTree[[2]CellID{e.To, e.From}] = struct{}{}
	}
	walls := make([]Edge, 0, len(m.st.pool)-len(inTree))
	for _, e := range m.st.pool {
		if _, ok := inTree[[2]CellID{e.To, e.From}]; !ok {
			walls = append(walls, e)
		}
	}
	return walls
}

// Backtrace returns the cell that discovered c in the current search run.
func (m *Maze) Backtrace(c CellID) (CellID, bool) {
	if m.st.search == nil {
		return NoCell, false
	}
	prev, ok := m.st.search.backtrace[c]
	return prev, ok
}

func (m *Maze) Discovered() int {
	if m.st.search == nil {
		return 0
	}
	return m.st.search.discovered()
}

// Order returns the cells expanded by the current search run, in order.
func (m *Maze) Order() []CellID {
	if m.st.search == nil {
		return nil
	}
	return append([]CellID(nil), m.st.search.order...)
}

// Path returns the traced part of the solution path, origin first once the
// trace is complete.
func (m *Maze) Path() []CellID {
	if m.st.search == nil {
		return nil
	}
	path := make([]CellID, len(m.st.search.path))
	for i, c := range m.st.search.path {
		path[len(path)-1-i] = c
	}
	return path
}

func (m *Maze) WorklistLen() int {
	if m.st.search == nil {
		return 0
	}
	return m.st.search.worklist.Len()
}

// Summary returns the result of the last finished search run.
func (m *Maze) Summary() (Summary, bool) {
	if m.st.summary == nil {
		return Summary{}, false
	}
	return *m.st.summary, true
}
