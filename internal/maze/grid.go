package maze

import (
	"fmt"
	"strings"
)

type CellID int

const NoCell CellID = -1

// Direction indexes a cell's neighbor slots. The declaration order is the
// order in which a search step looks at neighbors.
type Direction int

const (
	Top Direction = iota
	Right
	Left
	Bottom
)

var directions = [...]Direction{Top, Right, Left, Bottom}

func (d Direction) String() string {
	switch d {
	case Top:
		return "top"
	case Right:
		return "right"
	case Left:
		return "left"
	case Bottom:
		return "bottom"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

func (d Direction) Opposite() Direction {
	return Bottom - d
}

type Status uint8

const (
	Unvisited Status = iota
	Frontier
	Visited
	OnPath
	Start
	Goal
)

func (s Status) String() string {
	switch s {
	case Unvisited:
		return "unvisited"
	case Frontier:
		return "frontier"
	case Visited:
		return "visited"
	case OnPath:
		return "on-path"
	case Start:
		return "start"
	case Goal:
		return "goal"
	}
	return fmt.Sprintf("Unknown status: %d", uint8(s))
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(text []byte) error {
	for v := Unvisited; v <= Goal; v++ {
		if v.String() == string(text) {
			*s = v
			return nil
		}
	}
	return fmt.Errorf("unknown status %q", text)
}

type Cell struct {
	ID        CellID
	Col, Row  int
	Status    Status
	Neighbors [4]CellID
}

func (c Cell) Neighbor(d Direction) CellID {
	return c.Neighbors[d]
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.Col, c.Row)
}

// Grid is an arena of cells stored row-major; a cell's id is its index.
type Grid struct {
	Rows, Cols int
	cells      []Cell
}

func newGrid(rows, cols int) *Grid {
	g := &Grid{
		Rows:  rows,
		Cols:  cols,
		cells: make([]Cell, rows*cols),
	}
	for row := range rows {
		for col := range cols {
			id := CellID(row*cols + col)
			g.cells[id] = Cell{
				ID:        id,
				Col:       col,
				Row:       row,
				Neighbors: [4]CellID{NoCell, NoCell, NoCell, NoCell},
			}
		}
	}
	g.cells[g.Origin()].Status = Start
	g.cells[g.Goal()].Status = Goal
	return g
}

func (g *Grid) Len() int {
	return len(g.cells)
}

func (g *Grid) At(col, row int) CellID {
	if col < 0 || col >= g.Cols || row < 0 || row >= g.Rows {
		return NoCell
	}
	return CellID(row*g.Cols + col)
}

func (g *Grid) Origin() CellID {
	return 0
}

func (g *Grid) Goal() CellID {
	return CellID(len(g.cells) - 1)
}

// panics [AssertionError]
func (g *Grid) cell(id CellID) *Cell {
	if id < 0 || int(id) >= len(g.cells) {
		panic(AssertionError{fmt.Sprintf("cell %d is not in the grid", id)})
	}
	return &g.cells[id]
}

func (g *Grid) Cell(id CellID) Cell {
	return *g.cell(id)
}

func (g *Grid) setStatus(id CellID, s Status) {
	g.cell(id).Status = s
}

// resetStatuses puts every cell back to its pre-search tag.
func (g *Grid) resetStatuses() {
	for i := range g.cells {
		g.cells[i].Status = Unvisited
	}
	g.cells[g.Origin()].Status = Start
	g.cells[g.Goal()].Status = Goal
}

// String draws the grid with walls where two adjacent cells are not linked.
// Before linking every interior wall is drawn.
func (g *Grid) String() string {
	var b strings.Builder
	b.WriteString("+" + strings.Repeat("--+", g.Cols) + "\n")
	for row := range g.Rows {
		b.WriteString("|")
		for col := range g.Cols {
			c := g.cells[row*g.Cols+col]
			b.WriteString(statusGlyph(c.Status))
			if c.Neighbors[Right] == NoCell {
				b.WriteString("|")
			} else {
				b.WriteString(" ")
			}
		}
		b.WriteString("\n+")
		for col := range g.Cols {
			if g.cells[row*g.Cols+col].Neighbors[Bottom] == NoCell {
				b.WriteString("--+")
			} else {
				b.WriteString("  +")
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

func statusGlyph(s Status) string {
	switch s {
	case Frontier:
		return "? "
	case Visited:
		return ". "
	case OnPath:
		return "**"
	case Start:
		return "S "
	case Goal:
		return "G "
	default:
		return "  "
	}
}
