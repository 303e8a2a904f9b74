package maze

// search explores the linked maze from the origin one worklist item per step.
// The same step serves both modes; only the worklist's insertion discipline
// differs.
type search struct {
	grid      *Grid
	mode      Mode
	worklist  *Worklist
	backtrace map[CellID]CellID /* discovered cell -> its discoverer */
	expanded  []bool
	order     []CellID
	ticks     int

	trace CellID
	path  []CellID /* goal first */
}

func newSearch(g *Grid, mode Mode) *search {
	return &search{
		grid:      g,
		mode:      mode,
		worklist:  NewWorklist(mode),
		backtrace: make(map[CellID]CellID, g.Len()),
		expanded:  make([]bool, g.Len()),
		trace:     NoCell,
	}
}

// step processes one worklist item. It reports whether the goal was reached.
func (s *search) step() bool {
	s.ticks++
	origin, goal := s.grid.Origin(), s.grid.Goal()

	/*
	 * The origin goes back on the worklist every step, whether or not it has
	 * been explored already. Once it has, popping it is a no-op.
	 */
	s.worklist.PushBack(origin)

	next, ok := s.worklist.Pop()
	if !ok {
		return false
	}
	if next == goal {
		return true
	}
	if s.expanded[next] {
		return false
	}

	cell := s.grid.cell(next)
	for _, d := range directions {
		nb := cell.Neighbors[d]
		if nb == NoCell || nb == origin {
			continue
		}
		if _, seen := s.backtrace[nb]; seen {
			continue
		}
		s.worklist.Insert(nb)
		s.backtrace[nb] = next
		if s.grid.cell(nb).Status == Unvisited {
			s.grid.setStatus(nb, Frontier)
		}
	}
	s.expanded[next] = true
	s.order = append(s.order, next)
	s.grid.setStatus(next, Visited)
	return false
}

func (s *search) discovered() int {
	return len(s.backtrace)
}
