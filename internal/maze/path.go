package maze

import "fmt"

// Summary describes a finished search run.
type Summary struct {
	Mode       Mode `json:"mode"`
	Moves      int  `json:"moves"`
	PathLength int  `json:"path_length"`
	Ticks      int  `json:"ticks"`
}

// Moves counts every cell the run discovered, not only the cells on the path.
func (s Summary) String() string {
	return fmt.Sprintf("Maze Solved in %d moves!", s.Moves)
}

// beginTrace starts path reconstruction at the goal. It reports whether the
// path is already complete, which only happens when the goal is the origin.
func (s *search) beginTrace() bool {
	goal := s.grid.Goal()
	s.grid.setStatus(goal, OnPath)
	s.trace = goal
	s.path = append(s.path[:0], goal)
	return goal == s.grid.Origin()
}

// traceStep marks the discoverer of the current path cell. It reports whether
// the origin has been reached.
//
// panics [AssertionError]
func (s *search) traceStep() bool {
	s.ticks++
	origin := s.grid.Origin()
	if s.trace == origin {
		return true
	}
	prev, ok := s.backtrace[s.trace]
	if !ok {
		panic(AssertionError{fmt.Sprintf("cell %d on path has no discoverer", s.trace)})
	}
	s.grid.setStatus(prev, OnPath)
	s.trace = prev
	s.path = append(s.path, prev)
	return prev == origin
}

func (s *search) summary() Summary {
	return Summary{
		Mode:       s.mode,
		Moves:      s.discovered(),
		PathLength: len(s.path),
		Ticks:      s.ticks,
	}
}
