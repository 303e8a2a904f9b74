package maze

import (
	"fmt"
	"strings"
)

type Mode uint8

const (
	NoMode Mode = iota
	DepthFirst
	BreadthFirst
)

func (m Mode) String() string {
	switch m {
	case NoMode:
		return "none"
	case DepthFirst:
		return "dfs"
	case BreadthFirst:
		return "bfs"
	}
	return fmt.Sprintf("Unknown mode: %d", uint8(m))
}

func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Mode) UnmarshalText(text []byte) error {
	if string(text) == NoMode.String() {
		*m = NoMode
		return nil
	}
	mode, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = mode
	return nil
}

func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "d", "dfs", "depth-first":
		return DepthFirst, nil
	case "b", "bfs", "breadth-first":
		return BreadthFirst, nil
	}
	return NoMode, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Worklist holds the cells waiting to be processed by a search. Items are
// always removed from the front; the mode decides where new items go: at the
// front for depth-first (a stack), at the back for breadth-first (a queue).
type Worklist struct {
	mode Mode
	buf  []CellID
	head int
	n    int
}

func NewWorklist(mode Mode) *Worklist {
	return &Worklist{mode: mode}
}

func (w *Worklist) Mode() Mode {
	return w.mode
}

func (w *Worklist) Len() int {
	return w.n
}

// Insert adds c according to the worklist's mode.
func (w *Worklist) Insert(c CellID) {
	if w.mode == DepthFirst {
		w.PushFront(c)
	} else {
		w.PushBack(c)
	}
}

func (w *Worklist) PushFront(c CellID) {
	w.grow()
	w.head = (w.head - 1 + len(w.buf)) % len(w.buf)
	w.buf[w.head] = c
	w.n++
}

func (w *Worklist) PushBack(c CellID) {
	w.grow()
	w.buf[(w.head+w.n)%len(w.buf)] = c
	w.n++
}

// Pop removes and returns the front item.
func (w *Worklist) Pop() (CellID, bool) {
	if w.n == 0 {
		return NoCell, false
	}
	c := w.buf[w.head]
	w.head = (w.head + 1) % len(w.buf)
	w.n--
	return c, true
}

// Items returns the pending cells from front to back.
func (w *Worklist) Items() []CellID {
	items := make([]CellID, w.n)
	for i := range w.n {
		items[i] = w.buf[(w.head+i)%len(w.buf)]
	}
	return items
}

func (w *Worklist) grow() {
	if w.n < len(w.buf) {
		return
	}
	buf := make([]CellID, max(8, 2*len(w.buf)))
	for i := range w.n {
		buf[i] = w.buf[(w.head+i)%len(w.buf)]
	}
	w.buf = buf
	w.head = 0
}
