package maze

// Frame is a read-only picture of a maze between two ticks, shaped for a
// renderer: cell statuses row-major and the walls still standing.
type Frame struct {
	Rows       int      `json:"rows"`
	Cols       int      `json:"cols"`
	Phase      Phase    `json:"phase"`
	Mode       Mode     `json:"mode"`
	Ticks      int      `json:"ticks"`
	Cells      []Status `json:"cells"`
	Walls      []Edge   `json:"walls"`
	TreeEdges  int      `json:"tree_edges"`
	Considered int      `json:"considered"`
	Worklist   int      `json:"worklist"`
	Discovered int      `json:"discovered"`
	Summary    *Summary `json:"summary,omitempty"`
	Message    string   `json:"message,omitempty"`
}

func (m *Maze) Snapshot() Frame {
	cells := make([]Status, m.st.grid.Len())
	for i, c := range m.st.grid.cells {
		cells[i] = c.Status
	}
	f := Frame{
		Rows:       m.Rows(),
		Cols:       m.Cols(),
		Phase:      m.Phase(),
		Mode:       m.Mode(),
		Ticks:      m.Ticks(),
		Cells:      cells,
		Walls:      m.Walls(),
		TreeEdges:  len(m.st.gen.tree),
		Considered: m.Considered(),
		Worklist:   m.WorklistLen(),
		Discovered: m.Discovered(),
	}
	if summary, ok := m.Summary(); ok {
		f.Summary = &summary
		f.Message = summary.String()
	}
	return f
}

// Status returns the status of the cell at col, row of the frame. ok is
// false when the position is outside the grid.
func (f Frame) Status(col, row int) (status Status, ok bool) {
	if col < 0 || col >= f.Cols || row < 0 || row >= f.Rows {
		return Unvisited, false
	}
	return f.Cells[row*f.Cols+col], true
}
