package maze

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func drain(w *Worklist) []CellID {
	var out []CellID
	for {
		c, ok := w.Pop()
		if !ok {
			return out
		}
		out = append(out, c)
	}
}

func TestWorklistDisciplines(t *testing.T) {
	tests := []struct {
		mode Mode
		want []CellID
	}{
		{DepthFirst, []CellID{3, 2, 1}},
		{BreadthFirst, []CellID{1, 2, 3}},
	}
	for _, test := range tests {
		t.Run(test.mode.String(), func(t *testing.T) {
			w := NewWorklist(test.mode)
			for _, c := range []CellID{1, 2, 3} {
				w.Insert(c)
			}
			assert.Equal(t, 3, w.Len())
			assert.Equal(t, test.want, drain(w))
			assert.Equal(t, 0, w.Len())
		})
	}
}

func TestWorklistPushBackInDepthFirst(t *testing.T) {
	w := NewWorklist(DepthFirst)
	w.PushBack(0)
	w.Insert(1)
	w.Insert(2)
	w.PushBack(0)
	assert.Equal(t, []CellID{2, 1, 0, 0}, w.Items())
}

func TestWorklistGrowsAcrossWrap(t *testing.T) {
	w := NewWorklist(BreadthFirst)
	var want []CellID
	for i := range 6 {
		w.Insert(CellID(i))
	}
	for range 4 {
		w.Pop()
	}
	want = append(want, 4, 5)
	for i := 6; i < 40; i++ {
		w.Insert(CellID(i))
		want = append(want, CellID(i))
	}
	w.PushFront(99)
	want = append([]CellID{99}, want...)
	assert.Equal(t, want, w.Items())
	assert.Equal(t, want, drain(w))
}

func TestWorklistPopEmpty(t *testing.T) {
	c, ok := NewWorklist(BreadthFirst).Pop()
	assert.False(t, ok)
	assert.Equal(t, NoCell, c)
}

func TestParseMode(t *testing.T) {
	for _, s := range []string{"d", "DFS", "depth-first"} {
		m, err := ParseMode(s)
		assert.NoError(t, err)
		assert.Equal(t, DepthFirst, m)
	}
	for _, s := range []string{"b", "bfs", " Breadth-First "} {
		m, err := ParseMode(s)
		assert.NoError(t, err)
		assert.Equal(t, BreadthFirst, m)
	}
	_, err := ParseMode("astar")
	assert.True(t, errors.Is(err, ErrUnknownMode))
}
