package maze

import "fmt"

// DisjointSet maps every cell to a representative cell. A cell that maps to
// itself is the representative of its group.
type DisjointSet struct {
	rep []CellID
}

// NewDisjointSet returns a set of n cells, each in its own group.
func NewDisjointSet(n int) *DisjointSet {
	d := &DisjointSet{rep: make([]CellID, n)}
	for i := range d.rep {
		d.rep[i] = CellID(i)
	}
	return d
}

// Find follows representative links from c until it reaches a cell that maps
// to itself. Every cell walked on the way is pointed straight at that root.
//
// panics [AssertionError]
func (d *DisjointSet) Find(c CellID) CellID {
	d.check(c)
	root := c
	for d.rep[root] != root {
		root = d.rep[root]
	}
	for c != root {
		next := d.rep[c]
		d.rep[c] = root
		c = next
	}
	return root
}

// Union rewrites repA to point at repB. Both arguments must already be
// representatives.
//
// panics [AssertionError]
func (d *DisjointSet) Union(repA, repB CellID) {
	d.check(repA)
	d.check(repB)
	if d.rep[repA] != repA || d.rep[repB] != repB {
		panic(AssertionError{fmt.Sprintf("union of non-representatives %d, %d", repA, repB)})
	}
	d.rep[repA] = repB
}

// Sets returns the number of distinct groups.
func (d *DisjointSet) Sets() int {
	n := 0
	for i, r := range d.rep {
		if CellID(i) == r {
			n++
		}
	}
	return n
}

func (d *DisjointSet) Len() int {
	return len(d.rep)
}

func (d *DisjointSet) check(c CellID) {
	if c < 0 || int(c) >= len(d.rep) {
		panic(AssertionError{fmt.Sprintf("cell %d has no representative", c)})
	}
}
