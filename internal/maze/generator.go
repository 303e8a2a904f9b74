package maze

import "fmt"

// generator grows a minimum spanning tree over the grid with Kruskal's
// algorithm, one candidate edge per step.
type generator struct {
	pool   EdgePool
	cursor int
	tree   []Edge
	sets   *DisjointSet
	target int
}

func newGenerator(g *Grid, pool EdgePool) *generator {
	return &generator{
		pool:   pool,
		tree:   make([]Edge, 0, g.Len()-1),
		sets:   NewDisjointSet(g.Len()),
		target: g.Len() - 1,
	}
}

func (gen *generator) done() bool {
	return len(gen.tree) == gen.target
}

// step considers the next candidate edge. It reports whether the edge was
// accepted into the tree. A finished generator does nothing.
//
// panics [AssertionError]
func (gen *generator) step() bool {
	if gen.done() {
		return false
	}
	if gen.cursor >= len(gen.pool) {
		panic(AssertionError{fmt.Sprintf(
			"candidate edges exhausted with %d of %d tree edges", len(gen.tree), gen.target,
		)})
	}

	e := gen.pool[gen.cursor]
	gen.cursor++

	repTo := gen.sets.Find(e.To)
	repFrom := gen.sets.Find(e.From)
	if repTo == repFrom {
		return false /* would close a cycle */
	}
	gen.tree = append(gen.tree, e)
	gen.sets.Union(repTo, repFrom)
	return true
}

func (gen *generator) considered() int {
	return gen.cursor
}

func (gen *generator) discarded() int {
	return gen.cursor - len(gen.tree)
}
