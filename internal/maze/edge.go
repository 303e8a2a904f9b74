package maze

import (
	"fmt"
	"math/rand/v2"
	"slices"
)

// MaxWeight bounds the random weight drawn for each candidate edge.
const MaxWeight = 42000

// Edge is a potential passage between two adjacent cells. To is always the
// top or left endpoint.
type Edge struct {
	To     CellID `json:"to"`
	From   CellID `json:"from"`
	Weight int    `json:"weight"`
}

func (e Edge) String() string {
	return fmt.Sprintf("%d-%d(%d)", e.To, e.From, e.Weight)
}

type EdgePool []Edge

// newEdgePool lists every edge between adjacent cells of g, row by row: for
// each cell the edge to its right comes before the edge below it. Weights are
// drawn from r and the pool is then sorted by ascending weight, keeping the
// generation order among equal weights.
func newEdgePool(g *Grid, r *rand.Rand) EdgePool {
	pool := make(EdgePool, 0, 2*g.Rows*g.Cols)
	for row := range g.Rows {
		for col := range g.Cols {
			if col+1 < g.Cols {
				pool = append(pool, Edge{
					To:     g.At(col, row),
					From:   g.At(col+1, row),
					Weight: r.IntN(MaxWeight),
				})
			}
			if row+1 < g.Rows {
				pool = append(pool, Edge{
					To:     g.At(col, row),
					From:   g.At(col, row+1),
					Weight: r.IntN(MaxWeight),
				})
			}
		}
	}
	slices.SortStableFunc(pool, func(a, b Edge) int {
		return a.Weight - b.Weight
	})
	return pool
}

func (p EdgePool) TotalWeight() int {
	total := 0
	for _, e := range p {
		total += e.Weight
	}
	return total
}
