package maze

// link turns the accepted tree edges into symmetric neighbor slots. It must
// run once, after the tree is complete.
func link(g *Grid, tree []Edge) {
	for _, e := range tree {
		to, from := g.cell(e.To), g.cell(e.From)
		switch {
		case to.Col < from.Col:
			to.Neighbors[Right] = from.ID
			from.Neighbors[Left] = to.ID
		case to.Col > from.Col:
			to.Neighbors[Left] = from.ID
			from.Neighbors[Right] = to.ID
		case to.Row < from.Row:
			to.Neighbors[Bottom] = from.ID
			from.Neighbors[Top] = to.ID
		case to.Row > from.Row:
			to.Neighbors[Top] = from.ID
			from.Neighbors[Bottom] = to.ID
		}
	}
}
