package checklist

import "github.com/idilsaglam/checklist/internal/model"

// Cell is one rendered checkbox, bound to an item key and a row.
type Cell struct {
	Key string
	Row int
}

// Name is the cell's persisted name, "<key>-<row>".
func (c Cell) Name() string { return model.CellName(c.Key, c.Row) }

// Grid mirrors the rendered structure: a header of items and, per row,
// the cells in render order. It is kept in step with the schema by the
// session and forwarded to the View.
type Grid struct {
	header []model.Item
	rows   [][]Cell
	view   View
}

func newGrid(items []model.Item, view View) *Grid {
	g := &Grid{rows: make([][]Cell, model.NumRows), view: view}
	g.rebuildHeader(items)
	for i := range g.rows {
		row := make([]Cell, 0, len(items))
		for _, it := range items {
			row = append(row, Cell{Key: it.Key, Row: i + 1})
		}
		g.rows[i] = row
	}
	return g
}

// Header returns the current column definitions.
func (g *Grid) Header() []model.Item {
	return append([]model.Item(nil), g.header...)
}

// Row returns the cells of roster row r (1-based).
func (g *Grid) Row(r int) []Cell {
	if !model.ValidRow(r) {
		return nil
	}
	return append([]Cell(nil), g.rows[r-1]...)
}

// rebuildHeader replaces the header wholesale, so repeated calls with
// the same items always converge.
func (g *Grid) rebuildHeader(items []model.Item) {
	g.header = append(g.header[:0], items...)
	g.view.RebuildHeader(g.Header())
}

func (g *Grid) addColumn(items []model.Item, it model.Item) {
	g.rebuildHeader(items)
	for i := range g.rows {
		g.rows[i] = append(g.rows[i], Cell{Key: it.Key, Row: i + 1})
		g.view.AppendCell(i+1, it.Key)
	}
}

// removeColumn drops the cell bound to key from every row. Cells are
// matched on their binding, not on column position or a raw name
// prefix: "att" must not take "attend-3".
func (g *Grid) removeColumn(items []model.Item, key string) {
	g.rebuildHeader(items)
	for i, row := range g.rows {
		for j, c := range row {
			if c.Key != key {
				continue
			}
			g.rows[i] = append(row[:j], row[j+1:]...)
			g.view.RemoveCell(i+1, key)
			break
		}
	}
}
