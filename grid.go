package tabula

import "fmt"

// Auto marks a grid column or row as sized to fit its largest occupied cell.
const Auto = -1.0

// GridSpec holds the sizing policy of a grid. Replaced as a whole on every
// change.
type GridSpec struct {
	ColumnWidths []float64 // fixed width or Auto, one per column
	RowHeights   []float64 // fixed height or Auto, one per row
	// CellAlignment holds per-cell alignment indexed [col][row].
	CellAlignment [][]Alignment
	Spacing       float64
}

func (s GridSpec) clone() GridSpec {
	out := GridSpec{
		ColumnWidths:  append([]float64(nil), s.ColumnWidths...),
		RowHeights:    append([]float64(nil), s.RowHeights...),
		CellAlignment: make([][]Alignment, len(s.CellAlignment)),
		Spacing:       s.Spacing,
	}
	for i, col := range s.CellAlignment {
		out.CellAlignment[i] = append([]Alignment(nil), col...)
	}
	return out
}

// GridCell addresses one cell and the component it holds.
type GridCell struct {
	Col, Row  int
	Component Component
}

// Grid is a layout view holding a sparse two-dimensional array of
// components. Child X/Y are offsets inside the cell.
type Grid struct {
	ComponentBase
	// Cells holds the cell array indexed [col][row]; nil entries are empty.
	// Every mutation replaces the array.
	Cells *Property[[][]Component]
	// Spec holds column/row sizing, per-cell alignment and spacing.
	Spec *Property[GridSpec]
}

// NewGrid creates a grid with every column and row set to Auto and every
// cell centered.
func NewGrid(name string, x, y float64, cols, rows int, v Visual) *Grid {
	if cols < 0 || rows < 0 {
		panic("tabula: negative grid dimensions")
	}
	g := &Grid{}
	g.init(g, name, x, y, 0, 0, v)
	g.Cells = NewProperty(makeCells(cols, rows))
	spec := GridSpec{
		ColumnWidths:  make([]float64, cols),
		RowHeights:    make([]float64, rows),
		CellAlignment: make([][]Alignment, cols),
	}
	for i := range spec.ColumnWidths {
		spec.ColumnWidths[i] = Auto
		spec.CellAlignment[i] = make([]Alignment, rows)
		for j := range spec.CellAlignment[i] {
			spec.CellAlignment[i][j] = AlignCenter
		}
	}
	for i := range spec.RowHeights {
		spec.RowHeights[i] = Auto
	}
	g.Spec = NewProperty(spec)
	return g
}

func makeCells(cols, rows int) [][]Component {
	cells := make([][]Component, cols)
	for i := range cells {
		cells[i] = make([]Component, rows)
	}
	return cells
}

func cloneCells(cells [][]Component) [][]Component {
	out := make([][]Component, len(cells))
	for i, col := range cells {
		out[i] = append([]Component(nil), col...)
	}
	return out
}

// Columns returns the number of columns.
func (g *Grid) Columns() int {
	return len(g.Cells.Get())
}

// Rows returns the number of rows.
func (g *Grid) Rows() int {
	cells := g.Cells.Get()
	if len(cells) == 0 {
		return len(g.Spec.Get().RowHeights)
	}
	return len(cells[0])
}

// InBounds reports whether (col, row) addresses a cell.
func (g *Grid) InBounds(col, row int) bool {
	return col >= 0 && row >= 0 && col < g.Columns() && row < g.Rows()
}

func (g *Grid) mustInBounds(col, row int) {
	if !g.InBounds(col, row) {
		panic(fmt.Sprintf("tabula: grid cell (%d, %d) out of range %dx%d", col, row, g.Columns(), g.Rows()))
	}
}

// Get returns the component at (col, row), or nil.
func (g *Grid) Get(col, row int) Component {
	g.mustInBounds(col, row)
	return g.Cells.Get()[col][row]
}

// Set places c in (col, row), detaching it from its previous parent and
// detaching whatever occupied the cell. A nil c empties the cell. Panics
// with a *StructuralRoleError if c is not a renderable variant.
func (g *Grid) Set(col, row int, c Component) {
	g.mustInBounds(col, row)
	if c != nil {
		if err := validateTree(c); err != nil {
			panic(err)
		}
		if isAncestorComponent(c, g) {
			panic("tabula: adding child would create a cycle")
		}
		c.Base().RemoveFromParent()
	}
	cells := cloneCells(g.Cells.Get())
	if old := cells[col][row]; old != nil && old != c {
		old.Base().parent = nil
	}
	cells[col][row] = c
	if c != nil {
		c.Base().parent = g
	}
	g.Cells.Set(cells)
}

// Remove empties (col, row) and returns the component it held.
func (g *Grid) Remove(col, row int) Component {
	g.mustInBounds(col, row)
	old := g.Cells.Get()[col][row]
	if old == nil {
		return nil
	}
	cells := cloneCells(g.Cells.Get())
	cells[col][row] = nil
	old.Base().parent = nil
	g.Cells.Set(cells)
	return old
}

// CellOf returns the cell holding c.
func (g *Grid) CellOf(c Component) (col, row int, ok bool) {
	for i, column := range g.Cells.Get() {
		for j, cc := range column {
			if cc == c && c != nil {
				return i, j, true
			}
		}
	}
	return 0, 0, false
}

// Occupied returns the non-empty cells in column-major order.
func (g *Grid) Occupied() []GridCell {
	var out []GridCell
	for i, column := range g.Cells.Get() {
		for j, c := range column {
			if c != nil {
				out = append(out, GridCell{Col: i, Row: j, Component: c})
			}
		}
	}
	return out
}

// Children returns the occupied components in column-major order.
func (g *Grid) Children() []Component {
	occ := g.Occupied()
	out := make([]Component, len(occ))
	for i, cell := range occ {
		out[i] = cell.Component
	}
	return out
}

// Resize changes the grid dimensions. Components in dropped cells are
// detached. New columns and rows are Auto sized and centered.
func (g *Grid) Resize(cols, rows int) {
	if cols < 0 || rows < 0 {
		panic("tabula: negative grid dimensions")
	}
	old := g.Cells.Get()
	cells := makeCells(cols, rows)
	for i, column := range old {
		for j, c := range column {
			if i < cols && j < rows {
				cells[i][j] = c
			} else if c != nil {
				c.Base().parent = nil
			}
		}
	}

	spec := g.Spec.Get().clone()
	spec.ColumnWidths = resizeSizes(spec.ColumnWidths, cols)
	spec.RowHeights = resizeSizes(spec.RowHeights, rows)
	align := make([][]Alignment, cols)
	for i := range align {
		align[i] = make([]Alignment, rows)
		for j := range align[i] {
			if i < len(spec.CellAlignment) && j < len(spec.CellAlignment[i]) {
				align[i][j] = spec.CellAlignment[i][j]
			} else {
				align[i][j] = AlignCenter
			}
		}
	}
	spec.CellAlignment = align

	g.Spec.Set(spec)
	g.Cells.Set(cells)
}

func resizeSizes(s []float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		if i < len(s) {
			out[i] = s[i]
		} else {
			out[i] = Auto
		}
	}
	return out
}

// SetColumnWidth sets column col to a fixed width, or Auto.
func (g *Grid) SetColumnWidth(col int, w float64) {
	if col < 0 || col >= g.Columns() {
		panic(fmt.Sprintf("tabula: grid column %d out of range %d", col, g.Columns()))
	}
	spec := g.Spec.Get().clone()
	spec.ColumnWidths[col] = w
	g.Spec.Set(spec)
}

// SetRowHeight sets row row to a fixed height, or Auto.
func (g *Grid) SetRowHeight(row int, h float64) {
	if row < 0 || row >= g.Rows() {
		panic(fmt.Sprintf("tabula: grid row %d out of range %d", row, g.Rows()))
	}
	spec := g.Spec.Get().clone()
	spec.RowHeights[row] = h
	g.Spec.Set(spec)
}

// SetCellAlignment sets how a child is placed inside cell (col, row).
func (g *Grid) SetCellAlignment(col, row int, a Alignment) {
	g.mustInBounds(col, row)
	spec := g.Spec.Get().clone()
	spec.CellAlignment[col][row] = a
	g.Spec.Set(spec)
}

// SetSpacing sets the gap between adjacent columns and rows.
func (g *Grid) SetSpacing(s float64) {
	spec := g.Spec.Get().clone()
	spec.Spacing = s
	g.Spec.Set(spec)
}
