package tabula

// GridLayout is the resolved geometry of a grid.
type GridLayout struct {
	ColumnWidths []float64
	RowHeights   []float64
	ColumnX      []float64 // left edge of each column
	RowY         []float64 // top edge of each row
	Width        float64
	Height       float64
	spec         GridSpec
}

// extent is the space a child claims inside its cell: its size plus its
// local offset.
func extent(c Component) (w, h float64) {
	b := c.Base()
	return b.Width.Get() + b.X.Get(), b.Height.Get() + b.Y.Get()
}

// LayoutGrid resolves column widths and row heights. A fixed column keeps
// its declared width; an Auto column takes the maximum over its occupied
// cells of child width plus child X. Rows work the same way with heights.
func LayoutGrid(g *Grid) GridLayout {
	spec := g.Spec.Get()
	cells := g.Cells.Get()
	cols, rows := g.Columns(), g.Rows()

	l := GridLayout{
		ColumnWidths: make([]float64, cols),
		RowHeights:   make([]float64, rows),
		ColumnX:      make([]float64, cols),
		RowY:         make([]float64, rows),
		spec:         spec,
	}

	for i := 0; i < cols; i++ {
		w := Auto
		if i < len(spec.ColumnWidths) {
			w = spec.ColumnWidths[i]
		}
		if w != Auto {
			l.ColumnWidths[i] = w
			continue
		}
		for j := 0; j < rows; j++ {
			if c := cells[i][j]; c != nil {
				cw, _ := extent(c)
				l.ColumnWidths[i] = max(l.ColumnWidths[i], cw)
			}
		}
	}

	for j := 0; j < rows; j++ {
		h := Auto
		if j < len(spec.RowHeights) {
			h = spec.RowHeights[j]
		}
		if h != Auto {
			l.RowHeights[j] = h
			continue
		}
		for i := 0; i < cols; i++ {
			if c := cells[i][j]; c != nil {
				_, ch := extent(c)
				l.RowHeights[j] = max(l.RowHeights[j], ch)
			}
		}
	}

	x := 0.0
	for i, w := range l.ColumnWidths {
		if i > 0 {
			x += spec.Spacing
		}
		l.ColumnX[i] = x
		x += w
	}
	y := 0.0
	for j, h := range l.RowHeights {
		if j > 0 {
			y += spec.Spacing
		}
		l.RowY[j] = y
		y += h
	}
	l.Width, l.Height = x, y
	return l
}

// CellRect returns the rectangle of cell (col, row) in grid coordinates.
func (l GridLayout) CellRect(col, row int) Rect {
	return Rect{X: l.ColumnX[col], Y: l.RowY[row], Width: l.ColumnWidths[col], Height: l.RowHeights[row]}
}

// ChildPosition returns where c's top-left lands in grid coordinates when
// it occupies (col, row). Slack space in the cell is split by the cell's
// alignment multipliers, independently per axis.
func (l GridLayout) ChildPosition(col, row int, c Component) Vec2 {
	cell := l.CellRect(col, row)
	align := AlignCenter
	if col < len(l.spec.CellAlignment) && row < len(l.spec.CellAlignment[col]) {
		align = l.spec.CellAlignment[col][row]
	}
	b := c.Base()
	cw, ch := extent(c)
	return Vec2{
		X: cell.X + b.X.Get() + (cell.Width-cw)*align.Horizontal.Multiplier(),
		Y: cell.Y + b.Y.Get() + (cell.Height-ch)*align.Vertical.Multiplier(),
	}
}

// layoutPosition returns the position of c inside its parent's coordinate
// frame: cell placement for grid children, X/Y for everything else.
func layoutPosition(c Component) Vec2 {
	b := c.Base()
	if g, ok := b.parent.(*Grid); ok {
		if col, row, found := g.CellOf(c); found {
			return LayoutGrid(g).ChildPosition(col, row, c)
		}
	}
	return b.Position()
}

// layoutSize returns the bounds size of c. Grids report their resolved
// layout size.
func layoutSize(c Component) Vec2 {
	if g, ok := c.(*Grid); ok {
		l := LayoutGrid(g)
		return Vec2{l.Width, l.Height}
	}
	return c.Base().Size()
}
