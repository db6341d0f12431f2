package virtual

// Grid virtualizes a two-dimensional collection. Rows and columns are laid
// out independently and the visible cells are their Cartesian product.
type Grid struct {
	*engine
	rows    *axisEngine
	columns *axisEngine
}

// NewGrid creates a grid engine. Configuration errors of both axes are
// reported together.
func NewGrid(cfg GridConfig, opts ...Option) (*Grid, error) {
	e := newEngine(cfg.CacheCapacity, cfg.ScrollingDelay, opts)
	if cfg.Columns.IndexAttribute == "" {
		cfg.Columns.IndexAttribute = DefaultColumnIndexAttribute
	}
	if err := e.addAxes([]Axis{Vertical, Horizontal}, []AxisConfig{cfg.Rows, cfg.Columns}); err != nil {
		return nil, err
	}
	return &Grid{engine: e, rows: e.axes[0], columns: e.axes[1]}, nil
}

// Rows returns the row window
func (g *Grid) Rows() Window {
	return g.rows.window()
}

// Columns returns the column window
func (g *Grid) Columns() Window {
	return g.columns.window()
}

// Cells returns every visible cell, row by row
func (g *Grid) Cells() []Cell {
	rows := g.rows.window().Items
	columns := g.columns.window().Items

	cells := make([]Cell, 0, len(rows)*len(columns))
	for _, row := range rows {
		for _, column := range columns {
			cells = append(cells, Cell{Row: row, Column: column})
		}
	}
	return cells
}

// TotalSize returns the total content size on both axes
func (g *Grid) TotalSize() Size {
	return Size{
		Height: g.rows.window().TotalExtent,
		Width:  g.columns.window().TotalExtent,
	}
}

// MeasureRow reads el's row index tag, watches its size and records its height
func (g *Grid) MeasureRow(el Element) error {
	return g.rows.measure(el)
}

// MeasureColumn reads el's column index tag, watches its size and records its width
func (g *Grid) MeasureColumn(el Element) error {
	return g.columns.measure(el)
}

// ReportRowMeasurement records a confirmed height for the row at index
func (g *Grid) ReportRowMeasurement(index int, size float64) {
	g.rows.reportMeasurement(index, size)
}

// ReportColumnMeasurement records a confirmed width for the column at index
func (g *Grid) ReportColumnMeasurement(index int, size float64) {
	g.columns.reportMeasurement(index, size)
}

// NotifyRows delivers row size changes when no observer factory is configured
func (g *Grid) NotifyRows(entries []ResizeEntry) {
	g.rows.mux.notify(entries)
}

// NotifyColumns delivers column size changes when no observer factory is configured
func (g *Grid) NotifyColumns(entries []ResizeEntry) {
	g.columns.mux.notify(entries)
}

// ScrollOffset returns the scroll offsets the windows were computed for
func (g *Grid) ScrollOffset() (top, left float64) {
	return g.rows.state.ScrollOffset, g.columns.state.ScrollOffset
}

// SetScrollOffset sets both scroll offsets. Use it when no viewport is attached.
func (g *Grid) SetScrollOffset(top, left float64) {
	g.rows.setScrollOffset(top)
	g.columns.setScrollOffset(left)
}

// SetRowCount changes the number of rows
func (g *Grid) SetRowCount(count int) {
	g.rows.setCount(count)
}

// SetColumnCount changes the number of columns
func (g *Grid) SetColumnCount(count int) {
	g.columns.setCount(count)
}

// SetOverscan changes the overscan of both axes
func (g *Grid) SetOverscan(rows, columns int) {
	g.rows.setOverscan(rows)
	g.columns.setOverscan(columns)
}

// SetRowKeyFunc replaces the row key function
func (g *Grid) SetRowKeyFunc(key KeyFunc) error {
	return g.rows.setKeyFunc(key)
}

// SetColumnKeyFunc replaces the column key function
func (g *Grid) SetColumnKeyFunc(key KeyFunc) error {
	return g.columns.setKeyFunc(key)
}

// SetRowSizing replaces the row sizing functions
func (g *Grid) SetRowSizing(fixed, estimate SizeFunc) error {
	return g.rows.setSizing(fixed, estimate)
}

// SetColumnSizing replaces the column sizing functions
func (g *Grid) SetColumnSizing(fixed, estimate SizeFunc) error {
	return g.columns.setSizing(fixed, estimate)
}
