package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/HamStudy/vscroll/internal/components/style"
	"github.com/HamStudy/vscroll/internal/virtual"
)

// maxLayoutPasses bounds the measure and recompute loop of a single frame
const maxLayoutPasses = 16

// rowElement is a mounted grid row
type rowElement struct {
	index     int
	block     string
	height    float64
	width     float64
	connected bool
}

func (e *rowElement) BoundingRect() virtual.Rect {
	return virtual.Rect{Width: e.width, Height: e.height}
}

func (e *rowElement) Attr(name string) (string, bool) {
	if name != virtual.DefaultIndexAttribute {
		return "", false
	}
	return strconv.Itoa(e.index), true
}

func (e *rowElement) Connected() bool { return e.connected }

// rowObserver delivers size changes of mounted rows to the grid
type rowObserver struct {
	callback func([]virtual.ResizeEntry)
	observed sets.Set[virtual.Element]
}

func (o *rowObserver) factory(callback func([]virtual.ResizeEntry)) virtual.ResizeObserver {
	o.callback = callback
	o.observed = sets.New[virtual.Element]()
	return o
}

func (o *rowObserver) Observe(el virtual.Element)   { o.observed.Insert(el) }
func (o *rowObserver) Unobserve(el virtual.Element) { o.observed.Delete(el) }

func (o *rowObserver) Disconnect() {
	o.callback = nil
	o.observed = nil
}

func (o *rowObserver) dispatch(entries []virtual.ResizeEntry) {
	if o.callback == nil {
		return
	}
	var relevant []virtual.ResizeEntry
	for _, entry := range entries {
		if o.observed.Has(entry.Target) {
			relevant = append(relevant, entry)
		}
	}
	if len(relevant) > 0 {
		o.callback(relevant)
	}
}

type cellKey struct {
	id    string
	width int
	state style.CellState
}

// layout mounts the rows of the current window, measures them and repeats
// until the window is stable
func (a *App) layout() {
	for pass := 0; pass < maxLayoutPasses; pass++ {
		a.pane.SetContentSize(a.grid.TotalSize())
		if !a.mountRows() {
			break
		}
	}
	a.pane.SetContentSize(a.grid.TotalSize())
	a.screen = a.compose()
}

// mountRows renders every row of the window and reports whether any of them
// measured differently from its resolved size
func (a *App) mountRows() bool {
	rows := a.grid.Rows()
	columns := a.grid.Columns().Items

	var entries []virtual.ResizeEntry
	visible := sets.New[virtual.Key]()
	changed := false

	for _, row := range rows.Items {
		block := a.renderRow(row, columns)
		height := float64(lipgloss.Height(block))
		width := float64(lipgloss.Width(block))
		visible.Insert(row.Key)
		if height != row.Size {
			changed = true
		}

		el, ok := a.mounted[row.Key]
		if !ok {
			el = &rowElement{index: row.Index, block: block, height: height, width: width, connected: true}
			a.mounted[row.Key] = el
			if err := a.grid.MeasureRow(el); err != nil {
				a.logger.Error(err, "failed to measure row", "index", row.Index)
			}
			continue
		}

		el.index = row.Index
		el.block = block
		// a stale size means the measurement was dropped, so report it again
		if el.height != height || el.width != width || height != row.Size {
			el.height, el.width = height, width
			entries = append(entries, virtual.ResizeEntry{
				Target:    el,
				BorderBox: []virtual.BoxSize{{BlockSize: height, InlineSize: width}},
			})
		}
	}

	for key, el := range a.mounted {
		if visible.Has(key) {
			continue
		}
		el.connected = false
		entries = append(entries, virtual.ResizeEntry{Target: el})
		delete(a.mounted, key)
	}

	a.observer.dispatch(entries)
	return changed
}

func (a *App) renderRow(row virtual.Item, columns []virtual.Item) string {
	state := style.CellNormal
	switch {
	case row.Index == a.tracker.GetSelectedRow():
		state = style.CellSelected
	case a.tracker.IsMarked(row.Key):
		state = style.CellMarked
	}

	cells := make([]string, len(columns))
	for i, column := range columns {
		cell := a.state.CellAt(row.Index, column.Index)
		width := int(column.Size)

		key := cellKey{id: cell.ID, width: width, state: state}
		rendered, ok := a.pane.Rendered(key)
		if !ok {
			rendered = a.styles.Cell(width, state).Render(cell.Text)
			a.pane.CacheRendered(key, rendered)
		}
		cells[i] = rendered
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

// compose cuts the mounted rows down to the pane
func (a *App) compose() []string {
	rect := a.pane.BoundingRect()
	height, width := int(rect.Height), int(rect.Width)
	screen := make([]string, height)

	top := a.pane.ScrollOffset(virtual.Vertical)
	left := a.pane.ScrollOffset(virtual.Horizontal)
	lead := 0
	if columns := a.grid.Columns().Items; len(columns) > 0 {
		lead = int(columns[0].Offset - left)
	}

	for _, row := range a.grid.Rows().Items {
		el, ok := a.mounted[row.Key]
		if !ok {
			continue
		}
		for i, line := range strings.Split(el.block, "\n") {
			y := int(row.Offset-top) + i
			if y < 0 || y >= height {
				continue
			}
			screen[y] = clip(line, lead, width)
		}
	}
	return screen
}

// clip places line lead cells from the left edge and cuts it to width
func clip(line string, lead, width int) string {
	if lead >= 0 {
		return xansi.Truncate(strings.Repeat(" ", lead)+line, width, "")
	}
	return xansi.Cut(line, -lead, width-lead)
}
