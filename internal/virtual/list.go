package virtual

// List virtualizes a one-dimensional vertical collection
type List struct {
	*engine
	items *axisEngine
}

// NewList creates a list engine. It fails with a *ConfigurationError when the
// item axis has no sizing function or no key function.
func NewList(cfg ListConfig, opts ...Option) (*List, error) {
	e := newEngine(cfg.CacheCapacity, cfg.ScrollingDelay, opts)
	if err := e.addAxes([]Axis{Vertical}, []AxisConfig{cfg.Items}); err != nil {
		return nil, err
	}
	return &List{engine: e, items: e.axes[0]}, nil
}

// Window returns the current window, recomputing it only if an input changed
func (l *List) Window() Window {
	return l.items.window()
}

// VirtualItems returns the items to render: the visible range plus overscan
func (l *List) VirtualItems() []Item {
	return l.items.window().Items
}

// TotalSize returns the total content height
func (l *List) TotalSize() float64 {
	return l.items.window().TotalExtent
}

// Measure reads el's index tag, starts watching its size and records its
// current height. It returns an error wrapping ErrInvalidIndexTag when the
// tag is missing or malformed; the cache is left untouched in that case.
func (l *List) Measure(el Element) error {
	return l.items.measure(el)
}

// ReportMeasurement records a confirmed height for the item at index
func (l *List) ReportMeasurement(index int, size float64) {
	l.items.reportMeasurement(index, size)
}

// Notify delivers item size changes when no observer factory is configured
func (l *List) Notify(entries []ResizeEntry) {
	l.items.mux.notify(entries)
}

// ScrollOffset returns the scroll offset the window was computed for
func (l *List) ScrollOffset() float64 {
	return l.items.state.ScrollOffset
}

// SetScrollOffset sets the scroll offset. Use it when no viewport is attached.
func (l *List) SetScrollOffset(offset float64) {
	l.items.setScrollOffset(offset)
}

// SetCount changes the number of items
func (l *List) SetCount(count int) {
	l.items.setCount(count)
}

// SetOverscan changes the number of extra items rendered on each side
func (l *List) SetOverscan(overscan int) {
	l.items.setOverscan(overscan)
}

// SetKeyFunc replaces the key function, for example after the backing
// collection was reordered. Measurements stay attached to their keys.
func (l *List) SetKeyFunc(key KeyFunc) error {
	return l.items.setKeyFunc(key)
}

// SetSizing replaces the sizing functions. Exactly one must be non-nil.
func (l *List) SetSizing(fixed, estimate SizeFunc) error {
	return l.items.setSizing(fixed, estimate)
}
