package virtual

// Element is a rendered node the engine can measure
type Element interface {
	// BoundingRect returns the element's laid out rectangle
	BoundingRect() Rect
	// Attr returns the value of a tag attribute, such as the index tag
	Attr(name string) (string, bool)
	// Connected reports whether the element is still part of the render tree
	Connected() bool
}

// BoxSize is a precise box measurement. BlockSize runs along the vertical
// axis and InlineSize along the horizontal axis.
type BoxSize struct {
	BlockSize  float64
	InlineSize float64
}

// ResizeEntry is a single box size change notification
type ResizeEntry struct {
	Target Element
	// BorderBox holds the precise border-box size, if the host provides one
	BorderBox []BoxSize
}

// Viewport is the scrollable container the engine is bound to.
//
// Subscriptions return a cancel function. Notifications must be delivered on
// the same goroutine that drives the engine.
type Viewport interface {
	BoundingRect() Rect
	ScrollOffset(axis Axis) float64
	// ScrollBy adjusts the scroll offset relative to its current value
	ScrollBy(axis Axis, delta float64)
	OnScroll(fn func()) (cancel func())
	OnResize(fn func(ResizeEntry)) (cancel func())
}

// ViewportSource resolves the viewport at attach time. It returns nil while
// the viewport is not mounted.
type ViewportSource func() Viewport

// ResizeObserver watches the box size of rendered items
type ResizeObserver interface {
	Observe(el Element)
	Unobserve(el Element)
	Disconnect()
}

// ObserverFactory creates a ResizeObserver that reports to callback
type ObserverFactory func(callback func([]ResizeEntry)) ResizeObserver

// entryExtent returns the size of a resize entry along axis, preferring the
// border box and falling back to the bounding rectangle
func entryExtent(entry ResizeEntry, axis Axis) float64 {
	if len(entry.BorderBox) > 0 {
		if axis == Horizontal {
			return entry.BorderBox[0].InlineSize
		}
		return entry.BorderBox[0].BlockSize
	}
	return rectExtent(entry.Target.BoundingRect(), axis)
}

func rectExtent(rect Rect, axis Axis) float64 {
	if axis == Horizontal {
		return rect.Width
	}
	return rect.Height
}
