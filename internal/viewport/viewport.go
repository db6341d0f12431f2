package viewport

import (
	"time"

	"k8s.io/utils/clock"
	"k8s.io/utils/lru"

	"github.com/HamStudy/vscroll/internal/virtual"
)

const defaultRenderCacheSize = 1000

// Pane is an in-memory scroll container. Terminal hosts drive it from key,
// mouse and window size events; the virtualization engine attaches to it as
// its virtual.Viewport.
type Pane struct {
	clock clock.PassiveClock

	width   float64
	height  float64
	content virtual.Size
	offsets [2]float64

	scrollListeners listeners[func()]
	resizeListeners listeners[func(virtual.ResizeEntry)]

	// Performance tracking
	lastScrollTime time.Time
	scrollVelocity float64

	renderCache *lru.Cache
}

// New creates a pane of the given size
func New(clk clock.PassiveClock, width, height float64) *Pane {
	if clk == nil {
		clk = clock.RealClock{}
	}
	return &Pane{
		clock:       clk,
		width:       max(0, width),
		height:      max(0, height),
		renderCache: lru.New(defaultRenderCacheSize),
	}
}

// BoundingRect returns the pane's box
func (p *Pane) BoundingRect() virtual.Rect {
	return virtual.Rect{Width: p.width, Height: p.height}
}

// Attr implements virtual.Element; a pane carries no tags
func (p *Pane) Attr(string) (string, bool) { return "", false }

// Connected implements virtual.Element
func (p *Pane) Connected() bool { return true }

// ScrollOffset returns the scroll offset along axis
func (p *Pane) ScrollOffset(axis virtual.Axis) float64 {
	return p.offsets[axis]
}

// ScrollTo scrolls axis to offset, clamped to the scrollable range
func (p *Pane) ScrollTo(axis virtual.Axis, offset float64) {
	p.setOffset(axis, min(offset, p.maxOffset(axis)))
}

// ScrollBy scrolls axis relative to its current offset. Only the start is
// enforced: content may have grown since the last SetContentSize, and the
// end is clamped again when it is next set.
func (p *Pane) ScrollBy(axis virtual.Axis, delta float64) {
	p.setOffset(axis, p.offsets[axis]+delta)
}

func (p *Pane) setOffset(axis virtual.Axis, offset float64) {
	offset = max(0, offset)
	if offset == p.offsets[axis] {
		return
	}
	p.offsets[axis] = offset
	p.trackScrolling()

	for _, fn := range p.scrollListeners.snapshot() {
		fn()
	}
}

// OnScroll registers fn for scroll notifications
func (p *Pane) OnScroll(fn func()) func() {
	return p.scrollListeners.add(fn)
}

// OnResize registers fn for resize notifications
func (p *Pane) OnResize(fn func(virtual.ResizeEntry)) func() {
	return p.resizeListeners.add(fn)
}

// Resize changes the pane's box and notifies resize listeners
func (p *Pane) Resize(width, height float64) {
	width, height = max(0, width), max(0, height)
	if width == p.width && height == p.height {
		return
	}
	p.width, p.height = width, height

	entry := virtual.ResizeEntry{
		Target:    p,
		BorderBox: []virtual.BoxSize{{BlockSize: height, InlineSize: width}},
	}
	for _, fn := range p.resizeListeners.snapshot() {
		fn(entry)
	}
	p.clampOffsets()
}

// SetContentSize sets the scrollable content size. Offsets past the new end
// are pulled back.
func (p *Pane) SetContentSize(size virtual.Size) {
	p.content = size
	p.clampOffsets()
}

// ContentSize returns the scrollable content size
func (p *Pane) ContentSize() virtual.Size {
	return p.content
}

// AtEnd reports whether axis is scrolled as far as it goes
func (p *Pane) AtEnd(axis virtual.Axis) bool {
	return p.offsets[axis] >= p.maxOffset(axis)
}

func (p *Pane) maxOffset(axis virtual.Axis) float64 {
	if axis == virtual.Horizontal {
		return max(0, p.content.Width-p.width)
	}
	return max(0, p.content.Height-p.height)
}

func (p *Pane) clampOffsets() {
	for _, axis := range []virtual.Axis{virtual.Vertical, virtual.Horizontal} {
		if p.offsets[axis] > p.maxOffset(axis) {
			p.ScrollTo(axis, p.maxOffset(axis))
		}
	}
}

// trackScrolling tracks scrolling performance
func (p *Pane) trackScrolling() {
	now := p.clock.Now()
	if !p.lastScrollTime.IsZero() {
		timeDelta := now.Sub(p.lastScrollTime).Seconds()
		if timeDelta > 0 {
			// scroll notifications per second
			p.scrollVelocity = 1.0 / timeDelta
		}
	}
	p.lastScrollTime = now
}

// ScrollVelocity returns the current scroll velocity
func (p *Pane) ScrollVelocity() float64 {
	return p.scrollVelocity
}

// CacheRendered caches the rendered content of the item with the given key
func (p *Pane) CacheRendered(key virtual.Key, content string) {
	p.renderCache.Add(key, content)
}

// Rendered returns cached rendered content
func (p *Pane) Rendered(key virtual.Key) (string, bool) {
	v, ok := p.renderCache.Get(key)
	if !ok {
		return "", false
	}
	return v.(string), true
}

// ClearRendered drops every cached rendering
func (p *Pane) ClearRendered() {
	p.renderCache.Clear()
}

// GetStats returns pane statistics
func (p *Pane) GetStats() map[string]interface{} {
	return map[string]interface{}{
		"width":           p.width,
		"height":          p.height,
		"content_height":  p.content.Height,
		"content_width":   p.content.Width,
		"scroll_top":      p.offsets[virtual.Vertical],
		"scroll_left":     p.offsets[virtual.Horizontal],
		"render_cache":    p.renderCache.Len(),
		"scroll_velocity": p.scrollVelocity,
		"listeners":       p.scrollListeners.count() + p.resizeListeners.count(),
	}
}

// listeners keeps callbacks in subscription order
type listeners[F any] struct {
	nextID  int
	entries []listener[F]
}

type listener[F any] struct {
	id int
	fn F
}

func (l *listeners[F]) add(fn F) func() {
	id := l.nextID
	l.nextID++
	l.entries = append(l.entries, listener[F]{id: id, fn: fn})
	return func() {
		for i, e := range l.entries {
			if e.id == id {
				l.entries = append(l.entries[:i:i], l.entries[i+1:]...)
				return
			}
		}
	}
}

// snapshot lets callbacks unsubscribe while being notified
func (l *listeners[F]) snapshot() []F {
	fns := make([]F, len(l.entries))
	for i, e := range l.entries {
		fns[i] = e.fn
	}
	return fns
}

func (l *listeners[F]) count() int {
	return len(l.entries)
}
