package virtual

import (
	"strconv"
)

type fakeElement struct {
	attrs     map[string]string
	rect      Rect
	connected bool
}

func newRowElement(index int, height float64) *fakeElement {
	return &fakeElement{
		attrs:     map[string]string{DefaultIndexAttribute: strconv.Itoa(index)},
		rect:      Rect{Height: height, Width: 100},
		connected: true,
	}
}

func (e *fakeElement) BoundingRect() Rect { return e.rect }
func (e *fakeElement) Connected() bool    { return e.connected }

func (e *fakeElement) Attr(name string) (string, bool) {
	v, ok := e.attrs[name]
	return v, ok
}

type fakeViewport struct {
	rect    Rect
	offsets [2]float64

	nextID         int
	scrollHandlers map[int]func()
	resizeHandlers map[int]func(ResizeEntry)

	scrollBy      []float64
	onScrollBy    func(axis Axis, delta float64)
	cancelledSubs int
}

func newFakeViewport(width, height float64) *fakeViewport {
	return &fakeViewport{
		rect:           Rect{Width: width, Height: height},
		scrollHandlers: make(map[int]func()),
		resizeHandlers: make(map[int]func(ResizeEntry)),
	}
}

func (v *fakeViewport) BoundingRect() Rect { return v.rect }

func (v *fakeViewport) ScrollOffset(axis Axis) float64 { return v.offsets[axis] }

func (v *fakeViewport) ScrollBy(axis Axis, delta float64) {
	if v.onScrollBy != nil {
		v.onScrollBy(axis, delta)
	}
	v.scrollBy = append(v.scrollBy, delta)
	v.scrollTo(axis, v.offsets[axis]+delta)
}

func (v *fakeViewport) OnScroll(fn func()) func() {
	id := v.nextID
	v.nextID++
	v.scrollHandlers[id] = fn
	return func() {
		if _, ok := v.scrollHandlers[id]; ok {
			delete(v.scrollHandlers, id)
			v.cancelledSubs++
		}
	}
}

func (v *fakeViewport) OnResize(fn func(ResizeEntry)) func() {
	id := v.nextID
	v.nextID++
	v.resizeHandlers[id] = fn
	return func() {
		if _, ok := v.resizeHandlers[id]; ok {
			delete(v.resizeHandlers, id)
			v.cancelledSubs++
		}
	}
}

func (v *fakeViewport) subscriptions() int {
	return len(v.scrollHandlers) + len(v.resizeHandlers)
}

func (v *fakeViewport) scrollTo(axis Axis, offset float64) {
	v.offsets[axis] = max(0, offset)
	for _, fn := range v.scrollHandlers {
		fn()
	}
}

func (v *fakeViewport) resize(entry ResizeEntry) {
	if entry.Target == nil {
		entry.Target = v
	}
	for _, fn := range v.resizeHandlers {
		fn(entry)
	}
}

// fakeViewport doubles as the resize target of its own entries
func (v *fakeViewport) Attr(string) (string, bool) { return "", false }
func (v *fakeViewport) Connected() bool            { return true }

type fakeObserver struct {
	callback     func([]ResizeEntry)
	observed     []Element
	unobserved   []Element
	disconnected int
}

func (o *fakeObserver) Observe(el Element)   { o.observed = append(o.observed, el) }
func (o *fakeObserver) Unobserve(el Element) { o.unobserved = append(o.unobserved, el) }
func (o *fakeObserver) Disconnect()          { o.disconnected++ }

func keysOf(ids []string) KeyFunc {
	return func(index int) Key { return ids[index] }
}

func constant(size float64) SizeFunc {
	return func(int) float64 { return size }
}

func indexKey(index int) Key { return index }
