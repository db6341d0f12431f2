package virtual

// SizeWatcher observes the viewport's box size and republishes it whenever
// it changes
type SizeWatcher struct {
	size     Size
	known    bool
	onChange func(Size)
	cancel   func()
}

// NewSizeWatcher creates a size watcher reporting to onChange
func NewSizeWatcher(onChange func(Size)) *SizeWatcher {
	return &SizeWatcher{onChange: onChange}
}

// Attach reads the viewport's current size and subscribes to its resize
// notifications. A previous subscription is cancelled first.
func (w *SizeWatcher) Attach(vp Viewport) {
	w.Detach()
	if vp == nil {
		return
	}

	rect := vp.BoundingRect()
	w.publish(Size{Height: rect.Height, Width: rect.Width})
	w.cancel = vp.OnResize(w.handle)
}

// Detach cancels the subscription. It is safe to call more than once.
func (w *SizeWatcher) Detach() {
	if w.cancel != nil {
		w.cancel()
		w.cancel = nil
	}
	w.known = false
}

// Size returns the last published size
func (w *SizeWatcher) Size() Size {
	return w.size
}

func (w *SizeWatcher) handle(entry ResizeEntry) {
	if entry.Target == nil && len(entry.BorderBox) == 0 {
		return
	}
	w.publish(Size{
		Height: entryExtent(entry, Vertical),
		Width:  entryExtent(entry, Horizontal),
	})
}

func (w *SizeWatcher) publish(size Size) {
	if w.known && size == w.size {
		return
	}
	w.size = size
	w.known = true
	if w.onChange != nil {
		w.onChange(size)
	}
}
