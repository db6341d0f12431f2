package virtual

// reportMeasurement records a confirmed size for the item at index.
//
// Everything is read from live state at call time, so late notifications for
// items that were unmounted or moved are resolved against the current
// collection. When the item starts above the scroll position the scroll
// offset is compensated before the cache write, so the next recomputation
// already sees the shifted offset.
func (a *axisEngine) reportMeasurement(index int, size float64) {
	if a.resolver.Fixed() {
		return
	}
	if index < 0 || index >= a.count {
		a.logger.V(4).Info("ignoring measurement outside the collection", "index", index, "count", a.count)
		return
	}

	key := a.key(index)
	if cached, ok := a.cache.Get(key); ok && cached == size {
		return
	}

	previous := a.window().All[index]
	delta := size - previous.Size
	if delta == 0 {
		return
	}

	if previous.Offset < a.liveScrollOffset() {
		a.host.compensator.Compensate(a, delta)
	}

	a.cache.Set(key, size)
	a.logger.V(4).Info("recorded measurement", "index", index, "key", key, "size", size, "delta", delta)
}
