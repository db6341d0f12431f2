package virtual

// Compute lays out count items along one axis and returns the window that
// must be rendered for state.
//
// Layout is a single forward pass accumulating offsets. The first item whose
// trailing edge passes the viewport's leading edge starts the range; the
// first item whose trailing edge reaches the viewport's trailing edge ends
// it. Both bounds are then widened by overscan and clamped to the item
// indices. The pass is O(count) and has no incremental path.
func Compute(count int, state AxisState, overscan int, resolve func(int) float64, key KeyFunc) Window {
	if count <= 0 {
		return Window{Items: []Item{}, All: []Item{}, Range: EmptyRange}
	}
	if overscan < 0 {
		overscan = 0
	}
	state = state.normalized()

	rangeStart := state.ScrollOffset
	rangeEnd := state.ScrollOffset + state.ViewportExtent

	all := make([]Item, count)
	start, end := -1, -1
	var offset float64

	for index := 0; index < count; index++ {
		item := Item{
			Index:  index,
			Key:    key(index),
			Size:   resolve(index),
			Offset: offset,
		}
		offset += item.Size
		all[index] = item

		if start == -1 && item.End() > rangeStart {
			start = index
		}
		if end == -1 && item.End() >= rangeEnd {
			end = index
		}
	}

	last := count - 1
	if end == -1 {
		// viewport reaches past the content
		end = last
	}
	if start == -1 {
		// scrolled past the content
		start = last
	}
	if end < start {
		end = start
	}

	start = max(0, start-overscan)
	end = min(last, end+overscan)

	return Window{
		Items:       all[start : end+1],
		All:         all,
		Range:       Range{Start: start, End: end},
		TotalExtent: offset,
	}
}
