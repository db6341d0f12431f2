package virtual

// scrollCompensator keeps on-screen content stationary when an item above
// the scroll position changes size
type scrollCompensator struct {
	host *engine
}

// Compensate shifts the scroll offset of a's axis by delta
func (c scrollCompensator) Compensate(a *axisEngine, delta float64) {
	if delta == 0 {
		return
	}
	if vp := c.host.viewport; vp != nil {
		vp.ScrollBy(a.axis, delta)
		a.setScrollOffset(vp.ScrollOffset(a.axis))
	} else {
		a.setScrollOffset(a.state.ScrollOffset + delta)
	}
	a.logger.V(4).Info("compensated scroll offset", "delta", delta, "offset", a.state.ScrollOffset)
}
