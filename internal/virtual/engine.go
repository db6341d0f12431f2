package virtual

import (
	"time"

	"github.com/go-logr/logr"
	utilerrors "k8s.io/apimachinery/pkg/util/errors"

	"github.com/HamStudy/vscroll/internal/components/performance"
)

// recentComputeSamples is the window of the recent compute average in Stats
const recentComputeSamples = 10

// engine holds what List and Grid share: the viewport binding, the three
// subscriptions and the scrolling flag
type engine struct {
	logger          logr.Logger
	observerFactory ObserverFactory
	diagnostics     func(error)
	monitor         *performance.PerformanceMonitor
	compensator     scrollCompensator

	axes          []*axisEngine
	cacheCapacity int
	watcher       *SizeWatcher
	scrolling     *performance.ScrollingState

	viewport   Viewport
	size       Size
	cancels    []func()
	attachment uint64
}

func newEngine(cacheCapacity int, scrollingDelay time.Duration, opts []Option) *engine {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	e := &engine{
		logger:          o.logger,
		observerFactory: o.observerFactory,
		diagnostics:     o.diagnostics,
		monitor:         o.monitor,
		cacheCapacity:   cacheCapacity,
	}
	if e.monitor == nil {
		e.monitor = performance.NewPerformanceMonitor(o.clock)
	}
	e.compensator = scrollCompensator{host: e}
	e.watcher = NewSizeWatcher(e.handleResize)
	e.scrolling = performance.NewScrollingState(o.clock, scrollingDelay, o.scrollingChange)
	return e
}

// addAxes builds the axis engines, collecting every configuration error
func (e *engine) addAxes(axes []Axis, configs []AxisConfig) error {
	var errs []error
	for i, axis := range axes {
		a, err := newAxisEngine(axis, configs[i], e, NewMeasurementCache(e.cacheCapacity))
		if err != nil {
			errs = append(errs, err)
			continue
		}
		e.axes = append(e.axes, a)
	}
	if len(errs) == 1 {
		return errs[0]
	}
	return utilerrors.NewAggregate(errs)
}

func (e *engine) diagnose(err error) {
	if e.diagnostics != nil {
		e.diagnostics(err)
		return
	}
	e.logger.Error(err, "rejected measurement")
}

// Attach binds the engine to the viewport resolved by source and subscribes
// to scroll, scrolling-activity and resize notifications. If source resolves
// to nil nothing happens; call Attach again once the viewport is mounted.
//
// The returned function detaches this attachment. Detaching is idempotent.
func (e *engine) Attach(source ViewportSource) func() {
	e.Detach()

	var vp Viewport
	if source != nil {
		vp = source()
	}
	if vp == nil {
		e.logger.V(4).Info("viewport not mounted, skipping attach")
		return func() {}
	}

	e.attachment++
	attachment := e.attachment
	e.viewport = vp

	e.syncScroll()
	e.cancels = append(e.cancels,
		vp.OnScroll(e.syncScroll),
		vp.OnScroll(e.scrolling.Notify),
	)
	e.watcher.Attach(vp)

	e.logger.V(4).Info("attached to viewport", "size", e.watcher.Size())
	return func() {
		if e.attachment == attachment {
			e.Detach()
		}
	}
}

// Detach stops every subscription. It is safe to call more than once.
func (e *engine) Detach() {
	if e.viewport == nil {
		return
	}
	for _, cancel := range e.cancels {
		if cancel != nil {
			cancel()
		}
	}
	e.cancels = nil
	e.watcher.Detach()
	e.scrolling.Stop()
	for _, a := range e.axes {
		a.mux.disconnect()
	}
	e.viewport = nil
	e.attachment++
	e.logger.V(4).Info("detached from viewport")
}

// Attached reports whether a viewport is bound
func (e *engine) Attached() bool {
	return e.viewport != nil
}

// IsScrolling reports whether the viewport scrolled within the scrolling delay
func (e *engine) IsScrolling() bool {
	return e.scrolling.IsScrolling()
}

// ViewportSize returns the last known viewport size
func (e *engine) ViewportSize() Size {
	return e.size
}

// SetViewportSize sets the viewport extent of every axis. Use it when no
// viewport is attached.
func (e *engine) SetViewportSize(size Size) {
	e.handleResize(size)
}

// ResetMeasurements drops every confirmed measurement and the compute timings,
// for example when the backing collection is replaced
func (e *engine) ResetMeasurements() {
	for _, a := range e.axes {
		a.cache.Reset()
		e.monitor.Reset(a.axis.String() + ".compute")
	}
}

// CacheMetrics returns the combined metrics of every axis' measurement cache
func (e *engine) CacheMetrics() CacheMetrics {
	var total CacheMetrics
	for _, a := range e.axes {
		m := a.cache.Metrics()
		total.Hits += m.Hits
		total.Misses += m.Misses
		total.Evictions += m.Evictions
		total.Entries += m.Entries
	}
	return total
}

// Stats returns engine statistics
func (e *engine) Stats() map[string]interface{} {
	metrics := e.CacheMetrics()
	stats := map[string]interface{}{
		"attached":        e.Attached(),
		"is_scrolling":    e.IsScrolling(),
		"cache_entries":   metrics.Entries,
		"cache_hit_ratio": metrics.HitRatio(),
		"cache_evictions": metrics.Evictions,
	}
	for _, a := range e.axes {
		w := a.window()
		prefix := a.axis.String()
		stats[prefix+".count"] = a.count
		stats[prefix+".scroll_offset"] = a.state.ScrollOffset
		stats[prefix+".viewport_extent"] = a.state.ViewportExtent
		stats[prefix+".range_start"] = w.Range.Start
		stats[prefix+".range_end"] = w.Range.End
		stats[prefix+".total_extent"] = w.TotalExtent
		stats[prefix+".recomputes"] = a.recomputes
		stats[prefix+".observed"] = a.mux.observedCount()
		if metric := e.monitor.GetMetric(prefix + ".compute"); metric != nil {
			stats[prefix+".average_compute"] = metric.AverageTime()
			stats[prefix+".recent_compute"] = metric.RecentAverageTime(recentComputeSamples)
		}
	}
	return stats
}

func (e *engine) syncScroll() {
	if e.viewport == nil {
		return
	}
	for _, a := range e.axes {
		a.setScrollOffset(e.viewport.ScrollOffset(a.axis))
	}
}

func (e *engine) handleResize(size Size) {
	e.size = size
	for _, a := range e.axes {
		a.setViewportExtent(size.Extent(a.axis))
	}
}
