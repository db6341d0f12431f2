package virtual

import (
	"github.com/go-logr/logr"

	"github.com/HamStudy/vscroll/internal/components/performance"
)

// memoKey captures every input of Compute. The window is recomputed only
// when one of them changes.
type memoKey struct {
	count        int
	state        AxisState
	overscan     int
	resolverGen  uint64
	cacheVersion uint64
}

// axisEngine owns the state, measurements and computed window of one axis
type axisEngine struct {
	axis     Axis
	host     *engine
	logger   logr.Logger
	count    int
	overscan int
	state    AxisState

	key         KeyFunc
	resolver    *SizeResolver
	resolverGen uint64
	cache       *MeasurementCache
	mux         *sizeMultiplexer
	monitor     *performance.PerformanceMonitor

	memo       Window
	memoKey    memoKey
	memoValid  bool
	recomputes int
}

func newAxisEngine(axis Axis, cfg AxisConfig, host *engine, cache *MeasurementCache) (*axisEngine, error) {
	if cfg.Count < 0 {
		return nil, &ConfigurationError{Axis: axis, Reason: "item count must not be negative"}
	}
	resolver, err := NewSizeResolver(axis, cfg.FixedSize, cfg.EstimateSize, cfg.GetKey, cache)
	if err != nil {
		return nil, err
	}

	a := &axisEngine{
		axis:     axis,
		host:     host,
		logger:   host.logger.WithValues("axis", axis.String()),
		count:    cfg.Count,
		overscan: max(0, cfg.Overscan),
		key:      cfg.GetKey,
		resolver: resolver,
		cache:    cache,
		monitor:  host.monitor,
	}

	attribute := cfg.IndexAttribute
	if attribute == "" {
		attribute = DefaultIndexAttribute
	}
	a.mux = newSizeMultiplexer(axis, attribute, host.observerFactory, a.keyAt, cache, a.reportMeasurement, host.diagnose)
	return a, nil
}

// window returns the memoized window, recomputing it if any input changed
func (a *axisEngine) window() Window {
	key := memoKey{
		count:        a.count,
		state:        a.state,
		overscan:     a.overscan,
		resolverGen:  a.resolverGen,
		cacheVersion: a.cache.Version(),
	}
	if a.memoValid && key == a.memoKey {
		return a.memo
	}

	stop := a.monitor.StartTimer(a.axis.String() + ".compute")
	a.memo = Compute(a.count, a.state, a.overscan, a.resolver.Resolve, a.resolver.Key)
	stop()

	a.memoKey = key
	a.memoValid = true
	a.recomputes++
	a.logger.V(5).Info("recomputed window", "count", a.count, "start", a.memo.Range.Start, "end", a.memo.Range.End, "total", a.memo.TotalExtent)
	return a.memo
}

// keyAt resolves through a.key at call time so a replaced key function
// applies to later pins. It reports false for indices outside the collection.
func (a *axisEngine) keyAt(index int) (Key, bool) {
	if index < 0 || index >= a.count {
		return nil, false
	}
	return a.key(index), true
}

func (a *axisEngine) setScrollOffset(offset float64) {
	a.state.ScrollOffset = max(0, offset)
}

func (a *axisEngine) setViewportExtent(extent float64) {
	a.state.ViewportExtent = max(0, extent)
}

// liveScrollOffset reads the scroll offset from the attached viewport, or
// from axis state when headless
func (a *axisEngine) liveScrollOffset() float64 {
	if vp := a.host.viewport; vp != nil {
		return vp.ScrollOffset(a.axis)
	}
	return a.state.ScrollOffset
}

func (a *axisEngine) setCount(count int) {
	a.count = max(0, count)
}

func (a *axisEngine) setOverscan(overscan int) {
	a.overscan = max(0, overscan)
}

func (a *axisEngine) setKeyFunc(key KeyFunc) error {
	resolver, err := NewSizeResolver(a.axis, a.resolver.fixed, a.resolver.estimate, key, a.cache)
	if err != nil {
		return err
	}
	a.key = key
	a.resolver = resolver
	a.resolverGen++
	return nil
}

func (a *axisEngine) setSizing(fixed, estimate SizeFunc) error {
	resolver, err := NewSizeResolver(a.axis, fixed, estimate, a.key, a.cache)
	if err != nil {
		return err
	}
	a.resolver = resolver
	a.resolverGen++
	return nil
}

// measure registers el with the multiplexer and reports its current size
func (a *axisEngine) measure(el Element) error {
	if el == nil {
		return nil
	}
	if a.resolver.Fixed() {
		return nil
	}
	index, err := a.mux.observe(el)
	if err != nil {
		return err
	}
	a.reportMeasurement(index, rectExtent(el.BoundingRect(), a.axis))
	return nil
}
