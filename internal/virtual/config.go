package virtual

import (
	"time"

	"github.com/go-logr/logr"
	"k8s.io/klog/v2"
	"k8s.io/utils/clock"

	"github.com/HamStudy/vscroll/internal/components/performance"
)

const (
	DefaultListOverscan         = 3
	DefaultRowOverscan          = 3
	DefaultColumnOverscan       = 1
	DefaultIndexAttribute       = "data-index"
	DefaultColumnIndexAttribute = "data-column-index"
)

// AxisConfig configures one axis. Exactly one of FixedSize and EstimateSize
// must be set, and GetKey is always required.
type AxisConfig struct {
	Count        int
	GetKey       KeyFunc
	FixedSize    SizeFunc
	EstimateSize SizeFunc
	Overscan     int
	// IndexAttribute names the tag attribute that carries an element's index
	IndexAttribute string
}

// ListConfig configures a List
type ListConfig struct {
	Items          AxisConfig
	ScrollingDelay time.Duration
	// CacheCapacity bounds the measurement cache; 0 means unbounded
	CacheCapacity int
}

// GridConfig configures a Grid
type GridConfig struct {
	Rows           AxisConfig
	Columns        AxisConfig
	ScrollingDelay time.Duration
	CacheCapacity  int
}

// DefaultListConfig returns a list configuration with default overscan and
// scrolling delay. Count, GetKey and one sizing function still need to be set.
func DefaultListConfig() ListConfig {
	return ListConfig{
		Items: AxisConfig{
			Overscan:       DefaultListOverscan,
			IndexAttribute: DefaultIndexAttribute,
		},
		ScrollingDelay: performance.DefaultScrollingDelay,
	}
}

// DefaultGridConfig returns a grid configuration with default overscan and
// scrolling delay
func DefaultGridConfig() GridConfig {
	return GridConfig{
		Rows: AxisConfig{
			Overscan:       DefaultRowOverscan,
			IndexAttribute: DefaultIndexAttribute,
		},
		Columns: AxisConfig{
			Overscan:       DefaultColumnOverscan,
			IndexAttribute: DefaultColumnIndexAttribute,
		},
		ScrollingDelay: performance.DefaultScrollingDelay,
	}
}

// Option customizes an engine
type Option func(*options)

type options struct {
	clock           clock.WithDelayedExecution
	logger          logr.Logger
	observerFactory ObserverFactory
	diagnostics     func(error)
	scrollingChange func(bool)
	monitor         *performance.PerformanceMonitor
}

func defaultOptions() options {
	return options{
		clock:  clock.RealClock{},
		logger: klog.Background().WithName("virtual"),
	}
}

// WithClock sets the clock driving the scrolling debouncer and timings
func WithClock(clk clock.WithDelayedExecution) Option {
	return func(o *options) { o.clock = clk }
}

// WithLogger sets the engine logger
func WithLogger(logger logr.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithObserverFactory sets how the engine creates its item resize observer.
// Without one, hosts deliver item size changes through Notify.
func WithObserverFactory(factory ObserverFactory) Option {
	return func(o *options) { o.observerFactory = factory }
}

// WithDiagnostics receives non-fatal problems such as elements without a
// valid index tag. By default they are logged.
func WithDiagnostics(fn func(error)) Option {
	return func(o *options) { o.diagnostics = fn }
}

// WithScrollingChange is called whenever the scrolling flag flips. The
// transition to false arrives from a timer goroutine.
func WithScrollingChange(fn func(scrolling bool)) Option {
	return func(o *options) { o.scrollingChange = fn }
}

// WithMonitor records recompute timings into monitor
func WithMonitor(monitor *performance.PerformanceMonitor) Option {
	return func(o *options) { o.monitor = monitor }
}
