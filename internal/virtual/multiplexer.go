package virtual

import (
	"fmt"
	"strconv"

	"k8s.io/apimachinery/pkg/util/sets"
)

// pinner keeps the measurements of observed items resident
type pinner interface {
	Pin(key Key)
	Unpin(key Key)
}

// sizeMultiplexer funnels size changes of every rendered item on one axis
// through a single observer and a single reconciliation entry point. The
// measurement of every observed item stays pinned in the cache.
type sizeMultiplexer struct {
	axis      Axis
	attribute string
	factory   ObserverFactory
	observer  ResizeObserver
	observed  sets.Set[Element]
	pinned    map[Element]Key
	keyOf     func(index int) (Key, bool)
	cache     pinner
	report    func(index int, size float64)
	diagnose  func(error)
}

func newSizeMultiplexer(axis Axis, attribute string, factory ObserverFactory, keyOf func(int) (Key, bool), cache pinner, report func(int, float64), diagnose func(error)) *sizeMultiplexer {
	return &sizeMultiplexer{
		axis:      axis,
		attribute: attribute,
		factory:   factory,
		observed:  sets.New[Element](),
		pinned:    make(map[Element]Key),
		keyOf:     keyOf,
		cache:     cache,
		report:    report,
		diagnose:  diagnose,
	}
}

// indexOf reads the element's index tag
func (m *sizeMultiplexer) indexOf(el Element) (int, error) {
	raw, ok := el.Attr(m.attribute)
	if !ok {
		return 0, fmt.Errorf("%w: missing %s attribute", ErrInvalidIndexTag, m.attribute)
	}
	index, err := strconv.Atoi(raw)
	if err != nil || index < 0 {
		return 0, fmt.Errorf("%w: %s=%q", ErrInvalidIndexTag, m.attribute, raw)
	}
	return index, nil
}

// observe registers el for size change notifications and returns its index
func (m *sizeMultiplexer) observe(el Element) (int, error) {
	index, err := m.indexOf(el)
	if err != nil {
		return 0, err
	}
	if m.observed.Has(el) {
		m.pin(el, index)
		return index, nil
	}

	m.observed.Insert(el)
	m.pin(el, index)
	if m.observer == nil && m.factory != nil {
		m.observer = m.factory(m.notify)
	}
	if m.observer != nil {
		m.observer.Observe(el)
	}
	return index, nil
}

func (m *sizeMultiplexer) unobserve(el Element) {
	if !m.observed.Has(el) {
		return
	}
	m.observed.Delete(el)
	if key, ok := m.pinned[el]; ok {
		delete(m.pinned, el)
		m.cache.Unpin(key)
	}
	if m.observer != nil {
		m.observer.Unobserve(el)
	}
}

// notify correlates entries to indices and forwards their sizes
func (m *sizeMultiplexer) notify(entries []ResizeEntry) {
	for _, entry := range entries {
		if entry.Target == nil {
			continue
		}
		if !entry.Target.Connected() {
			m.unobserve(entry.Target)
			continue
		}

		index, err := m.indexOf(entry.Target)
		if err != nil {
			m.diagnose(err)
			continue
		}
		if m.observed.Has(entry.Target) {
			m.pin(entry.Target, index)
		}
		m.report(index, entryExtent(entry, m.axis))
	}
}

// pin moves el's pin to the key currently at index. An element reused for
// another item releases the old key.
func (m *sizeMultiplexer) pin(el Element, index int) {
	key, ok := m.keyOf(index)
	if !ok {
		return
	}
	if old, ok := m.pinned[el]; ok {
		if old == key {
			return
		}
		m.cache.Unpin(old)
	}
	m.pinned[el] = key
	m.cache.Pin(key)
}

func (m *sizeMultiplexer) disconnect() {
	if m.observer != nil {
		m.observer.Disconnect()
		m.observer = nil
	}
	for _, key := range m.pinned {
		m.cache.Unpin(key)
	}
	m.observed = sets.New[Element]()
	m.pinned = make(map[Element]Key)
}

func (m *sizeMultiplexer) observedCount() int {
	return m.observed.Len()
}
