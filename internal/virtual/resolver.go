package virtual

// SizeResolver returns the size of an item by index.
//
// A fixed size function always wins and disables reconciliation. Otherwise a
// confirmed measurement for the item's key is used, falling back to the
// estimator.
type SizeResolver struct {
	fixed    SizeFunc
	estimate SizeFunc
	key      KeyFunc
	cache    *MeasurementCache
}

// NewSizeResolver creates a resolver. Exactly one of fixed or estimate must
// be non-nil.
func NewSizeResolver(axis Axis, fixed, estimate SizeFunc, key KeyFunc, cache *MeasurementCache) (*SizeResolver, error) {
	switch {
	case fixed == nil && estimate == nil:
		return nil, &ConfigurationError{Axis: axis, Reason: "either a fixed size or an estimate size function is required"}
	case fixed != nil && estimate != nil:
		return nil, &ConfigurationError{Axis: axis, Reason: "fixed size and estimate size functions are mutually exclusive"}
	case key == nil:
		return nil, &ConfigurationError{Axis: axis, Reason: "a key function is required"}
	}

	return &SizeResolver{
		fixed:    fixed,
		estimate: estimate,
		key:      key,
		cache:    cache,
	}, nil
}

// Resolve returns the size of the item at index
func (r *SizeResolver) Resolve(index int) float64 {
	if r.fixed != nil {
		return r.fixed(index)
	}
	if r.cache != nil {
		if size, ok := r.cache.Get(r.key(index)); ok {
			return size
		}
	}
	return r.estimate(index)
}

// Fixed reports whether the resolver uses fixed sizing
func (r *SizeResolver) Fixed() bool {
	return r.fixed != nil
}

// Key returns the key of the item at index
func (r *SizeResolver) Key(index int) Key {
	return r.key(index)
}
