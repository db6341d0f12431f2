package virtual

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompute_FixedHeightList(t *testing.T) {
	w := Compute(10000, AxisState{ScrollOffset: 0, ViewportExtent: 500}, 3, constant(40), indexKey)

	assert.Equal(t, Range{Start: 0, End: 15}, w.Range)
	assert.Equal(t, float64(400000), w.TotalExtent)
	require.Len(t, w.Items, 16)
	assert.Equal(t, 0, w.Items[0].Index)
	assert.Equal(t, 15, w.Items[15].Index)
	assert.Equal(t, float64(600), w.Items[15].Offset)
	assert.Len(t, w.All, 10000)
}

func TestCompute_EmptyCollection(t *testing.T) {
	states := []AxisState{
		{},
		{ScrollOffset: 1000, ViewportExtent: 500},
		{ScrollOffset: 0, ViewportExtent: 1e9},
	}

	for _, state := range states {
		w := Compute(0, state, 3, constant(40), indexKey)

		assert.NotNil(t, w.Items)
		assert.Empty(t, w.Items)
		assert.Empty(t, w.All)
		assert.Zero(t, w.TotalExtent)
		assert.True(t, w.Range.Empty())
		assert.Zero(t, w.Range.Len())
	}
}

func TestCompute_SingleItem(t *testing.T) {
	w := Compute(1, AxisState{ViewportExtent: 500}, 3, constant(72), indexKey)

	assert.Equal(t, Range{Start: 0, End: 0}, w.Range)
	assert.Equal(t, float64(72), w.TotalExtent)
	assert.Equal(t, []Item{{Index: 0, Key: 0, Size: 72, Offset: 0}}, w.Items)
}

func TestCompute_PrefixSums(t *testing.T) {
	sizes := randomSizes(500, 1)

	w := Compute(len(sizes), AxisState{ScrollOffset: 1234, ViewportExtent: 300}, 2, sizeAt(sizes), indexKey)

	var sum float64
	for i, item := range w.All {
		assert.Equal(t, i, item.Index)
		assert.Equal(t, sum, item.Offset, "offset of item %d", i)
		assert.Equal(t, sizes[i], item.Size)
		sum += item.Size
	}
	assert.Equal(t, sum, w.TotalExtent)
}

func TestCompute_RangeCoversIntersectingItems(t *testing.T) {
	sizes := randomSizes(200, 7)
	var total float64
	for _, s := range sizes {
		total += s
	}

	for _, overscan := range []int{0, 1, 3, 10} {
		for _, extent := range []float64{1, 35, 250, 1000} {
			for scroll := 0.0; scroll < total; scroll += 97 {
				state := AxisState{ScrollOffset: scroll, ViewportExtent: extent}
				w := Compute(len(sizes), state, overscan, sizeAt(sizes), indexKey)

				first, last := intersecting(w.All, state)
				require.GreaterOrEqual(t, first, 0)

				assert.Equal(t, max(0, first-overscan), w.Range.Start, "start at scroll=%v extent=%v overscan=%d", scroll, extent, overscan)
				assert.Equal(t, min(len(sizes)-1, last+overscan), w.Range.End, "end at scroll=%v extent=%v overscan=%d", scroll, extent, overscan)
				assert.Equal(t, w.Range.Len(), len(w.Items))
			}
		}
	}
}

func TestCompute_OverscanClampedToBounds(t *testing.T) {
	w := Compute(20, AxisState{ScrollOffset: 700, ViewportExtent: 200}, 50, constant(40), indexKey)

	assert.Equal(t, Range{Start: 0, End: 19}, w.Range)
	assert.Len(t, w.Items, 20)
}

func TestCompute_ViewportPastContent(t *testing.T) {
	w := Compute(10, AxisState{ScrollOffset: 360, ViewportExtent: 500}, 2, constant(40), indexKey)

	// item 9 spans [360, 400) and is the last intersecting item
	assert.Equal(t, Range{Start: 7, End: 9}, w.Range)
}

func TestCompute_ScrolledBeyondContent(t *testing.T) {
	w := Compute(10, AxisState{ScrollOffset: 1e6, ViewportExtent: 500}, 2, constant(40), indexKey)

	assert.Equal(t, Range{Start: 7, End: 9}, w.Range)
	assert.False(t, w.Range.Empty())
}

func TestCompute_NegativeInputsAreClamped(t *testing.T) {
	w := Compute(100, AxisState{ScrollOffset: -50, ViewportExtent: 100}, -4, constant(10), indexKey)

	assert.Equal(t, Range{Start: 0, End: 9}, w.Range)
}

func TestCompute_ZeroExtentOnItemBoundary(t *testing.T) {
	w := Compute(10, AxisState{ScrollOffset: 40, ViewportExtent: 0}, 0, constant(40), indexKey)

	assert.LessOrEqual(t, w.Range.Start, w.Range.End)
	assert.Equal(t, 1, w.Range.Start)
}

func TestCompute_Idempotent(t *testing.T) {
	sizes := randomSizes(1000, 3)
	state := AxisState{ScrollOffset: 5000, ViewportExtent: 640}

	first := Compute(len(sizes), state, 3, sizeAt(sizes), indexKey)
	second := Compute(len(sizes), state, 3, sizeAt(sizes), indexKey)

	assert.Equal(t, first, second)
}

func TestCompute_UsesKeys(t *testing.T) {
	ids := []string{"a", "b", "c"}

	w := Compute(3, AxisState{ViewportExtent: 100}, 0, constant(10), keysOf(ids))

	for i, item := range w.All {
		assert.Equal(t, ids[i], item.Key)
	}
}

func TestRange(t *testing.T) {
	tests := []struct {
		name     string
		r        Range
		empty    bool
		length   int
		contains int
		want     bool
	}{
		{name: "empty", r: EmptyRange, empty: true, length: 0, contains: 0, want: false},
		{name: "single", r: Range{Start: 4, End: 4}, length: 1, contains: 4, want: true},
		{name: "span", r: Range{Start: 2, End: 9}, length: 8, contains: 10, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.empty, tt.r.Empty())
			assert.Equal(t, tt.length, tt.r.Len())
			assert.Equal(t, tt.want, tt.r.Contains(tt.contains))
		})
	}
}

func randomSizes(n int, seed int64) []float64 {
	rng := rand.New(rand.NewSource(seed))
	sizes := make([]float64, n)
	for i := range sizes {
		sizes[i] = float64(20 + rng.Intn(80))
	}
	return sizes
}

func sizeAt(sizes []float64) SizeFunc {
	return func(index int) float64 { return sizes[index] }
}

// intersecting returns the first and last item whose [offset, end) overlaps
// the viewport
func intersecting(items []Item, state AxisState) (int, int) {
	first, last := -1, -1
	viewportEnd := state.ScrollOffset + state.ViewportExtent
	for _, item := range items {
		if item.Offset < viewportEnd && item.End() > state.ScrollOffset {
			if first == -1 {
				first = item.Index
			}
			last = item.Index
		}
	}
	return first, last
}
