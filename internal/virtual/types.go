package virtual

// Axis identifies one scrollable dimension of a viewport
type Axis int

const (
	// Vertical is the row axis, used by lists and by the rows of a grid
	Vertical Axis = iota
	// Horizontal is the column axis of a grid
	Horizontal
)

// String returns the axis name used in logs and errors
func (a Axis) String() string {
	switch a {
	case Vertical:
		return "vertical"
	case Horizontal:
		return "horizontal"
	default:
		return "unknown"
	}
}

// Key is the stable identity of an item. Keys must be comparable
// (strings and integers are the common cases) and must not change when the
// backing collection is reordered.
type Key interface{}

// KeyFunc returns the key of the item currently at index
type KeyFunc func(index int) Key

// SizeFunc returns a size (fixed or estimated) for the item at index
type SizeFunc func(index int) float64

// Item describes one item on an axis
type Item struct {
	Index  int
	Key    Key
	Size   float64
	Offset float64
}

// End returns the trailing edge of the item
func (i Item) End() float64 {
	return i.Offset + i.Size
}

// Range is an inclusive index range. The empty range has End < Start.
type Range struct {
	Start int
	End   int
}

// EmptyRange is returned when an axis has no items
var EmptyRange = Range{Start: 0, End: -1}

// Empty reports whether the range contains no indices
func (r Range) Empty() bool {
	return r.End < r.Start
}

// Len returns the number of indices in the range
func (r Range) Len() int {
	if r.Empty() {
		return 0
	}
	return r.End - r.Start + 1
}

// Contains reports whether index lies inside the range
func (r Range) Contains(index int) bool {
	return !r.Empty() && index >= r.Start && index <= r.End
}

// AxisState is the mutable scroll input of one axis
type AxisState struct {
	ScrollOffset   float64
	ViewportExtent float64
}

func (s AxisState) normalized() AxisState {
	if s.ScrollOffset < 0 {
		s.ScrollOffset = 0
	}
	if s.ViewportExtent < 0 {
		s.ViewportExtent = 0
	}
	return s
}

// Window is the computed output for one axis. It is replaced wholesale on
// every recomputation and must be treated as read-only.
type Window struct {
	// Items holds the visible items plus overscan, in index order
	Items []Item
	// All holds every item on the axis
	All         []Item
	Range       Range
	TotalExtent float64
}

// Size is the box size of a viewport
type Size struct {
	Height float64
	Width  float64
}

// Extent returns the size along axis
func (s Size) Extent(axis Axis) float64 {
	if axis == Horizontal {
		return s.Width
	}
	return s.Height
}

// Rect is a bounding rectangle
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Cell is one visible grid cell
type Cell struct {
	Row    Item
	Column Item
}
