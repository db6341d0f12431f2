package selection

import (
	"sync"

	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/HamStudy/vscroll/internal/virtual"
)

// Tracker manages row selection by key, so the selection follows its row
// when the collection is reordered
type Tracker struct {
	selectedKey virtual.Key
	hasKey      bool
	keys        []virtual.Key
	rows        map[virtual.Key]int
	marked      sets.Set[virtual.Key]
	selectedRow int
	mu          sync.RWMutex
}

// New creates a new selection tracker
func New() *Tracker {
	return &Tracker{
		rows:   make(map[virtual.Key]int),
		marked: sets.New[virtual.Key](),
	}
}

// SetKeys sets the key of every row, in row order
func (t *Tracker) SetKeys(keys []virtual.Key) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.keys = append([]virtual.Key(nil), keys...)
	t.rows = make(map[virtual.Key]int, len(keys))
	for row, key := range t.keys {
		t.rows[key] = row
	}
}

// UpdateSelection updates the selected row and saves its key
func (t *Tracker) UpdateSelection(row int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.selectedRow = row
	t.saveLocked()
}

// GetSelectedRow returns the currently selected row index
func (t *Tracker) GetSelectedRow() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.selectedRow
}

// GetSelectedKey returns the key of the selected row
func (t *Tracker) GetSelectedKey() (virtual.Key, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.selectedKey, t.hasKey
}

// HasSelection returns true if there is a current selection
func (t *Tracker) HasSelection() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.hasKey
}

// IsKeySelected returns true if key is the selected row's key
func (t *Tracker) IsKeySelected(key virtual.Key) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.hasKey && t.selectedKey == key
}

// RestoreSelection moves the selection to wherever the selected key now
// lives. If the key is gone the previous row is kept when still valid,
// otherwise the last row is selected.
func (t *Tracker) RestoreSelection() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	total := len(t.keys)
	if t.hasKey {
		if row, ok := t.rows[t.selectedKey]; ok {
			t.selectedRow = row
			return row
		}
	}

	switch {
	case total == 0:
		t.selectedRow = 0
		t.hasKey = false
		t.selectedKey = nil
		return 0
	case t.selectedRow >= total:
		t.selectedRow = total - 1
	case t.selectedRow < 0:
		t.selectedRow = 0
	}
	t.saveLocked()
	return t.selectedRow
}

// MoveSelection moves the selection by the given delta
func (t *Tracker) MoveSelection(delta int) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	total := len(t.keys)
	if total == 0 {
		t.selectedRow = 0
		return 0
	}

	t.selectedRow = min(max(t.selectedRow+delta, 0), total-1)
	t.saveLocked()
	return t.selectedRow
}

// ToggleMark marks or unmarks the row at index and reports whether it is
// now marked
func (t *Tracker) ToggleMark(row int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if row < 0 || row >= len(t.keys) {
		return false
	}
	key := t.keys[row]
	if t.marked.Has(key) {
		t.marked.Delete(key)
		return false
	}
	t.marked.Insert(key)
	return true
}

// IsMarked reports whether the row with key is marked
func (t *Tracker) IsMarked(key virtual.Key) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.marked.Has(key)
}

// MarkedCount returns the number of marked rows that still exist
func (t *Tracker) MarkedCount() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	count := 0
	for key := range t.marked {
		if _, ok := t.rows[key]; ok {
			count++
		}
	}
	return count
}

// GetKeyAt returns the key of the row at index
func (t *Tracker) GetKeyAt(row int) (virtual.Key, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if row < 0 || row >= len(t.keys) {
		return nil, false
	}
	return t.keys[row], true
}

// GetRowCount returns the number of tracked rows
func (t *Tracker) GetRowCount() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.keys)
}

// Clear clears all selection data
func (t *Tracker) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.selectedKey = nil
	t.hasKey = false
	t.keys = nil
	t.rows = make(map[virtual.Key]int)
	t.marked = sets.New[virtual.Key]()
	t.selectedRow = 0
}

func (t *Tracker) saveLocked() {
	if t.selectedRow >= 0 && t.selectedRow < len(t.keys) {
		t.selectedKey = t.keys[t.selectedRow]
		t.hasKey = true
	}
}
