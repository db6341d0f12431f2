package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/HamStudy/vscroll/internal/virtual"
)

func keys(ids ...string) []virtual.Key {
	out := make([]virtual.Key, len(ids))
	for i, id := range ids {
		out[i] = id
	}
	return out
}

func TestTracker_SelectionFollowsKeyAcrossReorder(t *testing.T) {
	tr := New()
	tr.SetKeys(keys("a", "b", "c", "d"))
	tr.UpdateSelection(1)

	tr.SetKeys(keys("d", "c", "b", "a"))
	row := tr.RestoreSelection()

	assert.Equal(t, 2, row)
	key, ok := tr.GetSelectedKey()
	assert.True(t, ok)
	assert.Equal(t, "b", key)
	assert.True(t, tr.IsKeySelected("b"))
}

func TestTracker_RestoreWhenKeyIsGone(t *testing.T) {
	tests := []struct {
		name     string
		selected int
		next     []virtual.Key
		wantRow  int
		wantKey  virtual.Key
		wantSel  bool
	}{
		{name: "previous row still valid", selected: 1, next: keys("x", "y", "z"), wantRow: 1, wantKey: "y", wantSel: true},
		{name: "previous row out of bounds", selected: 3, next: keys("x", "y"), wantRow: 1, wantKey: "y", wantSel: true},
		{name: "empty collection", selected: 2, next: nil, wantRow: 0, wantSel: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := New()
			tr.SetKeys(keys("a", "b", "c", "d"))
			tr.UpdateSelection(tt.selected)

			tr.SetKeys(tt.next)
			row := tr.RestoreSelection()

			assert.Equal(t, tt.wantRow, row)
			key, ok := tr.GetSelectedKey()
			assert.Equal(t, tt.wantSel, ok)
			if tt.wantSel {
				assert.Equal(t, tt.wantKey, key)
			}
		})
	}
}

func TestTracker_MoveSelection(t *testing.T) {
	tr := New()
	assert.Equal(t, 0, tr.MoveSelection(3))
	assert.False(t, tr.HasSelection())

	tr.SetKeys(keys("a", "b", "c"))
	assert.Equal(t, 2, tr.MoveSelection(5))
	assert.Equal(t, 0, tr.MoveSelection(-10))
	assert.Equal(t, 1, tr.MoveSelection(1))

	key, _ := tr.GetSelectedKey()
	assert.Equal(t, "b", key)
	assert.Equal(t, 1, tr.GetSelectedRow())
}

func TestTracker_MarksAreKeyed(t *testing.T) {
	tr := New()
	tr.SetKeys(keys("a", "b", "c"))

	assert.True(t, tr.ToggleMark(0))
	assert.True(t, tr.ToggleMark(2))
	assert.False(t, tr.ToggleMark(2))
	assert.False(t, tr.ToggleMark(7))

	tr.SetKeys(keys("c", "b", "a"))
	assert.True(t, tr.IsMarked("a"))
	assert.False(t, tr.IsMarked("c"))
	assert.Equal(t, 1, tr.MarkedCount())

	tr.SetKeys(keys("b"))
	assert.Zero(t, tr.MarkedCount())
}

func TestTracker_Clear(t *testing.T) {
	tr := New()
	tr.SetKeys(keys("a", "b"))
	tr.UpdateSelection(1)
	tr.ToggleMark(0)

	tr.Clear()

	assert.False(t, tr.HasSelection())
	assert.Zero(t, tr.GetRowCount())
	assert.Zero(t, tr.GetSelectedRow())
	assert.False(t, tr.IsMarked("a"))
	_, ok := tr.GetKeyAt(0)
	assert.False(t, ok)
}
