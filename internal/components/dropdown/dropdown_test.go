package dropdown

import (
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HamStudy/vscroll/internal/virtual"
)

func newDropdown(t *testing.T, options ...Option) Model {
	t.Helper()
	if len(options) == 0 {
		options = []Option{
			{Label: "Option 1", Value: "value1"},
			{Label: "Option 2", Value: "value2"},
			{Label: "Option 3", Value: "value3"},
		}
	}
	model, err := New(options)
	require.NoError(t, err)
	return model
}

func manyOptions(n int) []Option {
	options := make([]Option, n)
	for i := range options {
		options[i] = Option{Label: fmt.Sprintf("Option %d", i), Value: fmt.Sprintf("value%d", i)}
	}
	return options
}

func TestDropdownBasicFunctionality(t *testing.T) {
	model := newDropdown(t)

	assert.False(t, model.IsOpen())
	assert.Equal(t, 0, model.GetSelectedIndex())
	assert.Equal(t, Option{Label: "Option 1", Value: "value1"}, model.GetSelectedOption())
}

func TestDropdownNavigation(t *testing.T) {
	model := newDropdown(t)
	model.Open()

	steps := []struct {
		msg  tea.KeyMsg
		want int
	}{
		{msg: tea.KeyMsg{Type: tea.KeyDown}, want: 1},
		{msg: tea.KeyMsg{Type: tea.KeyUp}, want: 0},
		{msg: tea.KeyMsg{Type: tea.KeyUp}, want: 2},
		{msg: tea.KeyMsg{Type: tea.KeyDown}, want: 0},
		{msg: tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")}, want: 1},
	}

	for _, step := range steps {
		model, _ = model.Update(step.msg)
		assert.Equal(t, step.want, model.GetSelectedIndex(), "after %s", step.msg)
	}
}

func TestDropdownSelection(t *testing.T) {
	model := newDropdown(t)
	model.Open()

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyDown})
	model, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.False(t, model.IsOpen())
	require.NotNil(t, cmd)
	selected, ok := cmd().(SelectedMsg)
	require.True(t, ok)
	assert.Equal(t, 1, selected.Index)
	assert.Equal(t, "Option 2", selected.Option.Label)
}

func TestDropdownCancel(t *testing.T) {
	model := newDropdown(t)
	model.Open()

	model, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEsc})

	assert.False(t, model.IsOpen())
	require.NotNil(t, cmd)
	assert.Equal(t, CancelledMsg{}, cmd())
}

func TestDropdownSetSelectedValue(t *testing.T) {
	model := newDropdown(t)

	model.SetSelectedValue("value2")
	assert.Equal(t, 1, model.GetSelectedIndex())
	assert.Equal(t, "value2", model.GetSelectedOption().Value)

	model.SetSelectedValue("missing")
	assert.Equal(t, 1, model.GetSelectedIndex())
}

func TestDropdownIgnoresKeysWhenClosed(t *testing.T) {
	model := newDropdown(t)

	model, cmd := model.Update(tea.KeyMsg{Type: tea.KeyDown})

	assert.Equal(t, 0, model.GetSelectedIndex())
	assert.Nil(t, cmd)
}

func TestDropdownView(t *testing.T) {
	model := newDropdown(t)
	assert.Empty(t, model.View())

	model.SetTitle("Select Theme")
	model.Open()
	view := model.View()

	assert.Contains(t, view, "Select Theme")
	assert.Contains(t, view, "Option 1")
	assert.Contains(t, view, "Option 3")
	assert.NotContains(t, view, "↓")
}

func TestDropdownWindowsLongLists(t *testing.T) {
	model := newDropdown(t, manyOptions(100)...)
	model.SetSize(30, 10)
	model.Open()

	// 10 lines minus the border
	assert.Equal(t, virtual.Range{Start: 0, End: 7}, model.Visible())
	view := model.View()
	assert.Contains(t, view, "Option 7")
	assert.NotContains(t, view, "Option 8")
	assert.Contains(t, view, "↓")
	assert.NotContains(t, view, "↑")

	for i := 0; i < 10; i++ {
		model, _ = model.Update(tea.KeyMsg{Type: tea.KeyDown})
	}
	assert.Equal(t, 10, model.GetSelectedIndex())
	assert.Equal(t, virtual.Range{Start: 3, End: 10}, model.Visible())

	// wrapping to the end reveals the last option
	model.SetSelectedIndex(0)
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 99, model.GetSelectedIndex())
	assert.Equal(t, virtual.Range{Start: 92, End: 99}, model.Visible())
	assert.Contains(t, model.View(), "↑")
}

func TestDropdownTitleShrinksWindow(t *testing.T) {
	model := newDropdown(t, manyOptions(20)...)
	model.SetSize(30, 10)
	model.SetTitle("Pick one")

	assert.Equal(t, virtual.Range{Start: 0, End: 6}, model.Visible())
}

func TestDropdownSetOptionsResetsSelection(t *testing.T) {
	model := newDropdown(t, manyOptions(50)...)
	model.SetSelectedIndex(40)

	model.SetOptions(manyOptions(5))

	assert.Equal(t, 0, model.GetSelectedIndex())
	assert.Equal(t, 0, model.Visible().Start)
	assert.Equal(t, 4, model.Visible().End)
}

func TestDropdownTruncatesLongLabels(t *testing.T) {
	model := newDropdown(t, Option{Label: "a very long option label that does not fit", Value: "long"})
	model.SetSize(20, 5)
	model.Open()

	assert.Contains(t, model.View(), "...")
}
