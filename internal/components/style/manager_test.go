package style

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestThemeByName(t *testing.T) {
	tests := []struct {
		name  string
		want  string
		known bool
	}{
		{name: "", want: "default", known: true},
		{name: "light", want: "light", known: true},
		{name: "high-contrast", want: "high-contrast", known: true},
		{name: "neon", want: "default", known: false},
	}

	for _, tt := range tests {
		t.Run(tt.want+"/"+tt.name, func(t *testing.T) {
			theme, ok := ThemeByName(tt.name)
			assert.Equal(t, tt.want, theme.Name)
			assert.Equal(t, tt.known, ok)
		})
	}
}

func TestCellStyles(t *testing.T) {
	m := NewManager()

	normal := m.Cell(24, CellNormal)
	selected := m.Cell(24, CellSelected)

	assert.Equal(t, 24, normal.GetWidth())
	assert.Equal(t, lipgloss.Color("#264f78"), selected.GetBackground())
	assert.Equal(t, 2, lipgloss.Height(normal.Render("one two three four five six seven")))
}

func TestSetThemeClearsCache(t *testing.T) {
	m := NewManager()
	before := m.Cell(10, CellSelected)

	m.SetTheme(GetLightTheme())
	after := m.Cell(10, CellSelected)

	assert.NotEqual(t, before.GetBackground(), after.GetBackground())
	assert.Equal(t, "light", m.GetTheme().Name)
}
