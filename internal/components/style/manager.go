package style

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Manager handles styling and theming for the application
type Manager struct {
	theme *Theme
	cache map[string]lipgloss.Style
	mu    sync.RWMutex
}

// Theme defines color schemes and styling
type Theme struct {
	Name        string
	Description string
	Colors      *ColorScheme
}

// ColorScheme defines the color palette
type ColorScheme struct {
	Foreground lipgloss.Color
	Selection  *CellColors
	Marked     *CellColors
	UI         *UIColors
}

// CellColors for highlighted cells
type CellColors struct {
	Background lipgloss.Color
	Foreground lipgloss.Color
}

// UIColors for interface elements
type UIColors struct {
	Border  lipgloss.Color
	Header  lipgloss.Color
	Info    lipgloss.Color
	Warning lipgloss.Color
}

// CellState selects the highlight of a grid cell
type CellState int

const (
	CellNormal CellState = iota
	CellSelected
	CellMarked
)

// NewManager creates a new style manager with the default theme
func NewManager() *Manager {
	return &Manager{
		theme: getDefaultTheme(),
		cache: make(map[string]lipgloss.Style),
	}
}

// SetTheme sets the current theme
func (m *Manager) SetTheme(theme *Theme) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.theme = theme
	m.cache = make(map[string]lipgloss.Style) // Clear cache
}

// GetTheme returns the current theme
func (m *Manager) GetTheme() *Theme {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.theme
}

// Cell returns the style of a grid cell of the given width
func (m *Manager) Cell(width int, state CellState) lipgloss.Style {
	return m.cached(fmt.Sprintf("cell_%d_%d", width, state), func(c *ColorScheme) lipgloss.Style {
		style := lipgloss.NewStyle().
			Width(width).
			Padding(0, 1).
			Foreground(c.Foreground)

		switch state {
		case CellSelected:
			style = style.Background(c.Selection.Background).Foreground(c.Selection.Foreground)
		case CellMarked:
			style = style.Background(c.Marked.Background).Foreground(c.Marked.Foreground)
		}
		return style
	})
}

// Header returns the title bar style
func (m *Manager) Header(width int) lipgloss.Style {
	return m.cached(fmt.Sprintf("header_%d", width), func(c *ColorScheme) lipgloss.Style {
		return lipgloss.NewStyle().
			Width(width).
			Bold(true).
			Foreground(c.UI.Header).
			BorderBottom(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(c.UI.Border)
	})
}

// StatusBar returns the status line style
func (m *Manager) StatusBar(width int) lipgloss.Style {
	return m.cached(fmt.Sprintf("status_%d", width), func(c *ColorScheme) lipgloss.Style {
		return lipgloss.NewStyle().
			Width(width).
			MaxHeight(1).
			Foreground(c.UI.Info)
	})
}

// Indicator returns the style of the scrolling indicator
func (m *Manager) Indicator() lipgloss.Style {
	return m.cached("indicator", func(c *ColorScheme) lipgloss.Style {
		return lipgloss.NewStyle().Bold(true).Foreground(c.UI.Warning)
	})
}

func (m *Manager) cached(key string, build func(*ColorScheme) lipgloss.Style) lipgloss.Style {
	m.mu.RLock()
	style, ok := m.cache[key]
	colors := m.theme.Colors
	m.mu.RUnlock()
	if ok {
		return style
	}

	style = build(colors)

	m.mu.Lock()
	m.cache[key] = style
	m.mu.Unlock()
	return style
}

// ClearCache clears the style cache
func (m *Manager) ClearCache() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cache = make(map[string]lipgloss.Style)
}

// ThemeByName returns a built-in theme. Unknown names fall back to the
// default theme and report false.
func ThemeByName(name string) (*Theme, bool) {
	switch name {
	case "", "default":
		return getDefaultTheme(), true
	case "light":
		return GetLightTheme(), true
	case "high-contrast":
		return GetHighContrastTheme(), true
	default:
		return getDefaultTheme(), false
	}
}

// getDefaultTheme returns the default dark theme
func getDefaultTheme() *Theme {
	return &Theme{
		Name:        "default",
		Description: "Default dark theme",
		Colors: &ColorScheme{
			Foreground: lipgloss.Color("#d4d4d4"),
			Selection: &CellColors{
				Background: lipgloss.Color("#264f78"),
				Foreground: lipgloss.Color("#ffffff"),
			},
			Marked: &CellColors{
				Background: lipgloss.Color("#3c3c3c"),
				Foreground: lipgloss.Color("#dcdcaa"),
			},
			UI: &UIColors{
				Border:  lipgloss.Color("#3c3c3c"),
				Header:  lipgloss.Color("#cccccc"),
				Info:    lipgloss.Color("#569cd6"),
				Warning: lipgloss.Color("#dcdcaa"),
			},
		},
	}
}

// GetLightTheme returns a light theme
func GetLightTheme() *Theme {
	return &Theme{
		Name:        "light",
		Description: "Light theme",
		Colors: &ColorScheme{
			Foreground: lipgloss.Color("#000000"),
			Selection: &CellColors{
				Background: lipgloss.Color("#0078d4"),
				Foreground: lipgloss.Color("#ffffff"),
			},
			Marked: &CellColors{
				Background: lipgloss.Color("#f3f2f1"),
				Foreground: lipgloss.Color("#881798"),
			},
			UI: &UIColors{
				Border:  lipgloss.Color("#d1d1d1"),
				Header:  lipgloss.Color("#323130"),
				Info:    lipgloss.Color("#0078d4"),
				Warning: lipgloss.Color("#ffb900"),
			},
		},
	}
}

// GetHighContrastTheme returns a high contrast theme for accessibility
func GetHighContrastTheme() *Theme {
	return &Theme{
		Name:        "high-contrast",
		Description: "High contrast theme for accessibility",
		Colors: &ColorScheme{
			Foreground: lipgloss.Color("#ffffff"),
			Selection: &CellColors{
				Background: lipgloss.Color("#ffffff"),
				Foreground: lipgloss.Color("#000000"),
			},
			Marked: &CellColors{
				Background: lipgloss.Color("#000000"),
				Foreground: lipgloss.Color("#ffff00"),
			},
			UI: &UIColors{
				Border:  lipgloss.Color("#ffffff"),
				Header:  lipgloss.Color("#ffffff"),
				Info:    lipgloss.Color("#00ffff"),
				Warning: lipgloss.Color("#ffff00"),
			},
		},
	}
}
