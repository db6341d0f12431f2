package dropdown

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"

	"github.com/HamStudy/vscroll/internal/virtual"
)

// Option represents a dropdown option
type Option struct {
	Label string
	Value string
}

// Model is a dropdown whose option list is windowed, so only the options that
// fit its height are rendered
type Model struct {
	options []Option
	list    *virtual.List

	// State
	selectedIndex int
	isOpen        bool
	width         int
	height        int

	// Styling
	selectedStyle   lipgloss.Style
	unselectedStyle lipgloss.Style
	borderStyle     lipgloss.Style
	titleStyle      lipgloss.Style
	hintStyle       lipgloss.Style

	title  string
	keyMap KeyMap
}

// KeyMap defines the key bindings for the dropdown
type KeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Enter  key.Binding
	Escape key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "move down"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

// New creates a new dropdown model
func New(options []Option) (Model, error) {
	m := Model{
		width:           30,
		height:          10,
		selectedStyle:   lipgloss.NewStyle().Background(lipgloss.Color("57")).Foreground(lipgloss.Color("229")),
		unselectedStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
		borderStyle:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")),
		titleStyle:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86")),
		hintStyle:       lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		keyMap:          DefaultKeyMap(),
	}

	cfg := virtual.DefaultListConfig()
	cfg.Items.Overscan = 0
	cfg.Items.GetKey = func(index int) virtual.Key { return index }
	cfg.Items.FixedSize = func(int) float64 { return 1 }

	list, err := virtual.NewList(cfg)
	if err != nil {
		return Model{}, err
	}
	m.list = list
	m.SetOptions(options)
	m.resizeList()
	return m, nil
}

// SetOptions updates the dropdown options
func (m *Model) SetOptions(options []Option) {
	m.options = options
	m.list.SetCount(len(options))
	if m.selectedIndex >= len(options) {
		m.selectedIndex = 0
	}
	m.reveal()
}

// SetTitle sets the dropdown title
func (m *Model) SetTitle(title string) {
	m.title = title
	m.resizeList()
}

// SetSize sets the dropdown dimensions
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.resizeList()
}

// Open opens the dropdown
func (m *Model) Open() {
	m.isOpen = true
	m.reveal()
}

// Close closes the dropdown
func (m *Model) Close() {
	m.isOpen = false
}

// IsOpen returns whether the dropdown is open
func (m *Model) IsOpen() bool {
	return m.isOpen
}

// GetSelectedOption returns the currently selected option
func (m *Model) GetSelectedOption() Option {
	if m.selectedIndex >= 0 && m.selectedIndex < len(m.options) {
		return m.options[m.selectedIndex]
	}
	return Option{}
}

// GetSelectedIndex returns the currently selected index
func (m *Model) GetSelectedIndex() int {
	return m.selectedIndex
}

// SetSelectedIndex sets the selected index
func (m *Model) SetSelectedIndex(index int) {
	if index >= 0 && index < len(m.options) {
		m.selectedIndex = index
		m.reveal()
	}
}

// SetSelectedValue sets the selected option by value
func (m *Model) SetSelectedValue(value string) {
	for i, option := range m.options {
		if option.Value == value {
			m.SetSelectedIndex(i)
			return
		}
	}
}

// Visible returns the range of rendered options
func (m *Model) Visible() virtual.Range {
	return m.list.Window().Range
}

// visibleCount is the number of option lines inside the border
func (m *Model) visibleCount() int {
	n := m.height - 2
	if m.title != "" {
		n--
	}
	return max(1, n)
}

func (m *Model) resizeList() {
	m.list.SetViewportSize(virtual.Size{Width: float64(m.width), Height: float64(m.visibleCount())})
	m.reveal()
}

// reveal scrolls the option list so the selected option is visible
func (m *Model) reveal() {
	top := int(m.list.ScrollOffset())
	visible := m.visibleCount()
	switch {
	case m.selectedIndex < top:
		top = m.selectedIndex
	case m.selectedIndex >= top+visible:
		top = m.selectedIndex - visible + 1
	}
	top = max(0, min(top, len(m.options)-visible))
	m.list.SetScrollOffset(float64(top))
}

// Init initializes the dropdown
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || !m.isOpen || len(m.options) == 0 {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keyMap.Up):
		if m.selectedIndex > 0 {
			m.selectedIndex--
		} else {
			m.selectedIndex = len(m.options) - 1
		}
		m.reveal()

	case key.Matches(keyMsg, m.keyMap.Down):
		if m.selectedIndex < len(m.options)-1 {
			m.selectedIndex++
		} else {
			m.selectedIndex = 0
		}
		m.reveal()

	case key.Matches(keyMsg, m.keyMap.Enter):
		m.isOpen = false
		selected := SelectedMsg{Option: m.GetSelectedOption(), Index: m.selectedIndex}
		return m, func() tea.Msg { return selected }

	case key.Matches(keyMsg, m.keyMap.Escape):
		m.isOpen = false
		return m, func() tea.Msg { return CancelledMsg{} }
	}

	return m, nil
}

// View renders the dropdown
func (m Model) View() string {
	if !m.isOpen {
		return ""
	}

	var lines []string
	if m.title != "" {
		lines = append(lines, m.titleStyle.Render(m.title))
	}

	maxWidth := max(1, m.width-4)
	window := m.list.Window()
	for _, item := range window.Items {
		line := xansi.Truncate(m.options[item.Index].Label, maxWidth, "...")
		if item.Index == m.selectedIndex {
			line = m.selectedStyle.Width(maxWidth).Render(line)
		} else {
			line = m.unselectedStyle.Width(maxWidth).Render(line)
		}
		lines = append(lines, line)
	}

	var hint string
	if !window.Range.Empty() && window.Range.Start > 0 {
		hint += "↑ "
	}
	if !window.Range.Empty() && window.Range.End < len(m.options)-1 {
		hint += "↓"
	}
	if hint != "" {
		lines = append(lines, m.hintStyle.Render(hint))
	}

	return m.borderStyle.Width(m.width).Render(strings.Join(lines, "\n"))
}

// SelectedMsg is sent when an option is selected
type SelectedMsg struct {
	Option Option
	Index  int
}

// CancelledMsg is sent when the dropdown is cancelled
type CancelledMsg struct{}
