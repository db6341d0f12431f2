package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/go-logr/logr"
	"k8s.io/klog/v2"

	"github.com/HamStudy/vscroll/internal/components/dropdown"
	"github.com/HamStudy/vscroll/internal/components/selection"
	"github.com/HamStudy/vscroll/internal/components/style"
	"github.com/HamStudy/vscroll/internal/core"
	"github.com/HamStudy/vscroll/internal/viewport"
	"github.com/HamStudy/vscroll/internal/virtual"
)

// wheelStep is the number of lines scrolled per mouse wheel notch
const wheelStep = 3

// KeyMap defines the key bindings
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding
	Mark     key.Binding
	Reverse  key.Binding
	Theme    key.Binding
	Help     key.Binding
	Quit     key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "scroll left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "scroll right"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("pgup", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("pgdn", "page down"),
		),
		Home: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("g", "first row"),
		),
		End: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("G", "last row"),
		),
		Mark: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "mark row"),
		),
		Reverse: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reverse"),
		),
		Theme: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "theme"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Left, k.Right, k.Reverse, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown},
		{k.Left, k.Right, k.Home, k.End},
		{k.Mark, k.Reverse, k.Theme, k.Help, k.Quit},
	}
}

// scrollingMsg reports a change of the grid's scrolling flag
type scrollingMsg bool

// App represents the main application model
type App struct {
	state  *core.State
	config *core.Config
	keys   KeyMap
	help   help.Model
	styles *style.Manager
	logger logr.Logger

	grid      *virtual.Grid
	pane      *viewport.Pane
	tracker   *selection.Tracker
	observer  *rowObserver
	scrollBar *ScrollBar
	themes    dropdown.Model
	detach    func()
	send      func(tea.Msg)

	mounted map[virtual.Key]*rowElement
	screen  []string

	// UI state
	width     int
	height    int
	ready     bool
	scrolling bool
}

// NewApp creates a new application instance. opts are passed to the grid
// engine.
func NewApp(state *core.State, config *core.Config, opts ...virtual.Option) (*App, error) {
	a := &App{
		state:     state,
		config:    config,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		styles:    style.NewManager(),
		logger:    klog.Background().WithName("ui"),
		pane:      viewport.New(nil, 0, 0),
		tracker:   selection.New(),
		observer:  &rowObserver{},
		scrollBar: NewScrollBar(12),
		mounted:   make(map[virtual.Key]*rowElement),
	}

	theme, ok := style.ThemeByName(config.ColorScheme)
	if !ok {
		a.logger.Info("unknown color scheme, using default", "scheme", config.ColorScheme)
	}
	a.styles.SetTheme(theme)

	themes, err := dropdown.New([]dropdown.Option{
		{Label: "Default dark", Value: "default"},
		{Label: "Light", Value: "light"},
		{Label: "High contrast", Value: "high-contrast"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create theme picker: %w", err)
	}
	themes.SetTitle("Theme")
	themes.SetSize(30, 6)
	themes.SetSelectedValue(theme.Name)
	a.themes = themes

	cfg := virtual.DefaultGridConfig()
	cfg.Rows.Count = state.RowCount()
	cfg.Rows.GetKey = a.rowKey
	cfg.Rows.EstimateSize = func(int) float64 { return float64(config.RowEstimate) }
	cfg.Rows.Overscan = config.RowOverscan
	cfg.Columns.Count = state.ColumnCount()
	cfg.Columns.GetKey = func(index int) virtual.Key { return index }
	cfg.Columns.FixedSize = func(int) float64 { return float64(config.ColumnWidth) }
	cfg.Columns.Overscan = config.ColumnOverscan
	cfg.ScrollingDelay = config.ScrollingDelay
	cfg.CacheCapacity = config.CacheCapacity

	opts = append([]virtual.Option{
		virtual.WithLogger(klog.Background().WithName("grid")),
		virtual.WithObserverFactory(a.observer.factory),
		virtual.WithScrollingChange(a.onScrollingChange),
	}, opts...)

	grid, err := virtual.NewGrid(cfg, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create grid: %w", err)
	}
	a.grid = grid
	a.detach = grid.Attach(func() virtual.Viewport { return a.pane })

	a.tracker.SetKeys(a.rowKeys())
	a.tracker.UpdateSelection(0)
	return a, nil
}

// SetProgram lets the app deliver asynchronous notifications to p
func (a *App) SetProgram(p *tea.Program) {
	a.send = p.Send
}

// Close detaches the grid from its viewport
func (a *App) Close() {
	if a.detach != nil {
		a.detach()
	}
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	return tea.EnterAltScreen
}

// Update handles messages
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKey(msg)

	case tea.MouseMsg:
		a.handleMouse(msg)
		return a, nil

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.help.Width = msg.Width
		a.resize()
		return a, nil

	case scrollingMsg:
		a.scrolling = bool(msg)
		return a, nil

	case dropdown.SelectedMsg:
		a.setTheme(msg.Option.Value)
		a.resize()
		return a, nil

	case dropdown.CancelledMsg:
		a.resize()
		return a, nil
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.themes.IsOpen() {
		var cmd tea.Cmd
		a.themes, cmd = a.themes.Update(msg)
		return a, cmd
	}

	switch {
	case key.Matches(msg, a.keys.Quit):
		a.Close()
		return a, tea.Quit

	case key.Matches(msg, a.keys.Help):
		a.help.ShowAll = !a.help.ShowAll
		a.resize()

	case key.Matches(msg, a.keys.Up):
		a.moveSelection(-1)

	case key.Matches(msg, a.keys.Down):
		a.moveSelection(1)

	case key.Matches(msg, a.keys.PageUp):
		a.moveSelection(-a.pageRows())

	case key.Matches(msg, a.keys.PageDown):
		a.moveSelection(a.pageRows())

	case key.Matches(msg, a.keys.Home):
		a.moveSelection(-a.state.RowCount())

	case key.Matches(msg, a.keys.End):
		a.moveSelection(a.state.RowCount())

	case key.Matches(msg, a.keys.Left):
		a.pane.ScrollBy(virtual.Horizontal, -float64(a.config.ColumnWidth))
		a.layout()

	case key.Matches(msg, a.keys.Right):
		a.pane.ScrollBy(virtual.Horizontal, float64(a.config.ColumnWidth))
		a.layout()

	case key.Matches(msg, a.keys.Mark):
		a.tracker.ToggleMark(a.tracker.GetSelectedRow())
		a.layout()

	case key.Matches(msg, a.keys.Reverse):
		a.reverse()

	case key.Matches(msg, a.keys.Theme):
		a.themes.Open()
		a.resize()
	}

	return a, nil
}

func (a *App) handleMouse(msg tea.MouseMsg) {
	axis := virtual.Vertical
	if msg.Shift {
		axis = virtual.Horizontal
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		a.pane.ScrollBy(axis, -wheelStep)
	case tea.MouseButtonWheelDown:
		a.pane.ScrollBy(axis, wheelStep)
	case tea.MouseButtonWheelLeft:
		a.pane.ScrollBy(virtual.Horizontal, -wheelStep)
	case tea.MouseButtonWheelRight:
		a.pane.ScrollBy(virtual.Horizontal, wheelStep)
	default:
		return
	}
	a.layout()
}

// setTheme switches the color scheme. Cached cell renders use the old
// colors and are dropped.
func (a *App) setTheme(name string) {
	theme, ok := style.ThemeByName(name)
	if !ok {
		a.logger.Info("unknown color scheme", "scheme", name)
		return
	}
	a.config.ColorScheme = theme.Name
	a.styles.SetTheme(theme)
	a.pane.ClearRendered()
}

// resize fits the pane between the header and the footer
func (a *App) resize() {
	chrome := lipgloss.Height(a.header()) + 1 + lipgloss.Height(a.footer())
	a.pane.Resize(float64(a.width), float64(max(0, a.height-chrome)))
	a.layout()
}

func (a *App) moveSelection(delta int) {
	a.tracker.MoveSelection(delta)
	a.reveal()
}

// reverse reverses the dataset. Measurements and the selection stay with
// their rows.
func (a *App) reverse() {
	a.state.Reverse()
	a.tracker.SetKeys(a.rowKeys())
	if err := a.grid.SetRowKeyFunc(a.rowKey); err != nil {
		a.logger.Error(err, "failed to replace row keys")
		return
	}
	a.tracker.RestoreSelection()
	a.reveal()
}

// reveal scrolls the selected row into view
func (a *App) reveal() {
	a.layout()
	if a.scrollToSelection() {
		a.layout()
		if a.scrollToSelection() {
			a.layout()
		}
	}
}

func (a *App) scrollToSelection() bool {
	all := a.grid.Rows().All
	selected := a.tracker.GetSelectedRow()
	if selected < 0 || selected >= len(all) {
		return false
	}

	row := all[selected]
	top := a.pane.ScrollOffset(virtual.Vertical)
	height := a.pane.BoundingRect().Height

	switch {
	case row.Offset < top:
		a.pane.ScrollTo(virtual.Vertical, row.Offset)
	case row.End() > top+height:
		a.pane.ScrollTo(virtual.Vertical, row.End()-height)
	default:
		return false
	}
	return a.pane.ScrollOffset(virtual.Vertical) != top
}

func (a *App) pageRows() int {
	return max(1, int(a.pane.BoundingRect().Height)/max(1, a.config.RowEstimate))
}

func (a *App) onScrollingChange(scrolling bool) {
	if a.send != nil {
		go a.send(scrollingMsg(scrolling))
	}
}

func (a *App) rowKey(index int) virtual.Key {
	return a.state.RowID(index)
}

func (a *App) rowKeys() []virtual.Key {
	ids := a.state.RowIDs()
	keys := make([]virtual.Key, len(ids))
	for i, id := range ids {
		keys[i] = id
	}
	return keys
}

// View renders the application
func (a *App) View() string {
	if !a.ready {
		return "Initializing..."
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		a.header(),
		strings.Join(a.screen, "\n"),
		a.status(),
		a.footer(),
	)
}

// footer shows the theme picker while it is open and the help otherwise
func (a *App) footer() string {
	if a.themes.IsOpen() {
		return a.themes.View()
	}
	return a.help.View(a.keys)
}

func (a *App) header() string {
	title := fmt.Sprintf("vscroll  %d rows × %d columns", a.state.RowCount(), a.state.ColumnCount())
	if a.state.Reversed() {
		title += "  (reversed)"
	}
	if marked := a.tracker.MarkedCount(); marked > 0 {
		title += fmt.Sprintf("  %d marked", marked)
	}
	return a.styles.Header(a.width).Render(title)
}

func (a *App) status() string {
	rows := a.grid.Rows().Range
	columns := a.grid.Columns().Range
	top, left := a.grid.ScrollOffset()
	metrics := a.grid.CacheMetrics()

	a.scrollBar.SetPosition(top, a.pane.BoundingRect().Height, a.pane.ContentSize().Height)

	status := fmt.Sprintf("rows %d-%d  cols %d-%d  top %.0f left %.0f  measured %d (%.0f%% hits)  %s",
		rows.Start, rows.End, columns.Start, columns.End, top, left,
		metrics.Entries, metrics.HitRatio()*100, a.scrollBar.View())
	if a.scrolling || a.grid.IsScrolling() {
		status += "  " + a.styles.Indicator().Render("scrolling")
	}
	return a.styles.StatusBar(a.width).Render(status)
}
