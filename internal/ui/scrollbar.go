package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ScrollBar shows how far an axis is scrolled through its content
type ScrollBar struct {
	width     int
	progress  float64
	style     lipgloss.Style
	fillStyle lipgloss.Style
	showText  bool
}

// NewScrollBar creates a new scroll bar
func NewScrollBar(width int) *ScrollBar {
	return &ScrollBar{
		width:     width,
		style:     lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		fillStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		showText:  true,
	}
}

// SetPosition derives the progress from a scroll offset, the viewport extent
// and the content extent
func (sb *ScrollBar) SetPosition(offset, viewport, content float64) {
	scrollable := content - viewport
	if scrollable <= 0 {
		sb.progress = 1
		return
	}
	sb.progress = min(max(offset/scrollable, 0), 1)
}

// Progress returns the scroll progress between 0 and 1
func (sb *ScrollBar) Progress() float64 {
	return sb.progress
}

// View renders the scroll bar
func (sb *ScrollBar) View() string {
	filled := int(float64(sb.width) * sb.progress)
	empty := sb.width - filled

	bar := sb.fillStyle.Render(strings.Repeat("█", filled)) +
		sb.style.Render(strings.Repeat("░", empty))

	if sb.showText {
		return fmt.Sprintf("%s %3.0f%%", bar, sb.progress*100)
	}
	return bar
}
