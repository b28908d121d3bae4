package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Layout constants
const (
	// Textarea
	minTextareaHeight    = 3
	maxTextareaHeight    = 10
	defaultTextareaWidth = 80
	textAreaPaddingLeft  = 1

	// Viewport
	minViewportHeight = 1

	// Layout
	inputBorderHeight  = 2
	headerHeight       = 2
	messagePaddingLeft = 2
)

// Color palette
var (
	primaryColor   = lipgloss.Color("#7C3AED") // Purple
	secondaryColor = lipgloss.Color("#06B6D4") // Cyan
	accentColor    = lipgloss.Color("#F59E0B") // Amber
	errorColor     = lipgloss.Color("#EF4444") // Red
	mutedColor     = lipgloss.Color("#6B7280") // Gray
	textColor      = lipgloss.Color("#F9FAFB") // Light gray
	dimTextColor   = lipgloss.Color("#9CA3AF") // Dim gray
)

// Title bar
var (
	titleStyle = lipgloss.NewStyle().
		Background(primaryColor).
		Foreground(textColor).
		Bold(true)
)

// Messages.
var (
	messageStyle = lipgloss.NewStyle().
			Foreground(textColor).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder())

	userMessageStyle = lipgloss.NewStyle().
				Inherit(messageStyle).
				BorderForeground(primaryColor).
				MarginLeft(10)

	aiMessageStyle = lipgloss.NewStyle().
			Inherit(messageStyle).
			BorderForeground(secondaryColor).
			MarginRight(10)

	messageInterruptStyle = lipgloss.NewStyle().
				Foreground(accentColor).
				Italic(true).
				PaddingLeft(messagePaddingLeft)
)

// Status line
var (
	statusStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Italic(true)

	readyStyle = lipgloss.NewStyle().
			Foreground(secondaryColor).
			Italic(true)

	dimTextStyle = lipgloss.NewStyle().
			Foreground(dimTextColor)
)

// Error
var (
	errorStyle = lipgloss.NewStyle().
		Foreground(errorColor).
		Bold(true)
)

// Input area
var (
	textAreaStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(primaryColor).
		PaddingLeft(textAreaPaddingLeft)
)

// Spinner
var (
	spinnerStyle = lipgloss.NewStyle().
		Foreground(secondaryColor)
)

// Help text
var (
	helpStyle = lipgloss.NewStyle().
		Foreground(mutedColor).
		Italic(true)
)

// Viewport
var (
	viewportStyle = lipgloss.NewStyle().Margin(0).Padding(0)
)

// messageHorizontalFrameSize returns the horizontal frame size of assistant messages.
func messageHorizontalFrameSize() int {
	return aiMessageStyle.GetHorizontalFrameSize()
}
