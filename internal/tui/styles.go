package tui

import "github.com/charmbracelet/lipgloss"

// Colors defines the color palette for the TUI.
var Colors = struct {
	// Base colors
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Muted      lipgloss.Color
	Error      lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Background lipgloss.Color

	// Title/text colors
	TitleNormal   lipgloss.Color
	TitleSelected lipgloss.Color

	// Status colors
	Open       lipgloss.Color
	InProgress lipgloss.Color
	Closed     lipgloss.Color

	// Priority colors
	High   lipgloss.Color
	Medium lipgloss.Color
	Low    lipgloss.Color
}{
	Primary:    lipgloss.Color("#6C5CE7"), // Purple
	Secondary:  lipgloss.Color("#A29BFE"), // Lavender
	Muted:      lipgloss.Color("#636E72"), // Gray
	Error:      lipgloss.Color("#D63031"), // Red
	Success:    lipgloss.Color("#00B894"), // Green
	Warning:    lipgloss.Color("#FDCB6E"), // Yellow
	Background: lipgloss.Color("#2D3436"), // Dark gray

	TitleNormal:   lipgloss.Color("#DFE6E9"), // Light gray
	TitleSelected: lipgloss.Color("#FFEAA7"), // Yellow (selected)

	Open:       lipgloss.Color("#74B9FF"), // Light blue
	InProgress: lipgloss.Color("#FDCB6E"), // Yellow
	Closed:     lipgloss.Color("#636E72"), // Gray

	High:   lipgloss.Color("#D63031"), // Red
	Medium: lipgloss.Color("#FDCB6E"), // Yellow
	Low:    lipgloss.Color("#00B894"), // Green
}

// Styles contains all the lipgloss styles for the TUI.
type Styles struct {
	// App
	App lipgloss.Style

	// Header
	Header     lipgloss.Style
	HeaderText lipgloss.Style

	// Issue table
	TableHeader    lipgloss.Style
	Row            lipgloss.Style
	RowSelected    lipgloss.Style
	CursorNormal   lipgloss.Style
	CursorSelected lipgloss.Style
	Filter         lipgloss.Style
	FilterActive   lipgloss.Style

	// Status badges
	StatusOpen       lipgloss.Style
	StatusInProgress lipgloss.Style
	StatusClosed     lipgloss.Style

	// Priority badges
	PriorityHigh   lipgloss.Style
	PriorityMedium lipgloss.Style
	PriorityLow    lipgloss.Style

	// Help
	Help lipgloss.Style

	// Footer
	Footer    lipgloss.Style
	FooterKey lipgloss.Style

	// Input
	Input        lipgloss.Style
	InputFocused lipgloss.Style
	InputPrompt  lipgloss.Style

	// Messages
	ErrorMsg  lipgloss.Style
	NoticeMsg lipgloss.Style

	// Detail view
	DetailTitle lipgloss.Style
	DetailLabel lipgloss.Style
	DetailValue lipgloss.Style
	DetailMuted lipgloss.Style
}

// fg returns a style with only the foreground set.
func fg(c lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c)
}

// DefaultStyles returns the default styles for the TUI.
func DefaultStyles() Styles {
	box := lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.RoundedBorder())
	title := fg(Colors.Primary).Bold(true).MarginBottom(1)

	return Styles{
		App:        lipgloss.NewStyle().Padding(1, 2),
		Header:     title,
		HeaderText: lipgloss.NewStyle().Bold(true),

		TableHeader:    fg(Colors.Secondary).Bold(true),
		Row:            fg(Colors.TitleNormal),
		RowSelected:    fg(Colors.TitleSelected).Bold(true),
		CursorNormal:   fg(Colors.Muted),
		CursorSelected: fg(Colors.TitleSelected).Bold(true),
		Filter:         fg(Colors.Muted),
		FilterActive:   fg(Colors.Secondary).Bold(true),

		StatusOpen:       fg(Colors.Open),
		StatusInProgress: fg(Colors.InProgress),
		StatusClosed:     fg(Colors.Closed),
		PriorityHigh:     fg(Colors.High).Bold(true),
		PriorityMedium:   fg(Colors.Medium),
		PriorityLow:      fg(Colors.Low),

		Help:      box.Padding(1, 2).BorderForeground(Colors.Primary),
		Footer:    fg(Colors.Muted),
		FooterKey: fg(Colors.Primary).Bold(true),

		Input:        box.BorderForeground(Colors.Muted),
		InputFocused: box.BorderForeground(Colors.Primary),
		InputPrompt:  fg(Colors.Primary).Bold(true),

		ErrorMsg:  fg(Colors.Error).Bold(true),
		NoticeMsg: fg(Colors.Success),

		DetailTitle: title,
		DetailLabel: fg(Colors.Muted).Width(12),
		DetailValue: lipgloss.NewStyle(),
		DetailMuted: fg(Colors.Muted).Italic(true),
	}
}

// ClassStyle returns the style for a status or priority presentation class
// (e.g. "status-open", "priority-high"). Unknown classes are unstyled.
func (s Styles) ClassStyle(class string) lipgloss.Style {
	switch class {
	case "status-open":
		return s.StatusOpen
	case "status-in-progress":
		return s.StatusInProgress
	case "status-closed":
		return s.StatusClosed
	case "priority-high":
		return s.PriorityHigh
	case "priority-medium":
		return s.PriorityMedium
	case "priority-low":
		return s.PriorityLow
	default:
		return lipgloss.NewStyle()
	}
}
