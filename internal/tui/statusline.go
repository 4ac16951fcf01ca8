package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// StatusLineInfo describes the bottom bar for one screen and mode.
// Fields are ordered to minimize memory padding.
type StatusLineInfo struct {
	Position string // Right-aligned position, e.g. "‹ Page 1/3 ›" or an issue ID
	KeyHints []KeyHint
	Screen   Screen
}

// KeyHint is one "key description" pair in the status line.
type KeyHint struct {
	Key  string
	Desc string
}

// hint builds a KeyHint from a binding's help text.
// A non-empty desc replaces the binding's own description.
func hint(b key.Binding, desc string) KeyHint {
	h := b.Help()
	if desc == "" {
		desc = h.Desc
	}
	return KeyHint{Key: h.Key, Desc: desc}
}

// StatusLine renders the bar at the bottom of every screen.
type StatusLine struct {
	styles *Styles
	width  int
}

// NewStatusLine creates a StatusLine for the given terminal width.
func NewStatusLine(width int, styles *Styles) *StatusLine {
	return &StatusLine{width: width, styles: styles}
}

// Render lays out the hints on the left and the screen and position on the
// right. Hints that do not fit are dropped from the end.
func (s *StatusLine) Render(info StatusLineInfo) string {
	muted := lipgloss.NewStyle().Foreground(Colors.Muted)

	right := muted.Render(info.Screen.String())
	if info.Position != "" {
		right = info.Position + "  " + right
	}

	avail := s.width - 2 - lipgloss.Width(right) - 2
	var left string
	for _, h := range info.KeyHints {
		part := s.styles.FooterKey.Render(h.Key) + " " + h.Desc
		if left != "" {
			part = "  " + part
		}
		if lipgloss.Width(left)+lipgloss.Width(part) > avail {
			break
		}
		left += part
	}

	gap := max(s.width-2-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return s.styles.Footer.Render(left + strings.Repeat(" ", gap) + right)
}

// GetStatusInfo returns the status line for the current screen and mode.
func (m *Model) GetStatusInfo() StatusLineInfo {
	k := m.keys
	info := StatusLineInfo{Screen: m.route.Screen}

	switch m.mode {
	case ModeSearch:
		info.KeyHints = []KeyHint{hint(k.Enter, "search"), hint(k.Escape, "")}
		return info
	case ModePageSize:
		info.KeyHints = []KeyHint{hint(k.Enter, "apply"), hint(k.Escape, "")}
		return info
	case ModeForm:
		info.KeyHints = []KeyHint{hint(k.NextField, ""), hint(k.Cycle, ""), hint(k.Submit, ""), hint(k.Escape, "")}
		return info
	case ModeHelp:
		info.KeyHints = []KeyHint{hint(k.Help, "close help")}
		return info
	case ModeNormal:
	}

	if m.route.Screen == ScreenDetail {
		info.Position = m.route.ID
		info.KeyHints = []KeyHint{
			{Key: "j/k", Desc: "scroll"},
			hint(k.Edit, ""),
			hint(k.Copy, ""),
			hint(k.ToggleJSON, "json"),
			hint(k.Back, ""),
			hint(k.Quit, ""),
		}
		return info
	}

	info.Position = m.pagination()
	info.KeyHints = []KeyHint{
		{Key: "j/k", Desc: "nav"},
		{Key: "h/l", Desc: "page"},
		hint(k.Enter, ""),
		hint(k.New, "new"),
		hint(k.Search, ""),
		{Key: "1-6", Desc: "sort"},
		hint(k.Help, ""),
		hint(k.Quit, ""),
	}
	return info
}
