package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings for the TUI.
type KeyMap struct {
	// Navigation
	Up       key.Binding
	Down     key.Binding
	PrevPage key.Binding
	NextPage key.Binding
	Enter    key.Binding // Open selected issue
	Back     key.Binding // Return to the previous screen

	// Issue management
	New        key.Binding // Create new issue
	Edit       key.Binding // Edit issue
	Copy       key.Binding // Copy issue JSON
	ToggleJSON key.Binding // Show raw JSON in the detail view

	// List controls
	Search         key.Binding // Enter search mode
	CycleStatus    key.Binding // Cycle status filter
	CyclePriority  key.Binding // Cycle priority filter
	CycleAssignee  key.Binding // Cycle assignee filter
	ClearFilters   key.Binding // Remove search and filters
	SortTitle      key.Binding
	SortStatus     key.Binding
	SortPriority   key.Binding
	SortAssignee   key.Binding
	SortCreatedAt  key.Binding
	SortUpdatedAt  key.Binding
	ChangePageSize key.Binding // Enter page size mode

	// Form
	NextField key.Binding
	PrevField key.Binding
	Submit    key.Binding
	Cycle     key.Binding // Next option for status/priority fields

	// General
	Refresh key.Binding
	Help    key.Binding
	Quit    key.Binding
	Escape  key.Binding // Cancel input
}

// DefaultKeyMap returns the default keybindings.
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
		PrevPage: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "prev page"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next page"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "backspace"),
			key.WithHelp("esc", "back"),
		),
		New: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new issue"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy json"),
		),
		ToggleJSON: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "toggle json"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		CycleStatus: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "status filter"),
		),
		CyclePriority: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "priority filter"),
		),
		CycleAssignee: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "assignee filter"),
		),
		ClearFilters: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "clear filters"),
		),
		SortTitle: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "sort title"),
		),
		SortStatus: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "sort status"),
		),
		SortPriority: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "sort priority"),
		),
		SortAssignee: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "sort assignee"),
		),
		SortCreatedAt: key.NewBinding(
			key.WithKeys("5"),
			key.WithHelp("5", "sort created"),
		),
		SortUpdatedAt: key.NewBinding(
			key.WithKeys("6"),
			key.WithHelp("6", "sort updated"),
		),
		ChangePageSize: key.NewBinding(
			key.WithKeys("z"),
			key.WithHelp("z", "page size"),
		),
		NextField: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next field"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev field"),
		),
		Submit: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save"),
		),
		Cycle: key.NewBinding(
			key.WithKeys(" ", "left", "right"),
			key.WithHelp("space", "change"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

// ShortHelp returns keybindings to show in the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.PrevPage, k.NextPage, k.Enter, k.New, k.Search, k.Help, k.Quit}
}

// FullHelp returns keybindings for the expanded help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PrevPage, k.NextPage, k.Enter, k.Back},
		{k.Search, k.CycleStatus, k.CyclePriority, k.CycleAssignee, k.ClearFilters, k.ChangePageSize},
		{k.SortTitle, k.SortStatus, k.SortPriority, k.SortAssignee, k.SortCreatedAt, k.SortUpdatedAt},
		{k.New, k.Edit, k.Copy, k.ToggleJSON, k.Submit, k.Refresh, k.Help, k.Quit},
	}
}
