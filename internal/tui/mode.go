// Package tui provides the terminal user interface for issues.
package tui

// Mode represents the current input mode.
type Mode int

const (
	ModeNormal   Mode = iota // Default navigation mode
	ModeSearch               // Search term input (list)
	ModePageSize             // Page size input (list)
	ModeForm                 // Editing form fields
	ModeHelp                 // Help overlay mode
)

// String returns the string representation of the mode.
func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeSearch:
		return "search"
	case ModePageSize:
		return "page_size"
	case ModeForm:
		return "form"
	case ModeHelp:
		return "help"
	default:
		return "unknown"
	}
}

// IsInputMode returns true if the mode accepts text input.
func (m Mode) IsInputMode() bool {
	switch m {
	case ModeSearch, ModePageSize, ModeForm:
		return true
	case ModeNormal, ModeHelp:
		return false
	}
	return false
}

// FormField identifies the focused form field.
type FormField int

const (
	FieldTitle FormField = iota
	FieldDescription
	FieldStatus
	FieldPriority
	FieldAssignee
	formFieldCount
)

// String returns the field label.
func (f FormField) String() string {
	switch f {
	case FieldTitle:
		return "Title"
	case FieldDescription:
		return "Description"
	case FieldStatus:
		return "Status"
	case FieldPriority:
		return "Priority"
	case FieldAssignee:
		return "Assignee"
	case formFieldCount:
		return ""
	}
	return ""
}

// next returns the following field, wrapping around.
func (f FormField) next() FormField {
	return (f + 1) % formFieldCount
}

// prev returns the preceding field, wrapping around.
func (f FormField) prev() FormField {
	return (f + formFieldCount - 1) % formFieldCount
}

// isText reports whether the field takes free text.
func (f FormField) isText() bool {
	return f == FieldTitle || f == FieldDescription || f == FieldAssignee
}
