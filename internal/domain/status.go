package domain

import "strings"

// Status represents the workflow state of an issue.
type Status string

const (
	StatusOpen       Status = "Open"        // Not started
	StatusInProgress Status = "In Progress" // Being worked on
	StatusClosed     Status = "Closed"      // Finished
)

// AllStatuses returns all valid status values in display order.
func AllStatuses() []Status {
	return []Status{StatusOpen, StatusInProgress, StatusClosed}
}

// IsValid returns true if the status is a known value.
func (s Status) IsValid() bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusClosed:
		return true
	}
	return false
}

// Class returns the presentation class for the status, or "" if unknown.
// Matching is case-insensitive.
func (s Status) Class() string {
	switch strings.ToLower(string(s)) {
	case "open":
		return "status-open"
	case "in progress":
		return "status-in-progress"
	case "closed":
		return "status-closed"
	default:
		return ""
	}
}

// ParseStatus parses a status case-insensitively.
// Accepts "in_progress" and "in-progress" as spellings of "In Progress".
func ParseStatus(s string) (Status, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer("_", " ", "-", " ").Replace(norm)
	for _, st := range AllStatuses() {
		if strings.ToLower(string(st)) == norm {
			return st, nil
		}
	}
	return "", ErrInvalidStatus
}

// Priority represents the urgency of an issue.
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// AllPriorities returns all valid priority values in ascending order.
func AllPriorities() []Priority {
	return []Priority{PriorityLow, PriorityMedium, PriorityHigh}
}

// IsValid returns true if the priority is a known value.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Class returns the presentation class for the priority, or "" if unknown.
func (p Priority) Class() string {
	switch strings.ToLower(string(p)) {
	case "high":
		return "priority-high"
	case "medium":
		return "priority-medium"
	case "low":
		return "priority-low"
	default:
		return ""
	}
}

// ParsePriority parses a priority case-insensitively.
func ParsePriority(s string) (Priority, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	for _, p := range AllPriorities() {
		if strings.ToLower(string(p)) == norm {
			return p, nil
		}
	}
	return "", ErrInvalidPriority
}
