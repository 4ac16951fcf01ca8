// Package domain contains core business entities and interfaces.
package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Issue is a single tracked work item as exchanged with the API.
// Fields are ordered to minimize memory padding.
type Issue struct {
	CreatedAt   time.Time `json:"createdAt,omitzero"`    // Server-assigned
	UpdatedAt   time.Time `json:"updatedAt,omitzero"`    // Server-assigned
	ID          string    `json:"id,omitempty"`          // Server-assigned (empty = unsaved)
	Title       string    `json:"title"`                 // Title (required)
	Description string    `json:"description,omitempty"` // Description (optional)
	Status      Status    `json:"status"`                // Current status
	Priority    Priority  `json:"priority"`              // Priority
	Assignee    string    `json:"assignee,omitempty"`    // Assignee (optional)
}

// UnmarshalJSON decodes an issue, accepting timestamps with or without a zone.
func (i *Issue) UnmarshalJSON(data []byte) error {
	type alias Issue
	aux := struct {
		*alias
		CreatedAt *string `json:"createdAt"`
		UpdatedAt *string `json:"updatedAt"`
	}{alias: (*alias)(i)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	var err error
	if aux.CreatedAt != nil {
		if i.CreatedAt, err = ParseTimestamp(*aux.CreatedAt); err != nil {
			return fmt.Errorf("createdAt: %w", err)
		}
	}
	if aux.UpdatedAt != nil {
		if i.UpdatedAt, err = ParseTimestamp(*aux.UpdatedAt); err != nil {
			return fmt.Errorf("updatedAt: %w", err)
		}
	}
	return nil
}

// timestampLayouts are tried in order by ParseTimestamp.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

// ParseTimestamp parses an API timestamp. Values without a zone are local time.
// An empty string yields the zero time.
func ParseTimestamp(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	var lastErr error
	for _, layout := range timestampLayouts {
		t, err := time.ParseInLocation(layout, s, time.Local)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// IsSaved returns true if the issue has a server-assigned ID.
func (i *Issue) IsSaved() bool {
	return i.ID != ""
}

// Clone returns a shallow copy of the issue.
func (i *Issue) Clone() *Issue {
	if i == nil {
		return nil
	}
	c := *i
	return &c
}

// Draft returns the create payload for the issue's editable fields.
func (i *Issue) Draft() IssueDraft {
	return IssueDraft{
		Title:       i.Title,
		Description: i.Description,
		Status:      i.Status,
		Priority:    i.Priority,
		Assignee:    i.Assignee,
	}
}

// PatchFrom returns an update payload carrying only the editable fields
// of i that differ from orig. A nil orig yields an empty patch.
func (i *Issue) PatchFrom(orig *Issue) IssuePatch {
	var p IssuePatch
	if orig == nil {
		return p
	}
	if i.Title != orig.Title {
		p.Title = ptr(i.Title)
	}
	if i.Description != orig.Description {
		p.Description = ptr(i.Description)
	}
	if i.Status != orig.Status {
		p.Status = ptr(i.Status)
	}
	if i.Priority != orig.Priority {
		p.Priority = ptr(i.Priority)
	}
	if i.Assignee != orig.Assignee {
		p.Assignee = ptr(i.Assignee)
	}
	return p
}

func ptr[T any](v T) *T { return &v }

// NewIssue returns an unsaved issue seeded with the creation defaults.
func NewIssue() *Issue {
	return &Issue{
		Status:   StatusOpen,
		Priority: PriorityMedium,
	}
}

// IssueDraft is the payload for creating an issue.
type IssueDraft struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Status      Status   `json:"status"`
	Priority    Priority `json:"priority"`
	Assignee    string   `json:"assignee"`
}

// Validate checks the draft before it is submitted.
func (d IssueDraft) Validate() error {
	if !ValidTitle(d.Title) {
		return ErrEmptyTitle
	}
	if d.Status != "" && !d.Status.IsValid() {
		return ErrInvalidStatus
	}
	if d.Priority != "" && !d.Priority.IsValid() {
		return ErrInvalidPriority
	}
	return nil
}

// WithDefaults fills unset status and priority with the creation defaults.
func (d IssueDraft) WithDefaults() IssueDraft {
	if d.Status == "" {
		d.Status = StatusOpen
	}
	if d.Priority == "" {
		d.Priority = PriorityMedium
	}
	return d
}

// IssuePatch is the payload for updating an issue.
// Nil fields are left unchanged by the server.
type IssuePatch struct {
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	Status      *Status   `json:"status,omitempty"`
	Priority    *Priority `json:"priority,omitempty"`
	Assignee    *string   `json:"assignee,omitempty"`
}

// IsEmpty returns true if no field is set.
func (p IssuePatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Status == nil &&
		p.Priority == nil && p.Assignee == nil
}

// Validate checks the fields that are set.
func (p IssuePatch) Validate() error {
	if p.IsEmpty() {
		return ErrNoFieldsToUpdate
	}
	if p.Title != nil && !ValidTitle(*p.Title) {
		return ErrEmptyTitle
	}
	if p.Status != nil && !p.Status.IsValid() {
		return ErrInvalidStatus
	}
	if p.Priority != nil && !p.Priority.IsValid() {
		return ErrInvalidPriority
	}
	return nil
}

// ValidTitle reports whether title is non-empty after trimming whitespace.
func ValidTitle(title string) bool {
	return strings.TrimSpace(title) != ""
}

// AssigneeMe is the assignee alias for the current git user.
const AssigneeMe = "@me"
