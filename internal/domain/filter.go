package domain

import "fmt"

// SortField names an issue field the server can sort by.
type SortField string

const (
	SortByTitle     SortField = "title"
	SortByStatus    SortField = "status"
	SortByPriority  SortField = "priority"
	SortByAssignee  SortField = "assignee"
	SortByCreatedAt SortField = "createdAt"
	SortByUpdatedAt SortField = "updatedAt"
)

// AllSortFields returns the sortable fields in column order.
func AllSortFields() []SortField {
	return []SortField{SortByTitle, SortByStatus, SortByPriority, SortByAssignee, SortByCreatedAt, SortByUpdatedAt}
}

// IsValid returns true if the field is sortable.
func (f SortField) IsValid() bool {
	for _, v := range AllSortFields() {
		if v == f {
			return true
		}
	}
	return false
}

// SortOrder is the direction of a sort.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// Toggle returns the opposite order.
func (o SortOrder) Toggle() SortOrder {
	if o == SortAsc {
		return SortDesc
	}
	return SortAsc
}

// IsValid returns true if the order is asc or desc.
func (o SortOrder) IsValid() bool {
	return o == SortAsc || o == SortDesc
}

// Filter defaults.
const (
	DefaultSortBy    = SortByUpdatedAt
	DefaultSortOrder = SortDesc
	DefaultPageSize  = 10
	MaxPageSize      = 100

	// AssigneeScanSize bounds the record fetch used to derive assignee options.
	AssigneeScanSize = 1000
)

// IssueFilters is a filter snapshot: everything needed to build one list query.
// Empty optional fields mean no constraint and are omitted from the query.
type IssueFilters struct {
	Search    string    `url:"search,omitempty"`
	Status    Status    `url:"status,omitempty"`
	Priority  Priority  `url:"priority,omitempty"`
	Assignee  string    `url:"assignee,omitempty"`
	SortBy    SortField `url:"sortBy"`
	SortOrder SortOrder `url:"sortOrder"`
	Page      int       `url:"page"`
	PageSize  int       `url:"pageSize"`
}

// DefaultFilters returns a snapshot with no constraints on the first page.
func DefaultFilters() IssueFilters {
	return IssueFilters{
		SortBy:    DefaultSortBy,
		SortOrder: DefaultSortOrder,
		Page:      1,
		PageSize:  DefaultPageSize,
	}
}

// Normalize fills zero-valued sort and paging fields with defaults.
func (f IssueFilters) Normalize() IssueFilters {
	if f.SortBy == "" {
		f.SortBy = DefaultSortBy
	}
	if f.SortOrder == "" {
		f.SortOrder = DefaultSortOrder
	}
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 {
		f.PageSize = DefaultPageSize
	}
	return f
}

// Validate checks the snapshot for values the server would reject.
func (f IssueFilters) Validate() error {
	if !f.SortBy.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidSortField, f.SortBy)
	}
	if !f.SortOrder.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidSortOrder, f.SortOrder)
	}
	if f.Status != "" && !f.Status.IsValid() {
		return ErrInvalidStatus
	}
	if f.Priority != "" && !f.Priority.IsValid() {
		return ErrInvalidPriority
	}
	if f.Page < 1 {
		return ErrInvalidPage
	}
	if f.PageSize < 1 {
		return ErrInvalidPageSize
	}
	return nil
}

// IssuesResponse is one page of a list query.
type IssuesResponse struct {
	Issues     []Issue `json:"issues"`
	Total      int     `json:"total"`
	Page       int     `json:"page,omitempty"`
	PageSize   int     `json:"pageSize,omitempty"`
	TotalPages int     `json:"totalPages"`
}

// TotalPages returns ceil(total / pageSize), or 0 when pageSize is not positive.
func TotalPages(total, pageSize int) int {
	if pageSize <= 0 || total <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}
