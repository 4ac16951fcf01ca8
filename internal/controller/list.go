package controller

import (
	"log/slog"
	"slices"

	"github.com/runoshun/issues/internal/domain"
)

// Sort indicators shown next to column headers.
const (
	SortIndicatorNone = "↕"
	SortIndicatorAsc  = "↑"
	SortIndicatorDesc = "↓"
)

// ListRequest is one list query to dispatch.
type ListRequest struct {
	Filters domain.IssueFilters
	Seq     uint64
}

// FilterChange sets some of the list filters. Nil fields are left unchanged;
// a pointer to the empty value clears the filter.
type FilterChange struct {
	Status   *domain.Status
	Priority *domain.Priority
	Assignee *string
}

// List owns the list view state: filters, sort, pagination and the loaded page.
// Fields are ordered to minimize memory padding.
type List struct {
	state           domain.LoadState
	logger          *slog.Logger
	issues          []domain.Issue
	assigneeOptions []string
	searchTerm      string
	status          domain.Status
	priority        domain.Priority
	assignee        string
	sortBy          domain.SortField
	sortOrder       domain.SortOrder
	seq             sequencer
	currentPage     int
	pageSize        int
	totalPages      int
	totalItems      int
}

// NewList creates a List seeded from initial. Zero sort and paging fields take defaults.
func NewList(initial domain.IssueFilters, logger *slog.Logger) *List {
	f := initial.Normalize()
	return &List{
		state:       domain.Idle{},
		logger:      loggerOrDiscard(logger),
		issues:      []domain.Issue{},
		searchTerm:  f.Search,
		status:      f.Status,
		priority:    f.Priority,
		assignee:    f.Assignee,
		sortBy:      f.SortBy,
		sortOrder:   f.SortOrder,
		currentPage: f.Page,
		pageSize:    f.PageSize,
		totalPages:  1,
	}
}

// Snapshot returns the current filter snapshot.
func (l *List) Snapshot() domain.IssueFilters {
	return domain.IssueFilters{
		Search:    l.searchTerm,
		Status:    l.status,
		Priority:  l.priority,
		Assignee:  l.assignee,
		SortBy:    l.sortBy,
		SortOrder: l.sortOrder,
		Page:      l.currentPage,
		PageSize:  l.pageSize,
	}
}

// Reload enters Loading and returns a request for the current snapshot.
// Any error message is cleared.
func (l *List) Reload() ListRequest {
	seq := l.seq.next()
	l.state = domain.Loading{Seq: seq}
	return ListRequest{Seq: seq, Filters: l.Snapshot()}
}

// Search sets the search term, resets to the first page and reloads.
func (l *List) Search(term string) ListRequest {
	l.searchTerm = term
	l.currentPage = 1
	return l.Reload()
}

// ChangeFilter applies change, resets to the first page and reloads.
func (l *List) ChangeFilter(change FilterChange) ListRequest {
	if change.Status != nil {
		l.status = *change.Status
	}
	if change.Priority != nil {
		l.priority = *change.Priority
	}
	if change.Assignee != nil {
		l.assignee = *change.Assignee
	}
	l.currentPage = 1
	return l.Reload()
}

// ClearFilters removes the search term and every filter, then reloads page 1.
func (l *List) ClearFilters() ListRequest {
	l.searchTerm = ""
	l.status = ""
	l.priority = ""
	l.assignee = ""
	l.currentPage = 1
	return l.Reload()
}

// Sort toggles the order when field is already the sort field; otherwise it
// sorts ascending by field. The current page is kept. Unknown fields are
// rejected and nothing is sent.
func (l *List) Sort(field domain.SortField) (ListRequest, bool) {
	if !field.IsValid() {
		return ListRequest{}, false
	}
	if l.sortBy == field {
		l.sortOrder = l.sortOrder.Toggle()
	} else {
		l.sortBy = field
		l.sortOrder = domain.SortAsc
	}
	return l.Reload(), true
}

// ChangePage moves to page. Pages outside [1, totalPages] as last reported
// by the server are ignored: state is unchanged and nothing is sent. With
// zero pages (nothing loaded yet, or no matches) every page is ignored.
func (l *List) ChangePage(page int) (ListRequest, bool) {
	if page < 1 || page > l.totalPages {
		return ListRequest{}, false
	}
	l.currentPage = page
	return l.Reload(), true
}

// NextPage moves one page forward.
func (l *List) NextPage() (ListRequest, bool) {
	return l.ChangePage(l.currentPage + 1)
}

// PrevPage moves one page back.
func (l *List) PrevPage() (ListRequest, bool) {
	return l.ChangePage(l.currentPage - 1)
}

// ChangePageSize sets the page size, resets to the first page and reloads.
// Sizes outside [1, domain.MaxPageSize] are ignored.
func (l *List) ChangePageSize(size int) (ListRequest, bool) {
	if size < 1 || size > domain.MaxPageSize {
		return ListRequest{}, false
	}
	l.pageSize = size
	l.currentPage = 1
	return l.Reload(), true
}

// Complete applies the outcome of req. It returns false and changes nothing
// when req is not the latest request. On failure the previously loaded
// issues stay visible.
func (l *List) Complete(req ListRequest, resp *domain.IssuesResponse, err error) bool {
	if !l.seq.isLatest(req.Seq) {
		l.logger.Debug("discarding stale list response", "seq", req.Seq, "latest", l.seq.seq)
		return false
	}
	if err == nil && resp == nil {
		err = domain.ErrServer
	}
	if err != nil {
		l.logger.Error("load issues failed", "error", err, "page", req.Filters.Page)
		l.state = domain.Failed{Message: MsgLoadIssuesFailed, Cause: err}
		return true
	}

	l.issues = resp.Issues
	if l.issues == nil {
		l.issues = []domain.Issue{}
	}
	l.totalItems = resp.Total
	l.totalPages = resp.TotalPages
	l.state = domain.Loaded{}
	return true
}

// SetAssigneeOptions stores the assignee choices offered by the filter.
func (l *List) SetAssigneeOptions(names []string) {
	l.assigneeOptions = slices.Clone(names)
}

// AssigneeOptions returns the assignee choices, without the "any" entry.
func (l *List) AssigneeOptions() []string {
	return l.assigneeOptions
}

// DisplayedRange returns the index of the last displayed item:
// min(CurrentPage*PageSize, TotalItems).
func (l *List) DisplayedRange() int {
	return min(l.currentPage*l.pageSize, l.totalItems)
}

// DisplayedStart returns the 1-based index of the first displayed item, or 0 when empty.
func (l *List) DisplayedStart() int {
	if l.totalItems == 0 {
		return 0
	}
	return min((l.currentPage-1)*l.pageSize+1, l.totalItems)
}

// SortIndicator returns the header marker for field.
func (l *List) SortIndicator(field domain.SortField) string {
	if l.sortBy != field {
		return SortIndicatorNone
	}
	if l.sortOrder == domain.SortAsc {
		return SortIndicatorAsc
	}
	return SortIndicatorDesc
}

// HasPrev reports whether a previous page exists.
func (l *List) HasPrev() bool { return l.currentPage > 1 }

// HasNext reports whether a next page exists.
func (l *List) HasNext() bool { return l.currentPage < l.TotalPages() }

// State returns the load state.
func (l *List) State() domain.LoadState { return l.state }

// Loading reports whether a request is in flight.
func (l *List) Loading() bool { return domain.IsLoading(l.state) }

// Error returns the user-facing error message, or "".
func (l *List) Error() string { return domain.ErrorMessage(l.state) }

// Issues returns the loaded page.
func (l *List) Issues() []domain.Issue { return l.issues }

// CurrentPage returns the 1-based current page.
func (l *List) CurrentPage() int { return l.currentPage }

// PageSize returns the page size.
func (l *List) PageSize() int { return l.pageSize }

// TotalPages returns the page count, at least 1.
func (l *List) TotalPages() int { return max(l.totalPages, 1) }

// TotalItems returns the number of issues matching the filters.
func (l *List) TotalItems() int { return l.totalItems }

// SearchTerm returns the search term.
func (l *List) SearchTerm() string { return l.searchTerm }

// SelectedStatus returns the status filter ("" = any).
func (l *List) SelectedStatus() domain.Status { return l.status }

// SelectedPriority returns the priority filter ("" = any).
func (l *List) SelectedPriority() domain.Priority { return l.priority }

// SelectedAssignee returns the assignee filter ("" = any).
func (l *List) SelectedAssignee() string { return l.assignee }

// SortBy returns the sort field.
func (l *List) SortBy() domain.SortField { return l.sortBy }

// SortOrder returns the sort order.
func (l *List) SortOrder() domain.SortOrder { return l.sortOrder }
