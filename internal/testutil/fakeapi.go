package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/runoshun/issues/internal/domain"
)

// FakeAPI is an in-memory issue API served over httptest.
// It filters, sorts and paginates the way the real backend does.
// Fields are ordered to minimize memory padding.
type FakeAPI struct {
	Server   *httptest.Server
	issues   []domain.Issue
	requests []*http.Request
	now      time.Time
	mu       sync.Mutex
	fail     int
	nextID   int
}

// NewFakeAPI starts a FakeAPI and registers its shutdown with t.Cleanup.
func NewFakeAPI(t testing.TB, issues ...domain.Issue) *FakeAPI {
	t.Helper()
	f := &FakeAPI{
		issues: append([]domain.Issue(nil), issues...),
		nextID: len(issues) + 1,
		now:    time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
	}
	f.Server = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.Server.Close)
	return f
}

// URL returns the base URL of the fake server.
func (f *FakeAPI) URL() string {
	return f.Server.URL
}

// Requests returns the requests received so far.
func (f *FakeAPI) Requests() []*http.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*http.Request(nil), f.requests...)
}

// FailWith makes every subsequent request fail with status (0 restores normal service).
func (f *FakeAPI) FailWith(status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fail = status
}

// Issues returns a copy of the stored issues.
func (f *FakeAPI) Issues() []domain.Issue {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.Issue(nil), f.issues...)
}

// GenerateIssues returns n issues with the given status, titled "Issue 01".."Issue n"
// and updated one minute apart (Issue 01 oldest).
func GenerateIssues(n int, status domain.Status) []domain.Issue {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	issues := make([]domain.Issue, 0, n)
	for i := 1; i <= n; i++ {
		ts := base.Add(time.Duration(i) * time.Minute)
		issues = append(issues, domain.Issue{
			ID:        fmt.Sprintf("issue-%02d", i),
			Title:     fmt.Sprintf("Issue %02d", i),
			Status:    status,
			Priority:  domain.PriorityMedium,
			CreatedAt: ts,
			UpdatedAt: ts,
		})
	}
	return issues
}

func (f *FakeAPI) serve(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, r)

	if f.fail != 0 {
		writeJSON(w, f.fail, map[string]string{"detail": http.StatusText(f.fail)})
		return
	}

	path := strings.TrimSuffix(r.URL.Path, "/")
	switch {
	case path == "/health" && r.Method == http.MethodGet:
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	case path == "/issues" && r.Method == http.MethodGet:
		f.list(w, r)
	case path == "/issues" && r.Method == http.MethodPost:
		f.create(w, r)
	case strings.HasPrefix(path, "/issues/") && r.Method == http.MethodGet:
		f.get(w, strings.TrimPrefix(path, "/issues/"))
	case strings.HasPrefix(path, "/issues/") && (r.Method == http.MethodPut || r.Method == http.MethodPatch):
		f.update(w, r, strings.TrimPrefix(path, "/issues/"))
	default:
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Not Found"})
	}
}

func (f *FakeAPI) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	if page == 0 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(q.Get("pageSize"))
	if pageSize == 0 {
		pageSize = domain.DefaultPageSize
	}
	if page < 1 || pageSize < 1 {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"detail": []map[string]any{{"loc": []string{"query", "page"}, "msg": "must be >= 1"}},
		})
		return
	}
	if pageSize > domain.MaxPageSize {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"detail": []map[string]any{{"loc": []string{"query", "pageSize"}, "msg": "Input should be less than or equal to 100"}},
		})
		return
	}

	writeJSON(w, http.StatusOK, queryIssues(f.issues, domain.IssueFilters{
		Search:    q.Get("search"),
		Status:    domain.Status(q.Get("status")),
		Priority:  domain.Priority(q.Get("priority")),
		Assignee:  q.Get("assignee"),
		SortBy:    domain.SortField(q.Get("sortBy")),
		SortOrder: domain.SortOrder(strings.ToLower(q.Get("sortOrder"))),
		Page:      page,
		PageSize:  pageSize,
	}))
}

// queryIssues filters, sorts and paginates issues the way the backend does:
// search and assignee match case-insensitive substrings, status and priority
// match exactly, and any sort order other than "asc" is descending.
func queryIssues(all []domain.Issue, f domain.IssueFilters) domain.IssuesResponse {
	matched := make([]domain.Issue, 0, len(all))
	for _, issue := range all {
		if f.Search != "" && !strings.Contains(strings.ToLower(issue.Title), strings.ToLower(f.Search)) {
			continue
		}
		if f.Status != "" && issue.Status != f.Status {
			continue
		}
		if f.Priority != "" && issue.Priority != f.Priority {
			continue
		}
		if f.Assignee != "" && !strings.Contains(strings.ToLower(issue.Assignee), strings.ToLower(f.Assignee)) {
			continue
		}
		matched = append(matched, issue)
	}

	sortIssues(matched, f.SortBy, f.SortOrder != domain.SortAsc)

	page, pageSize := f.Page, f.PageSize
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = domain.DefaultPageSize
	}
	total := len(matched)
	start := min((page-1)*pageSize, total)
	end := min(start+pageSize, total)

	return domain.IssuesResponse{
		Issues:     append([]domain.Issue{}, matched[start:end]...),
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: domain.TotalPages(total, pageSize),
	}
}

func sortIssues(issues []domain.Issue, field domain.SortField, desc bool) {
	less := func(a, b domain.Issue) bool {
		switch field {
		case domain.SortByTitle:
			return a.Title < b.Title
		case domain.SortByStatus:
			return a.Status < b.Status
		case domain.SortByPriority:
			return a.Priority < b.Priority
		case domain.SortByAssignee:
			return a.Assignee < b.Assignee
		case domain.SortByCreatedAt:
			return a.CreatedAt.Before(b.CreatedAt)
		default:
			return a.UpdatedAt.Before(b.UpdatedAt)
		}
	}
	sort.SliceStable(issues, func(i, j int) bool {
		if desc {
			return less(issues[j], issues[i])
		}
		return less(issues[i], issues[j])
	})
}

func (f *FakeAPI) get(w http.ResponseWriter, id string) {
	for _, issue := range f.issues {
		if issue.ID == id {
			writeJSON(w, http.StatusOK, issue)
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Issue not found"})
}

func (f *FakeAPI) create(w http.ResponseWriter, r *http.Request) {
	var draft domain.IssueDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil || draft.Title == "" {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"detail": []map[string]any{{"loc": []string{"body", "title"}, "msg": "field required"}},
		})
		return
	}
	draft = draft.WithDefaults()
	f.now = f.now.Add(time.Minute)
	issue := domain.Issue{
		ID:          fmt.Sprintf("new-%d", f.nextID),
		Title:       draft.Title,
		Description: draft.Description,
		Status:      draft.Status,
		Priority:    draft.Priority,
		Assignee:    draft.Assignee,
		CreatedAt:   f.now,
		UpdatedAt:   f.now,
	}
	f.nextID++
	f.issues = append(f.issues, issue)
	writeJSON(w, http.StatusOK, issue)
}

func (f *FakeAPI) update(w http.ResponseWriter, r *http.Request, id string) {
	var patch domain.IssuePatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"detail": err.Error()})
		return
	}
	for i := range f.issues {
		if f.issues[i].ID != id {
			continue
		}
		issue := &f.issues[i]
		if patch.Title != nil {
			issue.Title = *patch.Title
		}
		if patch.Description != nil {
			issue.Description = *patch.Description
		}
		if patch.Status != nil {
			issue.Status = *patch.Status
		}
		if patch.Priority != nil {
			issue.Priority = *patch.Priority
		}
		if patch.Assignee != nil {
			issue.Assignee = *patch.Assignee
		}
		f.now = f.now.Add(time.Minute)
		issue.UpdatedAt = f.now
		writeJSON(w, http.StatusOK, issue)
		return
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Issue not found"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
