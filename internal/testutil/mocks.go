// Package testutil provides shared test utilities and mock implementations.
package testutil

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/runoshun/issues/internal/domain"
)

// MockClock is a test double for domain.Clock.
type MockClock struct {
	NowTime time.Time
}

// Now returns the configured time.
func (m *MockClock) Now() time.Time {
	return m.NowTime
}

// MockIssueService is a test double for domain.IssueService.
// List queries are answered from Issues with backend-like filtering.
// Fields are ordered to minimize memory padding.
type MockIssueService struct {
	ListErr     error
	GetErr      error
	CreateErr   error
	UpdateErr   error
	HealthErr   error
	Issues      map[string]*domain.Issue
	ListCalls   []domain.IssueFilters
	GetCalls    []string
	CreateCalls []domain.IssueDraft
	UpdateCalls []MockUpdateCall
	Now         time.Time
	mu          sync.Mutex
	NextIDN     int
	HealthCalls int
}

// MockUpdateCall records one UpdateIssue call.
type MockUpdateCall struct {
	Patch domain.IssuePatch
	ID    string
}

// NewMockIssueService creates a new MockIssueService holding issues.
func NewMockIssueService(issues ...domain.Issue) *MockIssueService {
	m := &MockIssueService{
		Issues:  make(map[string]*domain.Issue, len(issues)),
		NextIDN: 1,
		Now:     time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
	}
	for i := range issues {
		issue := issues[i]
		m.Issues[issue.ID] = &issue
	}
	return m
}

// ListIssues returns one page of the stored issues.
func (m *MockIssueService) ListIssues(_ context.Context, filters domain.IssueFilters) (*domain.IssuesResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ListCalls = append(m.ListCalls, filters)
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	if filters.PageSize > domain.MaxPageSize {
		return nil, &domain.APIError{Kind: domain.ErrValidation, StatusCode: 422, Method: "GET", Path: "/issues", Detail: "pageSize: Input should be less than or equal to 100"}
	}

	all := make([]domain.Issue, 0, len(m.Issues))
	for _, issue := range m.Issues {
		all = append(all, *issue)
	}
	// Map iteration is random; fix a base order before the stable sort.
	sortIssues(all, domain.SortByTitle, false)
	resp := queryIssues(all, filters.Normalize())
	return &resp, nil
}

// GetIssue returns a copy of the stored issue.
func (m *MockIssueService) GetIssue(_ context.Context, id string) (*domain.Issue, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetCalls = append(m.GetCalls, id)
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	issue, ok := m.Issues[id]
	if !ok {
		return nil, &domain.APIError{Kind: domain.ErrNotFound, Method: "GET", Path: "/issues/" + id, StatusCode: 404, Detail: "Issue not found"}
	}
	return issue.Clone(), nil
}

// CreateIssue stores a new issue built from draft.
func (m *MockIssueService) CreateIssue(_ context.Context, draft domain.IssueDraft) (*domain.Issue, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreateCalls = append(m.CreateCalls, draft)
	if m.CreateErr != nil {
		return nil, m.CreateErr
	}
	draft = draft.WithDefaults()
	m.Now = m.Now.Add(time.Minute)
	issue := &domain.Issue{
		ID:          fmt.Sprintf("new-%d", m.NextIDN),
		Title:       draft.Title,
		Description: draft.Description,
		Status:      draft.Status,
		Priority:    draft.Priority,
		Assignee:    draft.Assignee,
		CreatedAt:   m.Now,
		UpdatedAt:   m.Now,
	}
	m.NextIDN++
	m.Issues[issue.ID] = issue
	return issue.Clone(), nil
}

// UpdateIssue applies the set fields of patch to the stored issue.
func (m *MockIssueService) UpdateIssue(_ context.Context, id string, patch domain.IssuePatch) (*domain.Issue, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpdateCalls = append(m.UpdateCalls, MockUpdateCall{ID: id, Patch: patch})
	if m.UpdateErr != nil {
		return nil, m.UpdateErr
	}
	issue, ok := m.Issues[id]
	if !ok {
		return nil, &domain.APIError{Kind: domain.ErrNotFound, Method: "PUT", Path: "/issues/" + id, StatusCode: 404, Detail: "Issue not found"}
	}
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
	m.Now = m.Now.Add(time.Minute)
	issue.UpdatedAt = m.Now
	return issue.Clone(), nil
}

// Health returns HealthErr.
func (m *MockIssueService) Health(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.HealthCalls++
	return m.HealthErr
}

// MockIdentity is a test double for domain.IdentityResolver.
type MockIdentity struct {
	Err  error
	Name string
}

// UserName returns the configured name or error.
func (m *MockIdentity) UserName() (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	if m.Name == "" {
		return "", domain.ErrNoIdentity
	}
	return m.Name, nil
}

// MockConfigLoader is a test double for domain.ConfigLoader.
type MockConfigLoader struct {
	Config    *domain.Config
	LoadErr   error
	GlobalErr error
}

// Load returns the configured config, or defaults when nil.
func (m *MockConfigLoader) Load() (*domain.Config, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	if m.Config == nil {
		return domain.NewDefaultConfig(), nil
	}
	return m.Config, nil
}

// LoadGlobal returns the configured config.
func (m *MockConfigLoader) LoadGlobal() (*domain.Config, error) {
	if m.GlobalErr != nil {
		return nil, m.GlobalErr
	}
	return m.Load()
}

// MockConfigManager is a test double for domain.ConfigManager.
// Fields are ordered to minimize memory padding.
type MockConfigManager struct {
	InitErr     error
	GlobalInfo  domain.ConfigInfo
	ProjectInfo domain.ConfigInfo
	InitGlobal  bool
	InitProject bool
}

// GetGlobalConfigInfo returns GlobalInfo.
func (m *MockConfigManager) GetGlobalConfigInfo() domain.ConfigInfo {
	return m.GlobalInfo
}

// GetProjectConfigInfo returns ProjectInfo.
func (m *MockConfigManager) GetProjectConfigInfo() domain.ConfigInfo {
	return m.ProjectInfo
}

// InitGlobalConfig records the call.
func (m *MockConfigManager) InitGlobalConfig(_ *domain.Config) error {
	if m.InitErr != nil {
		return m.InitErr
	}
	m.InitGlobal = true
	return nil
}

// InitProjectConfig records the call.
func (m *MockConfigManager) InitProjectConfig(_ *domain.Config) error {
	if m.InitErr != nil {
		return m.InitErr
	}
	m.InitProject = true
	return nil
}

// Compile-time interface checks.
var (
	_ domain.IssueService     = (*MockIssueService)(nil)
	_ domain.IdentityResolver = (*MockIdentity)(nil)
	_ domain.ConfigLoader     = (*MockConfigLoader)(nil)
	_ domain.ConfigManager    = (*MockConfigManager)(nil)
	_ domain.Clock            = (*MockClock)(nil)
)
