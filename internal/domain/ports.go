package domain

import (
	"context"
	"time"
)

// IssueService is the remote issue API.
// Each call is a single request: no retries, no caching.
type IssueService interface {
	// ListIssues returns one page of issues matching the filters.
	ListIssues(ctx context.Context, filters IssueFilters) (*IssuesResponse, error)

	// GetIssue returns the issue with the given ID (ErrNotFound if none).
	GetIssue(ctx context.Context, id string) (*Issue, error)

	// CreateIssue creates an issue and returns it with server-assigned fields.
	CreateIssue(ctx context.Context, draft IssueDraft) (*Issue, error)

	// UpdateIssue applies the set fields of patch and returns the result.
	UpdateIssue(ctx context.Context, id string, patch IssuePatch) (*Issue, error)

	// Health checks that the API is reachable.
	Health(ctx context.Context) error
}

// ConfigLoader loads configuration from files.
type ConfigLoader interface {
	// Load returns the merged configuration (default + global + project + env).
	Load() (*Config, error)

	// LoadGlobal returns only the global configuration.
	LoadGlobal() (*Config, error)
}

// ConfigManager manages configuration files.
type ConfigManager interface {
	// GetGlobalConfigInfo returns information about the global config file.
	GetGlobalConfigInfo() ConfigInfo

	// GetProjectConfigInfo returns information about the project config file.
	GetProjectConfigInfo() ConfigInfo

	// InitGlobalConfig creates the global config file from the template.
	// Returns ErrConfigExists if the file already exists.
	InitGlobalConfig(cfg *Config) error

	// InitProjectConfig creates the project config file from the template.
	// Returns ErrConfigExists if the file already exists.
	InitProjectConfig(cfg *Config) error
}

// IdentityResolver resolves the current user's display name.
type IdentityResolver interface {
	// UserName returns the configured user name (ErrNoIdentity if unset).
	UserName() (string, error)
}

// Clock provides time operations for testability.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// RealClock implements Clock using the system clock.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time {
	return time.Now()
}
