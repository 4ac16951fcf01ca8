// Package app provides the dependency injection container for the application.
package app

import (
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/runoshun/issues/internal/domain"
	"github.com/runoshun/issues/internal/infra/apiclient"
	"github.com/runoshun/issues/internal/infra/config"
	"github.com/runoshun/issues/internal/infra/identity"
	"github.com/runoshun/issues/internal/infra/logging"
	"github.com/runoshun/issues/internal/usecase"
)

// Config holds the application paths and connection settings.
type Config struct {
	WorkDir string        // Directory the command runs in (project config, git identity)
	LogPath string        // Log file path (empty = logging disabled)
	BaseURL string        // Issue API root
	Timeout time.Duration // Per-request timeout
}

// Container provides dependency injection for the application.
// It holds all port implementations and provides factory methods for use cases.
type Container struct {
	// Ports (interfaces bound to implementations)
	Issues        domain.IssueService
	Identity      domain.IdentityResolver
	Clock         domain.Clock
	ConfigLoader  domain.ConfigLoader
	ConfigManager domain.ConfigManager

	// Pointer fields
	Logger    *slog.Logger
	AppConfig *domain.Config
	logFile   *logging.Logger

	// Configuration
	Config Config
}

// New creates a new Container for the given working directory.
// A broken config file is not fatal: defaults are used and the error is
// reported as a warning.
func New(dir string) (*Container, error) {
	configLoader := config.NewLoader(dir)
	appConfig, err := configLoader.Load()
	if err != nil {
		appConfig = domain.NewDefaultConfig()
		appConfig.Warnings = append(appConfig.Warnings, err.Error())
	}

	cfg := Config{
		WorkDir: dir,
		LogPath: defaultLogPath(),
		BaseURL: appConfig.API.BaseURL,
		Timeout: time.Duration(appConfig.API.Timeout),
	}

	logFile := logging.New(cfg.LogPath, logging.ParseLevel(appConfig.Log.Level))
	logger := logFile.Slog()

	client, err := apiclient.New(apiclient.Config{
		BaseURL: cfg.BaseURL,
		Timeout: cfg.Timeout,
		Logger:  logger.With(logging.CategoryKey, "api"),
	})
	if err != nil {
		_ = logFile.Close()
		return nil, err
	}

	return &Container{
		Issues:        client,
		Identity:      identity.NewResolver(dir),
		Clock:         domain.RealClock{},
		ConfigLoader:  configLoader,
		ConfigManager: config.NewManager(dir),
		Logger:        logger,
		AppConfig:     appConfig,
		logFile:       logFile,
		Config:        cfg,
	}, nil
}

// NewWithDeps creates a new Container with custom dependencies for testing.
func NewWithDeps(cfg Config, issues domain.IssueService, ident domain.IdentityResolver, clock domain.Clock, logger *slog.Logger) *Container {
	return &Container{
		Issues:    issues,
		Identity:  ident,
		Clock:     clock,
		Logger:    logger,
		AppConfig: domain.NewDefaultConfig(),
		Config:    cfg,
	}
}

// Close releases the log file.
func (c *Container) Close() error {
	if c.logFile == nil {
		return nil
	}
	return c.logFile.Close()
}

// defaultLogPath returns the log file under XDG_STATE_HOME (or ~/.local/state).
func defaultLogPath() string {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		stateHome = filepath.Join(home, ".local", "state")
	}
	return domain.LogPath(stateHome)
}

// CategoryLogger returns a logger whose lines are tagged with category.
func (c *Container) CategoryLogger(category string) *slog.Logger {
	if c.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.Logger.With(logging.CategoryKey, category)
}

// UseCase factory methods

// ListIssuesUseCase returns a new ListIssues use case.
func (c *Container) ListIssuesUseCase() *usecase.ListIssues {
	return usecase.NewListIssues(c.Issues, c.Identity)
}

// ShowIssueUseCase returns a new ShowIssue use case.
func (c *Container) ShowIssueUseCase() *usecase.ShowIssue {
	return usecase.NewShowIssue(c.Issues)
}

// CreateIssueUseCase returns a new CreateIssue use case.
func (c *Container) CreateIssueUseCase() *usecase.CreateIssue {
	return usecase.NewCreateIssue(c.Issues, c.Identity, c.CategoryLogger("usecase"))
}

// CreateIssuesFromFileUseCase returns a new CreateIssuesFromFile use case.
func (c *Container) CreateIssuesFromFileUseCase() *usecase.CreateIssuesFromFile {
	return usecase.NewCreateIssuesFromFile(c.Issues, c.Identity, c.CategoryLogger("usecase"))
}

// UpdateIssueUseCase returns a new UpdateIssue use case.
func (c *Container) UpdateIssueUseCase() *usecase.UpdateIssue {
	return usecase.NewUpdateIssue(c.Issues, c.Identity, c.CategoryLogger("usecase"))
}

// ListAssigneesUseCase returns a new ListAssignees use case.
func (c *Container) ListAssigneesUseCase() *usecase.ListAssignees {
	return usecase.NewListAssignees(c.Issues)
}

// CheckHealthUseCase returns a new CheckHealth use case.
func (c *Container) CheckHealthUseCase() *usecase.CheckHealth {
	return usecase.NewCheckHealth(c.Issues, c.Clock, c.Config.BaseURL)
}

// ShowConfigUseCase returns a new ShowConfig use case.
func (c *Container) ShowConfigUseCase() *usecase.ShowConfig {
	return usecase.NewShowConfig(c.ConfigManager, c.ConfigLoader)
}

// InitConfigUseCase returns a new InitConfig use case.
func (c *Container) InitConfigUseCase() *usecase.InitConfig {
	return usecase.NewInitConfig(c.ConfigManager)
}
