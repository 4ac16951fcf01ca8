package domain

import (
	"bytes"
	_ "embed"
	"fmt"
	"path/filepath"
	"text/template"
	"time"
)

//go:embed config_template.toml
var configTemplateContent string

// Config represents the application configuration.
type Config struct {
	API      APIConfig  `toml:"api"`  // [api] settings
	List     ListConfig `toml:"list"` // [list] settings
	Log      LogConfig  `toml:"log"`  // [log] settings
	Warnings []string   `toml:"-"`    // Non-fatal problems found while loading
}

// APIConfig holds the issue API connection settings from [api] section.
type APIConfig struct {
	BaseURL string   `toml:"base_url,omitempty"` // e.g. http://localhost:8000
	Timeout Duration `toml:"timeout,omitempty"`  // Per-request timeout
}

// ListConfig holds list view defaults from [list] section.
type ListConfig struct {
	SortBy    SortField `toml:"sort_by,omitempty"`
	SortOrder SortOrder `toml:"sort_order,omitempty"`
	PageSize  int       `toml:"page_size,omitempty"`
}

// LogConfig holds logging settings from [log] section.
type LogConfig struct {
	Level string `toml:"level,omitempty"` // Log level: debug, info, warn, error
}

// Duration is a time.Duration that reads and writes TOML strings like "30s".
type Duration time.Duration

// UnmarshalText parses a duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// MarshalText formats the duration.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Default configuration values.
const (
	DefaultBaseURL  = "http://localhost:8000"
	DefaultTimeout  = 30 * time.Second
	DefaultLogLevel = "info"
)

// Config file locations.
const (
	AppDirName            = "issues"         // Directory name under XDG config/state homes
	ConfigFileName        = "config.toml"    // Global config file name
	ProjectConfigFileName = ".issues.toml"   // Config file name in the working directory
	LogFileName           = "issues.log"     // Log file name
	EnvBaseURL            = "ISSUES_API_URL" // Environment override for api.base_url
)

// NewDefaultConfig returns a Config with default values.
func NewDefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: DefaultBaseURL,
			Timeout: Duration(DefaultTimeout),
		},
		List: ListConfig{
			SortBy:    DefaultSortBy,
			SortOrder: DefaultSortOrder,
			PageSize:  DefaultPageSize,
		},
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
	}
}

// DefaultFilters returns the initial filter snapshot for the list view.
func (c *Config) DefaultFilters() IssueFilters {
	f := IssueFilters{
		SortBy:    c.List.SortBy,
		SortOrder: c.List.SortOrder,
		Page:      1,
		PageSize:  c.List.PageSize,
	}
	return f.Normalize()
}

// GlobalConfigDir returns the global config directory.
// configHome is typically XDG_CONFIG_HOME or ~/.config (resolved by caller).
func GlobalConfigDir(configHome string) string {
	return filepath.Join(configHome, AppDirName)
}

// GlobalConfigPath returns the global config path.
func GlobalConfigPath(configHome string) string {
	return filepath.Join(GlobalConfigDir(configHome), ConfigFileName)
}

// ProjectConfigPath returns the project config path for a working directory.
func ProjectConfigPath(dir string) string {
	return filepath.Join(dir, ProjectConfigFileName)
}

// LogPath returns the log file path under a state directory.
func LogPath(stateHome string) string {
	return filepath.Join(stateHome, AppDirName, LogFileName)
}

// ConfigInfo holds information about a config file.
type ConfigInfo struct {
	Path    string // File path
	Content string // File content (empty if not exists)
	Exists  bool   // Whether the file exists
}

// RenderConfigTemplate renders the commented config file written by `issues config init`.
// Values from cfg are used as the defaults shown in the template.
func RenderConfigTemplate(cfg *Config) string {
	data := struct {
		BaseURL   string
		Timeout   string
		SortBy    SortField
		SortOrder SortOrder
		LogLevel  string
		SortNames []SortField
		PageSize  int
	}{
		BaseURL:   cfg.API.BaseURL,
		Timeout:   time.Duration(cfg.API.Timeout).String(),
		SortBy:    cfg.List.SortBy,
		SortOrder: cfg.List.SortOrder,
		PageSize:  cfg.List.PageSize,
		LogLevel:  cfg.Log.Level,
		SortNames: AllSortFields(),
	}

	tmpl, err := template.New("config").Delims("<<", ">>").Parse(configTemplateContent)
	if err != nil {
		// Should never happen with embedded template
		panic(fmt.Sprintf("failed to parse config template: %v", err))
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		// Should never happen with valid data
		panic(fmt.Sprintf("failed to execute config template: %v", err))
	}
	return buf.String()
}
