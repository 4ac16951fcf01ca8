// Package config provides configuration loading functionality.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/runoshun/issues/internal/domain"
)

// Ensure Loader implements domain.ConfigLoader.
var _ domain.ConfigLoader = (*Loader)(nil)

// Loader loads configuration from TOML files and the environment.
type Loader struct {
	getenv        func(string) string // Environment lookup (os.Getenv by default)
	projectDir    string              // Directory holding .issues.toml
	globalConfDir string              // Path to global config directory (e.g., ~/.config/issues)
}

// NewLoader creates a new Loader.
func NewLoader(projectDir string) *Loader {
	return &Loader{
		projectDir:    projectDir,
		globalConfDir: defaultGlobalConfigDir(),
		getenv:        os.Getenv,
	}
}

// NewLoaderWithGlobalDir creates a new Loader with a custom global config directory.
// The environment is ignored. This is useful for testing.
func NewLoaderWithGlobalDir(projectDir, globalConfDir string) *Loader {
	return &Loader{
		projectDir:    projectDir,
		globalConfDir: globalConfDir,
		getenv:        func(string) string { return "" },
	}
}

// WithEnv returns a copy of the loader that reads environment overrides from getenv.
func (l *Loader) WithEnv(getenv func(string) string) *Loader {
	c := *l
	c.getenv = getenv
	return &c
}

// defaultGlobalConfigDir returns the default global config directory.
func defaultGlobalConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return domain.GlobalConfigDir(configHome)
}

// Load returns the merged configuration.
// Precedence: default <- global <- project <- environment.
func (l *Loader) Load() (*domain.Config, error) {
	global, err := l.LoadGlobal()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	project, err := l.LoadProject()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	base := domain.NewDefaultConfig()
	if global != nil {
		base = mergeConfigs(base, global)
	}
	if project != nil {
		base = mergeConfigs(base, project)
	}

	if v := l.getenv(domain.EnvBaseURL); v != "" {
		base.API.BaseURL = v
	}

	sanitize(base)
	return base, nil
}

// LoadGlobal returns only the global configuration.
func (l *Loader) LoadGlobal() (*domain.Config, error) {
	if l.globalConfDir == "" {
		return nil, os.ErrNotExist
	}
	return l.loadFile(filepath.Join(l.globalConfDir, domain.ConfigFileName))
}

// LoadProject returns only the project configuration.
func (l *Loader) LoadProject() (*domain.Config, error) {
	if l.projectDir == "" {
		return nil, os.ErrNotExist
	}
	return l.loadFile(domain.ProjectConfigPath(l.projectDir))
}

// loadFile loads a configuration from a file.
func (l *Loader) loadFile(path string) (*domain.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return convertRawToDomainConfig(raw), nil
}

// convertRawToDomainConfig converts the raw map to domain config and collects warnings.
// Unknown sections and keys are reported, not rejected.
func convertRawToDomainConfig(raw map[string]any) *domain.Config {
	res := &domain.Config{}
	var warnings []string

	for section, value := range raw {
		m, ok := value.(map[string]any)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("unknown section: %s", section))
			continue
		}
		switch section {
		case "api":
			for k, v := range m {
				switch k {
				case "base_url":
					if s, ok := v.(string); ok {
						res.API.BaseURL = s
					}
				case "timeout":
					s, _ := v.(string)
					d, err := time.ParseDuration(s)
					if err != nil || d <= 0 {
						warnings = append(warnings, fmt.Sprintf("invalid [api] timeout: %v", v))
						continue
					}
					res.API.Timeout = domain.Duration(d)
				default:
					warnings = append(warnings, fmt.Sprintf("unknown key in [api]: %s", k))
				}
			}
		case "list":
			for k, v := range m {
				switch k {
				case "sort_by":
					if s, ok := v.(string); ok {
						res.List.SortBy = domain.SortField(s)
					}
				case "sort_order":
					if s, ok := v.(string); ok {
						res.List.SortOrder = domain.SortOrder(s)
					}
				case "page_size":
					// TOML integers decode as int64.
					if n, ok := v.(int64); ok {
						res.List.PageSize = int(n)
					}
				default:
					warnings = append(warnings, fmt.Sprintf("unknown key in [list]: %s", k))
				}
			}
		case "log":
			for k, v := range m {
				switch k {
				case "level":
					if s, ok := v.(string); ok {
						res.Log.Level = s
					}
				default:
					warnings = append(warnings, fmt.Sprintf("unknown key in [log]: %s", k))
				}
			}
		default:
			warnings = append(warnings, fmt.Sprintf("unknown section: %s", section))
		}
	}

	sort.Strings(warnings)
	res.Warnings = warnings
	return res
}

// mergeConfigs merges two configs, with override taking precedence.
func mergeConfigs(base, override *domain.Config) *domain.Config {
	result := *base
	result.Warnings = append(append([]string{}, base.Warnings...), override.Warnings...)

	if override.API.BaseURL != "" {
		result.API.BaseURL = override.API.BaseURL
	}
	if override.API.Timeout != 0 {
		result.API.Timeout = override.API.Timeout
	}
	if override.List.SortBy != "" {
		result.List.SortBy = override.List.SortBy
	}
	if override.List.SortOrder != "" {
		result.List.SortOrder = override.List.SortOrder
	}
	if override.List.PageSize != 0 {
		result.List.PageSize = override.List.PageSize
	}
	if override.Log.Level != "" {
		result.Log.Level = override.Log.Level
	}
	return &result
}

// sanitize replaces invalid list and log settings with defaults and records a warning for each.
func sanitize(cfg *domain.Config) {
	if !cfg.List.SortBy.IsValid() {
		cfg.Warnings = append(cfg.Warnings, fmt.Sprintf("invalid [list] sort_by: %q", cfg.List.SortBy))
		cfg.List.SortBy = domain.DefaultSortBy
	}
	if !cfg.List.SortOrder.IsValid() {
		cfg.Warnings = append(cfg.Warnings, fmt.Sprintf("invalid [list] sort_order: %q", cfg.List.SortOrder))
		cfg.List.SortOrder = domain.DefaultSortOrder
	}
	if cfg.List.PageSize < 1 || cfg.List.PageSize > domain.MaxPageSize {
		cfg.Warnings = append(cfg.Warnings, fmt.Sprintf("invalid [list] page_size: %d", cfg.List.PageSize))
		cfg.List.PageSize = domain.DefaultPageSize
	}
	switch cfg.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		cfg.Warnings = append(cfg.Warnings, fmt.Sprintf("invalid [log] level: %q", cfg.Log.Level))
		cfg.Log.Level = domain.DefaultLogLevel
	}
}
