package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/issues/internal/domain"
	"github.com/runoshun/issues/internal/testutil"
)

func isolateEnv(t *testing.T) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(home, ".state"))
	t.Setenv(domain.EnvBaseURL, "")
}

func TestNew_Defaults(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()

	c, err := New(dir)
	require.NoError(t, err)
	defer func() { _ = c.Close() }()

	assert.Equal(t, domain.DefaultBaseURL, c.Config.BaseURL)
	assert.Equal(t, domain.DefaultTimeout, c.Config.Timeout)
	assert.Equal(t, dir, c.Config.WorkDir)
	assert.Contains(t, c.Config.LogPath, filepath.Join(".state", domain.AppDirName))
	assert.NotNil(t, c.Issues)
	assert.NotNil(t, c.ConfigManager)
	assert.Empty(t, c.AppConfig.Warnings)
}

func TestNew_ProjectConfig(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	content := "[api]\nbase_url = \"http://issues.example.com\"\ntimeout = \"5s\"\n"
	require.NoError(t, os.WriteFile(domain.ProjectConfigPath(dir), []byte(content), 0o600))

	c, err := New(dir)
	require.NoError(t, err)
	defer func() { _ = c.Close() }()

	assert.Equal(t, "http://issues.example.com", c.Config.BaseURL)
	assert.Equal(t, 5*time.Second, c.Config.Timeout)
}

func TestNew_BrokenConfigFallsBackToDefaults(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(domain.ProjectConfigPath(dir), []byte("[api\n"), 0o600))

	c, err := New(dir)
	require.NoError(t, err)
	defer func() { _ = c.Close() }()

	assert.Equal(t, domain.DefaultBaseURL, c.Config.BaseURL)
	assert.NotEmpty(t, c.AppConfig.Warnings)
}

func TestNew_InvalidBaseURL(t *testing.T) {
	isolateEnv(t)
	t.Setenv(domain.EnvBaseURL, "ftp://nope")

	_, err := New(t.TempDir())
	assert.Error(t, err)
}

func TestNewWithDeps_UseCases(t *testing.T) {
	svc := testutil.NewMockIssueService()
	c := NewWithDeps(Config{BaseURL: "http://x"}, svc, &testutil.MockIdentity{Name: "Ann"}, &testutil.MockClock{}, nil)

	assert.NotNil(t, c.ListIssuesUseCase())
	assert.NotNil(t, c.ShowIssueUseCase())
	assert.NotNil(t, c.CreateIssueUseCase())
	assert.NotNil(t, c.CreateIssuesFromFileUseCase())
	assert.NotNil(t, c.UpdateIssueUseCase())
	assert.NotNil(t, c.ListAssigneesUseCase())
	assert.NotNil(t, c.CheckHealthUseCase())
	assert.NotNil(t, c.CategoryLogger("tui"))
	assert.NoError(t, c.Close())
}
