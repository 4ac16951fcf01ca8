package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/issues/internal/app"
	"github.com/runoshun/issues/internal/domain"
)

// newConfigTestContainer creates an app.Container with real config infrastructure.
// HOME and the XDG directories point into temporary directories.
func newConfigTestContainer(t *testing.T) (*app.Container, string) {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(home, ".state"))
	t.Setenv(domain.EnvBaseURL, "")

	dir := t.TempDir()
	c, err := app.New(dir)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	return c, dir
}

// =============================================================================
// Config Command Tests
// =============================================================================

func TestConfigCommand_NoSubcommand_ShowsHelp(t *testing.T) {
	c, _ := newConfigTestContainer(t)

	out, err := execute(t, c, "config")
	require.NoError(t, err)
	assert.Contains(t, out, "show")
	assert.Contains(t, out, "init")
}

func TestConfigShow_Defaults(t *testing.T) {
	c, dir := newConfigTestContainer(t)

	out, err := execute(t, c, "config", "show")
	require.NoError(t, err)

	assert.Contains(t, out, "[Loaded from]")
	assert.Contains(t, out, domain.ProjectConfigPath(dir)+" (not found)")
	assert.Contains(t, out, "[Effective Config]")
	assert.Contains(t, out, "base_url = 'http://localhost:8000'")
	assert.Contains(t, out, "timeout = '30s'")
	assert.Contains(t, out, "sort_by = 'updatedAt'")
}

func TestConfigShow_ProjectOverride(t *testing.T) {
	c, dir := newConfigTestContainer(t)
	content := "[list]\npage_size = 25\n"
	require.NoError(t, os.WriteFile(domain.ProjectConfigPath(dir), []byte(content), 0o600))

	out, err := execute(t, c, "config", "show")
	require.NoError(t, err)

	assert.Contains(t, out, "- "+domain.ProjectConfigPath(dir)+"\n")
	assert.Contains(t, out, "page_size = 25")
}

func TestConfigShow_EnvOverrideAndWarnings(t *testing.T) {
	c, dir := newConfigTestContainer(t)
	content := "[list]\ncolour = 'red'\n"
	require.NoError(t, os.WriteFile(domain.ProjectConfigPath(dir), []byte(content), 0o600))
	t.Setenv(domain.EnvBaseURL, "http://issues.example:9000")

	out, err := execute(t, c, "config", "show")
	require.NoError(t, err)

	assert.Contains(t, out, "- $"+domain.EnvBaseURL+"\n")
	assert.Contains(t, out, "[Warnings]")
	assert.Contains(t, out, "colour")
	assert.Contains(t, out, "base_url = 'http://issues.example:9000'")
}

func TestConfigInit_Project(t *testing.T) {
	c, dir := newConfigTestContainer(t)

	out, err := execute(t, c, "config", "init")
	require.NoError(t, err)

	path := domain.ProjectConfigPath(dir)
	assert.Equal(t, "Created config file: "+path+"\n", out)
	assert.FileExists(t, path)

	// A second init refuses to overwrite.
	_, err = execute(t, c, "config", "init")
	assert.ErrorIs(t, err, domain.ErrConfigExists)
}

func TestConfigInit_Global(t *testing.T) {
	c, _ := newConfigTestContainer(t)

	out, err := execute(t, c, "config", "init", "--global")
	require.NoError(t, err)

	path := domain.GlobalConfigPath(os.Getenv("XDG_CONFIG_HOME"))
	assert.Equal(t, "Created config file: "+path+"\n", out)
	assert.FileExists(t, path)
}
