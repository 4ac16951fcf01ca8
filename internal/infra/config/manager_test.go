package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/issues/internal/domain"
)

func TestManager_GetGlobalConfigInfo(t *testing.T) {
	t.Run("returns info when file exists", func(t *testing.T) {
		globalDir := t.TempDir()
		content := "[log]\nlevel = \"debug\""
		writeFile(t, filepath.Join(globalDir, domain.ConfigFileName), content)

		info := NewManagerWithGlobalDir("", globalDir).GetGlobalConfigInfo()

		assert.Equal(t, filepath.Join(globalDir, domain.ConfigFileName), info.Path)
		assert.Equal(t, content, info.Content)
		assert.True(t, info.Exists)
	})

	t.Run("returns info when file does not exist", func(t *testing.T) {
		globalDir := t.TempDir()

		info := NewManagerWithGlobalDir("", globalDir).GetGlobalConfigInfo()

		assert.Equal(t, filepath.Join(globalDir, domain.ConfigFileName), info.Path)
		assert.Empty(t, info.Content)
		assert.False(t, info.Exists)
	})

	t.Run("returns empty info without global dir", func(t *testing.T) {
		info := NewManagerWithGlobalDir("", "").GetGlobalConfigInfo()
		assert.Empty(t, info.Path)
		assert.False(t, info.Exists)
	})
}

func TestManager_GetProjectConfigInfo(t *testing.T) {
	projectDir := t.TempDir()
	m := NewManagerWithGlobalDir(projectDir, "")

	assert.False(t, m.GetProjectConfigInfo().Exists)

	writeFile(t, domain.ProjectConfigPath(projectDir), "[api]\n")
	info := m.GetProjectConfigInfo()
	assert.True(t, info.Exists)
	assert.Equal(t, domain.ProjectConfigPath(projectDir), info.Path)
}

func TestManager_InitGlobalConfig(t *testing.T) {
	globalDir := filepath.Join(t.TempDir(), "nested", "issues")
	m := NewManagerWithGlobalDir("", globalDir)

	require.NoError(t, m.InitGlobalConfig(domain.NewDefaultConfig()))

	content, err := os.ReadFile(filepath.Join(globalDir, domain.ConfigFileName))
	require.NoError(t, err)
	assert.Contains(t, string(content), `base_url = "http://localhost:8000"`)
	assert.Contains(t, string(content), "page_size = 10")

	// Second init refuses to overwrite.
	assert.ErrorIs(t, m.InitGlobalConfig(domain.NewDefaultConfig()), domain.ErrConfigExists)
}

func TestManager_InitProjectConfig(t *testing.T) {
	projectDir := t.TempDir()
	m := NewManagerWithGlobalDir(projectDir, "")

	require.NoError(t, m.InitProjectConfig(domain.NewDefaultConfig()))
	assert.FileExists(t, domain.ProjectConfigPath(projectDir))
	assert.ErrorIs(t, m.InitProjectConfig(domain.NewDefaultConfig()), domain.ErrConfigExists)

	assert.Error(t, NewManagerWithGlobalDir("", "").InitProjectConfig(domain.NewDefaultConfig()))
}
