package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/issues/internal/domain"
	"github.com/runoshun/issues/internal/testutil"
)

func TestShowConfig_Execute(t *testing.T) {
	manager := &testutil.MockConfigManager{
		GlobalInfo:  domain.ConfigInfo{Path: "/home/u/.config/issues/config.toml", Exists: true, Content: "[api]"},
		ProjectInfo: domain.ConfigInfo{Path: "/work/.issues.toml"},
	}
	cfg := domain.NewDefaultConfig()
	cfg.API.BaseURL = "http://example.com"

	out, err := NewShowConfig(manager, &testutil.MockConfigLoader{Config: cfg}).Execute(context.Background(), ShowConfigInput{})
	require.NoError(t, err)
	assert.True(t, out.GlobalConfig.Exists)
	assert.False(t, out.ProjectConfig.Exists)
	assert.Equal(t, "http://example.com", out.EffectiveConfig.API.BaseURL)
}

func TestInitConfig_Execute(t *testing.T) {
	manager := &testutil.MockConfigManager{
		GlobalInfo:  domain.ConfigInfo{Path: "/g/config.toml"},
		ProjectInfo: domain.ConfigInfo{Path: "/p/.issues.toml"},
	}
	uc := NewInitConfig(manager)

	out, err := uc.Execute(context.Background(), InitConfigInput{Global: true})
	require.NoError(t, err)
	assert.Equal(t, "/g/config.toml", out.Path)
	assert.True(t, manager.InitGlobal)

	out, err = uc.Execute(context.Background(), InitConfigInput{})
	require.NoError(t, err)
	assert.Equal(t, "/p/.issues.toml", out.Path)
	assert.True(t, manager.InitProject)
}

func TestInitConfig_Execute_Exists(t *testing.T) {
	manager := &testutil.MockConfigManager{InitErr: domain.ErrConfigExists}

	_, err := NewInitConfig(manager).Execute(context.Background(), InitConfigInput{Global: true})
	assert.ErrorIs(t, err, domain.ErrConfigExists)
}
