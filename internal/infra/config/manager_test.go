package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/runoshun/workforce/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_LocalConfigInfo(t *testing.T) {
	localPath := filepath.Join(t.TempDir(), domain.ConfigFileName)
	m := NewManagerWithGlobalDir(localPath, t.TempDir())

	info := m.LocalConfigInfo()
	assert.Equal(t, localPath, info.Path)
	assert.False(t, info.Exists)

	writeFile(t, localPath, "[log]\nlevel = \"debug\"\n")
	info = m.LocalConfigInfo()
	assert.True(t, info.Exists)
	assert.Contains(t, info.Content, "debug")
}

func TestManager_GlobalConfigInfo_NoDir(t *testing.T) {
	m := NewManagerWithGlobalDir("", "")

	info := m.GlobalConfigInfo()

	assert.Empty(t, info.Path)
	assert.False(t, info.Exists)
}

func TestManager_InitLocalConfig(t *testing.T) {
	localPath := filepath.Join(t.TempDir(), "nested", domain.ConfigFileName)
	m := NewManagerWithGlobalDir(localPath, "")

	require.NoError(t, m.InitLocalConfig(domain.NewDefaultConfig()))

	content, err := os.ReadFile(localPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), `addr = ":8080"`)
	assert.Contains(t, string(content), "system_user_id = 1")

	err = m.InitLocalConfig(domain.NewDefaultConfig())
	assert.ErrorIs(t, err, domain.ErrConfigExists)
}

func TestManager_InitGlobalConfig(t *testing.T) {
	globalDir := filepath.Join(t.TempDir(), "workforce")
	m := NewManagerWithGlobalDir("", globalDir)

	require.NoError(t, m.InitGlobalConfig(domain.NewDefaultConfig()))

	assert.FileExists(t, filepath.Join(globalDir, domain.ConfigFileName))
	assert.True(t, m.GlobalConfigInfo().Exists)
}
