package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/runoshun/workforce/internal/domain"
)

// Ensure Manager implements domain.ConfigManager.
var _ domain.ConfigManager = (*Manager)(nil)

// Manager manages configuration files.
type Manager struct {
	localPath     string // Path to the local config file
	globalConfDir string // Path to global config directory (e.g., ~/.config/workforce)
}

// NewManager creates a new Manager.
// An empty localPath means workforce.toml in the working directory.
func NewManager(localPath string) *Manager {
	return NewManagerWithGlobalDir(localPath, defaultGlobalConfigDir())
}

// NewManagerWithGlobalDir creates a new Manager with a custom global config directory.
// This is useful for testing.
func NewManagerWithGlobalDir(localPath, globalConfDir string) *Manager {
	if localPath == "" {
		localPath = domain.ConfigFileName
	}
	return &Manager{
		localPath:     localPath,
		globalConfDir: globalConfDir,
	}
}

// LocalConfigInfo returns information about the local config file.
func (m *Manager) LocalConfigInfo() domain.ConfigInfo {
	return m.configInfo(m.localPath)
}

// GlobalConfigInfo returns information about the global config file.
func (m *Manager) GlobalConfigInfo() domain.ConfigInfo {
	if m.globalConfDir == "" {
		return domain.ConfigInfo{}
	}
	return m.configInfo(filepath.Join(m.globalConfDir, domain.ConfigFileName))
}

func (m *Manager) configInfo(path string) domain.ConfigInfo {
	content, err := os.ReadFile(path)
	if err != nil {
		return domain.ConfigInfo{Path: path}
	}
	return domain.ConfigInfo{
		Path:    path,
		Content: string(content),
		Exists:  true,
	}
}

// InitLocalConfig creates the local config file from the template.
func (m *Manager) InitLocalConfig(cfg *domain.Config) error {
	if dir := filepath.Dir(m.localPath); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return err
		}
	}
	return m.initConfig(m.localPath, cfg)
}

// InitGlobalConfig creates the global config file from the template.
func (m *Manager) InitGlobalConfig(cfg *domain.Config) error {
	if m.globalConfDir == "" {
		return errors.New("global config directory not available")
	}
	if err := os.MkdirAll(m.globalConfDir, 0o700); err != nil {
		return err
	}
	return m.initConfig(filepath.Join(m.globalConfDir, domain.ConfigFileName), cfg)
}

func (m *Manager) initConfig(path string, cfg *domain.Config) error {
	if _, err := os.Stat(path); err == nil {
		return domain.ErrConfigExists
	}
	return os.WriteFile(path, []byte(domain.RenderConfigTemplate(cfg)), 0o600)
}
