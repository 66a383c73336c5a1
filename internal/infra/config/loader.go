// Package config provides configuration loading functionality.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/pelletier/go-toml/v2"
	"github.com/runoshun/workforce/internal/domain"
)

// Ensure Loader implements domain.ConfigLoader.
var _ domain.ConfigLoader = (*Loader)(nil)

// Loader loads configuration from TOML files.
type Loader struct {
	localPath     string // Path to the local config file (--config or ./workforce.toml)
	globalConfDir string // Path to global config directory (e.g., ~/.config/workforce)
}

// NewLoader creates a new Loader.
// An empty localPath means workforce.toml in the working directory.
func NewLoader(localPath string) *Loader {
	return NewLoaderWithGlobalDir(localPath, defaultGlobalConfigDir())
}

// NewLoaderWithGlobalDir creates a new Loader with a custom global config directory.
// This is useful for testing.
func NewLoaderWithGlobalDir(localPath, globalConfDir string) *Loader {
	if localPath == "" {
		localPath = domain.ConfigFileName
	}
	return &Loader{
		localPath:     localPath,
		globalConfDir: globalConfDir,
	}
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
// Precedence: defaults < global < local.
func (l *Loader) Load() (*domain.Config, error) {
	global, err := l.LoadGlobal()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	local, err := l.LoadLocal()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	base := domain.NewDefaultConfig()
	if global != nil {
		base = mergeConfigs(base, global)
	}
	if local != nil {
		base = mergeConfigs(base, local)
	}
	return base, nil
}

// LoadGlobal returns only the global configuration.
func (l *Loader) LoadGlobal() (*domain.Config, error) {
	if l.globalConfDir == "" {
		return nil, os.ErrNotExist
	}
	return l.loadFile(filepath.Join(l.globalConfDir, domain.ConfigFileName))
}

// LoadLocal returns only the local configuration.
func (l *Loader) LoadLocal() (*domain.Config, error) {
	return l.loadFile(l.localPath)
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
func convertRawToDomainConfig(raw map[string]any) *domain.Config {
	res := &domain.Config{}
	var warnings []string

	unknown := func(section, key string) {
		warnings = append(warnings, fmt.Sprintf("unknown key in [%s]: %s", section, key))
	}

	for section, value := range raw {
		m, ok := value.(map[string]any)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("unknown section: %s", section))
			continue
		}

		switch section {
		case "server":
			for k, v := range m {
				switch k {
				case "addr":
					if s, ok := v.(string); ok {
						res.Server.Addr = s
					}
				case "mode":
					if s, ok := v.(string); ok {
						res.Server.Mode = s
					}
				default:
					unknown(section, k)
				}
			}
		case "log":
			for k, v := range m {
				switch k {
				case "level":
					if s, ok := v.(string); ok {
						res.Log.Level = s
					}
				case "dir":
					if s, ok := v.(string); ok {
						res.Log.Dir = s
					}
				default:
					unknown(section, k)
				}
			}
		case "activity":
			for k, v := range m {
				switch k {
				case "system_user_id":
					if n, ok := v.(int64); ok {
						res.Activity.SystemUserID = n
					}
				default:
					unknown(section, k)
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
// Zero values in override leave the base value in place.
func mergeConfigs(base, override *domain.Config) *domain.Config {
	result := &domain.Config{
		Server:   base.Server,
		Log:      base.Log,
		Activity: base.Activity,
		Warnings: append([]string{}, base.Warnings...),
	}
	result.Warnings = append(result.Warnings, override.Warnings...)

	if override.Server.Addr != "" {
		result.Server.Addr = override.Server.Addr
	}
	if override.Server.Mode != "" {
		result.Server.Mode = override.Server.Mode
	}
	if override.Log.Level != "" {
		result.Log.Level = override.Log.Level
	}
	if override.Log.Dir != "" {
		result.Log.Dir = override.Log.Dir
	}
	if override.Activity.SystemUserID != 0 {
		result.Activity.SystemUserID = override.Activity.SystemUserID
	}

	return result
}
