package domain

import (
	"bytes"
	_ "embed"
	"fmt"
	"path/filepath"
	"text/template"
)

//go:embed config_template.toml
var configTemplateContent string

// Config represents the application configuration.
// Fields are ordered to minimize memory padding.
type Config struct {
	Warnings []string       `toml:"-"`
	Server   ServerConfig   `toml:"server"`
	Log      LogConfig      `toml:"log"`
	Activity ActivityConfig `toml:"activity"`
}

// ServerConfig holds HTTP server settings from [server] section.
type ServerConfig struct {
	Addr string `toml:"addr,omitempty"` // Listen address (default ":8080")
	Mode string `toml:"mode,omitempty"` // Router mode: release, debug or test
}

// LogConfig holds logging settings from [log] section.
type LogConfig struct {
	Level string `toml:"level,omitempty"` // Log level: debug, info, warn, error
	Dir   string `toml:"dir,omitempty"`   // Directory for log files (empty = stderr only)
}

// ActivityConfig holds audit-trail settings from [activity] section.
type ActivityConfig struct {
	SystemUserID int64 `toml:"system_user_id,omitempty"` // User recorded on system-originated activities
}

// Default configuration values.
const (
	DefaultServerAddr   = ":8080"
	DefaultServerMode   = "release"
	DefaultLogLevel     = "info"
	DefaultSystemUserID = 1
)

// File names for workforce configuration.
const (
	AppDirName     = "workforce"      // Directory name under the user config home
	ConfigFileName = "workforce.toml" // Config file name
)

// GlobalConfigDir returns the global config directory.
// configHome is typically XDG_CONFIG_HOME or ~/.config (resolved by caller).
func GlobalConfigDir(configHome string) string {
	return filepath.Join(configHome, AppDirName)
}

// GlobalConfigPath returns the global config path.
func GlobalConfigPath(configHome string) string {
	return filepath.Join(GlobalConfigDir(configHome), ConfigFileName)
}

// TaskLogPath returns the path to the task log file.
func TaskLogPath(logDir string, taskID int64) string {
	return filepath.Join(logDir, fmt.Sprintf("task-%d.log", taskID))
}

// GlobalLogPath returns the path to the global log file.
func GlobalLogPath(logDir string) string {
	return filepath.Join(logDir, "workforce.log")
}

// NewDefaultConfig returns a Config with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr: DefaultServerAddr,
			Mode: DefaultServerMode,
		},
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
		Activity: ActivityConfig{
			SystemUserID: DefaultSystemUserID,
		},
	}
}

// RenderConfigTemplate renders the commented config template with cfg's values.
func RenderConfigTemplate(cfg *Config) string {
	tmpl, err := template.New("config").Delims("<<", ">>").Parse(configTemplateContent)
	if err != nil {
		// Should never happen with embedded template
		panic(fmt.Sprintf("failed to parse config template: %v", err))
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, cfg); err != nil {
		panic(fmt.Sprintf("failed to execute config template: %v", err))
	}

	return buf.String()
}
