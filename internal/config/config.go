// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/bethropolis/tideweave/internal/logger"
)

// Config holds the application's combined configuration.
type Config struct {
	Logger logger.Config `toml:"logger"`
	Editor EditorConfig  `toml:"editor"`
}

// EditorConfig holds editor-specific settings.
type EditorConfig struct {
	TabWidth        int    `toml:"tab_width"`
	WrapWidth       int    `toml:"wrap_width"`
	MaxHistory      int    `toml:"max_history"`
	ScrollOff       int    `toml:"scroll_off"`
	SoftWrap        bool   `toml:"soft_wrap"` // wrap at the window width, overriding wrap_width
	SystemClipboard bool   `toml:"system_clipboard"`
	ThemeFile       string `toml:"theme_file"`
}

var (
	loadedConfig *Config
	loadOnce     sync.Once
	loadErr      error
)

// NewDefaultConfig creates a Config struct with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Logger: logger.NewConfig(),
		Editor: EditorConfig{
			TabWidth:        DefaultTabWidth,
			WrapWidth:       DefaultWrapWidth,
			MaxHistory:      DefaultMaxHistory,
			ScrollOff:       DefaultScrollOff,
			SystemClipboard: SystemClipboard,
		},
	}
}

// DefaultPath returns the config file location under the user config directory.
func DefaultPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, AppName, DefaultConfigFileName), nil
}

// loadFromFile decodes a TOML file on top of cfg. A missing file is not an error.
func loadFromFile(filePath string, cfg *Config) error {
	_, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("error checking config file '%s': %w", filePath, err)
	}

	metadata, err := toml.DecodeFile(filePath, cfg)
	if err != nil {
		return fmt.Errorf("failed to parse config file '%s': %w", filePath, err)
	}
	if undecoded := metadata.Undecoded(); len(undecoded) > 0 {
		logger.Warnf("Config file '%s': Unrecognized keys: %v", filePath, undecoded)
	}
	return nil
}

// validate resets invalid values to defaults.
func (c *Config) validate() {
	defaults := NewDefaultConfig()

	if c.Editor.TabWidth <= 0 {
		c.Editor.TabWidth = defaults.Editor.TabWidth
	}
	if c.Editor.WrapWidth < 0 {
		c.Editor.WrapWidth = defaults.Editor.WrapWidth
	}
	if c.Editor.MaxHistory <= 0 {
		c.Editor.MaxHistory = defaults.Editor.MaxHistory
	}
	if c.Editor.ScrollOff < 0 {
		c.Editor.ScrollOff = defaults.Editor.ScrollOff
	}
	if c.Logger.LogLevel == "" {
		c.Logger.LogLevel = defaults.Logger.LogLevel
	}
}

// Load builds a configuration from defaults, the TOML file at configFilePath
// (the default location when empty) and flag overrides, then validates it.
func Load(configFilePath string, flags *Flags) (*Config, error) {
	cfg := NewDefaultConfig()

	effectivePath := configFilePath
	if effectivePath == "" {
		if p, err := DefaultPath(); err == nil {
			effectivePath = p
		}
	}

	var err error
	if effectivePath != "" {
		err = loadFromFile(effectivePath, cfg)
	}

	if flags != nil {
		flags.ApplyOverrides(cfg)
	}
	cfg.validate()
	return cfg, err
}

// LoadConfig loads the process-wide configuration once, typically from main.
func LoadConfig(configFilePath string, flags *Flags) (*Config, error) {
	loadOnce.Do(func() {
		loadedConfig, loadErr = Load(configFilePath, flags)
	})
	return loadedConfig, loadErr
}

// Get returns the loaded application configuration, or defaults if LoadConfig
// was never called.
func Get() *Config {
	if loadedConfig == nil {
		return NewDefaultConfig()
	}
	return loadedConfig
}
