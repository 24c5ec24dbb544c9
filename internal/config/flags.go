// internal/config/flags.go
package config

import (
	"flag"
	"fmt"
	"strings"

	"github.com/bethropolis/tideweave/internal/logger"
)

// Flags holds values parsed from command-line flags.
// Pointers distinguish unset flags from zero values.
type Flags struct {
	fs *flag.FlagSet

	ConfigFilePath  *string
	Version         *bool
	LogLevel        *string
	LogFilePath     *string
	TabWidth        *int
	WrapWidth       *int
	MaxHistory      *int
	EnableTags      *string
	DisableTags     *string
	EnablePkgs      *string
	DisablePkgs     *string
	DebugLog        *bool
	SystemClipboard *bool
	SoftWrap        *bool
	ThemeFile       *string
}

// DefineFlags registers the flags on fs.
func (f *Flags) DefineFlags(fs *flag.FlagSet) {
	f.fs = fs
	f.ConfigFilePath = fs.String("config", "", fmt.Sprintf("Path to TOML configuration file (default ~/.config/%s/%s)", AppName, DefaultConfigFileName))
	f.Version = fs.Bool("version", false, "Show version information and exit")
	f.LogLevel = fs.String("loglevel", "", "Log level (debug, info, warn, error) - Overrides config file")
	f.LogFilePath = fs.String("logfile", "", "Path to write log file (use '-' for stderr) - Overrides config file")
	f.TabWidth = fs.Int("tabwidth", 0, "Number of cells per tab stop - Overrides config file")
	f.WrapWidth = fs.Int("wrapwidth", -1, "Soft wrap width in cells, 0 disables - Overrides config file")
	f.MaxHistory = fs.Int("maxhistory", 0, "Maximum undo entries - Overrides config file")
	f.EnableTags = fs.String("log-tags", "", "Comma-separated list of tags to enable - Overrides config file")
	f.DisableTags = fs.String("log-disable-tags", "", "Comma-separated list of tags to disable - Overrides config file")
	f.EnablePkgs = fs.String("log-packages", "", "Comma-separated list of packages to enable - Overrides config file")
	f.DisablePkgs = fs.String("log-disable-packages", "", "Comma-separated list of packages to disable - Overrides config file")
	f.DebugLog = fs.Bool("debug-log", false, "Enable verbose debug logging for the logger filtering system")
	f.SystemClipboard = fs.Bool("system-clipboard", SystemClipboard, "Use system clipboard instead of internal clipboard")
	f.SoftWrap = fs.Bool("softwrap", false, "Soft wrap lines at the window width - Overrides config file")
	f.ThemeFile = fs.String("theme", "", "Path to a TOML theme file - Overrides config file")
}

// ParseFlags defines and parses flags from args, returning the remaining
// non-flag arguments (e.g., the file path).
func (f *Flags) ParseFlags(fs *flag.FlagSet, args []string) ([]string, error) {
	f.DefineFlags(fs)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return fs.Args(), nil
}

// ApplyOverrides updates cfg with the flags that were actually set.
func (f *Flags) ApplyOverrides(cfg *Config) {
	if f.fs == nil {
		return
	}
	f.fs.Visit(func(fl *flag.Flag) {
		logger.DebugTagf("config", "Applying flag override: %s", fl.Name)
		switch fl.Name {
		case "loglevel":
			if *f.LogLevel != "" {
				cfg.Logger.LogLevel = *f.LogLevel
			}
		case "logfile":
			cfg.Logger.LogFilePath = *f.LogFilePath
		case "tabwidth":
			if *f.TabWidth > 0 {
				cfg.Editor.TabWidth = *f.TabWidth
			}
		case "wrapwidth":
			if *f.WrapWidth >= 0 {
				cfg.Editor.WrapWidth = *f.WrapWidth
			}
		case "maxhistory":
			if *f.MaxHistory > 0 {
				cfg.Editor.MaxHistory = *f.MaxHistory
			}
		case "system-clipboard":
			cfg.Editor.SystemClipboard = *f.SystemClipboard
		case "softwrap":
			cfg.Editor.SoftWrap = *f.SoftWrap
		case "theme":
			cfg.Editor.ThemeFile = *f.ThemeFile
		case "log-tags":
			cfg.Logger.EnabledTags = splitCommaList(*f.EnableTags)
		case "log-disable-tags":
			cfg.Logger.DisabledTags = splitCommaList(*f.DisableTags)
		case "log-packages":
			cfg.Logger.EnabledPackages = splitCommaList(*f.EnablePkgs)
		case "log-disable-packages":
			cfg.Logger.DisabledPackages = splitCommaList(*f.DisablePkgs)
		}
	})
}

func splitCommaList(list string) []string {
	if list == "" {
		return nil
	}
	items := strings.Split(list, ",")
	result := make([]string, 0, len(items))
	for _, item := range items {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
