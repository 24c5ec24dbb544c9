// internal/theme/loader.go
package theme

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/bethropolis/tideweave/internal/logger"
	"github.com/gdamore/tcell/v2"
)

// TomlStyleDef is one style entry in a theme file. Pointers tell unset
// attributes apart from false.
type TomlStyleDef struct {
	Fg        *string `toml:"fg"`
	Bg        *string `toml:"bg"`
	Bold      *bool   `toml:"bold"`
	Italic    *bool   `toml:"italic"`
	Underline *bool   `toml:"underline"`
	Reverse   *bool   `toml:"reverse"`
}

// TomlTheme is the layout of a theme file.
type TomlTheme struct {
	Name   string                  `toml:"name"`
	IsDark bool                    `toml:"is_dark"`
	Styles map[string]TomlStyleDef `toml:"styles"`
}

// LoadFile parses a TOML theme. Every style inherits unset attributes from
// the file's "Default" style.
func LoadFile(filePath string) (*Theme, error) {
	var tt TomlTheme
	metadata, err := toml.DecodeFile(filePath, &tt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse theme file '%s': %w", filePath, err)
	}
	if undecoded := metadata.Undecoded(); len(undecoded) > 0 {
		logger.Warnf("Theme file '%s': Unrecognized keys: %v", filePath, undecoded)
	}
	if tt.Name == "" {
		tt.Name = strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))
	}

	t := &Theme{
		Name:   tt.Name,
		IsDark: tt.IsDark,
		Styles: make(map[string]tcell.Style, len(tt.Styles)+1),
	}

	base := tcell.StyleDefault
	if def, ok := tt.Styles["Default"]; ok {
		if base, err = convertStyle(def, tcell.StyleDefault); err != nil {
			return nil, fmt.Errorf("theme '%s': style 'Default': %w", t.Name, err)
		}
	}
	t.Styles["Default"] = base

	for name, def := range tt.Styles {
		if name == "Default" {
			continue
		}
		style, err := convertStyle(def, base)
		if err != nil {
			logger.Warnf("Theme '%s': skipping style '%s': %v", t.Name, name, err)
			continue
		}
		t.Styles[name] = style
	}
	logger.Debugf("Loaded theme '%s' from '%s' (%d styles)", t.Name, filePath, len(t.Styles))
	return t, nil
}

func convertStyle(def TomlStyleDef, base tcell.Style) (tcell.Style, error) {
	style := base
	if def.Fg != nil {
		c, err := parseColor(*def.Fg)
		if err != nil {
			return style, fmt.Errorf("invalid foreground: %w", err)
		}
		style = style.Foreground(c)
	}
	if def.Bg != nil {
		c, err := parseColor(*def.Bg)
		if err != nil {
			return style, fmt.Errorf("invalid background: %w", err)
		}
		style = style.Background(c)
	}
	if def.Bold != nil {
		style = style.Bold(*def.Bold)
	}
	if def.Italic != nil {
		style = style.Italic(*def.Italic)
	}
	if def.Underline != nil {
		style = style.Underline(*def.Underline)
	}
	if def.Reverse != nil {
		style = style.Reverse(*def.Reverse)
	}
	return style, nil
}

// parseColor accepts #rrggbb, "reset", "default" and tcell color names.
func parseColor(s string) (tcell.Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case strings.HasPrefix(s, "#"):
		if len(s) != 7 {
			return tcell.ColorDefault, fmt.Errorf("'%s' is not #RRGGBB", s)
		}
		v, err := strconv.ParseInt(s[1:], 16, 32)
		if err != nil {
			return tcell.ColorDefault, fmt.Errorf("invalid hex value '%s': %w", s, err)
		}
		return tcell.NewHexColor(int32(v)), nil
	case s == "reset":
		return tcell.ColorReset, nil
	case s == "default":
		return tcell.ColorDefault, nil
	}
	if c, ok := tcell.ColorNames[s]; ok {
		return c, nil
	}
	return tcell.ColorDefault, fmt.Errorf("unknown color '%s'", s)
}
