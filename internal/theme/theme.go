// internal/theme/theme.go
package theme

import (
	"strings"

	"github.com/bethropolis/tideweave/internal/logger"
	"github.com/gdamore/tcell/v2"
)

// Theme maps style names (UI elements and syntax captures) to tcell styles.
type Theme struct {
	Name   string
	IsDark bool
	Styles map[string]tcell.Style
}

// Style returns the style for name, falling back to the part before the first
// dot, then to "Default".
func (t *Theme) Style(name string) tcell.Style {
	if style, ok := t.Styles[name]; ok {
		return style
	}
	if i := strings.IndexByte(name, '.'); i != -1 {
		if style, ok := t.Styles[name[:i]]; ok {
			return style
		}
	}
	if style, ok := t.Styles["Default"]; ok {
		return style
	}
	logger.Warnf("Theme '%s': no style '%s' and no Default, using tcell default", t.Name, name)
	return tcell.StyleDefault
}

// Dark is the built-in theme.
var Dark = newDark()

func newDark() *Theme {
	background := tcell.NewHexColor(0x2a2f38)
	foreground := tcell.NewHexColor(0xc5cdd9)
	comment := tcell.NewHexColor(0x5c6370)
	orange := tcell.NewHexColor(0xd19a66)
	yellow := tcell.NewHexColor(0xe5c07b)
	green := tcell.NewHexColor(0x98c379)
	cyan := tcell.NewHexColor(0x56b6c2)
	blue := tcell.NewHexColor(0x61afef)

	base := tcell.StyleDefault.Background(tcell.ColorReset).Foreground(foreground)
	bar := tcell.StyleDefault.Background(background).Foreground(foreground)

	return &Theme{
		Name:   "Tideweave Dark",
		IsDark: true,
		Styles: map[string]tcell.Style{
			"Default":           base,
			"Selection":         base.Reverse(true),
			"LineNumber":        base.Foreground(comment),
			"StatusBar":         bar,
			"StatusBarModified": bar.Foreground(yellow),
			"StatusBarMessage":  bar.Bold(true),

			"keyword":  base.Foreground(blue).Bold(true),
			"string":   base.Foreground(green),
			"comment":  base.Foreground(comment).Italic(true),
			"number":   base.Foreground(orange),
			"type":     base.Foreground(cyan),
			"function": base.Foreground(yellow),
		},
	}
}
