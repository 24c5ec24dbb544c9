// internal/tui/drawing.go
package tui

import (
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/bethropolis/tideweave/internal/config"
	"github.com/bethropolis/tideweave/internal/editor"
	"github.com/bethropolis/tideweave/internal/layout"
	"github.com/bethropolis/tideweave/internal/syntax"
	"github.com/bethropolis/tideweave/internal/theme"
	"github.com/bethropolis/tideweave/internal/types"
)

// GutterWidth returns the width of the line number column for a screen of
// the given width, or 0 when the screen is too narrow for one.
func GutterWidth(lay *layout.Service, width int) int {
	last := lay.Line(lay.LineCount() - 1)
	paragraphs := 1
	if last != nil {
		paragraphs = last.Paragraph() + 1
	}
	w := len(strconv.Itoa(paragraphs)) + 1
	if w >= width {
		return 0
	}
	return w
}

// TextArea returns the size left for document text after the gutter and the
// status bar.
func (t *TUI) TextArea(lay *layout.Service) (int, int) {
	width, height := t.Size()
	return width - GutterWidth(lay, width), height - config.StatusBarHeight
}

// firstOfParagraph reports whether l starts a paragraph rather than
// continuing a soft-wrapped one.
func firstOfParagraph(lay *layout.Service, l *layout.Line) bool {
	prev := lay.Line(l.Index() - 1)
	return prev == nil || prev.Paragraph() != l.Paragraph()
}

// paragraphColumn returns the rune column at which l starts within its paragraph.
func paragraphColumn(lay *layout.Service, l *layout.Line) int {
	col := 0
	for i := l.Index() - 1; i >= 0; i-- {
		prev := lay.Line(i)
		if prev.Paragraph() != l.Paragraph() {
			break
		}
		for _, c := range prev.Clusters() {
			col += utf8.RuneCountInString(c)
		}
	}
	return col
}

// DrawEditor draws the visible lines of ed with syntax highlights, the
// selection and the terminal cursor. Lines wider than the text area scroll
// horizontally to keep the cursor in view.
func (t *TUI) DrawEditor(ed *editor.Editor, hl syntax.Highlights, th *theme.Theme) {
	width, height := t.Size()
	viewHeight := height - config.StatusBarHeight
	if width <= 0 || viewHeight <= 0 {
		return
	}

	lay := ed.Layout()
	gutter := GutterWidth(lay, width)
	textWidth := width - gutter
	top, _ := ed.Cursor().Viewport()

	hasCursor := ed.Cursor().HasCursor()
	cur := ed.Cursor().Cursor()
	selStart, selEnd := cur.Range()

	headLine, headX := -1, 0
	if hasCursor {
		if i, err := lay.LineIndex(cur.Head); err == nil {
			l := lay.Line(i)
			headLine, headX = i, l.X(int(cur.Head-l.Start()))
		}
	}
	left := 0
	if headX >= textWidth {
		left = headX - textWidth + 1
	}

	defaultStyle := th.Style("Default")
	numberStyle := th.Style("LineNumber")
	selectionStyle := th.Style("Selection")

	for y := 0; y < viewHeight; y++ {
		for x := 0; x < width; x++ {
			t.screen.SetContent(x, y, ' ', nil, defaultStyle)
		}
		line := lay.Line(top + y)
		if line == nil {
			continue
		}

		if gutter > 0 && firstOfParagraph(lay, line) {
			style := numberStyle
			if headLine >= 0 && lay.Line(headLine).Paragraph() == line.Paragraph() {
				style = style.Bold(true)
			}
			for i, r := range fmt.Sprintf("%*d", gutter-1, line.Paragraph()+1) {
				t.screen.SetContent(i, y, r, nil, style)
			}
		}

		spans := hl[line.Paragraph()]
		col := paragraphColumn(lay, line)
		for i, cluster := range line.Clusters() {
			runes := []rune(cluster)
			style := defaultStyle
			for _, s := range spans {
				if col >= s.StartCol && col < s.EndCol {
					style = th.Style(s.Style)
					break
				}
			}
			col += len(runes)

			offset := line.Start() + types.RenderOffset(i)
			if hasCursor && offset >= selStart && offset < selEnd {
				style = selectionStyle
			}

			x0, x1 := line.X(i)-left, line.X(i+1)-left
			if x0 < 0 {
				continue
			}
			if x0 >= textWidth {
				break
			}
			if runes[0] == '\t' {
				for x := x0; x < x1 && x < textWidth; x++ {
					t.screen.SetContent(gutter+x, y, ' ', nil, style)
				}
				continue
			}
			t.screen.SetContent(gutter+x0, y, runes[0], runes[1:], style)
		}
	}

	x, y := headX-left, headLine-top
	if headLine < 0 || y < 0 || y >= viewHeight || x < 0 || x >= textWidth {
		t.screen.HideCursor()
		return
	}
	t.screen.ShowCursor(gutter+x, y)
}
