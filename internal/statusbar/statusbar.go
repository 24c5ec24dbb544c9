// internal/statusbar/statusbar.go
package statusbar

import (
	"fmt"
	"sync"
	"time"

	"github.com/bethropolis/tideweave/internal/theme"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

// DefaultMessageTimeout is how long a temporary message stays visible.
const DefaultMessageTimeout = 4 * time.Second

// StatusBar is the single status line at the bottom of the screen.
type StatusBar struct {
	mu sync.RWMutex

	timeout time.Duration
	now     func() time.Time

	filePath  string
	modified  bool
	line, col int
	undo      int
	redo      int

	message     string
	messageTime time.Time
}

// New creates a status bar whose messages expire after timeout.
func New(timeout time.Duration) *StatusBar {
	if timeout <= 0 {
		timeout = DefaultMessageTimeout
	}
	return &StatusBar{timeout: timeout, now: time.Now}
}

// SetFileInfo updates the file path and modified flag.
func (sb *StatusBar) SetFileInfo(path string, modified bool) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.filePath = path
	sb.modified = modified
}

// SetCursorInfo updates the 0-based line and column shown.
func (sb *StatusBar) SetCursorInfo(line, col int) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.line, sb.col = line, col
}

// SetHistoryInfo updates the undo/redo depths shown.
func (sb *StatusBar) SetHistoryInfo(undo, redo int) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.undo, sb.redo = undo, redo
}

// SetTemporaryMessage shows a message until the timeout passes.
func (sb *StatusBar) SetTemporaryMessage(format string, args ...any) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.message = fmt.Sprintf(format, args...)
	sb.messageTime = sb.now()
}

// ResetTemporaryMessage clears any temporary message.
func (sb *StatusBar) ResetTemporaryMessage() {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.message = ""
	sb.messageTime = time.Time{}
}

// Text returns the line as it would be drawn and the style name to draw it with.
func (sb *StatusBar) Text() (string, string) {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	if !sb.messageTime.IsZero() {
		if sb.now().Sub(sb.messageTime) <= sb.timeout {
			return sb.message, "StatusBarMessage"
		}
		sb.message = ""
		sb.messageTime = time.Time{}
	}

	path := sb.filePath
	if path == "" {
		path = "[No Name]"
	}
	style := "StatusBar"
	if sb.modified {
		path += " [+]"
		style = "StatusBarModified"
	}
	return fmt.Sprintf("%s  Ln %d, Col %d  undo %d redo %d",
		path, sb.line+1, sb.col+1, sb.undo, sb.redo), style
}

// Draw renders the status bar on the last row of the screen.
func (sb *StatusBar) Draw(screen tcell.Screen, th *theme.Theme) {
	width, height := screen.Size()
	if width <= 0 || height <= 0 {
		return
	}
	y := height - 1
	text, styleName := sb.Text()
	style := th.Style(styleName)

	for x := 0; x < width; x++ {
		screen.SetContent(x, y, ' ', nil, style)
	}

	gr := uniseg.NewGraphemes(text)
	x := 0
	for gr.Next() {
		w := gr.Width()
		if x+w > width {
			break
		}
		runes := gr.Runes()
		screen.SetContent(x, y, runes[0], runes[1:], style)
		x += w
	}
}
