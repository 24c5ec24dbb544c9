// Package cursor holds the single document cursor, its horizontal left lock
// and the viewport that follows it.
package cursor

import (
	"github.com/bethropolis/tideweave/internal/event"
	"github.com/bethropolis/tideweave/internal/logger"
	"github.com/bethropolis/tideweave/internal/types"
)

// Manager handles cursor positioning and viewport management
type Manager struct {
	events *event.Manager

	present  bool
	cursor   types.Cursor
	leftLock int
	hasLock  bool

	viewportTop int
	viewWidth   int
	viewHeight  int
}

// NewManager creates a cursor manager with no cursor. events may be nil.
func NewManager(events *event.Manager) *Manager {
	return &Manager{events: events}
}

// HasCursor reports whether a cursor exists.
func (m *Manager) HasCursor() bool {
	return m.present
}

// Cursor returns the current cursor. It is the zero cursor when none exists.
func (m *Manager) Cursor() types.Cursor {
	return m.cursor
}

// SetCursor moves the cursor, creating it if needed. Negative offsets clamp to 0.
func (m *Manager) SetCursor(anchor, head types.RenderOffset) {
	if anchor < 0 {
		anchor = 0
	}
	if head < 0 {
		head = 0
	}
	m.present = true
	m.cursor = types.Cursor{Anchor: anchor, Head: head}
	logger.DebugTagf("cursor", "cursor set to %v..%v", anchor, head)
	if m.events != nil {
		m.events.Dispatch(event.TypeCursorMoved, event.CursorMovedData{Cursor: m.cursor})
	}
}

// Place puts a collapsed cursor at offset.
func (m *Manager) Place(offset types.RenderOffset) {
	m.SetCursor(offset, offset)
}

// Clear removes the cursor and its left lock.
func (m *Manager) Clear() {
	m.present = false
	m.cursor = types.Cursor{}
	m.hasLock = false
	m.leftLock = 0
}

// SetLeftLock records the x coordinate vertical movement aims for.
func (m *Manager) SetLeftLock(x int) {
	m.leftLock = x
	m.hasLock = true
}

// LeftLock returns the recorded left lock, if any.
func (m *Manager) LeftLock() (int, bool) {
	return m.leftLock, m.hasLock
}

// SetViewSize updates the view dimensions
func (m *Manager) SetViewSize(width, height int) {
	m.viewWidth = width
	m.viewHeight = height
}

// Viewport returns the top visible line and the view height.
func (m *Manager) Viewport() (int, int) {
	return m.viewportTop, m.viewHeight
}

// ScrollToLine ensures line is visible in the viewport, keeping scrollOff
// lines of context above and below it where possible.
func (m *Manager) ScrollToLine(line, scrollOff int) {
	if m.viewHeight <= 0 {
		// View not initialized yet
		return
	}
	if scrollOff*2 >= m.viewHeight {
		scrollOff = (m.viewHeight - 1) / 2
	}

	if line < m.viewportTop+scrollOff {
		m.viewportTop = line - scrollOff
	} else if line >= m.viewportTop+m.viewHeight-scrollOff {
		m.viewportTop = line - m.viewHeight + scrollOff + 1
	}
	if m.viewportTop < 0 {
		m.viewportTop = 0
	}
}
