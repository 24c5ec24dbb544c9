package cursor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/tideweave/internal/event"
	"github.com/bethropolis/tideweave/internal/types"
)

func TestNoCursorInitially(t *testing.T) {
	m := NewManager(nil)
	assert.False(t, m.HasCursor())
	_, ok := m.LeftLock()
	assert.False(t, ok)
}

func TestSetCursor(t *testing.T) {
	events := event.NewManager()
	var moved []types.Cursor
	events.Subscribe(event.TypeCursorMoved, func(e event.Event) bool {
		moved = append(moved, e.Data.(event.CursorMovedData).Cursor)
		return false
	})

	m := NewManager(events)
	m.SetCursor(2, 5)
	assert.True(t, m.HasCursor())
	assert.Equal(t, types.Cursor{Anchor: 2, Head: 5}, m.Cursor())

	m.SetCursor(-3, -1)
	assert.Equal(t, types.Cursor{Anchor: 0, Head: 0}, m.Cursor())

	m.Place(4)
	assert.False(t, m.Cursor().HasSelection())

	require.Len(t, moved, 3)
	assert.Equal(t, types.Cursor{Anchor: 4, Head: 4}, moved[2])
}

func TestLeftLock(t *testing.T) {
	m := NewManager(nil)
	m.SetLeftLock(7)
	x, ok := m.LeftLock()
	assert.True(t, ok)
	assert.Equal(t, 7, x)

	m.Clear()
	assert.False(t, m.HasCursor())
	_, ok = m.LeftLock()
	assert.False(t, ok)
}

func TestScrollToLine(t *testing.T) {
	m := NewManager(nil)
	m.ScrollToLine(50, 3) // no view yet
	top, _ := m.Viewport()
	assert.Equal(t, 0, top)

	m.SetViewSize(80, 10)
	m.ScrollToLine(20, 3)
	top, height := m.Viewport()
	assert.Equal(t, 14, top)
	assert.Equal(t, 10, height)

	m.ScrollToLine(15, 3)
	top, _ = m.Viewport()
	assert.Equal(t, 12, top)

	m.ScrollToLine(1, 3)
	top, _ = m.Viewport()
	assert.Equal(t, 0, top)
}
