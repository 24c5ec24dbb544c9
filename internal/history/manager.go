// Package history provides undo/redo functionality by keeping the reverse
// transformation of every applied edit.
package history

import (
	"errors"
	"fmt"
	"sync"

	"github.com/bethropolis/tideweave/internal/event"
	"github.com/bethropolis/tideweave/internal/logger"
	"github.com/bethropolis/tideweave/internal/transform"
)

const DefaultMaxHistory = 100

var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// entry holds the transformations that move between the states before and
// after one recorded edit.
type entry struct {
	undo *transform.Transformation
	redo *transform.Transformation
}

// Manager handles the undo/redo stack.
type Manager struct {
	events       *event.Manager
	entries      []entry
	currentIndex int // Index of the *next* entry to potentially Redo
	maxHistory   int
	mutex        sync.Mutex
}

// NewManager creates a history manager. events may be nil.
func NewManager(events *event.Manager, maxHistory int) *Manager {
	if maxHistory <= 0 {
		maxHistory = DefaultMaxHistory
	}
	return &Manager{
		events:     events,
		entries:    make([]entry, 0, maxHistory),
		maxHistory: maxHistory,
	}
}

// Record adds an applied transformation, clearing any redo history.
func (m *Manager) Record(res *transform.Result) {
	m.mutex.Lock()
	if m.currentIndex < len(m.entries) {
		m.entries = m.entries[:m.currentIndex]
	}
	m.entries = append(m.entries, entry{undo: res.Reverse, redo: res.Transformation})
	if len(m.entries) > m.maxHistory {
		// Remove the oldest entry (simple FIFO eviction)
		m.entries = m.entries[len(m.entries)-m.maxHistory:]
	}
	m.currentIndex = len(m.entries)
	logger.DebugTagf("history", "recorded %v. Index: %d, Count: %d", res.Transformation, m.currentIndex, len(m.entries))
	undo, redo := m.depths()
	m.mutex.Unlock()

	m.notify(undo, redo)
}

// Undo applies the reverse of the last recorded edit.
// On failure the stacks are left as they were.
func (m *Manager) Undo(s transform.Services) (*transform.Result, error) {
	m.mutex.Lock()
	if m.currentIndex <= 0 {
		m.mutex.Unlock()
		return nil, ErrNothingToUndo
	}
	idx := m.currentIndex - 1
	res, err := m.entries[idx].undo.Apply(s)
	if err != nil {
		m.mutex.Unlock()
		logger.Errorf("History: undo failed: %v", err)
		return nil, fmt.Errorf("undo failed: %w", err)
	}
	m.entries[idx].redo = res.Reverse
	m.currentIndex = idx
	logger.DebugTagf("history", "undid entry %d", idx)
	undo, redo := m.depths()
	m.mutex.Unlock()

	m.notifyApplied(res, true)
	m.notify(undo, redo)
	return res, nil
}

// Redo reapplies the last undone edit.
// On failure the stacks are left as they were.
func (m *Manager) Redo(s transform.Services) (*transform.Result, error) {
	m.mutex.Lock()
	if m.currentIndex >= len(m.entries) {
		m.mutex.Unlock()
		return nil, ErrNothingToRedo
	}
	idx := m.currentIndex
	res, err := m.entries[idx].redo.Apply(s)
	if err != nil {
		m.mutex.Unlock()
		logger.Errorf("History: redo failed: %v", err)
		return nil, fmt.Errorf("redo failed: %w", err)
	}
	m.entries[idx].undo = res.Reverse
	m.currentIndex = idx + 1
	logger.DebugTagf("history", "redid entry %d", idx)
	undo, redo := m.depths()
	m.mutex.Unlock()

	m.notifyApplied(res, false)
	m.notify(undo, redo)
	return res, nil
}

// Clear resets the history stack. Call this on file load.
func (m *Manager) Clear() {
	m.mutex.Lock()
	m.entries = m.entries[:0]
	m.currentIndex = 0
	m.mutex.Unlock()
	logger.DebugTagf("history", "cleared")
	m.notify(0, 0)
}

// CanUndo returns true if there are edits that can be undone.
func (m *Manager) CanUndo() bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.currentIndex > 0
}

// CanRedo returns true if there are edits that can be redone.
func (m *Manager) CanRedo() bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.currentIndex < len(m.entries)
}

func (m *Manager) depths() (int, int) {
	return m.currentIndex, len(m.entries) - m.currentIndex
}

func (m *Manager) notify(undo, redo int) {
	if m.events == nil {
		return
	}
	m.events.Dispatch(event.TypeHistoryChanged, event.HistoryChangedData{UndoDepth: undo, RedoDepth: redo})
}

func (m *Manager) notifyApplied(res *transform.Result, undo bool) {
	if m.events == nil {
		return
	}
	m.events.Dispatch(event.TypeTransformationApplied, event.TransformationAppliedData{
		Changes: len(res.ChangeResults),
		Undo:    undo,
		Redo:    !undo,
	})
}
