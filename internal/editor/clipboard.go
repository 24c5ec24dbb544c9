// internal/editor/clipboard.go
package editor

import (
	"sync"

	"github.com/atotto/clipboard"

	"github.com/bethropolis/tideweave/internal/logger"
)

// Clipboard stores text for Copy, Cut and Paste.
type Clipboard interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

// register is an in-process clipboard.
type register struct {
	mu   sync.Mutex
	text string
}

func (r *register) ReadAll() (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.text, nil
}

func (r *register) WriteAll(text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.text = text
	return nil
}

// systemClipboard writes through to the OS clipboard and keeps a register
// copy for when the OS clipboard fails.
type systemClipboard struct {
	fallback register
}

func (s *systemClipboard) ReadAll() (string, error) {
	text, err := clipboard.ReadAll()
	if err != nil {
		logger.Warnf("Clipboard: system read failed, using internal register: %v", err)
		return s.fallback.ReadAll()
	}
	return text, nil
}

func (s *systemClipboard) WriteAll(text string) error {
	_ = s.fallback.WriteAll(text)
	if err := clipboard.WriteAll(text); err != nil {
		logger.Warnf("Clipboard: system write failed, kept in internal register: %v", err)
	}
	return nil
}

// NewClipboard returns the system clipboard when requested and supported on
// this platform, and an internal register otherwise.
func NewClipboard(system bool) Clipboard {
	if system && !clipboard.Unsupported {
		return &systemClipboard{}
	}
	return &register{}
}

// Copy puts the selected text on the clipboard. It reports false when nothing is selected.
func (e *Editor) Copy() (bool, error) {
	if !e.cursor.Cursor().HasSelection() {
		return false, nil
	}
	text, err := e.SelectedText()
	if err != nil {
		return false, err
	}
	if err := e.clip.WriteAll(text); err != nil {
		return false, err
	}
	logger.Debugf("Editor: copied %d bytes", len(text))
	return true, nil
}

// Cut copies the selection and deletes it.
func (e *Editor) Cut() (bool, error) {
	ok, err := e.Copy()
	if !ok || err != nil {
		return ok, err
	}
	return e.deleteSelection()
}

// Paste replaces the selection with the clipboard text.
func (e *Editor) Paste() (bool, error) {
	text, err := e.clip.ReadAll()
	if err != nil {
		return false, err
	}
	if text == "" {
		return false, nil
	}
	if err := e.InsertText(text); err != nil {
		return false, err
	}
	return true, nil
}
