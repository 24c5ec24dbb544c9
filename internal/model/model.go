// Package model is the document model: it validates and applies changes to a
// text buffer and reports the mapping and reverse change of each.
package model

import (
	"fmt"
	"unicode/utf8"

	"github.com/bethropolis/tideweave/internal/buffer"
	"github.com/bethropolis/tideweave/internal/change"
	"github.com/bethropolis/tideweave/internal/event"
	"github.com/bethropolis/tideweave/internal/logger"
	"github.com/bethropolis/tideweave/internal/types"
)

// Service owns a buffer and applies changes to it.
type Service struct {
	buf      buffer.Buffer
	events   *event.Manager
	revision uint64
}

// New creates a model over buf. events may be nil.
func New(buf buffer.Buffer, events *event.Manager) *Service {
	return &Service{buf: buf, events: events}
}

// NewFromString creates a model over an in-memory buffer holding text.
func NewFromString(text string) *Service {
	return New(buffer.NewSliceBufferFromString(text), nil)
}

// SetEventManager sets the manager BufferModified events are dispatched to.
func (s *Service) SetEventManager(m *event.Manager) {
	s.events = m
}

// Buffer returns the underlying buffer.
func (s *Service) Buffer() buffer.Buffer {
	return s.buf
}

// RootSize is the number of addressable offsets: every caret position from
// the start of the text to its end.
func (s *Service) RootSize() int {
	return s.buf.RuneCount() + 1
}

// Revision increases by one for every successfully applied change.
func (s *Service) Revision() uint64 {
	return s.revision
}

// Text returns the whole document.
func (s *Service) Text() string {
	return string(s.buf.Bytes())
}

// TextRange returns the text in [from, to).
func (s *Service) TextRange(from, to types.ModelOffset) (string, error) {
	return s.buf.Text(int(from), int(to))
}

// Load replaces the document with the contents of filePath.
func (s *Service) Load(filePath string) error {
	if err := s.buf.Load(filePath); err != nil {
		return err
	}
	s.revision++
	if s.events != nil {
		s.events.Dispatch(event.TypeBufferLoaded, event.BufferLoadedData{FilePath: filePath})
	}
	return nil
}

// Save writes the document to filePath, or to the path it was loaded from.
func (s *Service) Save(filePath string) error {
	if err := s.buf.Save(filePath); err != nil {
		return err
	}
	if s.events != nil {
		s.events.Dispatch(event.TypeBufferSaved, event.BufferSavedData{FilePath: s.buf.FilePath()})
	}
	return nil
}

// ApplyChange applies c and returns the mapping it induced together with the
// change that undoes it. Errors wrap change.ErrInvalidChange.
func (s *Service) ApplyChange(c change.Change) (change.Result, error) {
	var (
		res  change.Result
		edit types.EditInfo
		err  error
	)
	switch c := c.(type) {
	case change.Insert:
		res, edit, err = s.insert(c)
	case change.Delete:
		res, edit, err = s.delete(c)
	case change.Replace:
		res, edit, err = s.replace(c)
	default:
		err = fmt.Errorf("unsupported change %T", c)
	}
	if err != nil {
		return change.Result{}, fmt.Errorf("%w: %v: %w", change.ErrInvalidChange, c, err)
	}

	s.revision++
	logger.DebugTagf("model", "applied %v (rev %d, size %d)", c, s.revision, s.RootSize())
	if s.events != nil && !edit.IsEmpty() {
		s.events.Dispatch(event.TypeBufferModified, event.BufferModifiedData{Edit: edit, Revision: s.revision})
	}
	return res, nil
}

func (s *Service) insert(c change.Insert) (change.Result, types.EditInfo, error) {
	edit, err := s.buf.Insert(int(c.At), []byte(c.Text))
	if err != nil {
		return change.Result{}, edit, err
	}
	n := utf8.RuneCountInString(c.Text)
	return change.Result{
		Mapping:       change.NewMapping(change.Span{Start: c.At, OldSize: 0, NewSize: n}),
		ReverseChange: change.Delete{From: c.At, To: c.At + types.ModelOffset(n)},
	}, edit, nil
}

func (s *Service) delete(c change.Delete) (change.Result, types.EditInfo, error) {
	deleted, err := s.buf.Text(int(c.From), int(c.To))
	if err != nil {
		return change.Result{}, types.EditInfo{}, err
	}
	edit, err := s.buf.Delete(int(c.From), int(c.To))
	if err != nil {
		return change.Result{}, edit, err
	}
	return change.Result{
		Mapping:       change.NewMapping(change.Span{Start: c.From, OldSize: int(c.To - c.From), NewSize: 0}),
		ReverseChange: change.Insert{At: c.From, Text: deleted},
	}, edit, nil
}

func (s *Service) replace(c change.Replace) (change.Result, types.EditInfo, error) {
	old, err := s.buf.Text(int(c.From), int(c.To))
	if err != nil {
		return change.Result{}, types.EditInfo{}, err
	}
	del, err := s.buf.Delete(int(c.From), int(c.To))
	if err != nil {
		return change.Result{}, del, err
	}
	ins, err := s.buf.Insert(int(c.From), []byte(c.Text))
	if err != nil {
		return change.Result{}, del, err
	}
	n := utf8.RuneCountInString(c.Text)
	edit := types.EditInfo{
		StartIndex:     del.StartIndex,
		OldEndIndex:    del.OldEndIndex,
		NewEndIndex:    ins.NewEndIndex,
		StartPosition:  del.StartPosition,
		OldEndPosition: del.OldEndPosition,
		NewEndPosition: ins.NewEndPosition,
	}
	return change.Result{
		Mapping:       change.NewMapping(change.Span{Start: c.From, OldSize: int(c.To - c.From), NewSize: n}),
		ReverseChange: change.Replace{From: c.From, To: c.From + types.ModelOffset(n), Text: old},
	}, edit, nil
}
