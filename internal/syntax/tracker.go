// Package syntax keeps an incrementally updated tree-sitter tree in step
// with the buffer and answers highlight queries against it.
package syntax

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/bethropolis/tideweave/internal/event"
	"github.com/bethropolis/tideweave/internal/logger"
	"github.com/bethropolis/tideweave/internal/types"
	sitter "github.com/smacker/go-tree-sitter"
)

// ErrNoLanguage is returned when a tracker is created without a grammar.
var ErrNoLanguage = errors.New("syntax: no language")

// Source provides the document bytes the tree is parsed from.
type Source interface {
	Bytes() []byte
}

// Span is a highlighted run on one line, in rune columns.
type Span struct {
	StartCol int
	EndCol   int
	Style    string
}

// Highlights maps line index to the spans on that line.
type Highlights map[int][]Span

// Tracker owns a parser and the latest tree for one document.
type Tracker struct {
	mu     sync.Mutex
	lang   *Language
	src    Source
	parser *sitter.Parser
	query  *sitter.Query
	tree   *sitter.Tree
}

// NewTracker creates a tracker and performs the initial parse.
func NewTracker(lang *Language, src Source) (*Tracker, error) {
	if lang == nil || lang.Grammar == nil {
		return nil, ErrNoLanguage
	}
	parser := sitter.NewParser()
	parser.SetLanguage(lang.Grammar)

	t := &Tracker{lang: lang, src: src, parser: parser}
	if len(lang.Highlights) > 0 {
		q, err := sitter.NewQuery(lang.Highlights, lang.Grammar)
		if err != nil {
			parser.Close()
			return nil, fmt.Errorf("syntax: %s highlight query: %w", lang.Name, err)
		}
		t.query = q
	}
	if err := t.Parse(context.Background()); err != nil {
		t.Close()
		return nil, err
	}
	return t, nil
}

// Language returns the tracked language.
func (t *Tracker) Language() *Language {
	return t.lang
}

// Parse discards the current tree and parses the source from scratch.
func (t *Tracker) Parse(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.reparse(ctx, nil)
}

// Edit records an edit on the current tree and reparses incrementally.
func (t *Tracker) Edit(ctx context.Context, edit types.EditInfo) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.tree == nil {
		return t.reparse(ctx, nil)
	}
	t.tree.Edit(edit.InputEdit())
	return t.reparse(ctx, t.tree)
}

func (t *Tracker) reparse(ctx context.Context, old *sitter.Tree) error {
	tree, err := t.parser.ParseCtx(ctx, old, t.src.Bytes())
	if err != nil {
		logger.Warnf("syntax: %s parse failed: %v", t.lang.Name, err)
		return fmt.Errorf("syntax: parse %s: %w", t.lang.Name, err)
	}
	if t.tree != nil {
		t.tree.Close()
	}
	t.tree = tree
	logger.DebugTagf("syntax", "reparsed %s (incremental=%t)", t.lang.Name, old != nil)
	return nil
}

// Subscribe keeps the tree current as the buffer changes.
func (t *Tracker) Subscribe(events *event.Manager) {
	events.Subscribe(event.TypeBufferModified, func(e event.Event) bool {
		data, ok := e.Data.(event.BufferModifiedData)
		if !ok {
			return false
		}
		if err := t.Edit(context.Background(), data.Edit); err != nil {
			logger.Errorf("syntax: %v", err)
		}
		return false
	})
	events.Subscribe(event.TypeBufferLoaded, func(event.Event) bool {
		if err := t.Parse(context.Background()); err != nil {
			logger.Errorf("syntax: %v", err)
		}
		return false
	})
}

// Tree returns a copy of the current tree, or nil. The caller closes it.
func (t *Tracker) Tree() *sitter.Tree {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.tree == nil {
		return nil
	}
	return t.tree.Copy()
}

// SExpr returns the tree in s-expression form.
func (t *Tracker) SExpr() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.tree == nil {
		return ""
	}
	return t.tree.RootNode().String()
}

// HasErrors reports whether the current tree contains error nodes.
func (t *Tracker) HasErrors() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.tree != nil && t.tree.RootNode().HasError()
}

// Highlights runs the highlight query over rows [startRow, endRow).
func (t *Tracker) Highlights(startRow, endRow int) Highlights {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make(Highlights)
	if t.tree == nil || t.query == nil || endRow <= startRow {
		return out
	}
	lines := bytes.Split(t.src.Bytes(), []byte("\n"))

	qc := sitter.NewQueryCursor()
	defer qc.Close()
	qc.SetPointRange(
		sitter.Point{Row: uint32(startRow)},
		sitter.Point{Row: uint32(endRow)},
	)
	qc.Exec(t.query, t.tree.RootNode())

	for {
		match, ok := qc.NextMatch()
		if !ok {
			break
		}
		for _, c := range match.Captures {
			style := styleName(t.query.CaptureNameForId(c.Index))
			start, end := c.Node.StartPoint(), c.Node.EndPoint()
			for row := int(start.Row); row <= int(end.Row); row++ {
				if row < startRow || row >= endRow || row >= len(lines) {
					continue
				}
				line := lines[row]
				from, to := 0, len(line)
				if row == int(start.Row) {
					from = int(start.Column)
				}
				if row == int(end.Row) {
					to = int(end.Column)
				}
				s, e := runeCol(line, from), runeCol(line, to)
				if e <= s {
					continue
				}
				out[row] = append(out[row], Span{StartCol: s, EndCol: e, Style: style})
			}
		}
	}
	return out
}

// Close releases the tree, query and parser.
func (t *Tracker) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.tree != nil {
		t.tree.Close()
		t.tree = nil
	}
	if t.query != nil {
		t.query.Close()
		t.query = nil
	}
	if t.parser != nil {
		t.parser.Close()
		t.parser = nil
	}
}

// styleName keeps the first segment of a dotted capture name.
func styleName(capture string) string {
	capture = strings.TrimPrefix(capture, "@")
	if i := strings.IndexByte(capture, '.'); i >= 0 {
		return capture[:i]
	}
	return capture
}

func runeCol(line []byte, byteCol int) int {
	byteCol = min(max(byteCol, 0), len(line))
	return utf8.RuneCount(line[:byteCol])
}
