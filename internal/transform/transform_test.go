package transform

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/tideweave/internal/change"
	"github.com/bethropolis/tideweave/internal/cursor"
	"github.com/bethropolis/tideweave/internal/layout"
	"github.com/bethropolis/tideweave/internal/model"
	"github.com/bethropolis/tideweave/internal/render"
	"github.com/bethropolis/tideweave/internal/types"
)

// spyCursor records calls made to the cursor collaborator.
type spyCursor struct {
	*cursor.Manager
	cursorCalls int
	setCalls    int
	lockCalls   int
}

func (c *spyCursor) Cursor() types.Cursor {
	c.cursorCalls++
	return c.Manager.Cursor()
}

func (c *spyCursor) SetCursor(anchor, head types.RenderOffset) {
	c.setCalls++
	c.Manager.SetCursor(anchor, head)
}

func (c *spyCursor) SetLeftLock(x int) {
	c.lockCalls++
	c.Manager.SetLeftLock(x)
}

type env struct {
	model  *model.Service
	render *render.Service
	layout *layout.Service
	cursor *spyCursor
}

func newEnv(text string) *env {
	m := model.NewFromString(text)
	r := render.New(m)
	return &env{
		model:  m,
		render: r,
		layout: layout.New(r, layout.Options{TabWidth: 4}),
		cursor: &spyCursor{Manager: cursor.NewManager(nil)},
	}
}

func (e *env) services() Services {
	return Services{Model: e.model, Cursor: e.cursor, Render: e.render, Layout: e.layout}
}

func (e *env) apply(t *testing.T, tr *Transformation) *Result {
	t.Helper()
	res, err := tr.Apply(e.services())
	require.NoError(t, err)
	return res
}

func TestNewCopiesChanges(t *testing.T) {
	changes := []change.Change{change.Insert{At: 0, Text: "a"}}
	tr := New(changes)
	changes[0] = change.Delete{From: 0, To: 1}
	assert.Equal(t, change.Insert{At: 0, Text: "a"}, tr.Changes()[0])

	_, ok := tr.CursorHead()
	assert.False(t, ok)
	_, ok = tr.CursorAnchor()
	assert.False(t, ok)
	assert.False(t, tr.KeepLeftLock())

	tr = New(nil, WithCursorHead(3), WithCursorAnchor(1), WithKeepLeftLock())
	head, ok := tr.CursorHead()
	assert.True(t, ok)
	assert.Equal(t, types.ModelOffset(3), head)
	anchor, _ := tr.CursorAnchor()
	assert.Equal(t, types.ModelOffset(1), anchor)
	assert.True(t, tr.KeepLeftLock())
	assert.Equal(t, "[] head=m3 anchor=m1 keep-lock", tr.String())
}

func TestConcreteInsertScenario(t *testing.T) {
	e := newEnv("012345678")
	require.Equal(t, 10, e.model.RootSize())
	e.cursor.Place(3)

	tr := New([]change.Change{change.Insert{At: 3, Text: "ab"}}, WithCursorHead(5))
	res := e.apply(t, tr)

	require.Len(t, res.ChangeResults, 1)
	mapping := res.ChangeResults[0].Mapping
	assert.Equal(t, types.ModelOffset(2), mapping.Map(2, change.AssocRight))
	assert.Equal(t, types.ModelOffset(5), mapping.Map(3, change.AssocRight))
	assert.Equal(t, types.ModelOffset(9), mapping.Map(7, change.AssocLeft))
	assert.Equal(t, 12, e.model.RootSize())

	assert.Equal(t, types.Cursor{Anchor: 5, Head: 5}, e.cursor.Manager.Cursor())

	assert.Equal(t, []change.Change{change.Delete{From: 3, To: 5}}, res.Reverse.Changes())
	head, ok := res.Reverse.CursorHead()
	require.True(t, ok)
	assert.Equal(t, types.ModelOffset(3), head)
	assert.Same(t, tr, res.Transformation)
}

func TestOrderPreservation(t *testing.T) {
	e := newEnv("abcdef")
	changes := []change.Change{
		change.Insert{At: 0, Text: "XX"},
		change.Delete{From: 2, To: 4},
		change.Replace{From: 5, To: 6, Text: "Z"},
	}
	res := e.apply(t, New(changes))

	require.Len(t, res.ChangeResults, len(changes))
	assert.Equal(t, change.Delete{From: 0, To: 2}, res.ChangeResults[0].ReverseChange)
	assert.Equal(t, change.Insert{At: 4, Text: "cd"}, res.ChangeResults[1].ReverseChange)
	assert.Equal(t, change.Replace{From: 5, To: 6, Text: "f"}, res.ChangeResults[2].ReverseChange)
	assert.Equal(t, "XXabeZ", e.model.Text())
}

func TestReverseOrderingWithDependentOffsets(t *testing.T) {
	e := newEnv("0123456789")
	// Changes 2 and 3 are written against the original text and shift with change 1.
	changes := []change.Change{
		change.Insert{At: 2, Text: "abc"},
		change.Delete{From: 4, To: 6},
		change.Insert{At: 8, Text: "Z"},
	}
	res := e.apply(t, New(changes))
	assert.Equal(t, "01abc2367Z89", e.model.Text())

	rev := res.Reverse.Changes()
	require.Len(t, rev, 3)
	// Reverse of change 3 comes first and needs no re-targeting.
	assert.Equal(t, res.ChangeResults[2].ReverseChange, rev[0])
	assert.Equal(t, change.Delete{From: 9, To: 10}, rev[0])
	// Reverse of change 2 is carried past change 3.
	assert.Equal(t, change.Insert{At: 7, Text: "45"}, rev[1])
	// Reverse of change 1 is carried past changes 2 and 3.
	assert.Equal(t, change.Delete{From: 2, To: 5}, rev[2])

	e.apply(t, res.Reverse)
	assert.Equal(t, "0123456789", e.model.Text())
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		cursor  types.Cursor
		changes []change.Change
		opts    []Option
	}{
		{
			name:    "insert before cursor",
			text:    "hello world",
			cursor:  types.Cursor{Anchor: 6, Head: 6},
			changes: []change.Change{change.Insert{At: 0, Text: ">> "}},
			opts:    []Option{WithCursorHead(9)},
		},
		{
			name:   "selection replaced",
			text:   "one two three",
			cursor: types.Cursor{Anchor: 4, Head: 7},
			changes: []change.Change{
				change.Delete{From: 4, To: 7},
				change.Insert{At: 4, Text: "2"},
			},
			opts: []Option{WithCursorHead(5)},
		},
		{
			name:   "multi line edits",
			text:   "a\nbb\nccc",
			cursor: types.Cursor{Anchor: 8, Head: 3},
			changes: []change.Change{
				change.Replace{From: 0, To: 1, Text: "AAA\n"},
				change.Delete{From: 1, To: 5},
				change.Insert{At: 8, Text: "!"},
			},
			opts: []Option{WithCursorHead(0), WithCursorAnchor(4)},
		},
		{
			name:    "no cursor target",
			text:    "abc",
			cursor:  types.Cursor{Anchor: 1, Head: 2},
			changes: []change.Change{change.Insert{At: 3, Text: "def"}},
		},
		{
			name:   "overlapping deletes",
			text:   "abcdefghij",
			cursor: types.Cursor{Anchor: 10, Head: 10},
			changes: []change.Change{
				change.Delete{From: 2, To: 6},
				change.Delete{From: 4, To: 8},
				change.Insert{At: 3, Text: "xyz"},
			},
			opts: []Option{WithCursorHead(3)},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv(tt.text)
			e.cursor.SetCursor(tt.cursor.Anchor, tt.cursor.Head)

			res := e.apply(t, New(tt.changes, tt.opts...))
			require.Len(t, res.ChangeResults, len(tt.changes))

			undo := e.apply(t, res.Reverse)
			assert.Equal(t, tt.text, e.model.Text())
			assert.Equal(t, tt.cursor, e.cursor.Manager.Cursor())

			// The reverse of the reverse redoes the edit.
			e.apply(t, undo.Reverse)
			e2 := newEnv(tt.text)
			e2.cursor.SetCursor(tt.cursor.Anchor, tt.cursor.Head)
			e2.apply(t, New(tt.changes, tt.opts...))
			assert.Equal(t, e2.model.Text(), e.model.Text())
		})
	}
}

func TestAdjacentDeletesUndoInOrder(t *testing.T) {
	e := newEnv("abcd")
	e.cursor.Place(4)
	res := e.apply(t, New([]change.Change{
		change.Delete{From: 2, To: 3},
		change.Delete{From: 3, To: 4},
	}, WithCursorHead(2)))
	assert.Equal(t, "ab", e.model.Text())

	e.apply(t, res.Reverse)
	assert.Equal(t, "abcd", e.model.Text())
	assert.Equal(t, types.RenderOffset(4), e.cursor.Manager.Cursor().Head)
}

func TestReverseMappingInvertsForward(t *testing.T) {
	e := newEnv("abcdef")
	res := e.apply(t, New([]change.Change{change.Insert{At: 2, Text: "XYZ"}}))
	undo := e.apply(t, res.Reverse)

	forward := res.ChangeResults[0].Mapping
	back := undo.ChangeResults[0].Mapping
	for pos := types.ModelOffset(0); pos <= 9; pos++ {
		assert.Equal(t, forward.Reverse().Map(pos, change.AssocLeft), back.Map(pos, change.AssocLeft), "pos %d", pos)
	}
}

func TestCursorBounding(t *testing.T) {
	tests := []struct {
		name string
		head types.ModelOffset
		want types.RenderOffset
	}{
		{"past end", 50, 5},
		{"negative", -4, 0},
		{"last offset", 5, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv("abcde")
			e.cursor.Place(2)
			e.apply(t, New(nil, WithCursorHead(tt.head), WithCursorAnchor(tt.head)))
			assert.Equal(t, types.Cursor{Anchor: tt.want, Head: tt.want}, e.cursor.Manager.Cursor())
		})
	}
}

func TestCursorConvertsThroughRender(t *testing.T) {
	// Combining accent: model offsets 0..4, render offsets 0..3.
	e := newEnv("ae\u0301b")
	e.cursor.Place(3)

	res := e.apply(t, New([]change.Change{change.Insert{At: 0, Text: "x"}}, WithCursorHead(4)))
	assert.Equal(t, types.RenderOffset(3), e.cursor.Manager.Cursor().Head)

	head, _ := res.Reverse.CursorHead()
	assert.Equal(t, types.ModelOffset(4), head, "render offset 3 was model offset 4")
}

func TestLeftLock(t *testing.T) {
	t.Run("recomputed once", func(t *testing.T) {
		e := newEnv("ab\n\tcd")
		e.cursor.Place(0)
		e.apply(t, New(nil, WithCursorHead(5)))

		assert.Equal(t, 1, e.cursor.lockCalls)
		x, ok := e.cursor.LeftLock()
		require.True(t, ok)
		assert.Equal(t, 5, x, "tab then one cluster")
	})

	t.Run("kept", func(t *testing.T) {
		e := newEnv("ab\ncd")
		e.cursor.Place(0)
		e.cursor.Manager.SetLeftLock(9)
		e.apply(t, New([]change.Change{change.Insert{At: 0, Text: "x"}}, WithCursorHead(4), WithKeepLeftLock()))

		assert.Zero(t, e.cursor.lockCalls)
		x, _ := e.cursor.LeftLock()
		assert.Equal(t, 9, x)
	})

	t.Run("recomputed without head target", func(t *testing.T) {
		e := newEnv("abc")
		e.cursor.Place(2)
		e.apply(t, New([]change.Change{change.Insert{At: 0, Text: "xy"}}))

		assert.Equal(t, 1, e.cursor.lockCalls)
		assert.Zero(t, e.cursor.setCalls)
		x, _ := e.cursor.LeftLock()
		assert.Equal(t, 2, x)
	})

	t.Run("reverse keeps flag", func(t *testing.T) {
		e := newEnv("abc")
		e.cursor.Place(1)
		res := e.apply(t, New(nil, WithCursorHead(2), WithKeepLeftLock()))
		assert.True(t, res.Reverse.KeepLeftLock())
	})
}

func TestNoCursorPath(t *testing.T) {
	e := newEnv("abc")
	res := e.apply(t, New([]change.Change{change.Insert{At: 1, Text: "x"}}, WithCursorHead(2)))

	assert.Zero(t, e.cursor.cursorCalls)
	assert.Zero(t, e.cursor.setCalls)
	assert.Zero(t, e.cursor.lockCalls)
	assert.False(t, e.cursor.HasCursor())

	_, ok := res.Reverse.CursorHead()
	assert.False(t, ok)
	assert.Equal(t, "axbc", e.model.Text())
}

func TestFailureDoesNotRollBack(t *testing.T) {
	e := newEnv("abc")
	e.cursor.Place(1)
	changes := []change.Change{
		change.Insert{At: 0, Text: "x"},
		change.Delete{From: 2, To: 99},
		change.Insert{At: 0, Text: "never"},
	}
	_, err := New(changes, WithCursorHead(0)).Apply(e.services())
	require.Error(t, err)
	assert.ErrorIs(t, err, change.ErrInvalidChange)
	assert.Contains(t, err.Error(), "change 2 of 3")

	assert.Equal(t, "xabc", e.model.Text(), "first change stays applied")
	assert.Equal(t, types.Cursor{Anchor: 1, Head: 1}, e.cursor.Manager.Cursor())
	assert.Zero(t, e.cursor.lockCalls)
}

type emptyLine struct{}

func (emptyLine) ResolveBoundingBoxes(from, to int) []types.BoundingBox { return nil }

type degenerateLayout struct{}

func (degenerateLayout) AtLineDepth() types.LinePosition {
	return types.LinePosition{Node: emptyLine{}}
}

func (degenerateLayout) ResolvePosition(types.RenderOffset) (types.PositionResolution, error) {
	return degenerateLayout{}, nil
}

func TestNoBoundingBox(t *testing.T) {
	e := newEnv("abc")
	e.cursor.Place(0)
	s := e.services()
	s.Layout = degenerateLayout{}

	_, err := New(nil, WithCursorHead(1)).Apply(s)
	assert.True(t, errors.Is(err, ErrNoBoundingBox))
}

func TestUnresolvedCursorFails(t *testing.T) {
	e := newEnv("abc")
	e.cursor.Place(10) // beyond the text

	_, err := New([]change.Change{change.Insert{At: 0, Text: "x"}}).Apply(e.services())
	assert.ErrorIs(t, err, render.ErrUnresolvedOffset)
	assert.Equal(t, "abc", e.model.Text(), "cursor capture happens before any change")
}
