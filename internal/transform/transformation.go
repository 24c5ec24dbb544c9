package transform

import (
	"fmt"
	"strings"

	"github.com/bethropolis/tideweave/internal/change"
	"github.com/bethropolis/tideweave/internal/logger"
	"github.com/bethropolis/tideweave/internal/types"
)

// Transformation is an immutable batch of changes with cursor targets.
type Transformation struct {
	changes      []change.Change
	trails       [][]mirror // per change, set only on reverse transformations
	head         *types.ModelOffset
	anchor       *types.ModelOffset
	keepLeftLock bool
}

// Option configures a Transformation.
type Option func(*Transformation)

// WithCursorHead moves the cursor head to offset once the changes are applied.
func WithCursorHead(offset types.ModelOffset) Option {
	return func(t *Transformation) { t.head = &offset }
}

// WithCursorAnchor sets the selection anchor. Without it the anchor follows the head.
func WithCursorAnchor(offset types.ModelOffset) Option {
	return func(t *Transformation) { t.anchor = &offset }
}

// WithKeepLeftLock leaves the cursor's left lock untouched.
func WithKeepLeftLock() Option {
	return WithLeftLock(true)
}

// WithLeftLock sets whether the left lock is kept.
func WithLeftLock(keep bool) Option {
	return func(t *Transformation) { t.keepLeftLock = keep }
}

// New creates a Transformation. The changes slice is copied.
func New(changes []change.Change, opts ...Option) *Transformation {
	t := &Transformation{changes: append([]change.Change(nil), changes...)}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Changes returns a copy of the changes, in application order.
func (t *Transformation) Changes() []change.Change {
	return append([]change.Change(nil), t.changes...)
}

// CursorHead returns the target head, if one is set.
func (t *Transformation) CursorHead() (types.ModelOffset, bool) {
	if t.head == nil {
		return 0, false
	}
	return *t.head, true
}

// CursorAnchor returns the target anchor, if one is set.
func (t *Transformation) CursorAnchor() (types.ModelOffset, bool) {
	if t.anchor == nil {
		return 0, false
	}
	return *t.anchor, true
}

func (t *Transformation) KeepLeftLock() bool {
	return t.keepLeftLock
}

func (t *Transformation) String() string {
	parts := make([]string, len(t.changes))
	for i, c := range t.changes {
		parts[i] = c.String()
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "[%s]", strings.Join(parts, ", "))
	if t.head != nil {
		fmt.Fprintf(&sb, " head=%v", *t.head)
	}
	if t.anchor != nil {
		fmt.Fprintf(&sb, " anchor=%v", *t.anchor)
	}
	if t.keepLeftLock {
		sb.WriteString(" keep-lock")
	}
	return sb.String()
}

// Result is the outcome of Apply. ChangeResults[i] belongs to Changes()[i];
// Reverse undoes the transformation when applied right after it.
type Result struct {
	Transformation *Transformation
	ChangeResults  []change.Result
	Reverse        *Transformation
}

// Apply applies the transformation to s. On error the changes applied so far
// stay applied and the cursor is left where it was.
func (t *Transformation) Apply(s Services) (*Result, error) {
	logger.DebugTagf("transform", "applying %v", t)

	captured, err := captureCursor(s)
	if err != nil {
		return nil, err
	}

	results, err := applyChanges(s.Model, t.changes, t.trails)
	if err != nil {
		return nil, err
	}

	reverseChanges, trails := buildReverse(results)

	if captured.present {
		if err := t.rebindCursor(s); err != nil {
			return nil, err
		}
	}

	var opts []Option
	if captured.present {
		opts = append(opts, WithCursorHead(captured.head), WithCursorAnchor(captured.anchor))
	}
	opts = append(opts, WithLeftLock(t.keepLeftLock))

	reverse := New(reverseChanges, opts...)
	reverse.trails = trails
	res := &Result{
		Transformation: t,
		ChangeResults:  results,
		Reverse:        reverse,
	}
	logger.DebugTagf("transform", "applied %d change(s), reverse %v", len(results), res.Reverse)
	return res, nil
}
