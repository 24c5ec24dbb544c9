package change

import (
	"fmt"
	"unicode/utf8"

	"github.com/bethropolis/tideweave/internal/types"
)

// Change is an atomic, model-targeted edit. The set of implementations is
// closed to this package.
type Change interface {
	// Map returns the equivalent change re-targeted to offsets valid after m's edit.
	Map(m Mapping) Change
	fmt.Stringer
	isChange()
}

// Insert inserts Text before the offset At.
type Insert struct {
	At   types.ModelOffset
	Text string
}

// Delete removes the offsets in [From, To).
type Delete struct {
	From types.ModelOffset
	To   types.ModelOffset
}

// Replace replaces the offsets in [From, To) with Text.
type Replace struct {
	From types.ModelOffset
	To   types.ModelOffset
	Text string
}

func (Insert) isChange()  {}
func (Delete) isChange()  {}
func (Replace) isChange() {}

// Map keeps text inserted at the same offset by an earlier change in front of this one.
func (c Insert) Map(m Mapping) Change {
	return Insert{At: m.Map(c.At, AssocRight), Text: c.Text}
}

// Map shrinks the range so content inserted on its edges is left alone.
func (c Delete) Map(m Mapping) Change {
	from, to := mapRange(m, c.From, c.To)
	return Delete{From: from, To: to}
}

// Map re-targets the replaced range the same way Delete does.
func (c Replace) Map(m Mapping) Change {
	from, to := mapRange(m, c.From, c.To)
	return Replace{From: from, To: to, Text: c.Text}
}

func mapRange(m Mapping, from, to types.ModelOffset) (types.ModelOffset, types.ModelOffset) {
	mf := m.Map(from, AssocRight)
	mt := m.Map(to, AssocLeft)
	if mt < mf {
		mt = mf
	}
	return mf, mt
}

// Len is the number of offsets the insert adds.
func (c Insert) Len() int {
	return utf8.RuneCountInString(c.Text)
}

// Len is the number of offsets the delete removes.
func (c Delete) Len() int {
	return int(c.To - c.From)
}

// Delta is the change in model size the replace causes.
func (c Replace) Delta() int {
	return utf8.RuneCountInString(c.Text) - int(c.To-c.From)
}

func (c Insert) String() string {
	return fmt.Sprintf("insert(%d, %q)", int(c.At), c.Text)
}

func (c Delete) String() string {
	return fmt.Sprintf("delete(%d..%d)", int(c.From), int(c.To))
}

func (c Replace) String() string {
	return fmt.Sprintf("replace(%d..%d, %q)", int(c.From), int(c.To), c.Text)
}

// MapAll maps every change through m, in order.
func MapAll(changes []Change, m Mapping) []Change {
	for i, c := range changes {
		changes[i] = c.Map(m)
	}
	return changes
}
