package change

import "fmt"

// Result is the outcome of applying one Change: the mapping it induced and the
// change that undoes it. ReverseChange is expressed against the model state
// right after the change was applied.
type Result struct {
	Mapping       Mapping
	ReverseChange Change
}

func (r Result) String() string {
	return fmt.Sprintf("%v undo=%v", r.Mapping, r.ReverseChange)
}
