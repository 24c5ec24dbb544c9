package transform

import "github.com/bethropolis/tideweave/internal/change"

// mirror records a change as it was before being mapped through mapping.
type mirror struct {
	mapping change.Mapping
	before  change.Change
}

// buildReverse returns the changes that undo results, in the order they must
// be applied, plus the trail of each.
//
// Each reverse change is valid against the model right after its own forward
// change. The reverse changes run one after another against the model after
// all forward changes, so reverse change i is first carried through the
// mappings of forward changes i+1..n. When the reverse transformation runs,
// reverse changes n..i+1 undo exactly those mappings and the trail lets the
// loop step back through them without loss.
func buildReverse(results []change.Result) ([]change.Change, [][]mirror) {
	reverse := make([]change.Change, 0, len(results))
	trails := make([][]mirror, 0, len(results))
	for i := len(results) - 1; i >= 0; i-- {
		c := results[i].ReverseChange
		var trail []mirror
		for _, later := range results[i+1:] {
			trail = append(trail, mirror{mapping: later.Mapping, before: c})
			c = c.Map(later.Mapping)
		}
		reverse = append(reverse, c)
		trails = append(trails, trail)
	}
	return reverse, trails
}
