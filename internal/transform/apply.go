package transform

import (
	"fmt"

	"github.com/bethropolis/tideweave/internal/change"
)

// applyChanges applies changes in order. After each one, the changes still
// waiting are re-targeted through its mapping. trails may be nil; see retarget.
func applyChanges(m Model, changes []change.Change, trails [][]mirror) ([]change.Result, error) {
	queue := append([]change.Change(nil), changes...)
	pending := make([][]mirror, len(queue))
	for i := range trails {
		pending[i] = append([]mirror(nil), trails[i]...)
	}

	results := make([]change.Result, 0, len(queue))
	for i := range queue {
		res, err := m.ApplyChange(queue[i])
		if err != nil {
			return nil, fmt.Errorf("change %d of %d (%v): %w", i+1, len(queue), queue[i], err)
		}
		results = append(results, res)
		for j := i + 1; j < len(queue); j++ {
			queue[j], pending[j] = retarget(queue[j], pending[j], res.Mapping)
		}
	}
	return results, nil
}

// retarget maps c through m. When m undoes the last mapping c was carried
// through, the change c had before that mapping is restored instead, which
// keeps offsets that mapping collapsed.
func retarget(c change.Change, trail []mirror, m change.Mapping) (change.Change, []mirror) {
	if n := len(trail); n > 0 && m.Mirrors(trail[n-1].mapping) {
		return trail[n-1].before, trail[:n-1]
	}
	return c.Map(m), nil
}
