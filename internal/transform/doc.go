// Package transform applies batches of changes to a document model.
//
// A Transformation is an ordered list of changes plus optional cursor targets
// in model coordinates. Applying it runs the changes one at a time, folding
// the mapping of each applied change into every change still waiting, builds
// the Transformation that undoes the whole batch, and moves the cursor.
//
// The package keeps no state between calls. Callers that want undo keep the
// returned reverse Transformation themselves (see package history) and must
// not apply two transformations to the same services concurrently.
package transform
