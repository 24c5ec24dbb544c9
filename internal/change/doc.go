// Package change defines the atomic edits a model accepts and the mappings
// those edits induce.
//
// A Change is data, not an action: applying one is the model's job. What a
// change can do on its own is re-target itself through a Mapping, producing
// an equivalent change whose offsets are valid after the mapping's edit.
//
// The variant set is closed (Insert, Delete, Replace); code that applies
// changes switches on the concrete type.
package change
