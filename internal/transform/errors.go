package transform

import "errors"

// ErrNoBoundingBox is returned when the layout cannot produce a caret box at
// the cursor head, so no left lock can be derived.
var ErrNoBoundingBox = errors.New("no bounding box at cursor head")
