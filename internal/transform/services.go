package transform

import (
	"github.com/bethropolis/tideweave/internal/change"
	"github.com/bethropolis/tideweave/internal/types"
)

// Model applies changes and reports the number of addressable offsets.
type Model interface {
	ApplyChange(c change.Change) (change.Result, error)
	RootSize() int
}

// Cursor is the single document cursor, in render coordinates.
type Cursor interface {
	HasCursor() bool
	Cursor() types.Cursor
	SetCursor(anchor, head types.RenderOffset)
	SetLeftLock(x int)
}

// Render converts between render and model offsets.
type Render interface {
	ConvertOffsetToModelOffset(offset types.RenderOffset) (types.ModelOffset, error)
	ConvertModelOffsetToOffset(offset types.ModelOffset) (types.RenderOffset, error)
}

// Layout resolves render offsets to laid-out lines.
type Layout interface {
	ResolvePosition(offset types.RenderOffset) (types.PositionResolution, error)
}

// Services are the collaborators a Transformation is applied against.
type Services struct {
	Model  Model
	Cursor Cursor
	Render Render
	Layout Layout
}
