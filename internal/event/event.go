// internal/event/event.go
package event

import "github.com/bethropolis/tideweave/internal/types"

// Type identifies the kind of event.
type Type int

const (
	TypeUnknown Type = iota

	TypeBufferModified        // One change applied to the model
	TypeBufferLoaded          // A file was loaded into the buffer
	TypeBufferSaved           // The buffer was written to disk
	TypeCursorMoved           // Cursor anchor/head changed
	TypeTransformationApplied // A transformation finished applying
	TypeHistoryChanged        // Undo/redo stacks changed
)

func (t Type) String() string {
	switch t {
	case TypeBufferModified:
		return "BufferModified"
	case TypeBufferLoaded:
		return "BufferLoaded"
	case TypeBufferSaved:
		return "BufferSaved"
	case TypeCursorMoved:
		return "CursorMoved"
	case TypeTransformationApplied:
		return "TransformationApplied"
	case TypeHistoryChanged:
		return "HistoryChanged"
	default:
		return "Unknown"
	}
}

// Event is the structure passed through the event bus.
type Event struct {
	Type Type
	Data any
}

// BufferModifiedData carries the tree-sitter edit for one applied change.
type BufferModifiedData struct {
	Edit     types.EditInfo
	Revision uint64
}

// BufferLoadedData contains info about the loaded buffer.
type BufferLoadedData struct {
	FilePath string
}

// BufferSavedData contains info about the saved buffer.
type BufferSavedData struct {
	FilePath string
}

// CursorMovedData contains the new cursor.
type CursorMovedData struct {
	Cursor types.Cursor
}

// TransformationAppliedData summarizes an applied transformation.
type TransformationAppliedData struct {
	Changes int
	Undo    bool
	Redo    bool
}

// HistoryChangedData reports the stack depths after a history operation.
type HistoryChangedData struct {
	UndoDepth int
	RedoDepth int
}
