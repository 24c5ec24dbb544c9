package transform

import (
	"fmt"

	"github.com/bethropolis/tideweave/internal/logger"
	"github.com/bethropolis/tideweave/internal/types"
)

type capturedCursor struct {
	present bool
	head    types.ModelOffset
	anchor  types.ModelOffset
}

// captureCursor records the cursor in model coordinates before any change runs.
func captureCursor(s Services) (capturedCursor, error) {
	if !s.Cursor.HasCursor() {
		return capturedCursor{}, nil
	}
	cur := s.Cursor.Cursor()
	head, err := s.Render.ConvertOffsetToModelOffset(cur.Head)
	if err != nil {
		return capturedCursor{}, fmt.Errorf("capture cursor head: %w", err)
	}
	anchor, err := s.Render.ConvertOffsetToModelOffset(cur.Anchor)
	if err != nil {
		return capturedCursor{}, fmt.Errorf("capture cursor anchor: %w", err)
	}
	return capturedCursor{present: true, head: head, anchor: anchor}, nil
}

func bound(offset types.ModelOffset, rootSize int) types.ModelOffset {
	return max(0, min(types.ModelOffset(rootSize-1), offset))
}

// rebindCursor moves the cursor to the transformation's targets and, unless
// the lock is kept, derives a new left lock from the head.
func (t *Transformation) rebindCursor(s Services) error {
	if t.head != nil {
		size := s.Model.RootSize()
		head, err := s.Render.ConvertModelOffsetToOffset(bound(*t.head, size))
		if err != nil {
			return fmt.Errorf("rebind cursor head: %w", err)
		}
		anchor := head
		if t.anchor != nil {
			anchor, err = s.Render.ConvertModelOffsetToOffset(bound(*t.anchor, size))
			if err != nil {
				return fmt.Errorf("rebind cursor anchor: %w", err)
			}
		}
		s.Cursor.SetCursor(anchor, head)
	}

	if t.keepLeftLock {
		return nil
	}
	head := s.Cursor.Cursor().Head
	res, err := s.Layout.ResolvePosition(head)
	if err != nil {
		return fmt.Errorf("resolve left lock: %w", err)
	}
	pos := res.AtLineDepth()
	boxes := pos.Node.ResolveBoundingBoxes(pos.Offset, pos.Offset)
	if len(boxes) == 0 {
		return fmt.Errorf("%w: %v", ErrNoBoundingBox, head)
	}
	s.Cursor.SetLeftLock(boxes[0].Left)
	logger.DebugTagf("transform", "left lock %d at %v", boxes[0].Left, head)
	return nil
}
