package window

import (
	"image"

	"urpaint/pkg/editor"
)

// Input is the state of mouse and keyboard during one frame.
type Input struct {
	Cursor       image.Point
	LeftDown     bool
	LeftPressed  bool
	LeftReleased bool
	RightPressed bool
	Undo         bool
	Quit         bool
}

// tracker turns per-frame input into editor events. Moves are reported only
// while the left button is held and the cursor actually moved.
type tracker struct {
	last    image.Point
	holding bool
}

func (t *tracker) events(in Input) []editor.Event {
	var out []editor.Event

	switch {
	case in.LeftPressed:
		out = append(out, editor.Event{Kind: editor.Press, Point: in.Cursor})
		t.holding = true
	case in.LeftReleased && t.holding:
		out = append(out, editor.Event{Kind: editor.Release, Point: in.Cursor})
		t.holding = false
	case in.LeftDown && t.holding && in.Cursor != t.last:
		out = append(out, editor.Event{Kind: editor.Move, Point: in.Cursor})
	}
	t.last = in.Cursor

	if in.RightPressed {
		out = append(out, editor.NextColor())
	}
	if in.Undo {
		out = append(out, editor.UndoLast())
	}
	if in.Quit {
		out = append(out, editor.ExitAs(""))
	}
	return out
}
