package editor

import (
	"fmt"
	"image"
)

type Kind int

const (
	Press Kind = iota
	Move
	Release
	SecondaryPress
	Undo
	Exit
)

var kindNames = map[Kind]string{
	Press:          "press",
	Move:           "move",
	Release:        "release",
	SecondaryPress: "secondary-press",
	Undo:           "undo",
	Exit:           "exit",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Event is one input for the editor. Point is used by pointer events, Name
// by Exit as the name to store the picture under.
type Event struct {
	Kind  Kind
	Point image.Point
	Name  string
}

func (e Event) String() string {
	switch e.Kind {
	case Press, Move, Release:
		return fmt.Sprintf("%s %d %d", e.Kind, e.Point.X, e.Point.Y)
	case Exit:
		if e.Name != "" {
			return fmt.Sprintf("%s %s", e.Kind, e.Name)
		}
	}
	return e.Kind.String()
}

func PressAt(x, y int) Event {
	return Event{Kind: Press, Point: image.Pt(x, y)}
}

func MoveTo(x, y int) Event {
	return Event{Kind: Move, Point: image.Pt(x, y)}
}

func ReleaseAt(x, y int) Event {
	return Event{Kind: Release, Point: image.Pt(x, y)}
}

func NextColor() Event {
	return Event{Kind: SecondaryPress}
}

func UndoLast() Event {
	return Event{Kind: Undo}
}

func ExitAs(name string) Event {
	return Event{Kind: Exit, Name: name}
}

// Stroke expands a gesture through pts into press, moves and release.
func Stroke(pts ...image.Point) []Event {
	if len(pts) == 0 {
		return nil
	}
	last := len(pts) - 1
	events := []Event{{Kind: Press, Point: pts[0]}}
	if last > 0 {
		for _, p := range pts[1:last] {
			events = append(events, Event{Kind: Move, Point: p})
		}
	}
	return append(events, Event{Kind: Release, Point: pts[last]})
}
