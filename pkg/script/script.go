// Package script reads editor events from a plain text file, one per line:
//
//	press 10 10
//	move 12 14
//	release 15 20
//	next
//	undo
//	exit drawing
//
// Blank lines and lines starting with # are skipped.
package script

import (
	"bufio"
	"fmt"
	"image"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/afero"

	"urpaint/pkg/editor"
)

func Load(fs afero.Fs, path string) ([]editor.Event, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()

	return Parse(f)
}

func Parse(r io.Reader) ([]editor.Event, error) {
	var events []editor.Event

	sc := bufio.NewScanner(r)
	for n := 1; sc.Scan(); n++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		ev, err := ParseLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", n, err)
		}
		events = append(events, ev)
	}

	return events, sc.Err()
}

func ParseLine(line string) (editor.Event, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return editor.Event{}, fmt.Errorf("empty command")
	}

	switch cmd := strings.ToLower(fields[0]); cmd {
	case "press", "move", "release":
		p, err := point(fields[1:])
		if err != nil {
			return editor.Event{}, fmt.Errorf("%s: %w", cmd, err)
		}
		kind := map[string]editor.Kind{"press": editor.Press, "move": editor.Move, "release": editor.Release}[cmd]
		return editor.Event{Kind: kind, Point: p}, nil
	case "next", "color":
		return editor.NextColor(), nil
	case "undo":
		return editor.UndoLast(), nil
	case "exit", "quit":
		return editor.ExitAs(strings.Join(fields[1:], " ")), nil
	default:
		return editor.Event{}, fmt.Errorf("unknown command %q", fields[0])
	}
}

func point(args []string) (image.Point, error) {
	if len(args) != 2 {
		return image.Point{}, fmt.Errorf("want x y, got %d values", len(args))
	}
	x, err := strconv.Atoi(args[0])
	if err != nil {
		return image.Point{}, err
	}
	y, err := strconv.Atoi(args[1])
	if err != nil {
		return image.Point{}, err
	}
	return image.Pt(x, y), nil
}
