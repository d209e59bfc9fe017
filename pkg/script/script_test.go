package script

import (
	"strings"
	"testing"

	"github.com/spf13/afero"
	"go.viam.com/test"

	"urpaint/pkg/editor"
)

const sample = `
# red dot, then a green line
press 10 10
release 10 10
next
press 50 50
move 55 52
RELEASE 60 54

undo
exit my drawing
`

func TestParse(t *testing.T) {
	events, err := Parse(strings.NewReader(sample))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, events, test.ShouldResemble, []editor.Event{
		editor.PressAt(10, 10),
		editor.ReleaseAt(10, 10),
		editor.NextColor(),
		editor.PressAt(50, 50),
		editor.MoveTo(55, 52),
		editor.ReleaseAt(60, 54),
		editor.UndoLast(),
		editor.ExitAs("my drawing"),
	})
}

func TestParseErrors(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want string
	}{
		{"press 1", "line 1"},
		{"undo\nmove a 2", "line 2"},
		{"paint 1 2", "unknown command"},
		{"release 1 2 3", "want x y"},
	} {
		_, err := Parse(strings.NewReader(tc.in))
		test.That(t, err, test.ShouldNotBeNil)
		test.That(t, err.Error(), test.ShouldContainSubstring, tc.want)
	}
}

func TestLoad(t *testing.T) {
	fs := afero.NewMemMapFs()
	test.That(t, afero.WriteFile(fs, "s.txt", []byte("next\nquit\n"), 0o644), test.ShouldBeNil)

	events, err := Load(fs, "s.txt")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, events, test.ShouldResemble, []editor.Event{editor.NextColor(), editor.ExitAs("")})

	_, err = Load(fs, "missing.txt")
	test.That(t, err, test.ShouldNotBeNil)
}
