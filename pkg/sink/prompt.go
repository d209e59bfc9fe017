package sink

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Ask prints question on out and reads one line from in. An empty answer
// lets the File sink pick a timestamped name.
func Ask(in *bufio.Reader, out io.Writer, question string) (string, error) {
	if _, err := fmt.Fprint(out, question); err != nil {
		return "", err
	}

	line, err := in.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
