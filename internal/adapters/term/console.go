// Package term implements ports.Console over a terminal's line I/O.
package term

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/santikzz/pixellink/internal/domain"
)

// Console reads lines from an input stream and writes lines to an output
// stream. The zero prompt discipline matches a chat session: the prompt is
// printed without a newline and input is echoed by the terminal itself.
type Console struct {
	in  *bufio.Reader
	out io.Writer
}

// New creates a console over the given streams.
func New(in io.Reader, out io.Writer) *Console {
	return &Console{in: bufio.NewReader(in), out: out}
}

// Stdio returns a console over the process's stdin and stdout.
func Stdio() *Console {
	return New(os.Stdin, os.Stdout)
}

// ReadLine prints the prompt and blocks until a full line arrives.
// The trailing newline is stripped. End of input reports
// domain.ErrConsoleClosed; a line already buffered when the stream ends is
// still delivered first.
func (c *Console) ReadLine(prompt string) (string, error) {
	if prompt != "" {
		if _, err := fmt.Fprint(c.out, prompt); err != nil {
			return "", fmt.Errorf("write prompt: %w", err)
		}
	}

	line, err := c.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			if line != "" {
				return trimEOL(line), nil
			}
			return "", domain.ErrConsoleClosed
		}
		return "", fmt.Errorf("read line: %w", err)
	}
	return trimEOL(line), nil
}

// WriteLine displays one line of output.
func (c *Console) WriteLine(line string) error {
	if _, err := fmt.Fprintln(c.out, line); err != nil {
		return fmt.Errorf("write line: %w", err)
	}
	return nil
}

func trimEOL(s string) string {
	for len(s) > 0 && (s[len(s)-1] == '\n' || s[len(s)-1] == '\r') {
		s = s[:len(s)-1]
	}
	return s
}
