package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// prompter reads answers line by line. Prompt text is only shown when input
// comes from a terminal, so piped answers produce clean output.
type prompter struct {
	in          *bufio.Reader
	out         io.Writer
	interactive bool
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{
		in:          bufio.NewReader(in),
		out:         out,
		interactive: isTerminal(in),
	}
}

func (p *prompter) ask(label string) (string, error) {
	if p.interactive {
		fmt.Fprint(p.out, label)
	}
	line, err := p.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read input: %w", err)
	}
	line = strings.TrimSpace(line)
	if line == "" && errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read input: no answer for %q", strings.TrimSpace(label))
	}
	return line, nil
}

func isTerminal(r io.Reader) bool {
	file, ok := r.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
