// Package prefix asks the operator for the identifier prefix and normalizes it.
package prefix

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/Sumatoshi-tech/testidgen/pkg/naming"
)

// Question is the prompt shown before every run.
const Question = "Enter a prefix for test IDs (leave empty for none)"

// Sanitize lowercases raw, collapses every run of other characters into one
// hyphen and enforces a trailing hyphen. Input with no letters or digits
// yields "", meaning no prefix.
func Sanitize(raw string) string {
	out := naming.Kebabize(strings.TrimSpace(raw))
	if strings.Trim(out, "-") == "" {
		return ""
	}

	if !strings.HasSuffix(out, "-") {
		out += "-"
	}

	return out
}

// Prompter reads the prefix from an interactive stream.
type Prompter struct {
	reader *bufio.Reader
	out    io.Writer
}

// NewPrompter creates a prompter reading from in and writing the question to out.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		reader: bufio.NewReader(in),
		out:    out,
	}
}

type answer struct {
	err  error
	line string
}

// Ask prints the question and waits for one line. The read happens on its own
// goroutine so a cancelled ctx ends the wait. End of input counts as an empty
// answer.
func (p *Prompter) Ask(ctx context.Context) (string, error) {
	color.New(color.FgCyan).Fprintf(p.out, "%s: ", Question)

	done := make(chan answer, 1)

	go func() {
		line, err := p.reader.ReadString('\n')
		if errors.Is(err, io.EOF) {
			err = nil
		}

		done <- answer{line: line, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", fmt.Errorf("prefix prompt: %w", ctx.Err())
	case ans := <-done:
		if ans.err != nil {
			return "", fmt.Errorf("read prefix: %w", ans.err)
		}

		return Sanitize(ans.line), nil
	}
}
