package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// LineChange is one changed line of an annotated file.
type LineChange struct {
	Text string
	Line int
	Op   diffmatchpatch.Operation
}

// LineDiff compares before and after line by line. Line numbers count from 1
// in before for deletions and in after for insertions.
func LineDiff(before, after string) []LineChange {
	dmp := diffmatchpatch.New()

	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var (
		changes []LineChange
		oldLine = 1
		newLine = 1
	)

	for _, d := range diffs {
		for _, text := range splitLines(d.Text) {
			switch d.Type {
			case diffmatchpatch.DiffDelete:
				changes = append(changes, LineChange{Op: d.Type, Line: oldLine, Text: text})
				oldLine++
			case diffmatchpatch.DiffInsert:
				changes = append(changes, LineChange{Op: d.Type, Line: newLine, Text: text})
				newLine++
			case diffmatchpatch.DiffEqual:
				oldLine++
				newLine++
			}
		}
	}

	return changes
}

// WriteDiff prints the changed lines of path as -/+ pairs.
func WriteDiff(w io.Writer, path string, before, after []byte) {
	changes := LineDiff(string(before), string(after))

	color.New(color.Bold).Fprintf(w, "--- %s\n+++ %s (annotated)\n", path, path)

	if len(changes) == 0 {
		fmt.Fprintln(w, "  no changes")

		return
	}

	removed := color.New(color.FgRed)
	added := color.New(color.FgGreen)

	for _, c := range changes {
		switch c.Op {
		case diffmatchpatch.DiffDelete:
			removed.Fprintf(w, "-%4d %s\n", c.Line, c.Text)
		case diffmatchpatch.DiffInsert:
			added.Fprintf(w, "+%4d %s\n", c.Line, c.Text)
		case diffmatchpatch.DiffEqual:
		}
	}
}

// splitLines splits diff text into lines without their terminators.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}

	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}
