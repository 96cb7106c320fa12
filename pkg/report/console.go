// Package report renders run results for the operator: the console summary,
// line diffs of annotated files and the identifier manifest.
package report

import (
	"cmp"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/Sumatoshi-tech/testidgen/pkg/codemod"
	"github.com/Sumatoshi-tech/testidgen/pkg/recognize"
)

// MaxExamples bounds the identifiers listed per file.
const MaxExamples = 10

const durationRound = time.Millisecond

// categoryOrder fixes the row order of the category table.
var categoryOrder = []recognize.Category{
	recognize.CategoryFramework,
	recognize.CategoryCustom,
	recognize.CategoryHTML,
}

// Options controls the console summary.
type Options struct {
	// Verbose adds the markup tag set and the per-base table.
	Verbose bool
	DryRun  bool
}

// FileSummary writes the report for one annotated file.
func FileSummary(w io.Writer, fr *codemod.FileResult, opts Options) {
	res := fr.Result
	recog := res.Recognition

	color.New(color.FgGreen, color.Bold).Fprintf(w, "%s\n", fr.Path)

	if opts.DryRun {
		color.New(color.FgYellow).Fprintf(w, "  dry run, nothing written\n")
	} else {
		fmt.Fprintf(w, "  output: %s (%s)\n", fr.OutputPath, humanize.Bytes(uint64(len(res.Output))))
	}

	frameworks := make([]string, 0, len(recog.Frameworks()))
	for _, fw := range recog.Frameworks() {
		frameworks = append(frameworks, string(fw))
	}

	fmt.Fprintf(w, "  frameworks: %s\n", listOrNone(frameworks))

	fwLabel := "framework components"
	if recog.UsedFallback() {
		fwLabel += " (default layout list)"
	}

	fmt.Fprintf(w, "  %s: %s\n", fwLabel, listOrNone(recog.FrameworkComponents()))
	fmt.Fprintf(w, "  custom components: %s\n", listOrNone(recog.CustomComponents()))

	fmt.Fprintf(w, "  html elements: %s\n", listOrNone(recog.HTMLElements()))

	color.New(color.FgCyan).Fprintf(w, "  added %s test ids", humanize.Comma(int64(res.Stats.Added)))
	fmt.Fprintf(w, " (%d kept, %d namespaced skipped, %d out of scope)\n",
		res.Stats.Existing, res.Stats.Namespaced, res.Stats.OutOfScope)

	if res.Stats.Added == 0 {
		return
	}

	fmt.Fprintln(w, indent(categoryTable(res.Stats)))
	fmt.Fprintln(w, indent(baseTable(res.Stats)))

	writeExamples(w, res.Assignments, opts.Verbose)
}

// BatchSummary writes the per-file status table and the final tally.
func BatchSummary(w io.Writer, batch *codemod.BatchResult) {
	tbl := newTable()
	tbl.AppendHeader(table.Row{"File", "Status", "Test IDs", "Duration"})

	total := 0

	for _, fr := range batch.Files {
		if fr.OK() {
			tbl.AppendRow(table.Row{fr.Path, "ok", fr.Result.Stats.Added, fr.Duration.Round(durationRound)})
			total += fr.Result.Stats.Added

			continue
		}

		tbl.AppendRow(table.Row{fr.Path, "failed: " + fr.Err.Error(), "", fr.Duration.Round(durationRound)})
	}

	tbl.AppendFooter(table.Row{"Total", "", total, ""})

	fmt.Fprintln(w, tbl.Render())

	tally := color.New(color.FgGreen)
	if batch.Failed > 0 {
		tally = color.New(color.FgYellow)
	}

	tally.Fprintf(w, "%s succeeded, %s failed\n",
		humanize.Comma(int64(batch.Succeeded)), humanize.Comma(int64(batch.Failed)))
}

func categoryTable(stats codemod.Stats) string {
	tbl := newTable()
	tbl.AppendHeader(table.Row{"Category", "Count"})

	for _, category := range categoryOrder {
		tbl.AppendRow(table.Row{string(category), stats.ByCategory[category]})
	}

	return tbl.Render()
}

type baseCount struct {
	base  string
	count int
}

// baseTable lists base names by descending count, then name.
func baseTable(stats codemod.Stats) string {
	rows := make([]baseCount, 0, len(stats.ByBase))
	for base, n := range stats.ByBase {
		rows = append(rows, baseCount{base: base, count: n})
	}

	slices.SortFunc(rows, func(a, b baseCount) int {
		if c := cmp.Compare(b.count, a.count); c != 0 {
			return c
		}

		return cmp.Compare(a.base, b.base)
	})

	tbl := newTable()
	tbl.AppendHeader(table.Row{"Base name", "Count"})

	for _, row := range rows {
		tbl.AppendRow(table.Row{row.base, row.count})
	}

	return tbl.Render()
}

// writeExamples lists up to MaxExamples ids. Verbose output adds the strategy
// that named each one.
func writeExamples(w io.Writer, assignments []codemod.Assignment, verbose bool) {
	fmt.Fprintln(w, "  examples:")

	for i, a := range assignments {
		if i == MaxExamples {
			fmt.Fprintf(w, "    ... and %d more\n", len(assignments)-MaxExamples)

			break
		}

		if verbose {
			fmt.Fprintf(w, "    %-40s <%s> line %d via %s\n", a.ID, a.Element, a.Line, a.Strategy)

			continue
		}

		fmt.Fprintf(w, "    %-40s <%s> line %d\n", a.ID, a.Element, a.Line)
	}
}

func newTable() table.Writer {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Options.SeparateRows = false
	tbl.Style().Options.DrawBorder = false

	return tbl
}

func listOrNone(items []string) string {
	if len(items) == 0 {
		return "none"
	}

	return strings.Join(items, ", ")
}

func indent(block string) string {
	lines := strings.Split(block, "\n")
	for i, line := range lines {
		lines[i] = "  " + line
	}

	return strings.Join(lines, "\n")
}
