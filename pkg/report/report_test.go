package report_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/Sumatoshi-tech/testidgen/pkg/codemod"
	"github.com/Sumatoshi-tech/testidgen/pkg/jsx"
	"github.com/Sumatoshi-tech/testidgen/pkg/report"
)

const source = `import { Button } from "@chakra-ui/react";

export const Toolbar = () => (
  <nav>
    <Button variant="outline">Save</Button>
    <SearchInput />
  </nav>
);
`

func annotated(t *testing.T, src string) *codemod.FileResult {
	t.Helper()

	res, err := codemod.Annotate(context.Background(), []byte(src), jsx.JavaScript, codemod.DefaultOptions())
	require.NoError(t, err)

	return &codemod.FileResult{
		Path:       "src/Toolbar.jsx",
		OutputPath: "results/Toolbar_with_testids.jsx",
		Source:     []byte(src),
		Result:     res,
	}
}

func TestFileSummary(t *testing.T) {
	t.Parallel()

	fr := annotated(t, source)

	var buf bytes.Buffer

	report.FileSummary(&buf, fr, report.Options{Verbose: true})

	out := buf.String()
	assert.Contains(t, out, "src/Toolbar.jsx")
	assert.Contains(t, out, "results/Toolbar_with_testids.jsx")
	assert.Contains(t, out, "frameworks: chakra")
	assert.Contains(t, out, "custom components: SearchInput")
	assert.Contains(t, out, "html elements:")
	assert.Contains(t, out, fmt.Sprintf("added %d test ids", fr.Result.Stats.Added))
	assert.Contains(t, out, "button-outline")
	assert.Contains(t, strings.ToUpper(out), "BASE NAME")
	assert.Contains(t, out, "via state")
}

func TestFileSummary_ExampleOverflow(t *testing.T) {
	t.Parallel()

	var sb strings.Builder

	sb.WriteString("export const A = () => (\n  <div>\n")

	for i := range 14 {
		fmt.Fprintf(&sb, "    <p title=\"note %d\">x</p>\n", i)
	}

	sb.WriteString("  </div>\n);\n")

	fr := annotated(t, sb.String())
	require.Equal(t, 15, fr.Result.Stats.Added)

	var buf bytes.Buffer

	report.FileSummary(&buf, fr, report.Options{DryRun: true})

	out := buf.String()
	assert.Contains(t, out, "dry run")
	assert.Contains(t, out, "... and 5 more")
	assert.Contains(t, out, "html elements:")
	assert.Contains(t, strings.ToUpper(out), "BASE NAME")
	assert.NotContains(t, out, " via ")
}

func TestBatchSummary(t *testing.T) {
	t.Parallel()

	ok := annotated(t, source)
	failed := &codemod.FileResult{Path: "src/Broken.jsx", Err: errors.New("syntax error at line 2")}

	var buf bytes.Buffer

	report.BatchSummary(&buf, &codemod.BatchResult{
		Files:     []*codemod.FileResult{ok, failed},
		Succeeded: 1,
		Failed:    1,
	})

	out := buf.String()
	assert.Contains(t, out, "src/Broken.jsx")
	assert.Contains(t, out, "failed: syntax error at line 2")
	assert.Contains(t, out, "1 succeeded, 1 failed")
}

func TestLineDiff(t *testing.T) {
	t.Parallel()

	before := "a\nb\nc\n"
	after := "a\nB\nc\nd\n"

	changes := report.LineDiff(before, after)

	require.Len(t, changes, 3)
	assert.Equal(t, report.LineChange{Op: diffmatchpatch.DiffDelete, Line: 2, Text: "b"}, changes[0])
	assert.Equal(t, report.LineChange{Op: diffmatchpatch.DiffInsert, Line: 2, Text: "B"}, changes[1])
	assert.Equal(t, report.LineChange{Op: diffmatchpatch.DiffInsert, Line: 4, Text: "d"}, changes[2])
}

func TestWriteDiff(t *testing.T) {
	t.Parallel()

	fr := annotated(t, source)

	var buf bytes.Buffer

	report.WriteDiff(&buf, fr.Path, fr.Source, fr.Result.Output)

	out := buf.String()
	assert.Contains(t, out, "--- src/Toolbar.jsx")
	assert.Contains(t, out, `-   5     <Button variant="outline">Save</Button>`)
	assert.Contains(t, out, `data-testid="button-outline"`)

	buf.Reset()
	report.WriteDiff(&buf, "same.jsx", []byte("x\n"), []byte("x\n"))
	assert.Contains(t, buf.String(), "no changes")
}

func TestWriteManifest(t *testing.T) {
	t.Parallel()

	ok := annotated(t, source)
	failed := &codemod.FileResult{Path: "src/Broken.jsx", Err: errors.New("boom")}

	m := report.BuildManifest("shop-", []*codemod.FileResult{ok, failed})
	require.Len(t, m.Files, 1)

	path := filepath.Join(t.TempDir(), "testids.yaml")
	require.NoError(t, report.WriteManifest(path, m))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded struct {
		Prefix string `yaml:"prefix"`
		Files  []struct {
			Path    string `yaml:"path"`
			TestIDs []struct {
				ID       string `yaml:"id"`
				Element  string `yaml:"element"`
				Category string `yaml:"category"`
				Line     int    `yaml:"line"`
			} `yaml:"test_ids"`
		} `yaml:"files"`
	}

	require.NoError(t, yaml.Unmarshal(data, &decoded))

	assert.Equal(t, "shop-", decoded.Prefix)
	require.Len(t, decoded.Files, 1)
	assert.Equal(t, "src/Toolbar.jsx", decoded.Files[0].Path)
	require.Len(t, decoded.Files[0].TestIDs, len(ok.Result.Assignments))
	assert.Equal(t, ok.Result.Assignments[1].ID, decoded.Files[0].TestIDs[1].ID)
	assert.Equal(t, "Button", decoded.Files[0].TestIDs[1].Element)
	assert.Equal(t, "framework", decoded.Files[0].TestIDs[1].Category)
	assert.Equal(t, 5, decoded.Files[0].TestIDs[1].Line)

	require.ErrorIs(t, report.WriteManifest("", m), report.ErrEmptyManifestPath)
}
