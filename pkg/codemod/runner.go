package codemod

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/src-d/enry/v2"

	"github.com/Sumatoshi-tech/testidgen/pkg/jsx"
	"github.com/Sumatoshi-tech/testidgen/pkg/observability"
)

// OutputSuffix is appended to the base name of every written file.
const OutputSuffix = "_with_testids"

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// Sentinel errors for the file driver.
var (
	ErrMissingInput        = errors.New("missing input path")
	ErrNotDirectory        = errors.New("not a directory")
	ErrUnsupportedLanguage = errors.New("unsupported source language")
	ErrBinaryInput         = errors.New("binary input")
)

// FileResult is the outcome of one input file.
type FileResult struct {
	Result     *Result
	Err        error
	Path       string
	OutputPath string
	Source     []byte
	Duration   time.Duration
}

// OK reports whether the file was annotated.
func (fr *FileResult) OK() bool {
	return fr.Err == nil
}

// BatchResult tallies a directory run.
type BatchResult struct {
	Files     []*FileResult
	Succeeded int
	Failed    int
}

// RunnerOptions configures the file driver around the pipeline options.
type RunnerOptions struct {
	Logger    *slog.Logger
	Metrics   *observability.RunMetrics
	Recursive bool
	DryRun    bool
}

// Runner reads source files, annotates them and writes the copies.
type Runner struct {
	logger  *slog.Logger
	metrics *observability.RunMetrics
	opts    Options
	ropts   RunnerOptions
}

// NewRunner creates a runner. A nil logger discards log output.
func NewRunner(opts Options, ropts RunnerOptions) *Runner {
	logger := ropts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Runner{
		opts:    opts,
		ropts:   ropts,
		logger:  logger,
		metrics: ropts.Metrics,
	}
}

// OutputPath returns the path an annotated copy of input is written to.
// rel is the input's directory relative to the batch root, or "" for a
// single file.
func OutputPath(outputDir, rel, input string) string {
	base := filepath.Base(input)
	ext := filepath.Ext(base)

	return filepath.Join(outputDir, rel, strings.TrimSuffix(base, ext)+OutputSuffix+ext)
}

// RunFile annotates a single file. The returned FileResult is never nil; its
// Err mirrors the returned error.
func (r *Runner) RunFile(ctx context.Context, path string) (*FileResult, error) {
	return r.runFile(ctx, path, OutputPath(r.opts.OutputDir, "", path))
}

func (r *Runner) runFile(ctx context.Context, path, outPath string) (*FileResult, error) {
	start := time.Now()
	fr := &FileResult{Path: path, OutputPath: outPath}

	fr.Err = r.process(ctx, fr)
	fr.Duration = time.Since(start)

	status := observability.StatusOK

	var categories map[string]int

	if fr.Err != nil {
		status = observability.StatusFailed

		r.logger.ErrorContext(ctx, "file failed", "path", path, "error", fr.Err)
	} else {
		categories = fr.Result.Stats.CategoryCounts()

		r.logger.InfoContext(ctx, "file annotated",
			"path", path,
			"output", outPath,
			"added", fr.Result.Stats.Added,
			"existing", fr.Result.Stats.Existing,
			"dry_run", r.ropts.DryRun,
		)
	}

	r.metrics.RecordFile(ctx, status, fr.Duration, categories)

	return fr, fr.Err
}

func (r *Runner) process(ctx context.Context, fr *FileResult) error {
	source, err := os.ReadFile(fr.Path)
	if err != nil {
		return fmt.Errorf("read %s: %w", fr.Path, err)
	}

	fr.Source = source

	if enry.IsBinary(source) {
		return fmt.Errorf("%w: %s", ErrBinaryInput, fr.Path)
	}

	lang, ok := jsx.LanguageForPath(fr.Path, source)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnsupportedLanguage, fr.Path)
	}

	res, err := Annotate(ctx, source, lang, r.opts)
	if err != nil {
		return fmt.Errorf("annotate %s: %w", fr.Path, err)
	}

	fr.Result = res

	r.logger.DebugContext(ctx, "recognized components",
		"path", fr.Path,
		"frameworks", res.Recognition.Frameworks(),
		"framework_components", len(res.Recognition.FrameworkComponents()),
		"custom_components", res.Recognition.CustomComponents(),
		"fallback", res.Recognition.UsedFallback(),
	)

	if r.ropts.DryRun {
		return nil
	}

	err = os.MkdirAll(filepath.Dir(fr.OutputPath), dirPerm)
	if err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	err = os.WriteFile(fr.OutputPath, res.Output, filePerm)
	if err != nil {
		return fmt.Errorf("write %s: %w", fr.OutputPath, err)
	}

	return nil
}

// RunBatch annotates every supported file in dir, one at a time in directory
// listing order. A failing file is tallied and the batch continues; only an
// unreadable dir or a cancelled ctx fails the batch itself.
func (r *Runner) RunBatch(ctx context.Context, dir string) (*BatchResult, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("open batch directory: %w", err)
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, dir)
	}

	inputs, err := r.collect(dir)
	if err != nil {
		return nil, err
	}

	r.logger.InfoContext(ctx, "batch started", "dir", dir, "files", len(inputs))

	batch := &BatchResult{Files: make([]*FileResult, 0, len(inputs))}

	for _, rel := range inputs {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return batch, fmt.Errorf("batch interrupted: %w", ctxErr)
		}

		outPath := OutputPath(r.opts.OutputDir, filepath.Dir(rel), rel)

		fr, fileErr := r.runFile(ctx, filepath.Join(dir, rel), outPath)
		batch.Files = append(batch.Files, fr)

		if fileErr != nil {
			batch.Failed++

			continue
		}

		batch.Succeeded++
	}

	r.logger.InfoContext(ctx, "batch finished", "succeeded", batch.Succeeded, "failed", batch.Failed)

	return batch, nil
}

// collect lists the batch inputs relative to dir. Without Recursive only the
// top level is read; with it, vendored trees and the output directory are
// skipped.
func (r *Runner) collect(dir string) ([]string, error) {
	if !r.ropts.Recursive {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, fmt.Errorf("read batch directory: %w", err)
		}

		var inputs []string

		for _, entry := range entries {
			if !entry.IsDir() && isInput(entry.Name()) {
				inputs = append(inputs, entry.Name())
			}
		}

		return inputs, nil
	}

	outAbs, _ := filepath.Abs(r.opts.OutputDir)

	var inputs []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		rel, relErr := filepath.Rel(dir, path)
		if relErr != nil {
			return fmt.Errorf("relative path: %w", relErr)
		}

		if d.IsDir() {
			if rel == "." {
				return nil
			}

			abs, _ := filepath.Abs(path)
			if abs == outAbs || enry.IsVendor(filepath.ToSlash(rel)+"/") || enry.IsDotFile(rel) {
				return filepath.SkipDir
			}

			return nil
		}

		if isInput(d.Name()) && !enry.IsVendor(filepath.ToSlash(rel)) {
			inputs = append(inputs, rel)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk batch directory: %w", err)
	}

	return inputs, nil
}

// isInput accepts files with a supported extension that are not earlier
// annotated copies.
func isInput(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	if !slices.Contains(jsx.Extensions(), ext) {
		return false
	}

	return !strings.HasSuffix(strings.TrimSuffix(name, filepath.Ext(name)), OutputSuffix)
}
