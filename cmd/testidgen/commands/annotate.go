// Package commands implements CLI command handlers for testidgen.
package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/testidgen/pkg/codemod"
	"github.com/Sumatoshi-tech/testidgen/pkg/config"
	"github.com/Sumatoshi-tech/testidgen/pkg/observability"
	"github.com/Sumatoshi-tech/testidgen/pkg/prefix"
	"github.com/Sumatoshi-tech/testidgen/pkg/report"
)

// optionFlag binds a boolean flag to one field of codemod.Options. The flag
// overrides the configuration only when given on the command line.
type optionFlag struct {
	apply func(*codemod.Options, bool)
	name  string
	usage string
	def   bool
}

var optionFlags = []optionFlag{
	{name: "include-html", def: true, usage: "Annotate plain markup elements",
		apply: func(o *codemod.Options, v bool) { o.IncludeHTML = v }},
	{name: "exclude-html", usage: "Skip plain markup elements",
		apply: func(o *codemod.Options, v bool) { o.IncludeHTML = !v }},
	{name: "html-only", usage: "Annotate only plain markup elements",
		apply: func(o *codemod.Options, v bool) { o.HTMLOnly = v }},
	{name: "framework-only", usage: "Annotate only UI framework components",
		apply: func(o *codemod.Options, v bool) { o.FrameworkOnly = v }},
	{name: "comments", def: true, usage: "Name elements after nearby comments",
		apply: func(o *codemod.Options, v bool) { o.Comments = v }},
	{name: "text", def: true, usage: "Name elements after their text content",
		apply: func(o *codemod.Options, v bool) { o.Text = v }},
	{name: "class-names", def: true, usage: "Name elements after their class names",
		apply: func(o *codemod.Options, v bool) { o.ClassNames = v }},
	{name: "style-props", def: true, usage: "Name elements after style and sx props",
		apply: func(o *codemod.Options, v bool) { o.StyleProps = v }},
	{name: "path-context", def: true, usage: "Use ancestor and landmark context",
		apply: func(o *codemod.Options, v bool) { o.PathContext = v }},
	{name: "child-text", usage: "Extract text for every element, not only text-bearing ones",
		apply: func(o *codemod.Options, v bool) { o.ChildText = v }},
	{name: "recursive-text", usage: "Collect text from all descendants",
		apply: func(o *codemod.Options, v bool) { o.RecursiveText = v }},
	{name: "prioritize-text", def: true, usage: "Prefer text over class, style and landmark naming",
		apply: func(o *codemod.Options, v bool) { o.PrioritizeText = v }},
	{name: "state", def: true, usage: "Name elements after state props such as variant",
		apply: func(o *codemod.Options, v bool) { o.StateAware = v }},
	{name: "deep-props", def: true, usage: "Name elements after descriptive props",
		apply: func(o *codemod.Options, v bool) { o.DeepProps = v }},
	{name: "logical-groups", def: true, usage: "Detect forms, lists, dialogs and other groups",
		apply: func(o *codemod.Options, v bool) { o.LogicalGroups = v }},
	{name: "roles", def: true, usage: "Infer semantic roles",
		apply: func(o *codemod.Options, v bool) { o.RoleInference = v }},
	{name: "conditionals", def: true, usage: "Name conditionally rendered branches",
		apply: func(o *codemod.Options, v bool) { o.Conditionals = v }},
	{name: "reuse-shapes", def: true, usage: "Reuse identifiers for structurally identical elements",
		apply: func(o *codemod.Options, v bool) { o.ReuseShapes = v }},
}

// AnnotateCommand holds the flags of the annotate command.
type AnnotateCommand struct {
	configPath  string
	output      string
	manifest    string
	metricsFile string
	logFormat   string
	batch       bool
	recursive   bool
	dryRun      bool
	diff        bool
	verbose     bool
	noColor     bool
}

// NewAnnotateCommand creates the annotate command.
func NewAnnotateCommand() *cobra.Command {
	ac := &AnnotateCommand{}

	cmd := &cobra.Command{
		Use:   "annotate <path>",
		Short: "Add data-testid attributes to JSX/TSX files",
		Long: `Annotate parses JSX/TSX sources, derives a stable identifier for every
eligible element and writes a copy of each file with data-testid attributes
to the output directory as {name}_with_testids{ext}.

Before processing, the command asks for an identifier prefix on stdin.`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE:         ac.run,
	}

	for _, f := range optionFlags {
		cmd.Flags().Bool(f.name, f.def, f.usage)
	}

	cmd.Flags().StringVarP(&ac.output, "output", "o", config.DefaultOutputDir, "Output directory")
	cmd.Flags().StringVar(&ac.configPath, "config", "", "Config file (default: .testidgen.yaml in . or $HOME)")
	cmd.Flags().BoolVar(&ac.batch, "batch", false, "Treat path as a directory and annotate every source file in it")
	cmd.Flags().BoolVar(&ac.recursive, "recursive", false, "In batch mode, descend into subdirectories")
	cmd.Flags().BoolVar(&ac.dryRun, "dry-run", false, "Report without writing output files")
	cmd.Flags().BoolVar(&ac.diff, "diff", false, "Print the changed lines of each file")
	cmd.Flags().StringVar(&ac.manifest, "manifest", "", "Write a YAML manifest of added identifiers")
	cmd.Flags().StringVar(&ac.metricsFile, "metrics-file", "", "Write run metrics in Prometheus text format")
	cmd.Flags().BoolVarP(&ac.verbose, "verbose", "v", false, "Verbose logging and reporting")
	cmd.Flags().BoolVar(&ac.noColor, "no-color", false, "Disable colored output")
	cmd.Flags().StringVar(&ac.logFormat, "log-format", config.DefaultLogFormat, "Log format: text, json")

	return cmd
}

func (ac *AnnotateCommand) run(cmd *cobra.Command, args []string) error {
	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		return codemod.ErrMissingInput
	}

	path := args[0]

	cfg, err := config.LoadConfig(ac.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	opts := ac.resolveOptions(cmd, cfg)

	if ac.noColor {
		color.NoColor = true //nolint:reassign // intentional override of library global
	}

	logger := ac.newLogger(cmd, cfg)
	ctx := cmd.Context()

	opts.Prefix, err = prefix.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout()).Ask(ctx)
	if err != nil {
		return err
	}

	logger.DebugContext(ctx, "prefix resolved", "prefix", opts.Prefix)

	var metrics *observability.RunMetrics

	if ac.metricsFile != "" {
		metrics, err = observability.NewRunMetrics()
		if err != nil {
			return err
		}

		defer func() {
			if shutdownErr := metrics.Shutdown(context.WithoutCancel(ctx)); shutdownErr != nil {
				logger.Warn("metrics shutdown failed", "error", shutdownErr)
			}
		}()
	}

	recursive := cfg.Batch.Recursive
	if cmd.Flags().Changed("recursive") {
		recursive = ac.recursive
	}

	runner := codemod.NewRunner(opts, codemod.RunnerOptions{
		Logger:    logger,
		Metrics:   metrics,
		Recursive: recursive,
		DryRun:    ac.dryRun,
	})

	var files []*codemod.FileResult

	if ac.batch {
		files, err = ac.runBatch(ctx, cmd.OutOrStdout(), runner, path, opts)
	} else {
		files, err = ac.runSingle(ctx, cmd.OutOrStdout(), runner, path, opts)
	}

	if err != nil {
		return err
	}

	return ac.writeArtifacts(opts, files, metrics)
}

// resolveOptions layers explicitly given flags over the loaded configuration.
func (ac *AnnotateCommand) resolveOptions(cmd *cobra.Command, cfg *config.Config) codemod.Options {
	opts := codemod.OptionsFromConfig(cfg)

	for _, f := range optionFlags {
		if !cmd.Flags().Changed(f.name) {
			continue
		}

		v, err := cmd.Flags().GetBool(f.name)
		if err == nil {
			f.apply(&opts, v)
		}
	}

	if cmd.Flags().Changed("output") {
		opts.OutputDir = ac.output
	}

	if ac.verbose {
		opts.Verbose = true
	}

	return opts
}

func (ac *AnnotateCommand) newLogger(cmd *cobra.Command, cfg *config.Config) *slog.Logger {
	format := cfg.Logging.Format
	if cmd.Flags().Changed("log-format") {
		format = ac.logFormat
	}

	level := observability.ParseLevel(cfg.Logging.Level)
	if ac.verbose {
		level = slog.LevelDebug
	}

	mode := observability.ModeFile
	if ac.batch {
		mode = observability.ModeBatch
	}

	return observability.NewLogger(cmd.ErrOrStderr(), observability.LoggerOptions{
		Level: level,
		JSON:  format == "json",
		Mode:  mode,
	})
}

func (ac *AnnotateCommand) runSingle(
	ctx context.Context,
	out io.Writer,
	runner *codemod.Runner,
	path string,
	opts codemod.Options,
) ([]*codemod.FileResult, error) {
	fr, err := runner.RunFile(ctx, path)
	if err != nil {
		color.New(color.FgRed).Fprintf(out, "failed: %s: %v\n", path, err)

		return nil, err
	}

	ac.printFile(out, fr, opts)

	return []*codemod.FileResult{fr}, nil
}

func (ac *AnnotateCommand) runBatch(
	ctx context.Context,
	out io.Writer,
	runner *codemod.Runner,
	dir string,
	opts codemod.Options,
) ([]*codemod.FileResult, error) {
	batch, err := runner.RunBatch(ctx, dir)
	if batch == nil {
		return nil, err
	}

	for _, fr := range batch.Files {
		if fr.OK() {
			ac.printFile(out, fr, opts)

			continue
		}

		color.New(color.FgRed).Fprintf(out, "failed: %s: %v\n", fr.Path, fr.Err)
	}

	report.BatchSummary(out, batch)

	return batch.Files, err
}

func (ac *AnnotateCommand) printFile(out io.Writer, fr *codemod.FileResult, opts codemod.Options) {
	report.FileSummary(out, fr, report.Options{Verbose: opts.Verbose, DryRun: ac.dryRun})

	if ac.diff {
		report.WriteDiff(out, fr.Path, fr.Source, fr.Result.Output)
	}
}

func (ac *AnnotateCommand) writeArtifacts(
	opts codemod.Options,
	files []*codemod.FileResult,
	metrics *observability.RunMetrics,
) error {
	if ac.manifest != "" {
		err := report.WriteManifest(ac.manifest, report.BuildManifest(opts.Prefix, files))
		if err != nil {
			return err
		}
	}

	if metrics != nil {
		err := metrics.WriteTextfile(ac.metricsFile)
		if err != nil {
			return err
		}
	}

	return nil
}
