// Package codemod runs the annotation pipeline over source files and writes
// the annotated copies.
package codemod

import (
	"github.com/Sumatoshi-tech/testidgen/pkg/analysis"
	"github.com/Sumatoshi-tech/testidgen/pkg/config"
	"github.com/Sumatoshi-tech/testidgen/pkg/recognize"
	"github.com/Sumatoshi-tech/testidgen/pkg/synth"
)

// Options is the immutable configuration of one run.
type Options struct {
	Prefix    string
	OutputDir string

	IncludeHTML   bool
	HTMLOnly      bool
	FrameworkOnly bool

	Comments       bool
	Text           bool
	ClassNames     bool
	StyleProps     bool
	PathContext    bool
	ChildText      bool
	RecursiveText  bool
	PrioritizeText bool
	StateAware     bool
	DeepProps      bool
	LogicalGroups  bool
	RoleInference  bool
	Conditionals   bool
	ReuseShapes    bool

	Verbose bool
}

// DefaultOptions mirrors the command-line defaults.
func DefaultOptions() Options {
	return Options{
		OutputDir:      config.DefaultOutputDir,
		IncludeHTML:    true,
		Comments:       true,
		Text:           true,
		ClassNames:     true,
		StyleProps:     true,
		PathContext:    true,
		PrioritizeText: true,
		StateAware:     true,
		DeepProps:      true,
		LogicalGroups:  true,
		RoleInference:  true,
		Conditionals:   true,
		ReuseShapes:    true,
	}
}

// OptionsFromConfig builds run options from a loaded configuration.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		OutputDir:      cfg.Output,
		IncludeHTML:    cfg.Scope.IncludeHTML,
		HTMLOnly:       cfg.Scope.HTMLOnly,
		FrameworkOnly:  cfg.Scope.FrameworkOnly,
		Comments:       cfg.Naming.Comments,
		Text:           cfg.Naming.Text,
		ClassNames:     cfg.Naming.ClassNames,
		StyleProps:     cfg.Naming.StyleProps,
		PathContext:    cfg.Naming.PathContext,
		ChildText:      cfg.Naming.ChildText,
		RecursiveText:  cfg.Naming.RecursiveText,
		PrioritizeText: cfg.Naming.PrioritizeText,
		StateAware:     cfg.Naming.State,
		DeepProps:      cfg.Naming.DeepProps,
		LogicalGroups:  cfg.Naming.LogicalGroups,
		RoleInference:  cfg.Naming.Roles,
		Conditionals:   cfg.Naming.Conditionals,
		ReuseShapes:    cfg.Naming.ReuseShapes,
		Verbose:        cfg.Logging.Level == "debug",
	}
}

// InScope reports whether elements of category are annotated under o.
// HTML-only and framework-only narrow the scope to a single category;
// otherwise framework and custom components are always in scope and markup
// tags follow IncludeHTML.
func (o Options) InScope(category recognize.Category) bool {
	switch {
	case category == recognize.CategoryNone:
		return false
	case o.HTMLOnly:
		return category == recognize.CategoryHTML
	case o.FrameworkOnly:
		return category == recognize.CategoryFramework
	case category == recognize.CategoryHTML:
		return o.IncludeHTML
	default:
		return true
	}
}

func (o Options) analysisConfig() analysis.Config {
	return analysis.Config{
		Text:          o.Text,
		ChildText:     o.ChildText,
		RecursiveText: o.RecursiveText,
	}
}

func (o Options) synthOptions() synth.Options {
	return synth.Options{
		Prefix:         o.Prefix,
		Roles:          o.RoleInference,
		State:          o.StateAware,
		Groups:         o.LogicalGroups,
		Conditionals:   o.Conditionals,
		DeepProps:      o.DeepProps,
		Text:           o.Text,
		PrioritizeText: o.PrioritizeText,
		ClassNames:     o.ClassNames,
		StyleProps:     o.StyleProps,
		PathContext:    o.PathContext,
		Comments:       o.Comments,
		ReuseShapes:    o.ReuseShapes,
	}
}
