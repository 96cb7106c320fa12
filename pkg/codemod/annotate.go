package codemod

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/Sumatoshi-tech/testidgen/pkg/analysis"
	"github.com/Sumatoshi-tech/testidgen/pkg/grouping"
	"github.com/Sumatoshi-tech/testidgen/pkg/jsx"
	"github.com/Sumatoshi-tech/testidgen/pkg/recognize"
	"github.com/Sumatoshi-tech/testidgen/pkg/synth"
)

const tracerName = "testidgen/codemod"

// Assignment describes one attribute added to the source.
type Assignment struct {
	ID       string             `yaml:"id"`
	Base     string             `yaml:"base"`
	Element  string             `yaml:"element"`
	Category recognize.Category `yaml:"category"`
	Strategy string             `yaml:"strategy"`
	KeyExpr  string             `yaml:"key,omitempty"`
	Line     int                `yaml:"line"`
	Dynamic  bool               `yaml:"dynamic,omitempty"`
}

// Stats counts the outcome of one file.
type Stats struct {
	ByCategory map[recognize.Category]int
	ByBase     map[string]int
	Added      int
	Existing   int
	Namespaced int
	OutOfScope int
}

// CategoryCounts returns ByCategory keyed by plain strings.
func (s Stats) CategoryCounts() map[string]int {
	out := make(map[string]int, len(s.ByCategory))
	for category, n := range s.ByCategory {
		out[string(category)] = n
	}

	return out
}

// Result is the annotated form of one source text.
type Result struct {
	Recognition *recognize.Result
	Output      []byte
	Assignments []Assignment
	Stats       Stats
}

// Annotate runs the full pipeline over source and returns the annotated text.
// It performs no I/O; a syntax error in source is returned as *jsx.ParseError.
func Annotate(ctx context.Context, source []byte, lang jsx.Language, opts Options) (*Result, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "codemod.Annotate")
	defer span.End()

	tree, err := jsx.Parse(ctx, source, lang)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}

	recog := recognize.Recognize(source, opts.HTMLOnly)
	table := analysis.Build(ctx, tree, recog, opts.analysisConfig())

	if opts.LogicalGroups {
		table = grouping.New().Apply(ctx, table)
	}

	reg := synth.NewRegistry()
	reserveExisting(tree, reg)

	synthesizer := synth.New(opts.synthOptions())
	rw := jsx.NewRewriter()

	res := &Result{
		Recognition: recog,
		Stats: Stats{
			ByCategory: make(map[recognize.Category]int),
			ByBase:     make(map[string]int),
		},
	}

	elements := tree.Elements()
	for i := range elements {
		el := &elements[i]

		if el.Namespaced() {
			res.Stats.Namespaced++

			continue
		}

		category := recog.Category(el.Name)
		if !opts.InScope(category) {
			res.Stats.OutOfScope++

			continue
		}

		if el.HasAttr(analysis.TestIDAttr, analysis.LegacyTestIDAttr) {
			res.Stats.Existing++

			continue
		}

		rec, ok := table.Get(el.ID)
		if !ok {
			continue
		}

		out := synthesizer.Synthesize(el, rec, reg)

		if out.Dynamic {
			rw.AddTemplateAttribute(el, analysis.TestIDAttr, out.Base, out.KeyExpr)
		} else {
			rw.AddStringAttribute(el, analysis.TestIDAttr, out.ID)
		}

		res.Assignments = append(res.Assignments, Assignment{
			ID:       out.ID,
			Base:     out.Base,
			Element:  el.Name,
			Category: category,
			Strategy: out.Strategy,
			KeyExpr:  out.KeyExpr,
			Line:     tree.Position(el.ID).Line,
			Dynamic:  out.Dynamic,
		})

		res.Stats.Added++
		res.Stats.ByCategory[category]++
		res.Stats.ByBase[out.Base]++
	}

	res.Output = jsx.Serialize(tree, rw)

	span.SetAttributes(
		attribute.Int("testidgen.elements", len(elements)),
		attribute.Int("testidgen.added", res.Stats.Added),
	)

	return res, nil
}

// reserveExisting seeds reg with the static identifiers already present in
// the source so new identifiers never collide with them.
func reserveExisting(tree *jsx.Tree, reg *synth.Registry) {
	for _, el := range tree.Elements() {
		for _, name := range []string{analysis.TestIDAttr, analysis.LegacyTestIDAttr} {
			attr, ok := el.Attr(name)
			if !ok || attr.Value == jsx.NoNode {
				continue
			}

			if value, ok := tree.StringValue(attrExpression(tree, attr.Value)); ok {
				reg.Reserve(value)
			}
		}
	}
}

// attrExpression looks through a {...} container to the expression inside.
func attrExpression(tree *jsx.Tree, id jsx.NodeID) jsx.NodeID {
	if tree.Type(id) != "jsx_expression" {
		return id
	}

	children := tree.Children(id)
	if len(children) == 0 {
		return id
	}

	return tree.Unwrap(children[0])
}
