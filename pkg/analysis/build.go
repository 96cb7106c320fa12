package analysis

import (
	"context"

	"go.opentelemetry.io/otel"

	"github.com/Sumatoshi-tech/testidgen/pkg/jsx"
	"github.com/Sumatoshi-tech/testidgen/pkg/recognize"
)

const tracerName = "testidgen/analysis"

// Config selects which extractors run. Disabled extractors leave their field
// empty; the passes stay deterministic either way.
type Config struct {
	// ChildText extracts text for every element, not only text-bearing ones.
	ChildText bool
	// RecursiveText follows all descendants instead of text-like children only.
	RecursiveText bool
	// Text enables text extraction at all.
	Text bool
}

// draft is the mutable record filled by the passes before sealing.
type draft struct {
	Record
}

type builder struct {
	tree   *jsx.Tree
	recog  *recognize.Result
	drafts map[jsx.NodeID]*draft
	cfg    Config
}

// Build runs the context passes over tree and returns the sealed table.
func Build(ctx context.Context, tree *jsx.Tree, recog *recognize.Result, cfg Config) *Table {
	_, span := otel.Tracer(tracerName).Start(ctx, "analysis.Build")
	defer span.End()

	b := &builder{
		tree:   tree,
		recog:  recog,
		cfg:    cfg,
		drafts: make(map[jsx.NodeID]*draft, len(tree.Elements())),
	}

	for _, el := range tree.Elements() {
		b.drafts[el.ID] = &draft{Record: Record{
			node:   el.ID,
			parent: tree.EnclosingElement(el.ID),
			name:   el.Name,
		}}
	}

	b.passPaths()
	b.passAttributes()

	return b.seal()
}

// seal is pass C: it resolves parent names and freezes every draft.
func (b *builder) seal() *Table {
	table := &Table{
		records: make(map[jsx.NodeID]*Record, len(b.drafts)),
		order:   make([]jsx.NodeID, 0, len(b.drafts)),
	}

	for _, el := range b.tree.Elements() {
		d := b.drafts[el.ID]

		if parent, ok := b.drafts[d.parent]; ok {
			d.parentName = parent.name
		}

		rec := d.Record
		table.records[el.ID] = &rec
		table.order = append(table.order, el.ID)
	}

	return table
}
