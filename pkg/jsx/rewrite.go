package jsx

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// insertion is a pending text insertion at a byte offset.
type insertion struct {
	text   string
	offset uint32
	seq    int
}

// Rewriter collects insertions against a source text. Regions outside the
// insertions are copied unchanged, so formatting and line numbers of untouched
// code are preserved.
type Rewriter struct {
	inserts []insertion
}

// NewRewriter returns an empty Rewriter.
func NewRewriter() *Rewriter {
	return &Rewriter{}
}

// Insert schedules text to be inserted at offset. Insertions at the same
// offset keep their scheduling order.
func (r *Rewriter) Insert(offset uint32, text string) {
	r.inserts = append(r.inserts, insertion{offset: offset, text: text, seq: len(r.inserts)})
}

// AddStringAttribute inserts name="value" into el's opening tag.
func (r *Rewriter) AddStringAttribute(el *Element, name, value string) {
	r.Insert(el.InsertAt, fmt.Sprintf(" %s=%s", name, strconv.Quote(value)))
}

// AddTemplateAttribute inserts name={`prefix${expr}`} into el's opening tag.
func (r *Rewriter) AddTemplateAttribute(el *Element, name, prefix, expr string) {
	r.Insert(el.InsertAt, fmt.Sprintf(" %s={`%s${%s}`}", name, escapeTemplate(prefix), expr))
}

// Len returns the number of scheduled insertions.
func (r *Rewriter) Len() int {
	return len(r.inserts)
}

// Apply returns source with all insertions applied.
func (r *Rewriter) Apply(source []byte) []byte {
	ordered := make([]insertion, len(r.inserts))
	copy(ordered, r.inserts)

	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].offset != ordered[j].offset {
			return ordered[i].offset < ordered[j].offset
		}

		return ordered[i].seq < ordered[j].seq
	})

	extra := 0
	for _, ins := range ordered {
		extra += len(ins.text)
	}

	var out bytes.Buffer

	out.Grow(len(source) + extra)

	cursor := 0

	for _, ins := range ordered {
		offset := min(int(ins.offset), len(source))
		out.Write(source[cursor:offset])
		out.WriteString(ins.text)

		cursor = offset
	}

	out.Write(source[cursor:])

	return out.Bytes()
}

// Serialize prints tree back to source text with the rewriter's insertions.
func Serialize(tree *Tree, rw *Rewriter) []byte {
	return rw.Apply(tree.Source())
}

func escapeTemplate(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "`", "\\`")

	return strings.ReplaceAll(s, "${", "\\${")
}
