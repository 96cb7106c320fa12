package analysis

import (
	"slices"
	"strings"

	"github.com/Sumatoshi-tech/testidgen/pkg/jsx"
	"github.com/Sumatoshi-tech/testidgen/pkg/naming"
)

const maxCommentLift = 3

// commentWrappers may sit between an element and the comment that labels it.
var commentWrappers = map[string]bool{
	"parenthesized_expression": true,
	"return_statement":         true,
	"jsx_expression":           true,
	"expression_statement":     true,
	"ternary_expression":       true,
	"binary_expression":        true,
}

// nearbyComment returns the comment immediately preceding id. Whitespace-only
// text is skipped; the search climbs through expression wrappers when id has
// no preceding sibling.
func (b *builder) nearbyComment(id jsx.NodeID) string {
	cur := id

	for range maxCommentLift {
		parent := b.tree.Parent(cur)
		if parent == jsx.NoNode {
			return ""
		}

		siblings := b.tree.Children(parent)

		idx := slices.Index(siblings, cur)
		for idx--; idx >= 0; idx-- {
			prev := siblings[idx]

			switch b.tree.Type(prev) {
			case "jsx_text":
				if strings.TrimSpace(b.tree.Text(prev)) == "" {
					continue
				}

				return ""
			case "comment":
				return cleanComment(b.tree.Text(prev))
			case "jsx_expression":
				if text, ok := b.commentExpression(prev); ok {
					return text
				}

				return ""
			default:
				return ""
			}
		}

		if !commentWrappers[b.tree.Type(parent)] {
			return ""
		}

		cur = parent
	}

	return ""
}

// commentExpression reads a `{/* ... */}` child.
func (b *builder) commentExpression(id jsx.NodeID) (string, bool) {
	children := b.tree.Children(id)
	if len(children) != 1 || b.tree.Type(children[0]) != "comment" {
		return "", false
	}

	return cleanComment(b.tree.Text(children[0])), true
}

func cleanComment(raw string) string {
	raw = strings.TrimSpace(raw)

	if rest, ok := strings.CutPrefix(raw, "//"); ok {
		return naming.CollapseSpace(rest)
	}

	raw = strings.TrimSuffix(strings.TrimPrefix(raw, "/*"), "*/")

	lines := strings.Split(raw, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimLeft(strings.TrimSpace(line), "*")
	}

	return naming.CollapseSpace(strings.Join(lines, " "))
}
