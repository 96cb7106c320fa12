package jsx

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sitter "github.com/alexaandru/go-tree-sitter-bare"
)

// Sentinel errors for parser operations.
var (
	ErrSyntax              = errors.New("syntax error")
	ErrUnsupportedLanguage = errors.New("unsupported language")
	errNoRootNode          = errors.New("jsx: no root node")
)

// maxSnippetLen bounds the source excerpt quoted in a ParseError.
const maxSnippetLen = 24

// ParseError reports the first syntax error found in a source file.
type ParseError struct {
	Near   string
	Line   int
	Column int
}

// Error implements error.
func (e *ParseError) Error() string {
	return fmt.Sprintf("syntax error at line %d, column %d near %q", e.Line, e.Column, e.Near)
}

// Unwrap lets errors.Is match ErrSyntax.
func (e *ParseError) Unwrap() error {
	return ErrSyntax
}

// trackedFields lists the grammar fields recorded per node type. Only the
// fields read by the analysis passes are kept.
var trackedFields = map[string][]string{
	"jsx_element":              {"open_tag", "close_tag"},
	"jsx_opening_element":      {"name"},
	"jsx_self_closing_element": {"name"},
	"ternary_expression":       {"condition", "consequence", "alternative"},
	"binary_expression":        {"left", "right", "operator"},
	"unary_expression":         {"argument", "operator"},
	"call_expression":          {"function", "arguments"},
	"member_expression":        {"object", "property"},
	"subscript_expression":     {"object", "index"},
	"arrow_function":           {"parameter", "parameters", "body"},
	"function_expression":      {"parameters", "body"},
	"pair":                     {"key", "value"},
}

// Parse parses source with the grammar for lang and returns its tree.
// A source containing syntax errors yields a *ParseError.
func Parse(ctx context.Context, source []byte, lang Language) (*Tree, error) {
	grammar := lang.grammar()
	if grammar == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, lang)
	}

	tsParser := sitter.NewParser()
	tsParser.SetLanguage(grammar)

	tsTree, err := tsParser.ParseString(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("jsx: failed to parse: %w", err)
	}
	defer tsTree.Close()

	root := tsTree.RootNode()
	if root.IsNull() {
		return nil, errNoRootNode
	}

	if root.HasError() {
		return nil, newParseError(root, source)
	}

	builder := &treeBuilder{nodes: make([]Node, 0, len(source)/8)} //nolint:mnd // rough nodes-per-byte estimate
	builder.add(root, NoNode)

	tree := &Tree{
		source:   source,
		language: lang,
		nodes:    builder.nodes,
	}
	tree.indexElements()

	return tree, nil
}

type treeBuilder struct {
	nodes []Node
}

// add copies n and its named descendants into the arena and returns n's ID.
func (b *treeBuilder) add(n sitter.Node, parent NodeID) NodeID {
	id := NodeID(len(b.nodes))
	start := n.StartPoint()

	b.nodes = append(b.nodes, Node{
		Type:   n.Type(),
		Start:  uint32(n.StartByte()),
		End:    uint32(n.EndByte()),
		Pos:    Point{Line: int(start.Row) + 1, Column: int(start.Column) + 1},
		Parent: parent,
	})

	for idx := range n.NamedChildCount() {
		childID := b.add(n.NamedChild(idx), id)
		b.nodes[id].Children = append(b.nodes[id].Children, childID)
	}

	b.recordFields(n, id)

	return id
}

func (b *treeBuilder) recordFields(n sitter.Node, id NodeID) {
	names, ok := trackedFields[n.Type()]
	if !ok {
		return
	}

	for _, name := range names {
		fieldNode := n.ChildByFieldName(name)
		if fieldNode.IsNull() {
			continue
		}

		if name == "operator" {
			b.nodes[id].Operator = fieldNode.Type()

			continue
		}

		for _, child := range b.nodes[id].Children {
			cn := b.nodes[child]
			if uint(cn.Start) == fieldNode.StartByte() && uint(cn.End) == fieldNode.EndByte() && cn.Type == fieldNode.Type() {
				if b.nodes[id].fields == nil {
					b.nodes[id].fields = make(map[string]NodeID, len(names))
				}

				b.nodes[id].fields[name] = child

				break
			}
		}
	}
}

// newParseError locates the first ERROR or MISSING node below root.
func newParseError(root sitter.Node, source []byte) *ParseError {
	n := locateError(root)
	start := n.StartPoint()
	from := int(n.StartByte())

	near := ""
	if from < len(source) {
		near = string(source[from:min(len(source), from+maxSnippetLen)])
		near, _, _ = strings.Cut(near, "\n")
	}

	return &ParseError{
		Line:   int(start.Row) + 1,
		Column: int(start.Column) + 1,
		Near:   near,
	}
}

func locateError(n sitter.Node) sitter.Node {
	for {
		if n.Type() == "ERROR" {
			return n
		}

		descended := false

		for idx := range n.ChildCount() {
			child := n.Child(idx)
			if child.Type() == "ERROR" || child.HasError() {
				n = child
				descended = true

				break
			}
		}

		if !descended {
			return n
		}
	}
}
