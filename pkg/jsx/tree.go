// Package jsx parses JSX/TSX source into an arena-backed syntax tree and
// writes attribute insertions back into the original text.
package jsx

import "strings"

// NodeID identifies a node inside its Tree. IDs follow document order.
type NodeID int32

// NoNode marks an absent node reference.
const NoNode NodeID = -1

// Point is a 1-based line/column position.
type Point struct {
	Line   int
	Column int
}

// Node is one named syntax node. Children are owned by ID; the parent is a
// back-reference only.
type Node struct {
	fields   map[string]NodeID
	Type     string
	Operator string
	Children []NodeID
	Pos      Point
	Start    uint32
	End      uint32
	Parent   NodeID
}

// Tree is the parsed representation of one source file.
type Tree struct {
	byNode   map[NodeID]int
	language Language
	source   []byte
	nodes    []Node
	elements []Element
}

// Root returns the ID of the program node.
func (t *Tree) Root() NodeID {
	return 0
}

// Len returns the number of nodes in the tree.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Source returns the text the tree was parsed from.
func (t *Tree) Source() []byte {
	return t.source
}

// Language returns the grammar used to parse the tree.
func (t *Tree) Language() Language {
	return t.language
}

// Node returns the node for id. The returned pointer must not be mutated.
func (t *Tree) Node(id NodeID) *Node {
	if id < 0 || int(id) >= len(t.nodes) {
		return nil
	}

	return &t.nodes[id]
}

// Type returns the grammar type of id, or "" for NoNode.
func (t *Tree) Type(id NodeID) string {
	n := t.Node(id)
	if n == nil {
		return ""
	}

	return n.Type
}

// Parent returns the parent of id, or NoNode for the root.
func (t *Tree) Parent(id NodeID) NodeID {
	n := t.Node(id)
	if n == nil {
		return NoNode
	}

	return n.Parent
}

// Children returns the named children of id in source order.
func (t *Tree) Children(id NodeID) []NodeID {
	n := t.Node(id)
	if n == nil {
		return nil
	}

	return n.Children
}

// Field returns the child stored under a grammar field name.
func (t *Tree) Field(id NodeID, name string) NodeID {
	n := t.Node(id)
	if n == nil {
		return NoNode
	}

	child, ok := n.fields[name]
	if !ok {
		return NoNode
	}

	return child
}

// Text returns the source text spanned by id.
func (t *Tree) Text(id NodeID) string {
	n := t.Node(id)
	if n == nil {
		return ""
	}

	return string(t.source[n.Start:n.End])
}

// Position returns the start position of id.
func (t *Tree) Position(id NodeID) Point {
	n := t.Node(id)
	if n == nil {
		return Point{}
	}

	return n.Pos
}

// Walk visits id and its descendants depth-first. enter returning false skips
// the subtree; leave, when non-nil, runs after the children.
func (t *Tree) Walk(id NodeID, enter func(NodeID) bool, leave func(NodeID)) {
	if t.Node(id) == nil {
		return
	}

	if !enter(id) {
		return
	}

	for _, child := range t.nodes[id].Children {
		t.Walk(child, enter, leave)
	}

	if leave != nil {
		leave(id)
	}
}

// Unwrap strips parenthesized_expression wrappers around id.
func (t *Tree) Unwrap(id NodeID) NodeID {
	for t.Type(id) == "parenthesized_expression" {
		children := t.Children(id)
		if len(children) == 0 {
			return id
		}

		id = children[len(children)-1]
	}

	return id
}

// IsElement reports whether id is a JSX element node.
func (t *Tree) IsElement(id NodeID) bool {
	_, ok := t.byNode[id]

	return ok
}

// Elements returns every JSX element in document order.
func (t *Tree) Elements() []Element {
	return t.elements
}

// Element returns the element rooted at id.
func (t *Tree) Element(id NodeID) (*Element, bool) {
	idx, ok := t.byNode[id]
	if !ok {
		return nil, false
	}

	return &t.elements[idx], true
}

// EnclosingElement returns the nearest element strictly above id.
func (t *Tree) EnclosingElement(id NodeID) NodeID {
	for cur := t.Parent(id); cur != NoNode; cur = t.Parent(cur) {
		if t.IsElement(cur) {
			return cur
		}
	}

	return NoNode
}

// StringValue returns the unquoted content of a string or template_string
// node. Template substitutions are dropped and the static segments joined.
func (t *Tree) StringValue(id NodeID) (string, bool) {
	switch t.Type(id) {
	case "string":
		raw := t.Text(id)
		if len(raw) < 2 { //nolint:mnd // opening and closing quote
			return "", false
		}

		return raw[1 : len(raw)-1], true
	case "template_string":
		return t.templateStatic(id), true
	default:
		return "", false
	}
}

func (t *Tree) templateStatic(id NodeID) string {
	n := t.Node(id)
	cursor := n.Start + 1
	end := n.End - 1

	var sb strings.Builder

	for _, child := range n.Children {
		c := t.nodes[child]
		if c.Type != "template_substitution" {
			continue
		}

		if c.Start > cursor {
			sb.Write(t.source[cursor:c.Start])
		}

		sb.WriteByte(' ')

		cursor = c.End
	}

	if end > cursor {
		sb.Write(t.source[cursor:end])
	}

	return strings.Join(strings.Fields(sb.String()), " ")
}
