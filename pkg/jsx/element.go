package jsx

// NameKind classifies the shape of an element's tag name.
type NameKind int

// Tag name shapes.
const (
	NameIdentifier NameKind = iota
	NameMember
	NameNamespace
)

// Attribute is one entry of an element's attribute list.
type Attribute struct {
	Name   string
	Node   NodeID
	Value  NodeID
	Spread bool
}

// Element is a view over a jsx_element or jsx_self_closing_element node.
type Element struct {
	Name        string
	Attrs       []Attribute
	Children    []NodeID
	ID          NodeID
	Open        NodeID
	InsertAt    uint32
	NameKind    NameKind
	SelfClosing bool
}

// Namespaced reports whether the tag is a member or namespace name such as
// Menu.Item or svg:rect.
func (e *Element) Namespaced() bool {
	return e.NameKind != NameIdentifier
}

// Attr returns the first non-spread attribute named name.
func (e *Element) Attr(name string) (Attribute, bool) {
	for _, attr := range e.Attrs {
		if !attr.Spread && attr.Name == name {
			return attr, true
		}
	}

	return Attribute{}, false
}

// HasAttr reports whether any of names is present.
func (e *Element) HasAttr(names ...string) bool {
	for _, name := range names {
		if _, ok := e.Attr(name); ok {
			return true
		}
	}

	return false
}

// AttrNames returns the names of all non-spread attributes in source order.
func (e *Element) AttrNames() []string {
	names := make([]string, 0, len(e.Attrs))

	for _, attr := range e.Attrs {
		if !attr.Spread {
			names = append(names, attr.Name)
		}
	}

	return names
}

var nameKinds = map[string]NameKind{
	"identifier":         NameIdentifier,
	"jsx_identifier":     NameIdentifier,
	"member_expression":  NameMember,
	"nested_identifier":  NameMember,
	"jsx_namespace_name": NameNamespace,
}

// indexElements builds the element views in document order.
func (t *Tree) indexElements() {
	t.byNode = make(map[NodeID]int)

	for idx := range t.nodes {
		id := NodeID(idx)

		var el Element

		switch t.nodes[idx].Type {
		case "jsx_element":
			el = t.buildElement(id)
		case "jsx_self_closing_element":
			el = t.buildSelfClosing(id)
		default:
			continue
		}

		if el.Open == NoNode {
			continue
		}

		t.byNode[id] = len(t.elements)
		t.elements = append(t.elements, el)
	}
}

func (t *Tree) buildElement(id NodeID) Element {
	el := Element{ID: id, Open: t.Field(id, "open_tag")}

	for _, child := range t.nodes[id].Children {
		switch t.nodes[child].Type {
		case "jsx_opening_element":
			if el.Open == NoNode {
				el.Open = child
			}
		case "jsx_closing_element":
		default:
			el.Children = append(el.Children, child)
		}
	}

	if el.Open != NoNode {
		t.fillOpening(&el)
	}

	return el
}

func (t *Tree) buildSelfClosing(id NodeID) Element {
	el := Element{ID: id, Open: id, SelfClosing: true}
	t.fillOpening(&el)

	return el
}

// fillOpening reads the tag name and attributes from the opening node and
// computes the offset right after the last name or attribute token.
func (t *Tree) fillOpening(el *Element) {
	open := t.nodes[el.Open]
	el.InsertAt = open.Start + 1

	nameID := t.Field(el.Open, "name")

	for _, child := range open.Children {
		cn := t.nodes[child]

		switch cn.Type {
		case "jsx_attribute":
			el.Attrs = append(el.Attrs, t.buildAttribute(child))
		case "jsx_expression":
			el.Attrs = append(el.Attrs, Attribute{Node: child, Value: child, Spread: true})
		default:
			if nameID == NoNode {
				if _, ok := nameKinds[cn.Type]; ok {
					nameID = child
				}
			}
		}

		if cn.Type != "comment" {
			el.InsertAt = max(el.InsertAt, cn.End)
		}
	}

	if nameID == NoNode {
		el.Open = NoNode

		return
	}

	el.Name = t.Text(nameID)
	el.NameKind = nameKinds[t.nodes[nameID].Type]
}

func (t *Tree) buildAttribute(id NodeID) Attribute {
	attr := Attribute{Node: id, Value: NoNode}

	children := t.nodes[id].Children
	if len(children) == 0 {
		return attr
	}

	attr.Name = t.Text(children[0])

	if len(children) > 1 {
		attr.Value = children[len(children)-1]
	}

	return attr
}
