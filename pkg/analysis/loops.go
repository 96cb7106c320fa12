package analysis

import (
	"github.com/Sumatoshi-tech/testidgen/pkg/jsx"
)

var iterationMethods = map[string]bool{"map": true, "flatMap": true, "forEach": true}

// markLoops tags the element enclosing every iteration call as a loop source
// and every element inside the callback as a loop item. Calls are visited in
// document order so an inner loop overrides its outer one.
func (b *builder) markLoops() {
	b.tree.Walk(b.tree.Root(), func(id jsx.NodeID) bool {
		if b.tree.Type(id) == "call_expression" {
			b.markLoop(id)
		}

		return true
	}, nil)
}

func (b *builder) markLoop(call jsx.NodeID) {
	callee := b.tree.Field(call, "function")
	if b.tree.Type(callee) != "member_expression" {
		return
	}

	if !iterationMethods[b.tree.Text(b.tree.Field(callee, "property"))] {
		return
	}

	args := b.tree.Children(b.tree.Field(call, "arguments"))
	if len(args) == 0 {
		return
	}

	callback := args[0]
	switch b.tree.Type(callback) {
	case "arrow_function", "function_expression", "function":
	default:
		return
	}

	variable := b.callbackParam(callback)
	array := b.arrayName(b.tree.Unwrap(b.tree.Field(callee, "object")))

	if owner, ok := b.drafts[b.tree.EnclosingElement(call)]; ok && owner.loopSource == nil {
		owner.loopSource = &LoopSource{Variable: variable, Array: array}
	}

	b.tree.Walk(callback, func(id jsx.NodeID) bool {
		if d, ok := b.drafts[id]; ok {
			d.loop = &Loop{Variable: variable, Array: array, Item: true}
		}

		return true
	}, nil)
}

func (b *builder) callbackParam(callback jsx.NodeID) string {
	if param := b.tree.Field(callback, "parameter"); param != jsx.NoNode {
		return b.tree.Text(param)
	}

	params := b.tree.Children(b.tree.Field(callback, "parameters"))
	if len(params) == 0 {
		return ""
	}

	first := params[0]
	if b.tree.Type(first) == "required_parameter" {
		if children := b.tree.Children(first); len(children) > 0 {
			first = children[0]
		}
	}

	if b.tree.Type(first) != "identifier" {
		return ""
	}

	return b.tree.Text(first)
}

func (b *builder) arrayName(obj jsx.NodeID) string {
	switch b.tree.Type(obj) {
	case "identifier":
		return b.tree.Text(obj)
	case "member_expression":
		return b.tree.Text(b.tree.Field(obj, "property"))
	case "call_expression":
		return b.arrayName(b.tree.Field(obj, "function"))
	default:
		return ""
	}
}

// loopKey records the element's own key attribute on its loop descriptor.
// Literal keys are static; anything else keeps its raw expression text.
func (b *builder) loopKey(el *jsx.Element, loop *Loop) {
	attr, ok := el.Attr("key")
	if !ok || attr.Value == jsx.NoNode {
		return
	}

	expr := b.expression(attr.Value)
	loop.HasKey = true

	switch b.tree.Type(expr) {
	case "string":
		loop.Key, _ = b.tree.StringValue(expr)
	case "number":
		loop.Key = b.tree.Text(expr)
	case "template_string":
		if len(b.tree.Children(expr)) == 0 || allStringFragments(b.tree, expr) {
			loop.Key, _ = b.tree.StringValue(expr)

			return
		}

		loop.Key = b.tree.Text(expr)
		loop.KeyDynamic = true
	default:
		loop.Key = b.tree.Text(expr)
		loop.KeyDynamic = true
	}
}

func allStringFragments(tree *jsx.Tree, id jsx.NodeID) bool {
	for _, child := range tree.Children(id) {
		if tree.Type(child) == "template_substitution" {
			return false
		}
	}

	return true
}
