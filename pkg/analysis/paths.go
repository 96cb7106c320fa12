package analysis

import (
	"strings"

	"github.com/Sumatoshi-tech/testidgen/pkg/jsx"
	"github.com/Sumatoshi-tech/testidgen/pkg/naming"
)

const maxConditionText = 60

// categoryKeywords is checked in order; the first category whose keyword
// occurs in the lowercased variable name wins.
var categoryKeywords = []struct {
	category Category
	keywords []string
}{
	{ConditionLoading, []string{"loading", "pending", "fetching", "busy", "submitting"}},
	{ConditionError, []string{"error", "fail", "invalid"}},
	{ConditionSuccess, []string{"success", "done", "complete", "saved"}},
	{ConditionEmpty, []string{"empty", "nodata", "noresults", "noitems"}},
	{ConditionVisibility, []string{"visible", "show", "hidden", "hide", "open", "expanded", "collapsed"}},
	{ConditionState, []string{"active", "selected", "enabled", "disabled", "checked", "toggled", "mode", "status"}},
}

var booleanPrefixes = []string{"is", "has", "can", "should"}

// passPaths is pass A. It records the ancestor name path of every element and
// the conditional-rendering branch of elements that are direct operands of a
// ternary or && expression.
func (b *builder) passPaths() {
	var stack []string

	b.tree.Walk(b.tree.Root(), func(id jsx.NodeID) bool {
		d, ok := b.drafts[id]
		if !ok {
			return true
		}

		stack = append(stack, d.name)
		d.path = append([]string(nil), stack...)

		return true
	}, func(id jsx.NodeID) {
		if _, ok := b.drafts[id]; ok {
			stack = stack[:len(stack)-1]
		}
	})

	for _, el := range b.tree.Elements() {
		if cond := b.conditionalFor(el.ID); cond != nil {
			b.drafts[el.ID].conditional = cond
		}
	}
}

// conditionalFor inspects the expression directly holding id, looking through
// parentheses.
func (b *builder) conditionalFor(id jsx.NodeID) *Conditional {
	child := id
	parent := b.tree.Parent(id)

	for b.tree.Type(parent) == "parenthesized_expression" {
		child = parent
		parent = b.tree.Parent(parent)
	}

	switch b.tree.Type(parent) {
	case "ternary_expression":
		condition := b.tree.Field(parent, "condition")

		var branch string

		switch child {
		case b.tree.Field(parent, "consequence"):
			branch = BranchConsequent
		case b.tree.Field(parent, "alternative"):
			branch = BranchAlternate
		default:
			return nil
		}

		return b.describeCondition(condition, branch)
	case "binary_expression":
		if b.tree.Node(parent).Operator != "&&" || b.tree.Field(parent, "right") != child {
			return nil
		}

		return b.describeCondition(b.tree.Field(parent, "left"), BranchConditional)
	}

	return nil
}

func (b *builder) describeCondition(condition jsx.NodeID, branch string) *Conditional {
	variable := b.conditionVariable(condition)

	return &Conditional{
		Category:      classifyCondition(variable),
		Variable:      variable,
		Branch:        branch,
		ConditionText: naming.Truncate(naming.CollapseSpace(b.tree.Text(condition)), maxConditionText),
	}
}

// conditionVariable extracts the most specific name from a condition: the
// property of a member access, the callee of a call, or a bare identifier.
// Negations and comparisons are looked through on their left side.
func (b *builder) conditionVariable(id jsx.NodeID) string {
	for range 16 { //nolint:mnd // bounded descent
		id = b.tree.Unwrap(id)

		switch b.tree.Type(id) {
		case "identifier", "property_identifier", "shorthand_property_identifier":
			return b.tree.Text(id)
		case "member_expression":
			return b.tree.Text(b.tree.Field(id, "property"))
		case "call_expression":
			id = b.tree.Field(id, "function")
		case "unary_expression":
			id = b.tree.Field(id, "argument")
		case "binary_expression":
			id = b.tree.Field(id, "left")
		case "subscript_expression":
			id = b.tree.Field(id, "object")
		default:
			return ""
		}
	}

	return ""
}

func classifyCondition(variable string) Category {
	if variable == "" {
		return ConditionUnknown
	}

	lower := strings.ToLower(variable)

	for _, entry := range categoryKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(lower, kw) {
				return entry.category
			}
		}
	}

	for _, prefix := range booleanPrefixes {
		rest, ok := strings.CutPrefix(variable, prefix)
		if ok && rest != "" && rest[0] >= 'A' && rest[0] <= 'Z' {
			return ConditionBoolean
		}
	}

	return ConditionUnknown
}
