// Package analysis gathers per-element context from a parsed JSX tree. Three
// ordered passes fill a draft record per element; the drafts are then sealed
// into read-only Records that grouping and synthesis consume.
package analysis

import (
	"github.com/Sumatoshi-tech/testidgen/pkg/jsx"
)

// ValueKind describes how an attribute value was written.
type ValueKind int

// Attribute value shapes.
const (
	KindString ValueKind = iota
	KindBool
	KindNumber
	KindIdentifier
	KindMember
	KindObject
	KindArray
	KindFunction
	KindExpression
)

// Prop is one extracted key/value pair.
type Prop struct {
	Key   string
	Value string
	Kind  ValueKind
}

// Props is an ordered list of extracted pairs. Order follows the source.
type Props []Prop

// Get returns the first prop named key.
func (p Props) Get(key string) (Prop, bool) {
	for _, prop := range p {
		if prop.Key == key {
			return prop, true
		}
	}

	return Prop{}, false
}

// Value returns the value of key or "".
func (p Props) Value(key string) string {
	prop, _ := p.Get(key)

	return prop.Value
}

// Category is the inferred meaning of a rendering condition.
type Category string

// Condition categories.
const (
	ConditionLoading    Category = "loading"
	ConditionError      Category = "error"
	ConditionSuccess    Category = "success"
	ConditionEmpty      Category = "empty"
	ConditionBoolean    Category = "boolean"
	ConditionVisibility Category = "visibility"
	ConditionState      Category = "state"
	ConditionUnknown    Category = "unknown"
)

// Branch names.
const (
	BranchConsequent  = "consequent"
	BranchAlternate   = "alternate"
	BranchConditional = "conditional"
)

// Conditional describes the conditional-rendering branch an element sits in.
type Conditional struct {
	Category      Category
	Variable      string
	Branch        string
	ConditionText string
}

// Loop describes an element rendered inside an iteration callback.
type Loop struct {
	Variable   string
	Array      string
	Key        string
	HasKey     bool
	KeyDynamic bool
	Item       bool
}

// LoopSource marks an element that contains an iteration call.
type LoopSource struct {
	Variable string
	Array    string
}

// Group is a logical UI-pattern classification.
type Group struct {
	Type string
	Role string
}

// Record is the sealed analysis context of one element. It is never mutated
// after Build returns.
type Record struct {
	loop          *Loop
	loopSource    *LoopSource
	conditional   *Conditional
	group         *Group
	name          string
	parentName    string
	className     string
	comment       string
	ariaRole      string
	elementID     string
	semanticGroup string
	text          string
	role          string
	style         Props
	state         Props
	deepProps     Props
	path          []string
	node          jsx.NodeID
	parent        jsx.NodeID
	interactive   bool
}

// Node returns the element's node identity.
func (r *Record) Node() jsx.NodeID { return r.node }

// ParentNode returns the enclosing element's identity, or jsx.NoNode.
func (r *Record) ParentNode() jsx.NodeID { return r.parent }

// Name returns the element's tag or component name.
func (r *Record) Name() string { return r.name }

// ParentName returns the enclosing element's name, or "".
func (r *Record) ParentName() string { return r.parentName }

// ClassName returns the extracted class value, possibly framework-tagged
// ("tailwind:" or "bootstrap:").
func (r *Record) ClassName() string { return r.className }

// Style returns the flattened style/sx object literal.
func (r *Record) Style() Props { return r.style }

// Comment returns the nearest preceding comment text.
func (r *Record) Comment() string { return r.comment }

// AriaRole returns the explicit role attribute.
func (r *Record) AriaRole() string { return r.ariaRole }

// ElementID returns the explicit id attribute.
func (r *Record) ElementID() string { return r.elementID }

// SemanticGroup returns the nearest enclosing landmark label.
func (r *Record) SemanticGroup() string { return r.semanticGroup }

// Interactive reports whether the element is interactive.
func (r *Record) Interactive() bool { return r.interactive }

// Text returns up to 50 characters of descendant text.
func (r *Record) Text() string { return r.text }

// Path returns the ancestor names, outermost first, ending with the element itself.
func (r *Record) Path() []string { return r.path }

// State returns the recognized state props.
func (r *Record) State() Props { return r.state }

// Conditional returns the conditional-rendering descriptor, or nil.
func (r *Record) Conditional() *Conditional { return r.conditional }

// DeepProps returns every other non-structural attribute.
func (r *Record) DeepProps() Props { return r.deepProps }

// Group returns the logical group, or nil before grouping or when none matched.
func (r *Record) Group() *Group { return r.group }

// Role returns the inferred semantic role.
func (r *Record) Role() string { return r.role }

// Loop returns the iteration descriptor, or nil outside loops.
func (r *Record) Loop() *Loop { return r.loop }

// LoopSource returns the iteration the element contains, or nil.
func (r *Record) LoopSource() *LoopSource { return r.loopSource }

// Table is the sealed set of records for one tree.
type Table struct {
	records map[jsx.NodeID]*Record
	order   []jsx.NodeID
}

// Get returns the record for id.
func (t *Table) Get(id jsx.NodeID) (*Record, bool) {
	rec, ok := t.records[id]

	return rec, ok
}

// Records returns all records in document order.
func (t *Table) Records() []*Record {
	out := make([]*Record, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, t.records[id])
	}

	return out
}

// Len returns the number of records.
func (t *Table) Len() int {
	return len(t.order)
}

// WithGroups returns a copy of the table whose records carry the given
// logical groups. The receiver is left unchanged.
func (t *Table) WithGroups(groups map[jsx.NodeID]Group) *Table {
	out := &Table{
		records: make(map[jsx.NodeID]*Record, len(t.records)),
		order:   t.order,
	}

	for id, rec := range t.records {
		cp := *rec

		if group, ok := groups[id]; ok {
			cp.group = &group
		}

		out.records[id] = &cp
	}

	return out
}
