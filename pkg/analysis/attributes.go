package analysis

import (
	"regexp"
	"strings"

	"github.com/Sumatoshi-tech/testidgen/pkg/jsx"
	"github.com/Sumatoshi-tech/testidgen/pkg/naming"
)

// Reserved identifier attribute spellings. Both are honored when reading.
const (
	TestIDAttr       = "data-testid"
	LegacyTestIDAttr = "data-test-id"
)

const maxExpressionText = 40

var (
	classAttrs = []string{"className", "class"}
	styleAttrs = []string{"style", "sx", "css", "__css"}
)

// classHelpers are the class-joining functions whose literal arguments are
// concatenated.
var classHelpers = map[string]bool{
	"clsx": true, "classnames": true, "classNames": true, "cn": true, "cx": true,
	"twMerge": true, "twJoin": true,
}

var (
	bootstrapClassRe = regexp.MustCompile(`^(?:btn(?:-[\w-]+)?|col(?:-[\w-]+)?|row|navbar(?:-[\w-]+)?|` +
		`card(?:-[\w-]+)?|alert(?:-[\w-]+)?|badge(?:-[\w-]+)?|form-(?:control|group|label|check|select)|` +
		`d-(?:none|flex|block|inline|grid)|container(?:-fluid)?|list-group(?:-item)?|modal(?:-[\w-]+)?)$`)
	tailwindClassRe = regexp.MustCompile(`^(?:[a-z]+:)*-?(?:flex|grid|hidden|block|inline|` +
		`(?:p|px|py|pt|pb|pl|pr|m|mx|my|mt|mb|ml|mr|w|h|min-w|max-w|min-h|max-h|gap|space-[xy]|` +
		`text|bg|border|rounded|items|justify|font|leading|tracking|shadow|opacity|z|inset|top|left|` +
		`right|bottom|col-span|row-span|ring|divide|overflow|cursor)-[\w./\[\]#%-]+)$`)
)

// stateProps maps recognized state attribute names to their state key.
var stateProps = map[string]string{
	"disabled": "disabled", "isDisabled": "disabled",
	"loading": "loading", "isLoading": "loading",
	"checked": "checked", "isChecked": "checked",
	"selected": "selected", "isSelected": "selected",
	"active": "active", "isActive": "active",
	"open": "open", "isOpen": "open",
	"expanded": "expanded", "isExpanded": "expanded",
	"invalid": "invalid", "isInvalid": "invalid",
	"required": "required", "isRequired": "required",
	"readOnly": "readOnly", "isReadOnly": "readOnly",
	"variant": "variant", "color": "color", "colorScheme": "colorScheme",
	"status": "status", "state": "state", "size": "size",
}

// structuralAttrs never become deep props.
var structuralAttrs = map[string]bool{
	TestIDAttr: true, LegacyTestIDAttr: true, "key": true, "ref": true,
}

// passAttributes is pass B.
func (b *builder) passAttributes() {
	b.markLoops()

	for _, el := range b.tree.Elements() {
		d := b.drafts[el.ID]

		d.className = b.className(&el)
		d.style = b.styleProps(&el)
		d.elementID = b.attrString(&el, "id")
		d.ariaRole = b.attrString(&el, "role")
		d.state = b.stateProps(&el)
		d.deepProps = b.deepProps(&el)
		d.interactive = isInteractive(&el)
		d.role = b.inferRole(&el)
		d.comment = b.nearbyComment(el.ID)
		d.semanticGroup = b.semanticGroup(el.ID)

		if d.loop != nil {
			b.loopKey(&el, d.loop)
		}

		if b.cfg.Text && (b.cfg.ChildText || textBearing[el.Name]) {
			d.text = b.elementText(&el)
		}
	}
}

// attrString returns the string value of a plain string attribute.
func (b *builder) attrString(el *jsx.Element, name string) string {
	attr, ok := el.Attr(name)
	if !ok {
		return ""
	}

	prop, ok := b.attrValue(attr)
	if !ok || prop.Kind != KindString {
		return ""
	}

	return prop.Value
}

// expression returns the expression wrapped by a jsx_expression value, or the
// value itself.
func (b *builder) expression(value jsx.NodeID) jsx.NodeID {
	if b.tree.Type(value) != "jsx_expression" {
		return value
	}

	children := b.tree.Children(value)
	if len(children) == 0 {
		return jsx.NoNode
	}

	return b.tree.Unwrap(children[0])
}

// attrValue coerces an attribute value to a Prop. A valueless attribute is
// boolean true.
func (b *builder) attrValue(attr jsx.Attribute) (Prop, bool) {
	if attr.Value == jsx.NoNode {
		return Prop{Key: attr.Name, Value: "true", Kind: KindBool}, true
	}

	prop, ok := b.literal(b.expression(attr.Value))
	prop.Key = attr.Name

	return prop, ok
}

// literal stringifies an expression node. Complex shapes get a stub label.
func (b *builder) literal(id jsx.NodeID) (Prop, bool) {
	switch b.tree.Type(id) {
	case "string", "template_string":
		value, _ := b.tree.StringValue(id)

		return Prop{Value: value, Kind: KindString}, true
	case "true", "false":
		return Prop{Value: b.tree.Type(id), Kind: KindBool}, true
	case "number":
		return Prop{Value: b.tree.Text(id), Kind: KindNumber}, true
	case "identifier":
		return Prop{Value: b.tree.Text(id), Kind: KindIdentifier}, true
	case "member_expression":
		return Prop{Value: b.tree.Text(id), Kind: KindMember}, true
	case "object":
		return Prop{Value: "object", Kind: KindObject}, true
	case "array":
		return Prop{Value: "array", Kind: KindArray}, true
	case "arrow_function", "function_expression", "function":
		return Prop{Value: "function", Kind: KindFunction}, true
	case "", "jsx_element", "jsx_self_closing_element", "comment":
		return Prop{}, false
	default:
		text := naming.CollapseSpace(b.tree.Text(id))

		return Prop{Value: naming.Truncate(text, maxExpressionText), Kind: KindExpression}, true
	}
}

func (b *builder) className(el *jsx.Element) string {
	for _, name := range classAttrs {
		attr, ok := el.Attr(name)
		if !ok || attr.Value == jsx.NoNode {
			continue
		}

		value := naming.CollapseSpace(b.classValue(b.expression(attr.Value)))
		if value == "" {
			continue
		}

		return tagClassFramework(value)
	}

	return ""
}

func (b *builder) classValue(id jsx.NodeID) string {
	switch b.tree.Type(id) {
	case "string", "template_string":
		value, _ := b.tree.StringValue(id)

		return value
	case "member_expression":
		return b.tree.Text(b.tree.Field(id, "property"))
	case "call_expression":
		if !classHelpers[b.tree.Text(b.tree.Field(id, "function"))] {
			return ""
		}

		var parts []string

		for _, arg := range b.tree.Children(b.tree.Field(id, "arguments")) {
			switch b.tree.Type(arg) {
			case "string", "template_string":
				value, _ := b.tree.StringValue(arg)
				parts = append(parts, value)
			case "object":
				parts = append(parts, b.objectKeys(arg)...)
			}
		}

		return strings.Join(parts, " ")
	default:
		return ""
	}
}

func (b *builder) objectKeys(obj jsx.NodeID) []string {
	var keys []string

	for _, child := range b.tree.Children(obj) {
		if b.tree.Type(child) != "pair" {
			continue
		}

		if key := b.propertyKey(b.tree.Field(child, "key")); key != "" {
			keys = append(keys, key)
		}
	}

	return keys
}

func (b *builder) propertyKey(key jsx.NodeID) string {
	if value, ok := b.tree.StringValue(key); ok {
		return value
	}

	switch b.tree.Type(key) {
	case "property_identifier", "identifier", "number":
		return b.tree.Text(key)
	default:
		return ""
	}
}

// FrameworkClass reports whether token is a Bootstrap or Tailwind utility class.
func FrameworkClass(token string) bool {
	return bootstrapClassRe.MatchString(token) || tailwindClassRe.MatchString(token)
}

// tagClassFramework prefixes value with the utility framework its tokens
// belong to. Bootstrap is checked before Tailwind.
func tagClassFramework(value string) string {
	tokens := strings.Fields(value)

	for _, tok := range tokens {
		if bootstrapClassRe.MatchString(tok) {
			return "bootstrap:" + value
		}
	}

	for _, tok := range tokens {
		if tailwindClassRe.MatchString(tok) {
			return "tailwind:" + value
		}
	}

	return value
}

func (b *builder) styleProps(el *jsx.Element) Props {
	var props Props

	for _, name := range styleAttrs {
		attr, ok := el.Attr(name)
		if !ok || attr.Value == jsx.NoNode {
			continue
		}

		obj := b.expression(attr.Value)
		if b.tree.Type(obj) != "object" {
			continue
		}

		for _, child := range b.tree.Children(obj) {
			if b.tree.Type(child) != "pair" {
				continue
			}

			key := b.propertyKey(b.tree.Field(child, "key"))

			prop, ok := b.literal(b.tree.Unwrap(b.tree.Field(child, "value")))
			if key == "" || !ok {
				continue
			}

			switch prop.Kind {
			case KindString, KindNumber, KindBool:
				prop.Key = key
				props = append(props, prop)
			}
		}
	}

	return props
}

func (b *builder) stateProps(el *jsx.Element) Props {
	var props Props

	for _, attr := range el.Attrs {
		key, ok := stateProps[attr.Name]
		if attr.Spread || !ok {
			continue
		}

		if _, seen := props.Get(key); seen {
			continue
		}

		prop, ok := b.attrValue(attr)
		if !ok {
			continue
		}

		switch prop.Kind {
		case KindString, KindBool, KindIdentifier:
		case KindMember:
			prop.Value = b.tree.Text(b.tree.Field(b.expression(attr.Value), "property"))
		default:
			continue
		}

		prop.Key = key
		props = append(props, prop)
	}

	return props
}

func (b *builder) deepProps(el *jsx.Element) Props {
	var props Props

	for _, attr := range el.Attrs {
		if attr.Spread || structuralAttrs[attr.Name] {
			continue
		}

		if prop, ok := b.attrValue(attr); ok {
			props = append(props, prop)
		}
	}

	return props
}
