package synth

import (
	"regexp"
	"slices"
	"strings"
	"unicode"

	"github.com/Sumatoshi-tech/testidgen/pkg/analysis"
	"github.com/Sumatoshi-tech/testidgen/pkg/naming"
)

// Strategy names, reported with every assignment.
const (
	StrategyDynamic  = "dynamic-key"
	StrategyLoopKey  = "loop-key"
	StrategyCache    = "shape-cache"
	StrategyRole     = "role"
	StrategyState    = "state"
	StrategyGroup    = "group"
	StrategyCond     = "conditional"
	StrategyDeepProp = "deep-prop"
	StrategyText     = "text"
	StrategyClass    = "class"
	StrategyStyle    = "style"
	StrategySemantic = "semantic-group"
	StrategyID       = "id"
	StrategyComment  = "comment"
	StrategyPath     = "path"
	StrategyFallback = "fallback"
)

const (
	deepPropLimit  = 20
	textLimit      = 30
	commentWords   = 3
	minCommentWord = 3
	minClassToken  = 3
)

// Strategy derives one candidate suffix from an element's context. An empty
// result falls through to the next strategy.
type Strategy struct {
	Enabled func(Options) bool
	Derive  func(in Input) string
	Name    string
}

// Input is what every strategy sees.
type Input struct {
	Record *analysis.Record
	// Tag is the kebab-cased element name.
	Tag string
}

var (
	statePriority    = []string{"variant", "status", "state", "color", "size"}
	deepPropPriority = []string{"label", "title", "placeholder", "alt", "name", "value", "type", "for", "heading", "variant"}
	deepPropExclude  = map[string]bool{
		"className": true, "class": true, "style": true, "src": true, "href": true, "target": true,
		"rel": true, "disabled": true, "ref": true, "id": true, "role": true,
	}
	stylePriority = []string{"variant", "color", "colorScheme", "size", "textStyle", "layerStyle"}
	stopwords     = map[string]bool{
		"the": true, "and": true, "for": true, "with": true, "this": true, "that": true,
		"from": true, "into": true, "are": true, "was": true, "todo": true, "fixme": true,
		"our": true, "its": true, "has": true, "have": true, "will": true, "should": true,
	}
	spacingUtilityRe = regexp.MustCompile(`^-?[a-z]{1,4}-\d+(?:\.\d+)?$`)
)

// fallbackWords maps common tags to the bare fallback word.
var fallbackWords = map[string]string{
	"div": "container", "span": "text", "p": "paragraph", "button": "btn", "a": "link",
	"li": "list-item", "ul": "list", "ol": "ordered-list", "img": "image", "input": "input-field",
	"tr": "row", "td": "cell", "th": "header-cell", "select": "dropdown", "textarea": "text-area",
	"form": "form", "label": "label", "nav": "navigation", "section": "section",
	"header": "header", "footer": "footer", "main": "main-content", "aside": "sidebar",
	"table": "table", "thead": "table-head", "tbody": "table-body", "h1": "heading",
	"h2": "heading", "h3": "heading", "h4": "heading", "h5": "heading", "h6": "heading",
	"svg": "icon", "option": "option", "article": "article",
}

// DefaultStrategies returns the ordered fallback chain. Text content names an
// element only when both text naming and text priority are enabled.
func DefaultStrategies() []Strategy {
	return []Strategy{
		{Name: StrategyRole, Enabled: func(o Options) bool { return o.Roles }, Derive: roleCandidate},
		{Name: StrategyState, Enabled: func(o Options) bool { return o.State }, Derive: stateCandidate},
		{Name: StrategyGroup, Enabled: func(o Options) bool { return o.Groups }, Derive: groupCandidate},
		{Name: StrategyCond, Enabled: func(o Options) bool { return o.Conditionals }, Derive: conditionalCandidate},
		{Name: StrategyDeepProp, Enabled: func(o Options) bool { return o.DeepProps }, Derive: deepPropCandidate},
		{Name: StrategyText, Enabled: func(o Options) bool { return o.Text && o.PrioritizeText }, Derive: textCandidate},
		{Name: StrategyClass, Enabled: func(o Options) bool { return o.ClassNames }, Derive: classCandidate},
		{Name: StrategyStyle, Enabled: func(o Options) bool { return o.StyleProps }, Derive: styleCandidate},
		{Name: StrategySemantic, Enabled: func(o Options) bool { return o.PathContext }, Derive: semanticCandidate},
		{Name: StrategyID, Enabled: always, Derive: idCandidate},
		{Name: StrategyComment, Enabled: func(o Options) bool { return o.Comments }, Derive: commentCandidate},
		{Name: StrategyPath, Enabled: func(o Options) bool { return o.PathContext }, Derive: pathCandidate},
		{Name: StrategyFallback, Enabled: always, Derive: fallbackCandidate},
	}
}

func always(Options) bool { return true }

// clean turns an arbitrary value into identifier-safe kebab case.
func clean(value string) string {
	return strings.Trim(naming.Kebabize(naming.Kebab(value)), "-")
}

func roleCandidate(in Input) string {
	role := clean(in.Record.Role())
	if role == "" || role == in.Tag || strings.HasSuffix(in.Tag, role) {
		return ""
	}

	return role
}

func stateCandidate(in Input) string {
	state := in.Record.State()

	for _, key := range statePriority {
		if prop, ok := state.Get(key); ok {
			if value := stateValue(prop); value != "" {
				return value
			}
		}
	}

	for _, prop := range state {
		if value := stateValue(prop); value != "" {
			return value
		}
	}

	return ""
}

func stateValue(prop analysis.Prop) string {
	if prop.Kind == analysis.KindBool {
		if prop.Value == "true" {
			return clean(prop.Key)
		}

		return ""
	}

	return clean(prop.Value)
}

func groupCandidate(in Input) string {
	group := in.Record.Group()
	if group == nil {
		return ""
	}

	if group.Role != "" && group.Role != in.Tag {
		return clean(group.Type + "-" + group.Role)
	}

	return clean(group.Type)
}

func conditionalCandidate(in Input) string {
	cond := in.Record.Conditional()
	if cond == nil {
		return ""
	}

	switch {
	case cond.Category != "" && cond.Category != analysis.ConditionUnknown:
		return string(cond.Category) + "-" + cond.Branch
	case cond.Variable != "":
		return clean(cond.Variable)
	default:
		return cond.Branch
	}
}

func deepPropCandidate(in Input) string {
	props := in.Record.DeepProps()

	for _, key := range deepPropPriority {
		if prop, ok := props.Get(key); ok && prop.Kind == analysis.KindString {
			if value := naming.Slug(prop.Value, deepPropLimit); value != "" {
				return value
			}
		}
	}

	for _, prop := range props {
		if prop.Kind != analysis.KindString || deepPropExclude[prop.Key] || slices.Contains(deepPropPriority, prop.Key) {
			continue
		}

		if value := naming.Slug(prop.Value, deepPropLimit); value != "" {
			return value
		}
	}

	return ""
}

func textCandidate(in Input) string {
	return naming.Slug(in.Record.Text(), textLimit)
}

// classCandidate prefers the first semantic token of a framework-tagged class
// list, otherwise the longest custom token.
func classCandidate(in Input) string {
	value := in.Record.ClassName()
	tagged := false

	for _, prefix := range []string{"tailwind:", "bootstrap:"} {
		if rest, ok := strings.CutPrefix(value, prefix); ok {
			value = rest
			tagged = true
		}
	}

	var custom []string

	for _, tok := range strings.Fields(value) {
		if len(tok) < minClassToken || spacingUtilityRe.MatchString(tok) {
			continue
		}

		if tagged && !analysis.FrameworkClass(tok) {
			return clean(tok)
		}

		custom = append(custom, tok)
	}

	longest := ""

	for _, tok := range custom {
		if len(tok) > len(longest) {
			longest = tok
		}
	}

	return clean(longest)
}

func styleCandidate(in Input) string {
	style := in.Record.Style()

	for _, key := range stylePriority {
		if prop, ok := style.Get(key); ok && prop.Kind != analysis.KindBool {
			if value := clean(prop.Value); value != "" {
				return value
			}
		}
	}

	return ""
}

func semanticCandidate(in Input) string {
	return clean(in.Record.SemanticGroup())
}

func idCandidate(in Input) string {
	return clean(in.Record.ElementID())
}

func commentCandidate(in Input) string {
	var words []string

	for _, word := range strings.FieldsFunc(strings.ToLower(in.Record.Comment()), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		if len(word) < minCommentWord || stopwords[word] || isNumeric(word) {
			continue
		}

		words = append(words, word)
		if len(words) == commentWords {
			break
		}
	}

	return strings.Join(words, "-")
}

func pathCandidate(in Input) string {
	parent := naming.Kebab(in.Record.ParentName())
	if parent == "" || parent == in.Tag {
		return ""
	}

	return clean(parent)
}

func fallbackCandidate(in Input) string {
	if word, ok := fallbackWords[in.Tag]; ok {
		return word
	}

	return in.Tag
}

func isNumeric(word string) bool {
	for _, r := range word {
		if !unicode.IsDigit(r) {
			return false
		}
	}

	return true
}
