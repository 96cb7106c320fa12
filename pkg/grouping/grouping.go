// Package grouping buckets analyzed elements into coarse UI-pattern groups
// such as forms, navigation, lists and dialogs.
package grouping

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"

	"github.com/Sumatoshi-tech/testidgen/pkg/analysis"
	"github.com/Sumatoshi-tech/testidgen/pkg/jsx"
)

// Group types.
const (
	Form       = "form"
	Navigation = "navigation"
	List       = "list"
	Table      = "table"
	Card       = "card"
	Search     = "search"
	Auth       = "auth"
	Dialog     = "dialog"
	Pagination = "pagination"
	Layout     = "layout"
	Header     = "header"
	Footer     = "footer"
)

// Subject is the lowercased view of a record that rules match against.
type Subject struct {
	Name        string
	Parent      string
	Comment     string
	Interactive bool
}

// Rule assigns a group when Match holds. Role picks the role within it.
type Rule struct {
	Match func(Subject) bool
	Role  func(Subject) string
	Type  string
}

// DefaultRules is the precedence-ordered rule list. The first match wins.
var DefaultRules = []Rule{
	{Type: Form, Match: mentions("form", "fieldset"), Role: formRole},
	{Type: Navigation, Match: mentions("nav", "menu", "breadcrumb"), Role: navigationRole},
	{Type: List, Match: mentions("list", "ul", "ol", "li"), Role: listRole},
	{Type: Table, Match: mentions("table", "thead", "tbody", "tr", "td", "th"), Role: tableRole},
	{Type: Card, Match: mentions("card"), Role: sectionRole},
	{Type: Search, Match: mentions("search", "filter"), Role: inputRole},
	{Type: Auth, Match: mentions("login", "signin", "signup", "register", "auth", "password"), Role: inputRole},
	{Type: Dialog, Match: mentions("modal", "dialog", "drawer", "popover"), Role: dialogRole},
	{Type: Pagination, Match: mentions("pagination", "pager", "paginate"), Role: paginationRole},
	{Type: Layout, Match: mentions("layout", "grid", "stack", "flex", "container", "wrapper"), Role: containerRole},
	{Type: Header, Match: mentions("header", "topbar", "appbar"), Role: containerRole},
	{Type: Footer, Match: mentions("footer"), Role: containerRole},
}

// Classifier applies an ordered rule list.
type Classifier struct {
	rules []Rule
}

// New returns a classifier over rules, or DefaultRules when rules is empty.
func New(rules ...Rule) *Classifier {
	if len(rules) == 0 {
		rules = DefaultRules
	}

	return &Classifier{rules: rules}
}

// Classify returns the group of rec, or false when no rule matches.
func (c *Classifier) Classify(rec *analysis.Record) (analysis.Group, bool) {
	subject := Subject{
		Name:        strings.ToLower(rec.Name()),
		Parent:      strings.ToLower(rec.ParentName()),
		Comment:     strings.ToLower(rec.Comment()),
		Interactive: rec.Interactive(),
	}

	for _, rule := range c.rules {
		if rule.Match(subject) {
			return analysis.Group{Type: rule.Type, Role: rule.Role(subject)}, true
		}
	}

	return analysis.Group{}, false
}

// Apply classifies every record in table and returns the grouped table.
func (c *Classifier) Apply(ctx context.Context, table *analysis.Table) *analysis.Table {
	_, span := otel.Tracer("testidgen/grouping").Start(ctx, "grouping.Apply")
	defer span.End()

	groups := make(map[jsx.NodeID]analysis.Group)

	for _, rec := range table.Records() {
		if group, ok := c.Classify(rec); ok {
			groups[rec.Node()] = group
		}
	}

	return table.WithGroups(groups)
}

// mentions matches when the name or parent is one of the short tag keywords,
// or when a longer keyword occurs in the name, parent or comment.
func mentions(keywords ...string) func(Subject) bool {
	return func(s Subject) bool {
		for _, kw := range keywords {
			if len(kw) <= 2 { //nolint:mnd // tag-sized keywords match exactly
				if s.Name == kw || s.Parent == kw {
					return true
				}

				continue
			}

			if strings.Contains(s.Name, kw) || strings.Contains(s.Parent, kw) || containsWord(s.Comment, kw) {
				return true
			}
		}

		return false
	}
}

func containsWord(text, kw string) bool {
	for _, word := range strings.FieldsFunc(text, func(r rune) bool {
		return (r < 'a' || r > 'z') && (r < '0' || r > '9')
	}) {
		if strings.HasPrefix(word, kw) {
			return true
		}
	}

	return false
}

func has(s string, parts ...string) bool {
	for _, part := range parts {
		if strings.Contains(s, part) {
			return true
		}
	}

	return false
}

func formRole(s Subject) string {
	switch {
	case has(s.Name, "form", "fieldset"):
		return "container"
	case has(s.Name, "label", "legend"):
		return "label"
	case s.Interactive || has(s.Name, "input", "select", "textarea", "field", "checkbox", "radio", "switch"):
		return "field"
	default:
		return "section"
	}
}

func navigationRole(s Subject) string {
	if has(s.Parent, "nav", "menu", "breadcrumb") && !has(s.Name, "nav", "breadcrumb") {
		return "item"
	}

	return "container"
}

func listRole(s Subject) string {
	if s.Name == "li" || has(s.Name, "item") {
		return "item"
	}

	inList := has(s.Parent, "list") || s.Parent == "ul" || s.Parent == "ol"
	if inList && !has(s.Name, "list") {
		return "item"
	}

	return "container"
}

func tableRole(s Subject) string {
	switch {
	case s.Name == "thead" || s.Name == "th" || has(s.Name, "header"):
		return "header"
	case s.Name == "tbody" || has(s.Name, "body"):
		return "body"
	case s.Name == "tr" || has(s.Name, "row"):
		return "row"
	case s.Name == "td" || has(s.Name, "cell"):
		return "cell"
	default:
		return "container"
	}
}

func sectionRole(s Subject) string {
	switch {
	case has(s.Name, "header", "title", "heading"):
		return "header"
	case has(s.Name, "body", "content"):
		return "body"
	case has(s.Name, "footer", "actions"):
		return "footer"
	default:
		return "container"
	}
}

func dialogRole(s Subject) string {
	if has(s.Name, "close") {
		return "close"
	}

	return sectionRole(s)
}

func inputRole(s Subject) string {
	switch {
	case s.Name == "button" || has(s.Name, "button", "btn"):
		return "button"
	case s.Interactive || has(s.Name, "input", "field"):
		return "input"
	default:
		return "container"
	}
}

func paginationRole(s Subject) string {
	if s.Interactive {
		return "control"
	}

	return "container"
}

func containerRole(Subject) string {
	return "container"
}
