// Package recognize classifies element names found in a source file as
// UI-framework components, application components or plain markup tags.
package recognize

import (
	"regexp"
	"sort"
	"strings"
)

// Framework names a UI component library recognized by its import path.
type Framework string

// Known frameworks.
const (
	Chakra         Framework = "chakra"
	MUI            Framework = "mui"
	AntDesign      Framework = "antd"
	ReactBootstrap Framework = "react-bootstrap"
	Mantine        Framework = "mantine"
	SemanticUI     Framework = "semantic-ui"
	HeadlessUI     Framework = "headlessui"
	Radix          Framework = "radix"
)

// Category is the processing class of an element name.
type Category string

// Element categories.
const (
	CategoryFramework Category = "framework"
	CategoryCustom    Category = "custom"
	CategoryHTML      Category = "html"
	CategoryNone      Category = ""
)

type frameworkPattern struct {
	framework Framework
	prefixes  []string
}

// frameworkPatterns is checked in order; the first matching prefix wins.
var frameworkPatterns = []frameworkPattern{
	{Chakra, []string{"@chakra-ui/"}},
	{MUI, []string{"@mui/", "@material-ui/"}},
	{AntDesign, []string{"antd", "@ant-design/"}},
	{ReactBootstrap, []string{"react-bootstrap"}},
	{Mantine, []string{"@mantine/"}},
	{SemanticUI, []string{"semantic-ui-react"}},
	{HeadlessUI, []string{"@headlessui/"}},
	{Radix, []string{"@radix-ui/"}},
}

// DefaultLayoutComponents are assumed to be framework components when a file
// imports none.
var DefaultLayoutComponents = []string{
	"Box", "Flex", "Stack", "HStack", "VStack", "Grid", "GridItem", "Container",
	"Center", "SimpleGrid", "Wrap", "WrapItem", "Card", "CardHeader", "CardBody", "CardFooter",
}

// htmlElements is the fixed set of markup tags eligible for processing.
var htmlElements = []string{
	"div", "span", "p", "a", "button", "input", "textarea", "select", "option", "label", "form",
	"fieldset", "legend", "h1", "h2", "h3", "h4", "h5", "h6", "ul", "ol", "li", "dl", "dt", "dd",
	"table", "thead", "tbody", "tfoot", "tr", "td", "th", "caption", "img", "video", "audio",
	"picture", "iframe", "canvas", "svg", "nav", "header", "footer", "main", "section", "article",
	"aside", "dialog", "details", "summary", "figure", "figcaption", "progress", "meter",
	"strong", "em", "small", "code", "pre", "blockquote",
}

// customSuffixes and customPrefixes decide which capitalized tags are treated as
// application components.
var (
	customSuffixes = []string{
		"Button", "Btn", "Link", "Input", "Field", "Select", "Dropdown", "Checkbox", "Toggle",
		"Modal", "Dialog", "Drawer", "Popover", "Tooltip", "Form", "Card", "List", "Item",
		"Table", "Row", "Cell", "Header", "Footer", "Nav", "Navbar", "Navigation", "Menu",
		"Tab", "Tabs", "Panel", "Section", "Sidebar", "Page", "View", "Screen", "Layout",
		"Container", "Wrapper", "Content", "Icon", "Badge", "Avatar", "Image", "Spinner",
		"Loader", "Skeleton", "Alert", "Toast", "Banner", "Pagination", "Search", "Filter",
		"Chart", "Widget", "Tile", "Title", "Label", "Text", "Heading",
	}
	customPrefixes = []string{"Form", "Modal", "Nav", "List", "Table", "Card", "Button", "Custom", "App", "Page", "Dialog"}
)

var (
	importRe     = regexp.MustCompile(`import\s+(?:type\s+)?([\w$*{}\s,]+?)\s+from\s+['"]([^'"]+)['"]`)
	tagRe        = regexp.MustCompile(`<([A-Z][\w$]*)([.:]?)`)
	namespacedRe = regexp.MustCompile(`<([A-Za-z][\w$]*(?:\.[A-Za-z][\w$]*)+|[a-z][\w-]*:[a-z][\w-]*)`)
)

// Result is the classification of one source file.
type Result struct {
	frameworks          map[Framework]bool
	frameworkComponents map[string]bool
	customComponents    map[string]bool
	htmlElements        map[string]bool
	namespaced          map[string]bool
	usedFallback        bool
}

// Recognize scans source text for framework imports and component names.
// When no framework component is found and htmlOnly is false, the default
// layout component list is used instead.
func Recognize(source []byte, htmlOnly bool) *Result {
	text := string(source)

	res := &Result{
		frameworks:          make(map[Framework]bool),
		frameworkComponents: make(map[string]bool),
		customComponents:    make(map[string]bool),
		htmlElements:        make(map[string]bool, len(htmlElements)),
		namespaced:          make(map[string]bool),
	}

	for _, tag := range htmlElements {
		res.htmlElements[tag] = true
	}

	for _, match := range importRe.FindAllStringSubmatch(text, -1) {
		framework, ok := frameworkFor(match[2])
		if !ok {
			continue
		}

		res.frameworks[framework] = true

		for _, name := range importedNames(match[1]) {
			if isCapitalized(name) {
				res.frameworkComponents[name] = true
			}
		}
	}

	if len(res.frameworkComponents) == 0 && !htmlOnly {
		res.usedFallback = true

		for _, name := range DefaultLayoutComponents {
			res.frameworkComponents[name] = true
		}
	}

	for _, match := range tagRe.FindAllStringSubmatch(text, -1) {
		name := match[1]
		if match[2] != "" || res.frameworkComponents[name] {
			continue
		}

		if matchesCustomPattern(name) {
			res.customComponents[name] = true
		}
	}

	for _, match := range namespacedRe.FindAllStringSubmatch(text, -1) {
		res.namespaced[match[1]] = true
	}

	return res
}

// Has reports whether framework was detected.
func (r *Result) Has(framework Framework) bool {
	return r.frameworks[framework]
}

// Frameworks returns the detected frameworks in sorted order.
func (r *Result) Frameworks() []Framework {
	out := make([]Framework, 0, len(r.frameworks))
	for fw := range r.frameworks {
		out = append(out, fw)
	}

	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })

	return out
}

// FrameworkComponents returns the framework component names in sorted order.
func (r *Result) FrameworkComponents() []string {
	return sortedKeys(r.frameworkComponents)
}

// CustomComponents returns the application component names in sorted order.
func (r *Result) CustomComponents() []string {
	return sortedKeys(r.customComponents)
}

// HTMLElements returns the markup tag set in sorted order.
func (r *Result) HTMLElements() []string {
	return sortedKeys(r.htmlElements)
}

// Namespaced returns the member/namespace tag names seen in the source.
func (r *Result) Namespaced() []string {
	return sortedKeys(r.namespaced)
}

// UsedFallback reports whether the default layout list replaced detection.
func (r *Result) UsedFallback() bool {
	return r.usedFallback
}

// IsFramework reports whether name is a framework component.
func (r *Result) IsFramework(name string) bool {
	return r.frameworkComponents[name]
}

// Category classifies an element name. Framework membership wins over the
// custom patterns, and both win over markup tags.
func (r *Result) Category(name string) Category {
	switch {
	case r.frameworkComponents[name]:
		return CategoryFramework
	case r.customComponents[name]:
		return CategoryCustom
	case r.htmlElements[name]:
		return CategoryHTML
	default:
		return CategoryNone
	}
}

func frameworkFor(importPath string) (Framework, bool) {
	for _, fp := range frameworkPatterns {
		for _, prefix := range fp.prefixes {
			if strings.HasPrefix(importPath, prefix) {
				return fp.framework, true
			}
		}
	}

	return "", false
}

// importedNames extracts local binding names from an import clause such as
// `Default, { A, B as C, type D }`.
func importedNames(clause string) []string {
	var names []string

	head, braces, hasBraces := strings.Cut(clause, "{")
	if hasBraces {
		braces, _, _ = strings.Cut(braces, "}")

		for _, member := range strings.Split(braces, ",") {
			member = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(member), "type "))
			if member == "" {
				continue
			}

			if _, alias, ok := strings.Cut(member, " as "); ok {
				member = strings.TrimSpace(alias)
			}

			names = append(names, member)
		}
	}

	for _, part := range strings.Split(head, ",") {
		part = strings.TrimSpace(part)
		if part == "" || strings.HasPrefix(part, "*") {
			continue
		}

		names = append(names, part)
	}

	return names
}

func matchesCustomPattern(name string) bool {
	for _, suffix := range customSuffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}

	for _, prefix := range customPrefixes {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}

	return false
}

func isCapitalized(name string) bool {
	return name != "" && name[0] >= 'A' && name[0] <= 'Z'
}

func sortedKeys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for key := range set {
		out = append(out, key)
	}

	sort.Strings(out)

	return out
}
