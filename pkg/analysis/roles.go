package analysis

import (
	"slices"
	"strings"

	"github.com/Sumatoshi-tech/testidgen/pkg/jsx"
	"github.com/Sumatoshi-tech/testidgen/pkg/naming"
)

var interactiveNames = map[string]bool{
	"button": true, "a": true, "input": true, "select": true, "textarea": true,
	"option": true, "summary": true, "details": true,
	"Button": true, "IconButton": true, "Link": true, "Input": true, "Select": true,
	"Checkbox": true, "Radio": true, "Switch": true, "Slider": true, "Textarea": true,
	"Menu": true, "MenuButton": true, "MenuItem": true, "Tab": true, "Toggle": true,
	"NumberInput": true, "PinInput": true, "CloseButton": true,
}

var eventHandlers = []string{
	"onClick", "onChange", "onSubmit", "onInput", "onKeyDown", "onKeyUp", "onKeyPress",
	"onFocus", "onBlur", "onMouseDown", "onMouseUp", "onDoubleClick", "onSelect",
	"onToggle", "onPress", "onTouchStart",
}

func isInteractive(el *jsx.Element) bool {
	return interactiveNames[el.Name] || el.HasAttr(eventHandlers...)
}

var exactRoles = map[string]string{
	"button": "button", "a": "link", "textarea": "textbox", "select": "combobox",
	"img": "image", "nav": "navigation", "form": "form", "ul": "list", "ol": "list",
	"li": "listitem", "table": "table", "dialog": "dialog", "progress": "progressbar",
	"h1": "heading-1", "h2": "heading-2", "h3": "heading-3",
	"h4": "heading-4", "h5": "heading-5", "h6": "heading-6",
}

var inputTypeRoles = map[string]string{
	"checkbox": "checkbox", "radio": "radio", "submit": "button", "button": "button",
	"reset": "button", "search": "searchbox", "range": "slider", "number": "spinbutton",
}

type suffixRole struct {
	suffix string
	role   string
}

// suffixRoles is sorted longest suffix first at init so the most specific
// suffix wins.
var suffixRoles = []suffixRole{
	{"Button", "button"}, {"Btn", "button"}, {"Link", "link"}, {"Input", "textbox"},
	{"Field", "textbox"}, {"Select", "combobox"}, {"Dropdown", "combobox"},
	{"Checkbox", "checkbox"}, {"Radio", "radio"}, {"Switch", "switch"}, {"Slider", "slider"},
	{"Form", "form"}, {"Modal", "dialog"}, {"Dialog", "dialog"}, {"Drawer", "dialog"},
	{"Menu", "menu"}, {"MenuItem", "menuitem"}, {"Tabs", "tablist"}, {"Tab", "tab"},
	{"TabPanel", "tabpanel"}, {"List", "list"}, {"ListItem", "listitem"}, {"Table", "table"},
	{"Row", "row"}, {"Cell", "cell"}, {"Nav", "navigation"}, {"Navbar", "navigation"},
	{"Navigation", "navigation"}, {"Image", "image"}, {"Avatar", "image"},
	{"Heading", "heading"}, {"Title", "heading"}, {"Alert", "alert"}, {"Toast", "alert"},
	{"Tooltip", "tooltip"}, {"Progress", "progressbar"}, {"Search", "search"},
}

func init() {
	slices.SortStableFunc(suffixRoles, func(a, b suffixRole) int {
		return len(b.suffix) - len(a.suffix)
	})
}

// frameworkRoles apply to recognized framework components only.
var frameworkRoles = map[string]string{
	"Box": "container", "Flex": "container", "Stack": "container", "HStack": "container",
	"VStack": "container", "Grid": "container", "GridItem": "container",
	"Container": "container", "Center": "container", "SimpleGrid": "container",
	"Wrap": "container", "WrapItem": "container", "Text": "text", "Icon": "icon",
	"Badge": "badge", "Divider": "separator", "Spacer": "container",
}

// landmarks name the ancestors that label a semantic group.
var (
	landmarkTags     = []string{"header", "footer", "nav", "main", "aside", "section", "form", "article"}
	landmarkSuffixes = []string{"Header", "Footer", "Sidebar", "Toolbar", "Navbar"}
)

// inferRole applies the ordered role rules: exact names, then name
// suffixes, then framework primitives, then an explicit role attribute.
func (b *builder) inferRole(el *jsx.Element) string {
	if el.Name == "input" {
		if role, ok := inputTypeRoles[strings.ToLower(b.attrString(el, "type"))]; ok {
			return role
		}

		return "textbox"
	}

	if role, ok := exactRoles[el.Name]; ok {
		return role
	}

	if isComponentName(el.Name) {
		for _, entry := range suffixRoles {
			if strings.HasSuffix(el.Name, entry.suffix) {
				return entry.role
			}
		}

		if role, ok := frameworkRoles[el.Name]; ok && b.recog != nil && b.recog.IsFramework(el.Name) {
			return role
		}
	}

	return b.attrString(el, "role")
}

// semanticGroup labels the nearest enclosing landmark element.
func (b *builder) semanticGroup(id jsx.NodeID) string {
	for cur := b.tree.EnclosingElement(id); cur != jsx.NoNode; cur = b.tree.EnclosingElement(cur) {
		d, ok := b.drafts[cur]
		if !ok {
			continue
		}

		if slices.Contains(landmarkTags, d.name) {
			return d.name
		}

		if isComponentName(d.name) {
			for _, suffix := range landmarkSuffixes {
				if strings.HasSuffix(d.name, suffix) {
					return naming.Kebab(d.name)
				}
			}
		}
	}

	return ""
}

func isComponentName(name string) bool {
	return name != "" && name[0] >= 'A' && name[0] <= 'Z'
}
