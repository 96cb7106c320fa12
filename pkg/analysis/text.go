package analysis

import (
	"strings"

	"github.com/Sumatoshi-tech/testidgen/pkg/jsx"
	"github.com/Sumatoshi-tech/testidgen/pkg/naming"
)

// MaxTextLen caps extracted descendant text.
const MaxTextLen = 50

// textBearing elements have their text extracted even without child-text mode.
var textBearing = map[string]bool{
	"p": true, "span": true, "a": true, "button": true, "label": true, "li": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"td": true, "th": true, "option": true, "summary": true, "legend": true,
	"caption": true, "figcaption": true, "strong": true, "em": true, "small": true,
	"Text": true, "Heading": true, "Button": true, "Link": true, "Badge": true,
	"Tag": true, "Title": true, "Label": true, "MenuItem": true, "Tab": true,
}

// textLike children contribute their own direct text one level down.
var textLike = map[string]bool{
	"span": true, "strong": true, "em": true, "b": true, "i": true, "small": true,
	"code": true, "mark": true, "label": true, "Text": true, "Heading": true,
}

func (b *builder) elementText(el *jsx.Element) string {
	var parts []string

	b.collectText(el, &parts, 0)

	return naming.Truncate(naming.CollapseSpace(strings.Join(parts, " ")), MaxTextLen)
}

func (b *builder) collectText(el *jsx.Element, parts *[]string, depth int) {
	for _, child := range el.Children {
		switch b.tree.Type(child) {
		case "jsx_text", "html_character_reference":
			*parts = append(*parts, b.tree.Text(child))
		case "jsx_expression":
			if value, ok := b.tree.StringValue(b.expression(child)); ok {
				*parts = append(*parts, value)
			}
		case "jsx_element", "jsx_self_closing_element":
			inner, ok := b.tree.Element(child)
			if !ok {
				continue
			}

			if b.cfg.RecursiveText || (depth == 0 && textLike[inner.Name]) {
				b.collectText(inner, parts, depth+1)
			}
		}
	}
}
