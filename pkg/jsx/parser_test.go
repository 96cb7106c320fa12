package jsx_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/testidgen/pkg/jsx"
)

const sampleSource = `import { Button } from "@chakra-ui/react";

export function Page({ items }) {
  return (
    <div className="page">
      {/* primary actions */}
      <Button variant="outline" onClick={save}>Save</Button>
      <Menu.Item />
      <ul>
        {items.map(item => <li key={item.id}>{item.label}</li>)}
      </ul>
    </div>
  );
}
`

func parseSample(t *testing.T) *jsx.Tree {
	t.Helper()

	tree, err := jsx.Parse(context.Background(), []byte(sampleSource), jsx.JavaScript)
	require.NoError(t, err)

	return tree
}

func TestParse_ElementsInDocumentOrder(t *testing.T) {
	t.Parallel()

	tree := parseSample(t)

	names := make([]string, 0, len(tree.Elements()))
	for _, el := range tree.Elements() {
		names = append(names, el.Name)
	}

	assert.Equal(t, []string{"div", "Button", "Menu.Item", "ul", "li"}, names)
}

func TestParse_Attributes(t *testing.T) {
	t.Parallel()

	tree := parseSample(t)
	button := tree.Elements()[1]

	assert.Equal(t, []string{"variant", "onClick"}, button.AttrNames())

	variant, ok := button.Attr("variant")
	require.True(t, ok)

	value, ok := tree.StringValue(variant.Value)
	require.True(t, ok)
	assert.Equal(t, "outline", value)
	assert.True(t, button.HasAttr("onClick"))
	assert.False(t, button.HasAttr("data-testid"))
	assert.False(t, button.SelfClosing)
}

func TestParse_NamespacedElement(t *testing.T) {
	t.Parallel()

	tree := parseSample(t)
	item := tree.Elements()[2]

	assert.Equal(t, "Menu.Item", item.Name)
	assert.True(t, item.Namespaced())
	assert.True(t, item.SelfClosing)
}

func TestParse_ParentLinks(t *testing.T) {
	t.Parallel()

	tree := parseSample(t)
	li := tree.Elements()[4]
	ul := tree.Elements()[3]

	assert.Equal(t, ul.ID, tree.EnclosingElement(li.ID))
	assert.Equal(t, jsx.NoNode, tree.EnclosingElement(tree.Elements()[0].ID))
	assert.Equal(t, jsx.NoNode, tree.Parent(tree.Root()))
}

func TestParse_Positions(t *testing.T) {
	t.Parallel()

	tree := parseSample(t)
	button := tree.Elements()[1]

	pos := tree.Position(button.ID)
	assert.Equal(t, 7, pos.Line)
	assert.Equal(t, 7, pos.Column)
}

func TestParse_SyntaxError(t *testing.T) {
	t.Parallel()

	src := []byte("const x = (\n  <div className=>\n    hello\n  </div>\n);\n")

	_, err := jsx.Parse(context.Background(), src, jsx.JavaScript)
	require.Error(t, err)
	assert.True(t, errors.Is(err, jsx.ErrSyntax))

	var parseErr *jsx.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Positive(t, parseErr.Line)
	assert.Positive(t, parseErr.Column)
}

func TestParse_UnsupportedLanguage(t *testing.T) {
	t.Parallel()

	_, err := jsx.Parse(context.Background(), []byte("<div />"), jsx.Language("cobol"))
	require.ErrorIs(t, err, jsx.ErrUnsupportedLanguage)
}

func TestParse_TSXGenerics(t *testing.T) {
	t.Parallel()

	src := []byte(`export const Row = <T,>(props: { value: T }) => <td className="cell">{String(props.value)}</td>;`)

	tree, err := jsx.Parse(context.Background(), src, jsx.TSX)
	require.NoError(t, err)
	require.Len(t, tree.Elements(), 1)
	assert.Equal(t, "td", tree.Elements()[0].Name)
}

func TestStringValue_Template(t *testing.T) {
	t.Parallel()

	src := []byte("const a = <div className={`card ${active ? 'on' : ''} wide`} />;")

	tree, err := jsx.Parse(context.Background(), src, jsx.JavaScript)
	require.NoError(t, err)

	attr, ok := tree.Elements()[0].Attr("className")
	require.True(t, ok)

	inner := tree.Children(attr.Value)
	require.Len(t, inner, 1)

	value, ok := tree.StringValue(inner[0])
	require.True(t, ok)
	assert.Equal(t, "card wide", value)
}

func TestLanguageForPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want jsx.Language
	}{
		{"src/App.jsx", jsx.JavaScript},
		{"src/App.js", jsx.JavaScript},
		{"src/App.tsx", jsx.TSX},
		{"src/api.ts", jsx.TypeScript},
	}

	for _, tt := range tests {
		lang, ok := jsx.LanguageForPath(tt.path, nil)
		require.True(t, ok, tt.path)
		assert.Equal(t, tt.want, lang, tt.path)
	}

	assert.True(t, jsx.TSX.Valid())
	assert.False(t, jsx.Language("go").Valid())
}
