package synth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/testidgen/pkg/analysis"
	"github.com/Sumatoshi-tech/testidgen/pkg/grouping"
	"github.com/Sumatoshi-tech/testidgen/pkg/jsx"
	"github.com/Sumatoshi-tech/testidgen/pkg/recognize"
	"github.com/Sumatoshi-tech/testidgen/pkg/synth"
)

type named struct {
	name string
	res  synth.Result
}

func synthesizeAll(t *testing.T, src string, opts synth.Options, reg *synth.Registry) []named {
	t.Helper()

	ctx := context.Background()

	tree, err := jsx.Parse(ctx, []byte(src), jsx.JavaScript)
	require.NoError(t, err)

	table := analysis.Build(ctx, tree, recognize.Recognize([]byte(src), false), analysis.Config{Text: opts.Text})
	table = grouping.New().Apply(ctx, table)

	if reg == nil {
		reg = synth.NewRegistry()
	}

	s := synth.New(opts)

	var out []named

	for _, el := range tree.Elements() {
		rec, ok := table.Get(el.ID)
		require.True(t, ok)

		out = append(out, named{name: el.Name, res: s.Synthesize(&el, rec, reg)})
	}

	return out
}

func ids(results []named) []string {
	out := make([]string, 0, len(results))
	for _, r := range results {
		out = append(out, r.res.ID)
	}

	return out
}

func TestSynthesize_StateVariant(t *testing.T) {
	t.Parallel()

	src := `import { Button } from "@chakra-ui/react";
export const A = () => <Button variant="outline" />;
`

	got := synthesizeAll(t, src, synth.DefaultOptions(), nil)

	require.Len(t, got, 1)
	assert.Equal(t, "button-outline", got[0].res.ID)
	assert.Equal(t, synth.StrategyState, got[0].res.Strategy)
}

func TestSynthesize_ConditionalBranch(t *testing.T) {
	t.Parallel()

	src := `export const A = ({ isLoadingData }) => (
  <div>
    {isLoadingData ? <Spinner /> : <Content />}
  </div>
);
`

	got := synthesizeAll(t, src, synth.DefaultOptions(), nil)

	assert.Equal(t, []string{"div-container", "spinner-loading-consequent", "content-loading-alternate"}, ids(got))
	assert.Equal(t, synth.StrategyCond, got[1].res.Strategy)
}

func TestSynthesize_DynamicLoopKey(t *testing.T) {
	t.Parallel()

	src := `export const List = ({ items }) => (
  <ul>
    {items.map((item) => (
      <Row key={item.id} />
    ))}
  </ul>
);
`

	opts := synth.DefaultOptions()
	opts.Prefix = "page-"

	got := synthesizeAll(t, src, opts, nil)

	require.Len(t, got, 2)

	row := got[1].res
	assert.True(t, row.Dynamic)
	assert.Equal(t, "page-row-", row.Base)
	assert.Equal(t, "item.id", row.KeyExpr)
	assert.Equal(t, "page-row-${item.id}", row.ID)
	assert.Equal(t, synth.StrategyDynamic, row.Strategy)

	assert.False(t, got[0].res.Dynamic)
	assert.NotEqual(t, row.ID, got[0].res.ID)
}

func TestSynthesize_StaticLoopKey(t *testing.T) {
	t.Parallel()

	src := `const a = <div>{tabs.map(t => <Tab key="Fixed One" />)}</div>;`

	got := synthesizeAll(t, src, synth.DefaultOptions(), nil)

	assert.Equal(t, "tab-fixed-one", got[1].res.ID)
	assert.Equal(t, synth.StrategyLoopKey, got[1].res.Strategy)
}

func TestSynthesize_FallbackTermination(t *testing.T) {
	t.Parallel()

	tests := []struct {
		src  string
		want string
	}{
		{`const a = <section />;`, "section"},
		{`const a = <div />;`, "div-container"},
		{`const a = <button />;`, "btn"},
		{`const a = <blink />;`, "blink"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			t.Parallel()

			got := synthesizeAll(t, tt.src, synth.Options{}, nil)

			require.Len(t, got, 1)
			assert.Equal(t, tt.want, got[0].res.ID)
			assert.Equal(t, synth.StrategyFallback, got[0].res.Strategy)
		})
	}
}

func TestSynthesize_ShapeCache(t *testing.T) {
	t.Parallel()

	src := `const a = (
  <div>
    <Badge />
    <Badge />
  </div>
);
`

	got := synthesizeAll(t, src, synth.DefaultOptions(), nil)

	assert.Equal(t, []string{"div-container", "badge-div", "badge-div"}, ids(got))
	assert.Equal(t, synth.StrategyCache, got[2].res.Strategy)

	opts := synth.DefaultOptions()
	opts.ReuseShapes = false

	unique := synthesizeAll(t, src, opts, nil)
	assert.Equal(t, []string{"div-container", "badge-div", "badge-div-2"}, ids(unique))
}

func TestSynthesize_ReservedIdentifiers(t *testing.T) {
	t.Parallel()

	reg := synth.NewRegistry()
	reg.Reserve("badge-div")

	got := synthesizeAll(t, `const a = <div><Badge /></div>;`, synth.DefaultOptions(), reg)

	assert.Equal(t, "badge-div-2", got[1].res.ID)
	assert.True(t, reg.Issued("badge-div-2"))
}

func TestSynthesize_TextPriority(t *testing.T) {
	t.Parallel()

	src := `const a = <button className="primary-action">Save changes</button>;`

	got := synthesizeAll(t, src, synth.DefaultOptions(), nil)
	assert.Equal(t, "button-save-changes", got[0].res.ID)

	opts := synth.DefaultOptions()
	opts.PrioritizeText = false

	got = synthesizeAll(t, src, opts, nil)
	assert.Equal(t, "button-primary-action", got[0].res.ID)
	assert.Equal(t, synth.StrategyClass, got[0].res.Strategy)
}

func TestSynthesize_TextRequiresPriority(t *testing.T) {
	t.Parallel()

	opts := synth.DefaultOptions()
	opts.PrioritizeText = false

	got := synthesizeAll(t, `const a = <p>Hello world</p>;`, opts, nil)

	require.Len(t, got, 1)
	assert.Equal(t, "p-paragraph", got[0].res.ID)
	assert.NotEqual(t, synth.StrategyText, got[0].res.Strategy)
}

func TestSynthesize_SkipsCandidateEqualToTag(t *testing.T) {
	t.Parallel()

	got := synthesizeAll(t, `const a = <div id="div" />;`, synth.DefaultOptions(), nil)

	require.Len(t, got, 1)
	assert.Equal(t, "div-container", got[0].res.ID)
	assert.Equal(t, synth.StrategyFallback, got[0].res.Strategy)
}

func TestSynthesize_RoleAlreadyNamedByTag(t *testing.T) {
	t.Parallel()

	src := `const a = (
  <div>
    <SubmitButton />
    <SearchInput />
  </div>
);
`

	got := synthesizeAll(t, src, synth.Options{Roles: true}, nil)

	require.Len(t, got, 3)
	assert.Equal(t, "submit-button", got[1].res.ID)
	assert.Equal(t, synth.StrategyFallback, got[1].res.Strategy)
	assert.Equal(t, "search-input-textbox", got[2].res.ID)
	assert.Equal(t, synth.StrategyRole, got[2].res.Strategy)
}

// Dynamic ids keep the tag so two loops over the same array stay distinct.
func TestSynthesize_DynamicKeysPerTag(t *testing.T) {
	t.Parallel()

	src := `const a = (
  <div>
    {items.map((item) => <Card key={item.id} />)}
    {items.map((item) => <Row key={item.id} />)}
  </div>
);
`

	got := synthesizeAll(t, src, synth.DefaultOptions(), nil)

	require.Len(t, got, 3)
	assert.Equal(t, "card-${item.id}", got[1].res.ID)
	assert.Equal(t, "row-${item.id}", got[2].res.ID)
	assert.True(t, got[1].res.Dynamic)
	assert.True(t, got[2].res.Dynamic)
}

func TestSynthesize_Prefix(t *testing.T) {
	t.Parallel()

	opts := synth.DefaultOptions()
	opts.Prefix = "task-page-"

	got := synthesizeAll(t, `const a = <div title="Search tasks" />;`, opts, nil)

	assert.Equal(t, "task-page-div-search-tasks", got[0].res.ID)
	assert.Equal(t, "task-page-div-search-tasks", got[0].res.Base)
	assert.Equal(t, synth.StrategyDeepProp, got[0].res.Strategy)
}

func TestFingerprint(t *testing.T) {
	t.Parallel()

	tree, err := jsx.Parse(context.Background(), []byte(`const a = <Card title="x" as="li" />;`), jsx.JavaScript)
	require.NoError(t, err)

	assert.Equal(t, "Card|as,title|Stack", synth.Fingerprint(&tree.Elements()[0], "Stack"))
}
