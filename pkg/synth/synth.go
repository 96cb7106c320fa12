// Package synth derives test identifiers from analyzed element context.
//
// Every element walks an ordered chain of strategies (role, state, group,
// conditional branch, props, text, class, style, landmark, id, comment,
// parent, fallback); the first non-empty candidate is formatted against the
// tag name, prefixed and made unique within the file. The final fallback
// always yields a value.
package synth

import (
	"slices"
	"strings"

	"github.com/Sumatoshi-tech/testidgen/pkg/analysis"
	"github.com/Sumatoshi-tech/testidgen/pkg/jsx"
	"github.com/Sumatoshi-tech/testidgen/pkg/naming"
)

// Options toggles the strategies and carries the identifier prefix.
type Options struct {
	Prefix         string
	Roles          bool
	State          bool
	Groups         bool
	Conditionals   bool
	DeepProps      bool
	Text           bool
	PrioritizeText bool
	ClassNames     bool
	StyleProps     bool
	PathContext    bool
	Comments       bool
	ReuseShapes    bool
}

// DefaultOptions enables every strategy and the shape cache.
func DefaultOptions() Options {
	return Options{
		Roles:          true,
		State:          true,
		Groups:         true,
		Conditionals:   true,
		DeepProps:      true,
		Text:           true,
		PrioritizeText: true,
		ClassNames:     true,
		StyleProps:     true,
		PathContext:    true,
		Comments:       true,
		ReuseShapes:    true,
	}
}

// Result is one synthesized identifier. For a Dynamic result the attribute
// must be emitted as a template of Base followed by KeyExpr.
type Result struct {
	// ID is the static identifier, or a display form for dynamic results.
	ID string
	// Base is the prefixed candidate before collision suffixes.
	Base     string
	KeyExpr  string
	Strategy string
	Dynamic  bool
}

// Synthesizer runs the strategy chain.
type Synthesizer struct {
	strategies []Strategy
	opts       Options
}

// New returns a synthesizer using DefaultStrategies.
func New(opts Options) *Synthesizer {
	return &Synthesizer{opts: opts, strategies: DefaultStrategies()}
}

// Synthesize returns the identifier for el. It never fails.
func (s *Synthesizer) Synthesize(el *jsx.Element, rec *analysis.Record, reg *Registry) Result {
	tag := naming.Kebab(el.Name)

	if loop := rec.Loop(); loop != nil && loop.HasKey {
		if loop.KeyDynamic {
			base := s.opts.Prefix + tag + "-"

			return Result{
				ID:       base + "${" + loop.Key + "}",
				Base:     base,
				KeyExpr:  loop.Key,
				Strategy: StrategyDynamic,
				Dynamic:  true,
			}
		}

		if key := naming.Slug(loop.Key, 0); key != "" {
			base := s.opts.Prefix + format(tag, key)

			return Result{ID: reg.unique(base), Base: base, Strategy: StrategyLoopKey}
		}
	}

	fingerprint := Fingerprint(el, rec.ParentName())

	if s.opts.ReuseShapes {
		if id, ok := reg.cached(fingerprint); ok {
			return Result{ID: id, Base: id, Strategy: StrategyCache}
		}
	}

	candidate, strategy := s.candidate(Input{Record: rec, Tag: tag})
	base := s.opts.Prefix + format(tag, candidate)
	id := reg.unique(base)

	reg.remember(fingerprint, id)

	return Result{ID: id, Base: base, Strategy: strategy}
}

// candidate returns the first derived value that differs from the tag itself.
func (s *Synthesizer) candidate(in Input) (string, string) {
	for _, strategy := range s.strategies {
		if !strategy.Enabled(s.opts) {
			continue
		}

		if value := strategy.Derive(in); value != "" && value != in.Tag {
			return value, strategy.Name
		}
	}

	return in.Tag, StrategyFallback
}

// format keeps a candidate that already names the tag and otherwise prefixes
// it with the tag. Single-letter tags must appear as a whole segment.
func format(tag, candidate string) string {
	if namesTag(tag, candidate) || (tag == "button" && strings.HasSuffix(candidate, "btn")) {
		return candidate
	}

	return tag + "-" + candidate
}

func namesTag(tag, candidate string) bool {
	if len(tag) > 1 {
		return strings.Contains(candidate, tag)
	}

	return slices.Contains(strings.Split(candidate, "-"), tag)
}
