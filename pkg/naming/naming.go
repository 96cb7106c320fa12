// Package naming provides the string normalizations shared by the analysis and
// identifier synthesis stages.
package naming

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	nonWordRe     = regexp.MustCompile(`[^\w\s-]`)
	separatorRe   = regexp.MustCompile(`\s+`)
	hyphenRunRe   = regexp.MustCompile(`-{2,}`)
	nonAlnumRunRe = regexp.MustCompile(`[^a-z0-9]+`)
)

// Kebab converts a tag or component name to lowercase kebab case.
// "IconButton" becomes "icon-button", "HStack" stays "hstack", "h1" stays "h1".
func Kebab(name string) string {
	var sb strings.Builder

	runes := []rune(name)
	for i, r := range runes {
		if unicode.IsUpper(r) && i > 0 {
			prev := runes[i-1]
			if unicode.IsLower(prev) || unicode.IsDigit(prev) {
				sb.WriteByte('-')
			}
		}

		switch {
		case r == '.' || r == ':' || r == '_':
			sb.WriteByte('-')
		default:
			sb.WriteRune(unicode.ToLower(r))
		}
	}

	return strings.Trim(hyphenRunRe.ReplaceAllString(sb.String(), "-"), "-")
}

// Slug lowercases value, strips non-word characters, turns whitespace into
// hyphens and truncates the result to limit runes. A limit of zero disables
// truncation.
func Slug(value string, limit int) string {
	out := strings.ToLower(strings.TrimSpace(value))
	out = nonWordRe.ReplaceAllString(out, "")
	out = separatorRe.ReplaceAllString(out, "-")
	out = hyphenRunRe.ReplaceAllString(out, "-")
	out = strings.Trim(out, "-")

	if limit > 0 {
		runes := []rune(out)
		if len(runes) > limit {
			out = strings.TrimRight(string(runes[:limit]), "-")
		}
	}

	return out
}

// Kebabize lowercases value and collapses every run of non-alphanumeric
// characters into a single hyphen. Leading hyphens are dropped; a trailing
// hyphen is kept.
func Kebabize(value string) string {
	out := nonAlnumRunRe.ReplaceAllString(strings.ToLower(value), "-")

	return strings.TrimLeft(out, "-")
}

// Truncate shortens s to at most limit runes.
func Truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}

	return string(runes[:limit])
}

// CollapseSpace replaces every whitespace run with a single space and trims the result.
func CollapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
