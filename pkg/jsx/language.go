package jsx

import (
	"path/filepath"
	"strings"
	"sync"
	"unsafe"

	sitter "github.com/alexaandru/go-tree-sitter-bare"
	"github.com/src-d/enry/v2"

	"github.com/alexaandru/go-sitter-forest/javascript"
	"github.com/alexaandru/go-sitter-forest/tsx"
	"github.com/alexaandru/go-sitter-forest/typescript"
)

// Language names a tree-sitter grammar able to parse markup-with-expressions.
type Language string

// Supported grammars.
const (
	JavaScript Language = "javascript"
	TSX        Language = "tsx"
	TypeScript Language = "typescript"
)

// languageFuncs maps grammar names to their tree-sitter GetLanguage functions.
var languageFuncs = map[Language]func() unsafe.Pointer{
	JavaScript: javascript.GetLanguage,
	TSX:        tsx.GetLanguage,
	TypeScript: typescript.GetLanguage,
}

// extensionLanguages maps lowercase file extensions to grammars.
var extensionLanguages = map[string]Language{
	".js":  JavaScript,
	".jsx": JavaScript,
	".mjs": JavaScript,
	".cjs": JavaScript,
	".tsx": TSX,
	".ts":  TypeScript,
	".mts": TypeScript,
	".cts": TypeScript,
}

// enryLanguages maps linguist language names reported by enry to grammars.
var enryLanguages = map[string]Language{
	"JavaScript": JavaScript,
	"JSX":        JavaScript,
	"TSX":        TSX,
	"TypeScript": TypeScript,
}

var grammarCache sync.Map

// grammar returns the tree-sitter language for l, or nil if l is unknown.
func (l Language) grammar() *sitter.Language {
	if cached, ok := grammarCache.Load(l); ok {
		lang, castOK := cached.(*sitter.Language)
		if castOK {
			return lang
		}
	}

	fn, ok := languageFuncs[l]
	if !ok {
		return nil
	}

	lang := sitter.NewLanguage(fn())
	grammarCache.Store(l, lang)

	return lang
}

// Valid reports whether l names a supported grammar.
func (l Language) Valid() bool {
	_, ok := languageFuncs[l]

	return ok
}

// Extensions returns the file extensions handled by the supported grammars.
func Extensions() []string {
	return []string{".js", ".jsx", ".ts", ".tsx"}
}

// LanguageForPath picks a grammar for path. The extension decides first;
// unknown extensions fall back to content-based detection.
func LanguageForPath(path string, content []byte) (Language, bool) {
	if lang, ok := extensionLanguages[strings.ToLower(filepath.Ext(path))]; ok {
		return lang, true
	}

	detected := enry.GetLanguage(filepath.Base(path), content)

	lang, ok := enryLanguages[detected]

	return lang, ok
}
