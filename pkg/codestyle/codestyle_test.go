package codestyle_test

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode"
)

// projectRoot returns the repository root by walking up from the current file.
func projectRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}

	for {
		_, statErr := os.Stat(filepath.Join(dir, "go.mod"))
		if statErr == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not find project root (no go.mod found)")
		}

		dir = parent
	}
}

// skipDir reports directories the go tool ignores plus fixture trees.
func skipDir(name string) bool {
	if strings.HasPrefix(name, "_") || (strings.HasPrefix(name, ".") && name != ".") {
		return true
	}

	switch name {
	case "vendor", "testdata", "node_modules", "results":
		return true
	default:
		return false
	}
}

// walkSources calls fn for every non-test Go source file under root.
func walkSources(t *testing.T, root string, fn func(rel string, f *ast.File)) {
	t.Helper()

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if path != root && skipDir(d.Name()) {
				return filepath.SkipDir
			}

			return nil
		}

		if !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}

		parsed, parseErr := parser.ParseFile(token.NewFileSet(), path, nil, parser.SkipObjectResolution)
		if parseErr != nil {
			return fmt.Errorf("parsing Go file %s: %w", path, parseErr)
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return fmt.Errorf("computing relative path for %s: %w", path, relErr)
		}

		fn(rel, parsed)

		return nil
	})
	if err != nil {
		t.Fatalf("walk: %v", err)
	}
}

// bannedFilenames maps grab-bag file names to the fix expected instead.
var bannedFilenames = map[string]string{
	"types.go":     "move each type next to the code that uses it",
	"utils.go":     "move each function to the file that owns its domain",
	"helpers.go":   "move each function to the file that owns its domain",
	"common.go":    "move each symbol to the file that owns its concept",
	"constants.go": "move each constant next to its primary use",
	"errors.go":    "declare sentinel errors next to the functions returning them",
}

// TestNoBannedFilenames verifies that no Go source files use grab-bag naming patterns.
func TestNoBannedFilenames(t *testing.T) {
	t.Parallel()

	var violations []string

	walkSources(t, projectRoot(t), func(rel string, _ *ast.File) {
		if fix, banned := bannedFilenames[filepath.Base(rel)]; banned {
			violations = append(violations, fmt.Sprintf("%s: %s", rel, fix))
		}
	})

	if len(violations) > 0 {
		t.Errorf("found %d banned filename(s):\n%s", len(violations), strings.Join(violations, "\n"))
	}
}

// TestNoGrabBagPackages verifies that package names describe a domain.
func TestNoGrabBagPackages(t *testing.T) {
	t.Parallel()

	banned := map[string]bool{"util": true, "utils": true, "misc": true, "shared": true, "base": true, "generic": true}

	var violations []string

	walkSources(t, projectRoot(t), func(rel string, f *ast.File) {
		if banned[f.Name.Name] {
			violations = append(violations, fmt.Sprintf("package %q in %s", f.Name.Name, rel))
		}
	})

	if len(violations) > 0 {
		t.Errorf("found %d grab-bag package(s):\n%s", len(violations), strings.Join(violations, "\n"))
	}
}

// stutters reports whether an exported identifier repeats the package name
// at a word boundary: checkpoint.CheckpointManager stutters, config.Config
// and analyze.Analyzer do not.
func stutters(pkgName, exportedName string) (string, bool) {
	titled := strings.ToUpper(pkgName[:1]) + pkgName[1:]

	if !strings.HasPrefix(exportedName, titled) {
		return "", false
	}

	rest := exportedName[len(titled):]
	if rest == "" {
		return "", false
	}

	first := rune(rest[0])
	if !unicode.IsUpper(first) && !unicode.IsDigit(first) {
		return "", false
	}

	return rest, true
}

func TestStutters(t *testing.T) {
	t.Parallel()

	tests := []struct {
		pkg, name, rest string
		want            bool
	}{
		{"checkpoint", "CheckpointManager", "Manager", true},
		{"config", "Config", "", false},
		{"synth", "Synthesizer", "", false},
		{"report", "Options", "", false},
	}

	for _, tt := range tests {
		rest, got := stutters(tt.pkg, tt.name)
		if got != tt.want || rest != tt.rest {
			t.Errorf("stutters(%q, %q) = (%q, %v), want (%q, %v)", tt.pkg, tt.name, rest, got, tt.rest, tt.want)
		}
	}
}

// TestNoStutteringExports detects exported type names that stutter with the package name.
func TestNoStutteringExports(t *testing.T) {
	t.Parallel()

	var violations []string

	walkSources(t, projectRoot(t), func(rel string, f *ast.File) {
		pkgName := strings.ToLower(f.Name.Name)

		for _, decl := range f.Decls {
			genDecl, ok := decl.(*ast.GenDecl)
			if !ok || genDecl.Tok != token.TYPE {
				continue
			}

			for _, spec := range genDecl.Specs {
				typeSpec, isTypeSpec := spec.(*ast.TypeSpec)
				if !isTypeSpec || !ast.IsExported(typeSpec.Name.Name) {
					continue
				}

				if trimmed, isStutter := stutters(pkgName, typeSpec.Name.Name); isStutter {
					violations = append(violations, fmt.Sprintf("%s: rename %s.%s to %s.%s",
						rel, f.Name.Name, typeSpec.Name.Name, f.Name.Name, trimmed))
				}
			}
		}
	})

	if len(violations) > 0 {
		t.Errorf("found %d stuttering export(s):\n%s", len(violations), strings.Join(violations, "\n"))
	}
}
