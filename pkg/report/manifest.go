package report

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Sumatoshi-tech/testidgen/pkg/codemod"
)

// ErrEmptyManifestPath is returned when no manifest destination is given.
var ErrEmptyManifestPath = errors.New("manifest path is empty")

const manifestPerm = 0o644

// Manifest lists every identifier added in a run, grouped by source file.
type Manifest struct {
	Prefix string         `yaml:"prefix,omitempty"`
	Files  []ManifestFile `yaml:"files"`
}

// ManifestFile is the manifest entry of one annotated file.
type ManifestFile struct {
	Path    string               `yaml:"path"`
	Output  string               `yaml:"output,omitempty"`
	TestIDs []codemod.Assignment `yaml:"test_ids"`
}

// BuildManifest collects the successful files of a run. Failed files are
// left out.
func BuildManifest(prefix string, files []*codemod.FileResult) Manifest {
	m := Manifest{Prefix: prefix, Files: make([]ManifestFile, 0, len(files))}

	for _, fr := range files {
		if !fr.OK() {
			continue
		}

		m.Files = append(m.Files, ManifestFile{
			Path:    fr.Path,
			Output:  fr.OutputPath,
			TestIDs: fr.Result.Assignments,
		})
	}

	return m
}

// WriteManifest encodes m as YAML into path.
func WriteManifest(path string, m Manifest) error {
	if path == "" {
		return ErrEmptyManifestPath
	}

	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}

	err = os.WriteFile(path, data, manifestPerm)
	if err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	return nil
}
