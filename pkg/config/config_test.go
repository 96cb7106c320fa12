package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/testidgen/pkg/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), ".testidgen.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoadConfig_EmptyFileUsesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := config.LoadConfig(writeConfig(t, ""))
	require.NoError(t, err)

	assert.Equal(t, config.DefaultOutputDir, cfg.Output)
	assert.True(t, cfg.Scope.IncludeHTML)
	assert.False(t, cfg.Scope.HTMLOnly)
	assert.True(t, cfg.Naming.PrioritizeText)
	assert.False(t, cfg.Naming.ChildText)
	assert.True(t, cfg.Naming.ReuseShapes)
	assert.Equal(t, config.DefaultLogLevel, cfg.Logging.Level)
	assert.Equal(t, config.DefaultLogFormat, cfg.Logging.Format)
}

func TestLoadConfig_FromFile(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
output: out/testids
scope:
  html_only: true
naming:
  comments: false
  child_text: true
logging:
  format: json
batch:
  recursive: true
`)

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "out/testids", cfg.Output)
	assert.True(t, cfg.Scope.HTMLOnly)
	assert.False(t, cfg.Naming.Comments)
	assert.True(t, cfg.Naming.ChildText)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.True(t, cfg.Batch.Recursive)
}

func TestLoadConfig_FromEnvironment(t *testing.T) {
	t.Setenv("TESTIDGEN_OUTPUT", "/tmp/env-results")
	t.Setenv("TESTIDGEN_NAMING_ROLES", "false")

	cfg, err := config.LoadConfig(writeConfig(t, ""))
	require.NoError(t, err)

	assert.Equal(t, "/tmp/env-results", cfg.Output)
	assert.False(t, cfg.Naming.Roles)
}

func TestLoadConfig_SchemaViolation(t *testing.T) {
	t.Parallel()

	_, err := config.LoadConfig(writeConfig(t, "naming:\n  colour: true\n"))
	require.ErrorIs(t, err, config.ErrSchemaViolation)

	_, err = config.LoadConfig(writeConfig(t, "logging:\n  format: xml\n"))
	require.ErrorIs(t, err, config.ErrSchemaViolation)
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	t.Parallel()

	_, err := config.LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		yaml    string
		wantErr bool
	}{
		{name: "empty", yaml: ""},
		{name: "valid", yaml: "output: results\nnaming:\n  text: false\n"},
		{name: "wrong type", yaml: "naming:\n  text: maybe\n", wantErr: true},
		{name: "unknown section", yaml: "server:\n  port: 1\n", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := config.Validate([]byte(tt.yaml))
			if tt.wantErr {
				require.ErrorIs(t, err, config.ErrSchemaViolation)

				return
			}

			require.NoError(t, err)
		})
	}
}
