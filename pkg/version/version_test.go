package version_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Sumatoshi-tech/testidgen/pkg/version"
)

func TestString(t *testing.T) {
	version.Init()

	out := version.String()

	assert.True(t, strings.HasPrefix(out, "testidgen "))
	assert.Contains(t, out, "commit: ")
	assert.NotEmpty(t, version.Version)
}
