package naming_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Sumatoshi-tech/testidgen/pkg/naming"
)

func TestKebab(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"IconButton", "icon-button"},
		{"HStack", "hstack"},
		{"h1", "h1"},
		{"div", "div"},
		{"MenuItem", "menu-item"},
		{"Card2Body", "card2-body"},
		{"Modal.Header", "modal-header"},
		{"svg:rect", "svg-rect"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, naming.Kebab(tt.in))
		})
	}
}

func TestSlug(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "save-changes", naming.Slug("  Save   Changes! ", 0))
	assert.Equal(t, "user_name", naming.Slug("user_name", 0))
	assert.Equal(t, "enter-your-email", naming.Slug("Enter your email address", 16))
	assert.Equal(t, "a-b-c", naming.Slug("a-b-c---", 0))
	assert.Empty(t, naming.Slug("!!!", 0))
}

func TestKebabize(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "task-page-", naming.Kebabize("Task Page!!"))
	assert.Equal(t, "already-kebab-", naming.Kebabize("already-kebab-"))
	assert.Equal(t, "abc", naming.Kebabize("--abc"))
}

func TestTruncateAndCollapse(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "héllo", naming.Truncate("héllo world", 5))
	assert.Equal(t, "short", naming.Truncate("short", 10))
	assert.Equal(t, "a b c", naming.CollapseSpace("  a\n\tb   c "))
}
