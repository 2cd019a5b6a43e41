package rod

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapScript(t *testing.T) {
	t.Parallel()

	t.Run("wraps expressions", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "() => (document.readyState === 'complete')",
			wrapScript("document.readyState === 'complete'"))
	})

	t.Run("keeps explicit return bodies", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "() => { return document.title }",
			wrapScript("return document.title"))
	})

	t.Run("ignores identifiers containing return", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "() => (data.returned > 0)",
			wrapScript("data.returned > 0"))
	})
}
