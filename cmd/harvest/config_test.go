package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fwojciec/harvest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadSelectors(t *testing.T) {
	t.Parallel()

	t.Run("reads JSON selector files", func(t *testing.T) {
		t.Parallel()

		path := writeTempFile(t, "selectors.json", `{
			"title": "h1",
			"price": {"selector": ".price", "extract": "text", "multiple": false}
		}`)

		selectors, err := loadSelectors(path)
		require.NoError(t, err)
		assert.Equal(t, "h1", selectors["title"])

		price, ok := selectors["price"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, ".price", price["selector"])
	})

	t.Run("reads YAML selector files", func(t *testing.T) {
		t.Parallel()

		path := writeTempFile(t, "selectors.yaml", "title: h1\nlinks: a@href\n")

		selectors, err := loadSelectors(path)
		require.NoError(t, err)
		assert.Equal(t, "h1", selectors["title"])
		assert.Equal(t, "a@href", selectors["links"])
	})

	t.Run("preserves field name case", func(t *testing.T) {
		t.Parallel()

		path := writeTempFile(t, "selectors.json", `{"productName": "h1", "ogImage": "meta@content"}`)

		selectors, err := loadSelectors(path)
		require.NoError(t, err)
		assert.Equal(t, "h1", selectors["productName"])
		assert.Equal(t, "meta@content", selectors["ogImage"])
		assert.NotContains(t, selectors, "productname")
	})

	t.Run("preserves field name case in YAML", func(t *testing.T) {
		t.Parallel()

		path := writeTempFile(t, "selectors.yaml", "productName: h1\n")

		selectors, err := loadSelectors(path)
		require.NoError(t, err)
		assert.Equal(t, "h1", selectors["productName"])
	})

	t.Run("rejects malformed files", func(t *testing.T) {
		t.Parallel()

		path := writeTempFile(t, "bad.json", `{"title": `)

		_, err := loadSelectors(path)
		require.Error(t, err)
		assert.Equal(t, harvest.EINVALID, harvest.ErrorCode(err))
	})

	t.Run("rejects unsupported extensions", func(t *testing.T) {
		t.Parallel()

		path := writeTempFile(t, "selectors.toml", `title = "h1"`)

		_, err := loadSelectors(path)
		require.Error(t, err)
		assert.Equal(t, harvest.EINVALID, harvest.ErrorCode(err))
	})
}

func TestLoadRenderPlan(t *testing.T) {
	t.Parallel()

	t.Run("parses wait and actions", func(t *testing.T) {
		t.Parallel()

		path := writeTempFile(t, "plan.json", `{
			"wait": {"type": "element", "value": "#content", "timeout": 10},
			"actions": [
				{"type": "click", "selector": ".load-more"},
				{"type": "scroll", "pause_time": 1.5, "max_scrolls": 3},
				{"type": "script", "code": "window.scrollTo(0, 0)"},
				{"type": "wait", "seconds": 2}
			]
		}`)

		plan, err := loadRenderPlan(path)
		require.NoError(t, err)

		require.NotNil(t, plan.Wait)
		assert.Equal(t, harvest.WaitElement, plan.Wait.Kind)
		assert.Equal(t, "#content", plan.Wait.Selector)
		assert.Equal(t, 10*time.Second, plan.Wait.Timeout)

		require.Len(t, plan.Actions, 4)
		assert.Equal(t, harvest.ActionClick, plan.Actions[0].Kind)
		assert.Equal(t, ".load-more", plan.Actions[0].Selector)
		assert.Equal(t, 1500*time.Millisecond, plan.Actions[1].Pause)
		assert.Equal(t, 3, plan.Actions[1].MaxScrolls)
		assert.Equal(t, "window.scrollTo(0, 0)", plan.Actions[2].Script)
		assert.Equal(t, 2*time.Second, plan.Actions[3].Duration)
	})

	t.Run("parses time waits from YAML", func(t *testing.T) {
		t.Parallel()

		path := writeTempFile(t, "plan.yaml", "wait:\n  type: time\n  value: 3\n")

		plan, err := loadRenderPlan(path)
		require.NoError(t, err)
		require.NotNil(t, plan.Wait)
		assert.Equal(t, harvest.WaitTime, plan.Wait.Kind)
		assert.Equal(t, 3*time.Second, plan.Wait.Duration)
	})

	t.Run("rejects unknown wait kinds", func(t *testing.T) {
		t.Parallel()

		path := writeTempFile(t, "plan.json", `{"wait": {"type": "render"}}`)

		_, err := loadRenderPlan(path)
		require.Error(t, err)
		assert.Equal(t, harvest.EINVALID, harvest.ErrorCode(err))
	})

	t.Run("rejects clicks without selectors", func(t *testing.T) {
		t.Parallel()

		path := writeTempFile(t, "plan.json", `{"actions": [{"type": "click"}]}`)

		_, err := loadRenderPlan(path)
		require.Error(t, err)
		assert.Equal(t, harvest.EINVALID, harvest.ErrorCode(err))
	})
}
