package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fwojciec/harvest"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// loadSelectors reads a selector file (JSON or YAML, detected by extension)
// into the raw field map consumed by the selector strategy. Field names are
// caller-chosen output keys, so the file is decoded directly rather than
// through viper, which lowercases keys.
func loadSelectors(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, harvest.Errorf(harvest.EINVALID, "reading selector file: %v", err)
	}

	selectors := make(map[string]any)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(data, &selectors); err != nil {
			return nil, harvest.Errorf(harvest.EINVALID, "reading selector file: %v", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &selectors); err != nil {
			return nil, harvest.Errorf(harvest.EINVALID, "reading selector file: %v", err)
		}
	default:
		return nil, harvest.Errorf(harvest.EINVALID, "unsupported selector file extension %q", filepath.Ext(path))
	}
	return selectors, nil
}

// loadRenderPlan reads a render plan file into a validated RenderPlan.
func loadRenderPlan(path string) (harvest.RenderPlan, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return harvest.RenderPlan{}, harvest.Errorf(harvest.EINVALID, "reading render plan file: %v", err)
	}
	return parseRenderPlan(v.AllSettings())
}

// parseRenderPlan converts the decoded file contents into a RenderPlan.
// The wait condition uses type/value/timeout keys; actions use a type key
// plus per-type parameters.
func parseRenderPlan(raw map[string]any) (harvest.RenderPlan, error) {
	var plan harvest.RenderPlan

	if w, ok := raw["wait"]; ok {
		m, ok := w.(map[string]any)
		if !ok {
			return plan, harvest.Errorf(harvest.EINVALID, "wait must be an object")
		}
		spec, err := parseWaitSpec(m)
		if err != nil {
			return plan, err
		}
		plan.Wait = spec
	}

	if a, ok := raw["actions"]; ok {
		list, ok := a.([]any)
		if !ok {
			return plan, harvest.Errorf(harvest.EINVALID, "actions must be a list")
		}
		for i, item := range list {
			m, ok := item.(map[string]any)
			if !ok {
				return plan, harvest.Errorf(harvest.EINVALID, "action %d must be an object", i)
			}
			action, err := parseAction(m)
			if err != nil {
				return plan, err
			}
			plan.Actions = append(plan.Actions, action)
		}
	}

	if err := plan.Validate(); err != nil {
		return harvest.RenderPlan{}, err
	}
	return plan, nil
}

func parseWaitSpec(m map[string]any) (*harvest.WaitSpec, error) {
	kind, _ := m["type"].(string)
	spec := &harvest.WaitSpec{Kind: harvest.WaitKind(kind)}

	switch spec.Kind {
	case harvest.WaitTime, harvest.WaitIdle:
		spec.Duration = toSeconds(m["value"])
	case harvest.WaitElement:
		spec.Selector, _ = m["value"].(string)
	case harvest.WaitScript:
		spec.Script, _ = m["value"].(string)
	}
	spec.Timeout = toSeconds(m["timeout"])
	return spec, nil
}

func parseAction(m map[string]any) (harvest.Action, error) {
	kind, _ := m["type"].(string)
	action := harvest.Action{Kind: harvest.ActionKind(kind)}

	switch action.Kind {
	case harvest.ActionClick:
		action.Selector, _ = m["selector"].(string)
	case harvest.ActionScroll:
		action.Pause = toSeconds(m["pause_time"])
		action.MaxScrolls = toInt(m["max_scrolls"])
	case harvest.ActionScript:
		action.Script, _ = m["code"].(string)
	case harvest.ActionWait:
		action.Duration = toSeconds(m["seconds"])
	}
	return action, nil
}

// toSeconds converts a numeric file value (seconds, possibly fractional)
// into a duration. JSON decodes numbers as float64, YAML as int.
func toSeconds(v any) time.Duration {
	switch n := v.(type) {
	case float64:
		return time.Duration(n * float64(time.Second))
	case int:
		return time.Duration(n) * time.Second
	case int64:
		return time.Duration(n) * time.Second
	}
	return 0
}

func toInt(v any) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	case int64:
		return int(n)
	}
	return 0
}
