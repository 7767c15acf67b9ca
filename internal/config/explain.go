package config

import (
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Explain returns the effective value at a dotted YAML path and where it came from.
//
// Paths mirror the file layout, for example:
//
//	snap_threshold
//	screen_padding.left
//	viewport
//	logging.max_files
//	tui.cell_width
//	watch.poll_interval_ms
func Explain(res *LoadResult, path string) (any, Source, error) {
	if res == nil || res.Config == nil {
		return nil, Source{}, fmt.Errorf("no config loaded")
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, Source{}, fmt.Errorf("path is empty")
	}

	value, err := lookupValue(res.Config, path)
	if err != nil {
		return nil, Source{}, err
	}
	if src, ok := res.Sources[path]; ok {
		return value, src, nil
	}
	return value, Source{Kind: SourceDefault}, nil
}

// Paths lists every explainable leaf path, sorted.
func Paths() []string {
	tree, err := toTree(DefaultConfig())
	if err != nil {
		return nil
	}
	var out []string
	var walk func(prefix string, v any)
	walk = func(prefix string, v any) {
		m, ok := v.(map[string]any)
		if !ok {
			out = append(out, prefix)
			return
		}
		for k, child := range m {
			p := k
			if prefix != "" {
				p = prefix + "." + k
			}
			walk(p, child)
		}
	}
	walk("", tree)
	sort.Strings(out)
	return out
}

func lookupValue(cfg *Config, path string) (any, error) {
	tree, err := toTree(cfg)
	if err != nil {
		return nil, err
	}

	var cur any = tree
	for _, part := range strings.Split(path, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("unknown path %q", path)
		}
		next, ok := m[part]
		if !ok {
			return nil, fmt.Errorf("unknown path %q", path)
		}
		cur = next
	}
	return cur, nil
}

// toTree round-trips cfg through YAML so lookups follow the yaml tags.
// omitempty fields are filled back in from their zero value.
func toTree(cfg *Config) (map[string]any, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	tree := map[string]any{}
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	logging, _ := tree["logging"].(map[string]any)
	if logging != nil {
		fill := map[string]any{
			"level":       cfg.Logging.Level,
			"file":        cfg.Logging.File,
			"max_size_mb": cfg.Logging.MaxSizeMB,
			"max_files":   cfg.Logging.MaxFiles,
		}
		for k, v := range fill {
			if _, ok := logging[k]; !ok {
				logging[k] = v
			}
		}
	}
	watch, _ := tree["watch"].(map[string]any)
	if watch != nil {
		if _, ok := watch["display"]; !ok {
			watch["display"] = cfg.Watch.Display
		}
		if _, ok := watch["cancel_hotkey"]; !ok {
			watch["cancel_hotkey"] = cfg.Watch.CancelHotkey
		}
	}
	return tree, nil
}
