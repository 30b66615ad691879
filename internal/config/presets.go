package config

import (
	"fmt"
	"sort"
)

var Presets = map[string]*Config{
	"reference": {Rows: 5, Cols: 5, DelayMS: 350, Theme: "slate", LogLevel: "info"},
	"wide":      {Rows: 4, Cols: 9, DelayMS: 250, Theme: "ocean", LogLevel: "info"},
	"tall":      {Rows: 9, Cols: 4, DelayMS: 250, Theme: "ocean", LogLevel: "info"},
	"strip":     {Rows: 1, Cols: 12, DelayMS: 200, Theme: "retro", LogLevel: "info"},
	"column":    {Rows: 8, Cols: 1, DelayMS: 200, Theme: "retro", LogLevel: "info"},
	"single":    {Rows: 1, Cols: 1, DelayMS: 350, Theme: "minimal", LogLevel: "info"},
	"large":     {Rows: 12, Cols: 12, DelayMS: 60, Theme: "sunset", LogLevel: "info"},
}

var presetInfo = map[string]string{
	"reference": "5x5 classic spiral",
	"wide":      "landscape rectangle",
	"tall":      "portrait rectangle",
	"strip":     "single row",
	"column":    "single column",
	"single":    "one cell",
	"large":     "12x12 fast sweep",
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

// LookupPreset is GetPreset with an error for unknown names.
func LookupPreset(name string) (*Config, error) {
	cfg := GetPreset(name)
	if cfg == nil {
		return nil, fmt.Errorf("%w: %s (available: %v)", ErrUnknownPreset, name, ListPresets())
	}
	return cfg, nil
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func PresetInfo(name string) string {
	return presetInfo[name]
}
