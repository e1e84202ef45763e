package config

import (
	"sort"

	"github.com/san-kum/waypointctl/internal/control"
)

// Presets are named starting points; flags and config files are layered on
// top of them.
var Presets = map[string]func() *Config{
	"course": DefaultConfig,
	"antiwindup": func() *Config {
		cfg := DefaultConfig()
		cfg.Controller.IntegralLimit = 25
		return cfg
	},
	"strict": func() *Config {
		cfg := DefaultConfig()
		cfg.Controller.ZeroSpeed = string(control.ZeroSpeedError)
		cfg.Replay.StopOnError = true
		return cfg
	},
	"gentle": func() *Config {
		cfg := DefaultConfig()
		cfg.Controller.CrossTrackGain = 2.5
		return cfg
	},
}

func GetPreset(name string) *Config {
	fn, ok := Presets[name]
	if !ok {
		return nil
	}
	return fn()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
