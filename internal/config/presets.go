package config

import (
	"fmt"
	"slices"

	"github.com/samber/lo"
)

// Preset is a named playback profile layered over a Config.
type Preset struct {
	Description   string
	IdleTimeLimit *float64
	StartAt       string
}

func limit(v float64) *float64 { return &v }

var Presets = map[string]Preset{
	"raw": {
		Description: "original timing, no idle compression",
	},
	"demo": {
		Description:   "cap pauses at 1s",
		IdleTimeLimit: limit(1),
	},
	"skim": {
		Description:   "cap pauses at 0.25s",
		IdleTimeLimit: limit(0.25),
	},
	"tail": {
		Description:   "start at 90% with pauses capped at 1s",
		IdleTimeLimit: limit(1),
		StartAt:       "90%",
	},
}

func GetPreset(name string) (Preset, bool) {
	p, ok := Presets[name]
	return p, ok
}

func ListPresets() []string {
	names := lo.Keys(Presets)
	slices.Sort(names)
	return names
}

// ApplyPreset overwrites the playback fields of c with the named preset.
// The raw preset clears any configured idle limit.
func (c *Config) ApplyPreset(name string) error {
	p, ok := GetPreset(name)
	if !ok {
		return fmt.Errorf("%w: unknown preset %q (available: %v)", ErrInvalid, name, ListPresets())
	}
	c.IdleTimeLimit = p.IdleTimeLimit
	c.StartAt = p.StartAt
	return nil
}
