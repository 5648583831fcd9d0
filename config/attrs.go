// Package config exposes the mixer's controllable top-level attributes
// (spec.md §6: the "background" mixer property) through the same
// string-keyed Variables table idiom revid/config uses for its
// Config.Update mechanism, so a host control plane can push updates
// without the mixer package needing to know about any particular
// transport.
package config

import (
	"fmt"

	"github.com/ausocean/videomixer/compositor"
)

// MixerAttrs holds the mixer-level controllable attributes.
type MixerAttrs struct {
	Background compositor.Background
}

// DefaultMixerAttrs returns Checker as the default background, matching
// the original's GstVideoMixer2's default property value.
func DefaultMixerAttrs() MixerAttrs {
	return MixerAttrs{Background: compositor.Checker}
}

// Key names one updatable MixerAttrs field.
type Key string

const KeyBackground Key = "background"

var backgroundNames = map[string]compositor.Background{
	"checker":     compositor.Checker,
	"black":       compositor.Black,
	"white":       compositor.White,
	"transparent": compositor.Transparent,
}

type variable struct {
	Key    Key
	Update func(*MixerAttrs, string) error
}

// Variables is the mixer package's analogue of pad.Variables and
// revid/config.Variables: one entry per controllable attribute.
var Variables = []variable{
	{
		Key: KeyBackground,
		Update: func(a *MixerAttrs, v string) error {
			bg, ok := backgroundNames[v]
			if !ok {
				return fmt.Errorf("config: unknown background %q", v)
			}
			a.Background = bg
			return nil
		},
	},
}

// Update applies a string-valued update to the attribute named by key.
func (a *MixerAttrs) Update(key Key, value string) error {
	for _, v := range Variables {
		if v.Key == key {
			return v.Update(a, value)
		}
	}
	return fmt.Errorf("config: unknown attribute %q", key)
}
