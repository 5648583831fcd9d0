package pad

import (
	"fmt"
	"strconv"
)

// Props holds the controllable per-pad attributes spec.md §6 names:
// z-order, position and alpha, each independently updatable by the
// host control plane.
type Props struct {
	ZOrder int
	XPos   int
	YPos   int
	Alpha  float64
}

// DefaultProps returns the default attribute set: zorder 0 (callers
// adding a pad to a mixer should override it with the mixer's running
// pad count, per SPEC_FULL.md §3.1), position (0,0) at the output's
// top-left corner, fully opaque.
func DefaultProps() Props {
	return Props{ZOrder: 0, XPos: 0, YPos: 0, Alpha: 1.0}
}

// Key names one updatable Props field, for use with Update.
type Key string

const (
	KeyZOrder Key = "zorder"
	KeyXPos   Key = "xpos"
	KeyYPos   Key = "ypos"
	KeyAlpha  Key = "alpha"
)

// variable describes one updatable Props field: how to parse and apply
// a string value, and how to validate the result. Styled directly on
// revid/config/variables.go's Variables table of
// {Name, Type, Update, Validate} entries.
type variable struct {
	Key      Key
	Update   func(*Props, string) error
	Validate func(*Props)
}

// Variables is the ordered table of updatable pad attributes, the pad
// package's analogue of revid/config.Variables.
var Variables = []variable{
	{
		Key: KeyZOrder,
		Update: func(p *Props, v string) error {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("pad: invalid zorder %q: %w", v, err)
			}
			p.ZOrder = n
			return nil
		},
		Validate: func(p *Props) {
			if p.ZOrder < 0 {
				p.ZOrder = 0
			}
		},
	},
	{
		Key: KeyXPos,
		Update: func(p *Props, v string) error {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("pad: invalid xpos %q: %w", v, err)
			}
			p.XPos = n
			return nil
		},
	},
	{
		Key: KeyYPos,
		Update: func(p *Props, v string) error {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("pad: invalid ypos %q: %w", v, err)
			}
			p.YPos = n
			return nil
		},
	},
	{
		Key: KeyAlpha,
		Update: func(p *Props, v string) error {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return fmt.Errorf("pad: invalid alpha %q: %w", v, err)
			}
			p.Alpha = f
			return nil
		},
		Validate: func(p *Props) {
			if p.Alpha < 0 {
				p.Alpha = 0
			}
			if p.Alpha > 1 {
				p.Alpha = 1
			}
		},
	},
}

// Update applies a string-valued update to the attribute named by key,
// validating the result afterward. Unknown keys are an error, matching
// Config.Update's behavior in the teacher.
func (p *Props) Update(key Key, value string) error {
	for _, v := range Variables {
		if v.Key != key {
			continue
		}
		if err := v.Update(p, value); err != nil {
			return err
		}
		if v.Validate != nil {
			v.Validate(p)
		}
		return nil
	}
	return fmt.Errorf("pad: unknown attribute %q", key)
}
