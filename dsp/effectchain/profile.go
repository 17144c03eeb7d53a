package effectchain

import (
	"fmt"

	"github.com/cwbudde/algo-distortion/dsp/effects"
)

// FilterTopology selects the resonant low-pass implementation.
type FilterTopology int

const (
	// TopologyBiquad is a second-order resonant low-pass. Resonance maps to
	// Q = 0.707 + 4*resonance.
	TopologyBiquad FilterTopology = iota
	// TopologyLadder is four one-pole low-passes inside a global feedback
	// loop. Resonance maps to feedback, limited by cutoff.
	TopologyLadder
)

// String returns the topology name.
func (t FilterTopology) String() string {
	switch t {
	case TopologyBiquad:
		return "biquad"
	case TopologyLadder:
		return "ladder"
	default:
		return fmt.Sprintf("FilterTopology(%d)", int(t))
	}
}

// ParseTopology returns the topology with the given name.
func ParseTopology(name string) (FilterTopology, error) {
	switch name {
	case "biquad":
		return TopologyBiquad, nil
	case "ladder":
		return TopologyLadder, nil
	default:
		return 0, fmt.Errorf("filter topology is invalid: %q", name)
	}
}

// Profile is a named configuration of the chain core.
type Profile struct {
	Name     string
	Curve    effects.DriveCurve
	Topology FilterTopology
	Dynamics bool
}

var (
	// ProfileCompensated shapes with CurveClassic, filters with the biquad
	// and matches output loudness to the input by the Dynamics amount.
	ProfileCompensated = Profile{
		Name:     "compensated",
		Curve:    effects.CurveClassic,
		Topology: TopologyBiquad,
		Dynamics: true,
	}

	// ProfileLadder shapes with CurveLinear, filters with the ladder and has
	// no loudness compensation.
	ProfileLadder = Profile{
		Name:     "ladder",
		Curve:    effects.CurveLinear,
		Topology: TopologyLadder,
		Dynamics: false,
	}
)

// Profiles returns the built-in profiles.
func Profiles() []Profile {
	return []Profile{ProfileCompensated, ProfileLadder}
}

// ProfileByName returns the built-in profile with the given name.
func ProfileByName(name string) (Profile, error) {
	for _, p := range Profiles() {
		if p.Name == name {
			return p, nil
		}
	}

	return Profile{}, fmt.Errorf("profile is invalid: %q", name)
}
