package param

import "math"

// Snapshot is a copy of all plain parameter values, taken once per block.
type Snapshot struct {
	Drive     float64
	Dynamics  float64
	Cutoff    float64
	Resonance float64
	Mix       float64
	Volume    float64
}

// DefaultSnapshot returns a snapshot holding every parameter default.
func DefaultSnapshot() Snapshot {
	var s Snapshot
	for id := range NumParams {
		s.set(id, descriptors[id].Default)
	}

	return s
}

// Get returns the value of id, or NaN for an unknown id.
func (s Snapshot) Get(id ID) float64 {
	switch id {
	case Drive:
		return s.Drive
	case Dynamics:
		return s.Dynamics
	case Cutoff:
		return s.Cutoff
	case Resonance:
		return s.Resonance
	case Mix:
		return s.Mix
	case Volume:
		return s.Volume
	default:
		return math.NaN()
	}
}

// With returns a copy of s with id set to plain. Unknown ids are ignored.
func (s Snapshot) With(id ID, plain float64) Snapshot {
	s.set(id, plain)
	return s
}

func (s *Snapshot) set(id ID, v float64) {
	switch id {
	case Drive:
		s.Drive = v
	case Dynamics:
		s.Dynamics = v
	case Cutoff:
		s.Cutoff = v
	case Resonance:
		s.Resonance = v
	case Mix:
		s.Mix = v
	case Volume:
		s.Volume = v
	}
}

// Sanitized clamps every value into its range. Non-finite values fall back
// to the parameter default. Values are not snapped, so automation between
// steps passes through unchanged.
func (s Snapshot) Sanitized() Snapshot {
	for id := range NumParams {
		d := descriptors[id]
		v := s.Get(id)

		if math.IsNaN(v) || math.IsInf(v, 0) {
			v = d.Default
		}

		s.set(id, d.Range.Clamp(v))
	}

	return s
}
