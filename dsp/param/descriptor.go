package param

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ID identifies one parameter of the chain.
type ID int

const (
	Drive ID = iota
	Dynamics
	Cutoff
	Resonance
	Mix
	Volume

	// NumParams is the number of parameters.
	NumParams
)

var idNames = [NumParams]string{
	Drive:     "Drive",
	Dynamics:  "Dynamics",
	Cutoff:    "Cutoff",
	Resonance: "Resonance",
	Mix:       "Mix",
	Volume:    "Volume",
}

// String returns the parameter name used in the plugin layout.
func (id ID) String() string {
	if !id.Valid() {
		return "ID(" + strconv.Itoa(int(id)) + ")"
	}

	return idNames[id]
}

// Valid reports whether id names a known parameter.
func (id ID) Valid() bool {
	return id >= 0 && id < NumParams
}

// Descriptor is the static description of one parameter.
type Descriptor struct {
	ID      ID
	Name    string
	Unit    string
	Range   Range
	Default float64
}

// DefaultNormalized returns the default as a normalised position.
func (d Descriptor) DefaultNormalized() float64 {
	return d.Range.ConvertTo0to1(d.Default)
}

// Format renders a plain value with its unit.
func (d Descriptor) Format(plain float64) string {
	switch d.Unit {
	case "Hz":
		if plain >= 1000 {
			return fmt.Sprintf("%.2f kHz", plain/1000)
		}

		return fmt.Sprintf("%.0f Hz", plain)
	case "dB":
		return fmt.Sprintf("%.1f dB", plain)
	default:
		return fmt.Sprintf("%.2f", plain)
	}
}

// Parse reads a value written by Format, or a bare number, and returns the
// snapped plain value.
func (d Descriptor) Parse(s string) (float64, error) {
	str := strings.TrimSpace(s)
	scale := 1.0

	switch {
	case strings.HasSuffix(strings.ToLower(str), "khz"):
		str = str[:len(str)-3]
		scale = 1000
	case strings.HasSuffix(strings.ToLower(str), "hz"):
		str = str[:len(str)-2]
	case strings.HasSuffix(strings.ToLower(str), "db"):
		str = str[:len(str)-2]
	}

	v, err := strconv.ParseFloat(strings.TrimSpace(str), 64)
	if err != nil {
		return 0, fmt.Errorf("param %s: parse %q: %w", d.Name, s, err)
	}

	if math.IsNaN(v) {
		return 0, fmt.Errorf("param %s must not be NaN: %q", d.Name, s)
	}

	return d.Range.Snap(v * scale), nil
}

// The declared cutoff default of the plugin layout is 200000 Hz, which
// every host clamps to the range maximum.
const declaredCutoffDefault = 200000.0

var descriptors = [NumParams]Descriptor{
	Drive: {
		ID: Drive, Name: "Drive",
		Range:   Range{Min: -1, Max: 1, Interval: 0.01, Skew: 1},
		Default: 0,
	},
	Dynamics: {
		ID: Dynamics, Name: "Dynamics",
		Range:   Range{Min: 0, Max: 1, Interval: 0.01, Skew: 1},
		Default: 0,
	},
	Cutoff: {
		ID: Cutoff, Name: "Cutoff", Unit: "Hz",
		Range:   Range{Min: 40, Max: 20000, Interval: 1, Skew: 0.4},
		Default: Range{Min: 40, Max: 20000}.Clamp(declaredCutoffDefault),
	},
	Resonance: {
		ID: Resonance, Name: "Resonance",
		Range:   Range{Min: 0, Max: 1, Interval: 0.01, Skew: 1},
		Default: 0,
	},
	Mix: {
		ID: Mix, Name: "Mix",
		Range:   Range{Min: 0, Max: 1, Interval: 0.01, Skew: 1},
		Default: 1,
	},
	Volume: {
		ID: Volume, Name: "Volume", Unit: "dB",
		Range:   Range{Min: -36, Max: 36, Interval: 0.1, Skew: 1},
		Default: 0,
	},
}

// Descriptors returns all parameter descriptors in ID order.
func Descriptors() []Descriptor {
	out := make([]Descriptor, NumParams)
	copy(out, descriptors[:])

	return out
}

// Lookup returns the descriptor for id.
func Lookup(id ID) (Descriptor, bool) {
	if !id.Valid() {
		return Descriptor{}, false
	}

	return descriptors[id], true
}

// ByName returns the descriptor with the given name, ignoring case.
func ByName(name string) (Descriptor, bool) {
	for _, d := range descriptors {
		if strings.EqualFold(d.Name, name) {
			return d, true
		}
	}

	return Descriptor{}, false
}
