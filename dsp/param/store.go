package param

import (
	"fmt"
	"math"
	"sync/atomic"
)

// Store holds the current plain value of every parameter as atomically
// updated float64 bits. Set and Snapshot may be called concurrently from
// any goroutine without locks.
type Store struct {
	values [NumParams]atomic.Uint64
}

// NewStore returns a store initialised to the parameter defaults.
func NewStore() *Store {
	s := &Store{}
	s.Reset()

	return s
}

// Reset restores every parameter default.
func (s *Store) Reset() {
	for id := range NumParams {
		s.values[id].Store(math.Float64bits(descriptors[id].Default))
	}
}

// Set stores a plain value, snapped and clamped to the parameter range.
func (s *Store) Set(id ID, plain float64) error {
	if !id.Valid() {
		return fmt.Errorf("param id is invalid: %d", id)
	}

	if math.IsNaN(plain) {
		return fmt.Errorf("param %s must not be NaN", id)
	}

	s.values[id].Store(math.Float64bits(descriptors[id].Range.Snap(plain)))

	return nil
}

// SetNormalized stores a value given as a normalised [0, 1] position.
func (s *Store) SetNormalized(id ID, normalized float64) error {
	if !id.Valid() {
		return fmt.Errorf("param id is invalid: %d", id)
	}

	if math.IsNaN(normalized) {
		return fmt.Errorf("param %s normalized value must not be NaN", id)
	}

	s.values[id].Store(math.Float64bits(descriptors[id].Range.ConvertFrom0to1(normalized)))

	return nil
}

// Get returns the current plain value of id, or NaN for an unknown id.
func (s *Store) Get(id ID) float64 {
	if !id.Valid() {
		return math.NaN()
	}

	return math.Float64frombits(s.values[id].Load())
}

// Normalized returns the current normalised position of id.
func (s *Store) Normalized(id ID) float64 {
	if !id.Valid() {
		return math.NaN()
	}

	return descriptors[id].Range.ConvertTo0to1(s.Get(id))
}

// Load stores every value of snap. Values are snapped and clamped as by Set;
// NaN values are skipped.
func (s *Store) Load(snap Snapshot) {
	for id := range NumParams {
		_ = s.Set(id, snap.Get(id))
	}
}

// Snapshot reads every parameter with one atomic load each. Parameters
// updated while the snapshot is taken may come from either side of the
// update, but every individual value is consistent.
func (s *Store) Snapshot() Snapshot {
	return Snapshot{
		Drive:     math.Float64frombits(s.values[Drive].Load()),
		Dynamics:  math.Float64frombits(s.values[Dynamics].Load()),
		Cutoff:    math.Float64frombits(s.values[Cutoff].Load()),
		Resonance: math.Float64frombits(s.values[Resonance].Load()),
		Mix:       math.Float64frombits(s.values[Mix].Load()),
		Volume:    math.Float64frombits(s.values[Volume].Load()),
	}
}
