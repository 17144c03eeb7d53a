package dynamics

import (
	"fmt"
)

const (
	// CompensationFloor is the output loudness below which no correction is
	// applied, so near-silent output never divides by ~0.
	CompensationFloor = 0.001

	// DefaultCompensationAttackMs is the follower attack used for loudness matching.
	DefaultCompensationAttackMs = 1.0
	// DefaultCompensationReleaseMs is the follower release used for loudness matching.
	DefaultCompensationReleaseMs = 10.0
)

// GainCompensation returns the loudness-matching gain for the given input
// and output envelopes, scaled by amount in [0, 1].
//
// The raw ratio in/out is pulled towards 1 by amount: amount=0 returns
// exactly 1, amount=1 returns the full ratio. Output envelopes at or below
// CompensationFloor return 1.
func GainCompensation(inputLoudness, outputLoudness, amount float64) float64 {
	if !(outputLoudness > CompensationFloor) {
		return 1
	}

	if !(amount > 0) {
		return 1
	}

	if amount > 1 {
		amount = 1
	}

	ratio := inputLoudness / outputLoudness
	if ratio < 1 {
		return 1 - (1-ratio)*amount
	}

	return 1 + (ratio-1)*amount
}

// Compensator tracks the loudness of a channel before and after the
// distortion path and produces the per-sample correction gain.
type Compensator struct {
	input  EnvelopeFollower
	output EnvelopeFollower
}

// NewCompensator returns a Compensator using the default 1 ms attack and
// 10 ms release on both followers.
func NewCompensator(sampleRate float64) (*Compensator, error) {
	c := &Compensator{}
	if err := c.Prepare(sampleRate); err != nil {
		return nil, err
	}

	return c, nil
}

// Prepare binds both followers to sampleRate, applies the default times and
// clears state.
func (c *Compensator) Prepare(sampleRate float64) error {
	for _, f := range []*EnvelopeFollower{&c.input, &c.output} {
		if err := f.SetSampleRate(sampleRate); err != nil {
			return fmt.Errorf("compensator: %w", err)
		}

		if err := f.SetCoefficients(DefaultCompensationAttackMs, DefaultCompensationReleaseMs); err != nil {
			return fmt.Errorf("compensator: %w", err)
		}

		f.Reset()
	}

	return nil
}

// SetTimes overrides the attack/release times of both followers.
func (c *Compensator) SetTimes(attackMs, releaseMs float64) error {
	if err := c.input.SetCoefficients(attackMs, releaseMs); err != nil {
		return fmt.Errorf("compensator: %w", err)
	}

	return c.output.SetCoefficients(attackMs, releaseMs)
}

// Input feeds one dry sample to the input follower and returns its envelope.
func (c *Compensator) Input(x float64) float64 {
	return c.input.ProcessSample(x)
}

// Output feeds one processed sample to the output follower and returns the
// correction gain against the most recent input envelope.
func (c *Compensator) Output(y, amount float64) float64 {
	return GainCompensation(c.input.Value(), c.output.ProcessSample(y), amount)
}

// FlushDenormals flushes both followers.
func (c *Compensator) FlushDenormals() {
	c.input.FlushDenormals()
	c.output.FlushDenormals()
}

// Reset clears both followers.
func (c *Compensator) Reset() {
	c.input.Reset()
	c.output.Reset()
}

// InputLoudness returns the last input envelope.
func (c *Compensator) InputLoudness() float64 { return c.input.Value() }

// OutputLoudness returns the last output envelope.
func (c *Compensator) OutputLoudness() float64 { return c.output.Value() }
