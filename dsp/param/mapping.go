package param

import "github.com/cwbudde/algo-distortion/dsp/core"

const (
	// BaseQ is the filter Q at zero resonance.
	BaseQ = 0.707
	// ResonanceQScale is the Q added at full resonance.
	ResonanceQScale = 4.0

	// LadderFeedbackLow is the full-resonance feedback at the lowest cutoff.
	LadderFeedbackLow = 0.98
	// LadderFeedbackHigh is the full-resonance feedback at the highest cutoff.
	LadderFeedbackHigh = 0.85
)

// ResonanceToQ maps resonance in [0, 1] to a biquad Q.
func ResonanceToQ(resonance float64) float64 {
	return BaseQ + ResonanceQScale*core.Clamp01(resonance)
}

// CutoffNormalized returns the skewed [0, 1] position of a cutoff frequency.
func CutoffNormalized(cutoffHz float64) float64 {
	return descriptors[Cutoff].Range.ConvertTo0to1(cutoffHz)
}

// LadderFeedback maps resonance in [0, 1] to ladder feedback. The ceiling
// falls from LadderFeedbackLow to LadderFeedbackHigh across the cutoff range
// because the ladder's loop gain near self-oscillation grows with cutoff.
func LadderFeedback(resonance, cutoffHz float64) float64 {
	ceiling := core.Lerp(LadderFeedbackLow, LadderFeedbackHigh, CutoffNormalized(cutoffHz))
	return core.Clamp01(resonance) * ceiling
}

// VolumeGain converts the volume parameter in dB to a linear gain.
func VolumeGain(db float64) float64 {
	return core.DBToLinear(db)
}
