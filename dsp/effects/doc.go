// Package effects provides the drive stage of the distortion chain.
//
// Waveshaper applies the sign-preserving power law sign(x)*|x|^e, where the
// exponent e is derived from a bipolar drive amount by a DriveCurve. Build
// with -tags fastmath to evaluate the power law with algo-approx instead of
// math.Pow.
package effects
