// Package biquad provides the second-order IIR runtime used by the
// distortion chain's resonant low-pass.
//
// A [Section] implements Direct Form II Transposed processing for one
// second-order section defined by [Coefficients]. [LowPassCoefficients]
// designs the resonant low-pass from a cutoff and Q, and [LowPass] binds a
// section to a sample rate so it can be retuned once per audio block.
package biquad
