// Package dynamics provides the loudness tracking used by the distortion
// chain.
//
// EnvelopeFollower is a two-stage peak follower with exponential attack and
// release. Compensator pairs two followers, one on the dry input and one on
// the processed signal, and turns their ratio into a make-up gain through
// GainCompensation.
package dynamics
