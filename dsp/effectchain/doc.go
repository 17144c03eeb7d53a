// Package effectchain assembles the distortion signal chain.
//
// A Processor runs, per channel and per sample:
//
//	in -> input follower -> waveshaper -> low-pass -> output follower
//	   -> volume*mix*wet*comp + (1-mix)*in -> clip to [-1, 1]
//
// The low-pass is a resonant biquad or a four-stage ladder, selected by
// FilterTopology. A Profile bundles the drive curve, the topology and
// whether loudness compensation is active.
//
// Prepare is the only call that allocates. ProcessBlock takes a
// param.Snapshot by value, so parameters may be changed concurrently through
// a param.Store without locks.
package effectchain
