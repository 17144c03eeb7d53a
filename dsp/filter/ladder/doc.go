// Package ladder provides a linear four-stage ladder low-pass: four
// bilinear one-pole sections in series wrapped in a global negative
// feedback loop.
//
// Feedback raises the effective Q around the cutoff. The loop is stable for
// any feedback below 1 because every stage has a magnitude response of at
// most unity; [MaxFeedback] keeps callers clear of the self-oscillation edge.
//
// Both [OnePole] and [Ladder] are retuned with pure coefficient functions so
// a host can call Set once per block with unchanged arguments at no cost to
// determinism.
package ladder
