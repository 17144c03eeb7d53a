// Package param describes the six automatable parameters of the distortion
// chain and provides lock-free storage for them.
//
// A Descriptor carries the name, unit, plain range and default of one
// parameter. Range maps between the plain value and the normalised [0, 1]
// position used by hosts and controllers, with an optional skew and snapping
// interval. Store holds the current plain values as atomically updated
// float64 bits: control goroutines write with Set or SetNormalized, and the
// audio goroutine takes a Snapshot once per block.
package param
