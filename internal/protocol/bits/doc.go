// Package bits owns bit-level primitives for the BITS wire format.
//
// Ownership boundary:
// - hex text to bit sequence conversion
// - read-only cursors over a sequence
// - append-only writer used by encoders
package bits
