// Package protocol owns the BITS transmission contract.
//
// Ownership boundary:
// - bit primitives (bits)
// - packet model and codec (packet)
// - tree evaluation (eval)
// - Analyze entry point tying them together
package protocol
