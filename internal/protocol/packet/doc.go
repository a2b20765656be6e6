// Package packet owns the BITS packet tree and its wire codec.
//
// A packet starts with a 3-bit version and a 3-bit type id. Type 4 is a
// literal whose value is spread over 5-bit groups, each led by a
// continuation flag. Every other type is an operator followed by a 1-bit
// length type: 0 declares the total bit length of its sub-packets in 15
// bits, 1 declares the sub-packet count in 11 bits.
//
// Ownership boundary:
// - packet model (Literal, Operator)
// - recursive decode with exact length accounting
// - encode, tree walk and formatting
package packet
