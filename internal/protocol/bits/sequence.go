package bits

import (
	"strings"
	"unicode"
)

const hexDigits = "0123456789ABCDEF"

// Sequence is an immutable bit sequence packed MSB-first into bytes.
type Sequence struct {
	buf []byte
	n   int
}

// FromHex converts hex text into its bit sequence, four bits per digit.
// Digits are case-insensitive and trailing whitespace is ignored.
func FromHex(text string) (Sequence, error) {
	text = strings.TrimRightFunc(text, unicode.IsSpace)
	var w Writer
	w.grow(4 * len(text))
	for i, r := range text {
		v, ok := hexValue(r)
		if !ok {
			return Sequence{}, &DigitError{Pos: i, Char: r}
		}
		w.WriteBits(uint64(v), 4)
	}
	return w.Sequence(), nil
}

// FromBinary converts a string of '0' and '1' characters into a sequence.
func FromBinary(text string) (Sequence, error) {
	text = strings.TrimRightFunc(text, unicode.IsSpace)
	var w Writer
	w.grow(len(text))
	for i, r := range text {
		switch r {
		case '0':
			w.WriteBit(false)
		case '1':
			w.WriteBit(true)
		default:
			return Sequence{}, &DigitError{Pos: i, Char: r}
		}
	}
	return w.Sequence(), nil
}

func hexValue(r rune) (uint8, bool) {
	switch {
	case r >= '0' && r <= '9':
		return uint8(r - '0'), true
	case r >= 'a' && r <= 'f':
		return uint8(r-'a') + 10, true
	case r >= 'A' && r <= 'F':
		return uint8(r-'A') + 10, true
	}
	return 0, false
}

func (s Sequence) Len() int {
	return s.n
}

// Bit returns the bit at index i as 0 or 1. It panics when i is out of range.
func (s Sequence) Bit(i int) uint8 {
	if i < 0 || i >= s.n {
		panic("bits: index out of range")
	}
	return (s.buf[i/8] >> (7 - uint(i%8))) & 1
}

// String renders the sequence as '0' and '1' characters.
func (s Sequence) String() string {
	var b strings.Builder
	b.Grow(s.n)
	for i := 0; i < s.n; i++ {
		b.WriteByte('0' + s.Bit(i))
	}
	return b.String()
}

// Hex renders the sequence as upper-case hex, zero-padding the final digit.
func (s Sequence) Hex() string {
	var b strings.Builder
	b.Grow((s.n + 3) / 4)
	for i := 0; i < s.n; i += 4 {
		var v uint8
		for j := 0; j < 4; j++ {
			v <<= 1
			if i+j < s.n {
				v |= s.Bit(i + j)
			}
		}
		b.WriteByte(hexDigits[v])
	}
	return b.String()
}
