package bits

import "fmt"

// Writer builds a Sequence by appending bits. The zero value is ready to use.
type Writer struct {
	buf []byte
	n   int
}

func (w *Writer) grow(bits int) {
	need := (w.n + bits + 7) / 8
	if need > cap(w.buf) {
		buf := make([]byte, len(w.buf), need)
		copy(buf, w.buf)
		w.buf = buf
	}
}

func (w *Writer) WriteBit(bit bool) {
	if w.n%8 == 0 {
		w.buf = append(w.buf, 0)
	}
	if bit {
		w.buf[len(w.buf)-1] |= 1 << (7 - uint(w.n%8))
	}
	w.n++
}

// WriteBits appends the low n bits of v, most significant first. It panics
// when n is outside [0, MaxReadWidth].
func (w *Writer) WriteBits(v uint64, n int) {
	if n < 0 || n > MaxReadWidth {
		panic(fmt.Sprintf("bits: invalid write width %d", n))
	}
	w.grow(n)
	for i := n - 1; i >= 0; i-- {
		w.WriteBit((v>>uint(i))&1 == 1)
	}
}

func (w *Writer) Len() int {
	return w.n
}

// Sequence returns a snapshot; later writes do not affect it.
func (w *Writer) Sequence() Sequence {
	buf := make([]byte, len(w.buf))
	copy(buf, w.buf)
	return Sequence{buf: buf, n: w.n}
}

func (w *Writer) WriteSequence(s Sequence) {
	w.grow(s.n)
	for i := 0; i < s.n; i++ {
		w.WriteBit(s.Bit(i) == 1)
	}
}
