package bits

import "fmt"

// MaxReadWidth is the widest single read a Cursor supports.
const MaxReadWidth = 64

// Cursor is a forward-only read position over a Sequence. It is a value:
// reads return an advanced copy and never modify the receiver.
type Cursor struct {
	seq Sequence
	off int
}

func NewCursor(seq Sequence) Cursor {
	return Cursor{seq: seq}
}

func (c Cursor) Offset() int {
	return c.off
}

func (c Cursor) Remaining() int {
	return c.seq.n - c.off
}

// Read returns the next n bits as a big-endian unsigned integer together
// with a cursor advanced past them.
func (c Cursor) Read(n int) (uint64, Cursor, error) {
	if n < 0 || n > MaxReadWidth {
		return 0, c, fmt.Errorf("%w: %d", ErrInvalidWidth, n)
	}
	if n > c.Remaining() {
		return 0, c, fmt.Errorf("%w: offset=%d want=%d have=%d", ErrTruncated, c.off, n, c.Remaining())
	}
	var v uint64
	for i := 0; i < n; i++ {
		v = v<<1 | uint64(c.seq.Bit(c.off+i))
	}
	c.off += n
	return v, c, nil
}

func (c Cursor) ReadBit() (bool, Cursor, error) {
	v, next, err := c.Read(1)
	if err != nil {
		return false, c, err
	}
	return v == 1, next, nil
}
