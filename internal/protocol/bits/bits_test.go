package bits

import (
	"errors"
	"testing"
)

func TestFromHexPreservesLeadingZeros(t *testing.T) {
	seq, err := FromHex("D2FE28")
	if err != nil {
		t.Fatalf("from hex: %v", err)
	}
	if got := seq.String(); got != "110100101111111000101000" {
		t.Fatalf("unexpected bits: %s", got)
	}

	seq, err = FromHex("1")
	if err != nil {
		t.Fatalf("from hex: %v", err)
	}
	if seq.Len() != 4 || seq.String() != "0001" {
		t.Fatalf("expected 0001, got %s (len=%d)", seq.String(), seq.Len())
	}
}

func TestFromHexCaseInsensitiveAndTrailingNewline(t *testing.T) {
	upper, err := FromHex("ABCDEF")
	if err != nil {
		t.Fatalf("upper: %v", err)
	}
	lower, err := FromHex("abcdef\r\n")
	if err != nil {
		t.Fatalf("lower: %v", err)
	}
	if upper.String() != lower.String() {
		t.Fatalf("case mismatch: %s vs %s", upper.String(), lower.String())
	}
	if lower.Hex() != "ABCDEF" {
		t.Fatalf("unexpected hex: %s", lower.Hex())
	}
}

func TestFromHexInvalidDigit(t *testing.T) {
	_, err := FromHex("D2G")
	if !errors.Is(err, ErrInvalidDigit) {
		t.Fatalf("expected ErrInvalidDigit, got %v", err)
	}
	var digitErr *DigitError
	if !errors.As(err, &digitErr) {
		t.Fatalf("expected *DigitError, got %T", err)
	}
	if digitErr.Pos != 2 || digitErr.Char != 'G' {
		t.Fatalf("unexpected digit error: %+v", digitErr)
	}
}

func TestFromHexRejectsEmbeddedSeparators(t *testing.T) {
	if _, err := FromHex("D2 FE"); !errors.Is(err, ErrInvalidDigit) {
		t.Fatalf("expected ErrInvalidDigit, got %v", err)
	}
	if _, err := FromHex(" D2FE"); !errors.Is(err, ErrInvalidDigit) {
		t.Fatalf("expected leading space rejected, got %v", err)
	}
}

func TestFromBinary(t *testing.T) {
	seq, err := FromBinary("10110")
	if err != nil {
		t.Fatalf("from binary: %v", err)
	}
	if seq.String() != "10110" {
		t.Fatalf("unexpected bits: %s", seq.String())
	}
	if seq.Hex() != "B0" {
		t.Fatalf("unexpected hex: %s", seq.Hex())
	}
	if _, err := FromBinary("102"); !errors.Is(err, ErrInvalidDigit) {
		t.Fatalf("expected ErrInvalidDigit, got %v", err)
	}
}

func TestCursorReadAdvancesCopy(t *testing.T) {
	seq, err := FromHex("D2FE28")
	if err != nil {
		t.Fatalf("from hex: %v", err)
	}
	c := NewCursor(seq)

	version, next, err := c.Read(3)
	if err != nil {
		t.Fatalf("read version: %v", err)
	}
	if version != 6 {
		t.Fatalf("expected version 6, got %d", version)
	}
	if c.Offset() != 0 {
		t.Fatalf("receiver moved: offset=%d", c.Offset())
	}
	if next.Offset() != 3 || next.Remaining() != 21 {
		t.Fatalf("unexpected cursor: offset=%d remaining=%d", next.Offset(), next.Remaining())
	}

	typeID, next, err := next.Read(3)
	if err != nil {
		t.Fatalf("read type: %v", err)
	}
	if typeID != 4 {
		t.Fatalf("expected type 4, got %d", typeID)
	}

	bit, next, err := next.ReadBit()
	if err != nil {
		t.Fatalf("read bit: %v", err)
	}
	if !bit || next.Offset() != 7 {
		t.Fatalf("unexpected bit=%v offset=%d", bit, next.Offset())
	}
}

func TestCursorReadZeroWidth(t *testing.T) {
	seq, _ := FromHex("F")
	v, next, err := NewCursor(seq).Read(0)
	if err != nil {
		t.Fatalf("read 0: %v", err)
	}
	if v != 0 || next.Offset() != 0 {
		t.Fatalf("unexpected v=%d offset=%d", v, next.Offset())
	}
}

func TestCursorReadTruncated(t *testing.T) {
	seq, _ := FromHex("F")
	c := NewCursor(seq)
	_, after, err := c.Read(5)
	if !errors.Is(err, ErrTruncated) {
		t.Fatalf("expected ErrTruncated, got %v", err)
	}
	if after.Offset() != 0 {
		t.Fatalf("cursor advanced on failure: %d", after.Offset())
	}
}

func TestCursorReadInvalidWidth(t *testing.T) {
	seq, _ := FromHex("FFFFFFFFFFFFFFFFFF")
	c := NewCursor(seq)
	if _, _, err := c.Read(65); !errors.Is(err, ErrInvalidWidth) {
		t.Fatalf("expected ErrInvalidWidth, got %v", err)
	}
	if _, _, err := c.Read(-1); !errors.Is(err, ErrInvalidWidth) {
		t.Fatalf("expected ErrInvalidWidth, got %v", err)
	}
	v, _, err := c.Read(64)
	if err != nil {
		t.Fatalf("read 64: %v", err)
	}
	if v != ^uint64(0) {
		t.Fatalf("unexpected value: %x", v)
	}
}

func TestWriterSnapshotIsStable(t *testing.T) {
	var w Writer
	w.WriteBits(0b110, 3)
	snap := w.Sequence()
	w.WriteBits(0b1, 1)
	if snap.String() != "110" {
		t.Fatalf("snapshot changed: %s", snap.String())
	}
	if w.Len() != 4 || w.Sequence().String() != "1101" {
		t.Fatalf("unexpected writer state: %s", w.Sequence().String())
	}
}

func TestWriterRejectsInvalidWidth(t *testing.T) {
	for _, n := range []int{70, -3} {
		func() {
			var w Writer
			defer func() {
				if recover() == nil {
					t.Fatalf("expected panic for width %d", n)
				}
				if w.Len() != 0 {
					t.Fatalf("width %d wrote %d bits", n, w.Len())
				}
			}()
			w.WriteBits(^uint64(0), n)
		}()
	}

	var w Writer
	w.WriteBits(^uint64(0), 64)
	w.WriteBits(0, 0)
	if w.Len() != 64 {
		t.Fatalf("expected 64 bits, got %d", w.Len())
	}
}
