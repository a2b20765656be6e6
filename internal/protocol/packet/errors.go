package packet

import (
	"errors"
	"fmt"
)

var (
	ErrLengthMismatch  = errors.New("packet: sub-packet length mismatch")
	ErrInvalidArity    = errors.New("packet: invalid operator arity")
	ErrLiteralOverflow = errors.New("packet: literal value overflows uint64")
	ErrTooDeep         = errors.New("packet: nesting too deep")
	ErrFieldOverflow   = errors.New("packet: field value does not fit")
	ErrUnknownPacket   = errors.New("packet: unknown packet variant")
)

// ArityError reports an operator whose sub-packet count its kind forbids.
type ArityError struct {
	Kind  Kind
	Count int
}

func (e *ArityError) Error() string {
	if e.Kind.IsComparison() {
		return fmt.Sprintf("packet: %s wants exactly 2 sub-packets, got %d", e.Kind, e.Count)
	}
	return fmt.Sprintf("packet: %s wants at least 1 sub-packet, got %d", e.Kind, e.Count)
}

func (e *ArityError) Unwrap() error {
	return ErrInvalidArity
}

// CheckArity validates the sub-packet count for kind.
func CheckArity(kind Kind, count int) error {
	if kind.IsComparison() {
		if count != 2 {
			return &ArityError{Kind: kind, Count: count}
		}
		return nil
	}
	if count < 1 {
		return &ArityError{Kind: kind, Count: count}
	}
	return nil
}
