package bits

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidDigit = errors.New("bits: invalid digit")
	ErrTruncated    = errors.New("bits: truncated stream")
	ErrInvalidWidth = errors.New("bits: invalid read width")
)

// DigitError reports the first character FromHex or FromBinary could not map.
type DigitError struct {
	Pos  int
	Char rune
}

func (e *DigitError) Error() string {
	return fmt.Sprintf("bits: invalid digit %q at position %d", e.Char, e.Pos)
}

func (e *DigitError) Unwrap() error {
	return ErrInvalidDigit
}
