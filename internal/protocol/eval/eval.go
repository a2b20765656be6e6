// Package eval walks decoded packet trees.
package eval

import (
	"errors"
	"fmt"
	"math/bits"
	"slices"

	"github.com/danmuck/bitsctl/internal/protocol/packet"
)

var ErrValueOverflow = errors.New("eval: value overflows uint64")

// VersionSum adds the version of every packet in the tree.
func VersionSum(p packet.Packet) (uint64, error) {
	switch v := p.(type) {
	case packet.Literal:
		return uint64(v.Ver), nil
	case packet.Operator:
		sum := uint64(v.Ver)
		for _, sub := range v.SubPackets {
			n, err := VersionSum(sub)
			if err != nil {
				return 0, err
			}
			sum += n
		}
		return sum, nil
	default:
		return 0, fmt.Errorf("%w: %T", packet.ErrUnknownPacket, p)
	}
}

// Value evaluates p. Comparisons yield 1 or 0.
func Value(p packet.Packet) (uint64, error) {
	switch v := p.(type) {
	case packet.Literal:
		return v.Value, nil
	case packet.Operator:
		return operatorValue(v)
	default:
		return 0, fmt.Errorf("%w: %T", packet.ErrUnknownPacket, p)
	}
}

func operatorValue(op packet.Operator) (uint64, error) {
	if op.Kind.IsComparison() {
		if err := packet.CheckArity(op.Kind, len(op.SubPackets)); err != nil {
			return 0, err
		}
	}

	values := make([]uint64, len(op.SubPackets))
	for i, sub := range op.SubPackets {
		v, err := Value(sub)
		if err != nil {
			return 0, err
		}
		values[i] = v
	}

	switch op.Kind {
	case packet.KindSum:
		var sum uint64
		for _, v := range values {
			var carry uint64
			sum, carry = bits.Add64(sum, v, 0)
			if carry != 0 {
				return 0, fmt.Errorf("%w: sum", ErrValueOverflow)
			}
		}
		return sum, nil
	case packet.KindProduct:
		product := uint64(1)
		for _, v := range values {
			hi, lo := bits.Mul64(product, v)
			if hi != 0 {
				return 0, fmt.Errorf("%w: product", ErrValueOverflow)
			}
			product = lo
		}
		return product, nil
	case packet.KindMinimum, packet.KindMaximum:
		if err := packet.CheckArity(op.Kind, len(values)); err != nil {
			return 0, err
		}
		if op.Kind == packet.KindMinimum {
			return slices.Min(values), nil
		}
		return slices.Max(values), nil
	case packet.KindGreaterThan:
		return boolValue(values[0] > values[1]), nil
	case packet.KindLessThan:
		return boolValue(values[0] < values[1]), nil
	case packet.KindEqualTo:
		return boolValue(values[0] == values[1]), nil
	default:
		return 0, fmt.Errorf("eval: unknown operator %s", op.Kind)
	}
}

func boolValue(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}
