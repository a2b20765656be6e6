package packet

import (
	"fmt"

	"github.com/danmuck/bitsctl/internal/protocol/bits"
)

// Encode writes p in wire form. Each operator keeps its LengthType and has
// its Bits recomputed. A literal with non-zero Bits keeps that many groups,
// leading zero groups included, so encoding a decoded tree reproduces its
// wire form; a literal with zero Bits uses the fewest groups.
func Encode(p Packet) (bits.Sequence, error) {
	var w bits.Writer
	if err := encode(&w, p); err != nil {
		return bits.Sequence{}, err
	}
	return w.Sequence(), nil
}

// EncodeHex encodes p and renders it as hex, zero-padding the final digit.
func EncodeHex(p Packet) (string, error) {
	seq, err := Encode(p)
	if err != nil {
		return "", err
	}
	return seq.Hex(), nil
}

func encode(w *bits.Writer, p Packet) error {
	if p.Version() > MaxVersion {
		return fmt.Errorf("%w: version %d", ErrFieldOverflow, p.Version())
	}
	switch v := p.(type) {
	case Literal:
		groups, err := literalGroups(v)
		if err != nil {
			return err
		}
		w.WriteBits(uint64(v.Ver), VersionBits)
		w.WriteBits(uint64(TypeLiteral), TypeBits)
		encodeLiteralValue(w, v.Value, groups)
		return nil
	case Operator:
		return encodeOperator(w, v)
	default:
		return fmt.Errorf("%w: %T", ErrUnknownPacket, p)
	}
}

// literalGroups returns the group count for l: the count implied by l.Bits
// when set, else the minimum that holds l.Value.
func literalGroups(l Literal) (int, error) {
	need := 1
	for rest := l.Value >> 4; rest != 0; rest >>= 4 {
		need++
	}
	if l.Bits == 0 {
		return need, nil
	}
	body := l.Bits - HeaderBits
	if body < GroupBits || body%GroupBits != 0 || body/GroupBits < need {
		return 0, fmt.Errorf("%w: literal length %d for value %d", ErrFieldOverflow, l.Bits, l.Value)
	}
	return body / GroupBits, nil
}

func encodeLiteralValue(w *bits.Writer, value uint64, groups int) {
	for i := groups - 1; i >= 0; i-- {
		w.WriteBit(i > 0)
		w.WriteBits(value>>(4*uint(i))&0x0F, 4)
	}
}

func encodeOperator(w *bits.Writer, op Operator) error {
	if !op.Kind.Valid() {
		return fmt.Errorf("%w: operator kind %d", ErrFieldOverflow, uint8(op.Kind))
	}
	if err := CheckArity(op.Kind, len(op.SubPackets)); err != nil {
		return err
	}

	var body bits.Writer
	for _, sub := range op.SubPackets {
		if err := encode(&body, sub); err != nil {
			return err
		}
	}

	w.WriteBits(uint64(op.Ver), VersionBits)
	w.WriteBits(uint64(op.Kind), TypeBits)
	switch op.LengthType {
	case LengthTotalBits:
		if body.Len() > MaxTotalLength {
			return fmt.Errorf("%w: total length %d", ErrFieldOverflow, body.Len())
		}
		w.WriteBits(uint64(LengthTotalBits), LengthTypeBits)
		w.WriteBits(uint64(body.Len()), TotalLengthBits)
	case LengthSubPacketCount:
		if len(op.SubPackets) > MaxCount {
			return fmt.Errorf("%w: sub-packet count %d", ErrFieldOverflow, len(op.SubPackets))
		}
		w.WriteBits(uint64(LengthSubPacketCount), LengthTypeBits)
		w.WriteBits(uint64(len(op.SubPackets)), CountBits)
	default:
		return fmt.Errorf("%w: length type %d", ErrFieldOverflow, uint8(op.LengthType))
	}

	w.WriteSequence(body.Sequence())
	return nil
}
