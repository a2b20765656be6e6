package packet

import (
	"fmt"
	"math"

	"github.com/danmuck/bitsctl/internal/protocol/bits"
	"github.com/rs/zerolog/log"
)

// Limits constrains decode recursion.
type Limits struct {
	// MaxDepth bounds operator nesting; the root is depth 0. Values <= 0
	// select the default.
	MaxDepth int
}

func DefaultLimits() Limits {
	return Limits{MaxDepth: 256}
}

func (l Limits) maxDepth() int {
	if l.MaxDepth <= 0 {
		return DefaultLimits().MaxDepth
	}
	return l.MaxDepth
}

// Message is a decoded root packet plus the unread bits that followed it.
type Message struct {
	Root    Packet
	Bits    int
	Padding int
}

// DecodeHex decodes the root packet of a hex transmission.
func DecodeHex(text string, limits Limits) (Packet, error) {
	msg, err := DecodeMessage(text, limits)
	if err != nil {
		return nil, err
	}
	return msg.Root, nil
}

// DecodeMessage decodes the root packet at offset 0 of a hex transmission.
// Bits after the root are padding and are not inspected.
func DecodeMessage(text string, limits Limits) (Message, error) {
	seq, err := bits.FromHex(text)
	if err != nil {
		return Message{}, err
	}
	root, rest, err := Decode(bits.NewCursor(seq), limits)
	if err != nil {
		return Message{}, err
	}
	log.Debug().
		Int("bits", seq.Len()).
		Int("root_len", root.Len()).
		Int("padding", rest.Remaining()).
		Msg("packet.DecodeMessage")
	return Message{Root: root, Bits: seq.Len(), Padding: rest.Remaining()}, nil
}

// Decode reads one packet, and recursively its sub-packets, starting at c.
// On success the returned cursor sits exactly p.Len() bits after c.
func Decode(c bits.Cursor, limits Limits) (Packet, bits.Cursor, error) {
	d := decoder{maxDepth: limits.maxDepth()}
	return d.decode(c, 0)
}

type decoder struct {
	maxDepth int
}

func (d decoder) decode(in bits.Cursor, depth int) (Packet, bits.Cursor, error) {
	if depth > d.maxDepth {
		return nil, in, fmt.Errorf("%w: offset=%d depth=%d", ErrTooDeep, in.Offset(), depth)
	}
	start := in.Offset()

	version, c, err := in.Read(VersionBits)
	if err != nil {
		return nil, in, fmt.Errorf("packet header at offset %d: %w", start, err)
	}
	typeID, c, err := c.Read(TypeBits)
	if err != nil {
		return nil, in, fmt.Errorf("packet header at offset %d: %w", start, err)
	}

	var p Packet
	if uint8(typeID) == TypeLiteral {
		p, c, err = decodeLiteral(uint8(version), c, start)
	} else {
		p, c, err = d.decodeOperator(uint8(version), Kind(typeID), c, start, depth)
	}
	if err != nil {
		return nil, in, err
	}
	return p, c, nil
}

func decodeLiteral(version uint8, c bits.Cursor, start int) (Packet, bits.Cursor, error) {
	var value uint64
	groups := 0
	for {
		group, next, err := c.Read(GroupBits)
		if err != nil {
			return nil, c, fmt.Errorf("literal at offset %d group %d: %w", start, groups, err)
		}
		c = next
		groups++
		if value > math.MaxUint64>>4 {
			return nil, c, fmt.Errorf("%w: offset=%d group=%d", ErrLiteralOverflow, start, groups)
		}
		value = value<<4 | group&0x0F
		if group&0x10 == 0 {
			break
		}
	}
	return Literal{Ver: version, Value: value, Bits: HeaderBits + GroupBits*groups}, c, nil
}

func (d decoder) decodeOperator(version uint8, kind Kind, c bits.Cursor, start int, depth int) (Packet, bits.Cursor, error) {
	lt, c, err := c.Read(LengthTypeBits)
	if err != nil {
		return nil, c, fmt.Errorf("operator at offset %d length type: %w", start, err)
	}

	var (
		subs   []Packet
		header int
		body   int
	)
	switch LengthType(lt) {
	case LengthTotalBits:
		total, next, err := c.Read(TotalLengthBits)
		if err != nil {
			return nil, c, fmt.Errorf("operator at offset %d total length: %w", start, err)
		}
		c = next
		header = TotalLengthBits
		for body < int(total) {
			sub, next, err := d.decode(c, depth+1)
			if err != nil {
				return nil, c, err
			}
			if body+sub.Len() > int(total) {
				return nil, c, fmt.Errorf("%w: operator at offset %d declares %d bits, sub-packet %d ends at %d",
					ErrLengthMismatch, start, total, len(subs), body+sub.Len())
			}
			body += sub.Len()
			subs = append(subs, sub)
			c = next
		}
	case LengthSubPacketCount:
		count, next, err := c.Read(CountBits)
		if err != nil {
			return nil, c, fmt.Errorf("operator at offset %d sub-packet count: %w", start, err)
		}
		c = next
		header = CountBits
		subs = make([]Packet, 0, count)
		for i := 0; i < int(count); i++ {
			sub, next, err := d.decode(c, depth+1)
			if err != nil {
				return nil, c, err
			}
			body += sub.Len()
			subs = append(subs, sub)
			c = next
		}
	}

	if err := CheckArity(kind, len(subs)); err != nil {
		return nil, c, fmt.Errorf("operator at offset %d: %w", start, err)
	}
	log.Trace().
		Int("offset", start).
		Int("depth", depth).
		Stringer("kind", kind).
		Stringer("length_type", LengthType(lt)).
		Int("subs", len(subs)).
		Msg("packet.decodeOperator")
	return Operator{
		Ver:        version,
		Kind:       kind,
		LengthType: LengthType(lt),
		SubPackets: subs,
		Bits:       HeaderBits + LengthTypeBits + header + body,
	}, c, nil
}
