package packet

import "fmt"

// Wire field widths in bits.
const (
	VersionBits     = 3
	TypeBits        = 3
	HeaderBits      = VersionBits + TypeBits
	GroupBits       = 5
	LengthTypeBits  = 1
	TotalLengthBits = 15
	CountBits       = 11

	MaxVersion     = 1<<VersionBits - 1
	MaxTotalLength = 1<<TotalLengthBits - 1
	MaxCount       = 1<<CountBits - 1
)

// TypeLiteral is the type id of literal packets; all other ids are operators.
const TypeLiteral uint8 = 4

// Kind is an operator packet's type id.
type Kind uint8

const (
	KindSum         Kind = 0
	KindProduct     Kind = 1
	KindMinimum     Kind = 2
	KindMaximum     Kind = 3
	KindGreaterThan Kind = 5
	KindLessThan    Kind = 6
	KindEqualTo     Kind = 7
)

func (k Kind) String() string {
	switch k {
	case KindSum:
		return "sum"
	case KindProduct:
		return "product"
	case KindMinimum:
		return "minimum"
	case KindMaximum:
		return "maximum"
	case KindGreaterThan:
		return "greater_than"
	case KindLessThan:
		return "less_than"
	case KindEqualTo:
		return "equal_to"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

func (k Kind) Valid() bool {
	return k <= KindEqualTo && uint8(k) != TypeLiteral
}

// IsComparison reports whether k takes exactly two sub-packets.
func (k Kind) IsComparison() bool {
	return k == KindGreaterThan || k == KindLessThan || k == KindEqualTo
}

// LengthType selects how an operator declares the extent of its sub-packets.
type LengthType uint8

const (
	LengthTotalBits      LengthType = 0
	LengthSubPacketCount LengthType = 1
)

func (l LengthType) String() string {
	switch l {
	case LengthTotalBits:
		return "total_bits"
	case LengthSubPacketCount:
		return "count"
	default:
		return fmt.Sprintf("length_type(%d)", uint8(l))
	}
}

// Packet is one node of a decoded tree. Literal and Operator are the only
// implementations.
type Packet interface {
	Version() uint8
	// Len is the number of bits the packet occupies on the wire, header included.
	Len() int
	isPacket()
}

// Literal is a leaf packet carrying a value. Bits also fixes the group count,
// leading zero groups included.
type Literal struct {
	Ver   uint8
	Value uint64
	Bits  int
}

func (l Literal) Version() uint8 { return l.Ver }
func (l Literal) Len() int       { return l.Bits }
func (Literal) isPacket()        {}

// Operator combines its ordered sub-packets according to Kind.
type Operator struct {
	Ver        uint8
	Kind       Kind
	LengthType LengthType
	SubPackets []Packet
	Bits       int
}

func (o Operator) Version() uint8 { return o.Ver }
func (o Operator) Len() int       { return o.Bits }
func (Operator) isPacket()        {}
