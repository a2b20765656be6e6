package packet

import (
	"fmt"
	"strings"
)

// Walk visits p and its descendants in pre-order. Returning false from fn
// skips the children of the packet just visited.
func Walk(p Packet, fn func(p Packet, depth int) bool) {
	walk(p, 0, fn)
}

func walk(p Packet, depth int, fn func(Packet, int) bool) {
	if !fn(p, depth) {
		return
	}
	if op, ok := p.(Operator); ok {
		for _, sub := range op.SubPackets {
			walk(sub, depth+1, fn)
		}
	}
}

// Format renders the tree one packet per line, indented by depth.
func Format(p Packet) string {
	var b strings.Builder
	Walk(p, func(p Packet, depth int) bool {
		b.WriteString(strings.Repeat("  ", depth))
		switch v := p.(type) {
		case Literal:
			fmt.Fprintf(&b, "literal v%d value=%d len=%d\n", v.Ver, v.Value, v.Bits)
		case Operator:
			fmt.Fprintf(&b, "%s v%d subs=%d length_type=%s len=%d\n",
				v.Kind, v.Ver, len(v.SubPackets), v.LengthType, v.Bits)
		default:
			fmt.Fprintf(&b, "unknown %T\n", p)
		}
		return true
	})
	return b.String()
}
