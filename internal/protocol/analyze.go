package protocol

import (
	"github.com/danmuck/bitsctl/internal/protocol/eval"
	"github.com/danmuck/bitsctl/internal/protocol/packet"
	"github.com/rs/zerolog/log"
)

// Report is the outcome of decoding and evaluating one transmission.
type Report struct {
	Root       packet.Packet
	VersionSum uint64
	Value      uint64
	// Bits is the transmission length; Padding is the unread tail after Root.
	Bits    int
	Padding int
}

// Analyze decodes hex text and evaluates the root packet. Any failure
// aborts the whole transmission; no partial report is returned.
func Analyze(text string, limits packet.Limits) (Report, error) {
	msg, err := packet.DecodeMessage(text, limits)
	if err != nil {
		log.Debug().Err(err).Msg("protocol.Analyze decode failed")
		return Report{}, err
	}

	value, err := eval.Value(msg.Root)
	if err != nil {
		log.Debug().Err(err).Msg("protocol.Analyze eval failed")
		return Report{}, err
	}

	versionSum, err := eval.VersionSum(msg.Root)
	if err != nil {
		log.Debug().Err(err).Msg("protocol.Analyze version sum failed")
		return Report{}, err
	}

	r := Report{
		Root:       msg.Root,
		VersionSum: versionSum,
		Value:      value,
		Bits:       msg.Bits,
		Padding:    msg.Padding,
	}
	log.Debug().
		Uint64("version_sum", r.VersionSum).
		Uint64("value", r.Value).
		Int("bits", r.Bits).
		Msg("protocol.Analyze ok")
	return r, nil
}
