package protocol

import (
	"fmt"

	"github.com/jeongseonghan/ofdm-phy/internal/fec"
)

// DefaultFragmentSize is the payload size used when splitting large
// byte streams into MPDUs.
const DefaultFragmentSize = 1024

// Fragmenter splits payloads that exceed one MPDU into a numbered
// fragment train, optionally protected by the Reed-Solomon outer code
// so that whole-fragment losses remain recoverable downstream.
type Fragmenter struct {
	fragSize int
	outer    *fec.OuterCoder // nil disables outer coding
}

// NewFragmenter creates a fragmenter with the given fragment payload
// size. A nil outer coder disables outer protection.
func NewFragmenter(fragSize int, outer *fec.OuterCoder) (*Fragmenter, error) {
	if fragSize <= 0 || fragSize > MaxPayloadSize {
		return nil, fmt.Errorf("fragment size %d out of range 1..%d", fragSize, MaxPayloadSize)
	}
	return &Fragmenter{fragSize: fragSize, outer: outer}, nil
}

// Split fragments a byte stream into frames. All fragments but the last
// carry TypeFragment; the final one carries TypeFragEnd. Sequence
// numbers increase from 0 and wrap at 256.
func (fr *Fragmenter) Split(data []byte) ([]*Frame, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty payload")
	}

	stream := data
	if fr.outer != nil {
		protected, err := fr.outer.Protect(data)
		if err != nil {
			return nil, fmt.Errorf("protect payload: %w", err)
		}
		stream = protected
	}

	var frames []*Frame
	seq := byte(0)
	for off := 0; off < len(stream); off += fr.fragSize {
		end := off + fr.fragSize
		if end > len(stream) {
			end = len(stream)
		}
		f := &Frame{
			Type:       TypeFragment,
			SeqNum:     seq,
			PayloadLen: uint16(end - off),
			Payload:    stream[off:end],
		}
		if end == len(stream) {
			f.Type = TypeFragEnd
		}
		frames = append(frames, f)
		seq++
	}
	return frames, nil
}

// Join reassembles a fragment train produced by Split. Fragments must
// be in order and complete; the caller recovers lost fragments through
// the outer code before joining when one is configured.
func (fr *Fragmenter) Join(frames []*Frame) ([]byte, error) {
	if len(frames) == 0 {
		return nil, fmt.Errorf("no fragments")
	}

	var stream []byte
	for i, f := range frames {
		if f.Type != TypeFragment && f.Type != TypeFragEnd {
			return nil, fmt.Errorf("fragment %d has type %s", i, f.TypeName())
		}
		if f.SeqNum != byte(i) {
			return nil, fmt.Errorf("fragment %d out of order: seq=%d", i, f.SeqNum)
		}
		if f.Type == TypeFragEnd && i != len(frames)-1 {
			return nil, fmt.Errorf("fragment %d marked final but %d follow", i, len(frames)-1-i)
		}
		stream = append(stream, f.Payload...)
	}
	if frames[len(frames)-1].Type != TypeFragEnd {
		return nil, fmt.Errorf("fragment train not terminated")
	}

	if fr.outer != nil {
		recovered, err := fr.outer.Recover(stream, nil)
		if err != nil {
			return nil, fmt.Errorf("recover payload: %w", err)
		}
		return recovered, nil
	}
	return stream, nil
}
