// Package protocol implements the MAC-side collaborators of the PHY
// encoder: MPDU framing with a CRC-32 frame check sequence, payload
// fragmentation with optional outer coding, and the channel-based
// handoff between the encoder and an external transport.
package protocol

import (
	"encoding/binary"
	"fmt"

	"github.com/jeongseonghan/ofdm-phy/internal/fec"
	"github.com/jeongseonghan/ofdm-phy/internal/phy"
)

// Frame types
const (
	TypeData     byte = 0x01
	TypeControl  byte = 0x02
	TypeFragment byte = 0x03
	TypeFragEnd  byte = 0x04
)

// Frame size limits. An encoded frame (header + payload + FCS) must fit
// the SIGNAL field's 12-bit length range.
const (
	HeaderSize     = 4
	FCSSize        = 4
	MaxPayloadSize = phy.MaxFrameLength - HeaderSize - FCSSize
)

// Frame is one MPDU handed to the PHY encoder.
// Format: [Type(1B)][SeqNum(1B)][PayloadLen(2B)][Payload][FCS(4B)]
// The FCS is the CRC-32 of header + payload in little-endian order.
type Frame struct {
	Type       byte
	SeqNum     byte
	PayloadLen uint16
	Payload    []byte
}

// TypeName returns a human-readable name for the frame type.
func (f *Frame) TypeName() string {
	switch f.Type {
	case TypeData:
		return "DATA"
	case TypeControl:
		return "CONTROL"
	case TypeFragment:
		return "FRAGMENT"
	case TypeFragEnd:
		return "FRAGMENT_END"
	default:
		return fmt.Sprintf("UNKNOWN(0x%02x)", f.Type)
	}
}

// NewDataFrame creates a DATA frame.
func NewDataFrame(seqNum byte, payload []byte) *Frame {
	return &Frame{
		Type:       TypeData,
		SeqNum:     seqNum,
		PayloadLen: uint16(len(payload)),
		Payload:    payload,
	}
}

// NewControlFrame creates a CONTROL frame.
func NewControlFrame(payload []byte) *Frame {
	return &Frame{
		Type:       TypeControl,
		PayloadLen: uint16(len(payload)),
		Payload:    payload,
	}
}

// EncodedLen returns the serialized frame length in octets.
func (f *Frame) EncodedLen() int {
	return HeaderSize + int(f.PayloadLen) + FCSSize
}

// Encode serializes the frame and appends the FCS.
func (f *Frame) Encode() ([]byte, error) {
	if int(f.PayloadLen) != len(f.Payload) {
		return nil, fmt.Errorf("payload is %d octets, header declares %d", len(f.Payload), f.PayloadLen)
	}
	if len(f.Payload) > MaxPayloadSize {
		return nil, fmt.Errorf("payload %d octets exceeds %d", len(f.Payload), MaxPayloadSize)
	}

	buf := make([]byte, HeaderSize+int(f.PayloadLen))
	buf[0] = f.Type
	buf[1] = f.SeqNum
	binary.BigEndian.PutUint16(buf[2:4], f.PayloadLen)
	copy(buf[HeaderSize:], f.Payload)

	return fec.AppendCRC32(buf), nil
}

// DecodeFrame deserializes bytes into a Frame, verifying the FCS.
func DecodeFrame(data []byte) (*Frame, error) {
	if len(data) < HeaderSize+FCSSize {
		return nil, fmt.Errorf("frame too short: %d octets", len(data))
	}

	f := &Frame{
		Type:       data[0],
		SeqNum:     data[1],
		PayloadLen: binary.BigEndian.Uint16(data[2:4]),
	}

	expectedLen := HeaderSize + int(f.PayloadLen) + FCSSize
	if len(data) < expectedLen {
		return nil, fmt.Errorf("frame truncated: have %d, need %d", len(data), expectedLen)
	}

	body, ok := fec.VerifyCRC32(data[:expectedLen])
	if !ok {
		return nil, fmt.Errorf("FCS mismatch on %s frame seq=%d", f.TypeName(), f.SeqNum)
	}

	if f.PayloadLen > 0 {
		f.Payload = make([]byte, f.PayloadLen)
		copy(f.Payload, body[HeaderSize:])
	}
	return f, nil
}
