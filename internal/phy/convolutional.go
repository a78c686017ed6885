package phy

import (
	"fmt"
)

// Rate-1/2 binary convolutional code, constraint length 7, generators
// 133 and 171 (octal). Higher rates are derived by puncturing the
// rate-1/2 stream.

// Generator taps, register index 0 holding the current input bit.
var (
	generatorA = [7]byte{1, 0, 1, 1, 0, 1, 1} // 133 octal
	generatorB = [7]byte{1, 1, 1, 1, 0, 0, 1} // 171 octal
)

// Puncturing masks, tiled over the rate-1/2 stream; positions marked 1
// are kept.
var (
	punctureMask2_3 = []byte{1, 1, 1, 0}
	punctureMask3_4 = []byte{1, 1, 1, 0, 0, 1}
)

// ConvolutionalEncode encodes bits at the requested coding rate. The
// encoder starts from the zero state and emits the generator-A output
// then the generator-B output for each input bit; for rates 2/3 and 3/4
// the fixed puncturing mask is tiled to the encoded length and
// truncated, never rounded.
func ConvolutionalEncode(bitSeq []byte, rate CodingRate) ([]byte, error) {
	var reg [7]byte
	out := make([]byte, 0, 2*len(bitSeq))
	for _, b := range bitSeq {
		copy(reg[1:], reg[:6])
		reg[0] = b & 1

		var outA, outB byte
		for i := range reg {
			outA ^= reg[i] & generatorA[i]
			outB ^= reg[i] & generatorB[i]
		}
		out = append(out, outA, outB)
	}

	switch rate {
	case Rate1_2:
		return out, nil
	case Rate2_3:
		return puncture(out, punctureMask2_3), nil
	case Rate3_4:
		return puncture(out, punctureMask3_4), nil
	default:
		return nil, fmt.Errorf("coding rate %d: %w", rate, ErrUnsupportedRate)
	}
}

func puncture(bitSeq, mask []byte) []byte {
	out := make([]byte, 0, len(bitSeq))
	for i, b := range bitSeq {
		if mask[i%len(mask)] == 1 {
			out = append(out, b)
		}
	}
	return out
}
