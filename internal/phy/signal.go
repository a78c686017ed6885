package phy

import (
	"fmt"
)

// DATA field framing constants.
const (
	SignalFieldBits = 24
	ServiceBits     = 16
	TailBits        = 6
)

// SignalField builds the 24-bit SIGNAL header for a frame: rate code in
// transmit order (bits 0-3), reserved zero (bit 4), 12-bit length
// LSB-first (bits 5-16), even parity over bits 0-16 (bit 17) and six
// zero tail bits (bits 18-23).
func SignalField(tv TxVector) ([]byte, error) {
	params, err := tv.Params()
	if err != nil {
		return nil, err
	}
	if tv.Length <= 0 || tv.Length > MaxFrameLength {
		return nil, fmt.Errorf("length %d octets: %w", tv.Length, ErrInvalidLength)
	}

	field := make([]byte, SignalFieldBits)
	copy(field[0:4], params.SignalRateBits[:])
	for i := 0; i < 12; i++ {
		field[5+i] = byte((tv.Length >> uint(i)) & 1)
	}

	var parity byte
	for _, b := range field[:17] {
		parity ^= b
	}
	field[17] = parity

	return field, nil
}

// NumSymbols returns the number of DATA OFDM symbols needed for a
// payload of lengthOctets at the given data bits per symbol:
// ceil((16 + 8L + 6) / N_DBPS).
func NumSymbols(lengthOctets, dataBitsPerSymbol int) int {
	total := ServiceBits + 8*lengthOctets + TailBits
	return (total + dataBitsPerSymbol - 1) / dataBitsPerSymbol
}

// PadBits returns the pad bit count that rounds the DATA field up to a
// whole number of OFDM symbols. Always 0 <= n_pad < N_DBPS.
func PadBits(lengthOctets, dataBitsPerSymbol int) int {
	total := ServiceBits + 8*lengthOctets + TailBits
	return NumSymbols(lengthOctets, dataBitsPerSymbol)*dataBitsPerSymbol - total
}
