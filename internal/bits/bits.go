// Package bits converts between octet payloads and the bit-slice
// representation used throughout the PHY pipeline. Bits are carried as
// []byte with one bit (0 or 1) per element, MSB-first within each octet.
package bits

import (
	"fmt"
	"strconv"
	"strings"
)

// FromBytes expands octets into bits, MSB-first per octet.
func FromBytes(data []byte) []byte {
	out := make([]byte, len(data)*8)
	for i, b := range data {
		for j := 7; j >= 0; j-- {
			out[i*8+(7-j)] = (b >> uint(j)) & 1
		}
	}
	return out
}

// ToBytes packs bits (MSB-first per octet) back into octets.
// The bit count must be a multiple of 8.
func ToBytes(bitSeq []byte) ([]byte, error) {
	if len(bitSeq)%8 != 0 {
		return nil, fmt.Errorf("bit count %d is not a multiple of 8", len(bitSeq))
	}
	out := make([]byte, len(bitSeq)/8)
	for i := range out {
		var b byte
		for j := 0; j < 8; j++ {
			b = (b << 1) | (bitSeq[i*8+j] & 1)
		}
		out[i] = b
	}
	return out, nil
}

// FromText expands a text payload into bits, MSB-first per octet.
func FromText(s string) []byte {
	return FromBytes([]byte(s))
}

// ToHexStrings formats octets as uppercase "0xNN" strings.
func ToHexStrings(data []byte) []string {
	out := make([]string, len(data))
	for i, b := range data {
		out[i] = fmt.Sprintf("0x%02X", b)
	}
	return out
}

// FromHexStrings parses a list of "0xNN" strings back into octets.
func FromHexStrings(hexes []string) ([]byte, error) {
	out := make([]byte, len(hexes))
	for i, h := range hexes {
		s := strings.TrimPrefix(strings.TrimPrefix(h, "0x"), "0X")
		v, err := strconv.ParseUint(s, 16, 8)
		if err != nil {
			return nil, fmt.Errorf("parse hex octet %q: %w", h, err)
		}
		out[i] = byte(v)
	}
	return out, nil
}

// XOR returns the element-wise XOR of two equal-length bit slices.
func XOR(a, b []byte) ([]byte, error) {
	if len(a) != len(b) {
		return nil, fmt.Errorf("length mismatch: %d != %d", len(a), len(b))
	}
	out := make([]byte, len(a))
	for i := range a {
		out[i] = (a[i] ^ b[i]) & 1
	}
	return out, nil
}
