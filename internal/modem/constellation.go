package modem

import (
	"fmt"
	"math"
)

// Modulation represents a subcarrier modulation scheme. The value is
// the number of coded bits carried per subcarrier (N_BPSC).
type Modulation int

const (
	ModBPSK  Modulation = 1
	ModQPSK  Modulation = 2
	Mod16QAM Modulation = 4
	Mod64QAM Modulation = 6
)

// BitsPerSubcarrier returns N_BPSC for the modulation.
func (m Modulation) BitsPerSubcarrier() int {
	return int(m)
}

// String returns the modulation name.
func (m Modulation) String() string {
	switch m {
	case ModBPSK:
		return "BPSK"
	case ModQPSK:
		return "QPSK"
	case Mod16QAM:
		return "16-QAM"
	case Mod64QAM:
		return "64-QAM"
	default:
		return "Unknown"
	}
}

// Per-axis Gray-coded amplitude levels, indexed by the bit group value.
var (
	levels2 = [2]float64{-1, 1}
	levels4 = [4]float64{-3, -1, 3, 1}
	levels8 = [8]float64{-7, -5, -1, -3, 7, 5, 1, 3}
)

// Constellation maps bit groups to normalized constellation points.
type Constellation struct {
	mod  Modulation
	kmod float64 // power normalization factor
}

// NewConstellation creates a constellation for the given modulation.
// The normalization factor K_MOD equalizes average symbol power across
// modulations: 1, 1/sqrt(2), 1/sqrt(10), 1/sqrt(42).
func NewConstellation(mod Modulation) (*Constellation, error) {
	var kmod float64
	switch mod {
	case ModBPSK:
		kmod = 1
	case ModQPSK:
		kmod = 1 / math.Sqrt2
	case Mod16QAM:
		kmod = 1 / math.Sqrt(10)
	case Mod64QAM:
		kmod = 1 / math.Sqrt(42)
	default:
		return nil, fmt.Errorf("unknown modulation %d", mod)
	}
	return &Constellation{mod: mod, kmod: kmod}, nil
}

// Modulation returns the constellation's modulation scheme.
func (c *Constellation) Modulation() Modulation {
	return c.mod
}

// KMod returns the power normalization factor.
func (c *Constellation) KMod() float64 {
	return c.kmod
}

// Map converts a bit sequence into constellation symbols, one symbol
// per N_BPSC bits. The bit count must be a multiple of N_BPSC.
func (c *Constellation) Map(bitSeq []byte) ([]complex128, error) {
	bps := c.mod.BitsPerSubcarrier()
	if len(bitSeq)%bps != 0 {
		return nil, fmt.Errorf("bit count %d is not a multiple of %d: %w",
			len(bitSeq), bps, ErrMalformedBitSequence)
	}

	symbols := make([]complex128, len(bitSeq)/bps)
	for i := range symbols {
		symbols[i] = c.mapGroup(bitSeq[i*bps : (i+1)*bps])
	}
	return symbols, nil
}

func (c *Constellation) mapGroup(group []byte) complex128 {
	switch c.mod {
	case ModBPSK:
		return complex(levels2[group[0]&1], 0)
	case ModQPSK:
		i := levels2[group[0]&1]
		q := levels2[group[1]&1]
		return complex(i*c.kmod, q*c.kmod)
	case Mod16QAM:
		i := levels4[groupValue(group[0:2])]
		q := levels4[groupValue(group[2:4])]
		return complex(i*c.kmod, q*c.kmod)
	default: // Mod64QAM
		i := levels8[groupValue(group[0:3])]
		q := levels8[groupValue(group[3:6])]
		return complex(i*c.kmod, q*c.kmod)
	}
}

func groupValue(group []byte) int {
	v := 0
	for _, b := range group {
		v = (v << 1) | int(b&1)
	}
	return v
}
