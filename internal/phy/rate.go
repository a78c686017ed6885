// Package phy implements the OFDM transmit encoding pipeline: SIGNAL
// field construction, scrambling, convolutional coding with puncturing,
// interleaving, subcarrier modulation, pilot insertion and time-domain
// framing, per the 20 MHz OFDM PHY rate set.
package phy

import (
	"fmt"
	"sort"

	"github.com/jeongseonghan/ofdm-phy/internal/modem"
)

// CodingRate identifies the convolutional code rate.
type CodingRate int

const (
	Rate1_2 CodingRate = iota
	Rate2_3
	Rate3_4
)

// String returns the coding rate as "k/n".
func (r CodingRate) String() string {
	switch r {
	case Rate1_2:
		return "1/2"
	case Rate2_3:
		return "2/3"
	case Rate3_4:
		return "3/4"
	default:
		return "Unknown"
	}
}

// RateParams holds the per-rate modulation and coding parameters.
type RateParams struct {
	Mbps               int
	Modulation         modem.Modulation
	CodingRate         CodingRate
	BitsPerSubcarrier  int     // N_BPSC
	CodedBitsPerSymbol int     // N_CBPS = 48 * N_BPSC
	DataBitsPerSymbol  int     // N_DBPS
	SignalRateBits     [4]byte // SIGNAL rate code in transmit order
}

// rateTable is the static 20 MHz rate set, keyed by data rate in Mb/s.
// Read-only after init; safe for concurrent lookups.
var rateTable = map[int]RateParams{
	6:  {6, modem.ModBPSK, Rate1_2, 1, 48, 24, [4]byte{1, 1, 0, 1}},
	9:  {9, modem.ModBPSK, Rate3_4, 1, 48, 36, [4]byte{1, 1, 1, 1}},
	12: {12, modem.ModQPSK, Rate1_2, 2, 96, 48, [4]byte{0, 1, 0, 1}},
	18: {18, modem.ModQPSK, Rate3_4, 2, 96, 72, [4]byte{0, 1, 1, 1}},
	24: {24, modem.Mod16QAM, Rate1_2, 4, 192, 96, [4]byte{1, 0, 0, 1}},
	36: {36, modem.Mod16QAM, Rate3_4, 4, 192, 144, [4]byte{1, 0, 1, 1}},
	48: {48, modem.Mod64QAM, Rate2_3, 6, 288, 192, [4]byte{0, 0, 0, 1}},
	54: {54, modem.Mod64QAM, Rate3_4, 6, 288, 216, [4]byte{0, 0, 1, 1}},
}

// LookupRate resolves a data rate in Mb/s to its parameters.
func LookupRate(mbps int) (RateParams, error) {
	p, ok := rateTable[mbps]
	if !ok {
		return RateParams{}, fmt.Errorf("rate %d Mb/s: %w", mbps, ErrUnsupportedRate)
	}
	return p, nil
}

// SupportedRates returns the rate identifiers in ascending order.
func SupportedRates() []int {
	rates := make([]int, 0, len(rateTable))
	for r := range rateTable {
		rates = append(rates, r)
	}
	sort.Ints(rates)
	return rates
}

// DefaultScramblerSeed is the 7-bit scrambler initialization used for
// the standard DATA scrambling example.
const DefaultScramblerSeed byte = 93

// MaxFrameLength is the largest payload length representable in the
// SIGNAL field's 12-bit length subfield.
const MaxFrameLength = 4095

// TxVector selects the per-frame encoding parameters. It is validated
// at construction and immutable for the frame.
type TxVector struct {
	RateMbps      int
	Length        int  // payload length in octets
	ScramblerSeed byte // 7-bit, non-zero
}

// NewTxVector builds a validated TxVector with the default scrambler
// seed.
func NewTxVector(rateMbps, length int) (TxVector, error) {
	if _, err := LookupRate(rateMbps); err != nil {
		return TxVector{}, err
	}
	if length <= 0 || length > MaxFrameLength {
		return TxVector{}, fmt.Errorf("length %d octets: %w", length, ErrInvalidLength)
	}
	return TxVector{
		RateMbps:      rateMbps,
		Length:        length,
		ScramblerSeed: DefaultScramblerSeed,
	}, nil
}

// Params returns the rate parameters for the vector.
func (tv TxVector) Params() (RateParams, error) {
	return LookupRate(tv.RateMbps)
}
