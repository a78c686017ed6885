package modem

// Pilot subcarrier insertion. Each OFDM symbol carries four pilot
// subcarriers among 48 data subcarriers; the pilot polarity flips
// per symbol according to a pseudo-random sign sequence owned by the
// caller.

import (
	"fmt"
)

const (
	// NumSubcarriers is the number of active subcarriers per OFDM symbol.
	NumSubcarriers = 52
	// NumDataSubcarriers is the number of data-bearing subcarriers.
	NumDataSubcarriers = 48
	// NumPilots is the number of pilot subcarriers.
	NumPilots = 4
)

// pilotIndices are the pilot slots within the 52-subcarrier layout
// (subcarriers -21, -7, +7, +21).
var pilotIndices = [NumPilots]int{5, 19, 32, 46}

// pilotPattern is the base pilot sequence before polarity is applied.
var pilotPattern = [NumPilots]float64{1, 1, 1, -1}

// IsPilot reports whether the given 52-layout slot carries a pilot.
func IsPilot(idx int) bool {
	for _, p := range pilotIndices {
		if idx == p {
			return true
		}
	}
	return false
}

// InsertPilots builds a 52-subcarrier frequency-domain symbol from 48
// data symbols and a pilot polarity of +1 or -1. Data symbols fill the
// non-pilot slots in order.
func InsertPilots(data []complex128, polarity float64) ([]complex128, error) {
	if len(data) != NumDataSubcarriers {
		return nil, fmt.Errorf("expected %d data symbols, got %d: %w",
			NumDataSubcarriers, len(data), ErrMalformedBitSequence)
	}

	symbol := make([]complex128, NumSubcarriers)
	dataIdx := 0
	pilotIdx := 0
	for i := 0; i < NumSubcarriers; i++ {
		if IsPilot(i) {
			symbol[i] = complex(pilotPattern[pilotIdx]*polarity, 0)
			pilotIdx++
		} else {
			symbol[i] = data[dataIdx]
			dataIdx++
		}
	}
	return symbol, nil
}
