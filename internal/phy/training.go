package phy

import (
	"math"

	"github.com/jeongseonghan/ofdm-phy/internal/modem"
)

// Training field frequency-domain sequences over the 52 active
// subcarriers (slots 0-25 are subcarriers -26..-1, slots 26-51 are
// +1..+26; DC is not represented).

// stfScale normalizes the 12 occupied short-training subcarriers to the
// same total power as a 52-subcarrier symbol.
var stfScale = math.Sqrt(13.0 / 6.0)

// shortSequence has energy every fourth subcarrier, giving the short
// field its 16-sample periodicity.
var shortSequence = buildShortSequence()

func buildShortSequence() [modem.NumSubcarriers]complex128 {
	var seq [modem.NumSubcarriers]complex128
	plus := complex(stfScale, stfScale)
	minus := complex(-stfScale, -stfScale)

	// Subcarrier -24..-4, step 4.
	seq[2] = plus   // -24
	seq[6] = minus  // -20
	seq[10] = plus  // -16
	seq[14] = minus // -12
	seq[18] = minus // -8
	seq[22] = plus  // -4

	// Subcarrier +4..+24, step 4.
	seq[29] = minus // +4
	seq[33] = minus // +8
	seq[37] = plus  // +12
	seq[41] = plus  // +16
	seq[45] = plus  // +20
	seq[49] = plus  // +24
	return seq
}

// longSequence is the BPSK long-training sequence.
var longSequence = buildLongSequence()

func buildLongSequence() [modem.NumSubcarriers]complex128 {
	negative := []float64{
		1, 1, -1, -1, 1, 1, -1, 1, -1, 1, 1, 1, 1,
		1, 1, -1, -1, 1, 1, -1, 1, -1, 1, 1, 1, 1,
	}
	positive := []float64{
		1, -1, -1, 1, 1, -1, 1, -1, 1, -1, -1, -1, -1,
		-1, 1, 1, -1, -1, 1, -1, 1, -1, 1, 1, 1, 1,
	}

	var seq [modem.NumSubcarriers]complex128
	for i, v := range negative {
		seq[i] = complex(v, 0)
	}
	for i, v := range positive {
		seq[26+i] = complex(v, 0)
	}
	return seq
}

// ShortTrainingField renders the 161-sample short training field.
func ShortTrainingField() ([]complex128, error) {
	return modem.TimeDomain(shortSequence[:], modem.FieldSTF)
}

// LongTrainingField renders the 161-sample long training field with its
// double guard interval.
func LongTrainingField() ([]complex128, error) {
	return modem.TimeDomain(longSequence[:], modem.FieldLTF)
}
