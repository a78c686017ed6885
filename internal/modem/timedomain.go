package modem

import (
	"fmt"

	"gonum.org/v1/gonum/dsp/fourier"
)

// OFDM symbol timing at 20 Msample/s.
const (
	FFTSize    = 64
	GuardLen   = 16 // single guard interval, 0.8 us
	SampleRate = 20e6

	// SymbolLen is the length of a SIGNAL or DATA symbol after guard
	// insertion and the trailing overlap sample.
	SymbolLen = GuardLen + FFTSize + 1 // 81

	// TrainingLen is the length of the short or long training field.
	TrainingLen = 161
)

// Field tags an OFDM symbol with its guard-interval treatment.
type Field int

const (
	FieldSTF Field = iota
	FieldLTF
	FieldSignal
	FieldData
)

// String returns the field name.
func (f Field) String() string {
	switch f {
	case FieldSTF:
		return "STF"
	case FieldLTF:
		return "LTF"
	case FieldSignal:
		return "SIGNAL"
	case FieldData:
		return "DATA"
	default:
		return "Unknown"
	}
}

// TimeDomain converts a 52-subcarrier frequency-domain symbol into
// time-domain samples. The subcarriers are reordered into a 64-point
// spectrum (DC and the 11 band-edge bins nulled), inverse-transformed,
// and extended with the field-specific cyclic repetition. The first and
// last sample are scaled by 0.5 for overlap-add continuity between
// adjacent symbols.
func TimeDomain(freq []complex128, field Field) ([]complex128, error) {
	if len(freq) != NumSubcarriers {
		return nil, fmt.Errorf("expected %d subcarriers, got %d: %w",
			NumSubcarriers, len(freq), ErrMalformedBitSequence)
	}

	// Spectrum layout: bin 0 is DC, bins 1-26 the positive frequencies
	// (input slots 26-51), bins 27-37 null, bins 38-63 the negative
	// frequencies (input slots 0-25).
	spectrum := make([]complex128, FFTSize)
	for i := 0; i < 26; i++ {
		spectrum[1+i] = freq[26+i]
		spectrum[38+i] = freq[i]
	}

	ft := fourier.NewCmplxFFT(FFTSize)
	symbol := ft.Sequence(nil, spectrum)
	for i := range symbol {
		symbol[i] /= complex(FFTSize, 0)
	}

	var ext []complex128
	switch field {
	case FieldSTF:
		// Two periods plus the first 33 samples, no leading guard.
		ext = make([]complex128, 0, TrainingLen)
		ext = append(ext, symbol...)
		ext = append(ext, symbol...)
		ext = append(ext, symbol[:33]...)
	case FieldLTF:
		// Double guard interval, two periods, one overlap sample.
		ext = make([]complex128, 0, TrainingLen)
		ext = append(ext, symbol[FFTSize-2*GuardLen:]...)
		ext = append(ext, symbol...)
		ext = append(ext, symbol...)
		ext = append(ext, symbol[0])
	case FieldSignal, FieldData:
		// Single guard interval, one period, one overlap sample.
		ext = make([]complex128, 0, SymbolLen)
		ext = append(ext, symbol[FFTSize-GuardLen:]...)
		ext = append(ext, symbol...)
		ext = append(ext, symbol[0])
	default:
		return nil, fmt.Errorf("unknown field type %d", field)
	}

	ext[0] *= 0.5
	ext[len(ext)-1] *= 0.5
	return ext, nil
}
