package phy

import (
	"fmt"

	"github.com/jeongseonghan/ofdm-phy/internal/bits"
	"github.com/jeongseonghan/ofdm-phy/internal/modem"
)

// Waveform is one encoded frame as complex baseband samples at
// 20 Msample/s, segmented by field.
type Waveform struct {
	ShortTraining []complex128
	LongTraining  []complex128
	Signal        []complex128
	Data          [][]complex128
}

// NumDataSymbols returns the number of DATA OFDM symbols in the frame.
func (w *Waveform) NumDataSymbols() int {
	return len(w.Data)
}

// NumSamples returns the total sample count of the frame.
func (w *Waveform) NumSamples() int {
	n := len(w.ShortTraining) + len(w.LongTraining) + len(w.Signal)
	for _, d := range w.Data {
		n += len(d)
	}
	return n
}

// Samples concatenates all fields into the transmit-order sample
// sequence.
func (w *Waveform) Samples() []complex128 {
	out := make([]complex128, 0, w.NumSamples())
	out = append(out, w.ShortTraining...)
	out = append(out, w.LongTraining...)
	out = append(out, w.Signal...)
	for _, d := range w.Data {
		out = append(out, d...)
	}
	return out
}

// Encode runs the full transmit pipeline for one frame: training
// fields, SIGNAL symbol, then the scrambled, coded, interleaved and
// modulated DATA symbols. The payload length must match the TxVector.
func Encode(tv TxVector, payload []byte) (*Waveform, error) {
	params, err := tv.Params()
	if err != nil {
		return nil, err
	}
	if tv.Length <= 0 || tv.Length > MaxFrameLength {
		return nil, fmt.Errorf("length %d octets: %w", tv.Length, ErrInvalidLength)
	}
	if len(payload) != tv.Length {
		return nil, fmt.Errorf("payload is %d octets, TxVector declares %d: %w",
			len(payload), tv.Length, ErrInvalidLength)
	}
	seed := tv.ScramblerSeed
	if seed == 0 {
		seed = DefaultScramblerSeed
	}

	w := &Waveform{}
	if w.ShortTraining, err = ShortTrainingField(); err != nil {
		return nil, fmt.Errorf("short training field: %w", err)
	}
	if w.LongTraining, err = LongTrainingField(); err != nil {
		return nil, fmt.Errorf("long training field: %w", err)
	}

	nsym := NumSymbols(tv.Length, params.DataBitsPerSymbol)
	polarity := pilotPolarity(1 + nsym)

	if w.Signal, err = encodeSignalSymbol(tv, polarity[0]); err != nil {
		return nil, fmt.Errorf("signal field: %w", err)
	}

	dataBits, err := assembleDataBits(tv, payload, params, seed)
	if err != nil {
		return nil, err
	}

	coded, err := ConvolutionalEncode(dataBits, params.CodingRate)
	if err != nil {
		return nil, err
	}
	if len(coded) != nsym*params.CodedBitsPerSymbol {
		return nil, fmt.Errorf("coded stream is %d bits, want %d: %w",
			len(coded), nsym*params.CodedBitsPerSymbol, ErrMalformedBitSequence)
	}

	il, err := NewInterleaver(params.CodedBitsPerSymbol, params.BitsPerSubcarrier)
	if err != nil {
		return nil, err
	}
	cons, err := modem.NewConstellation(params.Modulation)
	if err != nil {
		return nil, err
	}

	w.Data = make([][]complex128, nsym)
	for s := 0; s < nsym; s++ {
		block := coded[s*params.CodedBitsPerSymbol : (s+1)*params.CodedBitsPerSymbol]
		symbol, err := encodeDataSymbol(block, il, cons, polarity[1+s])
		if err != nil {
			return nil, fmt.Errorf("data symbol %d: %w", s, err)
		}
		w.Data[s] = symbol
	}

	return w, nil
}

// encodeSignalSymbol builds the SIGNAL OFDM symbol: the 24-bit header
// coded at rate 1/2, interleaved and BPSK-modulated. The SIGNAL field
// is never scrambled.
func encodeSignalSymbol(tv TxVector, polarity float64) ([]complex128, error) {
	header, err := SignalField(tv)
	if err != nil {
		return nil, err
	}

	coded, err := ConvolutionalEncode(header, Rate1_2)
	if err != nil {
		return nil, err
	}

	il, err := NewInterleaver(48, 1)
	if err != nil {
		return nil, err
	}
	interleaved, err := il.Interleave(coded)
	if err != nil {
		return nil, err
	}

	cons, err := modem.NewConstellation(modem.ModBPSK)
	if err != nil {
		return nil, err
	}
	symbols, err := cons.Map(interleaved)
	if err != nil {
		return nil, err
	}

	freq, err := modem.InsertPilots(symbols, polarity)
	if err != nil {
		return nil, err
	}
	return modem.TimeDomain(freq, modem.FieldSignal)
}

// assembleDataBits concatenates service, payload, tail and pad bits,
// scrambles the whole stream and forces the tail bits back to zero so
// the convolutional encoder is flushed to the zero state.
func assembleDataBits(tv TxVector, payload []byte, params RateParams, seed byte) ([]byte, error) {
	npad := PadBits(tv.Length, params.DataBitsPerSymbol)
	total := ServiceBits + 8*tv.Length + TailBits + npad

	stream := make([]byte, 0, total)
	stream = append(stream, make([]byte, ServiceBits)...)
	stream = append(stream, bits.FromBytes(payload)...)
	stream = append(stream, make([]byte, TailBits+npad)...)

	scrambled := Scramble(stream, seed)

	tailStart := ServiceBits + 8*tv.Length
	for i := 0; i < TailBits; i++ {
		scrambled[tailStart+i] = 0
	}
	return scrambled, nil
}

// encodeDataSymbol carries one coded block through interleaving,
// modulation, pilot insertion and the inverse transform.
func encodeDataSymbol(block []byte, il *Interleaver, cons *modem.Constellation, polarity float64) ([]complex128, error) {
	interleaved, err := il.Interleave(block)
	if err != nil {
		return nil, err
	}
	symbols, err := cons.Map(interleaved)
	if err != nil {
		return nil, err
	}
	freq, err := modem.InsertPilots(symbols, polarity)
	if err != nil {
		return nil, err
	}
	return modem.TimeDomain(freq, modem.FieldData)
}
