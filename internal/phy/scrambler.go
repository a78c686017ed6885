package phy

// Frame-synchronous scrambler: a 7-bit LFSR with polynomial x^7 + x^4
// + 1. For any non-zero seed the output is the period-127 m-sequence
// starting at the seed's state.

// LFSR generates n pseudo-random bits from the 7-bit seed. Register bit
// i is initialized from (seed >> i) & 1; each step emits the feedback
// bit (bit 6 XOR bit 3) and shifts it in at the front.
func LFSR(n int, seed byte) []byte {
	var reg [7]byte
	for i := range reg {
		reg[i] = (seed >> uint(i)) & 1
	}

	out := make([]byte, n)
	for i := range out {
		fb := reg[6] ^ reg[3]
		out[i] = fb
		copy(reg[1:], reg[:6])
		reg[0] = fb
	}
	return out
}

// Scramble XORs bits with the LFSR stream for the given seed. Applying
// it twice with the same seed recovers the input.
func Scramble(bitSeq []byte, seed byte) []byte {
	stream := LFSR(len(bitSeq), seed)
	out := make([]byte, len(bitSeq))
	for i := range bitSeq {
		out[i] = (bitSeq[i] ^ stream[i]) & 1
	}
	return out
}

// pilotPolarity returns the first n entries of the pilot polarity
// sequence: the all-ones-seeded LFSR stream mapped 0 -> +1, 1 -> -1.
// Index 0 applies to the SIGNAL symbol, subsequent indices to DATA
// symbols in order.
func pilotPolarity(n int) []float64 {
	stream := LFSR(n, 0x7F)
	out := make([]float64, n)
	for i, b := range stream {
		if b == 0 {
			out[i] = 1
		} else {
			out[i] = -1
		}
	}
	return out
}
