package phy

import (
	"fmt"
)

// Interleaver applies the two-stage per-symbol bit permutation for one
// N_CBPS/N_BPSC pair. The index tables are built once per rate and the
// mapping is verified to be a bijection at construction.
type Interleaver struct {
	ncbps   int
	forward []int // forward[k] = output position of input bit k
	inverse []int
}

// NewInterleaver builds the permutation tables for a coded-bits-per-
// symbol count and bits-per-subcarrier count.
func NewInterleaver(ncbps, nbpsc int) (*Interleaver, error) {
	if ncbps <= 0 || ncbps%16 != 0 {
		return nil, fmt.Errorf("N_CBPS %d not a multiple of 16: %w", ncbps, ErrMalformedBitSequence)
	}

	s := nbpsc / 2
	if s < 1 {
		s = 1
	}

	forward := make([]int, ncbps)
	inverse := make([]int, ncbps)
	seen := make([]bool, ncbps)
	for k := 0; k < ncbps; k++ {
		i := (ncbps/16)*(k%16) + k/16
		j := s*(i/s) + (i+ncbps-16*i/ncbps)%s
		if j < 0 || j >= ncbps || seen[j] {
			return nil, fmt.Errorf("interleaver mapping for N_CBPS=%d N_BPSC=%d is not a permutation", ncbps, nbpsc)
		}
		seen[j] = true
		forward[k] = j
		inverse[j] = k
	}

	return &Interleaver{ncbps: ncbps, forward: forward, inverse: inverse}, nil
}

// BlockSize returns the interleaver's N_CBPS.
func (il *Interleaver) BlockSize() int {
	return il.ncbps
}

// Interleave permutes one OFDM symbol's worth of coded bits.
func (il *Interleaver) Interleave(bitSeq []byte) ([]byte, error) {
	if len(bitSeq) != il.ncbps {
		return nil, fmt.Errorf("block of %d bits, want %d: %w", len(bitSeq), il.ncbps, ErrMalformedBitSequence)
	}
	out := make([]byte, il.ncbps)
	for k, j := range il.forward {
		out[j] = bitSeq[k]
	}
	return out, nil
}

// Deinterleave applies the inverse permutation.
func (il *Interleaver) Deinterleave(bitSeq []byte) ([]byte, error) {
	if len(bitSeq) != il.ncbps {
		return nil, fmt.Errorf("block of %d bits, want %d: %w", len(bitSeq), il.ncbps, ErrMalformedBitSequence)
	}
	out := make([]byte, il.ncbps)
	for j, k := range il.inverse {
		out[k] = bitSeq[j]
	}
	return out, nil
}
