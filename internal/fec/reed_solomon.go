package fec

import (
	"fmt"

	"github.com/klauspost/reedsolomon"
)

// OuterCoder applies Reed-Solomon erasure coding across the fragments
// of a payload, so a burst loss of whole PHY frames remains
// recoverable. It is an outer code: the PHY's convolutional code is
// untouched.
type OuterCoder struct {
	enc          reedsolomon.Encoder
	dataShards   int
	parityShards int
}

// Default shard geometry: RS(255,223).
const (
	DefaultDataShards   = 223
	DefaultParityShards = 32
)

// NewOuterCoder creates an outer coder with the given shard counts.
func NewOuterCoder(dataShards, parityShards int) (*OuterCoder, error) {
	enc, err := reedsolomon.New(dataShards, parityShards)
	if err != nil {
		return nil, fmt.Errorf("create reed-solomon coder: %w", err)
	}
	return &OuterCoder{
		enc:          enc,
		dataShards:   dataShards,
		parityShards: parityShards,
	}, nil
}

// DataShards returns the number of data shards.
func (oc *OuterCoder) DataShards() int { return oc.dataShards }

// ParityShards returns the number of parity shards.
func (oc *OuterCoder) ParityShards() int { return oc.parityShards }

// Protect splits data into shards, appends parity and returns the
// concatenated shard stream. The data is zero-padded up to a whole
// shard multiple.
func (oc *OuterCoder) Protect(data []byte) ([]byte, error) {
	total := oc.dataShards + oc.parityShards
	shardSize := (len(data) + oc.dataShards - 1) / oc.dataShards
	if shardSize == 0 {
		shardSize = 1
	}

	shards := make([][]byte, total)
	for i := 0; i < total; i++ {
		shards[i] = make([]byte, shardSize)
		if i < oc.dataShards {
			start := i * shardSize
			if start < len(data) {
				end := start + shardSize
				if end > len(data) {
					end = len(data)
				}
				copy(shards[i], data[start:end])
			}
		}
	}

	if err := oc.enc.Encode(shards); err != nil {
		return nil, fmt.Errorf("outer encode: %w", err)
	}

	out := make([]byte, 0, total*shardSize)
	for _, s := range shards {
		out = append(out, s...)
	}
	return out, nil
}

// Recover reconstructs the original data stream from a protected shard
// stream, with lost shards passed by index.
func (oc *OuterCoder) Recover(protected []byte, lost []int) ([]byte, error) {
	total := oc.dataShards + oc.parityShards
	if len(protected)%total != 0 {
		return nil, fmt.Errorf("protected stream of %d bytes not divisible into %d shards", len(protected), total)
	}
	shardSize := len(protected) / total

	shards := make([][]byte, total)
	for i := 0; i < total; i++ {
		shards[i] = make([]byte, shardSize)
		copy(shards[i], protected[i*shardSize:(i+1)*shardSize])
	}
	for _, idx := range lost {
		if idx >= 0 && idx < total {
			shards[idx] = nil
		}
	}

	if err := oc.enc.Reconstruct(shards); err != nil {
		return nil, fmt.Errorf("outer reconstruct: %w", err)
	}
	ok, err := oc.enc.Verify(shards)
	if err != nil {
		return nil, fmt.Errorf("outer verify: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("outer verify failed: shards corrupted beyond repair")
	}

	out := make([]byte, 0, oc.dataShards*shardSize)
	for i := 0; i < oc.dataShards; i++ {
		out = append(out, shards[i]...)
	}
	return out, nil
}
