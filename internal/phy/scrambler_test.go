package phy

import (
	"testing"
)

// The published 127-bit sequence produced by the scrambler LFSR when
// seeded with all ones.
const allOnesSequence = "0000111011110010110010010000001000100110001011101011011000001100" +
	"110101001110011110110100001010101111101001010001101110001111111"

func sequenceBits(s string) []byte {
	out := make([]byte, len(s))
	for i := range s {
		out[i] = s[i] - '0'
	}
	return out
}

func TestLFSR_AllOnesReferenceSequence(t *testing.T) {
	want := sequenceBits(allOnesSequence)
	if len(want) != 127 {
		t.Fatalf("reference sequence is %d bits, want 127", len(want))
	}

	got := LFSR(127, 0x7F)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("bit %d: got %d, want %d", i, got[i], want[i])
		}
	}
}

func TestLFSR_Period127(t *testing.T) {
	for _, seed := range []byte{1, 2, 37, 93, 0x7F} {
		out := LFSR(254, seed)
		for i := 0; i < 127; i++ {
			if out[i] != out[i+127] {
				t.Fatalf("seed %d: sequence not periodic with period 127 at bit %d", seed, i)
			}
		}
	}
}

// Every non-zero seed walks the same period-127 m-sequence, so its
// output must be a rotation of the all-ones reference.
func TestLFSR_SeedIsRotation(t *testing.T) {
	ref := sequenceBits(allOnesSequence)

	for _, seed := range []byte{1, 93, 0x2A} {
		got := LFSR(127, seed)
		found := false
		for shift := 0; shift < 127 && !found; shift++ {
			match := true
			for i := 0; i < 127; i++ {
				if got[i] != ref[(i+shift)%127] {
					match = false
					break
				}
			}
			found = match
		}
		if !found {
			t.Errorf("seed %d: output is not a rotation of the m-sequence", seed)
		}
	}
}

func TestScramble_SelfInverse(t *testing.T) {
	in := make([]byte, 523)
	for i := range in {
		in[i] = byte((i * 31 / 7) % 2)
	}

	for _, seed := range []byte{1, 93, 0x7F} {
		once := Scramble(in, seed)
		twice := Scramble(once, seed)
		for i := range in {
			if twice[i] != in[i] {
				t.Fatalf("seed %d: bit %d not recovered", seed, i)
			}
		}
	}
}

func TestScramble_ZeroPayloadIsLFSRStream(t *testing.T) {
	// Scrambling an all-zero payload exposes the raw LFSR stream.
	zeros := make([]byte, 127)
	got := Scramble(zeros, 93)
	want := LFSR(127, 93)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("bit %d: got %d, want %d", i, got[i], want[i])
		}
	}
}

func TestPilotPolarity_ReferencePrefix(t *testing.T) {
	// First entries of the polarity sequence (all-ones seed, 0 -> +1).
	want := []float64{1, 1, 1, 1, -1, -1, -1, 1, -1, -1, -1, -1, 1, 1, -1, 1}
	got := pilotPolarity(len(want))
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("polarity %d: got %v, want %v", i, got[i], want[i])
		}
	}
}
