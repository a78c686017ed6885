package modem

import (
	"errors"
	"testing"
)

func TestInsertPilots_Placement(t *testing.T) {
	data := make([]complex128, NumDataSubcarriers)
	for i := range data {
		data[i] = complex(float64(i+1), 0)
	}

	symbol, err := InsertPilots(data, 1)
	if err != nil {
		t.Fatalf("InsertPilots error: %v", err)
	}
	if len(symbol) != NumSubcarriers {
		t.Fatalf("expected %d subcarriers, got %d", NumSubcarriers, len(symbol))
	}

	wantPilots := map[int]complex128{
		5:  complex(1, 0),
		19: complex(1, 0),
		32: complex(1, 0),
		46: complex(-1, 0),
	}
	for idx, want := range wantPilots {
		if symbol[idx] != want {
			t.Errorf("pilot at %d: got %v, want %v", idx, symbol[idx], want)
		}
	}

	// Data symbols fill the remaining slots in order.
	dataIdx := 0
	for i := 0; i < NumSubcarriers; i++ {
		if IsPilot(i) {
			continue
		}
		if symbol[i] != data[dataIdx] {
			t.Errorf("slot %d: got %v, want %v", i, symbol[i], data[dataIdx])
		}
		dataIdx++
	}
	if dataIdx != NumDataSubcarriers {
		t.Errorf("placed %d data symbols, want %d", dataIdx, NumDataSubcarriers)
	}
}

func TestInsertPilots_NegativePolarity(t *testing.T) {
	data := make([]complex128, NumDataSubcarriers)
	symbol, err := InsertPilots(data, -1)
	if err != nil {
		t.Fatalf("InsertPilots error: %v", err)
	}

	wantPilots := map[int]complex128{
		5:  complex(-1, 0),
		19: complex(-1, 0),
		32: complex(-1, 0),
		46: complex(1, 0),
	}
	for idx, want := range wantPilots {
		if symbol[idx] != want {
			t.Errorf("pilot at %d: got %v, want %v", idx, symbol[idx], want)
		}
	}
}

func TestInsertPilots_WrongCount(t *testing.T) {
	_, err := InsertPilots(make([]complex128, 47), 1)
	if !errors.Is(err, ErrMalformedBitSequence) {
		t.Errorf("expected ErrMalformedBitSequence, got %v", err)
	}
}
