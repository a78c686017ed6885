package protocol

import (
	"testing"
	"time"

	"github.com/jeongseonghan/ofdm-phy/internal/modem"
)

func TestTransmitter_EncodesQueuedFrames(t *testing.T) {
	tx, err := NewTransmitter(12, 0, 8)
	if err != nil {
		t.Fatalf("NewTransmitter error: %v", err)
	}

	const n = 3
	for i := 0; i < n; i++ {
		if err := tx.Send(NewDataFrame(byte(i), []byte("frame payload"))); err != nil {
			t.Fatalf("Send %d error: %v", i, err)
		}
	}
	tx.Close()

	var got int
	for w := range tx.Waveforms() {
		got++
		if w.NumSamples() == 0 {
			t.Error("waveform has no samples")
		}
		if len(w.Signal) != modem.SymbolLen {
			t.Errorf("SIGNAL symbol has %d samples, want %d", len(w.Signal), modem.SymbolLen)
		}
	}
	if got != n {
		t.Errorf("received %d waveforms, want %d", got, n)
	}

	stats := tx.Stats()
	if stats.FramesEncoded != n {
		t.Errorf("FramesEncoded = %d, want %d", stats.FramesEncoded, n)
	}
	if stats.EncodeErrors != 0 {
		t.Errorf("EncodeErrors = %d, want 0", stats.EncodeErrors)
	}
	if stats.SamplesEmitted == 0 {
		t.Error("SamplesEmitted = 0")
	}
}

func TestTransmitter_CountsEncodeErrors(t *testing.T) {
	tx, err := NewTransmitter(6, 0, 4)
	if err != nil {
		t.Fatalf("NewTransmitter error: %v", err)
	}

	bad := &Frame{Type: TypeData, PayloadLen: 9, Payload: []byte{1}}
	if err := tx.Send(bad); err != nil {
		t.Fatalf("Send error: %v", err)
	}
	tx.Close()

	for range tx.Waveforms() {
		t.Error("unexpected waveform for malformed frame")
	}

	deadline := time.Now().Add(time.Second)
	for tx.Stats().EncodeErrors == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if got := tx.Stats().EncodeErrors; got != 1 {
		t.Errorf("EncodeErrors = %d, want 1", got)
	}
}

func TestTransmitter_SendAfterClose(t *testing.T) {
	tx, err := NewTransmitter(24, 0, 4)
	if err != nil {
		t.Fatalf("NewTransmitter error: %v", err)
	}
	tx.Close()
	tx.Close() // idempotent

	if err := tx.Send(NewDataFrame(0, []byte("late"))); err == nil {
		t.Error("expected error sending on closed transmitter")
	}
}

func TestNewTransmitter_RejectsUnknownRate(t *testing.T) {
	if _, err := NewTransmitter(11, 0, 4); err == nil {
		t.Error("expected error for unsupported rate")
	}
}
