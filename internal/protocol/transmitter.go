package protocol

import (
	"fmt"
	"log"
	"sync"

	"github.com/jeongseonghan/ofdm-phy/internal/phy"
)

// TxStats counts the work a Transmitter has done.
type TxStats struct {
	FramesEncoded  int
	SamplesEmitted int
	EncodeErrors   int
}

// Transmitter runs the encoder side of the air interface: frames go in
// on a channel, baseband waveforms come out on another. One goroutine
// owns the PHY encoder; callers feed it from as many goroutines as they
// like.
type Transmitter struct {
	rateMbps int
	seed     byte

	frames    chan *Frame
	waveforms chan *phy.Waveform

	mu     sync.Mutex
	stats  TxStats
	closed bool
}

// NewTransmitter starts a transmitter encoding at the given rate with
// the given scrambler seed (0 selects the default). queueDepth sizes
// both the inbound frame queue and the outbound waveform queue.
func NewTransmitter(rateMbps int, seed byte, queueDepth int) (*Transmitter, error) {
	if _, err := phy.LookupRate(rateMbps); err != nil {
		return nil, err
	}
	if queueDepth <= 0 {
		queueDepth = 16
	}

	t := &Transmitter{
		rateMbps:  rateMbps,
		seed:      seed,
		frames:    make(chan *Frame, queueDepth),
		waveforms: make(chan *phy.Waveform, queueDepth),
	}
	go t.run()
	return t, nil
}

func (t *Transmitter) run() {
	defer close(t.waveforms)

	for f := range t.frames {
		w, err := t.encode(f)
		if err != nil {
			log.Printf("transmitter: drop %s frame seq=%d: %v", f.TypeName(), f.SeqNum, err)
			t.mu.Lock()
			t.stats.EncodeErrors++
			t.mu.Unlock()
			continue
		}

		t.mu.Lock()
		t.stats.FramesEncoded++
		t.stats.SamplesEmitted += w.NumSamples()
		t.mu.Unlock()

		t.waveforms <- w
	}
}

func (t *Transmitter) encode(f *Frame) (*phy.Waveform, error) {
	mpdu, err := f.Encode()
	if err != nil {
		return nil, fmt.Errorf("serialize frame: %w", err)
	}
	tv, err := phy.NewTxVector(t.rateMbps, len(mpdu))
	if err != nil {
		return nil, err
	}
	tv.ScramblerSeed = t.seed
	return phy.Encode(tv, mpdu)
}

// Send queues a frame for encoding. It fails when the transmitter is
// closed or the queue is full.
func (t *Transmitter) Send(f *Frame) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return fmt.Errorf("transmitter closed")
	}
	select {
	case t.frames <- f:
		return nil
	default:
		return fmt.Errorf("transmit queue full")
	}
}

// Waveforms returns the outbound waveform channel. It is closed after
// Close once all queued frames have been encoded.
func (t *Transmitter) Waveforms() <-chan *phy.Waveform {
	return t.waveforms
}

// Stats returns a snapshot of the transmitter counters.
func (t *Transmitter) Stats() TxStats {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stats
}

// Close stops accepting frames. Queued frames are still encoded and
// delivered before the waveform channel closes.
func (t *Transmitter) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return
	}
	t.closed = true
	close(t.frames)
}
