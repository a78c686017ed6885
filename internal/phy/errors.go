package phy

import (
	"errors"

	"github.com/jeongseonghan/ofdm-phy/internal/modem"
)

var (
	// ErrUnsupportedRate reports a rate identifier with no RateTable
	// entry. There is no fallback substitution.
	ErrUnsupportedRate = errors.New("unsupported rate")

	// ErrInvalidLength reports a frame length outside the 12-bit
	// SIGNAL-field range 1..4095.
	ErrInvalidLength = errors.New("invalid frame length")

	// ErrMalformedBitSequence mirrors the modem sentinel so callers can
	// match either package's stage errors with a single errors.Is.
	ErrMalformedBitSequence = modem.ErrMalformedBitSequence
)
