package modem

import "errors"

// ErrMalformedBitSequence reports a bit or symbol sequence whose length
// is incompatible with the declared modulation parameters. It is an
// invariant violation: stages never truncate or pad silently.
var ErrMalformedBitSequence = errors.New("malformed bit sequence")
