package escrow

import "github.com/iov-one/custody/errors"

// Escrow errors take the 1200 range.
var (
	ErrUnauthorizedMaker = errors.Register(1201, "signer is not the escrow maker")
	ErrMaxExpiryExceeded = errors.Register(1202, "expiration too far in the future")
	ErrEscrowExpired     = errors.Register(1203, "escrow expired")
	ErrTermsMismatch     = errors.Register(1204, "terms mismatch")
)
