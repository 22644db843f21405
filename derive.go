package custody

import (
	"encoding/binary"

	"filippo.io/edwards25519"
	"github.com/iov-one/custody/errors"
)

// IsSignable returns true if given address is a valid ed25519 public key.
// A private key may exist for such an address and therefore it must never
// be used as an address that only the program controls.
func IsSignable(a Address) bool {
	if len(a) != AddressLength {
		return false
	}
	_, err := new(edwards25519.Point).SetBytes(a)
	return err == nil
}

// BumpCondition returns the condition that is built from given keys and the
// derivation nonce. Each key is length prefixed so that no two different
// key lists can produce the same condition.
func BumpCondition(ext, typ string, bump uint8, keys ...[]byte) Condition {
	var data []byte
	var prefix [binary.MaxVarintLen64]byte
	for _, k := range keys {
		n := binary.PutUvarint(prefix[:], uint64(len(k)))
		data = append(data, prefix[:n]...)
		data = append(data, k...)
	}
	data = append(data, bump)
	return NewCondition(ext, typ, data)
}

// DeriveCondition finds the highest bump for which the condition built from
// given keys hashes into an address that no private key can control.
//
// The result is fully deterministic. ErrNoBump is returned if no nonce
// produces such an address, which callers must treat as fatal.
func DeriveCondition(ext, typ string, keys ...[]byte) (Condition, uint8, error) {
	for b := 255; b >= 0; b-- {
		bump := uint8(b)
		c := BumpCondition(ext, typ, bump, keys...)
		if !IsSignable(c.Address()) {
			return c, bump, nil
		}
	}
	return nil, 0, errors.Wrapf(errors.ErrNoBump, "%s/%s", ext, typ)
}

// DeriveAddress returns the address derived from given keys together with
// the bump used to produce it.
func DeriveAddress(ext, typ string, keys ...[]byte) (Address, uint8, error) {
	c, bump, err := DeriveCondition(ext, typ, keys...)
	if err != nil {
		return nil, 0, err
	}
	return c.Address(), bump, nil
}

// Derived returns true if this condition hashes into an address that is not
// controlled by any private key. Only such a condition can be presented as an
// authority.
func (c Condition) Derived() bool {
	return c.Validate() == nil && !IsSignable(c.Address())
}

// EncodeSequence returns the little endian representation of a number, the
// way numbers are used as derivation keys.
func EncodeSequence(n uint64) []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, n)
	return b
}
