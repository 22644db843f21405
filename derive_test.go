package custody_test

import (
	"crypto/rand"
	"testing"

	"github.com/iov-one/custody"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/ed25519"
)

func TestPublicKeysAreSignable(t *testing.T) {
	for i := 0; i < 20; i++ {
		pub, _, err := ed25519.GenerateKey(rand.Reader)
		require.NoError(t, err)
		assert.True(t, custody.IsSignable(custody.Address(pub)))
	}
	assert.False(t, custody.IsSignable(custody.Address{1, 2, 3}))
}

func TestDeriveAddress(t *testing.T) {
	maker := make([]byte, 32)
	maker[0] = 7

	addr, bump, err := custody.DeriveAddress("escrow", "record", maker, custody.EncodeSequence(1))
	require.NoError(t, err)
	assert.Len(t, addr, custody.AddressLength)
	assert.False(t, custody.IsSignable(addr))

	// Derivation is a pure function of its inputs.
	again, againBump, err := custody.DeriveAddress("escrow", "record", maker, custody.EncodeSequence(1))
	require.NoError(t, err)
	assert.Equal(t, addr, again)
	assert.Equal(t, bump, againBump)

	// Stored bump rebuilds the very same condition.
	cond := custody.BumpCondition("escrow", "record", bump, maker, custody.EncodeSequence(1))
	assert.Equal(t, addr, cond.Address())
	assert.True(t, cond.Derived())

	other, _, err := custody.DeriveAddress("escrow", "record", maker, custody.EncodeSequence(2))
	require.NoError(t, err)
	assert.NotEqual(t, addr, other)

	namespaced, _, err := custody.DeriveAddress("escrow", "vault", maker, custody.EncodeSequence(1))
	require.NoError(t, err)
	assert.NotEqual(t, addr, namespaced)
}

func TestDeriveKeysAreNotAmbiguous(t *testing.T) {
	a := custody.BumpCondition("escrow", "record", 255, []byte("ab"), []byte("c"))
	b := custody.BumpCondition("escrow", "record", 255, []byte("a"), []byte("bc"))
	assert.NotEqual(t, a, b)
}

func TestDeriveHighestBump(t *testing.T) {
	// Every bump above the returned one must produce a signable address.
	key := []byte("some key")
	_, bump, err := custody.DeriveAddress("test", "bump", key)
	require.NoError(t, err)
	for b := 255; b > int(bump); b-- {
		c := custody.BumpCondition("test", "bump", uint8(b), key)
		assert.True(t, custody.IsSignable(c.Address()))
	}
}
