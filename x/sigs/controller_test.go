package sigs

import (
	"testing"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/crypto"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSignBytes(t *testing.T) {
	cases := map[string]struct {
		ChainID string
		Seq     int64
		WantErr *errors.Error
	}{
		"valid":            {ChainID: "test-chain", Seq: 17},
		"negative seq":     {ChainID: "test-chain", Seq: -1, WantErr: ErrInvalidSequence},
		"invalid chain id": {ChainID: "x", Seq: 1, WantErr: errors.ErrInput},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			bz, err := BuildSignBytes([]byte("payload"), tc.ChainID, tc.Seq)
			if tc.WantErr != nil {
				assert.True(t, tc.WantErr.Is(err), "got %+v", err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, bz, 64)

			other, err := BuildSignBytes([]byte("payload"), tc.ChainID, tc.Seq+1)
			require.NoError(t, err)
			assert.NotEqual(t, bz, other)
		})
	}
}

func TestVerifySignature(t *testing.T) {
	kv := store.MemStore()
	priv := crypto.GenPrivKeyEd25519()
	pub := priv.PublicKey()
	chainID := "emo-music-2345"

	tx := NewStdTx([]byte("foobar"))
	sig0, err := SignTx(priv, tx, chainID, 0)
	require.NoError(t, err)
	sig1, err := SignTx(priv, tx, chainID, 1)
	require.NoError(t, err)
	sig2, err := SignTx(priv, tx, chainID, 2)
	require.NoError(t, err)
	// wrong chain
	wrong, err := SignTx(priv, tx, "other-chain", 1)
	require.NoError(t, err)

	bz, err := tx.GetSignBytes()
	require.NoError(t, err)

	// out of order is an error
	_, err = VerifySignature(kv, sig1, bz, chainID)
	assert.True(t, ErrInvalidSequence.Is(err))

	// sequence 0 works
	cond, err := VerifySignature(kv, sig0, bz, chainID)
	require.NoError(t, err)
	assert.Equal(t, pub.Condition(), cond)

	// replay fails
	_, err = VerifySignature(kv, sig0, bz, chainID)
	assert.Error(t, err)

	// signature for another chain is rejected
	_, err = VerifySignature(kv, wrong, bz, chainID)
	assert.True(t, errors.ErrUnauthorized.Is(err))

	// now the next one works
	_, err = VerifySignature(kv, sig1, bz, chainID)
	require.NoError(t, err)

	nonce, err := NextNonce(kv, pub.Address())
	require.NoError(t, err)
	assert.Equal(t, int64(2), nonce)

	// multiple signatures
	tx.Signatures = []*StdSignature{sig2}
	conds, err := VerifyTxSignatures(kv, tx, chainID)
	require.NoError(t, err)
	assert.Equal(t, []custody.Condition{pub.Condition()}, conds)

	// damaged signatures are rejected
	tx.Signatures = []*StdSignature{{Sequence: 3, Pubkey: pub}}
	_, err = VerifyTxSignatures(kv, tx, chainID)
	assert.True(t, errors.ErrUnauthorized.Is(err))
}

func TestNextNonceOfUnknownSigner(t *testing.T) {
	nonce, err := NextNonce(store.MemStore(), crypto.GenPrivKeyEd25519().PublicKey().Address())
	require.NoError(t, err)
	assert.Equal(t, int64(0), nonce)
}
