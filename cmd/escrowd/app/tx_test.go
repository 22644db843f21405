package app

import (
	"testing"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/crypto"
	"github.com/iov-one/custody/custodytest"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/x/escrow"
	"github.com/iov-one/custody/x/sigs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTxSerialization(t *testing.T) {
	key := crypto.GenPrivKeyEd25519()
	msg := &escrow.RefundMsg{
		Escrow:      crypto.GenPrivKeyEd25519().PublicKey().Address(),
		Destination: key.PublicKey().Address(),
	}
	tx, err := SignTx(msg, chainID, []crypto.Signer{key}, []int64{4})
	require.NoError(t, err)

	raw, err := custody.Marshal(tx)
	require.NoError(t, err)
	decoded, err := TxDecoder(raw)
	require.NoError(t, err)

	got, err := decoded.GetMsg()
	require.NoError(t, err)
	assert.Equal(t, msg, got)
	assert.Equal(t, "escrow/refund", custody.GetPath(decoded))

	stx := decoded.(*Tx)
	require.Len(t, stx.GetSignatures(), 1)
	assert.Equal(t, int64(4), stx.GetSignatures()[0].Sequence)

	// signatures are not part of the signed bytes
	a, err := tx.GetSignBytes()
	require.NoError(t, err)
	b, err := (&Tx{EscrowRefundMsg: msg}).GetSignBytes()
	require.NoError(t, err)
	assert.Equal(t, a, b)

	toSign, err := sigs.BuildSignBytesTx(stx, chainID, 4)
	require.NoError(t, err)
	assert.True(t, key.PublicKey().Verify(toSign, stx.GetSignatures()[0].Signature))
}

func TestTxDecoderErrors(t *testing.T) {
	addr := crypto.GenPrivKeyEd25519().PublicKey().Address()
	refund := &escrow.RefundMsg{Escrow: addr, Destination: addr}

	cases := map[string]struct {
		Raw     func() []byte
		WantErr *errors.Error
	}{
		"unknown message field": {
			Raw: func() []byte {
				// Field 99, length 3, "abc".
				return []byte{0x9a, 0x06, 0x03, 'a', 'b', 'c'}
			},
			WantErr: errors.ErrEmpty,
		},
		"two messages": {
			Raw: func() []byte {
				raw, err := custody.Marshal(&Tx{
					EscrowRefundMsg: refund,
					EscrowTakeMsg:   &escrow.TakeMsg{Escrow: addr},
				})
				require.NoError(t, err)
				return raw
			},
			WantErr: errors.ErrDuplicate,
		},
		"truncated": {
			Raw:     func() []byte { return []byte{0x0a, 0x05, 0x01} },
			WantErr: errors.ErrInput,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			tx, err := TxDecoder(tc.Raw())
			if err == nil {
				_, err = tx.GetMsg()
			}
			assert.True(t, tc.WantErr.Is(err), "got %+v", err)
		})
	}
}

func TestTxSetMsg(t *testing.T) {
	addr := crypto.GenPrivKeyEd25519().PublicKey().Address()
	tx, err := NewTx(&escrow.RefundMsg{Escrow: addr, Destination: addr})
	require.NoError(t, err)

	take := &escrow.TakeMsg{Escrow: addr, Amount: 3}
	require.NoError(t, tx.SetMsg(take))
	assert.Nil(t, tx.EscrowRefundMsg)
	got, err := tx.GetMsg()
	require.NoError(t, err)
	assert.Equal(t, take, got)

	err = tx.SetMsg(&custodytest.Msg{RoutePath: "alien/msg"})
	assert.True(t, errors.ErrType.Is(err), "got %+v", err)
	err = tx.SetMsg(nil)
	assert.True(t, errors.ErrEmpty.Is(err), "got %+v", err)
}

func TestNewMsg(t *testing.T) {
	msg, err := NewMsg("escrow/take")
	require.NoError(t, err)
	assert.IsType(t, &escrow.TakeMsg{}, msg)

	_, err = NewMsg("escrow/steal")
	assert.True(t, errors.ErrNotFound.Is(err), "got %+v", err)
}

func TestTxWithoutMessage(t *testing.T) {
	tx, err := TxDecoder(nil)
	require.NoError(t, err)
	_, err = tx.GetMsg()
	assert.True(t, errors.ErrEmpty.Is(err), "got %+v", err)
}

func TestExamples(t *testing.T) {
	for _, ex := range Examples() {
		raw, err := custody.Marshal(ex.Obj)
		require.NoError(t, err, ex.Filename)
		assert.NotEmpty(t, raw, ex.Filename)
	}
}
