package main

import (
	"fmt"
	"path/filepath"
	"testing"

	escrowd "github.com/iov-one/custody/cmd/escrowd/app"
	"github.com/iov-one/custody/crypto"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/x/escrow"
	"github.com/iov-one/custody/x/sigs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeysRoundTrip(t *testing.T) {
	home, cleanup := tempHome(t)
	defer cleanup()
	path := filepath.Join(home, "maker.key")

	require.NoError(t, keysCmd([]string{"new", path}))
	err := keysCmd([]string{"new", path})
	assert.True(t, errors.ErrDuplicate.Is(err), "got %+v", err)

	key, err := readKey(path)
	require.NoError(t, err)
	assert.NoError(t, key.PublicKey().Address().Validate())
	assert.NoError(t, keysCmd([]string{"show", path}))

	err = keysCmd([]string{"drop", path})
	assert.True(t, errors.ErrInput.Is(err), "got %+v", err)
}

func TestBuildTx(t *testing.T) {
	home, cleanup := tempHome(t)
	defer cleanup()
	path := filepath.Join(home, "maker.key")
	key := crypto.GenPrivKeyEd25519()
	require.NoError(t, writeKey(path, key))

	record := crypto.GenPrivKeyEd25519().PublicKey().Address()
	dest := key.PublicKey().Address()
	msgJSON := fmt.Sprintf(`{"Escrow": "%s", "Destination": "%s"}`, record, dest)

	raw, err := buildTx(path, "test-chain", 2, "escrow/refund", msgJSON)
	require.NoError(t, err)

	decoded, err := escrowd.TxDecoder(raw)
	require.NoError(t, err)
	tx := decoded.(*escrowd.Tx)
	msg, err := tx.GetMsg()
	require.NoError(t, err)
	assert.Equal(t, &escrow.RefundMsg{Escrow: record, Destination: dest}, msg)
	require.Len(t, tx.Signatures, 1)

	toSign, err := sigs.BuildSignBytesTx(tx, "test-chain", 2)
	require.NoError(t, err)
	assert.True(t, key.PublicKey().Verify(toSign, tx.Signatures[0].Signature))

	cases := map[string]struct {
		Path    string
		JSON    string
		Seq     int64
		WantErr *errors.Error
	}{
		"unknown path": {Path: "escrow/steal", JSON: `{}`, WantErr: errors.ErrNotFound},
		"broken json":  {Path: "escrow/refund", JSON: `{`, WantErr: errors.ErrInput},
		"invalid msg":  {Path: "escrow/refund", JSON: `{}`, WantErr: errors.ErrInput},
		"negative seq": {Path: "escrow/refund", JSON: msgJSON, Seq: -1, WantErr: sigs.ErrInvalidSequence},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			_, err := buildTx(path, "test-chain", tc.Seq, tc.Path, tc.JSON)
			assert.True(t, tc.WantErr.Is(err), "got %+v", err)
		})
	}
}
