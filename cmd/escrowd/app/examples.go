package app

import (
	"encoding/hex"
	"strings"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/commands"
	"github.com/iov-one/custody/crypto"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/x/escrow"
	"github.com/iov-one/custody/x/sigs"
	"github.com/iov-one/custody/x/token"
)

// SignTx wraps msg into a Tx signed by every signer. Sequences must be
// given in the same order as signers.
func SignTx(msg custody.Msg, chainID string, signers []crypto.Signer, seqs []int64) (*Tx, error) {
	if len(signers) != len(seqs) {
		return nil, errors.Wrap(errors.ErrInput, "each signer requires a sequence")
	}
	tx, err := NewTx(msg)
	if err != nil {
		return nil, err
	}
	for i, s := range signers {
		sig, err := sigs.SignTx(s, tx, chainID, seqs[i])
		if err != nil {
			return nil, errors.Wrapf(err, "signer %d", i)
		}
		tx.Signatures = append(tx.Signatures, sig)
	}
	return tx, nil
}

// we fix the private keys here for deterministic output with the same encoding
// these are not secure at all, but the only point is to check the format,
// which is easier when everything is reproducible.
var (
	exampleMaker = makePrivKey("1234567890")
	exampleTaker = makePrivKey("F00BA411")
)

// makePrivKey repeats the string as long as needed to get 64 digits, then
// parses it as hex. It uses this repeated string as a "random" seed
// for the private key.
func makePrivKey(seed string) *crypto.PrivateKey {
	rep := 64/len(seed) + 1
	in := strings.Repeat(seed, rep)[:64]
	bin, err := hex.DecodeString(in)
	if err != nil {
		panic(err)
	}
	return crypto.PrivKeyEd25519FromSeed(bin)
}

func mustAssociated(owner custody.Address, asset string) custody.Address {
	addr, err := token.AssociatedAddress(owner, asset)
	if err != nil {
		panic(err)
	}
	return addr
}

// Examples generates some example structs to dump out with testgen
func Examples() []commands.Example {
	maker := exampleMaker.PublicKey().Address()
	taker := exampleTaker.PublicKey().Address()
	record, err := escrow.RecordAddress(maker, 1)
	if err != nil {
		panic(err)
	}

	makeMsg := &escrow.MakeMsg{
		Seed:          1,
		Maker:         maker,
		Source:        mustAssociated(maker, "ETH"),
		MakerAsset:    "ETH",
		TakerAsset:    "BTC",
		DepositAmount: 100,
		ReceiveAmount: 40,
		Expiry:        1556712000,
	}
	updateMsg := &escrow.UpdateMsg{
		Escrow:        record,
		TakerAsset:    "BTC",
		ReceiveAmount: 45,
		Expiry:        1556715600,
	}
	refundMsg := &escrow.RefundMsg{
		Escrow:      record,
		Destination: mustAssociated(maker, "ETH"),
	}
	takeMsg := &escrow.TakeMsg{
		Escrow:           record,
		Taker:            taker,
		Source:           mustAssociated(taker, "BTC"),
		Destination:      mustAssociated(taker, "ETH"),
		MakerDestination: mustAssociated(maker, "BTC"),
		Asset:            "BTC",
		Amount:           45,
	}

	signed, err := SignTx(makeMsg, "test-chain", []crypto.Signer{exampleMaker}, []int64{0})
	if err != nil {
		panic(err)
	}

	return []commands.Example{
		{Filename: "priv_key", Obj: exampleMaker},
		{Filename: "pub_key", Obj: exampleMaker.PublicKey()},
		{Filename: "make_msg", Obj: makeMsg},
		{Filename: "update_msg", Obj: updateMsg},
		{Filename: "refund_msg", Obj: refundMsg},
		{Filename: "take_msg", Obj: takeMsg},
		{Filename: "unsigned_tx", Obj: &Tx{EscrowTakeMsg: takeMsg}},
		{Filename: "signed_tx", Obj: signed},
	}
}
