package main

import (
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"

	"github.com/iov-one/custody"
	escrowd "github.com/iov-one/custody/cmd/escrowd/app"
	"github.com/iov-one/custody/crypto"
	"github.com/iov-one/custody/errors"
)

const (
	flagKey   = "key"
	flagChain = "chain"
	flagSeq   = "seq"
)

// txCmd builds a transaction from a JSON encoded message, signs it and
// prints it hex encoded, ready to be broadcast.
//
//	tx -key <file> -chain <id> -seq <n> <message path> <message json>
func txCmd(args []string) error {
	var (
		keyPath, chainID string
		seq              int64
	)
	txFlags := flag.NewFlagSet("tx", flag.ContinueOnError)
	txFlags.StringVar(&keyPath, flagKey, "", "file with the signing key, no signature if empty")
	txFlags.StringVar(&chainID, flagChain, "", "chain the transaction is signed for")
	txFlags.Int64Var(&seq, flagSeq, 0, "sequence of the signer")
	if err := txFlags.Parse(args); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	if txFlags.NArg() != 2 {
		return errors.Wrap(errors.ErrInput, "usage: tx [flags] <message path> <message json>")
	}

	raw, err := buildTx(keyPath, chainID, seq, txFlags.Arg(0), txFlags.Arg(1))
	if err != nil {
		return err
	}
	fmt.Println(hex.EncodeToString(raw))
	return nil
}

func buildTx(keyPath, chainID string, seq int64, path, msgJSON string) ([]byte, error) {
	msg, err := escrowd.NewMsg(path)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(msgJSON), msg); err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "message: %s", err)
	}
	if err := msg.Validate(); err != nil {
		return nil, errors.Wrap(err, "message")
	}

	var tx *escrowd.Tx
	if keyPath == "" {
		if tx, err = escrowd.NewTx(msg); err != nil {
			return nil, err
		}
	} else {
		key, err := readKey(keyPath)
		if err != nil {
			return nil, err
		}
		tx, err = escrowd.SignTx(msg, chainID, []crypto.Signer{key}, []int64{seq})
		if err != nil {
			return nil, err
		}
	}
	return custody.Marshal(tx)
}
