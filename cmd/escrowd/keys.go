package main

import (
	"encoding/hex"
	"fmt"
	"io/ioutil"
	"os"
	"strings"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/crypto"
	"github.com/iov-one/custody/errors"
)

// keysCmd manages private keys stored hex encoded in a file.
//
//	keys new <file>   generate a key, refuses to overwrite
//	keys show <file>  print the address of a key
func keysCmd(args []string) error {
	if len(args) != 2 {
		return errors.Wrap(errors.ErrInput, "usage: keys (new|show) <file>")
	}
	switch cmd, path := args[0], args[1]; cmd {
	case "new":
		if _, err := os.Stat(path); err == nil {
			return errors.Wrapf(errors.ErrDuplicate, "%s already exists", path)
		}
		key := crypto.GenPrivKeyEd25519()
		if err := writeKey(path, key); err != nil {
			return err
		}
		fmt.Println(key.PublicKey().Address())
		return nil
	case "show":
		key, err := readKey(path)
		if err != nil {
			return err
		}
		fmt.Println(key.PublicKey().Address())
		return nil
	default:
		return errors.Wrapf(errors.ErrInput, "unknown keys command %q", cmd)
	}
}

func writeKey(path string, key *crypto.PrivateKey) error {
	raw, err := custody.Marshal(key)
	if err != nil {
		return err
	}
	if err := ioutil.WriteFile(path, []byte(hex.EncodeToString(raw)), 0600); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	return nil
}

func readKey(path string) (*crypto.PrivateKey, error) {
	enc, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	raw, err := hex.DecodeString(strings.TrimSpace(string(enc)))
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "key %s: %s", path, err)
	}
	var key crypto.PrivateKey
	if err := custody.Unmarshal(raw, &key); err != nil {
		return nil, errors.Wrapf(err, "key %s", path)
	}
	return &key, nil
}
