package escrow

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

const (
	ext           = "escrow"
	recordType    = "record"
	vaultType     = "vault"
	authorityType = "auth"
)

// derivation holds all derived conditions of a single escrow together
// with the bumps that produced them.
type derivation struct {
	authority     custody.Condition
	authorityBump uint8
	record        custody.Condition
	recordBump    uint8
	vault         custody.Condition
	vaultBump     uint8
}

func derive(maker custody.Address, seed uint64) (*derivation, error) {
	var (
		d   derivation
		err error
	)
	d.authority, d.authorityBump, err = custody.DeriveCondition(ext, authorityType)
	if err != nil {
		return nil, errors.Wrap(errors.ErrHuman, err.Error())
	}
	d.record, d.recordBump, err = custody.DeriveCondition(ext, recordType, maker, custody.EncodeSequence(seed))
	if err != nil {
		return nil, errors.Wrap(errors.ErrHuman, err.Error())
	}
	d.vault, d.vaultBump, err = custody.DeriveCondition(ext, vaultType, d.record.Address())
	if err != nil {
		return nil, errors.Wrap(errors.ErrHuman, err.Error())
	}
	return &d, nil
}

// RecordAddress returns the address of the escrow that maker creates with
// given seed.
func RecordAddress(maker custody.Address, seed uint64) (custody.Address, error) {
	addr, _, err := custody.DeriveAddress(ext, recordType, maker, custody.EncodeSequence(seed))
	return addr, err
}

// VaultAddress returns the address of the token account holding the
// deposit of given escrow.
func VaultAddress(record custody.Address) (custody.Address, error) {
	addr, _, err := custody.DeriveAddress(ext, vaultType, record)
	return addr, err
}

// AuthorityAddress returns the address that owns all vaults.
func AuthorityAddress() (custody.Address, error) {
	addr, _, err := custody.DeriveAddress(ext, authorityType)
	return addr, err
}
