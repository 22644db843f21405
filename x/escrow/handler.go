package escrow

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/gconf"
	"github.com/iov-one/custody/orm"
	"github.com/iov-one/custody/x"
)

const (
	makeCost   int64 = 300
	updateCost int64 = 50
	refundCost int64 = 100
	takeCost   int64 = 200
)

// RegisterQuery will register the escrow bucket as "/escrows".
func RegisterQuery(qr custody.QueryRouter) {
	NewBucket().Register("escrows", qr)
}

// RegisterRoutes registers handlers for all escrow messages.
func RegisterRoutes(r custody.Registry, auth x.Authenticator, ledger Ledger) {
	// Derived authorities never sign, the handlers attach them to the
	// context themselves.
	auth = x.ChainAuth(auth, x.DerivedAuth{})
	bucket := NewBucket()
	r.Handle(&MakeMsg{}, MakeHandler{auth: auth, bucket: bucket, ledger: ledger})
	r.Handle(&UpdateMsg{}, UpdateHandler{auth: auth, bucket: bucket})
	r.Handle(&RefundMsg{}, RefundHandler{auth: auth, bucket: bucket, ledger: ledger})
	r.Handle(&TakeMsg{}, TakeHandler{auth: auth, bucket: bucket, ledger: ledger})
	r.Handle(&UpdateConfigurationMsg{}, gconf.NewUpdateConfigurationHandler(pkg, &Configuration{}, auth))
}

// MakeHandler opens new offers.
type MakeHandler struct {
	auth   x.Authenticator
	bucket orm.ModelBucket
	ledger Ledger
}

var _ custody.Handler = MakeHandler{}

func (h MakeHandler) Check(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &custody.CheckResult{GasAllocated: makeCost}, nil
}

// Deliver creates the record and the vault, stores the terms and locks the
// deposit. Any failure leaves no trace once the surrounding savepoint is
// discarded.
func (h MakeHandler) Deliver(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	d, err := derive(msg.Maker, msg.Seed)
	if err != nil {
		return nil, err
	}
	record, vault, authority := d.record.Address(), d.vault.Address(), d.authority.Address()

	// The new accounts authorize their own creation. The authority is not
	// presented, so the deposit can only come from an account the signers
	// control.
	openCtx := x.WithDerived(x.WithDerived(ctx, d.record), d.vault)
	if err := h.ledger.CreateAccount(openCtx, db, h.auth, record, authority, msg.Maker, "", RecordSize); err != nil {
		return nil, errors.Wrap(err, "record")
	}
	if err := h.ledger.CreateAccount(openCtx, db, h.auth, vault, authority, msg.Maker, msg.MakerAsset, 0); err != nil {
		return nil, errors.Wrap(err, "vault")
	}

	escrow := Escrow{
		Seed:          msg.Seed,
		Maker:         msg.Maker,
		MakerAsset:    msg.MakerAsset,
		TakerAsset:    msg.TakerAsset,
		DepositAmount: msg.DepositAmount,
		ReceiveAmount: msg.ReceiveAmount,
		Expiry:        msg.Expiry,
		AuthorityBump: uint32(d.authorityBump),
		RecordBump:    uint32(d.recordBump),
		VaultBump:     uint32(d.vaultBump),
	}
	if err := h.bucket.Put(db, record, &escrow); err != nil {
		return nil, errors.Wrap(err, "cannot store escrow")
	}

	if err := h.ledger.Transfer(ctx, db, h.auth, msg.Source, vault, msg.MakerAsset, msg.DepositAmount); err != nil {
		return nil, errors.Wrap(err, "deposit")
	}

	custody.GetLogger(ctx).Info("escrow made",
		"escrow", record,
		"maker", msg.Maker,
		"deposit", msg.DepositAmount,
		"asset", msg.MakerAsset)
	return &custody.DeliverResult{Data: record}, nil
}

func (h MakeHandler) validate(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*MakeMsg, error) {
	var msg MakeMsg
	if err := custody.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := x.RequireSigner(ctx, h.auth, msg.Maker, "maker"); err != nil {
		return nil, err
	}
	if err := validateExpiry(ctx, db, msg.Expiry); err != nil {
		return nil, err
	}
	return &msg, nil
}

// UpdateHandler changes the terms of an open offer.
type UpdateHandler struct {
	auth   x.Authenticator
	bucket orm.ModelBucket
}

var _ custody.Handler = UpdateHandler{}

func (h UpdateHandler) Check(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &custody.CheckResult{GasAllocated: updateCost}, nil
}

// Deliver rewrites the requested asset, amount and expiry. An expired offer
// can be updated, which makes it available again.
func (h UpdateHandler) Deliver(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.DeliverResult, error) {
	msg, escrow, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	escrow.TakerAsset = msg.TakerAsset
	escrow.ReceiveAmount = msg.ReceiveAmount
	escrow.Expiry = msg.Expiry
	if err := h.bucket.Put(db, msg.Escrow, escrow); err != nil {
		return nil, errors.Wrap(err, "cannot store escrow")
	}

	custody.GetLogger(ctx).Info("escrow updated",
		"escrow", msg.Escrow,
		"receive", msg.ReceiveAmount,
		"asset", msg.TakerAsset,
		"expiry", int64(msg.Expiry))
	return &custody.DeliverResult{}, nil
}

func (h UpdateHandler) validate(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*UpdateMsg, *Escrow, error) {
	var msg UpdateMsg
	if err := custody.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	escrow, err := loadEscrow(h.bucket, db, msg.Escrow)
	if err != nil {
		return nil, nil, err
	}
	if !h.auth.HasAddress(ctx, escrow.Maker) {
		return nil, nil, errors.Wrap(ErrUnauthorizedMaker, "update")
	}
	if err := validateExpiry(ctx, db, msg.Expiry); err != nil {
		return nil, nil, err
	}
	return &msg, escrow, nil
}

// RefundHandler cancels an offer and returns the deposit to the maker.
type RefundHandler struct {
	auth   x.Authenticator
	bucket orm.ModelBucket
	ledger Ledger
}

var _ custody.Handler = RefundHandler{}

func (h RefundHandler) Check(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &custody.CheckResult{GasAllocated: refundCost}, nil
}

// Deliver empties the vault into the destination and closes the escrow.
// Refund is allowed regardless of the expiry.
func (h RefundHandler) Deliver(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.DeliverResult, error) {
	msg, escrow, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	ctx = x.WithDerived(ctx, escrow.Authority())

	vault := escrow.Vault().Address()
	acc, err := h.ledger.Account(db, vault)
	if err != nil {
		return nil, errors.Wrap(err, "vault")
	}
	if acc.Amount > 0 {
		if err := h.ledger.Transfer(ctx, db, h.auth, vault, msg.Destination, escrow.MakerAsset, acc.Amount); err != nil {
			return nil, errors.Wrap(err, "refund")
		}
	}
	if err := closeEscrow(ctx, db, h.auth, h.ledger, h.bucket, msg.Escrow, escrow); err != nil {
		return nil, err
	}

	custody.GetLogger(ctx).Info("escrow refunded",
		"escrow", msg.Escrow,
		"amount", acc.Amount,
		"asset", escrow.MakerAsset)
	return &custody.DeliverResult{}, nil
}

func (h RefundHandler) validate(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*RefundMsg, *Escrow, error) {
	var msg RefundMsg
	if err := custody.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	escrow, err := loadEscrow(h.bucket, db, msg.Escrow)
	if err != nil {
		return nil, nil, err
	}
	if !h.auth.HasAddress(ctx, escrow.Maker) {
		return nil, nil, errors.Wrap(ErrUnauthorizedMaker, "refund")
	}
	dest, err := h.ledger.Account(db, msg.Destination)
	if err != nil {
		return nil, nil, errors.Wrap(err, "destination")
	}
	if !dest.Owner.Equals(escrow.Maker) {
		return nil, nil, errors.Wrap(ErrUnauthorizedMaker, "destination not owned by the maker")
	}
	return &msg, escrow, nil
}

// TakeHandler settles an offer.
type TakeHandler struct {
	auth   x.Authenticator
	bucket orm.ModelBucket
	ledger Ledger
}

var _ custody.Handler = TakeHandler{}

func (h TakeHandler) Check(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &custody.CheckResult{GasAllocated: takeCost}, nil
}

// Deliver pays the maker, releases the deposit to the taker and closes the
// escrow. Storage deposits go back to the maker who paid them.
func (h TakeHandler) Deliver(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.DeliverResult, error) {
	msg, escrow, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	if err := h.ledger.Transfer(ctx, db, h.auth, msg.Source, msg.MakerDestination, escrow.TakerAsset, escrow.ReceiveAmount); err != nil {
		return nil, errors.Wrap(err, "payment")
	}

	ctx = x.WithDerived(ctx, escrow.Authority())
	vault := escrow.Vault().Address()
	acc, err := h.ledger.Account(db, vault)
	if err != nil {
		return nil, errors.Wrap(err, "vault")
	}
	if err := h.ledger.Transfer(ctx, db, h.auth, vault, msg.Destination, escrow.MakerAsset, acc.Amount); err != nil {
		return nil, errors.Wrap(err, "release")
	}
	if err := closeEscrow(ctx, db, h.auth, h.ledger, h.bucket, msg.Escrow, escrow); err != nil {
		return nil, err
	}

	custody.GetLogger(ctx).Info("escrow taken",
		"escrow", msg.Escrow,
		"taker", msg.Taker,
		"paid", escrow.ReceiveAmount,
		"received", acc.Amount)
	return &custody.DeliverResult{}, nil
}

func (h TakeHandler) validate(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*TakeMsg, *Escrow, error) {
	var msg TakeMsg
	if err := custody.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	if err := x.RequireSigner(ctx, h.auth, msg.Taker, "taker"); err != nil {
		return nil, nil, err
	}
	escrow, err := loadEscrow(h.bucket, db, msg.Escrow)
	if err != nil {
		return nil, nil, err
	}
	now, err := custody.BlockTime(ctx)
	if err != nil {
		return nil, nil, errors.Wrap(err, "block time")
	}
	if escrow.IsExpired(custody.AsUnixTime(now)) {
		return nil, nil, errors.Wrapf(ErrEscrowExpired, "expired at %s", escrow.Expiry)
	}
	if msg.Asset != escrow.TakerAsset || msg.Amount != escrow.ReceiveAmount {
		return nil, nil, errors.Wrapf(ErrTermsMismatch, "escrow asks for %d %s", escrow.ReceiveAmount, escrow.TakerAsset)
	}
	makerDest, err := h.ledger.Account(db, msg.MakerDestination)
	if err != nil {
		return nil, nil, errors.Wrap(err, "maker destination")
	}
	if !makerDest.Owner.Equals(escrow.Maker) {
		return nil, nil, errors.Wrap(errors.ErrInput, "maker destination not owned by the maker")
	}
	return &msg, escrow, nil
}

func loadEscrow(bucket orm.ModelBucket, db custody.ReadOnlyKVStore, addr custody.Address) (*Escrow, error) {
	var e Escrow
	if err := bucket.One(db, addr, &e); err != nil {
		return nil, errors.Wrap(err, "cannot load escrow")
	}
	return &e, nil
}

// closeEscrow removes the vault and the record. Both deposits are released
// to the maker. The context must hold the escrow authority.
func closeEscrow(
	ctx custody.Context,
	db custody.KVStore,
	auth x.Authenticator,
	ledger Ledger,
	bucket orm.ModelBucket,
	record custody.Address,
	escrow *Escrow,
) error {
	if err := ledger.CloseAccount(ctx, db, auth, escrow.Vault().Address(), escrow.Maker); err != nil {
		return errors.Wrap(err, "close vault")
	}
	if err := ledger.CloseAccount(ctx, db, auth, record, escrow.Maker); err != nil {
		return errors.Wrap(err, "close record")
	}
	if err := bucket.Delete(db, record); err != nil {
		return errors.Wrap(err, "cannot delete escrow")
	}
	return nil
}

// validateExpiry ensures that a non zero expiry is in the future, but not
// further than the configured horizon.
func validateExpiry(ctx custody.Context, db custody.ReadOnlyKVStore, expiry custody.UnixTime) error {
	if expiry == 0 {
		return nil
	}
	now, err := custody.BlockTime(ctx)
	if err != nil {
		return errors.Wrap(err, "block time")
	}
	conf, err := loadConf(db)
	if err != nil {
		return err
	}
	current := custody.AsUnixTime(now)
	if expiry <= current {
		return errors.Wrap(errors.ErrInput, "expiry in the past")
	}
	// expiry > current, so the difference cannot overflow.
	if expiry-current > custody.UnixTime(conf.MaxExpiryHorizon) {
		return errors.Wrapf(ErrMaxExpiryExceeded, "expiry must be within %d seconds", conf.MaxExpiryHorizon)
	}
	return nil
}
