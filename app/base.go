package app

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	abci "github.com/tendermint/tendermint/abci/types"
)

// BaseApp runs transactions through the handler stack on top of the state
// and queries managed by StoreApp.
type BaseApp struct {
	*StoreApp
	decoder custody.TxDecoder
	handler custody.Handler
	debug   bool
}

var _ abci.Application = BaseApp{}

// NewBaseApp wires the decoder and the decorated router into an ABCI
// application. debug exposes internal error details in responses.
func NewBaseApp(store *StoreApp, decoder custody.TxDecoder, handler custody.Handler, debug bool) BaseApp {
	return BaseApp{
		StoreApp: store,
		decoder:  decoder,
		handler:  handler,
		debug:    debug,
	}
}

// DeliverTx applies a transaction to the deliver store.
func (b BaseApp) DeliverTx(raw []byte) abci.ResponseDeliverTx {
	b.mu.Lock()
	defer b.mu.Unlock()

	ctx, tx, err := b.prepare("deliver_tx", raw)
	if err != nil {
		return custody.DeliverTxError(err, b.debug)
	}
	res, err := b.handler.Deliver(ctx, b.DeliverStore(), tx)
	return custody.DeliverOrError(res, err, b.debug)
}

// CheckTx validates a transaction for the mempool against the check store.
func (b BaseApp) CheckTx(raw []byte) abci.ResponseCheckTx {
	b.mu.Lock()
	defer b.mu.Unlock()

	ctx, tx, err := b.prepare("check_tx", raw)
	if err != nil {
		return custody.CheckTxError(err, b.debug)
	}
	res, err := b.handler.Check(ctx, b.CheckStore(), tx)
	return custody.CheckOrError(res, err, b.debug)
}

// prepare decodes raw and returns the block context annotated for logging.
// A panicking decoder is reported as ErrPanic.
func (b BaseApp) prepare(call string, raw []byte) (ctx custody.Context, tx custody.Tx, err error) {
	ctx = custody.WithLogInfo(b.BlockContext(), "call", call)
	defer errors.Recover(&err)
	if tx, err = b.decoder(raw); err != nil {
		custody.GetLogger(ctx).Debug("cannot decode tx", "err", err)
		return nil, nil, err
	}
	return custody.WithLogInfo(ctx, "path", custody.GetPath(tx)), tx, nil
}
