package app

import (
	"github.com/iov-one/vaultswap"
	"github.com/iov-one/vaultswap/errors"
	abci "github.com/tendermint/tendermint/abci/types"
)

// BaseApp runs CheckTx and DeliverTx through the decorated handler, on
// top of the store and query support of StoreApp.
type BaseApp struct {
	*StoreApp
	decoder vaultswap.TxDecoder
	handler vaultswap.Handler
	debug   bool
}

var _ abci.Application = BaseApp{}

// NewBaseApp returns an application decoding transactions with decoder.
// In debug mode failed transactions report the full error.
func NewBaseApp(store *StoreApp, decoder vaultswap.TxDecoder, handler vaultswap.Handler, debug bool) BaseApp {
	return BaseApp{
		StoreApp: store,
		decoder:  decoder,
		handler:  handler,
		debug:    debug,
	}
}

func (b BaseApp) DeliverTx(raw []byte) abci.ResponseDeliverTx {
	tx, err := b.decode(raw)
	if err != nil {
		return vaultswap.DeliverTxError(err, b.debug)
	}
	res, err := b.handler.Deliver(b.txContext("deliver_tx", tx), b.DeliverStore(), tx)
	return vaultswap.DeliverOrError(res, err, b.debug)
}

func (b BaseApp) CheckTx(raw []byte) abci.ResponseCheckTx {
	tx, err := b.decode(raw)
	if err != nil {
		return vaultswap.CheckTxError(err, b.debug)
	}
	res, err := b.handler.Check(b.txContext("check_tx", tx), b.CheckStore(), tx)
	return vaultswap.CheckOrError(res, err, b.debug)
}

// txContext is the block context with the phase and the message path
// attached to its logger.
func (b BaseApp) txContext(call string, tx vaultswap.Tx) vaultswap.Context {
	return vaultswap.WithLogInfo(b.BlockContext(), "call", call, "path", vaultswap.GetPath(tx))
}

// decode runs the decoder. Malformed bytes come from the network, a
// panicking decoder must not stop the node.
func (b BaseApp) decode(raw []byte) (tx vaultswap.Tx, err error) {
	defer errors.Recover(&err)
	return b.decoder(raw)
}
