// Package interaction builds outgoing deploy, upgrade and call requests.
//
// Builders accumulate payment, gas and arguments through chained calls and
// dispatch exactly once. The first argument encoding failure is kept and
// returned by the dispatch, so chains need no intermediate checks. When no
// gas limit is set, the remaining gas is read from the backend at the
// moment of dispatch.
package interaction

import (
	stderrors "errors"
	"math"

	"github.com/dharitri/dharitri-wasm-go/api"
	"github.com/dharitri/dharitri-wasm-go/codec"
	"github.com/dharitri/dharitri-wasm-go/errors"
	"github.com/dharitri/dharitri-wasm-go/types"
)

// UnspecifiedGasLimit means "all gas left at dispatch".
const UnspecifiedGasLimit uint64 = math.MaxUint64

// ErrAlreadyDispatched is returned when a builder is dispatched twice.
var ErrAlreadyDispatched = stderrors.New(errors.MsgAlreadyDispatched)

// Backend is the capability set the builders need.
type Backend interface {
	api.ManagedTypeAPI
	api.BlockchainAPI
	api.SendAPI
}

// request is the state shared by every builder.
type request struct {
	b          Backend
	payment    *types.BigUint
	gas        uint64
	args       *types.ArgBuffer
	err        error
	dispatched bool
}

func newRequest(b Backend) request {
	return request{b: b, gas: UnspecifiedGasLimit, args: types.NewArgBuffer(b)}
}

func (r *request) pushArg(v any) {
	if r.err != nil {
		return
	}
	r.err = r.args.PushArg(v, codec.Exit(errors.MsgContractCallEncode))
}

func (r *request) resolveGas() uint64 {
	if r.gas == UnspecifiedGasLimit {
		return r.b.GetGasLeft()
	}
	return r.gas
}

func (r *request) value() api.BigIntHandle {
	if r.payment == nil {
		return r.b.BigIntNew(0)
	}
	return r.payment.Handle()
}

// consume marks the request dispatched, failing on reuse or on a pending
// argument error.
func (r *request) consume() error {
	if r.dispatched {
		return ErrAlreadyDispatched
	}
	r.dispatched = true
	return r.err
}

func (r *request) wrapResults(hs []api.BufferHandle) []types.ManagedBuffer {
	out := make([]types.ManagedBuffer, len(hs))
	for i, h := range hs {
		out[i] = types.ManagedBufferFromHandle(r.b, h)
	}
	return out
}
