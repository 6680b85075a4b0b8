package mock

import (
	"bytes"
	"math/big"

	"go.uber.org/zap"

	"github.com/dharitri/dharitri-wasm-go/api"
	"github.com/dharitri/dharitri-wasm-go/arena"
	"github.com/dharitri/dharitri-wasm-go/errors"
)

// TxContext is one executing call. It implements api.Backend over its own
// arena. Handles it produces are meaningless to any other context.
type TxContext struct {
	world *World
	input *TxInput
	depth int

	buffers *arena.Table[api.BufferHandle, []byte]
	bigInts *arena.Table[api.BigIntHandle, *big.Int]

	gasLeft uint64
	out     [][]byte
	sends   []SendRecord
}

var _ api.Backend = (*TxContext)(nil)

func newTxContext(w *World, input *TxInput, depth int) *TxContext {
	c := &TxContext{
		world:   w,
		input:   input,
		depth:   depth,
		buffers: arena.NewTable[api.BufferHandle, []byte]("buffer"),
		bigInts: arena.NewTable[api.BigIntHandle, *big.Int]("bigint"),
		gasLeft: input.GasLimit,
	}
	if Logger().Core().Enabled(zap.DebugLevel) {
		obs := arena.ObserverFunc(func(e arena.Event) {
			Logger().Debug("arena",
				zap.String("table", e.Table),
				zap.Int32("handle", e.Handle),
				zap.Stringer("event", e.Type),
				zap.Int("depth", depth))
		})
		c.buffers.Subscribe(obs)
		c.bigInts.Subscribe(obs)
	}
	return c
}

// NewTxContext opens a call context without executing anything, for driving
// contract logic directly from tests. The destination account is created if
// missing. No value is transferred.
func (w *World) NewTxContext(input TxInput) *TxContext {
	if _, ok := w.Account(input.To); !ok {
		w.CreateAccount(input.To, nil)
	}
	return newTxContext(w, &input, 0)
}

// Close discards the arena. Handles of this context become invalid.
func (c *TxContext) Close() {
	c.buffers.Close()
	c.bigInts.Close()
}

// World returns the world the context executes in.
func (c *TxContext) World() *World {
	return c.world
}

// Input returns the call being executed.
func (c *TxContext) Input() TxInput {
	return *c.input
}

// SetGasLeft overwrites the remaining gas.
func (c *TxContext) SetGasLeft(gas uint64) {
	c.gasLeft = gas
}

// UseGas consumes gas, aborting with out of gas when not enough remains.
func (c *TxContext) UseGas(gas uint64) error {
	if gas > c.gasLeft {
		c.gasLeft = 0
		return errors.NewAbort(errors.OutOfGas, errors.MsgNotEnoughGas)
	}
	c.gasLeft -= gas
	return nil
}

// Out returns copies of the finished results.
func (c *TxContext) Out() [][]byte {
	out := make([][]byte, len(c.out))
	for i, o := range c.out {
		out[i] = bytes.Clone(o)
	}
	return out
}

// Sends returns the sub-calls dispatched so far.
func (c *TxContext) Sends() []SendRecord {
	return c.sends
}

// Result returns a successful TxResult with the current output.
func (c *TxContext) Result() TxResult {
	return TxResult{Status: errors.Ok, Out: c.Out(), GasLeft: c.gasLeft}
}

// account looks the account up on every access; rollbacks replace accounts.
func (c *TxContext) account(addr []byte) *Account {
	acc, ok := c.world.Account(addr)
	if !ok {
		return NewAccount(addr)
	}
	return acc
}

func (c *TxContext) buffer(h api.BufferHandle) []byte {
	v, ok := c.buffers.Get(h)
	if !ok {
		panic(errors.InvalidHandle(errors.PhaseManaged, "buffer", int32(h)))
	}
	return v
}

func (c *TxContext) bigInt(h api.BigIntHandle) *big.Int {
	v, ok := c.bigInts.Get(h)
	if !ok {
		panic(errors.InvalidHandle(errors.PhaseManaged, "big int", int32(h)))
	}
	return v
}

func (c *TxContext) newBuffer(data []byte) api.BufferHandle {
	return c.buffers.Insert(append([]byte{}, data...))
}

func (c *TxContext) newBigInt(v *big.Int) api.BigIntHandle {
	if v == nil {
		return c.bigInts.Insert(new(big.Int))
	}
	return c.bigInts.Insert(new(big.Int).Set(v))
}
