package mock

import (
	"github.com/dharitri/dharitri-wasm-go/api"
)

func (c *TxContext) GetGasLeft() uint64 {
	return c.gasLeft
}

func (c *TxContext) GetSCAddress() api.BufferHandle {
	return c.newBuffer(c.input.To)
}

func (c *TxContext) GetCaller() api.BufferHandle {
	return c.newBuffer(c.input.From)
}

func (c *TxContext) GetBalance(address api.BufferHandle) api.BigIntHandle {
	return c.newBigInt(c.account(c.buffer(address)).Balance)
}

func (c *TxContext) GetBlockNonce() uint64 {
	return c.world.BlockNonce
}

func (c *TxContext) GetBlockTimestamp() uint64 {
	return c.world.BlockTimestamp
}
