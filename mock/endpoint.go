package mock

import (
	"bytes"

	"github.com/dharitri/dharitri-wasm-go/api"
	"github.com/dharitri/dharitri-wasm-go/errors"
)

func (c *TxContext) GetNumArguments() int {
	return len(c.input.Args)
}

func (c *TxContext) GetArgument(index int) (api.BufferHandle, error) {
	if index < 0 || index >= len(c.input.Args) {
		return api.InvalidHandle, errors.NewAbort(errors.ExecutionFailed, errors.MsgArgumentIndex)
	}
	return c.newBuffer(c.input.Args[index]), nil
}

func (c *TxContext) Finish(h api.BufferHandle) {
	c.out = append(c.out, bytes.Clone(c.buffer(h)))
}

func (c *TxContext) SignalError(message []byte) error {
	return errors.NewAbortBytes(errors.UserError, message)
}

func (c *TxContext) StorageStore(key, value api.BufferHandle) {
	acc, ok := c.world.Account(c.input.To)
	if !ok {
		acc = c.world.CreateAccount(c.input.To, nil)
	}
	v := c.buffer(value)
	if len(v) == 0 {
		delete(acc.Storage, string(c.buffer(key)))
		return
	}
	acc.Storage[string(c.buffer(key))] = bytes.Clone(v)
}

func (c *TxContext) StorageLoad(key api.BufferHandle) api.BufferHandle {
	return c.newBuffer(c.account(c.input.To).Storage[string(c.buffer(key))])
}
