package mock

import (
	"github.com/dharitri/dharitri-wasm-go/api"
	"github.com/dharitri/dharitri-wasm-go/errors"
)

func callValueAbort(msg string) error {
	return errors.NewAbort(errors.ExecutionFailed, msg)
}

func (c *TxContext) failIfMoreThanOneDCTTransfer() error {
	if c.DctNumTransfers() > 1 {
		return callValueAbort(errors.MsgTooManyDCTTransfers)
	}
	return nil
}

func (c *TxContext) transferAt(index int) (DCTTransfer, error) {
	if index < 0 || index >= len(c.input.DCTValues) {
		return DCTTransfer{}, callValueAbort(errors.MsgInvalidTokenIndex)
	}
	return c.input.DCTValues[index], nil
}

func (c *TxContext) CheckNotPayable() error {
	if v := c.input.MoaxValue; v != nil && v.Sign() > 0 {
		return callValueAbort(errors.MsgNonPayableFuncMoax)
	}
	if c.DctNumTransfers() > 0 {
		return callValueAbort(errors.MsgNonPayableFuncDCT)
	}
	return nil
}

func (c *TxContext) MoaxValue() api.BigIntHandle {
	return c.newBigInt(c.input.MoaxValue)
}

func (c *TxContext) DctValue() (api.BigIntHandle, error) {
	if err := c.failIfMoreThanOneDCTTransfer(); err != nil {
		return api.InvalidHandle, err
	}
	return c.DctValueByIndex(0)
}

func (c *TxContext) Token() (api.BufferHandle, error) {
	if err := c.failIfMoreThanOneDCTTransfer(); err != nil {
		return api.InvalidHandle, err
	}
	return c.TokenByIndex(0)
}

func (c *TxContext) DctTokenNonce() (uint64, error) {
	if err := c.failIfMoreThanOneDCTTransfer(); err != nil {
		return 0, err
	}
	return c.DctTokenNonceByIndex(0)
}

func (c *TxContext) DctTokenType() (api.TokenType, error) {
	if err := c.failIfMoreThanOneDCTTransfer(); err != nil {
		return api.Invalid, err
	}
	return c.DctTokenTypeByIndex(0)
}

func (c *TxContext) DctNumTransfers() int {
	return len(c.input.DCTValues)
}

func (c *TxContext) DctValueByIndex(index int) (api.BigIntHandle, error) {
	t, err := c.transferAt(index)
	if err != nil {
		return api.InvalidHandle, err
	}
	return c.newBigInt(t.Value), nil
}

func (c *TxContext) TokenByIndex(index int) (api.BufferHandle, error) {
	t, err := c.transferAt(index)
	if err != nil {
		return api.InvalidHandle, err
	}
	return c.newBuffer(t.Token), nil
}

func (c *TxContext) DctTokenNonceByIndex(index int) (uint64, error) {
	t, err := c.transferAt(index)
	if err != nil {
		return 0, err
	}
	return t.Nonce, nil
}

func (c *TxContext) DctTokenTypeByIndex(index int) (api.TokenType, error) {
	nonce, err := c.DctTokenNonceByIndex(index)
	if err != nil {
		return api.Invalid, err
	}
	return api.TokenTypeFromNonce(nonce), nil
}
