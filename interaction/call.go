package interaction

import (
	"github.com/dharitri/dharitri-wasm-go/codec"
	"github.com/dharitri/dharitri-wasm-go/errors"
	"github.com/dharitri/dharitri-wasm-go/types"
)

// ContractCall executes an endpoint of another contract synchronously.
type ContractCall struct {
	request
	to       types.ManagedAddress
	function types.ManagedBuffer
}

// NewContractCall targets function on the contract at to.
func NewContractCall(b Backend, to types.ManagedAddress, function string) *ContractCall {
	return &ContractCall{
		request:  newRequest(b),
		to:       to,
		function: types.NewManagedBufferFromBytes(b, []byte(function)),
	}
}

func (c *ContractCall) WithMoaxTransfer(amount types.BigUint) *ContractCall {
	c.payment = &amount
	return c
}

func (c *ContractCall) WithGasLimit(gas uint64) *ContractCall {
	c.gas = gas
	return c
}

func (c *ContractCall) PushEndpointArg(v any) *ContractCall {
	c.pushArg(v)
	return c
}

func (c *ContractCall) Args() *types.ArgBuffer {
	return c.args
}

// ExecuteOnDestContext runs the call in the target's context and returns its
// raw results.
func (c *ContractCall) ExecuteOnDestContext() ([]types.ManagedBuffer, error) {
	if err := c.consume(); err != nil {
		return nil, err
	}
	out, err := c.b.ExecuteOnDestContext(c.to.Handle(), c.resolveGas(), c.value(), c.function.Handle(), c.args.Handles())
	if err != nil {
		return nil, err
	}
	return c.wrapResults(out), nil
}

// ExecuteOnDestContextDecode runs the call and multi-decodes its results
// into dsts, which must consume every result.
func (c *ContractCall) ExecuteOnDestContextDecode(dsts ...any) error {
	out, err := c.ExecuteOnDestContext()
	if err != nil {
		return err
	}
	raw := make([][]byte, len(out))
	for i, b := range out {
		raw[i] = b.Bytes()
	}
	return codec.MultiDecodeFromArgs(raw, codec.Exit(errors.MsgContractCallDecode), dsts...)
}
