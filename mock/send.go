package mock

import (
	"bytes"
	"math/big"

	"go.uber.org/zap"

	"github.com/dharitri/dharitri-wasm-go/api"
	"github.com/dharitri/dharitri-wasm-go/errors"
)

// SendKind names a dispatched sub-call.
type SendKind string

const (
	SendDeploy            SendKind = "deploy"
	SendDeployFromSource  SendKind = "deployFromSource"
	SendUpgrade           SendKind = "upgrade"
	SendUpgradeFromSource SendKind = "upgradeFromSource"
	SendExecute           SendKind = "executeOnDestContext"
)

// SendRecord is what a context handed to the host for one sub-call.
type SendRecord struct {
	Kind     SendKind
	To       []byte
	Gas      uint64
	Value    *big.Int
	Code     []byte
	Source   []byte
	Metadata api.CodeMetadata
	Function string
	Args     [][]byte
}

func (c *TxContext) rawArgs(args []api.BufferHandle) [][]byte {
	out := make([][]byte, len(args))
	for i, h := range args {
		out[i] = bytes.Clone(c.buffer(h))
	}
	return out
}

// reserveGas hands gas to a sub-call. The unused part is returned by
// refundGas once the sub-call succeeds.
func (c *TxContext) reserveGas(gas uint64) error {
	if gas > c.gasLeft {
		return errors.NewAbort(errors.OutOfGas, errors.MsgNotEnoughGas)
	}
	c.gasLeft -= gas
	return nil
}

func (c *TxContext) refundGas(gas uint64) {
	c.gasLeft += gas
}

func (c *TxContext) record(r SendRecord) {
	c.sends = append(c.sends, r)
	Logger().Debug("dispatch",
		zap.String("kind", string(r.Kind)),
		addressField("from", c.input.To),
		addressField("to", r.To),
		zap.Uint64("gas", r.Gas),
		zap.Stringer("value", r.Value),
		zap.Int("args", len(r.Args)))
}

func (c *TxContext) importResults(out [][]byte) []api.BufferHandle {
	hs := make([]api.BufferHandle, len(out))
	for i, o := range out {
		hs[i] = c.newBuffer(o)
	}
	return hs
}

func (c *TxContext) deploy(kind SendKind, gas uint64, value api.BigIntHandle, code, source []byte, meta api.CodeMetadata, args []api.BufferHandle) (api.BufferHandle, []api.BufferHandle, error) {
	r := SendRecord{
		Kind:     kind,
		Gas:      gas,
		Value:    new(big.Int).Set(c.bigInt(value)),
		Code:     code,
		Source:   source,
		Metadata: meta,
		Args:     c.rawArgs(args),
	}
	c.record(r)
	if err := c.reserveGas(gas); err != nil {
		return api.InvalidHandle, nil, err
	}
	outcome, err := c.world.runDeploy(c.input.To, r.Value, code, meta, r.Args, gas, c.depth+1)
	if err != nil {
		return api.InvalidHandle, nil, err
	}
	c.refundGas(outcome.gasLeft)
	c.sends[len(c.sends)-1].To = outcome.address
	return c.newBuffer(outcome.address), c.importResults(outcome.out), nil
}

func (c *TxContext) sourceCode(source []byte) ([]byte, error) {
	acc, ok := c.world.Account(source)
	if !ok || !acc.IsContract() {
		return nil, errors.NewAbort(errors.ContractNotFound, errors.MsgContractNotFound)
	}
	return bytes.Clone(acc.Code), nil
}

func (c *TxContext) DeployContract(gas uint64, value api.BigIntHandle, code api.BufferHandle, meta api.CodeMetadata, args []api.BufferHandle) (api.BufferHandle, []api.BufferHandle, error) {
	return c.deploy(SendDeploy, gas, value, bytes.Clone(c.buffer(code)), nil, meta, args)
}

func (c *TxContext) DeployFromSourceContract(gas uint64, value api.BigIntHandle, source api.BufferHandle, meta api.CodeMetadata, args []api.BufferHandle) (api.BufferHandle, []api.BufferHandle, error) {
	src := bytes.Clone(c.buffer(source))
	code, err := c.sourceCode(src)
	if err != nil {
		return api.InvalidHandle, nil, err
	}
	return c.deploy(SendDeployFromSource, gas, value, code, src, meta, args)
}

func (c *TxContext) upgrade(kind SendKind, to api.BufferHandle, gas uint64, value api.BigIntHandle, code, source []byte, meta api.CodeMetadata, args []api.BufferHandle) error {
	r := SendRecord{
		Kind:     kind,
		To:       bytes.Clone(c.buffer(to)),
		Gas:      gas,
		Value:    new(big.Int).Set(c.bigInt(value)),
		Code:     code,
		Source:   source,
		Metadata: meta,
		Args:     c.rawArgs(args),
	}
	c.record(r)
	if err := c.reserveGas(gas); err != nil {
		return err
	}
	outcome, err := c.world.runUpgrade(c.input.To, r.To, r.Value, code, meta, r.Args, gas, c.depth+1)
	if err != nil {
		return err
	}
	c.refundGas(outcome.gasLeft)
	return nil
}

func (c *TxContext) UpgradeContract(to api.BufferHandle, gas uint64, value api.BigIntHandle, code api.BufferHandle, meta api.CodeMetadata, args []api.BufferHandle) error {
	return c.upgrade(SendUpgrade, to, gas, value, bytes.Clone(c.buffer(code)), nil, meta, args)
}

func (c *TxContext) UpgradeFromSourceContract(to api.BufferHandle, gas uint64, value api.BigIntHandle, source api.BufferHandle, meta api.CodeMetadata, args []api.BufferHandle) error {
	src := bytes.Clone(c.buffer(source))
	code, err := c.sourceCode(src)
	if err != nil {
		return err
	}
	return c.upgrade(SendUpgradeFromSource, to, gas, value, code, src, meta, args)
}

func (c *TxContext) ExecuteOnDestContext(to api.BufferHandle, gas uint64, value api.BigIntHandle, function api.BufferHandle, args []api.BufferHandle) ([]api.BufferHandle, error) {
	r := SendRecord{
		Kind:     SendExecute,
		To:       bytes.Clone(c.buffer(to)),
		Gas:      gas,
		Value:    new(big.Int).Set(c.bigInt(value)),
		Function: string(c.buffer(function)),
		Args:     c.rawArgs(args),
	}
	c.record(r)
	if err := c.reserveGas(gas); err != nil {
		return nil, err
	}
	input := &TxInput{
		From:      c.input.To,
		To:        r.To,
		MoaxValue: r.Value,
		Function:  r.Function,
		Args:      r.Args,
		GasLimit:  gas,
	}
	outcome, err := c.world.runCall(input, c.depth+1)
	if err != nil {
		return nil, err
	}
	c.refundGas(outcome.gasLeft)
	return c.importResults(outcome.out), nil
}
