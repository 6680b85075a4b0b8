package mock

import (
	"bytes"
	"math/big"

	"go.uber.org/zap"

	"github.com/dharitri/dharitri-wasm-go/api"
	"github.com/dharitri/dharitri-wasm-go/errors"
)

// MaxCallDepth bounds nested sub-calls.
const MaxCallDepth = 64

// DCTTransfer is one token transfer attached to a call.
type DCTTransfer struct {
	Token []byte
	Nonce uint64
	Value *big.Int
}

// TxInput describes a contract call.
type TxInput struct {
	From      []byte
	To        []byte
	MoaxValue *big.Int
	DCTValues []DCTTransfer
	Function  string
	Args      [][]byte
	GasLimit  uint64
}

// DeployInput describes a contract deployment.
type DeployInput struct {
	From         []byte
	Value        *big.Int
	Code         []byte
	CodeMetadata api.CodeMetadata
	Args         [][]byte
	GasLimit     uint64
}

// TxResult is the outcome of an entry call.
type TxResult struct {
	Status     errors.ReturnCode
	Message    string
	Out        [][]byte
	GasLeft    uint64
	NewAddress []byte
}

// Failed reports whether the call aborted.
func (r TxResult) Failed() bool {
	return r.Status != errors.Ok
}

type callOutcome struct {
	out     [][]byte
	gasLeft uint64
	address []byte
}

func resultFromAbort(err error) TxResult {
	a := errors.ToAbort(err)
	return TxResult{Status: a.Status, Message: string(a.Message)}
}

// Execute runs a contract call as a transaction. The sender nonce is
// incremented whether or not the call succeeds.
func (w *World) Execute(input TxInput) TxResult {
	if sender, ok := w.Account(input.From); ok {
		sender.Nonce++
	}
	outcome, err := w.runCall(&input, 0)
	if err != nil {
		return resultFromAbort(err)
	}
	return TxResult{Status: errors.Ok, Out: outcome.out, GasLeft: outcome.gasLeft}
}

// Deploy runs a contract deployment as a transaction.
func (w *World) Deploy(input DeployInput) TxResult {
	outcome, err := w.runDeploy(input.From, input.Value, input.Code, input.CodeMetadata, input.Args, input.GasLimit, 0)
	if err != nil {
		return resultFromAbort(err)
	}
	return TxResult{Status: errors.Ok, Out: outcome.out, GasLeft: outcome.gasLeft, NewAddress: outcome.address}
}

// atomic runs fn, restoring the world state when it fails.
func (w *World) atomic(op string, fn func() (*callOutcome, error)) (*callOutcome, error) {
	snap := w.snapshot()
	outcome, err := fn()
	if err != nil {
		w.restore(snap)
		a := errors.ToAbort(err)
		Logger().Debug("rolled back",
			zap.String("op", op),
			zap.Uint64("status", uint64(a.Status)),
			zap.ByteString("message", a.Message))
		return nil, a
	}
	return outcome, nil
}

func (w *World) runCall(input *TxInput, depth int) (*callOutcome, error) {
	return w.atomic("call", func() (*callOutcome, error) {
		if depth > MaxCallDepth {
			return nil, errors.NewAbort(errors.CallStackOverFlow, errors.MsgCallStackOverflow)
		}
		if err := w.transfer(input.From, input.To, input.MoaxValue, input.DCTValues); err != nil {
			return nil, err
		}

		dest, ok := w.Account(input.To)
		if !ok || !dest.IsContract() {
			if input.Function == "" {
				return &callOutcome{gasLeft: input.GasLimit}, nil
			}
			return nil, errors.NewAbort(errors.ContractNotFound, errors.MsgContractNotFound)
		}
		contract, ok := w.contracts[string(dest.Code)]
		if !ok {
			return nil, errors.NewAbort(errors.ContractInvalid, errors.MsgContractInvalid)
		}
		endpoint, ok := contract[input.Function]
		if !ok {
			return nil, errors.NewAbort(errors.FunctionNotFound, errors.MsgFunctionNotFound)
		}
		return w.runEndpoint(input, endpoint, depth)
	})
}

func (w *World) runEndpoint(input *TxInput, endpoint Endpoint, depth int) (outcome *callOutcome, err error) {
	Logger().Debug("executing",
		addressField("from", input.From),
		addressField("to", input.To),
		zap.String("function", input.Function),
		zap.Int("args", len(input.Args)),
		zap.Uint64("gas", input.GasLimit),
		zap.Int("depth", depth))

	ctx := newTxContext(w, input, depth)
	defer ctx.Close()

	// Panics carrying an error (invalid handles, aborts) end the call.
	defer func() {
		if r := recover(); r != nil {
			e, ok := r.(error)
			if !ok {
				panic(r)
			}
			if _, isAbort := errors.AsAbort(e); !isAbort {
				e = errors.NewAbort(errors.ExecutionFailed, e.Error())
			}
			outcome, err = nil, errors.ToAbort(e)
		}
	}()

	if err := endpoint(ctx); err != nil {
		return nil, errors.ToAbort(err)
	}
	return &callOutcome{out: ctx.out, gasLeft: ctx.gasLeft}, nil
}

func (w *World) runDeploy(creator []byte, value *big.Int, code []byte, meta api.CodeMetadata, args [][]byte, gas uint64, depth int) (*callOutcome, error) {
	return w.atomic("deploy", func() (*callOutcome, error) {
		if depth > MaxCallDepth {
			return nil, errors.NewAbort(errors.CallStackOverFlow, errors.MsgCallStackOverflow)
		}
		owner, ok := w.Account(creator)
		if !ok {
			return nil, errors.NewAbort(errors.ExecutionFailed, errors.MsgAccountNotFound)
		}
		contract, ok := w.contracts[string(code)]
		if !ok {
			return nil, errors.NewAbort(errors.ContractInvalid, errors.MsgContractInvalid)
		}

		address := w.NewAddress(creator, owner.Nonce)
		owner.Nonce++
		if _, exists := w.Account(address); exists {
			return nil, errors.NewAbort(errors.AccountCollision, errors.MsgAccountExists)
		}
		acc := w.CreateAccount(address, nil)
		acc.Code = bytes.Clone(code)
		acc.CodeMetadata = meta
		acc.Owner = bytes.Clone(creator)

		Logger().Debug("deployed", addressField("creator", creator), addressField("address", address))

		outcome, err := w.runInit(contract, creator, address, value, args, gas, depth)
		if err != nil {
			return nil, err
		}
		outcome.address = address
		return outcome, nil
	})
}

func (w *World) runUpgrade(caller, target []byte, value *big.Int, code []byte, meta api.CodeMetadata, args [][]byte, gas uint64, depth int) (*callOutcome, error) {
	return w.atomic("upgrade", func() (*callOutcome, error) {
		if depth > MaxCallDepth {
			return nil, errors.NewAbort(errors.CallStackOverFlow, errors.MsgCallStackOverflow)
		}
		acc, ok := w.Account(target)
		if !ok || !acc.IsContract() {
			return nil, errors.NewAbort(errors.ContractNotFound, errors.MsgContractNotFound)
		}
		if !acc.CodeMetadata.IsUpgradeable() || !bytes.Equal(acc.Owner, caller) {
			return nil, errors.NewAbort(errors.UserError, errors.MsgUpgradeNotAllowed)
		}
		contract, ok := w.contracts[string(code)]
		if !ok {
			return nil, errors.NewAbort(errors.ContractInvalid, errors.MsgContractInvalid)
		}
		acc.Code = bytes.Clone(code)
		acc.CodeMetadata = meta

		Logger().Debug("upgraded", addressField("caller", caller), addressField("address", target))

		return w.runInit(contract, caller, target, value, args, gas, depth)
	})
}

func (w *World) runInit(contract Contract, from, to []byte, value *big.Int, args [][]byte, gas uint64, depth int) (*callOutcome, error) {
	if err := w.transfer(from, to, value, nil); err != nil {
		return nil, err
	}
	input := &TxInput{From: from, To: to, MoaxValue: value, Function: InitEndpoint, Args: args, GasLimit: gas}
	endpoint, ok := contract[InitEndpoint]
	if !ok {
		return &callOutcome{gasLeft: gas}, nil
	}
	return w.runEndpoint(input, endpoint, depth)
}

// transfer moves MOAX and DCT balances from one account to another,
// creating the receiver if needed.
func (w *World) transfer(from, to []byte, value *big.Int, dcts []DCTTransfer) error {
	hasValue := value != nil && value.Sign() > 0
	if !hasValue && len(dcts) == 0 {
		return nil
	}
	sender, ok := w.Account(from)
	if !ok {
		return errors.NewAbort(errors.OutOfFunds, errors.MsgInsufficientFunds)
	}
	receiver, ok := w.Account(to)
	if !ok {
		receiver = w.CreateAccount(to, nil)
	}

	if hasValue {
		if sender.Balance.Cmp(value) < 0 {
			return errors.NewAbort(errors.OutOfFunds, errors.MsgInsufficientFunds)
		}
		sender.Balance.Sub(sender.Balance, value)
		receiver.Balance.Add(receiver.Balance, value)
	}
	for _, t := range dcts {
		if t.Value == nil || t.Value.Sign() == 0 {
			continue
		}
		token := string(t.Token)
		have := sender.DCTBalance(token, t.Nonce)
		if have.Cmp(t.Value) < 0 {
			return errors.NewAbort(errors.OutOfFunds, errors.MsgInsufficientFunds)
		}
		sender.SetDCTBalance(token, t.Nonce, have.Sub(have, t.Value))
		got := receiver.DCTBalance(token, t.Nonce)
		receiver.SetDCTBalance(token, t.Nonce, got.Add(got, t.Value))
	}
	return nil
}
