package errors

import (
	stderrors "errors"
	"strconv"
)

// ReturnCode is the VM status attached to a finished or aborted call.
type ReturnCode uint64

const (
	Ok                     ReturnCode = 0
	FunctionNotFound       ReturnCode = 1
	FunctionWrongSignature ReturnCode = 2
	ContractNotFound       ReturnCode = 3
	UserError              ReturnCode = 4
	OutOfGas               ReturnCode = 5
	AccountCollision       ReturnCode = 6
	OutOfFunds             ReturnCode = 7
	CallStackOverFlow      ReturnCode = 8
	ContractInvalid        ReturnCode = 9
	ExecutionFailed        ReturnCode = 10
)

var returnCodeNames = [...]string{
	Ok:                     "ok",
	FunctionNotFound:       "function not found",
	FunctionWrongSignature: "wrong signature for function",
	ContractNotFound:       "contract not found",
	UserError:              "user error",
	OutOfGas:               "out of gas",
	AccountCollision:       "account collision",
	OutOfFunds:             "out of funds",
	CallStackOverFlow:      "call stack overflow",
	ContractInvalid:        "contract invalid",
	ExecutionFailed:        "execution failed",
}

func (c ReturnCode) String() string {
	if int(c) < len(returnCodeNames) {
		return returnCodeNames[c]
	}
	return "return code " + strconv.FormatUint(uint64(c), 10)
}

// Stable abort messages shared by every backend.
const (
	MsgTooManyDCTTransfers  = "too many DCT transfers"
	MsgNonPayableFuncMoax   = "function does not accept MOAX payment"
	MsgNonPayableFuncDCT    = "function does not accept DCT payment"
	MsgInvalidTokenIndex    = "invalid token index"
	MsgContractCallEncode   = "contract call encode error: "
	MsgArgDecodePrefix      = "argument decode error ("
	MsgArgDecodeSuffix      = "): "
	MsgWrongNumArgs         = "wrong number of arguments"
	MsgFinishEncode         = "endpoint result encode error: "
	MsgBigUintSubNegative   = "cannot subtract because result would be negative"
	MsgDivisionByZero       = "division by 0"
	MsgInsufficientFunds    = "failed transfer (insufficient funds)"
	MsgNotEnoughGas         = "not enough gas"
	MsgContractNotFound     = "contract not found"
	MsgFunctionNotFound     = "invalid function (not found)"
	MsgUpgradeNotAllowed    = "upgrade not allowed"
	MsgAccountExists        = "account already exists"
	MsgAlreadyDispatched    = "builder already dispatched"
	MsgInvalidAddressLength = "invalid address length"
	MsgIncorrectNumDCT      = "incorrect number of DCT transfers"
	MsgContractCallDecode   = "contract call result decode error: "
	MsgArgumentIndex        = "argument index out of range"
	MsgAccountNotFound      = "account not found"
	MsgContractInvalid      = "invalid contract code"
	MsgCallStackOverflow    = "max call depth reached"
	MsgStorageEncode        = "storage encode error: "
	MsgStorageDecode        = "storage decode error: "
)

// Abort is an unrecoverable termination of the current call.
// It is threaded through return values until the entry dispatcher converts it
// into a call result or a host trap.
type Abort struct {
	Message []byte
	Status  ReturnCode
}

// NewAbort creates an abort with a textual message.
func NewAbort(status ReturnCode, message string) *Abort {
	return &Abort{Status: status, Message: []byte(message)}
}

// NewAbortBytes creates an abort with raw message bytes.
func NewAbortBytes(status ReturnCode, message []byte) *Abort {
	msg := make([]byte, len(message))
	copy(msg, message)
	return &Abort{Status: status, Message: msg}
}

// Error implements the error interface
func (a *Abort) Error() string {
	return "abort (" + strconv.FormatUint(uint64(a.Status), 10) + " " + a.Status.String() + "): " + string(a.Message)
}

// Is reports whether target is an abort with the same status and message.
func (a *Abort) Is(target error) bool {
	t, ok := target.(*Abort)
	if !ok {
		return false
	}
	return a.Status == t.Status && string(a.Message) == string(t.Message)
}

// AsAbort extracts an abort from an error chain.
func AsAbort(err error) (*Abort, bool) {
	var a *Abort
	if stderrors.As(err, &a) {
		return a, true
	}
	return nil, false
}

// ToAbort converts any error into an abort. Aborts pass through unchanged,
// structured errors become user errors carrying their message, anything else
// becomes an execution failure.
func ToAbort(err error) *Abort {
	if err == nil {
		return nil
	}
	if a, ok := AsAbort(err); ok {
		return a
	}
	var e *Error
	if stderrors.As(err, &e) {
		return NewAbort(UserError, e.Message())
	}
	return NewAbort(ExecutionFailed, err.Error())
}
