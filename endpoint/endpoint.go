// Package endpoint loads contract call arguments and finishes results with
// the VM's abort messages.
package endpoint

import (
	"github.com/dharitri/dharitri-wasm-go/api"
	"github.com/dharitri/dharitri-wasm-go/codec"
	"github.com/dharitri/dharitri-wasm-go/errors"
)

// Backend is the capability set the helpers need.
type Backend interface {
	api.ManagedTypeAPI
	api.EndpointAPI
}

// CheckNumArguments aborts unless the call carries exactly n arguments.
func CheckNumArguments(b api.EndpointAPI, n int) error {
	if b.GetNumArguments() != n {
		return errors.NewAbort(errors.UserError, errors.MsgWrongNumArgs)
	}
	return nil
}

// Require signals msg as a user error when cond is false.
func Require(b api.EndpointAPI, cond bool, msg string) error {
	if cond {
		return nil
	}
	return b.SignalError([]byte(msg))
}

// argHandler reports argument count problems as wrong number of arguments
// and everything else as a decode error naming the argument.
type argHandler struct {
	name string
}

func (h argHandler) HandleError(err *errors.Error) error {
	switch err.Kind {
	case errors.KindNotEnoughArgs, errors.KindTooManyArgs:
		return errors.NewAbort(errors.UserError, errors.MsgWrongNumArgs)
	}
	return codec.Exit(errors.MsgArgDecodePrefix + h.name + errors.MsgArgDecodeSuffix).HandleError(err)
}

// LoadArg top-decodes argument index into dst.
func LoadArg(b Backend, index int, name string, dst any) error {
	if index < 0 || index >= b.GetNumArguments() {
		return errors.NewAbort(errors.UserError, errors.MsgWrongNumArgs)
	}
	h, err := b.GetArgument(index)
	if err != nil {
		return err
	}
	return codec.TopDecodeOrHandleErr(codec.RawInput(b.MBufferGetBytes(h)), dst, argHandler{name: name})
}

// ArgLoader reads the call arguments in order as a multi-value input.
type ArgLoader struct {
	b    Backend
	err  error
	next int
	n    int
}

var _ codec.TopDecodeMultiInput = (*ArgLoader)(nil)

// NewArgLoader starts at the first argument.
func NewArgLoader(b Backend) *ArgLoader {
	return &ArgLoader{b: b, n: b.GetNumArguments()}
}

func (l *ArgLoader) HasNext() bool {
	return l.next < l.n
}

func (l *ArgLoader) NextValueInput() (codec.TopDecodeInput, bool) {
	if !l.HasNext() {
		return nil, false
	}
	h, err := l.b.GetArgument(l.next)
	if err != nil {
		l.err = err
		return nil, false
	}
	l.next++
	return codec.RawInput(l.b.MBufferGetBytes(h)), true
}

// Load multi-decodes the next argument(s) into dst. A failure reading an
// argument from the backend is returned as is.
func (l *ArgLoader) Load(name string, dst any) error {
	err := codec.MultiDecodeOrHandleErr(l, dst, argHandler{name: name})
	if l.err != nil {
		return l.err
	}
	return err
}

// Done aborts when arguments are left over.
func (l *ArgLoader) Done() error {
	if l.HasNext() {
		return errors.NewAbort(errors.UserError, errors.MsgWrongNumArgs)
	}
	return nil
}

// Arg names a destination for LoadArgs.
type Arg struct {
	Name string
	Dst  any
}

// LoadArgs decodes every argument of the call into args, in order, and
// requires all of them to be consumed.
func LoadArgs(b Backend, args ...Arg) error {
	l := NewArgLoader(b)
	for _, a := range args {
		if err := l.Load(a.Name, a.Dst); err != nil {
			return err
		}
	}
	return l.Done()
}
