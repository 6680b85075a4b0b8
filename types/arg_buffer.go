package types

import (
	"github.com/dharitri/dharitri-wasm-go/api"
	"github.com/dharitri/dharitri-wasm-go/codec"
)

// ArgBuffer is an ordered list of top-level encoded arguments for an
// outgoing call.
type ArgBuffer struct {
	api  api.ManagedTypeAPI
	args []ManagedBuffer
}

// NewArgBuffer creates an empty argument list.
func NewArgBuffer(m api.ManagedTypeAPI) *ArgBuffer {
	return &ArgBuffer{api: m}
}

// ArgBufferFromHandles wraps handles produced by m.
func ArgBufferFromHandles(m api.ManagedTypeAPI, handles []api.BufferHandle) *ArgBuffer {
	a := &ArgBuffer{api: m, args: make([]ManagedBuffer, len(handles))}
	for i, h := range handles {
		a.args[i] = ManagedBufferFromHandle(m, h)
	}
	return a
}

// PushSingleValue top-encodes v into a new argument.
func (a *ArgBuffer) PushSingleValue(v any, h codec.ErrorHandler) error {
	var buf codec.Buffer
	if err := codec.TopEncodeOrHandleErr(v, &buf, h); err != nil {
		return err
	}
	a.args = append(a.args, NewManagedBufferFromBytes(a.api, buf.Bytes()))
	return nil
}

// PushArg multi-encodes v, appending one argument per item.
func (a *ArgBuffer) PushArg(v any, h codec.ErrorHandler) error {
	return codec.MultiEncodeOrHandleErr(v, a, h)
}

// PushRaw appends an argument without encoding.
func (a *ArgBuffer) PushRaw(b []byte) {
	a.args = append(a.args, NewManagedBufferFromBytes(a.api, b))
}

// PushBuffer appends an existing buffer.
func (a *ArgBuffer) PushBuffer(b ManagedBuffer) {
	a.args = append(a.args, b)
}

func (a *ArgBuffer) Len() int {
	return len(a.args)
}

func (a *ArgBuffer) Args() []ManagedBuffer {
	return a.args
}

// Handles returns the argument handles in push order.
func (a *ArgBuffer) Handles() []api.BufferHandle {
	hs := make([]api.BufferHandle, len(a.args))
	for i, b := range a.args {
		hs[i] = b.handle
	}
	return hs
}

// RawArgs returns copies of the argument bytes.
func (a *ArgBuffer) RawArgs() [][]byte {
	out := make([][]byte, len(a.args))
	for i, b := range a.args {
		out[i] = b.Bytes()
	}
	return out
}

// Input returns a multi-value input over the arguments.
func (a *ArgBuffer) Input() *codec.ArgsInput {
	return codec.NewArgsInput(a.RawArgs())
}
