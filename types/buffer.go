package types

import (
	"github.com/dharitri/dharitri-wasm-go/api"
	"github.com/dharitri/dharitri-wasm-go/codec"
)

// ManagedBuffer is a byte string held in the managed arena.
type ManagedBuffer struct {
	api    api.ManagedTypeAPI
	handle api.BufferHandle
}

// NewManagedBuffer allocates an empty buffer.
func NewManagedBuffer(m api.ManagedTypeAPI) ManagedBuffer {
	return ManagedBuffer{api: m, handle: m.MBufferNew()}
}

// NewManagedBufferFromBytes allocates a buffer holding a copy of b.
func NewManagedBufferFromBytes(m api.ManagedTypeAPI, b []byte) ManagedBuffer {
	return ManagedBuffer{api: m, handle: m.MBufferNewFromBytes(b)}
}

// ManagedBufferFromHandle wraps a handle produced by m.
func ManagedBufferFromHandle(m api.ManagedTypeAPI, h api.BufferHandle) ManagedBuffer {
	return ManagedBuffer{api: m, handle: h}
}

func (b ManagedBuffer) Handle() api.BufferHandle { return b.handle }
func (b ManagedBuffer) API() api.ManagedTypeAPI   { return b.api }

func (b ManagedBuffer) Len() int {
	return b.api.MBufferLen(b.handle)
}

func (b ManagedBuffer) IsEmpty() bool {
	return b.Len() == 0
}

// Bytes returns a copy of the contents.
func (b ManagedBuffer) Bytes() []byte {
	return b.api.MBufferGetBytes(b.handle)
}

func (b ManagedBuffer) String() string {
	return string(b.Bytes())
}

// Overwrite replaces the contents with data.
func (b ManagedBuffer) Overwrite(data []byte) {
	b.api.MBufferSetBytes(b.handle, data)
}

func (b ManagedBuffer) Append(other ManagedBuffer) {
	b.api.MBufferAppend(b.handle, other.handle)
}

func (b ManagedBuffer) AppendBytes(data []byte) {
	b.api.MBufferAppendBytes(b.handle, data)
}

// CopySlice returns a new buffer with length bytes starting at start.
func (b ManagedBuffer) CopySlice(start, length int) (ManagedBuffer, bool) {
	h, ok := b.api.MBufferCopySlice(b.handle, start, length)
	if !ok {
		return ManagedBuffer{}, false
	}
	return ManagedBuffer{api: b.api, handle: h}, true
}

// Clone returns an independent copy.
func (b ManagedBuffer) Clone() ManagedBuffer {
	return NewManagedBufferFromBytes(b.api, b.Bytes())
}

func (b ManagedBuffer) Equal(other ManagedBuffer) bool {
	return b.api.MBufferEq(b.handle, other.handle)
}

// EqualBytes compares the contents with data.
func (b ManagedBuffer) EqualBytes(data []byte) bool {
	return string(b.Bytes()) == string(data)
}

func (b ManagedBuffer) TopEncodeOrHandleErr(out codec.TopEncodeOutput, _ codec.ErrorHandler) error {
	out.SetSlice(b.Bytes())
	return nil
}

func (b ManagedBuffer) DepEncodeOrHandleErr(dest codec.NestedEncodeOutput, h codec.ErrorHandler) error {
	return codec.DepEncodeBytes(b.Bytes(), dest, h)
}

func (b *ManagedBuffer) TopDecodeOrHandleErr(in codec.TopDecodeInput, h codec.ErrorHandler) error {
	if b.api == nil {
		return unbound(h, "ManagedBuffer")
	}
	b.handle = b.api.MBufferNewFromBytes(in.Bytes())
	return nil
}

func (b *ManagedBuffer) DepDecodeOrHandleErr(in codec.NestedDecodeInput, h codec.ErrorHandler) error {
	if b.api == nil {
		return unbound(h, "ManagedBuffer")
	}
	data, err := codec.DepDecodeBytes(in, h)
	if err != nil {
		return err
	}
	b.handle = b.api.MBufferNewFromBytes(data)
	return nil
}
