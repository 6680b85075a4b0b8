package types

import (
	"github.com/dharitri/dharitri-wasm-go/api"
	"github.com/dharitri/dharitri-wasm-go/codec"
)

// MoaxRepresentation is the wire form of the native coin.
const MoaxRepresentation = "MOAX"

// TokenIdentifier names a DCT token or the native coin. The native coin is
// held as an empty buffer; the literal MoaxRepresentation is normalized away
// by every constructor and decoder and only appears on the wire.
type TokenIdentifier struct {
	buf ManagedBuffer
}

// MoaxToken allocates the native coin identifier.
func MoaxToken(m api.ManagedTypeAPI) TokenIdentifier {
	return TokenIdentifier{buf: NewManagedBuffer(m)}
}

// TokenIdentifierFromBytes allocates an identifier from its name.
func TokenIdentifierFromBytes(m api.ManagedTypeAPI, name []byte) TokenIdentifier {
	if string(name) == MoaxRepresentation {
		return MoaxToken(m)
	}
	return TokenIdentifier{buf: NewManagedBufferFromBytes(m, name)}
}

// TokenIdentifierFromString allocates an identifier from its name.
func TokenIdentifierFromString(m api.ManagedTypeAPI, name string) TokenIdentifier {
	return TokenIdentifierFromBytes(m, []byte(name))
}

// TokenIdentifierFromBuffer takes ownership of buf, normalizing it in place.
func TokenIdentifierFromBuffer(buf ManagedBuffer) TokenIdentifier {
	t := TokenIdentifier{buf: buf}
	t.normalize()
	return t
}

// TokenIdentifierFromHandle wraps a buffer handle produced by m, normalizing
// its contents.
func TokenIdentifierFromHandle(m api.ManagedTypeAPI, h api.BufferHandle) TokenIdentifier {
	return TokenIdentifierFromBuffer(ManagedBufferFromHandle(m, h))
}

// NewTokenIdentifier returns an unallocated identifier bound to m, ready to
// be decoded into.
func NewTokenIdentifier(m api.ManagedTypeAPI) TokenIdentifier {
	return TokenIdentifier{buf: ManagedBuffer{api: m}}
}

func (t *TokenIdentifier) normalize() {
	if t.buf.EqualBytes([]byte(MoaxRepresentation)) {
		t.buf.Overwrite(nil)
	}
}

func (t TokenIdentifier) Handle() api.BufferHandle { return t.buf.handle }
func (t TokenIdentifier) Buffer() ManagedBuffer    { return t.buf }

func (t TokenIdentifier) IsMoax() bool { return t.buf.IsEmpty() }
func (t TokenIdentifier) IsDCT() bool  { return !t.IsMoax() }

// Len is zero for the native coin.
func (t TokenIdentifier) Len() int {
	return t.buf.Len()
}

// Bytes returns the stored form, empty for the native coin.
func (t TokenIdentifier) Bytes() []byte {
	return t.buf.Bytes()
}

// Name returns the wire form: MoaxRepresentation for the native coin.
func (t TokenIdentifier) Name() []byte {
	if t.IsMoax() {
		return []byte(MoaxRepresentation)
	}
	return t.buf.Bytes()
}

func (t TokenIdentifier) String() string {
	return string(t.Name())
}

// IsValidDCTIdentifier asks the backend whether the name is a well formed
// DCT identifier (ticker, dash, 6 random hex characters).
func (t TokenIdentifier) IsValidDCTIdentifier() bool {
	return t.buf.api.ValidateTokenIdentifier(t.buf.handle)
}

func (t TokenIdentifier) Equal(other TokenIdentifier) bool {
	return t.buf.Equal(other.buf)
}

func (t TokenIdentifier) TopEncodeOrHandleErr(out codec.TopEncodeOutput, _ codec.ErrorHandler) error {
	out.SetSlice(t.Name())
	return nil
}

func (t TokenIdentifier) DepEncodeOrHandleErr(dest codec.NestedEncodeOutput, h codec.ErrorHandler) error {
	return codec.DepEncodeBytes(t.Name(), dest, h)
}

func (t *TokenIdentifier) TopDecodeOrHandleErr(in codec.TopDecodeInput, h codec.ErrorHandler) error {
	if t.buf.api == nil {
		return unbound(h, "TokenIdentifier")
	}
	*t = TokenIdentifierFromBytes(t.buf.api, in.Bytes())
	return nil
}

func (t *TokenIdentifier) DepDecodeOrHandleErr(in codec.NestedDecodeInput, h codec.ErrorHandler) error {
	if t.buf.api == nil {
		return unbound(h, "TokenIdentifier")
	}
	name, err := codec.DepDecodeBytes(in, h)
	if err != nil {
		return err
	}
	*t = TokenIdentifierFromBytes(t.buf.api, name)
	return nil
}
