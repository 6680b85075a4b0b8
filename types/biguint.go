package types

import (
	"math/big"

	"github.com/dharitri/dharitri-wasm-go/api"
	"github.com/dharitri/dharitri-wasm-go/codec"
	"github.com/dharitri/dharitri-wasm-go/errors"
)

// BigUint is an arbitrary precision non-negative integer held in the managed
// arena. Arithmetic allocates a new handle for the result.
type BigUint struct {
	api    api.ManagedTypeAPI
	handle api.BigIntHandle
}

// NewBigUint allocates zero.
func NewBigUint(m api.ManagedTypeAPI) BigUint {
	return BigUint{api: m, handle: m.BigIntNew(0)}
}

// BigUintFromUint64 allocates v.
func BigUintFromUint64(m api.ManagedTypeAPI, v uint64) BigUint {
	if v <= 1<<63-1 {
		return BigUint{api: m, handle: m.BigIntNew(int64(v))}
	}
	return BigUintFromBytes(m, new(big.Int).SetUint64(v).Bytes())
}

// BigUintFromBytes allocates the value of a big-endian magnitude.
func BigUintFromBytes(m api.ManagedTypeAPI, b []byte) BigUint {
	h := m.BigIntNew(0)
	m.BigIntSetUnsignedBytes(h, b)
	return BigUint{api: m, handle: h}
}

// BigUintFromBig allocates the magnitude of v.
func BigUintFromBig(m api.ManagedTypeAPI, v *big.Int) BigUint {
	return BigUintFromBytes(m, v.Bytes())
}

// BigUintFromHandle wraps a handle produced by m.
func BigUintFromHandle(m api.ManagedTypeAPI, h api.BigIntHandle) BigUint {
	return BigUint{api: m, handle: h}
}

func (b BigUint) Handle() api.BigIntHandle { return b.handle }
func (b BigUint) API() api.ManagedTypeAPI   { return b.api }

func (b BigUint) binary(op func(dest, x, y api.BigIntHandle), other BigUint) BigUint {
	dest := b.api.BigIntNew(0)
	op(dest, b.handle, other.handle)
	return BigUint{api: b.api, handle: dest}
}

func (b BigUint) Add(other BigUint) BigUint {
	return b.binary(b.api.BigIntAdd, other)
}

func (b BigUint) Mul(other BigUint) BigUint {
	return b.binary(b.api.BigIntMul, other)
}

// Sub aborts with a user error when other is greater than b.
func (b BigUint) Sub(other BigUint) (BigUint, error) {
	if b.Cmp(other) < 0 {
		return BigUint{}, errors.NewAbort(errors.UserError, errors.MsgBigUintSubNegative)
	}
	return b.binary(b.api.BigIntSub, other), nil
}

func (b BigUint) Div(other BigUint) (BigUint, error) {
	dest := b.api.BigIntNew(0)
	if err := b.api.BigIntTDiv(dest, b.handle, other.handle); err != nil {
		return BigUint{}, err
	}
	return BigUint{api: b.api, handle: dest}, nil
}

func (b BigUint) Mod(other BigUint) (BigUint, error) {
	dest := b.api.BigIntNew(0)
	if err := b.api.BigIntTMod(dest, b.handle, other.handle); err != nil {
		return BigUint{}, err
	}
	return BigUint{api: b.api, handle: dest}, nil
}

func (b BigUint) Cmp(other BigUint) int {
	return b.api.BigIntCmp(b.handle, other.handle)
}

// CmpUint64 compares b with a native value.
func (b BigUint) CmpUint64(v uint64) int {
	return b.Big().Cmp(new(big.Int).SetUint64(v))
}

func (b BigUint) IsZero() bool {
	return b.api.BigIntSign(b.handle) == 0
}

// Uint64 reports false when the value does not fit.
func (b BigUint) Uint64() (uint64, bool) {
	v := b.Big()
	if !v.IsUint64() {
		return 0, false
	}
	return v.Uint64(), true
}

// Bytes returns the big-endian magnitude, empty for zero.
func (b BigUint) Bytes() []byte {
	return b.api.BigIntGetUnsignedBytes(b.handle)
}

// Big returns a copy as a *big.Int.
func (b BigUint) Big() *big.Int {
	return new(big.Int).SetBytes(b.Bytes())
}

func (b BigUint) String() string {
	return b.Big().String()
}

// Clone returns an independent copy.
func (b BigUint) Clone() BigUint {
	return BigUintFromBytes(b.api, b.Bytes())
}

func (b BigUint) TopEncodeOrHandleErr(out codec.TopEncodeOutput, _ codec.ErrorHandler) error {
	out.SetSlice(b.Bytes())
	return nil
}

func (b BigUint) DepEncodeOrHandleErr(dest codec.NestedEncodeOutput, h codec.ErrorHandler) error {
	return codec.DepEncodeBytes(b.Bytes(), dest, h)
}

func (b *BigUint) TopDecodeOrHandleErr(in codec.TopDecodeInput, h codec.ErrorHandler) error {
	if b.api == nil {
		return unbound(h, "BigUint")
	}
	*b = BigUintFromBytes(b.api, in.Bytes())
	return nil
}

func (b *BigUint) DepDecodeOrHandleErr(in codec.NestedDecodeInput, h codec.ErrorHandler) error {
	if b.api == nil {
		return unbound(h, "BigUint")
	}
	data, err := codec.DepDecodeBytes(in, h)
	if err != nil {
		return err
	}
	*b = BigUintFromBytes(b.api, data)
	return nil
}
