package types

import (
	"github.com/btcsuite/btcd/btcutil/bech32"

	"github.com/dharitri/dharitri-wasm-go/api"
	"github.com/dharitri/dharitri-wasm-go/codec"
	"github.com/dharitri/dharitri-wasm-go/errors"
)

// AddressLen is the length of every account address.
const AddressLen = 32

// AddressHRP is the bech32 human readable part of account addresses.
const AddressHRP = "moa"

// ManagedAddress is a 32 byte account address held in a managed buffer.
type ManagedAddress struct {
	buf ManagedBuffer
}

// ZeroAddress allocates the all-zero address.
func ZeroAddress(m api.ManagedTypeAPI) ManagedAddress {
	return ManagedAddress{buf: NewManagedBufferFromBytes(m, make([]byte, AddressLen))}
}

// ManagedAddressFromBytes allocates an address. b must be 32 bytes long.
func ManagedAddressFromBytes(m api.ManagedTypeAPI, b []byte) (ManagedAddress, error) {
	if len(b) != AddressLen {
		return ManagedAddress{}, errors.New(errors.PhaseManaged, errors.KindInvalidInput).
			Value(len(b)).
			Detail(errors.MsgInvalidAddressLength).
			Build()
	}
	return ManagedAddress{buf: NewManagedBufferFromBytes(m, b)}, nil
}

// ManagedAddressFromBuffer wraps a buffer that holds an address.
func ManagedAddressFromBuffer(buf ManagedBuffer) ManagedAddress {
	return ManagedAddress{buf: buf}
}

// ManagedAddressFromHandle wraps a buffer handle produced by m.
func ManagedAddressFromHandle(m api.ManagedTypeAPI, h api.BufferHandle) ManagedAddress {
	return ManagedAddress{buf: ManagedBufferFromHandle(m, h)}
}

// NewManagedAddress returns an unallocated address bound to m, ready to be
// decoded into.
func NewManagedAddress(m api.ManagedTypeAPI) ManagedAddress {
	return ManagedAddress{buf: ManagedBuffer{api: m}}
}

func (a ManagedAddress) Handle() api.BufferHandle { return a.buf.handle }
func (a ManagedAddress) Buffer() ManagedBuffer    { return a.buf }

func (a ManagedAddress) Bytes() []byte {
	return a.buf.Bytes()
}

func (a ManagedAddress) IsZero() bool {
	for _, c := range a.Bytes() {
		if c != 0 {
			return false
		}
	}
	return true
}

func (a ManagedAddress) Equal(other ManagedAddress) bool {
	return a.buf.Equal(other.buf)
}

// Bech32 returns the address in its moa1... form.
func (a ManagedAddress) Bech32() (string, error) {
	return EncodeBech32(a.Bytes())
}

// EncodeBech32 encodes raw address bytes with AddressHRP.
func EncodeBech32(addr []byte) (string, error) {
	conv, err := bech32.ConvertBits(addr, 8, 5, true)
	if err != nil {
		return "", err
	}
	return bech32.Encode(AddressHRP, conv)
}

// DecodeBech32 parses a bech32 address with AddressHRP into its raw bytes.
func DecodeBech32(s string) ([]byte, error) {
	hrp, data, err := bech32.Decode(s)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseDecode, errors.KindInvalidData, err, "bech32 address")
	}
	if hrp != AddressHRP {
		return nil, errors.InvalidData(errors.PhaseDecode, nil, "unexpected bech32 prefix "+hrp)
	}
	addr, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseDecode, errors.KindInvalidData, err, "bech32 address")
	}
	if len(addr) != AddressLen {
		return nil, errors.InvalidData(errors.PhaseDecode, nil, errors.MsgInvalidAddressLength)
	}
	return addr, nil
}

func (a ManagedAddress) TopEncodeOrHandleErr(out codec.TopEncodeOutput, _ codec.ErrorHandler) error {
	out.SetSlice(a.Bytes())
	return nil
}

func (a ManagedAddress) DepEncodeOrHandleErr(dest codec.NestedEncodeOutput, _ codec.ErrorHandler) error {
	dest.Write(a.Bytes())
	return nil
}

func (a *ManagedAddress) TopDecodeOrHandleErr(in codec.TopDecodeInput, h codec.ErrorHandler) error {
	if a.buf.api == nil {
		return unbound(h, "ManagedAddress")
	}
	b := in.Bytes()
	switch {
	case len(b) < AddressLen:
		return h.HandleError(errors.InputTooShort(errors.PhaseDecode, []string{"address"}))
	case len(b) > AddressLen:
		return h.HandleError(errors.InputTooLong(errors.PhaseDecode, []string{"address"}))
	}
	a.buf.handle = a.buf.api.MBufferNewFromBytes(b)
	return nil
}

func (a *ManagedAddress) DepDecodeOrHandleErr(in codec.NestedDecodeInput, h codec.ErrorHandler) error {
	if a.buf.api == nil {
		return unbound(h, "ManagedAddress")
	}
	b, ok := in.ReadSlice(AddressLen)
	if !ok {
		return h.HandleError(errors.InputTooShort(errors.PhaseDecode, []string{"address"}))
	}
	a.buf.handle = a.buf.api.MBufferNewFromBytes(b)
	return nil
}
