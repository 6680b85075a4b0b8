package codec

import (
	"github.com/dharitri/dharitri-wasm-go/errors"
)

// Option is a value that may be absent. It is a single item, unlike
// OptionalValue.
type Option[T any] struct {
	Value T
	Some  bool
}

// Some wraps a present value.
func Some[T any](v T) Option[T] {
	return Option[T]{Value: v, Some: true}
}

// None returns an absent value.
func None[T any]() Option[T] {
	return Option[T]{}
}

// DepEncodeOrHandleErr writes 00 for None, 01 followed by the nested value
// for Some.
func (o Option[T]) DepEncodeOrHandleErr(dest NestedEncodeOutput, h ErrorHandler) error {
	if !o.Some {
		dest.PushByte(0)
		return nil
	}
	dest.PushByte(1)
	return DepEncodeOrHandleErr(o.Value, dest, h)
}

// TopEncodeOrHandleErr writes an empty payload for None, the nested form
// for Some.
func (o Option[T]) TopEncodeOrHandleErr(out TopEncodeOutput, h ErrorHandler) error {
	if !o.Some {
		out.SetSlice(nil)
		return nil
	}
	var buf Buffer
	if err := o.DepEncodeOrHandleErr(&buf, h); err != nil {
		return err
	}
	out.SetSlice(buf.Bytes())
	return nil
}

// DepDecodeOrHandleErr decodes into o. On None the previous Value is kept,
// so a context-bound Value survives decoding.
func (o *Option[T]) DepDecodeOrHandleErr(in NestedDecodeInput, h ErrorHandler) error {
	tag, ok := in.ReadSlice(1)
	if !ok {
		return h.HandleError(errors.InputTooShort(errors.PhaseDecode, nil))
	}
	switch tag[0] {
	case 0:
		o.Some = false
		return nil
	case 1:
		if err := DepDecodeOrHandleErr(in, &o.Value, h); err != nil {
			return err
		}
		o.Some = true
		return nil
	default:
		return h.HandleError(errors.ValueOutOfRange(errors.PhaseDecode, nil, tag[0]))
	}
}

// TopDecodeOrHandleErr decodes into o.
func (o *Option[T]) TopDecodeOrHandleErr(in TopDecodeInput, h ErrorHandler) error {
	b := in.Bytes()
	if len(b) == 0 {
		o.Some = false
		return nil
	}
	r := NewReader(b)
	if err := o.DepDecodeOrHandleErr(r, h); err != nil {
		return err
	}
	if r.Remaining() != 0 {
		return h.HandleError(errors.InputTooLong(errors.PhaseDecode, nil))
	}
	return nil
}
