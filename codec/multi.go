package codec

import (
	"github.com/dharitri/dharitri-wasm-go/errors"
)

// MultiEncodeOrHandleErr pushes v into out. Multi-values expand into their
// items; any other value becomes exactly one item.
func MultiEncodeOrHandleErr(v any, out TopEncodeMultiOutput, h ErrorHandler) error {
	if m, ok := v.(TopEncodeMulti); ok {
		return m.MultiEncodeOrHandleErr(out, h)
	}
	return out.PushSingleValue(v, h)
}

// MultiDecodeOrHandleErr consumes the items dst needs from in.
func MultiDecodeOrHandleErr(in TopDecodeMultiInput, dst any, h ErrorHandler) error {
	if m, ok := dst.(TopDecodeMulti); ok {
		return m.MultiDecodeOrHandleErr(in, h)
	}
	next, ok := in.NextValueInput()
	if !ok {
		return h.HandleError(errors.NotEnoughArguments(errors.PhaseDecode))
	}
	return TopDecodeOrHandleErr(next, dst, h)
}

// MultiValue2 is two consecutive top-level items.
type MultiValue2[A, B any] struct {
	First  A
	Second B
}

// MultiEncodeOrHandleErr pushes both items.
func (m MultiValue2[A, B]) MultiEncodeOrHandleErr(out TopEncodeMultiOutput, h ErrorHandler) error {
	if err := MultiEncodeOrHandleErr(m.First, out, h); err != nil {
		return err
	}
	return MultiEncodeOrHandleErr(m.Second, out, h)
}

// MultiDecodeOrHandleErr consumes both items.
func (m *MultiValue2[A, B]) MultiDecodeOrHandleErr(in TopDecodeMultiInput, h ErrorHandler) error {
	if err := MultiDecodeOrHandleErr(in, &m.First, h); err != nil {
		return err
	}
	return MultiDecodeOrHandleErr(in, &m.Second, h)
}

// MultiValue3 is three consecutive top-level items, such as a transfer
// expressed as token identifier, nonce and amount.
type MultiValue3[A, B, C any] struct {
	First  A
	Second B
	Third  C
}

// MultiEncodeOrHandleErr pushes all three items.
func (m MultiValue3[A, B, C]) MultiEncodeOrHandleErr(out TopEncodeMultiOutput, h ErrorHandler) error {
	if err := MultiEncodeOrHandleErr(m.First, out, h); err != nil {
		return err
	}
	if err := MultiEncodeOrHandleErr(m.Second, out, h); err != nil {
		return err
	}
	return MultiEncodeOrHandleErr(m.Third, out, h)
}

// MultiDecodeOrHandleErr consumes all three items.
func (m *MultiValue3[A, B, C]) MultiDecodeOrHandleErr(in TopDecodeMultiInput, h ErrorHandler) error {
	if err := MultiDecodeOrHandleErr(in, &m.First, h); err != nil {
		return err
	}
	if err := MultiDecodeOrHandleErr(in, &m.Second, h); err != nil {
		return err
	}
	return MultiDecodeOrHandleErr(in, &m.Third, h)
}

// OptionalValue is zero or one trailing item. It must be the last value of
// an argument list.
type OptionalValue[T any] struct {
	Value   T
	Present bool
}

// OptionalSome returns a present optional value.
func OptionalSome[T any](v T) OptionalValue[T] {
	return OptionalValue[T]{Value: v, Present: true}
}

// MultiEncodeOrHandleErr pushes the value if present, nothing otherwise.
func (o OptionalValue[T]) MultiEncodeOrHandleErr(out TopEncodeMultiOutput, h ErrorHandler) error {
	if !o.Present {
		return nil
	}
	return MultiEncodeOrHandleErr(o.Value, out, h)
}

// MultiDecodeOrHandleErr consumes an item if one remains.
func (o *OptionalValue[T]) MultiDecodeOrHandleErr(in TopDecodeMultiInput, h ErrorHandler) error {
	if !in.HasNext() {
		o.Present = false
		return nil
	}
	if err := MultiDecodeOrHandleErr(in, &o.Value, h); err != nil {
		return err
	}
	o.Present = true
	return nil
}

// MultiValueVec is a variable number of items consuming the rest of an
// argument list.
type MultiValueVec[T any] struct {
	Items []T
	// New creates the destination for each decoded item. Required for
	// context-bound item types; the zero value of T is used when nil.
	New func() T
}

// MultiValueOf wraps items for encoding.
func MultiValueOf[T any](items ...T) MultiValueVec[T] {
	return MultiValueVec[T]{Items: items}
}

// Len returns the number of items.
func (m MultiValueVec[T]) Len() int {
	return len(m.Items)
}

// MultiEncodeOrHandleErr pushes every item in order.
func (m MultiValueVec[T]) MultiEncodeOrHandleErr(out TopEncodeMultiOutput, h ErrorHandler) error {
	for _, item := range m.Items {
		if err := MultiEncodeOrHandleErr(item, out, h); err != nil {
			return err
		}
	}
	return nil
}

// MultiDecodeOrHandleErr consumes all remaining items.
func (m *MultiValueVec[T]) MultiDecodeOrHandleErr(in TopDecodeMultiInput, h ErrorHandler) error {
	m.Items = m.Items[:0]
	for in.HasNext() {
		var item T
		if m.New != nil {
			item = m.New()
		}
		if err := MultiDecodeOrHandleErr(in, &item, h); err != nil {
			return err
		}
		m.Items = append(m.Items, item)
	}
	return nil
}
