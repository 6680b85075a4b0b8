package codec

import (
	"github.com/dharitri/dharitri-wasm-go/errors"
)

// TopEncodeToBytes returns the top-level encoding of v.
func TopEncodeToBytes(v any) ([]byte, error) {
	var buf Buffer
	if err := TopEncodeOrHandleErr(v, &buf, DefaultErrorHandler{}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// TopDecodeFromBytes decodes a top-level payload into dst.
func TopDecodeFromBytes(b []byte, dst any) error {
	return TopDecodeOrHandleErr(RawInput(b), dst, DefaultErrorHandler{})
}

// DepEncodeToBytes returns the nested encoding of v.
func DepEncodeToBytes(v any) ([]byte, error) {
	var buf Buffer
	if err := DepEncodeOrHandleErr(v, &buf, DefaultErrorHandler{}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DepDecodeFromBytes decodes one nested value spanning all of b into dst.
func DepDecodeFromBytes(b []byte, dst any) error {
	h := DefaultErrorHandler{}
	r := NewReader(b)
	if err := DepDecodeOrHandleErr(r, dst, h); err != nil {
		return err
	}
	if r.Remaining() != 0 {
		return h.HandleError(errors.InputTooLong(errors.PhaseDecode, nil))
	}
	return nil
}

// MultiEncodeToArgs expands values into top-level items.
func MultiEncodeToArgs(h ErrorHandler, values ...any) ([][]byte, error) {
	out := &ArgsOutput{}
	for _, v := range values {
		if err := MultiEncodeOrHandleErr(v, out, h); err != nil {
			return nil, err
		}
	}
	return out.Args, nil
}

// MultiDecodeFromArgs decodes args into dsts, requiring every item to be consumed.
func MultiDecodeFromArgs(args [][]byte, h ErrorHandler, dsts ...any) error {
	in := NewArgsInput(args)
	for _, dst := range dsts {
		if err := MultiDecodeOrHandleErr(in, dst, h); err != nil {
			return err
		}
	}
	if in.HasNext() {
		return h.HandleError(errors.TooManyArguments(errors.PhaseDecode))
	}
	return nil
}
