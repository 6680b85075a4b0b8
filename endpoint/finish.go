package endpoint

import (
	"github.com/dharitri/dharitri-wasm-go/codec"
	"github.com/dharitri/dharitri-wasm-go/errors"
)

// FinishOutput pushes each encoded item to the call result.
type FinishOutput struct {
	b Backend
}

var _ codec.TopEncodeMultiOutput = FinishOutput{}

// NewFinishOutput writes results through b.
func NewFinishOutput(b Backend) FinishOutput {
	return FinishOutput{b: b}
}

func (o FinishOutput) PushSingleValue(v any, h codec.ErrorHandler) error {
	var buf codec.Buffer
	if err := codec.TopEncodeOrHandleErr(v, &buf, h); err != nil {
		return err
	}
	o.b.Finish(o.b.MBufferNewFromBytes(buf.Bytes()))
	return nil
}

// Finish multi-encodes values into the call result. Multi-values produce one
// result item per element.
func Finish(b Backend, values ...any) error {
	out := NewFinishOutput(b)
	h := codec.Exit(errors.MsgFinishEncode)
	for _, v := range values {
		if err := codec.MultiEncodeOrHandleErr(v, out, h); err != nil {
			return err
		}
	}
	return nil
}
