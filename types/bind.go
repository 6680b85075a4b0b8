package types

import (
	"github.com/dharitri/dharitri-wasm-go/codec"
	"github.com/dharitri/dharitri-wasm-go/errors"
)

func unbound(h codec.ErrorHandler, goType string) error {
	return h.HandleError(errors.New(errors.PhaseDecode, errors.KindInvalidInput).
		GoType(goType).
		Detail("managed value not bound to a backend").
		Build())
}
