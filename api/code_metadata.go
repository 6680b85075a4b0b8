package api

import (
	"encoding/binary"
	"strings"

	"github.com/dharitri/dharitri-wasm-go/codec"
	"github.com/dharitri/dharitri-wasm-go/errors"
)

// CodeMetadata holds the deploy flags of a contract.
type CodeMetadata uint16

const (
	CodeMetadataDefault     CodeMetadata = 0
	CodeMetadataUpgradeable CodeMetadata = 0x0100
	CodeMetadataReadable    CodeMetadata = 0x0400
	CodeMetadataPayable     CodeMetadata = 0x0002
	CodeMetadataPayableBySC CodeMetadata = 0x0004
)

// CodeMetadataLen is the wire length in both encodings.
const CodeMetadataLen = 2

func (m CodeMetadata) IsUpgradeable() bool { return m&CodeMetadataUpgradeable != 0 }
func (m CodeMetadata) IsReadable() bool    { return m&CodeMetadataReadable != 0 }
func (m CodeMetadata) IsPayable() bool     { return m&CodeMetadataPayable != 0 }
func (m CodeMetadata) IsPayableBySC() bool { return m&CodeMetadataPayableBySC != 0 }

// Bytes returns the 2-byte big-endian form.
func (m CodeMetadata) Bytes() []byte {
	return binary.BigEndian.AppendUint16(nil, uint16(m))
}

// CodeMetadataFromBytes parses the 2-byte form.
func CodeMetadataFromBytes(b []byte) (CodeMetadata, error) {
	if len(b) != CodeMetadataLen {
		return 0, errors.InvalidData(errors.PhaseDecode, []string{"code_metadata"}, "code metadata must be 2 bytes")
	}
	return CodeMetadata(binary.BigEndian.Uint16(b)), nil
}

func (m CodeMetadata) String() string {
	var flags []string
	if m.IsUpgradeable() {
		flags = append(flags, "upgradeable")
	}
	if m.IsReadable() {
		flags = append(flags, "readable")
	}
	if m.IsPayable() {
		flags = append(flags, "payable")
	}
	if m.IsPayableBySC() {
		flags = append(flags, "payable-by-sc")
	}
	if len(flags) == 0 {
		return "default"
	}
	return strings.Join(flags, "|")
}

func (m CodeMetadata) TopEncodeOrHandleErr(out codec.TopEncodeOutput, _ codec.ErrorHandler) error {
	out.SetSlice(m.Bytes())
	return nil
}

func (m CodeMetadata) DepEncodeOrHandleErr(dest codec.NestedEncodeOutput, _ codec.ErrorHandler) error {
	dest.Write(m.Bytes())
	return nil
}

func (m *CodeMetadata) TopDecodeOrHandleErr(in codec.TopDecodeInput, h codec.ErrorHandler) error {
	b := in.Bytes()
	switch {
	case len(b) < CodeMetadataLen:
		return h.HandleError(errors.InputTooShort(errors.PhaseDecode, []string{"code_metadata"}))
	case len(b) > CodeMetadataLen:
		return h.HandleError(errors.InputTooLong(errors.PhaseDecode, []string{"code_metadata"}))
	}
	*m = CodeMetadata(binary.BigEndian.Uint16(b))
	return nil
}

func (m *CodeMetadata) DepDecodeOrHandleErr(in codec.NestedDecodeInput, h codec.ErrorHandler) error {
	b, ok := in.ReadSlice(CodeMetadataLen)
	if !ok {
		return h.HandleError(errors.InputTooShort(errors.PhaseDecode, []string{"code_metadata"}))
	}
	*m = CodeMetadata(binary.BigEndian.Uint16(b))
	return nil
}
