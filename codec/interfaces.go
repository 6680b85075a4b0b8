package codec

// TopEncodeOutput receives a complete top-level payload.
type TopEncodeOutput interface {
	// SetSlice sets the whole payload. It is called exactly once per value.
	SetSlice(b []byte)
}

// NestedEncodeOutput is an append-only stream of nested encodings.
type NestedEncodeOutput interface {
	Write(b []byte)
	PushByte(b byte)
}

// TopDecodeInput provides a complete top-level payload.
type TopDecodeInput interface {
	Bytes() []byte
}

// NestedDecodeInput is a stream consumed by nested decoders.
type NestedDecodeInput interface {
	// Remaining returns the number of unread bytes.
	Remaining() int

	// ReadSlice returns the next n bytes and advances past them.
	// Returns false if fewer than n bytes remain; nothing is consumed then.
	ReadSlice(n int) ([]byte, bool)
}

// TopEncoder is implemented by values with a custom top-level encoding.
type TopEncoder interface {
	TopEncodeOrHandleErr(out TopEncodeOutput, h ErrorHandler) error
}

// NestedEncoder is implemented by values with a custom nested encoding.
type NestedEncoder interface {
	DepEncodeOrHandleErr(dest NestedEncodeOutput, h ErrorHandler) error
}

// TopDecoder is implemented by pointers to values with a custom top-level decoding.
type TopDecoder interface {
	TopDecodeOrHandleErr(in TopDecodeInput, h ErrorHandler) error
}

// NestedDecoder is implemented by pointers to values with a custom nested decoding.
type NestedDecoder interface {
	DepDecodeOrHandleErr(in NestedDecodeInput, h ErrorHandler) error
}

// TopEncodeMultiOutput collects successive top-level items.
type TopEncodeMultiOutput interface {
	// PushSingleValue top-encodes v as the next item.
	PushSingleValue(v any, h ErrorHandler) error
}

// TopEncodeMulti is implemented by values expanding into zero or more
// top-level items.
type TopEncodeMulti interface {
	MultiEncodeOrHandleErr(out TopEncodeMultiOutput, h ErrorHandler) error
}

// TopDecodeMultiInput yields successive top-level items.
type TopDecodeMultiInput interface {
	HasNext() bool
	NextValueInput() (TopDecodeInput, bool)
}

// TopDecodeMulti is implemented by pointers to values consuming zero or more
// top-level items.
type TopDecodeMulti interface {
	MultiDecodeOrHandleErr(in TopDecodeMultiInput, h ErrorHandler) error
}
