// Package codec implements the contract call wire format.
//
// Every codable value has two encoding shapes:
//
//	Top-level  the value owns the whole payload (a call argument, a result,
//	           a stored value). No framing: the payload ends where the value
//	           ends, so numbers drop leading zero bytes and byte strings are
//	           written raw.
//	Nested     the value is embedded in a larger stream and must delimit
//	           itself: numbers are fixed width, byte strings carry a 4-byte
//	           big-endian length prefix.
//
// All integers are big-endian.
//
//	Type        Top-level                     Nested
//	─────────────────────────────────────────────────────────────────
//	uintN       minimal bytes, 0 = empty      N/8 bytes
//	intN        minimal two's complement      N/8 bytes
//	int/uint    as int32/uint32               4 bytes
//	bool        true = 01, false = empty      1 byte
//	[]byte      raw bytes                     u32 length + bytes
//	string      raw bytes                     u32 length + bytes
//	Option[T]   empty | 01 + nested T         00 | 01 + nested T
//
// # Error Handling
//
// Codec functions take an ErrorHandler and call it at every failure site.
// The handler decides what the failure becomes:
//
//	codec.DefaultErrorHandler{}          returns the structured *errors.Error
//	codec.ExitErrorHandler{Prefix: "…"}  returns an *errors.Abort
//
// The same encode/decode logic therefore serves a caller that wants to
// recover (decoding an optional stored value) and an entry point that must
// abort the call on malformed input.
//
// # Multi-Values
//
// A value may expand into zero, one or many top-level items. MultiValue2,
// MultiValue3, OptionalValue and MultiValueVec implement TopEncodeMulti and
// TopDecodeMulti; plain values are exactly one item. Outgoing argument lists
// are built by pushing values into a TopEncodeMultiOutput.
//
// # Managed Types
//
// Types that hold handles into a call context implement the encoder and
// decoder interfaces themselves. Decoding into such a value requires a value
// already bound to a context (created with its constructor), because the
// decoder allocates through it.
package codec
