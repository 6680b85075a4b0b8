// Package types provides the managed value wrappers used by contract logic:
// buffers, unsigned big integers, addresses, token identifiers and payments.
//
// A wrapper carries the backend that allocated its handle, so a handle is
// never paired with another call context. Copies of a wrapper share the
// handle; mutating methods are visible through every copy. Use Clone for an
// independent value.
//
// Every wrapper implements both codec shapes. Decoding into a wrapper
// requires one bound to a backend, created with its constructor:
//
//	amount := types.NewBigUint(b)
//	err := codec.TopDecodeFromBytes(raw, &amount)
package types
