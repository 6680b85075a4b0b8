package api

// BufferHandle references a managed byte buffer.
type BufferHandle int32

// BigIntHandle references a managed arbitrary precision integer.
type BigIntHandle int32

// InvalidHandle is never returned by an allocator.
const InvalidHandle = 0

// Valid reports whether h can reference a value.
func (h BufferHandle) Valid() bool { return h != InvalidHandle }

// Valid reports whether h can reference a value.
func (h BigIntHandle) Valid() bool { return h != InvalidHandle }
