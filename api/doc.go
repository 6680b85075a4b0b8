// Package api defines the capability boundary between contract logic and the
// VM: typed handles into the managed value arena and the interfaces a backend
// implements.
//
// Two backends implement Backend: mock.TxContext, an in-process simulation,
// and hostapi.Backend, which forwards every call to the VM import surface.
// Contract logic written against Backend behaves identically on both.
//
// Handles are scoped to the call context that allocated them. BufferHandle and
// BigIntHandle are distinct types, so passing a buffer where an integer is
// expected does not compile.
package api
