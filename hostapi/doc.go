// Package hostapi is the host-bound backend. Imports describes the VM import
// surface contract code links against; Backend implements api.Backend by
// forwarding every operation to an Imports one to one.
//
// The host performs all validation. Where the VM traps (a call value
// violation, a failed sub-call, signalError) an Imports method returns the
// resulting *errors.Abort and Backend propagates it unchanged, so contract
// logic observes the same aborts as under the simulation backend.
//
// Argument and result lists cross the boundary as a managed buffer holding
// 4-byte big-endian handles, the VM's managed vector layout.
//
// When compiled for wasm (GOOS=wasip1 or tinygo), WasmImports implements
// Imports with //go:wasmimport declarations against the "env" module.
package hostapi
