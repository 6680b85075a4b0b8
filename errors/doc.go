// Package errors provides structured error types for contract execution.
//
// Two families of errors flow through the module:
//
//   - *Error is a recoverable, structured failure categorized by Phase (where
//     it occurred) and Kind (what went wrong). Codec failures are reported this
//     way when the caller asked for a recoverable outcome.
//   - *Abort is the unrecoverable termination of the current call. It carries
//     a VM return code and the message bytes surfaced to the transaction layer.
//     Aborts are returned, never recovered: every layer passes them upward
//     until the entry dispatcher turns them into a call result or a trap.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseDecode, errors.KindInputTooShort).
//		Path("arg", "amount").
//		GoType("uint64").
//		Detail("expected %d bytes", 8).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.InputTooLong(errors.PhaseDecode, path)
//	abort := errors.NewAbort(errors.ExecutionFailed, errors.MsgTooManyDCTTransfers)
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
