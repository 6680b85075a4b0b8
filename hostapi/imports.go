package hostapi

// ImportsVersion identifies the import surface described by Imports.
const ImportsVersion = "v1.3"

// Imports is the raw VM import surface. Handles are int32, memory transfers
// are byte slices, and a returned error is a host trap.
//
// Boolean results follow the VM: MBufferEq and BigIntIsInt64 return 1 for
// true, MBufferCopyByteSlice returns 0 on success and 1 when out of range.
type Imports interface {
	MBufferNew() int32
	MBufferNewFromBytes(data []byte) int32
	MBufferGetLength(h int32) int32
	MBufferGetBytes(h int32) []byte
	MBufferSetBytes(h int32, data []byte) int32
	MBufferAppend(acc, data int32) int32
	MBufferAppendBytes(acc int32, data []byte) int32
	MBufferCopyByteSlice(src, start, length, dest int32) int32
	MBufferEq(a, b int32) int32
	MBufferFinish(h int32) int32
	MBufferGetArgument(id, dest int32) error
	MBufferStorageStore(key, value int32) int32
	MBufferStorageLoad(key, dest int32) int32

	BigIntNew(v int64) int32
	BigIntSetUnsignedBytes(dest int32, data []byte)
	BigIntGetUnsignedBytes(h int32) []byte
	BigIntSetInt64(dest int32, v int64)
	BigIntIsInt64(h int32) int32
	BigIntGetInt64(h int32) int64
	BigIntAdd(dest, x, y int32)
	BigIntSub(dest, x, y int32)
	BigIntMul(dest, x, y int32)
	BigIntTDiv(dest, x, y int32) error
	BigIntTMod(dest, x, y int32) error
	BigIntCmp(x, y int32) int32
	BigIntSign(h int32) int32

	ValidateTokenIdentifier(h int32) int32

	GetGasLeft() int64
	ManagedSCAddress(dest int32)
	ManagedCaller(dest int32)
	BigIntGetExternalBalance(address []byte, dest int32)
	GetBlockNonce() int64
	GetBlockTimestamp() int64

	CheckNoPayment() error
	BigIntGetCallValue(dest int32)
	BigIntGetDCTCallValue(dest int32) error
	BigIntGetDCTCallValueByIndex(dest, index int32) error
	ManagedGetDCTTokenName(dest int32) error
	ManagedGetDCTTokenNameByIndex(dest, index int32) error
	GetDCTTokenNonce() (int64, error)
	GetDCTTokenNonceByIndex(index int32) (int64, error)
	GetDCTTokenType() (int32, error)
	GetDCTTokenTypeByIndex(index int32) (int32, error)
	GetNumDCTTransfers() int32

	GetNumArguments() int32
	SignalError(message []byte) error

	ManagedCreateContract(gas int64, value, code, codeMetadata, arguments, resultAddress, result int32) error
	ManagedDeployFromSourceContract(gas int64, value, source, codeMetadata, arguments, resultAddress, result int32) error
	ManagedUpgradeContract(dest int32, gas int64, value, code, codeMetadata, arguments, result int32) error
	ManagedUpgradeFromSourceContract(dest int32, gas int64, value, source, codeMetadata, arguments, result int32) error
	ManagedExecuteOnDestContext(gas int64, address, value, function, arguments, result int32) error
}
