//go:build wasip1 || tinygo.wasm

package hostapi

import "unsafe"

//go:wasmimport env mBufferNew
func mBufferNew() int32

//go:wasmimport env mBufferNewFromBytes
func mBufferNewFromBytes(data unsafe.Pointer, length int32) int32

//go:wasmimport env mBufferGetLength
func mBufferGetLength(h int32) int32

//go:wasmimport env mBufferGetBytes
func mBufferGetBytes(h int32, result unsafe.Pointer) int32

//go:wasmimport env mBufferSetBytes
func mBufferSetBytes(h int32, data unsafe.Pointer, length int32) int32

//go:wasmimport env mBufferAppend
func mBufferAppend(acc, data int32) int32

//go:wasmimport env mBufferAppendBytes
func mBufferAppendBytes(acc int32, data unsafe.Pointer, length int32) int32

//go:wasmimport env mBufferCopyByteSlice
func mBufferCopyByteSlice(src, start, length, dest int32) int32

//go:wasmimport env mBufferEq
func mBufferEq(a, b int32) int32

//go:wasmimport env mBufferFinish
func mBufferFinish(h int32) int32

//go:wasmimport env mBufferGetArgument
func mBufferGetArgument(id, dest int32) int32

//go:wasmimport env mBufferStorageStore
func mBufferStorageStore(key, value int32) int32

//go:wasmimport env mBufferStorageLoad
func mBufferStorageLoad(key, dest int32) int32

//go:wasmimport env bigIntNew
func bigIntNew(v int64) int32

//go:wasmimport env bigIntSetUnsignedBytes
func bigIntSetUnsignedBytes(dest int32, data unsafe.Pointer, length int32)

//go:wasmimport env bigIntUnsignedByteLength
func bigIntUnsignedByteLength(h int32) int32

//go:wasmimport env bigIntGetUnsignedBytes
func bigIntGetUnsignedBytes(h int32, result unsafe.Pointer) int32

//go:wasmimport env bigIntSetInt64
func bigIntSetInt64(dest int32, v int64)

//go:wasmimport env bigIntIsInt64
func bigIntIsInt64(h int32) int32

//go:wasmimport env bigIntGetInt64
func bigIntGetInt64(h int32) int64

//go:wasmimport env bigIntAdd
func bigIntAdd(dest, x, y int32)

//go:wasmimport env bigIntSub
func bigIntSub(dest, x, y int32)

//go:wasmimport env bigIntMul
func bigIntMul(dest, x, y int32)

//go:wasmimport env bigIntTDiv
func bigIntTDiv(dest, x, y int32)

//go:wasmimport env bigIntTMod
func bigIntTMod(dest, x, y int32)

//go:wasmimport env bigIntCmp
func bigIntCmp(x, y int32) int32

//go:wasmimport env bigIntSign
func bigIntSign(h int32) int32

//go:wasmimport env validateTokenIdentifier
func validateTokenIdentifier(h int32) int32

//go:wasmimport env getGasLeft
func getGasLeft() int64

//go:wasmimport env managedSCAddress
func managedSCAddress(dest int32)

//go:wasmimport env managedCaller
func managedCaller(dest int32)

//go:wasmimport env bigIntGetExternalBalance
func bigIntGetExternalBalance(address unsafe.Pointer, dest int32)

//go:wasmimport env getBlockNonce
func getBlockNonce() int64

//go:wasmimport env getBlockTimestamp
func getBlockTimestamp() int64

//go:wasmimport env checkNoPayment
func checkNoPayment()

//go:wasmimport env bigIntGetCallValue
func bigIntGetCallValue(dest int32)

//go:wasmimport env bigIntGetDCTCallValue
func bigIntGetDCTCallValue(dest int32)

//go:wasmimport env bigIntGetDCTCallValueByIndex
func bigIntGetDCTCallValueByIndex(dest, index int32)

//go:wasmimport env managedGetDCTTokenName
func managedGetDCTTokenName(dest int32)

//go:wasmimport env managedGetDCTTokenNameByIndex
func managedGetDCTTokenNameByIndex(dest, index int32)

//go:wasmimport env getDCTTokenNonce
func getDCTTokenNonce() int64

//go:wasmimport env getDCTTokenNonceByIndex
func getDCTTokenNonceByIndex(index int32) int64

//go:wasmimport env getDCTTokenType
func getDCTTokenType() int32

//go:wasmimport env getDCTTokenTypeByIndex
func getDCTTokenTypeByIndex(index int32) int32

//go:wasmimport env getNumDCTTransfers
func getNumDCTTransfers() int32

//go:wasmimport env getNumArguments
func getNumArguments() int32

//go:wasmimport env signalError
func signalError(message unsafe.Pointer, length int32)

//go:wasmimport env managedCreateContract
func managedCreateContract(gas int64, value, code, codeMetadata, arguments, resultAddress, result int32) int32

//go:wasmimport env managedDeployFromSourceContract
func managedDeployFromSourceContract(gas int64, value, source, codeMetadata, arguments, resultAddress, result int32) int32

//go:wasmimport env managedUpgradeContract
func managedUpgradeContract(dest int32, gas int64, value, code, codeMetadata, arguments, result int32)

//go:wasmimport env managedUpgradeFromSourceContract
func managedUpgradeFromSourceContract(dest int32, gas int64, value, source, codeMetadata, arguments, result int32)

//go:wasmimport env managedExecuteOnDestContext
func managedExecuteOnDestContext(gas int64, address, value, function, arguments, result int32) int32

func ptr(b []byte) unsafe.Pointer {
	return unsafe.Pointer(unsafe.SliceData(b))
}

// WasmImports is the Imports of a contract compiled to wasm. The VM traps
// instead of returning errors, so every error result is nil.
type WasmImports struct{}

var _ Imports = WasmImports{}

func (WasmImports) MBufferNew() int32 { return mBufferNew() }

func (WasmImports) MBufferNewFromBytes(data []byte) int32 {
	return mBufferNewFromBytes(ptr(data), int32(len(data)))
}

func (WasmImports) MBufferGetLength(h int32) int32 { return mBufferGetLength(h) }

func (WasmImports) MBufferGetBytes(h int32) []byte {
	out := make([]byte, mBufferGetLength(h))
	if len(out) > 0 {
		mBufferGetBytes(h, ptr(out))
	}
	return out
}

func (WasmImports) MBufferSetBytes(h int32, data []byte) int32 {
	return mBufferSetBytes(h, ptr(data), int32(len(data)))
}

func (WasmImports) MBufferAppend(acc, data int32) int32 { return mBufferAppend(acc, data) }

func (WasmImports) MBufferAppendBytes(acc int32, data []byte) int32 {
	return mBufferAppendBytes(acc, ptr(data), int32(len(data)))
}

func (WasmImports) MBufferCopyByteSlice(src, start, length, dest int32) int32 {
	return mBufferCopyByteSlice(src, start, length, dest)
}

func (WasmImports) MBufferEq(a, b int32) int32  { return mBufferEq(a, b) }
func (WasmImports) MBufferFinish(h int32) int32 { return mBufferFinish(h) }

func (WasmImports) MBufferGetArgument(id, dest int32) error {
	mBufferGetArgument(id, dest)
	return nil
}

func (WasmImports) MBufferStorageStore(key, value int32) int32 { return mBufferStorageStore(key, value) }
func (WasmImports) MBufferStorageLoad(key, dest int32) int32   { return mBufferStorageLoad(key, dest) }

func (WasmImports) BigIntNew(v int64) int32 { return bigIntNew(v) }

func (WasmImports) BigIntSetUnsignedBytes(dest int32, data []byte) {
	bigIntSetUnsignedBytes(dest, ptr(data), int32(len(data)))
}

func (WasmImports) BigIntGetUnsignedBytes(h int32) []byte {
	out := make([]byte, bigIntUnsignedByteLength(h))
	if len(out) > 0 {
		bigIntGetUnsignedBytes(h, ptr(out))
	}
	return out
}

func (WasmImports) BigIntSetInt64(dest int32, v int64) { bigIntSetInt64(dest, v) }
func (WasmImports) BigIntIsInt64(h int32) int32        { return bigIntIsInt64(h) }
func (WasmImports) BigIntGetInt64(h int32) int64       { return bigIntGetInt64(h) }
func (WasmImports) BigIntAdd(dest, x, y int32)         { bigIntAdd(dest, x, y) }
func (WasmImports) BigIntSub(dest, x, y int32)         { bigIntSub(dest, x, y) }
func (WasmImports) BigIntMul(dest, x, y int32)         { bigIntMul(dest, x, y) }

func (WasmImports) BigIntTDiv(dest, x, y int32) error {
	bigIntTDiv(dest, x, y)
	return nil
}

func (WasmImports) BigIntTMod(dest, x, y int32) error {
	bigIntTMod(dest, x, y)
	return nil
}

func (WasmImports) BigIntCmp(x, y int32) int32 { return bigIntCmp(x, y) }
func (WasmImports) BigIntSign(h int32) int32   { return bigIntSign(h) }

func (WasmImports) ValidateTokenIdentifier(h int32) int32 { return validateTokenIdentifier(h) }

func (WasmImports) GetGasLeft() int64           { return getGasLeft() }
func (WasmImports) ManagedSCAddress(dest int32) { managedSCAddress(dest) }
func (WasmImports) ManagedCaller(dest int32)    { managedCaller(dest) }

func (WasmImports) BigIntGetExternalBalance(address []byte, dest int32) {
	bigIntGetExternalBalance(ptr(address), dest)
}

func (WasmImports) GetBlockNonce() int64     { return getBlockNonce() }
func (WasmImports) GetBlockTimestamp() int64 { return getBlockTimestamp() }

func (WasmImports) CheckNoPayment() error {
	checkNoPayment()
	return nil
}

func (WasmImports) BigIntGetCallValue(dest int32) { bigIntGetCallValue(dest) }

func (WasmImports) BigIntGetDCTCallValue(dest int32) error {
	bigIntGetDCTCallValue(dest)
	return nil
}

func (WasmImports) BigIntGetDCTCallValueByIndex(dest, index int32) error {
	bigIntGetDCTCallValueByIndex(dest, index)
	return nil
}

func (WasmImports) ManagedGetDCTTokenName(dest int32) error {
	managedGetDCTTokenName(dest)
	return nil
}

func (WasmImports) ManagedGetDCTTokenNameByIndex(dest, index int32) error {
	managedGetDCTTokenNameByIndex(dest, index)
	return nil
}

func (WasmImports) GetDCTTokenNonce() (int64, error) { return getDCTTokenNonce(), nil }

func (WasmImports) GetDCTTokenNonceByIndex(index int32) (int64, error) {
	return getDCTTokenNonceByIndex(index), nil
}

func (WasmImports) GetDCTTokenType() (int32, error) { return getDCTTokenType(), nil }

func (WasmImports) GetDCTTokenTypeByIndex(index int32) (int32, error) {
	return getDCTTokenTypeByIndex(index), nil
}

func (WasmImports) GetNumDCTTransfers() int32 { return getNumDCTTransfers() }
func (WasmImports) GetNumArguments() int32    { return getNumArguments() }

func (WasmImports) SignalError(message []byte) error {
	signalError(ptr(message), int32(len(message)))
	return nil
}

func (WasmImports) ManagedCreateContract(gas int64, value, code, codeMetadata, arguments, resultAddress, result int32) error {
	managedCreateContract(gas, value, code, codeMetadata, arguments, resultAddress, result)
	return nil
}

func (WasmImports) ManagedDeployFromSourceContract(gas int64, value, source, codeMetadata, arguments, resultAddress, result int32) error {
	managedDeployFromSourceContract(gas, value, source, codeMetadata, arguments, resultAddress, result)
	return nil
}

func (WasmImports) ManagedUpgradeContract(dest int32, gas int64, value, code, codeMetadata, arguments, result int32) error {
	managedUpgradeContract(dest, gas, value, code, codeMetadata, arguments, result)
	return nil
}

func (WasmImports) ManagedUpgradeFromSourceContract(dest int32, gas int64, value, source, codeMetadata, arguments, result int32) error {
	managedUpgradeFromSourceContract(dest, gas, value, source, codeMetadata, arguments, result)
	return nil
}

func (WasmImports) ManagedExecuteOnDestContext(gas int64, address, value, function, arguments, result int32) error {
	managedExecuteOnDestContext(gas, address, value, function, arguments, result)
	return nil
}
