package hostapi

import (
	"github.com/dharitri/dharitri-wasm-go/api"
	"github.com/dharitri/dharitri-wasm-go/errors"
)

// Backend implements api.Backend on top of the VM imports.
type Backend struct {
	imports Imports
}

var _ api.Backend = (*Backend)(nil)

// NewBackend creates a backend forwarding to imports.
func NewBackend(imports Imports) *Backend {
	return &Backend{imports: imports}
}

// Imports returns the underlying import surface.
func (b *Backend) Imports() Imports {
	return b.imports
}

func (b *Backend) MBufferNew() api.BufferHandle {
	return api.BufferHandle(b.imports.MBufferNew())
}

func (b *Backend) MBufferNewFromBytes(data []byte) api.BufferHandle {
	return api.BufferHandle(b.imports.MBufferNewFromBytes(data))
}

func (b *Backend) MBufferLen(h api.BufferHandle) int {
	return int(b.imports.MBufferGetLength(int32(h)))
}

func (b *Backend) MBufferGetBytes(h api.BufferHandle) []byte {
	return b.imports.MBufferGetBytes(int32(h))
}

func (b *Backend) MBufferSetBytes(h api.BufferHandle, data []byte) {
	b.imports.MBufferSetBytes(int32(h), data)
}

func (b *Backend) MBufferAppend(dest, src api.BufferHandle) {
	b.imports.MBufferAppend(int32(dest), int32(src))
}

func (b *Backend) MBufferAppendBytes(dest api.BufferHandle, data []byte) {
	b.imports.MBufferAppendBytes(int32(dest), data)
}

func (b *Backend) MBufferCopySlice(src api.BufferHandle, start, length int) (api.BufferHandle, bool) {
	dest := b.imports.MBufferNew()
	if b.imports.MBufferCopyByteSlice(int32(src), int32(start), int32(length), dest) != 0 {
		return api.InvalidHandle, false
	}
	return api.BufferHandle(dest), true
}

func (b *Backend) MBufferEq(x, y api.BufferHandle) bool {
	return b.imports.MBufferEq(int32(x), int32(y)) == 1
}

func (b *Backend) BigIntNew(v int64) api.BigIntHandle {
	return api.BigIntHandle(b.imports.BigIntNew(v))
}

func (b *Backend) BigIntSetUnsignedBytes(dest api.BigIntHandle, data []byte) {
	b.imports.BigIntSetUnsignedBytes(int32(dest), data)
}

func (b *Backend) BigIntGetUnsignedBytes(h api.BigIntHandle) []byte {
	return b.imports.BigIntGetUnsignedBytes(int32(h))
}

func (b *Backend) BigIntSetInt64(dest api.BigIntHandle, v int64) {
	b.imports.BigIntSetInt64(int32(dest), v)
}

func (b *Backend) BigIntIsInt64(h api.BigIntHandle) bool {
	return b.imports.BigIntIsInt64(int32(h)) == 1
}

func (b *Backend) BigIntGetInt64(h api.BigIntHandle) int64 {
	return b.imports.BigIntGetInt64(int32(h))
}

func (b *Backend) BigIntAdd(dest, x, y api.BigIntHandle) {
	b.imports.BigIntAdd(int32(dest), int32(x), int32(y))
}

func (b *Backend) BigIntSub(dest, x, y api.BigIntHandle) {
	b.imports.BigIntSub(int32(dest), int32(x), int32(y))
}

func (b *Backend) BigIntMul(dest, x, y api.BigIntHandle) {
	b.imports.BigIntMul(int32(dest), int32(x), int32(y))
}

func (b *Backend) BigIntTDiv(dest, x, y api.BigIntHandle) error {
	return b.imports.BigIntTDiv(int32(dest), int32(x), int32(y))
}

func (b *Backend) BigIntTMod(dest, x, y api.BigIntHandle) error {
	return b.imports.BigIntTMod(int32(dest), int32(x), int32(y))
}

func (b *Backend) BigIntCmp(x, y api.BigIntHandle) int {
	return int(b.imports.BigIntCmp(int32(x), int32(y)))
}

func (b *Backend) BigIntSign(h api.BigIntHandle) int {
	return int(b.imports.BigIntSign(int32(h)))
}

func (b *Backend) ValidateTokenIdentifier(h api.BufferHandle) bool {
	return b.imports.ValidateTokenIdentifier(int32(h)) == 1
}

func (b *Backend) GetGasLeft() uint64 {
	return uint64(b.imports.GetGasLeft())
}

func (b *Backend) GetSCAddress() api.BufferHandle {
	dest := b.imports.MBufferNew()
	b.imports.ManagedSCAddress(dest)
	return api.BufferHandle(dest)
}

func (b *Backend) GetCaller() api.BufferHandle {
	dest := b.imports.MBufferNew()
	b.imports.ManagedCaller(dest)
	return api.BufferHandle(dest)
}

func (b *Backend) GetBalance(address api.BufferHandle) api.BigIntHandle {
	dest := b.imports.BigIntNew(0)
	b.imports.BigIntGetExternalBalance(b.imports.MBufferGetBytes(int32(address)), dest)
	return api.BigIntHandle(dest)
}

func (b *Backend) GetBlockNonce() uint64 {
	return uint64(b.imports.GetBlockNonce())
}

func (b *Backend) GetBlockTimestamp() uint64 {
	return uint64(b.imports.GetBlockTimestamp())
}

func (b *Backend) CheckNotPayable() error {
	return b.imports.CheckNoPayment()
}

func (b *Backend) MoaxValue() api.BigIntHandle {
	dest := b.imports.BigIntNew(0)
	b.imports.BigIntGetCallValue(dest)
	return api.BigIntHandle(dest)
}

func (b *Backend) DctValue() (api.BigIntHandle, error) {
	dest := b.imports.BigIntNew(0)
	if err := b.imports.BigIntGetDCTCallValue(dest); err != nil {
		return api.InvalidHandle, err
	}
	return api.BigIntHandle(dest), nil
}

func (b *Backend) Token() (api.BufferHandle, error) {
	dest := b.imports.MBufferNew()
	if err := b.imports.ManagedGetDCTTokenName(dest); err != nil {
		return api.InvalidHandle, err
	}
	return api.BufferHandle(dest), nil
}

func (b *Backend) DctTokenNonce() (uint64, error) {
	nonce, err := b.imports.GetDCTTokenNonce()
	return uint64(nonce), err
}

func (b *Backend) DctTokenType() (api.TokenType, error) {
	code, err := b.imports.GetDCTTokenType()
	if err != nil {
		return api.Invalid, err
	}
	return api.TokenTypeFromCode(code), nil
}

func (b *Backend) DctNumTransfers() int {
	return int(b.imports.GetNumDCTTransfers())
}

func (b *Backend) DctValueByIndex(index int) (api.BigIntHandle, error) {
	dest := b.imports.BigIntNew(0)
	if err := b.imports.BigIntGetDCTCallValueByIndex(dest, int32(index)); err != nil {
		return api.InvalidHandle, err
	}
	return api.BigIntHandle(dest), nil
}

func (b *Backend) TokenByIndex(index int) (api.BufferHandle, error) {
	dest := b.imports.MBufferNew()
	if err := b.imports.ManagedGetDCTTokenNameByIndex(dest, int32(index)); err != nil {
		return api.InvalidHandle, err
	}
	return api.BufferHandle(dest), nil
}

func (b *Backend) DctTokenNonceByIndex(index int) (uint64, error) {
	nonce, err := b.imports.GetDCTTokenNonceByIndex(int32(index))
	return uint64(nonce), err
}

func (b *Backend) DctTokenTypeByIndex(index int) (api.TokenType, error) {
	code, err := b.imports.GetDCTTokenTypeByIndex(int32(index))
	if err != nil {
		return api.Invalid, err
	}
	return api.TokenTypeFromCode(code), nil
}

func (b *Backend) packArgs(args []api.BufferHandle) int32 {
	hs := make([]int32, len(args))
	for i, h := range args {
		hs[i] = int32(h)
	}
	return b.imports.MBufferNewFromBytes(PackHandles(hs))
}

func (b *Backend) unpackResults(result int32) ([]api.BufferHandle, error) {
	hs, err := UnpackHandles(b.imports.MBufferGetBytes(result))
	if err != nil {
		return nil, err
	}
	out := make([]api.BufferHandle, len(hs))
	for i, h := range hs {
		out[i] = api.BufferHandle(h)
	}
	return out, nil
}

func (b *Backend) metadata(meta api.CodeMetadata) int32 {
	return b.imports.MBufferNewFromBytes(meta.Bytes())
}

func (b *Backend) DeployContract(gas uint64, value api.BigIntHandle, code api.BufferHandle, meta api.CodeMetadata, args []api.BufferHandle) (api.BufferHandle, []api.BufferHandle, error) {
	addr, result := b.imports.MBufferNew(), b.imports.MBufferNew()
	err := b.imports.ManagedCreateContract(int64(gas), int32(value), int32(code), b.metadata(meta), b.packArgs(args), addr, result)
	if err != nil {
		return api.InvalidHandle, nil, err
	}
	out, err := b.unpackResults(result)
	if err != nil {
		return api.InvalidHandle, nil, err
	}
	return api.BufferHandle(addr), out, nil
}

func (b *Backend) DeployFromSourceContract(gas uint64, value api.BigIntHandle, source api.BufferHandle, meta api.CodeMetadata, args []api.BufferHandle) (api.BufferHandle, []api.BufferHandle, error) {
	addr, result := b.imports.MBufferNew(), b.imports.MBufferNew()
	err := b.imports.ManagedDeployFromSourceContract(int64(gas), int32(value), int32(source), b.metadata(meta), b.packArgs(args), addr, result)
	if err != nil {
		return api.InvalidHandle, nil, err
	}
	out, err := b.unpackResults(result)
	if err != nil {
		return api.InvalidHandle, nil, err
	}
	return api.BufferHandle(addr), out, nil
}

func (b *Backend) UpgradeContract(to api.BufferHandle, gas uint64, value api.BigIntHandle, code api.BufferHandle, meta api.CodeMetadata, args []api.BufferHandle) error {
	result := b.imports.MBufferNew()
	return b.imports.ManagedUpgradeContract(int32(to), int64(gas), int32(value), int32(code), b.metadata(meta), b.packArgs(args), result)
}

func (b *Backend) UpgradeFromSourceContract(to api.BufferHandle, gas uint64, value api.BigIntHandle, source api.BufferHandle, meta api.CodeMetadata, args []api.BufferHandle) error {
	result := b.imports.MBufferNew()
	return b.imports.ManagedUpgradeFromSourceContract(int32(to), int64(gas), int32(value), int32(source), b.metadata(meta), b.packArgs(args), result)
}

func (b *Backend) ExecuteOnDestContext(to api.BufferHandle, gas uint64, value api.BigIntHandle, function api.BufferHandle, args []api.BufferHandle) ([]api.BufferHandle, error) {
	result := b.imports.MBufferNew()
	if err := b.imports.ManagedExecuteOnDestContext(int64(gas), int32(to), int32(value), int32(function), b.packArgs(args), result); err != nil {
		return nil, err
	}
	return b.unpackResults(result)
}

func (b *Backend) GetNumArguments() int {
	return int(b.imports.GetNumArguments())
}

func (b *Backend) GetArgument(index int) (api.BufferHandle, error) {
	dest := b.imports.MBufferNew()
	if err := b.imports.MBufferGetArgument(int32(index), dest); err != nil {
		return api.InvalidHandle, err
	}
	return api.BufferHandle(dest), nil
}

func (b *Backend) Finish(h api.BufferHandle) {
	b.imports.MBufferFinish(int32(h))
}

// SignalError never returns normally on a real VM. When the host does
// return, the abort is built locally.
func (b *Backend) SignalError(message []byte) error {
	if err := b.imports.SignalError(message); err != nil {
		return err
	}
	return errors.NewAbortBytes(errors.UserError, message)
}

func (b *Backend) StorageStore(key, value api.BufferHandle) {
	b.imports.MBufferStorageStore(int32(key), int32(value))
}

func (b *Backend) StorageLoad(key api.BufferHandle) api.BufferHandle {
	dest := b.imports.MBufferNew()
	b.imports.MBufferStorageLoad(int32(key), dest)
	return api.BufferHandle(dest)
}
