package mock

import (
	"github.com/dharitri/dharitri-wasm-go/api"
	"github.com/dharitri/dharitri-wasm-go/hostapi"
)

// VMHooks exposes a TxContext through the raw VM import surface. Handles are
// the context's own, so a hostapi.Backend over VMHooks and the TxContext
// itself share one arena.
type VMHooks struct {
	ctx *TxContext
}

var _ hostapi.Imports = (*VMHooks)(nil)

// NewVMHooks wraps ctx.
func NewVMHooks(ctx *TxContext) *VMHooks {
	return &VMHooks{ctx: ctx}
}

func buf(h int32) api.BufferHandle { return api.BufferHandle(h) }
func num(h int32) api.BigIntHandle { return api.BigIntHandle(h) }

func boolCode(b bool) int32 {
	if b {
		return 1
	}
	return 0
}

func (v *VMHooks) MBufferNew() int32 { return int32(v.ctx.MBufferNew()) }

func (v *VMHooks) MBufferNewFromBytes(data []byte) int32 {
	return int32(v.ctx.MBufferNewFromBytes(data))
}

func (v *VMHooks) MBufferGetLength(h int32) int32 { return int32(v.ctx.MBufferLen(buf(h))) }
func (v *VMHooks) MBufferGetBytes(h int32) []byte { return v.ctx.MBufferGetBytes(buf(h)) }

func (v *VMHooks) MBufferSetBytes(h int32, data []byte) int32 {
	v.ctx.MBufferSetBytes(buf(h), data)
	return 0
}

func (v *VMHooks) MBufferAppend(acc, data int32) int32 {
	v.ctx.MBufferAppend(buf(acc), buf(data))
	return 0
}

func (v *VMHooks) MBufferAppendBytes(acc int32, data []byte) int32 {
	v.ctx.MBufferAppendBytes(buf(acc), data)
	return 0
}

func (v *VMHooks) MBufferCopyByteSlice(src, start, length, dest int32) int32 {
	data := v.ctx.buffer(buf(src))
	if start < 0 || length < 0 || int(start)+int(length) > len(data) {
		return 1
	}
	v.ctx.MBufferSetBytes(buf(dest), data[start:start+length])
	return 0
}

func (v *VMHooks) MBufferEq(a, b int32) int32 { return boolCode(v.ctx.MBufferEq(buf(a), buf(b))) }

func (v *VMHooks) MBufferFinish(h int32) int32 {
	v.ctx.Finish(buf(h))
	return 0
}

func (v *VMHooks) MBufferGetArgument(id, dest int32) error {
	h, err := v.ctx.GetArgument(int(id))
	if err != nil {
		return err
	}
	v.ctx.MBufferSetBytes(buf(dest), v.ctx.buffer(h))
	return nil
}

func (v *VMHooks) MBufferStorageStore(key, value int32) int32 {
	v.ctx.StorageStore(buf(key), buf(value))
	return 0
}

func (v *VMHooks) MBufferStorageLoad(key, dest int32) int32 {
	h := v.ctx.StorageLoad(buf(key))
	v.ctx.MBufferSetBytes(buf(dest), v.ctx.buffer(h))
	return 0
}

func (v *VMHooks) BigIntNew(x int64) int32 { return int32(v.ctx.BigIntNew(x)) }

func (v *VMHooks) BigIntSetUnsignedBytes(dest int32, data []byte) {
	v.ctx.BigIntSetUnsignedBytes(num(dest), data)
}

func (v *VMHooks) BigIntGetUnsignedBytes(h int32) []byte {
	return v.ctx.BigIntGetUnsignedBytes(num(h))
}

func (v *VMHooks) BigIntSetInt64(dest int32, x int64) { v.ctx.BigIntSetInt64(num(dest), x) }
func (v *VMHooks) BigIntIsInt64(h int32) int32        { return boolCode(v.ctx.BigIntIsInt64(num(h))) }
func (v *VMHooks) BigIntGetInt64(h int32) int64       { return v.ctx.BigIntGetInt64(num(h)) }
func (v *VMHooks) BigIntAdd(dest, x, y int32)         { v.ctx.BigIntAdd(num(dest), num(x), num(y)) }
func (v *VMHooks) BigIntSub(dest, x, y int32)         { v.ctx.BigIntSub(num(dest), num(x), num(y)) }
func (v *VMHooks) BigIntMul(dest, x, y int32)         { v.ctx.BigIntMul(num(dest), num(x), num(y)) }

func (v *VMHooks) BigIntTDiv(dest, x, y int32) error {
	return v.ctx.BigIntTDiv(num(dest), num(x), num(y))
}

func (v *VMHooks) BigIntTMod(dest, x, y int32) error {
	return v.ctx.BigIntTMod(num(dest), num(x), num(y))
}

func (v *VMHooks) BigIntCmp(x, y int32) int32 { return int32(v.ctx.BigIntCmp(num(x), num(y))) }
func (v *VMHooks) BigIntSign(h int32) int32   { return int32(v.ctx.BigIntSign(num(h))) }

func (v *VMHooks) ValidateTokenIdentifier(h int32) int32 {
	return boolCode(v.ctx.ValidateTokenIdentifier(buf(h)))
}

func (v *VMHooks) GetGasLeft() int64 { return int64(v.ctx.GetGasLeft()) }

func (v *VMHooks) ManagedSCAddress(dest int32) {
	v.ctx.MBufferSetBytes(buf(dest), v.ctx.input.To)
}

func (v *VMHooks) ManagedCaller(dest int32) {
	v.ctx.MBufferSetBytes(buf(dest), v.ctx.input.From)
}

func (v *VMHooks) BigIntGetExternalBalance(address []byte, dest int32) {
	v.ctx.BigIntSetUnsignedBytes(num(dest), v.ctx.account(address).Balance.Bytes())
}

func (v *VMHooks) GetBlockNonce() int64     { return int64(v.ctx.GetBlockNonce()) }
func (v *VMHooks) GetBlockTimestamp() int64 { return int64(v.ctx.GetBlockTimestamp()) }

func (v *VMHooks) CheckNoPayment() error { return v.ctx.CheckNotPayable() }

func (v *VMHooks) BigIntGetCallValue(dest int32) {
	v.ctx.BigIntSetUnsignedBytes(num(dest), v.ctx.BigIntGetUnsignedBytes(v.ctx.MoaxValue()))
}

func (v *VMHooks) copyBigInt(dest int32, h api.BigIntHandle, err error) error {
	if err != nil {
		return err
	}
	v.ctx.BigIntSetUnsignedBytes(num(dest), v.ctx.BigIntGetUnsignedBytes(h))
	return nil
}

func (v *VMHooks) copyBuffer(dest int32, h api.BufferHandle, err error) error {
	if err != nil {
		return err
	}
	v.ctx.MBufferSetBytes(buf(dest), v.ctx.buffer(h))
	return nil
}

func (v *VMHooks) BigIntGetDCTCallValue(dest int32) error {
	h, err := v.ctx.DctValue()
	return v.copyBigInt(dest, h, err)
}

func (v *VMHooks) BigIntGetDCTCallValueByIndex(dest, index int32) error {
	h, err := v.ctx.DctValueByIndex(int(index))
	return v.copyBigInt(dest, h, err)
}

func (v *VMHooks) ManagedGetDCTTokenName(dest int32) error {
	h, err := v.ctx.Token()
	return v.copyBuffer(dest, h, err)
}

func (v *VMHooks) ManagedGetDCTTokenNameByIndex(dest, index int32) error {
	h, err := v.ctx.TokenByIndex(int(index))
	return v.copyBuffer(dest, h, err)
}

func (v *VMHooks) GetDCTTokenNonce() (int64, error) {
	n, err := v.ctx.DctTokenNonce()
	return int64(n), err
}

func (v *VMHooks) GetDCTTokenNonceByIndex(index int32) (int64, error) {
	n, err := v.ctx.DctTokenNonceByIndex(int(index))
	return int64(n), err
}

func (v *VMHooks) GetDCTTokenType() (int32, error) {
	t, err := v.ctx.DctTokenType()
	return int32(t), err
}

func (v *VMHooks) GetDCTTokenTypeByIndex(index int32) (int32, error) {
	t, err := v.ctx.DctTokenTypeByIndex(int(index))
	return int32(t), err
}

func (v *VMHooks) GetNumDCTTransfers() int32 { return int32(v.ctx.DctNumTransfers()) }
func (v *VMHooks) GetNumArguments() int32    { return int32(v.ctx.GetNumArguments()) }

func (v *VMHooks) SignalError(message []byte) error { return v.ctx.SignalError(message) }

func (v *VMHooks) unpackArgs(arguments int32) ([]api.BufferHandle, error) {
	hs, err := hostapi.UnpackHandles(v.ctx.buffer(buf(arguments)))
	if err != nil {
		return nil, err
	}
	out := make([]api.BufferHandle, len(hs))
	for i, h := range hs {
		out[i] = buf(h)
	}
	return out, nil
}

func (v *VMHooks) metadata(h int32) (api.CodeMetadata, error) {
	return api.CodeMetadataFromBytes(v.ctx.buffer(buf(h)))
}

func (v *VMHooks) packResults(result int32, out []api.BufferHandle) {
	hs := make([]int32, len(out))
	for i, h := range out {
		hs[i] = int32(h)
	}
	v.ctx.MBufferSetBytes(buf(result), hostapi.PackHandles(hs))
}

func (v *VMHooks) ManagedCreateContract(gas int64, value, code, codeMetadata, arguments, resultAddress, result int32) error {
	meta, err := v.metadata(codeMetadata)
	if err != nil {
		return err
	}
	args, err := v.unpackArgs(arguments)
	if err != nil {
		return err
	}
	addr, out, err := v.ctx.DeployContract(uint64(gas), num(value), buf(code), meta, args)
	if err != nil {
		return err
	}
	v.ctx.MBufferSetBytes(buf(resultAddress), v.ctx.buffer(addr))
	v.packResults(result, out)
	return nil
}

func (v *VMHooks) ManagedDeployFromSourceContract(gas int64, value, source, codeMetadata, arguments, resultAddress, result int32) error {
	meta, err := v.metadata(codeMetadata)
	if err != nil {
		return err
	}
	args, err := v.unpackArgs(arguments)
	if err != nil {
		return err
	}
	addr, out, err := v.ctx.DeployFromSourceContract(uint64(gas), num(value), buf(source), meta, args)
	if err != nil {
		return err
	}
	v.ctx.MBufferSetBytes(buf(resultAddress), v.ctx.buffer(addr))
	v.packResults(result, out)
	return nil
}

func (v *VMHooks) ManagedUpgradeContract(dest int32, gas int64, value, code, codeMetadata, arguments, result int32) error {
	meta, err := v.metadata(codeMetadata)
	if err != nil {
		return err
	}
	args, err := v.unpackArgs(arguments)
	if err != nil {
		return err
	}
	if err := v.ctx.UpgradeContract(buf(dest), uint64(gas), num(value), buf(code), meta, args); err != nil {
		return err
	}
	v.packResults(result, nil)
	return nil
}

func (v *VMHooks) ManagedUpgradeFromSourceContract(dest int32, gas int64, value, source, codeMetadata, arguments, result int32) error {
	meta, err := v.metadata(codeMetadata)
	if err != nil {
		return err
	}
	args, err := v.unpackArgs(arguments)
	if err != nil {
		return err
	}
	if err := v.ctx.UpgradeFromSourceContract(buf(dest), uint64(gas), num(value), buf(source), meta, args); err != nil {
		return err
	}
	v.packResults(result, nil)
	return nil
}

func (v *VMHooks) ManagedExecuteOnDestContext(gas int64, address, value, function, arguments, result int32) error {
	args, err := v.unpackArgs(arguments)
	if err != nil {
		return err
	}
	out, err := v.ctx.ExecuteOnDestContext(buf(address), uint64(gas), num(value), buf(function), args)
	if err != nil {
		return err
	}
	v.packResults(result, out)
	return nil
}
