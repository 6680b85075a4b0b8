package vmhost

import (
	"bytes"
	"context"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"

	"github.com/dharitri/dharitri-wasm-go/errors"
	"github.com/dharitri/dharitri-wasm-go/hostapi"
)

// EnvModule is the import module contracts link against.
const EnvModule = "env"

const addressLength = 32

const (
	i32 = api.ValueTypeI32
	i64 = api.ValueTypeI64
)

type importsKey struct{}

func withImports(ctx context.Context, imports hostapi.Imports) context.Context {
	return context.WithValue(ctx, importsKey{}, imports)
}

// hostCall is the state of one host function invocation.
type hostCall struct {
	imports hostapi.Imports
	mem     *Memory
}

func newHostCall(ctx context.Context, m api.Module) *hostCall {
	imports, ok := ctx.Value(importsKey{}).(hostapi.Imports)
	if !ok {
		panic(errors.New(errors.PhaseHost, errors.KindNotFound).
			Detail("no imports bound to the call").
			Build())
	}
	return &hostCall{imports: imports, mem: wrapMemory(m.Memory())}
}

// trap aborts the guest. wazero recovers the panic and returns err, wrapped,
// from the exported function call.
func trap(err error) {
	if err != nil {
		panic(err)
	}
}

func (c *hostCall) read(offset, length uint32) []byte {
	data, err := c.mem.Read(offset, length)
	trap(err)
	return bytes.Clone(data)
}

func (c *hostCall) write(offset uint32, data []byte) {
	trap(c.mem.Write(offset, data))
}

func s32(v uint64) int32  { return api.DecodeI32(v) }
func u32(v uint64) uint32 { return api.DecodeU32(v) }
func enc(v int32) uint64  { return api.EncodeI32(v) }

func sig(ts ...api.ValueType) []api.ValueType { return ts }

type hostFunc struct {
	name    string
	params  []api.ValueType
	results []api.ValueType
	fn      func(c *hostCall, s []uint64)
}

var envFuncs = []hostFunc{
	// Managed buffers.
	{"mBufferNew", nil, sig(i32), func(c *hostCall, s []uint64) {
		s[0] = enc(c.imports.MBufferNew())
	}},
	{"mBufferNewFromBytes", sig(i32, i32), sig(i32), func(c *hostCall, s []uint64) {
		s[0] = enc(c.imports.MBufferNewFromBytes(c.read(u32(s[0]), u32(s[1]))))
	}},
	{"mBufferGetLength", sig(i32), sig(i32), func(c *hostCall, s []uint64) {
		s[0] = enc(c.imports.MBufferGetLength(s32(s[0])))
	}},
	{"mBufferGetBytes", sig(i32, i32), sig(i32), func(c *hostCall, s []uint64) {
		c.write(u32(s[1]), c.imports.MBufferGetBytes(s32(s[0])))
		s[0] = 0
	}},
	{"mBufferSetBytes", sig(i32, i32, i32), sig(i32), func(c *hostCall, s []uint64) {
		s[0] = enc(c.imports.MBufferSetBytes(s32(s[0]), c.read(u32(s[1]), u32(s[2]))))
	}},
	{"mBufferAppend", sig(i32, i32), sig(i32), func(c *hostCall, s []uint64) {
		s[0] = enc(c.imports.MBufferAppend(s32(s[0]), s32(s[1])))
	}},
	{"mBufferAppendBytes", sig(i32, i32, i32), sig(i32), func(c *hostCall, s []uint64) {
		s[0] = enc(c.imports.MBufferAppendBytes(s32(s[0]), c.read(u32(s[1]), u32(s[2]))))
	}},
	{"mBufferCopyByteSlice", sig(i32, i32, i32, i32), sig(i32), func(c *hostCall, s []uint64) {
		s[0] = enc(c.imports.MBufferCopyByteSlice(s32(s[0]), s32(s[1]), s32(s[2]), s32(s[3])))
	}},
	{"mBufferEq", sig(i32, i32), sig(i32), func(c *hostCall, s []uint64) {
		s[0] = enc(c.imports.MBufferEq(s32(s[0]), s32(s[1])))
	}},
	{"mBufferFinish", sig(i32), sig(i32), func(c *hostCall, s []uint64) {
		s[0] = enc(c.imports.MBufferFinish(s32(s[0])))
	}},
	{"mBufferGetArgument", sig(i32, i32), sig(i32), func(c *hostCall, s []uint64) {
		trap(c.imports.MBufferGetArgument(s32(s[0]), s32(s[1])))
		s[0] = 0
	}},
	{"mBufferStorageStore", sig(i32, i32), sig(i32), func(c *hostCall, s []uint64) {
		s[0] = enc(c.imports.MBufferStorageStore(s32(s[0]), s32(s[1])))
	}},
	{"mBufferStorageLoad", sig(i32, i32), sig(i32), func(c *hostCall, s []uint64) {
		s[0] = enc(c.imports.MBufferStorageLoad(s32(s[0]), s32(s[1])))
	}},

	// Big integers.
	{"bigIntNew", sig(i64), sig(i32), func(c *hostCall, s []uint64) {
		s[0] = enc(c.imports.BigIntNew(int64(s[0])))
	}},
	{"bigIntSetUnsignedBytes", sig(i32, i32, i32), nil, func(c *hostCall, s []uint64) {
		c.imports.BigIntSetUnsignedBytes(s32(s[0]), c.read(u32(s[1]), u32(s[2])))
	}},
	{"bigIntUnsignedByteLength", sig(i32), sig(i32), func(c *hostCall, s []uint64) {
		s[0] = enc(int32(len(c.imports.BigIntGetUnsignedBytes(s32(s[0])))))
	}},
	{"bigIntGetUnsignedBytes", sig(i32, i32), sig(i32), func(c *hostCall, s []uint64) {
		data := c.imports.BigIntGetUnsignedBytes(s32(s[0]))
		c.write(u32(s[1]), data)
		s[0] = enc(int32(len(data)))
	}},
	{"bigIntSetInt64", sig(i32, i64), nil, func(c *hostCall, s []uint64) {
		c.imports.BigIntSetInt64(s32(s[0]), int64(s[1]))
	}},
	{"bigIntIsInt64", sig(i32), sig(i32), func(c *hostCall, s []uint64) {
		s[0] = enc(c.imports.BigIntIsInt64(s32(s[0])))
	}},
	{"bigIntGetInt64", sig(i32), sig(i64), func(c *hostCall, s []uint64) {
		s[0] = uint64(c.imports.BigIntGetInt64(s32(s[0])))
	}},
	{"bigIntAdd", sig(i32, i32, i32), nil, func(c *hostCall, s []uint64) {
		c.imports.BigIntAdd(s32(s[0]), s32(s[1]), s32(s[2]))
	}},
	{"bigIntSub", sig(i32, i32, i32), nil, func(c *hostCall, s []uint64) {
		c.imports.BigIntSub(s32(s[0]), s32(s[1]), s32(s[2]))
	}},
	{"bigIntMul", sig(i32, i32, i32), nil, func(c *hostCall, s []uint64) {
		c.imports.BigIntMul(s32(s[0]), s32(s[1]), s32(s[2]))
	}},
	{"bigIntTDiv", sig(i32, i32, i32), nil, func(c *hostCall, s []uint64) {
		trap(c.imports.BigIntTDiv(s32(s[0]), s32(s[1]), s32(s[2])))
	}},
	{"bigIntTMod", sig(i32, i32, i32), nil, func(c *hostCall, s []uint64) {
		trap(c.imports.BigIntTMod(s32(s[0]), s32(s[1]), s32(s[2])))
	}},
	{"bigIntCmp", sig(i32, i32), sig(i32), func(c *hostCall, s []uint64) {
		s[0] = enc(c.imports.BigIntCmp(s32(s[0]), s32(s[1])))
	}},
	{"bigIntSign", sig(i32), sig(i32), func(c *hostCall, s []uint64) {
		s[0] = enc(c.imports.BigIntSign(s32(s[0])))
	}},
	{"validateTokenIdentifier", sig(i32), sig(i32), func(c *hostCall, s []uint64) {
		s[0] = enc(c.imports.ValidateTokenIdentifier(s32(s[0])))
	}},

	// Blockchain.
	{"getGasLeft", nil, sig(i64), func(c *hostCall, s []uint64) {
		s[0] = uint64(c.imports.GetGasLeft())
	}},
	{"managedSCAddress", sig(i32), nil, func(c *hostCall, s []uint64) {
		c.imports.ManagedSCAddress(s32(s[0]))
	}},
	{"managedCaller", sig(i32), nil, func(c *hostCall, s []uint64) {
		c.imports.ManagedCaller(s32(s[0]))
	}},
	{"bigIntGetExternalBalance", sig(i32, i32), nil, func(c *hostCall, s []uint64) {
		c.imports.BigIntGetExternalBalance(c.read(u32(s[0]), addressLength), s32(s[1]))
	}},
	{"getBlockNonce", nil, sig(i64), func(c *hostCall, s []uint64) {
		s[0] = uint64(c.imports.GetBlockNonce())
	}},
	{"getBlockTimestamp", nil, sig(i64), func(c *hostCall, s []uint64) {
		s[0] = uint64(c.imports.GetBlockTimestamp())
	}},

	// Call value.
	{"checkNoPayment", nil, nil, func(c *hostCall, s []uint64) {
		trap(c.imports.CheckNoPayment())
	}},
	{"bigIntGetCallValue", sig(i32), nil, func(c *hostCall, s []uint64) {
		c.imports.BigIntGetCallValue(s32(s[0]))
	}},
	{"bigIntGetDCTCallValue", sig(i32), nil, func(c *hostCall, s []uint64) {
		trap(c.imports.BigIntGetDCTCallValue(s32(s[0])))
	}},
	{"bigIntGetDCTCallValueByIndex", sig(i32, i32), nil, func(c *hostCall, s []uint64) {
		trap(c.imports.BigIntGetDCTCallValueByIndex(s32(s[0]), s32(s[1])))
	}},
	{"managedGetDCTTokenName", sig(i32), nil, func(c *hostCall, s []uint64) {
		trap(c.imports.ManagedGetDCTTokenName(s32(s[0])))
	}},
	{"managedGetDCTTokenNameByIndex", sig(i32, i32), nil, func(c *hostCall, s []uint64) {
		trap(c.imports.ManagedGetDCTTokenNameByIndex(s32(s[0]), s32(s[1])))
	}},
	{"getDCTTokenNonce", nil, sig(i64), func(c *hostCall, s []uint64) {
		v, err := c.imports.GetDCTTokenNonce()
		trap(err)
		s[0] = uint64(v)
	}},
	{"getDCTTokenNonceByIndex", sig(i32), sig(i64), func(c *hostCall, s []uint64) {
		v, err := c.imports.GetDCTTokenNonceByIndex(s32(s[0]))
		trap(err)
		s[0] = uint64(v)
	}},
	{"getDCTTokenType", nil, sig(i32), func(c *hostCall, s []uint64) {
		v, err := c.imports.GetDCTTokenType()
		trap(err)
		s[0] = enc(v)
	}},
	{"getDCTTokenTypeByIndex", sig(i32), sig(i32), func(c *hostCall, s []uint64) {
		v, err := c.imports.GetDCTTokenTypeByIndex(s32(s[0]))
		trap(err)
		s[0] = enc(v)
	}},
	{"getNumDCTTransfers", nil, sig(i32), func(c *hostCall, s []uint64) {
		s[0] = enc(c.imports.GetNumDCTTransfers())
	}},

	// Endpoint.
	{"getNumArguments", nil, sig(i32), func(c *hostCall, s []uint64) {
		s[0] = enc(c.imports.GetNumArguments())
	}},
	{"signalError", sig(i32, i32), nil, func(c *hostCall, s []uint64) {
		msg := c.read(u32(s[0]), u32(s[1]))
		err := c.imports.SignalError(msg)
		if err == nil {
			err = errors.NewAbortBytes(errors.UserError, msg)
		}
		trap(err)
	}},

	// Send.
	{"managedCreateContract", sig(i64, i32, i32, i32, i32, i32, i32), sig(i32), func(c *hostCall, s []uint64) {
		trap(c.imports.ManagedCreateContract(int64(s[0]), s32(s[1]), s32(s[2]), s32(s[3]), s32(s[4]), s32(s[5]), s32(s[6])))
		s[0] = 0
	}},
	{"managedDeployFromSourceContract", sig(i64, i32, i32, i32, i32, i32, i32), sig(i32), func(c *hostCall, s []uint64) {
		trap(c.imports.ManagedDeployFromSourceContract(int64(s[0]), s32(s[1]), s32(s[2]), s32(s[3]), s32(s[4]), s32(s[5]), s32(s[6])))
		s[0] = 0
	}},
	{"managedUpgradeContract", sig(i32, i64, i32, i32, i32, i32, i32), nil, func(c *hostCall, s []uint64) {
		trap(c.imports.ManagedUpgradeContract(s32(s[0]), int64(s[1]), s32(s[2]), s32(s[3]), s32(s[4]), s32(s[5]), s32(s[6])))
	}},
	{"managedUpgradeFromSourceContract", sig(i32, i64, i32, i32, i32, i32, i32), nil, func(c *hostCall, s []uint64) {
		trap(c.imports.ManagedUpgradeFromSourceContract(s32(s[0]), int64(s[1]), s32(s[2]), s32(s[3]), s32(s[4]), s32(s[5]), s32(s[6])))
	}},
	{"managedExecuteOnDestContext", sig(i64, i32, i32, i32, i32, i32), sig(i32), func(c *hostCall, s []uint64) {
		trap(c.imports.ManagedExecuteOnDestContext(int64(s[0]), s32(s[1]), s32(s[2]), s32(s[3]), s32(s[4]), s32(s[5])))
		s[0] = 0
	}},
}

// envNames indexes envFuncs by import name.
var envNames = func() map[string]bool {
	names := make(map[string]bool, len(envFuncs))
	for _, f := range envFuncs {
		names[f.name] = true
	}
	return names
}()

// instantiateEnv registers the host module in r.
func instantiateEnv(ctx context.Context, r wazero.Runtime) error {
	b := r.NewHostModuleBuilder(EnvModule)
	for _, f := range envFuncs {
		fn := f.fn
		b.NewFunctionBuilder().
			WithGoModuleFunction(api.GoModuleFunc(func(ctx context.Context, m api.Module, stack []uint64) {
				fn(newHostCall(ctx, m), stack)
			}), f.params, f.results).
			WithName(f.name).
			Export(f.name)
	}
	_, err := b.Instantiate(ctx)
	return err
}
