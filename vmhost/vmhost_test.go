package vmhost_test

import (
	"context"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dharitri/dharitri-wasm-go/api"
	"github.com/dharitri/dharitri-wasm-go/errors"
	"github.com/dharitri/dharitri-wasm-go/hostapi"
	"github.com/dharitri/dharitri-wasm-go/mock"
	"github.com/dharitri/dharitri-wasm-go/vmhost"
)

var envImports = []wasmImport{
	{"env", "mBufferNew", nil, []byte{valI32}},
	{"env", "mBufferNewFromBytes", []byte{valI32, valI32}, []byte{valI32}},
	{"env", "mBufferFinish", []byte{valI32}, []byte{valI32}},
	{"env", "mBufferGetArgument", []byte{valI32, valI32}, []byte{valI32}},
	{"env", "checkNoPayment", nil, nil},
	{"env", "signalError", []byte{valI32, valI32}, nil},
	{"env", "bigIntNew", []byte{valI64}, []byte{valI32}},
	{"env", "bigIntGetCallValue", []byte{valI32}, nil},
	{"env", "bigIntGetUnsignedBytes", []byte{valI32, valI32}, []byte{valI32}},
	{"env", "getGasLeft", nil, []byte{valI64}},
	{"env", "managedSCAddress", []byte{valI32}, nil},
	{"env", "managedExecuteOnDestContext", []byte{valI64, valI32, valI32, valI32, valI32, valI32}, []byte{valI32}},
	{"env", "mBufferStorageStore", []byte{valI32, valI32}, []byte{valI32}},
	{"env", "bigIntTDiv", []byte{valI32, valI32, valI32}, nil},
}

func call(fn string) []byte {
	for i, imp := range envImports {
		if imp.name == fn {
			return append([]byte{0x10}, uleb(uint64(i))...)
		}
	}
	panic("unknown import " + fn)
}

const (
	answerAt  = 0
	oopsAt    = 16
	keyAt     = 32
	scratchAt = 256
)

// finishBigInt finishes the big-endian bytes of the big int in local l.
func finishBigInt(l int) []byte {
	return code(
		i32Const(scratchAt),
		localGet(l), i32Const(scratchAt), call("bigIntGetUnsignedBytes"),
		call("mBufferNewFromBytes"), call("mBufferFinish"), drop,
	)
}

func testContract() []byte {
	funcs := []wasmFunc{
		{name: "init"},
		{name: "answer", body: code(
			i32Const(answerAt), i32Const(1), call("mBufferNewFromBytes"), call("mBufferFinish"), drop,
		)},
		{name: "echo", locals: []byte{valI32}, body: code(
			call("mBufferNew"), localSet(0),
			i32Const(0), localGet(0), call("mBufferGetArgument"), drop,
			localGet(0), call("mBufferFinish"), drop,
		)},
		{name: "notPayable", body: call("checkNoPayment")},
		{name: "fail", body: code(i32Const(oopsAt), i32Const(4), call("signalError"))},
		{name: "trap", body: unreachable},
		{name: "callValue", locals: []byte{valI32}, body: code(
			i64Const(0), call("bigIntNew"), localSet(0),
			localGet(0), call("bigIntGetCallValue"),
			finishBigInt(0),
		)},
		{name: "gas", locals: []byte{valI32}, body: code(
			call("getGasLeft"), call("bigIntNew"), localSet(0),
			finishBigInt(0),
		)},
		{name: "store", body: code(
			i32Const(keyAt), i32Const(3), call("mBufferNewFromBytes"),
			i32Const(answerAt), i32Const(1), call("mBufferNewFromBytes"),
			call("mBufferStorageStore"), drop,
		)},
		{name: "divZero", locals: []byte{valI32, valI32}, body: code(
			i64Const(1), call("bigIntNew"), localSet(0),
			i64Const(0), call("bigIntNew"), localSet(1),
			localGet(0), localGet(0), localGet(1), call("bigIntTDiv"),
		)},
		{name: "badHandle", body: code(i32Const(999), call("mBufferFinish"), drop)},
		{name: "outOfBounds", body: code(i32Const(70000), i32Const(4), call("signalError"))},
		// forward calls the endpoint named by its argument on this contract
		// and finishes the packed result handles.
		{name: "forward", locals: []byte{valI32, valI32, valI32, valI32, valI32}, body: code(
			call("mBufferNew"), localSet(0),
			i32Const(0), localGet(0), call("mBufferGetArgument"), drop,
			call("mBufferNew"), localSet(1),
			call("mBufferNew"), localSet(2),
			localGet(2), call("managedSCAddress"),
			i64Const(0), call("bigIntNew"), localSet(3),
			call("mBufferNew"), localSet(4),
			i64Const(1000), localGet(2), localGet(3), localGet(0), localGet(4), localGet(1),
			call("managedExecuteOnDestContext"), drop,
			localGet(1), call("mBufferFinish"), drop,
		)},
		{name: "helper", params: []byte{valI32}, results: []byte{valI32}, body: localGet(0)},
	}
	data := []wasmData{
		{offset: answerAt, data: []byte{42}},
		{offset: oopsAt, data: []byte("oops")},
		{offset: keyAt, data: []byte("key")},
	}
	return buildModule(envImports, funcs, data)
}

var (
	owner    = []byte("owner___________________________")
	deployed = []byte("deployed________________________")
)

func newRuntime(t *testing.T, opts ...vmhost.Option) *vmhost.Runtime {
	t.Helper()
	ctx := context.Background()
	rt, err := vmhost.New(ctx, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rt.Close(ctx) })
	return rt
}

func newWorld(t *testing.T) (*mock.World, []byte) {
	t.Helper()
	rt := newRuntime(t)
	w := mock.NewWorld()
	wasm := testContract()
	_, err := rt.Register(context.Background(), w, wasm)
	require.NoError(t, err)

	w.CreateAccount(owner, big.NewInt(100))
	w.CreateAccount(deployed, nil).Code = wasm
	return w, wasm
}

func TestCompile_Endpoints(t *testing.T) {
	rt := newRuntime(t)
	mod, err := rt.Compile(context.Background(), testContract())
	require.NoError(t, err)

	assert.Equal(t, []string{
		"answer", "badHandle", "callValue", "divZero", "echo", "fail", "forward",
		"gas", "init", "notPayable", "outOfBounds", "store", "trap",
	}, mod.Endpoints())
	assert.True(t, mod.HasEndpoint("echo"))
	assert.False(t, mod.HasEndpoint("helper"))
	require.NoError(t, mod.Close(context.Background()))
}

func TestCompile_MissingImports(t *testing.T) {
	rt := newRuntime(t)
	wasm := buildModule([]wasmImport{
		{"env", "mBufferNew", nil, []byte{valI32}},
		{"env", "teleport", nil, nil},
		{"wasi_snapshot_preview1", "fd_write", []byte{valI32, valI32, valI32, valI32}, []byte{valI32}},
	}, []wasmFunc{{name: "init"}}, nil)

	_, err := rt.Compile(context.Background(), wasm)
	var missing *errors.MissingImportsError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, []errors.MissingImport{
		{Module: "env", Function: "teleport"},
		{Module: "wasi_snapshot_preview1", Function: "fd_write"},
	}, missing.Imports)
}

func TestCompile_Invalid(t *testing.T) {
	rt := newRuntime(t)
	_, err := rt.Compile(context.Background(), []byte("not wasm"))
	var e *errors.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, errors.PhaseLoad, e.Phase)
}

func TestContract_Calls(t *testing.T) {
	cases := []struct {
		function string
		moax     int64
		args     [][]byte
		status   errors.ReturnCode
		message  string
		out      [][]byte
	}{
		{function: "answer", out: [][]byte{{42}}},
		{function: "echo", args: [][]byte{[]byte("hello")}, out: [][]byte{[]byte("hello")}},
		{function: "echo", status: errors.ExecutionFailed, message: errors.MsgArgumentIndex},
		{function: "notPayable"},
		{function: "notPayable", moax: 5, status: errors.ExecutionFailed, message: errors.MsgNonPayableFuncMoax},
		{function: "fail", status: errors.UserError, message: "oops"},
		{function: "callValue", moax: 7, out: [][]byte{{7}}},
		{function: "gas", out: [][]byte{{0x13, 0x88}}},
		{function: "divZero", status: errors.ExecutionFailed, message: errors.MsgDivisionByZero},
		{function: "badHandle", status: errors.ExecutionFailed, message: "[managed] invalid_handle: invalid buffer handle 999"},
		{function: "outOfBounds", status: errors.ExecutionFailed, message: "[host] value_out_of_range: memory read out of bounds: offset=70000, length=4"},
		{function: "helper", status: errors.FunctionNotFound, message: errors.MsgFunctionNotFound},
		{function: "missing", status: errors.FunctionNotFound, message: errors.MsgFunctionNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.function, func(t *testing.T) {
			w, _ := newWorld(t)
			res := w.Execute(mock.TxInput{
				From:      owner,
				To:        deployed,
				MoaxValue: big.NewInt(tc.moax),
				Function:  tc.function,
				Args:      tc.args,
				GasLimit:  5000,
			})
			assert.Equal(t, tc.status, res.Status)
			assert.Equal(t, tc.message, res.Message)
			if !res.Failed() {
				assert.Equal(t, tc.out, res.Out)
			}
		})
	}
}

func TestContract_Trap(t *testing.T) {
	w, _ := newWorld(t)
	res := w.Execute(mock.TxInput{From: owner, To: deployed, MoaxValue: big.NewInt(3), Function: "trap"})
	assert.Equal(t, errors.ExecutionFailed, res.Status)
	assert.Contains(t, res.Message, "unreachable")
	assert.NotContains(t, res.Message, "\n")

	// The failed call moved no funds.
	acc, _ := w.Account(owner)
	assert.Equal(t, "100", acc.Balance.String())
}

func TestContract_Deploy(t *testing.T) {
	w, wasm := newWorld(t)

	res := w.Deploy(mock.DeployInput{From: owner, Code: wasm, CodeMetadata: api.CodeMetadataUpgradeable, GasLimit: 100})
	require.False(t, res.Failed(), res.Message)
	assert.Equal(t, w.NewAddress(owner, 0), res.NewAddress)

	res = w.Execute(mock.TxInput{From: owner, To: res.NewAddress, Function: "store"})
	require.False(t, res.Failed(), res.Message)
	acc, _ := w.Account(w.NewAddress(owner, 0))
	assert.Equal(t, []byte{42}, acc.Storage["key"])
}

func TestContract_SubCall(t *testing.T) {
	w, _ := newWorld(t)

	res := w.Execute(mock.TxInput{From: owner, To: deployed, Function: "forward", Args: [][]byte{[]byte("answer")}, GasLimit: 5000})
	require.False(t, res.Failed(), res.Message)
	require.Len(t, res.Out, 1)
	// One packed result handle.
	assert.Len(t, res.Out[0], 4)

	res = w.Execute(mock.TxInput{From: owner, To: deployed, Function: "forward", Args: [][]byte{[]byte("store")}, GasLimit: 5000})
	require.False(t, res.Failed(), res.Message)
	require.Len(t, res.Out, 1)
	assert.Empty(t, res.Out[0])
	acc, _ := w.Account(deployed)
	assert.Equal(t, []byte{42}, acc.Storage["key"])

	res = w.Execute(mock.TxInput{From: owner, To: deployed, Function: "forward", Args: [][]byte{[]byte("fail")}, GasLimit: 5000})
	assert.Equal(t, errors.UserError, res.Status)
	assert.Equal(t, "oops", res.Message)

	res = w.Execute(mock.TxInput{From: owner, To: deployed, Function: "forward", Args: [][]byte{[]byte("forward")}, GasLimit: 5000})
	assert.Equal(t, errors.ExecutionFailed, res.Status)
	assert.Equal(t, errors.MsgArgumentIndex, res.Message)
}

func TestInstance_Memory(t *testing.T) {
	ctx := context.Background()
	rt := newRuntime(t, vmhost.WithInterpreter(), vmhost.WithMemoryLimitPages(1), vmhost.WithCloseOnContextDone())
	mod, err := rt.Compile(ctx, testContract())
	require.NoError(t, err)

	w := mock.NewWorld()
	tx := w.NewTxContext(mock.TxInput{From: owner, To: deployed})
	defer tx.Close()

	inst, err := mod.Instantiate(ctx, mock.NewVMHooks(tx))
	require.NoError(t, err)
	defer inst.Close(ctx)

	mem := inst.Memory()
	assert.Equal(t, uint32(65536), mem.Size())

	data, err := mem.Read(oopsAt, 4)
	require.NoError(t, err)
	assert.Equal(t, []byte("oops"), data)

	require.NoError(t, mem.WriteU32(100, 0x01020304))
	v32, err := mem.ReadU32(100)
	require.NoError(t, err)
	assert.Equal(t, uint32(0x01020304), v32)
	b, err := mem.ReadU8(100)
	require.NoError(t, err)
	assert.Equal(t, uint8(0x04), b)

	require.NoError(t, mem.WriteU64(200, 1<<40))
	v64, err := mem.ReadU64(200)
	require.NoError(t, err)
	assert.Equal(t, uint64(1<<40), v64)
	require.NoError(t, mem.WriteU8(300, 9))

	_, err = mem.Read(65530, 10)
	assert.EqualError(t, err, "[host] value_out_of_range: memory read out of bounds: offset=65530, length=10")
	assert.Error(t, mem.Write(65535, []byte{1, 2}))
	assert.Error(t, mem.WriteU64(65535, 1))

	// Endpoints run directly on an instance too.
	require.NoError(t, inst.Call(ctx, "answer"))
	err = inst.Call(ctx, "fail")
	a, ok := errors.AsAbort(err)
	require.True(t, ok)
	assert.Equal(t, errors.UserError, a.Status)

	err = inst.Call(ctx, "nope")
	assert.ErrorIs(t, err, errors.NewAbort(errors.FunctionNotFound, errors.MsgFunctionNotFound))
}

func TestInstance_HostBackend(t *testing.T) {
	ctx := context.Background()
	rt := newRuntime(t)
	mod, err := rt.Compile(ctx, testContract())
	require.NoError(t, err)

	w := mock.NewWorld()
	tx := w.NewTxContext(mock.TxInput{From: owner, To: deployed, Args: [][]byte{[]byte("x")}})
	defer tx.Close()

	// The guest and a host-bound backend share the context's arena.
	hooks := mock.NewVMHooks(tx)
	inst, err := mod.Instantiate(ctx, hooks)
	require.NoError(t, err)
	defer inst.Close(ctx)

	require.NoError(t, inst.Call(ctx, "echo"))
	b := hostapi.NewBackend(hooks)
	h := b.MBufferNewFromBytes([]byte("y"))
	b.Finish(h)

	assert.Equal(t, [][]byte{[]byte("x"), []byte("y")}, tx.Out())
}
