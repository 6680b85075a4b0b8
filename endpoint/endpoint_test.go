package endpoint_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dharitri/dharitri-wasm-go/codec"
	"github.com/dharitri/dharitri-wasm-go/endpoint"
	"github.com/dharitri/dharitri-wasm-go/errors"
	"github.com/dharitri/dharitri-wasm-go/mock"
	"github.com/dharitri/dharitri-wasm-go/types"
)

var (
	caller   = []byte("caller__________________________")
	contract = []byte("contract________________________")
)

func callContext(t *testing.T, args ...[]byte) *mock.TxContext {
	t.Helper()
	ctx := mock.NewWorld().NewTxContext(mock.TxInput{From: caller, To: contract, Args: args})
	t.Cleanup(ctx.Close)
	return ctx
}

func requireAbort(t *testing.T, err error, status errors.ReturnCode, msg string) {
	t.Helper()
	a, ok := errors.AsAbort(err)
	require.True(t, ok, "expected abort, got %v", err)
	assert.Equal(t, status, a.Status)
	assert.Equal(t, msg, string(a.Message))
}

func TestCheckNumArguments(t *testing.T) {
	ctx := callContext(t, []byte{1}, []byte{2})
	require.NoError(t, endpoint.CheckNumArguments(ctx, 2))
	requireAbort(t, endpoint.CheckNumArguments(ctx, 1), errors.UserError, errors.MsgWrongNumArgs)
}

func TestLoadArg(t *testing.T) {
	ctx := callContext(t, []byte{0x01, 0x00}, []byte{1, 2, 3, 4, 5})

	var n uint32
	require.NoError(t, endpoint.LoadArg(ctx, 0, "n", &n))
	assert.Equal(t, uint32(256), n)

	err := endpoint.LoadArg(ctx, 1, "amount", &n)
	requireAbort(t, err, errors.UserError, "argument decode error (amount): input too long")

	err = endpoint.LoadArg(ctx, 2, "missing", &n)
	requireAbort(t, err, errors.UserError, errors.MsgWrongNumArgs)
}

func TestLoadArgs(t *testing.T) {
	ctx := callContext(t, []byte("TOKEN-abcdef"), []byte{0x07}, []byte{0x03, 0xe8}, []byte("x"), []byte("y"))

	token := types.NewTokenIdentifier(ctx)
	var nonce uint64
	amount := types.NewBigUint(ctx)
	rest := codec.MultiValueVec[string]{}

	err := endpoint.LoadArgs(ctx,
		endpoint.Arg{Name: "token", Dst: &token},
		endpoint.Arg{Name: "nonce", Dst: &nonce},
		endpoint.Arg{Name: "amount", Dst: &amount},
		endpoint.Arg{Name: "rest", Dst: &rest},
	)
	require.NoError(t, err)
	assert.Equal(t, "TOKEN-abcdef", token.String())
	assert.Equal(t, uint64(7), nonce)
	assert.Equal(t, "1000", amount.String())
	assert.Equal(t, []string{"x", "y"}, rest.Items)
}

func TestLoadArgs_Count(t *testing.T) {
	ctx := callContext(t, []byte{1}, []byte{2})

	var a, b, c uint8
	err := endpoint.LoadArgs(ctx, endpoint.Arg{Name: "a", Dst: &a})
	requireAbort(t, err, errors.UserError, errors.MsgWrongNumArgs)

	err = endpoint.LoadArgs(ctx,
		endpoint.Arg{Name: "a", Dst: &a},
		endpoint.Arg{Name: "b", Dst: &b},
		endpoint.Arg{Name: "c", Dst: &c},
	)
	requireAbort(t, err, errors.UserError, errors.MsgWrongNumArgs)

	var opt codec.OptionalValue[uint8]
	err = endpoint.LoadArgs(ctx,
		endpoint.Arg{Name: "a", Dst: &a},
		endpoint.Arg{Name: "b", Dst: &b},
		endpoint.Arg{Name: "opt", Dst: &opt},
	)
	require.NoError(t, err)
	assert.False(t, opt.Present)
}

// brokenArgs reports more arguments than the backend can read.
type brokenArgs struct {
	*mock.TxContext
}

func (brokenArgs) GetNumArguments() int { return 2 }

func TestLoadArgs_BackendError(t *testing.T) {
	ctx := brokenArgs{callContext(t, []byte{1})}

	var a, b uint8
	err := endpoint.LoadArgs(ctx,
		endpoint.Arg{Name: "a", Dst: &a},
		endpoint.Arg{Name: "b", Dst: &b},
	)
	requireAbort(t, err, errors.ExecutionFailed, errors.MsgArgumentIndex)
	assert.Equal(t, uint8(1), a)
}

func TestFinish(t *testing.T) {
	ctx := callContext(t)

	err := endpoint.Finish(ctx,
		uint32(5),
		"done",
		codec.MultiValueOf[uint8](1, 2),
		types.BigUintFromUint64(ctx, 0),
	)
	require.NoError(t, err)
	assert.Equal(t, [][]byte{{5}, []byte("done"), {1}, {2}, {}}, ctx.Out())
}

func TestFinish_EncodeError(t *testing.T) {
	ctx := callContext(t)
	err := endpoint.Finish(ctx, struct{}{})
	requireAbort(t, err, errors.UserError, errors.MsgFinishEncode+"unsupported operation")
}

func TestRequire(t *testing.T) {
	ctx := callContext(t)
	require.NoError(t, endpoint.Require(ctx, true, "never"))
	requireAbort(t, endpoint.Require(ctx, false, "amount too low"), errors.UserError, "amount too low")
}

func TestStorage(t *testing.T) {
	ctx := callContext(t)

	require.NoError(t, endpoint.StorageSet(ctx, "counter", uint64(300)))
	acc, ok := ctx.World().Account(contract)
	require.True(t, ok)
	assert.Equal(t, []byte{0x01, 0x2c}, acc.Storage["counter"])

	var n uint64
	require.NoError(t, endpoint.StorageGet(ctx, "counter", &n))
	assert.Equal(t, uint64(300), n)

	total := types.NewBigUint(ctx)
	require.NoError(t, endpoint.StorageGet(ctx, "missing", &total))
	assert.True(t, total.IsZero())

	require.NoError(t, endpoint.StorageSet(ctx, "counter", uint64(0)))
	assert.NotContains(t, acc.Storage, "counter")

	var small uint8
	acc.Storage["wide"] = []byte{1, 2}
	err := endpoint.StorageGet(ctx, "wide", &small)
	requireAbort(t, err, errors.UserError, errors.MsgStorageDecode+"input too long")
}
