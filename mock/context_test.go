package mock

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dharitri/dharitri-wasm-go/api"
	"github.com/dharitri/dharitri-wasm-go/errors"
)

func newTestContext(t *testing.T, input TxInput) *TxContext {
	t.Helper()
	if input.To == nil {
		input.To = bob
	}
	ctx := NewWorld().NewTxContext(input)
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

func TestManagedBuffers(t *testing.T) {
	ctx := newTestContext(t, TxInput{})

	h := ctx.MBufferNew()
	assert.True(t, h.Valid())
	assert.Equal(t, 0, ctx.MBufferLen(h))

	ctx.MBufferAppendBytes(h, []byte("abc"))
	other := ctx.MBufferNewFromBytes([]byte("def"))
	ctx.MBufferAppend(h, other)
	assert.Equal(t, []byte("abcdef"), ctx.MBufferGetBytes(h))

	got := ctx.MBufferGetBytes(h)
	got[0] = 'X'
	assert.Equal(t, []byte("abcdef"), ctx.MBufferGetBytes(h))

	slice, ok := ctx.MBufferCopySlice(h, 2, 3)
	require.True(t, ok)
	assert.Equal(t, []byte("cde"), ctx.MBufferGetBytes(slice))
	_, ok = ctx.MBufferCopySlice(h, 4, 3)
	assert.False(t, ok)

	ctx.MBufferSetBytes(other, []byte("abcdef"))
	assert.True(t, ctx.MBufferEq(h, other))
	ctx.MBufferSetBytes(other, nil)
	assert.Equal(t, 0, ctx.MBufferLen(other))
	assert.NotNil(t, ctx.MBufferGetBytes(other))
}

func TestManagedBuffers_InvalidHandle(t *testing.T) {
	ctx := newTestContext(t, TxInput{})
	assert.Panics(t, func() { ctx.MBufferLen(api.InvalidHandle) })
	assert.Panics(t, func() { ctx.MBufferSetBytes(42, nil) })
	assert.Panics(t, func() { ctx.BigIntSign(7) })

	h := ctx.MBufferNew()
	ctx.Close()
	assert.Panics(t, func() { ctx.MBufferLen(h) })
}

func TestBigInts(t *testing.T) {
	ctx := newTestContext(t, TxInput{})

	x := ctx.BigIntNew(100)
	y := ctx.BigIntNew(7)
	dest := ctx.BigIntNew(0)

	ctx.BigIntAdd(dest, x, y)
	assert.Equal(t, int64(107), ctx.BigIntGetInt64(dest))
	ctx.BigIntSub(dest, y, x)
	assert.Equal(t, int64(-93), ctx.BigIntGetInt64(dest))
	assert.Equal(t, -1, ctx.BigIntSign(dest))
	ctx.BigIntMul(dest, x, y)
	assert.Equal(t, int64(700), ctx.BigIntGetInt64(dest))

	require.NoError(t, ctx.BigIntTDiv(dest, x, y))
	assert.Equal(t, int64(14), ctx.BigIntGetInt64(dest))
	require.NoError(t, ctx.BigIntTMod(dest, x, y))
	assert.Equal(t, int64(2), ctx.BigIntGetInt64(dest))

	zero := ctx.BigIntNew(0)
	requireAbort(t, ctx.BigIntTDiv(dest, x, zero), errors.ExecutionFailed, errors.MsgDivisionByZero)
	requireAbort(t, ctx.BigIntTMod(dest, x, zero), errors.ExecutionFailed, errors.MsgDivisionByZero)

	ctx.BigIntSetUnsignedBytes(dest, []byte{0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00})
	assert.False(t, ctx.BigIntIsInt64(dest))
	assert.Equal(t, []byte{0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}, ctx.BigIntGetUnsignedBytes(dest))
	assert.Equal(t, 1, ctx.BigIntCmp(dest, x))

	ctx.BigIntSetInt64(dest, 5)
	assert.True(t, ctx.BigIntIsInt64(dest))
	assert.Equal(t, -1, ctx.BigIntCmp(dest, y))
	assert.Empty(t, ctx.BigIntGetUnsignedBytes(zero))
}

func TestValidTokenIdentifier(t *testing.T) {
	cases := []struct {
		id    string
		valid bool
	}{
		{"TOKEN-abcdef", true},
		{"ABC-012345", true},
		{"ABCDEFGHIJ-a1b2c3", true},
		{"AB-abcdef", false},
		{"ABCDEFGHIJK-abcdef", false},
		{"token-abcdef", false},
		{"TOKEN-ABCDEF", false},
		{"TOKEN-abcde", false},
		{"TOKEN-abcdefa", false},
		{"TOKENabcdef", false},
		{"MOAX", false},
		{"", false},
	}
	ctx := newTestContext(t, TxInput{})
	for _, tc := range cases {
		t.Run(tc.id, func(t *testing.T) {
			assert.Equal(t, tc.valid, ValidTokenIdentifier([]byte(tc.id)))
			assert.Equal(t, tc.valid, ctx.ValidateTokenIdentifier(ctx.MBufferNewFromBytes([]byte(tc.id))))
		})
	}
}

func TestGas(t *testing.T) {
	ctx := newTestContext(t, TxInput{GasLimit: 100})
	assert.Equal(t, uint64(100), ctx.GetGasLeft())
	require.NoError(t, ctx.UseGas(30))
	assert.Equal(t, uint64(70), ctx.GetGasLeft())
	requireAbort(t, ctx.UseGas(71), errors.OutOfGas, errors.MsgNotEnoughGas)
	assert.Zero(t, ctx.GetGasLeft())
	ctx.SetGasLeft(5)
	assert.Equal(t, uint64(5), ctx.Result().GasLeft)
}

func TestBlockchain(t *testing.T) {
	ctx := newTestContext(t, TxInput{From: alice})
	ctx.World().CreateAccount(alice, big.NewInt(77))
	ctx.World().BlockNonce = 12
	ctx.World().BlockTimestamp = 1700000000

	assert.Equal(t, alice, ctx.MBufferGetBytes(ctx.GetCaller()))
	assert.Equal(t, bob, ctx.MBufferGetBytes(ctx.GetSCAddress()))
	assert.Equal(t, int64(77), ctx.BigIntGetInt64(ctx.GetBalance(ctx.GetCaller())))
	assert.Equal(t, int64(0), ctx.BigIntGetInt64(ctx.GetBalance(ctx.MBufferNewFromBytes([]byte("nobody")))))
	assert.Equal(t, uint64(12), ctx.GetBlockNonce())
	assert.Equal(t, uint64(1700000000), ctx.GetBlockTimestamp())
}

func TestEndpointAPI(t *testing.T) {
	ctx := newTestContext(t, TxInput{Args: [][]byte{[]byte("a"), {}}})

	assert.Equal(t, 2, ctx.GetNumArguments())
	h, err := ctx.GetArgument(0)
	require.NoError(t, err)
	assert.Equal(t, []byte("a"), ctx.MBufferGetBytes(h))
	_, err = ctx.GetArgument(2)
	requireAbort(t, err, errors.ExecutionFailed, errors.MsgArgumentIndex)

	ctx.Finish(h)
	ctx.Finish(ctx.MBufferNew())
	assert.Equal(t, [][]byte{[]byte("a"), {}}, ctx.Out())

	requireAbort(t, ctx.SignalError([]byte{0xff, 0x00}), errors.UserError, "\xff\x00")
}

func transfers(nonces ...uint64) []DCTTransfer {
	out := make([]DCTTransfer, len(nonces))
	for i, n := range nonces {
		out[i] = DCTTransfer{Token: []byte("TOK-abcdef"), Nonce: n, Value: big.NewInt(int64(i + 1))}
	}
	return out
}

func TestCallValue_TransferCounts(t *testing.T) {
	t.Run("none", func(t *testing.T) {
		ctx := newTestContext(t, TxInput{})
		assert.Equal(t, 0, ctx.DctNumTransfers())
		assert.Equal(t, int64(0), ctx.BigIntGetInt64(ctx.MoaxValue()))
		require.NoError(t, ctx.CheckNotPayable())

		_, err := ctx.DctValue()
		requireAbort(t, err, errors.ExecutionFailed, errors.MsgInvalidTokenIndex)
		_, err = ctx.Token()
		requireAbort(t, err, errors.ExecutionFailed, errors.MsgInvalidTokenIndex)
		_, err = ctx.DctTokenNonce()
		requireAbort(t, err, errors.ExecutionFailed, errors.MsgInvalidTokenIndex)
		_, err = ctx.DctTokenType()
		requireAbort(t, err, errors.ExecutionFailed, errors.MsgInvalidTokenIndex)
	})

	t.Run("one", func(t *testing.T) {
		ctx := newTestContext(t, TxInput{DCTValues: transfers(0)})
		v, err := ctx.DctValue()
		require.NoError(t, err)
		assert.Equal(t, int64(1), ctx.BigIntGetInt64(v))
		tok, err := ctx.Token()
		require.NoError(t, err)
		assert.Equal(t, []byte("TOK-abcdef"), ctx.MBufferGetBytes(tok))
		tt, err := ctx.DctTokenType()
		require.NoError(t, err)
		assert.Equal(t, api.Fungible, tt)
		requireAbort(t, ctx.CheckNotPayable(), errors.ExecutionFailed, errors.MsgNonPayableFuncDCT)
	})

	t.Run("many", func(t *testing.T) {
		ctx := newTestContext(t, TxInput{DCTValues: transfers(0, 5, 9)})
		_, err := ctx.DctValue()
		requireAbort(t, err, errors.ExecutionFailed, errors.MsgTooManyDCTTransfers)
		_, err = ctx.Token()
		requireAbort(t, err, errors.ExecutionFailed, errors.MsgTooManyDCTTransfers)
		_, err = ctx.DctTokenNonce()
		requireAbort(t, err, errors.ExecutionFailed, errors.MsgTooManyDCTTransfers)
		_, err = ctx.DctTokenType()
		requireAbort(t, err, errors.ExecutionFailed, errors.MsgTooManyDCTTransfers)

		for i, want := range []api.TokenType{api.Fungible, api.NonFungible, api.NonFungible} {
			tt, err := ctx.DctTokenTypeByIndex(i)
			require.NoError(t, err)
			assert.Equal(t, want, tt)
		}
		n, err := ctx.DctTokenNonceByIndex(2)
		require.NoError(t, err)
		assert.Equal(t, uint64(9), n)

		_, err = ctx.DctValueByIndex(3)
		requireAbort(t, err, errors.ExecutionFailed, errors.MsgInvalidTokenIndex)
		_, err = ctx.TokenByIndex(-1)
		requireAbort(t, err, errors.ExecutionFailed, errors.MsgInvalidTokenIndex)
		_, err = ctx.DctTokenTypeByIndex(3)
		requireAbort(t, err, errors.ExecutionFailed, errors.MsgInvalidTokenIndex)
	})
}

func TestCallValue_CheckNotPayableMoax(t *testing.T) {
	ctx := newTestContext(t, TxInput{MoaxValue: big.NewInt(1)})
	requireAbort(t, ctx.CheckNotPayable(), errors.ExecutionFailed, errors.MsgNonPayableFuncMoax)
}

func TestStorage(t *testing.T) {
	ctx := newTestContext(t, TxInput{})
	key := ctx.MBufferNewFromBytes([]byte("key"))

	assert.Equal(t, 0, ctx.MBufferLen(ctx.StorageLoad(key)))
	ctx.StorageStore(key, ctx.MBufferNewFromBytes([]byte("value")))
	assert.Equal(t, []byte("value"), ctx.MBufferGetBytes(ctx.StorageLoad(key)))

	acc, _ := ctx.World().Account(bob)
	assert.Equal(t, []byte("value"), acc.Storage["key"])

	ctx.StorageStore(key, ctx.MBufferNew())
	assert.NotContains(t, acc.Storage, "key")
}
