package callvalue_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dharitri/dharitri-wasm-go/api"
	"github.com/dharitri/dharitri-wasm-go/callvalue"
	"github.com/dharitri/dharitri-wasm-go/errors"
	"github.com/dharitri/dharitri-wasm-go/mock"
)

var (
	caller   = []byte("caller__________________________")
	contract = []byte("contract________________________")
)

func resolver(t *testing.T, moax int64, transfers ...mock.DCTTransfer) *callvalue.Resolver {
	t.Helper()
	ctx := mock.NewWorld().NewTxContext(mock.TxInput{
		From:      caller,
		To:        contract,
		MoaxValue: big.NewInt(moax),
		DCTValues: transfers,
	})
	t.Cleanup(ctx.Close)
	return callvalue.New(ctx)
}

func dct(token string, nonce uint64, value int64) mock.DCTTransfer {
	return mock.DCTTransfer{Token: []byte(token), Nonce: nonce, Value: big.NewInt(value)}
}

func requireAbort(t *testing.T, err error, status errors.ReturnCode, msg string) {
	t.Helper()
	a, ok := errors.AsAbort(err)
	require.True(t, ok, "expected abort, got %v", err)
	assert.Equal(t, status, a.Status)
	assert.Equal(t, msg, string(a.Message))
}

func TestResolver_NoTransfers(t *testing.T) {
	r := resolver(t, 0)

	assert.Equal(t, 0, r.NumTransfers())
	assert.True(t, r.MoaxValue().IsZero())
	require.NoError(t, r.CheckNotPayable())

	_, err := r.DctValue()
	requireAbort(t, err, errors.ExecutionFailed, errors.MsgInvalidTokenIndex)
	_, err = r.Token()
	requireAbort(t, err, errors.ExecutionFailed, errors.MsgInvalidTokenIndex)

	all, err := r.AllTransfers()
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestResolver_SingleTransfer(t *testing.T) {
	r := resolver(t, 0, dct("TOKEN-123456", 0, 500))

	v, err := r.DctValue()
	require.NoError(t, err)
	assert.Equal(t, 0, v.CmpUint64(500))

	token, err := r.Token()
	require.NoError(t, err)
	assert.Equal(t, "TOKEN-123456", token.String())
	assert.True(t, token.IsDCT())

	nonce, err := r.DctTokenNonce()
	require.NoError(t, err)
	assert.Zero(t, nonce)

	tt, err := r.DctTokenType()
	require.NoError(t, err)
	assert.Equal(t, api.Fungible, tt)

	requireAbort(t, r.CheckNotPayable(), errors.ExecutionFailed, errors.MsgNonPayableFuncDCT)
}

func TestResolver_MultipleTransfers(t *testing.T) {
	r := resolver(t, 0,
		dct("AAA-111111", 0, 1),
		dct("NFT-222222", 7, 1),
	)

	assert.Equal(t, 2, r.NumTransfers())

	_, err := r.DctValue()
	requireAbort(t, err, errors.ExecutionFailed, errors.MsgTooManyDCTTransfers)
	_, err = r.Token()
	requireAbort(t, err, errors.ExecutionFailed, errors.MsgTooManyDCTTransfers)
	_, err = r.DctTokenNonce()
	requireAbort(t, err, errors.ExecutionFailed, errors.MsgTooManyDCTTransfers)
	_, err = r.DctTokenType()
	requireAbort(t, err, errors.ExecutionFailed, errors.MsgTooManyDCTTransfers)

	tt, err := r.DctTokenTypeByIndex(1)
	require.NoError(t, err)
	assert.Equal(t, api.NonFungible, tt)

	_, err = r.DctValueByIndex(2)
	requireAbort(t, err, errors.ExecutionFailed, errors.MsgInvalidTokenIndex)
	_, err = r.TokenByIndex(-1)
	requireAbort(t, err, errors.ExecutionFailed, errors.MsgInvalidTokenIndex)

	all, err := r.AllTransfers()
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "AAA-111111", all[0].Token.String())
	assert.Equal(t, uint64(7), all[1].Nonce)
	assert.Equal(t, api.NonFungible, all[1].TokenType())
}

func TestResolver_CheckNotPayable_Moax(t *testing.T) {
	r := resolver(t, 10)
	requireAbort(t, r.CheckNotPayable(), errors.ExecutionFailed, errors.MsgNonPayableFuncMoax)
	assert.Equal(t, 0, r.MoaxValue().CmpUint64(10))
}

func TestResolver_SinglePayment(t *testing.T) {
	_, err := resolver(t, 0).SinglePayment()
	requireAbort(t, err, errors.UserError, errors.MsgIncorrectNumDCT)

	_, err = resolver(t, 0, dct("A-aaaaaa", 0, 1), dct("B-bbbbbb", 0, 1)).SinglePayment()
	requireAbort(t, err, errors.UserError, errors.MsgIncorrectNumDCT)

	p, err := resolver(t, 0, dct("SFT-abcdef", 3, 42)).SinglePayment()
	require.NoError(t, err)
	assert.Equal(t, "SFT-abcdef", p.Token.String())
	assert.Equal(t, uint64(3), p.Nonce)
	assert.Equal(t, "42", p.Amount.String())
}

func TestResolver_PaymentTokenPair(t *testing.T) {
	amount, token, err := resolver(t, 25).PaymentTokenPair()
	require.NoError(t, err)
	assert.True(t, token.IsMoax())
	assert.Equal(t, "25", amount.String())

	amount, token, err = resolver(t, 0, dct("TOK-000001", 0, 9)).PaymentTokenPair()
	require.NoError(t, err)
	assert.Equal(t, "TOK-000001", token.String())
	assert.Equal(t, "9", amount.String())

	_, _, err = resolver(t, 0, dct("A-aaaaaa", 0, 1), dct("B-bbbbbb", 0, 1)).PaymentTokenPair()
	requireAbort(t, err, errors.ExecutionFailed, errors.MsgTooManyDCTTransfers)
}

func TestResolver_TokenNormalization(t *testing.T) {
	r := resolver(t, 0, dct("MOAX", 0, 3))

	token, err := r.Token()
	require.NoError(t, err)
	assert.True(t, token.IsMoax())
	assert.Equal(t, "MOAX", token.String())
}
