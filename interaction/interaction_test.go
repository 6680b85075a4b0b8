package interaction_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dharitri/dharitri-wasm-go/api"
	"github.com/dharitri/dharitri-wasm-go/endpoint"
	"github.com/dharitri/dharitri-wasm-go/errors"
	"github.com/dharitri/dharitri-wasm-go/interaction"
	"github.com/dharitri/dharitri-wasm-go/mock"
	"github.com/dharitri/dharitri-wasm-go/types"
)

var (
	owner    = []byte("owner___________________________")
	parent   = []byte("parent__________________________")
	echoCode = []byte("echo contract")
)

func echoContract() mock.Contract {
	return mock.Contract{
		mock.InitEndpoint: func(b api.Backend) error {
			return endpoint.Finish(b, uint32(b.GetNumArguments()))
		},
		"echo": func(b api.Backend) error {
			for i := 0; i < b.GetNumArguments(); i++ {
				h, err := b.GetArgument(i)
				if err != nil {
					return err
				}
				b.Finish(h)
			}
			return nil
		},
		"fail": func(b api.Backend) error {
			b.StorageStore(b.MBufferNewFromBytes([]byte("touched")), b.MBufferNewFromBytes([]byte{1}))
			return b.SignalError([]byte("refused"))
		},
	}
}

func parentContext(t *testing.T, gas uint64) (*mock.World, *mock.TxContext) {
	t.Helper()
	w := mock.NewWorld()
	w.RegisterContract(echoCode, echoContract())
	ctx := w.NewTxContext(mock.TxInput{From: owner, To: parent, GasLimit: gas})
	t.Cleanup(ctx.Close)
	return w, ctx
}

func requireAbort(t *testing.T, err error, status errors.ReturnCode, msg string) {
	t.Helper()
	a, ok := errors.AsAbort(err)
	require.True(t, ok, "expected abort, got %v", err)
	assert.Equal(t, status, a.Status)
	assert.Equal(t, msg, string(a.Message))
}

func TestDeploy_GasResolvedAtDispatch(t *testing.T) {
	w, ctx := parentContext(t, 1000)
	code := types.NewManagedBufferFromBytes(ctx, echoCode)

	d := interaction.NewContractDeploy(ctx).
		PushEndpointArg(uint32(7)).
		PushEndpointArg("x")

	ctx.SetGasLeft(600)
	addr, out, err := d.DeployContract(code, api.CodeMetadataUpgradeable)
	require.NoError(t, err)

	sends := ctx.Sends()
	require.Len(t, sends, 1)
	assert.Equal(t, mock.SendDeploy, sends[0].Kind)
	assert.Equal(t, uint64(600), sends[0].Gas)
	assert.Equal(t, 0, sends[0].Value.Sign())
	assert.Equal(t, [][]byte{{7}, []byte("x")}, sends[0].Args)

	expected := w.NewAddress(parent, 0)
	assert.Equal(t, expected, addr.Bytes())
	assert.Equal(t, expected, sends[0].To)
	require.Len(t, out, 1)
	assert.Equal(t, []byte{2}, out[0].Bytes())

	acc, ok := w.Account(expected)
	require.True(t, ok)
	assert.Equal(t, parent, acc.Owner)
	assert.Equal(t, uint64(600), ctx.GetGasLeft())

	_, _, err = d.DeployContract(code, api.CodeMetadataUpgradeable)
	assert.ErrorIs(t, err, interaction.ErrAlreadyDispatched)
	assert.Len(t, ctx.Sends(), 1)
}

func TestDeploy_ExplicitGasAndPayment(t *testing.T) {
	w, ctx := parentContext(t, 1000)
	w.CreateAccount(parent, big.NewInt(50))

	addr, _, err := interaction.NewContractDeploy(ctx).
		WithGasLimit(300).
		WithMoaxTransfer(types.BigUintFromUint64(ctx, 20)).
		DeployContract(types.NewManagedBufferFromBytes(ctx, echoCode), api.CodeMetadata(0))
	require.NoError(t, err)

	assert.Equal(t, uint64(300), ctx.Sends()[0].Gas)
	assert.Equal(t, "20", ctx.Sends()[0].Value.String())

	acc, _ := w.Account(addr.Bytes())
	assert.Equal(t, "20", acc.Balance.String())
	self, _ := w.Account(parent)
	assert.Equal(t, "30", self.Balance.String())
}

func TestDeploy_Failures(t *testing.T) {
	t.Run("out of funds", func(t *testing.T) {
		w, ctx := parentContext(t, 1000)
		_, _, err := interaction.NewContractDeploy(ctx).
			WithMoaxTransfer(types.BigUintFromUint64(ctx, 1)).
			DeployContract(types.NewManagedBufferFromBytes(ctx, echoCode), 0)
		requireAbort(t, err, errors.OutOfFunds, errors.MsgInsufficientFunds)

		_, exists := w.Account(w.NewAddress(parent, 0))
		assert.False(t, exists)
	})

	t.Run("gas above remaining", func(t *testing.T) {
		_, ctx := parentContext(t, 100)
		_, _, err := interaction.NewContractDeploy(ctx).
			WithGasLimit(101).
			DeployContract(types.NewManagedBufferFromBytes(ctx, echoCode), 0)
		requireAbort(t, err, errors.OutOfGas, errors.MsgNotEnoughGas)
	})

	t.Run("unknown code", func(t *testing.T) {
		_, ctx := parentContext(t, 100)
		_, _, err := interaction.NewContractDeploy(ctx).
			DeployContract(types.NewManagedBufferFromBytes(ctx, []byte("nope")), 0)
		requireAbort(t, err, errors.ContractInvalid, errors.MsgContractInvalid)
	})

	t.Run("argument encode error", func(t *testing.T) {
		_, ctx := parentContext(t, 100)
		_, _, err := interaction.NewContractDeploy(ctx).
			PushEndpointArg(struct{}{}).
			PushEndpointArg(uint8(1)).
			DeployContract(types.NewManagedBufferFromBytes(ctx, echoCode), 0)
		requireAbort(t, err, errors.UserError, errors.MsgContractCallEncode+"unsupported operation")
		assert.Empty(t, ctx.Sends())
	})
}

func TestDeployFromSource(t *testing.T) {
	w, ctx := parentContext(t, 1000)
	first, _, err := interaction.NewContractDeploy(ctx).
		DeployContract(types.NewManagedBufferFromBytes(ctx, echoCode), 0)
	require.NoError(t, err)

	second, out, err := interaction.NewContractDeploy(ctx).
		PushEndpointArg(uint8(1)).
		DeployFromSource(first, api.CodeMetadataReadable)
	require.NoError(t, err)

	assert.Equal(t, w.NewAddress(parent, 1), second.Bytes())
	assert.Equal(t, []byte{1}, out[0].Bytes())
	assert.Equal(t, mock.SendDeployFromSource, ctx.Sends()[1].Kind)
	assert.Equal(t, first.Bytes(), ctx.Sends()[1].Source)

	acc, _ := w.Account(second.Bytes())
	assert.Equal(t, echoCode, acc.Code)
	assert.True(t, acc.CodeMetadata.IsReadable())
}

func TestUpgrade(t *testing.T) {
	_, ctx := parentContext(t, 1000)
	addr, _, err := interaction.NewContractDeploy(ctx).
		DeployContract(types.NewManagedBufferFromBytes(ctx, echoCode), api.CodeMetadataUpgradeable)
	require.NoError(t, err)

	up := interaction.NewContractUpgrade(ctx, addr).PushEndpointArg(uint8(9))
	require.NoError(t, up.UpgradeContract(types.NewManagedBufferFromBytes(ctx, echoCode), api.CodeMetadata(0)))
	assert.ErrorIs(t, up.UpgradeContract(types.NewManagedBufferFromBytes(ctx, echoCode), 0), interaction.ErrAlreadyDispatched)

	r := ctx.Sends()[1]
	assert.Equal(t, mock.SendUpgrade, r.Kind)
	assert.Equal(t, addr.Bytes(), r.To)
	assert.Equal(t, [][]byte{{9}}, r.Args)

	// The upgrade dropped the upgradeable flag.
	err = interaction.NewContractUpgrade(ctx, addr).
		UpgradeFromSource(addr, api.CodeMetadataUpgradeable)
	requireAbort(t, err, errors.UserError, errors.MsgUpgradeNotAllowed)
}

func TestUpgrade_NoTarget(t *testing.T) {
	_, ctx := parentContext(t, 1000)
	err := interaction.NewContractDeploy(ctx).UpgradeContract(types.NewManagedBufferFromBytes(ctx, echoCode), 0)
	var e *errors.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, errors.PhaseSend, e.Phase)
}

func TestContractCall(t *testing.T) {
	w, ctx := parentContext(t, 1000)
	addr, _, err := interaction.NewContractDeploy(ctx).
		DeployContract(types.NewManagedBufferFromBytes(ctx, echoCode), 0)
	require.NoError(t, err)

	var n uint32
	var s string
	ctx.SetGasLeft(400)
	err = interaction.NewContractCall(ctx, addr, "echo").
		PushEndpointArg(uint32(258)).
		PushEndpointArg("hello").
		ExecuteOnDestContextDecode(&n, &s)
	require.NoError(t, err)
	assert.Equal(t, uint32(258), n)
	assert.Equal(t, "hello", s)

	r := ctx.Sends()[1]
	assert.Equal(t, mock.SendExecute, r.Kind)
	assert.Equal(t, "echo", r.Function)
	assert.Equal(t, uint64(400), r.Gas)

	err = interaction.NewContractCall(ctx, addr, "echo").
		PushEndpointArg(uint8(1)).
		PushEndpointArg(uint8(2)).
		ExecuteOnDestContextDecode(&n)
	requireAbort(t, err, errors.UserError, errors.MsgContractCallDecode+"too many arguments")

	_, err = interaction.NewContractCall(ctx, addr, "fail").ExecuteOnDestContext()
	requireAbort(t, err, errors.UserError, "refused")
	acc, _ := w.Account(addr.Bytes())
	assert.NotContains(t, acc.Storage, "touched")

	_, err = interaction.NewContractCall(ctx, addr, "missing").ExecuteOnDestContext()
	requireAbort(t, err, errors.FunctionNotFound, errors.MsgFunctionNotFound)
}
