package interaction

import (
	"github.com/dharitri/dharitri-wasm-go/api"
	"github.com/dharitri/dharitri-wasm-go/errors"
	"github.com/dharitri/dharitri-wasm-go/types"
)

// ContractDeploy deploys a new contract or upgrades an existing one.
type ContractDeploy struct {
	request
	to *types.ManagedAddress
}

// NewContractDeploy starts a deployment.
func NewContractDeploy(b Backend) *ContractDeploy {
	return &ContractDeploy{request: newRequest(b)}
}

// NewContractUpgrade starts an upgrade of the contract at to.
func NewContractUpgrade(b Backend, to types.ManagedAddress) *ContractDeploy {
	return &ContractDeploy{request: newRequest(b), to: &to}
}

// WithMoaxTransfer attaches a MOAX payment.
func (d *ContractDeploy) WithMoaxTransfer(amount types.BigUint) *ContractDeploy {
	d.payment = &amount
	return d
}

// WithGasLimit fixes the gas handed to the new contract.
func (d *ContractDeploy) WithGasLimit(gas uint64) *ContractDeploy {
	d.gas = gas
	return d
}

// PushEndpointArg appends the multi-encoding of v to the init arguments.
func (d *ContractDeploy) PushEndpointArg(v any) *ContractDeploy {
	d.pushArg(v)
	return d
}

// Args returns the arguments pushed so far.
func (d *ContractDeploy) Args() *types.ArgBuffer {
	return d.args
}

// DeployContract deploys code and returns the new address and the raw init
// results.
func (d *ContractDeploy) DeployContract(code types.ManagedBuffer, meta api.CodeMetadata) (types.ManagedAddress, []types.ManagedBuffer, error) {
	if err := d.consume(); err != nil {
		return types.ManagedAddress{}, nil, err
	}
	addr, out, err := d.b.DeployContract(d.resolveGas(), d.value(), code.Handle(), meta, d.args.Handles())
	if err != nil {
		return types.ManagedAddress{}, nil, err
	}
	return types.ManagedAddressFromHandle(d.b, addr), d.wrapResults(out), nil
}

// DeployFromSource deploys a copy of the code at source.
func (d *ContractDeploy) DeployFromSource(source types.ManagedAddress, meta api.CodeMetadata) (types.ManagedAddress, []types.ManagedBuffer, error) {
	if err := d.consume(); err != nil {
		return types.ManagedAddress{}, nil, err
	}
	addr, out, err := d.b.DeployFromSourceContract(d.resolveGas(), d.value(), source.Handle(), meta, d.args.Handles())
	if err != nil {
		return types.ManagedAddress{}, nil, err
	}
	return types.ManagedAddressFromHandle(d.b, addr), d.wrapResults(out), nil
}

func (d *ContractDeploy) target() (types.ManagedAddress, error) {
	if d.to == nil {
		return types.ManagedAddress{}, errors.New(errors.PhaseSend, errors.KindInvalidInput).
			GoType("ContractDeploy").
			Detail("upgrade target not set").
			Build()
	}
	return *d.to, nil
}

// UpgradeContract replaces the target's code. Failures surface as aborts.
func (d *ContractDeploy) UpgradeContract(code types.ManagedBuffer, meta api.CodeMetadata) error {
	to, err := d.target()
	if err != nil {
		return err
	}
	if err := d.consume(); err != nil {
		return err
	}
	return d.b.UpgradeContract(to.Handle(), d.resolveGas(), d.value(), code.Handle(), meta, d.args.Handles())
}

// UpgradeFromSource replaces the target's code with the code at source.
func (d *ContractDeploy) UpgradeFromSource(source types.ManagedAddress, meta api.CodeMetadata) error {
	to, err := d.target()
	if err != nil {
		return err
	}
	if err := d.consume(); err != nil {
		return err
	}
	return d.b.UpgradeFromSourceContract(to.Handle(), d.resolveGas(), d.value(), source.Handle(), meta, d.args.Handles())
}
