package vmhost

import (
	"context"
	stderrors "errors"
	"slices"
	"strings"

	"github.com/tetratelabs/wazero"
	wapi "github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/dharitri/dharitri-wasm-go/api"
	"github.com/dharitri/dharitri-wasm-go/errors"
	"github.com/dharitri/dharitri-wasm-go/hostapi"
	"github.com/dharitri/dharitri-wasm-go/mock"
)

// Module is a compiled contract.
type Module struct {
	rt        *Runtime
	compiled  wazero.CompiledModule
	endpoints []string
}

// Endpoints returns the exported endpoint names in sorted order.
func (m *Module) Endpoints() []string {
	return slices.Clone(m.endpoints)
}

// HasEndpoint reports whether name is an exported endpoint.
func (m *Module) HasEndpoint(name string) bool {
	_, found := slices.BinarySearch(m.endpoints, name)
	return found
}

// Close releases the compiled code.
func (m *Module) Close(ctx context.Context) error {
	return m.compiled.Close(ctx)
}

// Instantiate creates an instance whose host calls go to imports.
func (m *Module) Instantiate(ctx context.Context, imports hostapi.Imports) (*Instance, error) {
	cfg := wazero.NewModuleConfig().WithName("").WithStartFunctions()
	mod, err := m.rt.r.InstantiateModule(withImports(ctx, imports), m.compiled, cfg)
	if err != nil {
		return nil, errors.Instantiation(err)
	}
	return &Instance{
		module:  m,
		mod:     mod,
		imports: imports,
		memory:  wrapMemory(mod.Memory()),
	}, nil
}

// Contract exposes the module's endpoints to a World. Every call
// instantiates the module over the calling transaction context and closes
// the instance when the endpoint returns.
func (m *Module) Contract(ctx context.Context) mock.Contract {
	c := make(mock.Contract, len(m.endpoints))
	for _, name := range m.endpoints {
		c[name] = func(b api.Backend) error {
			tx, ok := b.(*mock.TxContext)
			if !ok {
				return errors.Unsupported(errors.PhaseHost, "backend")
			}
			inst, err := m.Instantiate(ctx, mock.NewVMHooks(tx))
			if err != nil {
				return errors.NewAbort(errors.ContractInvalid, errors.MsgContractInvalid)
			}
			defer closeLogged(ctx, inst, name)
			return inst.Call(ctx, name)
		}
	}
	return c
}

type closer interface {
	Close(ctx context.Context) error
}

// closeLogged closes c after an endpoint call. The call result is already
// decided, so a close failure is only logged.
func closeLogged(ctx context.Context, c closer, endpoint string) {
	if err := c.Close(ctx); err != nil {
		Logger().Debug("close instance failed", zap.String("endpoint", endpoint), zap.Error(err))
	}
}

// Instance is an instantiated contract. It is not safe for concurrent use.
type Instance struct {
	module  *Module
	mod     wapi.Module
	imports hostapi.Imports
	memory  *Memory
}

// Memory returns the instance's exported memory.
func (i *Instance) Memory() *Memory {
	return i.memory
}

// Call runs an endpoint. A failure is returned as an *errors.Abort: aborts
// raised by host functions pass through, any other trap becomes an
// execution failure.
func (i *Instance) Call(ctx context.Context, endpoint string) error {
	if !i.module.HasEndpoint(endpoint) {
		return errors.NewAbort(errors.FunctionNotFound, errors.MsgFunctionNotFound)
	}
	fn := i.mod.ExportedFunction(endpoint)
	if _, err := fn.Call(withImports(ctx, i.imports)); err != nil {
		Logger().Debug("endpoint trapped", zap.String("endpoint", endpoint), zap.Error(err))
		return trapAbort(err)
	}
	return nil
}

// Close releases the instance.
func (i *Instance) Close(ctx context.Context) error {
	return i.mod.Close(ctx)
}

// trapAbort converts the error of a trapped call into an abort.
func trapAbort(err error) *errors.Abort {
	if a, ok := errors.AsAbort(err); ok {
		return a
	}
	var e *errors.Error
	if stderrors.As(err, &e) {
		return errors.NewAbort(errors.ExecutionFailed, e.Error())
	}
	msg, _, _ := strings.Cut(err.Error(), "\n")
	return errors.NewAbort(errors.ExecutionFailed, msg)
}
