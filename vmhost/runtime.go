package vmhost

import (
	"context"
	"sort"

	"github.com/tetratelabs/wazero"
	"go.uber.org/zap"

	"github.com/dharitri/dharitri-wasm-go/errors"
	"github.com/dharitri/dharitri-wasm-go/mock"
)

type config struct {
	memoryLimitPages   uint32
	interpreter        bool
	closeOnContextDone bool
}

// Option configures a Runtime.
type Option func(*config)

// WithMemoryLimitPages caps each instance's memory in 64KiB pages.
// 0 keeps the wazero default of 65536 pages.
func WithMemoryLimitPages(pages uint32) Option {
	return func(c *config) { c.memoryLimitPages = pages }
}

// WithInterpreter selects the wazero interpreter instead of the compiler.
func WithInterpreter() Option {
	return func(c *config) { c.interpreter = true }
}

// WithCloseOnContextDone stops running guests when their context is
// cancelled.
func WithCloseOnContextDone() Option {
	return func(c *config) { c.closeOnContextDone = true }
}

// Runtime compiles and runs contracts against the env host module.
type Runtime struct {
	r wazero.Runtime
}

// New creates a runtime and instantiates the env host module in it.
func New(ctx context.Context, opts ...Option) (*Runtime, error) {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	rc := wazero.NewRuntimeConfig()
	if cfg.interpreter {
		rc = wazero.NewRuntimeConfigInterpreter()
	}
	if cfg.memoryLimitPages > 0 {
		rc = rc.WithMemoryLimitPages(cfg.memoryLimitPages)
	}
	if cfg.closeOnContextDone {
		rc = rc.WithCloseOnContextDone(true)
	}

	r := wazero.NewRuntimeWithConfig(ctx, rc)
	if err := instantiateEnv(ctx, r); err != nil {
		_ = r.Close(ctx)
		return nil, errors.Load("instantiate env module", err)
	}
	Logger().Debug("runtime ready", zap.Int("host_functions", len(envFuncs)))
	return &Runtime{r: r}, nil
}

// Close releases the runtime and every module compiled in it.
func (rt *Runtime) Close(ctx context.Context) error {
	return rt.r.Close(ctx)
}

// Compile validates and compiles a contract. Every function import must be
// provided by the env module.
func (rt *Runtime) Compile(ctx context.Context, code []byte) (*Module, error) {
	compiled, err := rt.r.CompileModule(ctx, code)
	if err != nil {
		return nil, errors.Load("compile module", err)
	}

	var missing []string
	for _, def := range compiled.ImportedFunctions() {
		module, name, _ := def.Import()
		if module != EnvModule || !envNames[name] {
			missing = append(missing, module+"#"+name)
		}
	}
	if len(missing) > 0 {
		_ = compiled.Close(ctx)
		return nil, errors.NewMissingImportsError(missing)
	}

	var endpoints []string
	for name, def := range compiled.ExportedFunctions() {
		if len(def.ParamTypes()) == 0 && len(def.ResultTypes()) == 0 {
			endpoints = append(endpoints, name)
		}
	}
	sort.Strings(endpoints)

	Logger().Debug("compiled contract",
		zap.Int("size", len(code)),
		zap.Strings("endpoints", endpoints))

	return &Module{rt: rt, compiled: compiled, endpoints: endpoints}, nil
}

// Register compiles code and registers it in w under its own bytes, so
// accounts whose code is code run it.
func (rt *Runtime) Register(ctx context.Context, w *mock.World, code []byte) (*Module, error) {
	m, err := rt.Compile(ctx, code)
	if err != nil {
		return nil, err
	}
	w.RegisterContract(code, m.Contract(ctx))
	return m, nil
}
