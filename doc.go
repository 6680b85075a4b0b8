// Package dharitriwasm is a contract runtime SDK for the Dharitri VM.
//
// Contract logic is written against typed managed values (buffers, big
// unsigned integers, addresses, token identifiers) whose storage lives in a
// backend arena and is addressed by integer handles. The same logic runs on
// two backends: the simulation backend in mock, and the host-bound backend
// in hostapi that forwards every operation to the VM import surface.
//
// # Architecture Overview
//
//	dharitriwasm/        Root package with the linear Memory interface
//	├── api/             Backend capability interfaces, handles, token types
//	├── arena/           Handle tables backing managed values
//	├── codec/           Top-level and nested binary encoding
//	├── types/           Managed value wrappers
//	├── callvalue/       Incoming payment resolution
//	├── endpoint/        Argument loading, results, storage helpers
//	├── interaction/     Deploy, upgrade and call builders
//	├── hostapi/         Host-bound backend over the VM imports
//	├── vmhost/          wazero host running wasm contracts
//	├── mock/            Simulated world, transactions and scenarios
//	├── errors/          Structured errors and VM aborts
//	└── cmd/scenario/    Scenario runner
//
// # Quick Start
//
// Run contract logic against a simulated world:
//
//	w := mock.NewWorld()
//	w.RegisterContract([]byte("adder"), mock.Contract{
//	    "getSum": func(b api.Backend) error {
//	        return endpoint.Finish(b, types.BigUintFromUint64(b, 8))
//	    },
//	})
//	res := w.Execute(mock.TxInput{From: owner, To: adder, Function: "getSum"})
//
// Run a compiled contract:
//
//	rt, err := vmhost.New(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer rt.Close(ctx)
//
//	if err := rt.Register(ctx, w, wasmBytes); err != nil {
//	    log.Fatal(err)
//	}
//
// # Failures
//
// A failing call ends with an *errors.Abort carrying a VM return code and a
// message. Call value violations abort with status 10 (execution failed),
// signalError and argument decoding failures with status 4 (user error).
//
// # Thread Safety
//
// A World and its transaction contexts are single-threaded. A vmhost Runtime
// and its compiled Modules are safe for concurrent use; an Instance is not.
package dharitriwasm
