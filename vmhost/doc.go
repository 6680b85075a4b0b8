// Package vmhost runs compiled contracts on wazero.
//
// A Runtime instantiates the "env" host module once. Its functions follow
// the VM import surface declared by hostapi: handles are i32, byte ranges
// are (offset, length) pairs into the guest's exported memory, and a failed
// operation traps the guest with the *errors.Abort that ended the call.
// Each function resolves the hostapi.Imports of the running instance from
// the call context, so one Runtime serves any number of concurrent
// instances and nested sub-calls.
//
// Endpoints are exported functions taking and returning nothing. A Module
// can be registered in a mock.World, where every call instantiates it over
// the calling transaction context:
//
//	rt, err := vmhost.New(ctx, vmhost.WithMemoryLimitPages(256))
//	if err != nil {
//	    return err
//	}
//	defer rt.Close(ctx)
//
//	mod, err := rt.Register(ctx, world, code)
package vmhost
