// Package mock is the in-process simulation backend. It reimplements the VM
// capability surface so contract logic written against api.Backend can be
// executed and tested without a VM.
//
// A World holds accounts and registered contract logic. Contract logic is a
// Contract: a table of Go endpoint functions keyed by name, registered under
// the code bytes that deploy it. Every call runs in its own TxContext with a
// fresh managed value arena that is discarded when the call ends.
//
// Sub-calls (deploy, upgrade, execute on destination context) run
// synchronously in a nested TxContext. A failed call restores the world state
// it started from and propagates its abort to the caller. World.Execute and
// World.Deploy are the entry dispatchers: they turn a propagated abort into a
// TxResult.
//
// VMHooks exposes a TxContext through the raw hostapi.Imports surface, so the
// host-bound backend can be run against the simulation.
//
// Scenario files in TOML describe accounts, deploys, calls and their expected
// outcomes; see Scenario.
package mock
