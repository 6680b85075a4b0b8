// Package arena provides the managed value storage behind simulated call
// contexts.
//
// A Table maps integer handles to Go values. Handles are allocated
// sequentially starting at 1; handle 0 is reserved and always invalid:
//
//	buffers := arena.NewTable[api.BufferHandle, []byte]("buffer")
//
//	h := buffers.Insert([]byte("hello"))
//	value, ok := buffers.Get(h)
//	buffers.Set(h, []byte("world"))
//
// # Lifetime
//
// There is no per-value deallocation. All values live until the owning call
// context ends, at which point Close discards the whole table at once. A
// closed table rejects further inserts and lookups, so a handle that outlives
// its context can never resolve to a value.
//
// # Type Safety
//
// Tables are generic over the handle type. Using distinct handle types per
// table (buffer handles, big integer handles) turns cross-table handle misuse
// into a compile error.
//
// # Observers
//
// Register observers to trace value lifecycle events:
//
//	table.Subscribe(observerFunc(func(e arena.Event) {
//	    log.Printf("%s %d %s", e.Table, e.Handle, e.Type)
//	}))
//
// Tables are not safe for concurrent use. A table belongs to exactly one call
// context, which runs on a single goroutine.
package arena
