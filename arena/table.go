package arena

// Table is a growable handle-indexed store of values of one kind.
type Table[H Handle, V any] struct {
	name      string
	entries   []V
	observers []Observer
	closed    bool
}

// NewTable creates an empty table. The name is reported in events.
func NewTable[H Handle, V any](name string) *Table[H, V] {
	return &Table[H, V]{
		name:    name,
		entries: make([]V, 0, 16),
	}
}

// Name returns the table name.
func (t *Table[H, V]) Name() string {
	return t.name
}

// Insert adds a value and returns its handle.
// Returns 0 if the table is closed.
func (t *Table[H, V]) Insert(value V) H {
	if t.closed {
		return 0
	}

	t.entries = append(t.entries, value)
	handle := H(len(t.entries))

	t.notify(Event{
		Type:   EventCreated,
		Handle: int32(handle),
		Value:  value,
	})

	return handle
}

// Get retrieves a value by handle.
func (t *Table[H, V]) Get(handle H) (V, bool) {
	idx, ok := t.index(handle)
	if !ok {
		var zero V
		return zero, false
	}
	return t.entries[idx], true
}

// Set overwrites the value behind an existing handle.
func (t *Table[H, V]) Set(handle H, value V) bool {
	idx, ok := t.index(handle)
	if !ok {
		return false
	}

	t.entries[idx] = value
	t.notify(Event{
		Type:   EventUpdated,
		Handle: int32(handle),
		Value:  value,
	})
	return true
}

// Len returns the number of values in the table.
func (t *Table[H, V]) Len() int {
	return len(t.entries)
}

// Each iterates over all values in allocation order.
func (t *Table[H, V]) Each(fn func(H, V) bool) {
	for i, v := range t.entries {
		if !fn(H(i+1), v) {
			break
		}
	}
}

// Subscribe adds an observer for lifecycle events.
func (t *Table[H, V]) Subscribe(o Observer) {
	t.observers = append(t.observers, o)
}

// Unsubscribe removes an observer. The observer must be comparable;
// ObserverFunc values cannot be unsubscribed.
func (t *Table[H, V]) Unsubscribe(o Observer) {
	for i, obs := range t.observers {
		if obs == o {
			t.observers = append(t.observers[:i], t.observers[i+1:]...)
			return
		}
	}
}

// Closed reports whether the table has been discarded.
func (t *Table[H, V]) Closed() bool {
	return t.closed
}

// Close discards every value and stops accepting operations.
func (t *Table[H, V]) Close() error {
	if t.closed {
		return nil
	}
	t.closed = true

	for i, v := range t.entries {
		t.notify(Event{
			Type:   EventDiscarded,
			Handle: int32(i + 1),
			Value:  v,
		})
	}

	t.entries = nil
	t.observers = nil
	return nil
}

func (t *Table[H, V]) index(handle H) (int, bool) {
	if t.closed || handle <= 0 {
		return 0, false
	}
	idx := int(handle) - 1
	if idx >= len(t.entries) {
		return 0, false
	}
	return idx, true
}

func (t *Table[H, V]) notify(e Event) {
	if len(t.observers) == 0 {
		return
	}
	e.Table = t.name
	for _, o := range t.observers {
		o.OnArenaEvent(e)
	}
}
