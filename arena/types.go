package arena

// Handle is the set of handle types a table can be keyed by.
type Handle interface {
	~int32
}

// EventType identifies a value lifecycle event.
type EventType uint8

const (
	EventCreated EventType = iota
	EventUpdated
	EventDiscarded
)

func (t EventType) String() string {
	switch t {
	case EventCreated:
		return "created"
	case EventUpdated:
		return "updated"
	case EventDiscarded:
		return "discarded"
	default:
		return "unknown"
	}
}

// Event represents a value lifecycle event.
type Event struct {
	Value  any
	Table  string
	Handle int32
	Type   EventType
}

// Observer receives notifications about value lifecycle events.
type Observer interface {
	OnArenaEvent(Event)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(Event)

// OnArenaEvent calls f(e).
func (f ObserverFunc) OnArenaEvent(e Event) {
	f(e)
}
