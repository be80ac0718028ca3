package lazycell

// Observer receives registry lifecycle events. Implementations must be
// safe for concurrent use when the registry is accessed from multiple
// goroutines.
type Observer interface {
	On(eventData EventData)
}

// Event represents a registry event type.
type Event int

const (
	// EventInit is emitted when a Get call runs a slot's initializer.
	EventInit Event = iota
	// EventHit is emitted when a Get call finds an already settled slot.
	EventHit
	// EventShared is emitted when a concurrent caller blocks on an
	// in-flight initializer and shares its outcome instead of running
	// its own.
	EventShared
	// EventPoisoned is emitted when an initializer failure poisons a
	// slot for the registry's lifetime.
	EventPoisoned
)

// EventData carries the details of a registry event.
type EventData struct {
	Event Event
	Key   string
}
