package ports

import "context"

// LocationEventType identifies a registry mutation
type LocationEventType int

const (
	LocationAdded LocationEventType = iota + 1
	LocationDeleted
	// LocationUpdated carries the stored record after its weather fields changed
	LocationUpdated
)

// String returns the string representation of the event type
func (t LocationEventType) String() string {
	switch t {
	case LocationAdded:
		return "location_added"
	case LocationDeleted:
		return "location_deleted"
	case LocationUpdated:
		return "location_updated"
	default:
		return "unknown"
	}
}

// LocationEvent announces a registry mutation to subscribers
type LocationEvent struct {
	Type     LocationEventType
	Location LocationData
}

// LocationEvents is the registry-owned publish/subscribe channel.
// Subscribe returns a channel that is closed when ctx is done or the bus is closed.
type LocationEvents interface {
	Publish(ctx context.Context, event LocationEvent)
	Subscribe(ctx context.Context) <-chan LocationEvent
}
