package location

import (
	"context"
	"sync"

	"weathernow.app/internal/ports"
	"weathernow.app/pkg/errors"
)

type locationLister interface {
	List(ctx context.Context) ([]*Location, error)
}

// Listing is the live, deduplicated and sorted view of registered locations.
// It starts from the persisted records and follows the registry event bus.
type Listing struct {
	source locationLister
	events ports.LocationEvents
	logger ports.Logger

	mu        sync.RWMutex
	locations []*Location
	names     map[string]struct{}
}

type ListingDependencies struct {
	Source locationLister
	Events ports.LocationEvents
	Logger ports.Logger
}

func NewListing(deps ListingDependencies) (*Listing, error) {
	if deps.Source == nil {
		return nil, errors.NewValidationError("listing source is required")
	}
	if deps.Events == nil {
		return nil, errors.NewValidationError("location events are required")
	}
	if deps.Logger == nil {
		return nil, errors.NewValidationError("logger is required")
	}

	return &Listing{
		source: deps.Source,
		events: deps.Events,
		logger: deps.Logger,
		names:  make(map[string]struct{}),
	}, nil
}

// Start subscribes to registry events, loads the persisted locations and
// keeps the view current until ctx is done or the bus closes. The returned
// channel is closed once the listing stops following events.
func (l *Listing) Start(ctx context.Context) (<-chan struct{}, error) {
	updates := l.events.Subscribe(ctx)

	if err := l.reload(ctx); err != nil {
		return nil, err
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		l.follow(ctx, updates)
		l.logger.Debug("Location listing stopped")
	}()

	return done, nil
}

// follow applies events until ctx is done. A subscription dropped by the bus
// while ctx is live is renewed and the view reloaded, since events were lost.
func (l *Listing) follow(ctx context.Context, updates <-chan ports.LocationEvent) {
	for {
		for event := range updates {
			l.apply(ctx, event)
		}
		if ctx.Err() != nil {
			return
		}

		l.logger.Warn("Location events subscription dropped, resyncing")
		updates = l.events.Subscribe(ctx)
		select {
		case event, ok := <-updates:
			if !ok {
				// bus closed
				return
			}
			l.apply(ctx, event)
		default:
		}

		if err := l.reload(ctx); err != nil {
			l.logger.Error("Failed to reload locations after resubscribe", ports.F("error", err))
		}
	}
}

// Snapshot returns a copy of the current view
func (l *Listing) Snapshot() []*Location {
	l.mu.RLock()
	defer l.mu.RUnlock()

	result := make([]*Location, len(l.locations))
	copy(result, l.locations)
	return result
}

// Len returns the number of distinct city names in the view
func (l *Listing) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.locations)
}

// At returns the location at index i of the sorted view
func (l *Listing) At(i int) (*Location, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if i < 0 || i >= len(l.locations) {
		return nil, false
	}
	return l.locations[i], true
}

func (l *Listing) apply(ctx context.Context, event ports.LocationEvent) {
	switch event.Type {
	case ports.LocationAdded:
		l.insert(fromData(&event.Location))
	case ports.LocationUpdated:
		l.replace(fromData(&event.Location))
	case ports.LocationDeleted:
		// the deleted name may still be held by a later duplicate
		if err := l.reload(ctx); err != nil {
			l.logger.Error("Failed to reload locations after delete",
				ports.F("id", event.Location.ID),
				ports.F("error", err))
		}
	default:
		l.logger.Warn("Ignoring unknown location event", ports.F("type", event.Type.String()))
	}
}

func (l *Listing) insert(loc *Location) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, exists := l.names[loc.CityName]; exists {
		return
	}
	l.names[loc.CityName] = struct{}{}
	l.locations = append(l.locations, loc)
	sortByCityName(l.locations)
}

// replace swaps in the updated record when it is the one shown for its city
func (l *Listing) replace(loc *Location) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i, current := range l.locations {
		if current.ID == loc.ID {
			l.locations[i] = loc
			return
		}
	}
}

func (l *Listing) reload(ctx context.Context) error {
	locations, err := l.source.List(ctx)
	if err != nil {
		return err
	}

	names := make(map[string]struct{}, len(locations))
	for _, loc := range locations {
		names[loc.CityName] = struct{}{}
	}

	l.mu.Lock()
	l.locations = locations
	l.names = names
	l.mu.Unlock()
	return nil
}
