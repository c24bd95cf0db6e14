package lookup

import (
	"context"
	"sync"

	"shipping_portal_backend/platform/novaposhta"
)

// WarehouseState is a snapshot of the warehouse loader.
type WarehouseState struct {
	CityRef    string
	Warehouses []novaposhta.Warehouse
	Loading    bool
	Err        string
}

// WarehouseLoader fetches warehouses per selected city, caching results for
// the lifetime of the loader instance. Changing the city cancels the previous
// in-flight request; cache hits are served synchronously without a fetch.
type WarehouseLoader struct {
	mu         sync.Mutex
	fetcher    Fetcher
	onChange   func(WarehouseState)
	cache      map[string][]novaposhta.Warehouse
	generation uint64
	cancel     context.CancelFunc
	state      WarehouseState
}

// NewWarehouseLoader creates a loader. onChange fires on every state
// transition with a snapshot; it may be nil.
func NewWarehouseLoader(fetcher Fetcher, onChange func(WarehouseState)) *WarehouseLoader {
	return &WarehouseLoader{
		fetcher:  fetcher,
		onChange: onChange,
		cache:    make(map[string][]novaposhta.Warehouse),
	}
}

// SetCity switches the loader to a new city reference. An empty reference
// clears all state. A previously loaded city is served from the cache.
func (l *WarehouseLoader) SetCity(cityRef string) {
	l.mu.Lock()

	l.generation++
	generation := l.generation
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}

	l.state.CityRef = cityRef

	if cityRef == "" {
		l.state.Warehouses = nil
		l.state.Err = ""
		l.state.Loading = false
		l.notifyLocked()
		return
	}

	if cached, ok := l.cache[cityRef]; ok {
		l.state.Warehouses = cached
		l.state.Err = ""
		l.state.Loading = false
		l.notifyLocked()
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	l.cancel = cancel
	l.state.Warehouses = nil
	l.state.Loading = true
	l.state.Err = ""
	l.notifyLocked()

	go l.fetch(ctx, generation, cityRef)
}

// State returns a snapshot of the current loader state.
func (l *WarehouseLoader) State() WarehouseState {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Close cancels any in-flight request.
func (l *WarehouseLoader) Close() {
	l.mu.Lock()
	l.generation++
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	l.mu.Unlock()
}

func (l *WarehouseLoader) fetch(ctx context.Context, generation uint64, cityRef string) {
	warehouses, err := l.fetcher.GetWarehouses(ctx, cityRef)

	l.mu.Lock()
	if generation != l.generation {
		// Superseded by a newer city selection; discard, including the
		// loading flag which now belongs to the newer attempt.
		l.mu.Unlock()
		return
	}
	l.state.Loading = false
	if err != nil {
		// Failures are not cached; the next selection retries.
		l.state.Err = err.Error()
		l.state.Warehouses = nil
	} else {
		l.cache[cityRef] = warehouses
		l.state.Warehouses = warehouses
	}
	l.notifyLocked()
}

// notifyLocked fires the change callback outside the lock and releases it.
func (l *WarehouseLoader) notifyLocked() {
	snapshot := l.state
	callback := l.onChange
	l.mu.Unlock()
	if callback != nil {
		callback(snapshot)
	}
}
