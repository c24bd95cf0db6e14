package lookup

import (
	"context"
	"sync"
	"time"

	"shipping_portal_backend/platform/novaposhta"
)

// DefaultQuietInterval is how long a query must stay unchanged before a
// search request is issued.
const DefaultQuietInterval = 300 * time.Millisecond

// MinQueryLength is the minimum settled query length that triggers a search.
const MinQueryLength = 2

// CityState is a snapshot of the city searcher.
type CityState struct {
	Query   string
	Cities  []novaposhta.Settlement
	Loading bool
	Err     string
}

// CitySearcher turns a stream of query edits into debounced city searches.
// Only the most recently settled query's result is ever applied; superseded
// in-flight requests are cancelled and their results discarded.
type CitySearcher struct {
	mu         sync.Mutex
	fetcher    Fetcher
	debouncer  *Debouncer
	onChange   func(CityState)
	generation uint64
	cancel     context.CancelFunc
	state      CityState
}

// NewCitySearcher creates a searcher with the given quiet interval.
// A zero interval uses DefaultQuietInterval. onChange fires on every state
// transition with a snapshot; it may be nil.
func NewCitySearcher(fetcher Fetcher, quiet time.Duration, onChange func(CityState)) *CitySearcher {
	if quiet == 0 {
		quiet = DefaultQuietInterval
	}
	return &CitySearcher{
		fetcher:   fetcher,
		debouncer: NewDebouncer(quiet),
		onChange:  onChange,
	}
}

// SetQuery records a query edit. The search fires only once the input has
// stayed unchanged for the full quiet interval.
func (s *CitySearcher) SetQuery(query string) {
	s.mu.Lock()
	s.state.Query = query
	s.mu.Unlock()

	s.debouncer.Debounce(func() {
		s.settle(query)
	})
}

// State returns a snapshot of the current searcher state.
func (s *CitySearcher) State() CityState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Close cancels any pending debounce and in-flight request.
func (s *CitySearcher) Close() {
	s.debouncer.Cancel()

	s.mu.Lock()
	s.generation++
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.mu.Unlock()
}

// settle runs once a query has survived the quiet interval.
func (s *CitySearcher) settle(query string) {
	s.mu.Lock()
	if query != s.state.Query {
		// A newer edit arrived between the timer firing and this call.
		s.mu.Unlock()
		return
	}

	s.generation++
	generation := s.generation
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}

	if len([]rune(query)) < MinQueryLength {
		s.state.Cities = nil
		s.state.Err = ""
		s.state.Loading = false
		s.notifyLocked()
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.state.Loading = true
	s.state.Err = ""
	s.notifyLocked()

	go s.search(ctx, generation, query)
}

func (s *CitySearcher) search(ctx context.Context, generation uint64, query string) {
	cities, err := s.fetcher.SearchCities(ctx, query)

	s.mu.Lock()
	if generation != s.generation {
		// Superseded by a newer settled query; discard.
		s.mu.Unlock()
		return
	}
	s.state.Loading = false
	if err != nil {
		s.state.Err = err.Error()
		s.state.Cities = nil
	} else {
		s.state.Cities = cities
	}
	s.notifyLocked()
}

// snapshotLocked copies the state; the cities slice is shared but immutable.
func (s *CitySearcher) snapshotLocked() CityState {
	return s.state
}

// notifyLocked fires the change callback outside the lock and releases it.
func (s *CitySearcher) notifyLocked() {
	snapshot := s.snapshotLocked()
	callback := s.onChange
	s.mu.Unlock()
	if callback != nil {
		callback(snapshot)
	}
}
