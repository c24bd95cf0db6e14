package lookup

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"shipping_portal_backend/platform/novaposhta"
)

type fakeFetcher struct {
	mu             sync.Mutex
	cityCalls      []string
	warehouseCalls []string
	settlements    []novaposhta.Settlement
	warehouses     map[string][]novaposhta.Warehouse
	err            error
	delay          time.Duration
	block          chan struct{}
}

func (f *fakeFetcher) SearchCities(ctx context.Context, query string) ([]novaposhta.Settlement, error) {
	f.mu.Lock()
	f.cityCalls = append(f.cityCalls, query)
	block := f.block
	delay := f.delay
	err := f.err
	settlements := f.settlements
	f.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err != nil {
		return nil, err
	}
	return settlements, nil
}

func (f *fakeFetcher) GetWarehouses(ctx context.Context, cityRef string) ([]novaposhta.Warehouse, error) {
	f.mu.Lock()
	f.warehouseCalls = append(f.warehouseCalls, cityRef)
	delay := f.delay
	err := f.err
	warehouses := f.warehouses[cityRef]
	f.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err != nil {
		return nil, err
	}
	return warehouses, nil
}

func (f *fakeFetcher) set(fn func(*fakeFetcher)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn(f)
}

func (f *fakeFetcher) citySearches() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.cityCalls...)
}

func waitFor(t *testing.T, condition func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if condition() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

func TestCitySearcher_RapidTypingIssuesOneRequest(t *testing.T) {
	fetcher := &fakeFetcher{settlements: []novaposhta.Settlement{{Ref: "kyiv", MainDescription: "Київ"}}}
	searcher := NewCitySearcher(fetcher, 50*time.Millisecond, nil)
	defer searcher.Close()

	for _, q := range []string{"K", "Ki", "Kyi", "Kyiv"} {
		searcher.SetQuery(q)
		time.Sleep(10 * time.Millisecond)
	}

	waitFor(t, func() bool {
		state := searcher.State()
		return !state.Loading && len(state.Cities) == 1
	})

	calls := fetcher.citySearches()
	if len(calls) != 1 || calls[0] != "Kyiv" {
		t.Fatalf("expected a single request for \"Kyiv\", got %v", calls)
	}
}

func TestCitySearcher_ShortQueryClearsWithoutRequest(t *testing.T) {
	fetcher := &fakeFetcher{settlements: []novaposhta.Settlement{{Ref: "kyiv"}}}
	searcher := NewCitySearcher(fetcher, 20*time.Millisecond, nil)
	defer searcher.Close()

	searcher.SetQuery("Kyiv")
	waitFor(t, func() bool { return len(searcher.State().Cities) == 1 })

	searcher.SetQuery("K")
	waitFor(t, func() bool {
		state := searcher.State()
		return len(state.Cities) == 0 && state.Err == "" && !state.Loading
	})

	calls := fetcher.citySearches()
	if len(calls) != 1 {
		t.Fatalf("short query must not hit the network, got calls %v", calls)
	}
}

func TestCitySearcher_ErrorStateAndRecovery(t *testing.T) {
	fetcher := &fakeFetcher{err: errors.New("carrier down")}
	searcher := NewCitySearcher(fetcher, 20*time.Millisecond, nil)
	defer searcher.Close()

	searcher.SetQuery("Kyiv")
	waitFor(t, func() bool { return searcher.State().Err == "carrier down" })

	if state := searcher.State(); len(state.Cities) != 0 || state.Loading {
		t.Fatalf("error state must clear results and loading: %+v", state)
	}

	fetcher.set(func(f *fakeFetcher) {
		f.err = nil
		f.settlements = []novaposhta.Settlement{{Ref: "lviv"}}
	})
	searcher.SetQuery("Lviv")
	waitFor(t, func() bool {
		state := searcher.State()
		return state.Err == "" && len(state.Cities) == 1
	})
}

func TestCitySearcher_StaleResultDiscarded(t *testing.T) {
	block := make(chan struct{})
	fetcher := &fakeFetcher{
		settlements: []novaposhta.Settlement{{Ref: "stale"}},
		block:       block,
	}
	searcher := NewCitySearcher(fetcher, 10*time.Millisecond, nil)
	defer searcher.Close()

	searcher.SetQuery("Kyiv")
	waitFor(t, func() bool { return len(fetcher.citySearches()) == 1 })

	// A newer query settles while the first request hangs.
	fetcher.set(func(f *fakeFetcher) {
		f.block = nil
		f.settlements = []novaposhta.Settlement{{Ref: "fresh"}}
	})
	searcher.SetQuery("Lviv")
	waitFor(t, func() bool { return len(fetcher.citySearches()) == 2 })

	// Release the stale request only after the fresh one completed.
	waitFor(t, func() bool {
		state := searcher.State()
		return len(state.Cities) == 1 && state.Cities[0].Ref == "fresh"
	})
	close(block)

	time.Sleep(50 * time.Millisecond)
	if state := searcher.State(); state.Cities[0].Ref != "fresh" {
		t.Fatalf("stale result overwrote fresh state: %+v", state)
	}
}

func TestCitySearcher_OnChangeReceivesSnapshots(t *testing.T) {
	fetcher := &fakeFetcher{settlements: []novaposhta.Settlement{{Ref: "kyiv"}}}

	var mu sync.Mutex
	var snapshots []CityState
	searcher := NewCitySearcher(fetcher, 20*time.Millisecond, func(state CityState) {
		mu.Lock()
		snapshots = append(snapshots, state)
		mu.Unlock()
	})
	defer searcher.Close()

	searcher.SetQuery("Kyiv")
	waitFor(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(snapshots) >= 2
	})

	mu.Lock()
	defer mu.Unlock()
	if !snapshots[0].Loading {
		t.Fatalf("first snapshot should be loading: %+v", snapshots[0])
	}
	last := snapshots[len(snapshots)-1]
	if last.Loading || len(last.Cities) != 1 {
		t.Fatalf("final snapshot should carry results: %+v", last)
	}
}
