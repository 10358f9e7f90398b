package search

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"slices"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/Mentallyspammed1/neonsearch/driver"
)

func stubRecords(source string, n int) []driver.Video {
	records := make([]driver.Video, n)
	for i := range records {
		records[i] = driver.Video{
			ID:        fmt.Sprintf("%s-%d", source, i),
			Title:     fmt.Sprintf("%s video %d", source, i),
			URL:       fmt.Sprintf("https://%s.test/watch/%d", source, i),
			Thumbnail: fmt.Sprintf("https://%s.test/thumb/%d.jpg", source, i),
			Source:    source,
			Type:      driver.TypeVideo,
		}
	}
	return records
}

// newTestAggregator wires an aggregator whose stub sources all fetch
// from one local server and return canned records from their parsers.
func newTestAggregator(t *testing.T, counts map[string]int) (*Aggregator, *driver.Registry) {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html></html>"))
	}))
	t.Cleanup(srv.Close)

	registry := driver.NewRegistry()
	ids := make([]string, 0, len(counts))
	for id := range counts {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		registry.Register(id, &stubSource{name: id, url: srv.URL, records: stubRecords(id, counts[id])})
	}

	fetcher := NewFetcher(FetcherConfig{
		Timeout:     2 * time.Second,
		MaxRetries:  2,
		BackoffBase: 5 * time.Millisecond,
		UserAgent:   "test-agent",
	}, zap.NewNop())

	rng := rand.New(rand.NewSource(1))
	agg := NewAggregator(registry, fetcher, NewCache(10), rng, zap.NewNop())
	return agg, registry
}

func TestSearchAggregatesAllSources(t *testing.T) {
	agg, _ := newTestAggregator(t, map[string]int{"alpha": 3, "beta": 2, "gamma": 4})

	resp, err := agg.Search(context.Background(), Request{Query: "cats", Page: 1, Limit: 20})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.Total != 9 {
		t.Errorf("expected total 9, got %d", resp.Total)
	}
	if len(resp.Results) != 9 {
		t.Errorf("expected 9 results, got %d", len(resp.Results))
	}
	if len(resp.SourcesSearched) != 3 {
		t.Errorf("expected 3 sources searched, got %v", resp.SourcesSearched)
	}
	if resp.Page != 1 {
		t.Errorf("expected page 1, got %d", resp.Page)
	}
}

func TestSearchPagination(t *testing.T) {
	agg, _ := newTestAggregator(t, map[string]int{"alpha": 15, "beta": 10})

	page2, err := agg.Search(context.Background(), Request{Query: "cats", Page: 2, Limit: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if page2.Total != 25 {
		t.Errorf("expected total 25, got %d", page2.Total)
	}
	if len(page2.Results) != 10 {
		t.Errorf("expected 10 results on page 2, got %d", len(page2.Results))
	}

	// A page past the end is empty but still a success.
	past, err := agg.Search(context.Background(), Request{Query: "cats", Page: 9, Limit: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(past.Results) != 0 {
		t.Errorf("expected empty page past the end, got %d", len(past.Results))
	}
	if past.Results == nil {
		t.Error("expected empty slice, not nil")
	}
}

func TestSearchIsolatesFailingSource(t *testing.T) {
	agg, registry := newTestAggregator(t, map[string]int{"alpha": 3, "beta": 2})
	// A third source whose fetch always fails.
	registry.Register("broken", &stubSource{
		name:    "broken",
		url:     "http://127.0.0.1:1",
		records: stubRecords("broken", 5),
	})

	resp, err := agg.Search(context.Background(), Request{Query: "cats", Page: 1, Limit: 20})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.Total != 5 {
		t.Errorf("expected 5 records from the healthy sources, got %d", resp.Total)
	}
	for _, r := range resp.Results {
		if r.Source == "broken" {
			t.Errorf("unexpected record from failing source: %+v", r)
		}
	}
	// The failing source was still dispatched and is reported.
	if !slices.Contains(resp.SourcesSearched, "broken") {
		t.Errorf("expected broken in sources searched, got %v", resp.SourcesSearched)
	}
	if len(resp.SourcesSearched) != 3 {
		t.Errorf("expected 3 sources searched, got %v", resp.SourcesSearched)
	}
}

func TestSearchNoActiveSources(t *testing.T) {
	agg, registry := newTestAggregator(t, map[string]int{"alpha": 3})
	registry.SetEnabled("alpha", false)

	_, err := agg.Search(context.Background(), Request{Query: "cats", Sources: []string{"alpha"}, Page: 1, Limit: 10})
	if !errors.Is(err, ErrNoActiveSources) {
		t.Fatalf("expected ErrNoActiveSources, got %v", err)
	}

	// Unknown sources count as inactive too.
	_, err = agg.Search(context.Background(), Request{Query: "cats", Sources: []string{"nope"}, Page: 1, Limit: 10})
	if !errors.Is(err, ErrNoActiveSources) {
		t.Fatalf("expected ErrNoActiveSources, got %v", err)
	}
}

func TestSearchDisabledSourceExcluded(t *testing.T) {
	agg, registry := newTestAggregator(t, map[string]int{"alpha": 3, "beta": 2})
	registry.SetEnabled("beta", false)

	resp, err := agg.Search(context.Background(), Request{Query: "cats", Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.Total != 3 {
		t.Errorf("expected only alpha's 3 records, got %d", resp.Total)
	}
	if slices.Contains(resp.SourcesSearched, "beta") {
		t.Errorf("disabled source reported as searched: %v", resp.SourcesSearched)
	}
}

func TestSearchSourceSubset(t *testing.T) {
	agg, _ := newTestAggregator(t, map[string]int{"alpha": 3, "beta": 2})

	resp, err := agg.Search(context.Background(), Request{Query: "cats", Sources: []string{"beta"}, Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Total != 2 {
		t.Errorf("expected 2 records from beta, got %d", resp.Total)
	}
	if !slices.Equal(resp.SourcesSearched, []string{"beta"}) {
		t.Errorf("expected [beta], got %v", resp.SourcesSearched)
	}
}

func TestSearchShuffleIsSeeded(t *testing.T) {
	run := func() []string {
		agg, _ := newTestAggregator(t, map[string]int{"alpha": 5, "beta": 5})
		resp, err := agg.Search(context.Background(), Request{Query: "cats", Page: 1, Limit: 10})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		ids := make([]string, len(resp.Results))
		for i, r := range resp.Results {
			ids[i] = r.ID
		}
		return ids
	}

	first := run()
	second := run()
	if !slices.Equal(first, second) {
		t.Errorf("expected identical ordering for identical seeds:\n%v\n%v", first, second)
	}
}

func TestSearchCachesResponses(t *testing.T) {
	agg, registry := newTestAggregator(t, map[string]int{"alpha": 3})

	first, err := agg.Search(context.Background(), Request{Query: "cats", Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Disabling the source afterwards does not matter: the second call
	// is served from cache without touching the pipelines.
	registry.SetEnabled("alpha", false)

	second, err := agg.Search(context.Background(), Request{Query: "cats", Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second != first {
		t.Error("expected the cached response instance")
	}
}
