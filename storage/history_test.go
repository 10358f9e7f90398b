package storage

import (
	"path/filepath"
	"slices"
	"testing"
)

func newTestStore(t *testing.T) *HistoryStore {
	t.Helper()
	store, err := NewHistoryStore(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestHistoryRecordAndTop(t *testing.T) {
	store := newTestStore(t)

	for range 3 {
		if err := store.RecordQuery("cats playing"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	for range 2 {
		if err := store.RecordQuery("cats sleeping"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if err := store.RecordQuery("dogs"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	top, err := store.TopQueries("cats", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !slices.Equal(top, []string{"cats playing", "cats sleeping"}) {
		t.Errorf("expected ranked cats queries, got %v", top)
	}

	top, err = store.TopQueries("cats", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !slices.Equal(top, []string{"cats playing"}) {
		t.Errorf("expected only the most searched query, got %v", top)
	}
}

func TestHistoryNormalizesQueries(t *testing.T) {
	store := newTestStore(t)

	if err := store.RecordQuery("  CATS  "); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.RecordQuery("cats"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	top, err := store.TopQueries("CaTs", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !slices.Equal(top, []string{"cats"}) {
		t.Errorf("expected one normalized entry, got %v", top)
	}
}

func TestHistoryIgnoresBlankQueries(t *testing.T) {
	store := newTestStore(t)

	if err := store.RecordQuery("   "); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	top, err := store.TopQueries("", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(top) != 0 {
		t.Errorf("expected empty history, got %v", top)
	}
}
