package driver

import (
	"errors"
	"testing"
)

func TestRegistryGet(t *testing.T) {
	r := DefaultRegistry()

	d, ok := r.Get("pornhub")
	if !ok {
		t.Fatal("expected pornhub to be registered")
	}
	if d.Name() != "Pornhub" {
		t.Errorf("expected driver name Pornhub, got %q", d.Name())
	}

	// Lookup is case-insensitive.
	if _, ok := r.Get("PornHub"); !ok {
		t.Error("expected case-insensitive lookup to succeed")
	}

	if _, ok := r.Get("unknown"); ok {
		t.Error("expected miss for unknown source")
	}
}

func TestRegistryIDsOrder(t *testing.T) {
	r := NewRegistry()
	r.Register("bravo", NewXvideos())
	r.Register("alpha", NewPornhub())

	ids := r.IDs()
	if len(ids) != 2 || ids[0] != "bravo" || ids[1] != "alpha" {
		t.Errorf("expected registration order [bravo alpha], got %v", ids)
	}
}

func TestRegistryEnableDisable(t *testing.T) {
	r := DefaultRegistry()

	if !r.Enabled("xvideos") {
		t.Fatal("expected sources to start enabled")
	}

	if err := r.SetEnabled("xvideos", false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Enabled("xvideos") {
		t.Error("expected xvideos to be disabled")
	}

	// Disabled sources still resolve via Get.
	if _, ok := r.Get("xvideos"); !ok {
		t.Error("expected disabled source to still be registered")
	}

	enabled, err := r.Toggle("xvideos")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !enabled {
		t.Error("expected toggle to re-enable xvideos")
	}

	if _, err := r.Toggle("unknown"); !errors.Is(err, ErrSourceNotFound) {
		t.Errorf("expected ErrSourceNotFound, got %v", err)
	}
	if err := r.SetEnabled("unknown", true); !errors.Is(err, ErrSourceNotFound) {
		t.Errorf("expected ErrSourceNotFound, got %v", err)
	}
}

func TestRegistrySources(t *testing.T) {
	r := DefaultRegistry()
	r.SetEnabled("redtube", false)

	statuses := r.Sources()
	if len(statuses) != 8 {
		t.Fatalf("expected 8 sources, got %d", len(statuses))
	}

	byName := make(map[string]SourceStatus)
	for _, s := range statuses {
		byName[s.Name] = s
	}

	if s := byName["redtube"]; s.Enabled {
		t.Error("expected redtube to be reported disabled")
	}
	if s := byName["tnaflix"]; s.DriverName != "TNAFlix" {
		t.Errorf("expected driver name TNAFlix, got %q", s.DriverName)
	}
}
