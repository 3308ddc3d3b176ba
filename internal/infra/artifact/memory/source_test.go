package memory

import (
	"context"
	"errors"
	"testing"

	"fitrecon/internal/artifact/core"
	"fitrecon/pkg/domain"
)

func TestFetchUnseededReturnsNotFound(t *testing.T) {
	src := New(nil)
	if _, err := src.Fetch(context.Background()); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFetchReturnsIsolatedCopies(t *testing.T) {
	seed := []domain.Participant{{Name: "Alice"}}
	seed[0].SetCycle("2024", domain.StationMeasurements{Grip: "25"})
	src := New(seed)

	got, err := src.Fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	got[0].SetCycle("2025", domain.StationMeasurements{})

	again, _ := src.Fetch(context.Background())
	if again[0].HasCycle("2025") {
		t.Fatalf("caller mutation leaked back into the source")
	}
	if src.Fetches() != 2 {
		t.Fatalf("expected 2 fetches, got %d", src.Fetches())
	}
}

func TestFailWith(t *testing.T) {
	src := New([]domain.Participant{{Name: "Alice"}})
	boom := errors.New("disk on fire")
	src.FailWith(boom)
	if _, err := src.Fetch(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected injected error, got %v", err)
	}
	if src.Driver() != core.DriverMemory {
		t.Fatalf("unexpected driver %s", src.Driver())
	}
}
