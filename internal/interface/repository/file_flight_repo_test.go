package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"flightlog-service/internal/domain/entity"
)

func TestFileFlightRepositoryLoadMissingFile(t *testing.T) {
	repo := NewFileFlightRepository(filepath.Join(t.TempDir(), "flights.json"))

	flights, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(flights) != 0 {
		t.Errorf("Load() returned %d flights, want 0", len(flights))
	}
}

func TestFileFlightRepositoryRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "flights.json")
	repo := NewFileFlightRepository(path)

	want := []entity.Flight{
		{ID: "a", Departure: "SFO", Arrival: "JFK", Date: "2024-03-15", Airline: "United"},
		{ID: "b", Departure: "JFK", Arrival: "LHR", Date: "2024-04-01"},
	}
	if err := repo.Replace(context.Background(), want); err != nil {
		t.Fatalf("Replace() error = %v", err)
	}

	got, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("Load() returned %d flights, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("flight %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestFileFlightRepositoryReplaceOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flights.json")
	repo := NewFileFlightRepository(path)
	ctx := context.Background()

	first := []entity.Flight{
		{ID: "a", Departure: "SFO", Arrival: "JFK", Date: "2024-03-15"},
		{ID: "b", Departure: "JFK", Arrival: "SFO", Date: "2024-03-20"},
	}
	if err := repo.Replace(ctx, first); err != nil {
		t.Fatalf("Replace() error = %v", err)
	}

	second := []entity.Flight{
		{ID: "c", Departure: "LAX", Arrival: "NRT", Date: "2024-05-02"},
	}
	if err := repo.Replace(ctx, second); err != nil {
		t.Fatalf("Replace() error = %v", err)
	}

	got, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(got) != 1 || got[0].ID != "c" {
		t.Errorf("Load() = %+v, want only flight c", got)
	}
}

func TestFileFlightRepositoryLoadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flights.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	repo := NewFileFlightRepository(path)
	if _, err := repo.Load(context.Background()); err == nil {
		t.Error("Load() on corrupt store returned nil error")
	}
}
