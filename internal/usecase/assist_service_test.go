package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"flightlog-service/internal/domain/entity"
)

type stubAssistant struct {
	parseFn   func(ctx context.Context, text string, today string) (*entity.FlightDraft, error)
	narrateFn func(ctx context.Context, history []string) (string, error)
}

func (s *stubAssistant) ParseFlight(ctx context.Context, text string, today string) (*entity.FlightDraft, error) {
	if s.parseFn != nil {
		return s.parseFn(ctx, text, today)
	}
	return &entity.FlightDraft{}, nil
}

func (s *stubAssistant) Narrate(ctx context.Context, history []string) (string, error) {
	if s.narrateFn != nil {
		return s.narrateFn(ctx, history)
	}
	return "", errors.New("not stubbed")
}

func TestParseFlightRejectsEmptyText(t *testing.T) {
	calls := 0
	svc := NewAssistService(&stubAssistant{
		parseFn: func(ctx context.Context, text, today string) (*entity.FlightDraft, error) {
			calls++
			return &entity.FlightDraft{}, nil
		},
	}, newTestLogger(), newTestMetrics())

	if _, err := svc.ParseFlight(context.Background(), "   "); err == nil {
		t.Error("ParseFlight() error = nil, want rejection of blank text")
	}
	if calls != 0 {
		t.Errorf("assistant called %d times for blank text, want 0", calls)
	}
}

func TestParseFlightPassesToday(t *testing.T) {
	var gotToday string
	svc := NewAssistService(&stubAssistant{
		parseFn: func(ctx context.Context, text, today string) (*entity.FlightDraft, error) {
			gotToday = today
			return &entity.FlightDraft{Departure: "SFO", Arrival: "JFK", Date: "2024-03-15"}, nil
		},
	}, newTestLogger(), newTestMetrics())

	before := time.Now().Format(entity.DateLayout)
	draft, err := svc.ParseFlight(context.Background(), "sfo to jfk on march 15")
	after := time.Now().Format(entity.DateLayout)
	if err != nil {
		t.Fatalf("ParseFlight() error = %v", err)
	}

	if gotToday != before && gotToday != after {
		t.Errorf("assistant got today = %q, want %q", gotToday, before)
	}
	if draft.Date != "2024-03-15" {
		t.Errorf("draft date = %q, want the parsed date kept", draft.Date)
	}
}

func TestParseFlightDefaultsDateToToday(t *testing.T) {
	svc := NewAssistService(&stubAssistant{
		parseFn: func(ctx context.Context, text, today string) (*entity.FlightDraft, error) {
			return &entity.FlightDraft{Departure: "SFO", Arrival: "JFK"}, nil
		},
	}, newTestLogger(), newTestMetrics())

	before := time.Now().Format(entity.DateLayout)
	draft, err := svc.ParseFlight(context.Background(), "sfo to jfk")
	after := time.Now().Format(entity.DateLayout)
	if err != nil {
		t.Fatalf("ParseFlight() error = %v", err)
	}

	if draft.Date != before && draft.Date != after {
		t.Errorf("draft date = %q, want today", draft.Date)
	}
}

func TestParseFlightWrapsAssistantError(t *testing.T) {
	svc := NewAssistService(&stubAssistant{
		parseFn: func(ctx context.Context, text, today string) (*entity.FlightDraft, error) {
			return nil, errors.New("rate limited")
		},
	}, newTestLogger(), newTestMetrics())

	if _, err := svc.ParseFlight(context.Background(), "sfo to jfk"); err == nil {
		t.Error("ParseFlight() error = nil, want assistant error surfaced")
	}
}

func TestProfileEmptyLogFallsBack(t *testing.T) {
	calls := 0
	svc := NewAssistService(&stubAssistant{
		narrateFn: func(ctx context.Context, history []string) (string, error) {
			calls++
			return "should not happen", nil
		},
	}, newTestLogger(), newTestMetrics())

	profile := svc.Profile(context.Background(), nil)
	if !profile.Fallback {
		t.Error("Profile() on empty log did not mark fallback")
	}
	if profile.Profile != FallbackProfile {
		t.Errorf("Profile() = %q, want the fixed fallback", profile.Profile)
	}
	if calls != 0 {
		t.Errorf("assistant called %d times for an empty log, want 0", calls)
	}
}

func TestProfileBuildsHistoryMostRecentFirst(t *testing.T) {
	var gotHistory []string
	svc := NewAssistService(&stubAssistant{
		narrateFn: func(ctx context.Context, history []string) (string, error) {
			gotHistory = history
			return "You chase cherry blossoms. Try Seoul next.", nil
		},
	}, newTestLogger(), newTestMetrics())

	profile := svc.Profile(context.Background(), []entity.Flight{
		{ID: "a", Departure: "SFO", Arrival: "JFK", Date: "2023-01-10"},
		{ID: "b", Departure: "LAX", Arrival: "NRT", Date: "2024-05-02"},
	})
	if profile.Fallback {
		t.Fatal("Profile() fell back unexpectedly")
	}
	if profile.Profile != "You chase cherry blossoms. Try Seoul next." {
		t.Errorf("Profile() = %q", profile.Profile)
	}

	want := []string{
		"2024-05-02: LAX to NRT",
		"2023-01-10: SFO to JFK",
	}
	if len(gotHistory) != len(want) {
		t.Fatalf("history has %d lines, want %d", len(gotHistory), len(want))
	}
	for i := range want {
		if gotHistory[i] != want[i] {
			t.Errorf("history[%d] = %q, want %q", i, gotHistory[i], want[i])
		}
	}
}

func TestProfileFallsBackOnError(t *testing.T) {
	svc := NewAssistService(&stubAssistant{
		narrateFn: func(ctx context.Context, history []string) (string, error) {
			return "", errors.New("timeout")
		},
	}, newTestLogger(), newTestMetrics())

	profile := svc.Profile(context.Background(), []entity.Flight{
		{ID: "a", Departure: "SFO", Arrival: "JFK", Date: "2023-01-10"},
	})
	if !profile.Fallback {
		t.Error("Profile() did not fall back on narration error")
	}
	if profile.Profile != FallbackProfile {
		t.Errorf("Profile() = %q, want the fixed fallback", profile.Profile)
	}
}
