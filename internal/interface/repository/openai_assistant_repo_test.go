package repository

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"flightlog-service/pkg/logger"
)

func chatReply(t *testing.T, w http.ResponseWriter, content string) {
	t.Helper()
	err := json.NewEncoder(w).Encode(map[string]interface{}{
		"choices": []map[string]interface{}{
			{"message": map[string]string{"role": "assistant", "content": content}},
		},
	})
	if err != nil {
		t.Fatalf("failed to encode reply: %v", err)
	}
}

func newTestAssistant(t *testing.T, handler http.HandlerFunc) *OpenAIAssistantRepository {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	log := logger.NewLogger("error")
	repo := NewOpenAIAssistantRepository(server.URL, "test-key", "test-model", 5*time.Second, log).(*OpenAIAssistantRepository)
	repo.initialDelay = time.Millisecond
	return repo
}

func TestParseFlight(t *testing.T) {
	repo := newTestAssistant(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("path = %q, want /chat/completions", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization = %q, want Bearer test-key", got)
		}

		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if req.Model != "test-model" {
			t.Errorf("model = %q, want test-model", req.Model)
		}
		if req.ResponseFormat == nil || req.ResponseFormat.Type != "json_object" {
			t.Errorf("response_format = %+v, want json_object", req.ResponseFormat)
		}

		chatReply(t, w, `{"departure":" SFO ","arrival":"JFK","date":"2024-03-15","airline":"United"}`)
	})

	draft, err := repo.ParseFlight(context.Background(), "flew united from sfo to jfk on march 15", "2024-03-20")
	if err != nil {
		t.Fatalf("ParseFlight() error = %v", err)
	}
	if draft.Departure != "SFO" || draft.Arrival != "JFK" || draft.Date != "2024-03-15" || draft.Airline != "United" {
		t.Errorf("ParseFlight() = %+v, want trimmed SFO/JFK/2024-03-15/United", draft)
	}
}

func TestParseFlightFencedReply(t *testing.T) {
	repo := newTestAssistant(t, func(w http.ResponseWriter, r *http.Request) {
		chatReply(t, w, "```json\n{\"departure\":\"LAX\",\"arrival\":\"NRT\",\"date\":\"\",\"airline\":\"\"}\n```")
	})

	draft, err := repo.ParseFlight(context.Background(), "lax to tokyo", "2024-03-20")
	if err != nil {
		t.Fatalf("ParseFlight() error = %v", err)
	}
	if draft.Departure != "LAX" || draft.Arrival != "NRT" {
		t.Errorf("ParseFlight() = %+v, want LAX/NRT", draft)
	}
	if draft.Date != "" || draft.Airline != "" {
		t.Errorf("ParseFlight() = %+v, want empty date and airline", draft)
	}
}

func TestParseFlightRetriesServerError(t *testing.T) {
	calls := 0
	repo := newTestAssistant(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		chatReply(t, w, `{"departure":"SFO","arrival":"JFK","date":"2024-03-15","airline":""}`)
	})

	draft, err := repo.ParseFlight(context.Background(), "sfo to jfk", "2024-03-20")
	if err != nil {
		t.Fatalf("ParseFlight() error = %v", err)
	}
	if calls != 2 {
		t.Errorf("server saw %d calls, want 2", calls)
	}
	if draft.Arrival != "JFK" {
		t.Errorf("ParseFlight() arrival = %q, want JFK", draft.Arrival)
	}
}

func TestParseFlightDoesNotRetryClientError(t *testing.T) {
	calls := 0
	repo := newTestAssistant(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]string{"message": "bad request", "type": "invalid_request_error"},
		})
	})

	if _, err := repo.ParseFlight(context.Background(), "sfo to jfk", "2024-03-20"); err == nil {
		t.Fatal("ParseFlight() error = nil, want API error")
	}
	if calls != 1 {
		t.Errorf("server saw %d calls, want 1", calls)
	}
}

func TestNarrate(t *testing.T) {
	repo := newTestAssistant(t, func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if req.ResponseFormat != nil {
			t.Errorf("response_format = %+v, want none for narration", req.ResponseFormat)
		}
		chatReply(t, w, "  You are a coastal commuter who keeps coming back to JFK.  ")
	})

	profile, err := repo.Narrate(context.Background(), []string{"2024-03-15: SFO to JFK"})
	if err != nil {
		t.Fatalf("Narrate() error = %v", err)
	}
	want := "You are a coastal commuter who keeps coming back to JFK."
	if profile != want {
		t.Errorf("Narrate() = %q, want %q", profile, want)
	}
}

func TestChatWithoutAPIKey(t *testing.T) {
	log := logger.NewLogger("error")
	repo := NewOpenAIAssistantRepository("http://127.0.0.1:1", "", "test-model", time.Second, log)

	if _, err := repo.Narrate(context.Background(), []string{"2024-03-15: SFO to JFK"}); err == nil {
		t.Error("Narrate() error = nil, want missing key error")
	}
}

func TestStripJSONFence(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare json", `{"a":1}`, `{"a":1}`},
		{"fenced json", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"fenced no language", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"surrounding whitespace", "  {\"a\":1}\n", `{"a":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripJSONFence(tt.in); got != tt.want {
				t.Errorf("stripJSONFence(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
