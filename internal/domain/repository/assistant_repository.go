package repository

import (
	"context"

	"flightlog-service/internal/domain/entity"
)

// AssistantRepository defines the interface for the generative assistant
// service. Both calls are best-effort: callers must tolerate errors and
// partially filled results without disturbing any local state.
type AssistantRepository interface {
	// ParseFlight turns a free-text flight description into a structured
	// draft, resolving relative dates against today (a DateLayout day).
	ParseFlight(ctx context.Context, text string, today string) (*entity.FlightDraft, error)

	// Narrate writes a traveler profile from the flattened flight history.
	Narrate(ctx context.Context, history []string) (string, error)
}
