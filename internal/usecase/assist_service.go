package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"flightlog-service/internal/domain/entity"
	"flightlog-service/internal/domain/repository"
	"flightlog-service/internal/stats"
	"flightlog-service/pkg/logger"
	"flightlog-service/pkg/metrics"
)

// FallbackProfile is shown when the narration call fails or there is
// nothing to narrate yet
const FallbackProfile = "You're a traveler with stories yet to be written. Log a few flights and check back for your profile."

// AssistService wraps the generative assistant behind the two flows the
// application actually needs
type AssistService struct {
	assistant repository.AssistantRepository
	logger    logger.Logger
	metrics   *metrics.Metrics
}

// NewAssistService creates a new assist service
func NewAssistService(
	assistant repository.AssistantRepository,
	logger logger.Logger,
	metrics *metrics.Metrics,
) *AssistService {
	return &AssistService{
		assistant: assistant,
		logger:    logger,
		metrics:   metrics,
	}
}

// ParseFlight turns a free-text flight description into a structured draft.
// A draft with no date is dated today so it can be submitted as-is.
func (s *AssistService) ParseFlight(ctx context.Context, text string) (*entity.FlightDraft, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("nothing to parse")
	}

	start := time.Now()
	today := start.Format(entity.DateLayout)

	draft, err := s.assistant.ParseFlight(ctx, text, today)
	s.metrics.AssistLatency.Observe(time.Since(start).Seconds())
	if err != nil {
		s.logger.Error("Flight parse failed", "error", err)
		s.metrics.AssistCalls.WithLabelValues("parse", "error").Inc()
		return nil, fmt.Errorf("failed to parse flight text: %w", err)
	}

	if draft.Date == "" {
		draft.Date = today
	}

	s.metrics.AssistCalls.WithLabelValues("parse", "success").Inc()

	return draft, nil
}

// Profile narrates a traveler profile over the given flight log. It never
// fails: when the assistant is unavailable or the log is empty it falls
// back to a fixed profile.
func (s *AssistService) Profile(ctx context.Context, flights []entity.Flight) *entity.TravelerProfile {
	if len(flights) == 0 {
		s.metrics.AssistCalls.WithLabelValues("profile", "fallback").Inc()
		return &entity.TravelerProfile{Profile: FallbackProfile, Fallback: true}
	}

	// Most recent first, matching the timeline the user sees
	ordered := stats.FilterByScope(flights, stats.ScopeAllTime)
	history := make([]string, 0, len(ordered))
	for _, flight := range ordered {
		history = append(history, fmt.Sprintf("%s: %s to %s", flight.Date, flight.Departure, flight.Arrival))
	}

	start := time.Now()
	profile, err := s.assistant.Narrate(ctx, history)
	s.metrics.AssistLatency.Observe(time.Since(start).Seconds())
	if err != nil {
		s.logger.Warn("Profile narration failed, using fallback", "error", err)
		s.metrics.AssistCalls.WithLabelValues("profile", "fallback").Inc()
		return &entity.TravelerProfile{Profile: FallbackProfile, Fallback: true}
	}

	s.metrics.AssistCalls.WithLabelValues("profile", "success").Inc()

	return &entity.TravelerProfile{Profile: profile}
}
