package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"flightlog-service/internal/domain/entity"
	"flightlog-service/internal/domain/repository"
	"flightlog-service/pkg/logger"
	"flightlog-service/pkg/metrics"

	"github.com/google/uuid"
)

// ErrNotFound is returned when no flight matches the requested ID
var ErrNotFound = errors.New("flight not found")

// FlightService owns the in-memory flight log and writes every mutation
// back to its repository
type FlightService struct {
	mu      sync.Mutex
	flights []entity.Flight
	repo    repository.FlightRepository
	logger  logger.Logger
	metrics *metrics.Metrics
}

// NewFlightService loads the stored flight log and wraps it in a service
func NewFlightService(
	ctx context.Context,
	repo repository.FlightRepository,
	logger logger.Logger,
	metrics *metrics.Metrics,
) (*FlightService, error) {
	flights, err := repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load flight log: %w", err)
	}

	logger.Info("Flight log loaded", "flights", len(flights))

	return &FlightService{
		flights: flights,
		repo:    repo,
		logger:  logger,
		metrics: metrics,
	}, nil
}

// List returns a snapshot of the flight log in insertion order
func (s *FlightService) List() []entity.Flight {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// Append validates a flight, assigns it an ID if it has none, and adds it
// to the log
func (s *FlightService) Append(ctx context.Context, flight entity.Flight) (entity.Flight, error) {
	if err := flight.Validate(); err != nil {
		return entity.Flight{}, err
	}
	if flight.ID == "" {
		flight.ID = uuid.NewString()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.flights = append(s.flights, flight)

	s.logger.Info("Flight appended",
		"id", flight.ID,
		"departure", flight.Departure,
		"arrival", flight.Arrival,
		"date", flight.Date)
	s.metrics.FlightsAppended.Inc()

	// Persist best-effort - the in-memory log is the source of truth and
	// the next successful write rewrites the whole store anyway
	s.persist(ctx, s.snapshot())

	return flight, nil
}

// Remove deletes the flight with the given ID, preserving the order of the rest
func (s *FlightService) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, flight := range s.flights {
		if flight.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrNotFound
	}
	s.flights = append(s.flights[:idx], s.flights[idx+1:]...)

	s.logger.Info("Flight removed", "id", id)
	s.metrics.FlightsRemoved.Inc()

	s.persist(ctx, s.snapshot())

	return nil
}

// ReplaceAll swaps in a whole new flight log, validating every entry first.
// Entries keep their IDs when they carry one, so IDs must be unique across
// the payload. It returns the number of flights imported.
func (s *FlightService) ReplaceAll(ctx context.Context, flights []entity.Flight) (int, error) {
	seen := make(map[string]struct{}, len(flights))
	for i := range flights {
		if err := flights[i].Validate(); err != nil {
			return 0, fmt.Errorf("flight %d: %w", i, err)
		}
		if flights[i].ID == "" {
			flights[i].ID = uuid.NewString()
		}
		if _, ok := seen[flights[i].ID]; ok {
			return 0, fmt.Errorf("flight %d: %w: %s", i, entity.ErrDuplicateID, flights[i].ID)
		}
		seen[flights[i].ID] = struct{}{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.flights = flights

	s.logger.Info("Flight log replaced", "flights", len(flights))

	s.persist(ctx, s.snapshot())

	return len(flights), nil
}

func (s *FlightService) snapshot() []entity.Flight {
	out := make([]entity.Flight, len(s.flights))
	copy(out, s.flights)
	return out
}

// persist runs with the mutex held, so snapshots reach the store in mutation
// order. The cancel signal is stripped: a disconnecting client must not
// abandon a store write midway.
func (s *FlightService) persist(ctx context.Context, flights []entity.Flight) {
	if err := s.repo.Replace(context.WithoutCancel(ctx), flights); err != nil {
		s.logger.Error("Failed to persist flight log",
			"error", err,
			"flights", len(flights))
		s.metrics.ErrorsCount.WithLabelValues("persist").Inc()
	}
}
