package repository

import (
	"context"

	"flightlog-service/internal/domain/entity"
)

// FlightRepository defines the interface for flight collection persistence.
// The collection is always written wholesale: Replace stores the given
// flights as the new complete collection, there are no partial writes.
type FlightRepository interface {
	Load(ctx context.Context) ([]entity.Flight, error)
	Replace(ctx context.Context, flights []entity.Flight) error
}
