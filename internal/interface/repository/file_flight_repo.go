package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"flightlog-service/internal/domain/entity"
	"flightlog-service/internal/domain/repository"
)

// FileFlightRepository implements the FlightRepository interface on a JSON file
type FileFlightRepository struct {
	path string
}

// NewFileFlightRepository creates a new file-backed flight repository
func NewFileFlightRepository(path string) repository.FlightRepository {
	return &FileFlightRepository{
		path: path,
	}
}

// Load reads the stored flight log, returning an empty log when no file exists yet
func (r *FileFlightRepository) Load(ctx context.Context) ([]entity.Flight, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []entity.Flight{}, nil
		}
		return nil, fmt.Errorf("failed to read flight store: %w", err)
	}

	var flights []entity.Flight
	if err := json.Unmarshal(data, &flights); err != nil {
		return nil, fmt.Errorf("failed to decode flight store: %w", err)
	}
	if flights == nil {
		flights = []entity.Flight{}
	}

	return flights, nil
}

// Replace persists the full flight log, writing through a temp file so a
// crash mid-write cannot corrupt the store
func (r *FileFlightRepository) Replace(ctx context.Context, flights []entity.Flight) error {
	if dir := filepath.Dir(r.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create store directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(flights, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode flight store: %w", err)
	}

	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write flight store: %w", err)
	}
	if err := os.Rename(tmp, r.path); err != nil {
		return fmt.Errorf("failed to replace flight store: %w", err)
	}

	return nil
}
