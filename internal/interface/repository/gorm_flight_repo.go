package repository

import (
	"context"
	"fmt"

	"flightlog-service/internal/domain/entity"
	"flightlog-service/internal/domain/repository"

	"gorm.io/gorm"
)

// GormFlightRepository implements the FlightRepository interface
type GormFlightRepository struct {
	db *gorm.DB
}

// NewGormFlightRepository creates a new GORM flight repository
func NewGormFlightRepository(db *gorm.DB) (repository.FlightRepository, error) {
	if err := db.AutoMigrate(&Flights{}); err != nil {
		return nil, fmt.Errorf("failed to migrate flight table: %w", err)
	}
	return &GormFlightRepository{
		db: db,
	}, nil
}

// Flights GORM model for database mapping
type Flights struct {
	Seq       uint   `gorm:"primaryKey;autoIncrement"`
	FlightID  string `gorm:"column:flight_id;uniqueIndex"`
	Departure string `gorm:"column:departure"`
	Arrival   string `gorm:"column:arrival"`
	Date      string `gorm:"column:date"`
	Airline   string `gorm:"column:airline"`
}

// TableName overrides the default table name
func (Flights) TableName() string {
	return "flights"
}

// Load reads the stored flight log in insertion order
func (r *GormFlightRepository) Load(ctx context.Context) ([]entity.Flight, error) {
	var rows []Flights
	result := r.db.WithContext(ctx).Order("seq").Find(&rows)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to load flights: %w", result.Error)
	}

	// Convert GORM models to domain entities
	flights := make([]entity.Flight, 0, len(rows))
	for _, row := range rows {
		flights = append(flights, entity.Flight{
			ID:        row.FlightID,
			Departure: row.Departure,
			Arrival:   row.Arrival,
			Date:      row.Date,
			Airline:   row.Airline,
		})
	}

	return flights, nil
}

// Replace rewrites the stored flight log inside a single transaction
func (r *GormFlightRepository) Replace(ctx context.Context, flights []entity.Flight) error {
	rows := make([]Flights, 0, len(flights))
	for _, flight := range flights {
		rows = append(rows, Flights{
			FlightID:  flight.ID,
			Departure: flight.Departure,
			Arrival:   flight.Arrival,
			Date:      flight.Date,
			Airline:   flight.Airline,
		})
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&Flights{}).Error; err != nil {
			return fmt.Errorf("failed to clear flight table: %w", err)
		}
		if len(rows) == 0 {
			return nil
		}
		if err := tx.Create(&rows).Error; err != nil {
			return fmt.Errorf("failed to insert flights: %w", err)
		}
		return nil
	})
}
