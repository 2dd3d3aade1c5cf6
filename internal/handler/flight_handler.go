package handler

import (
	"errors"

	"flightlog-service/internal/domain/entity"
	"flightlog-service/internal/stats"
	"flightlog-service/internal/usecase"
	"flightlog-service/pkg/logger"
	"flightlog-service/pkg/response"

	"github.com/gin-gonic/gin"
)

// FlightHandler serves the flight log endpoints
type FlightHandler struct {
	flights *usecase.FlightService
	logger  logger.Logger
}

// NewFlightHandler creates a new flight handler
func NewFlightHandler(flights *usecase.FlightService, logger logger.Logger) *FlightHandler {
	return &FlightHandler{
		flights: flights,
		logger:  logger,
	}
}

// List returns the flights in the requested scope, most recent first
func (h *FlightHandler) List(c *gin.Context) {
	scope := c.DefaultQuery("scope", stats.ScopeAllTime)
	response.Success(c, stats.FilterByScope(h.flights.List(), scope))
}

// Create appends one flight to the log
func (h *FlightHandler) Create(c *gin.Context) {
	var flight entity.Flight
	if err := c.ShouldBindJSON(&flight); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	// IDs are assigned here, never taken from the client
	flight.ID = ""

	created, err := h.flights.Append(c.Request.Context(), flight)
	if err != nil {
		if errors.Is(err, entity.ErrMissingField) {
			response.BadRequest(c, err.Error())
			return
		}
		h.logger.Error("Failed to append flight", "error", err)
		response.InternalError(c, "failed to append flight")
		return
	}

	response.Success(c, created)
}

// Delete removes the flight with the given ID
func (h *FlightHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	if err := h.flights.Remove(c.Request.Context(), id); err != nil {
		if errors.Is(err, usecase.ErrNotFound) {
			response.NotFound(c, "flight not found")
			return
		}
		h.logger.Error("Failed to remove flight", "id", id, "error", err)
		response.InternalError(c, "failed to remove flight")
		return
	}

	response.Success(c, nil)
}

// Export streams the whole log as a plain JSON array, the same layout the
// file backend stores
func (h *FlightHandler) Export(c *gin.Context) {
	c.Header("Content-Disposition", `attachment; filename="flights.json"`)
	c.JSON(200, h.flights.List())
}

// Import replaces the whole log from a plain JSON array
func (h *FlightHandler) Import(c *gin.Context) {
	var flights []entity.Flight
	if err := c.ShouldBindJSON(&flights); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	count, err := h.flights.ReplaceAll(c.Request.Context(), flights)
	if err != nil {
		if errors.Is(err, entity.ErrMissingField) || errors.Is(err, entity.ErrDuplicateID) {
			response.BadRequest(c, err.Error())
			return
		}
		h.logger.Error("Failed to import flights", "error", err)
		response.InternalError(c, "failed to import flights")
		return
	}

	response.Success(c, gin.H{"imported": count})
}
