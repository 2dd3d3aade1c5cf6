package handler

import (
	"flightlog-service/internal/stats"
	"flightlog-service/internal/usecase"
	"flightlog-service/pkg/response"

	"github.com/gin-gonic/gin"
)

// StatsHandler serves the derived statistics endpoints. Every answer is
// recomputed from a fresh snapshot of the log.
type StatsHandler struct {
	flights *usecase.FlightService
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(flights *usecase.FlightService) *StatsHandler {
	return &StatsHandler{
		flights: flights,
	}
}

// Years returns the scope index and the flight count per scope
func (h *StatsHandler) Years(c *gin.Context) {
	flights := h.flights.List()
	response.Success(c, gin.H{
		"years":  stats.YearIndex(flights),
		"counts": stats.ScopeCounts(flights),
	})
}

// Scope returns the aggregate statistics for one scope
func (h *StatsHandler) Scope(c *gin.Context) {
	scope := c.DefaultQuery("scope", stats.ScopeAllTime)
	inScope := stats.FilterByScope(h.flights.List(), scope)
	response.Success(c, stats.ScopeStatistics(scope, inScope))
}

// Recaps returns one summary per year, newest year first
func (h *StatsHandler) Recaps(c *gin.Context) {
	flights := h.flights.List()
	response.Success(c, stats.YearlyRecaps(flights, stats.YearIndex(flights)))
}

// Endpoints returns the most used place names for quick-fill suggestions
func (h *StatsHandler) Endpoints(c *gin.Context) {
	response.Success(c, stats.FrequentEndpoints(h.flights.List()))
}
