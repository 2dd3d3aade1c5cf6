package handler

import (
	"net/http"

	"flightlog-service/internal/stats"
	"flightlog-service/internal/usecase"

	"github.com/gin-gonic/gin"
)

// PageHandler renders the server-side timeline page
type PageHandler struct {
	flights *usecase.FlightService
}

// NewPageHandler creates a new page handler
func NewPageHandler(flights *usecase.FlightService) *PageHandler {
	return &PageHandler{
		flights: flights,
	}
}

// Index renders the timeline and statistics for the selected scope
func (h *PageHandler) Index(c *gin.Context) {
	scope := c.DefaultQuery("scope", stats.ScopeAllTime)
	flights := h.flights.List()
	years := stats.YearIndex(flights)
	inScope := stats.FilterByScope(flights, scope)

	c.HTML(http.StatusOK, "index.html", gin.H{
		"Scope":   scope,
		"Years":   years,
		"Counts":  stats.ScopeCounts(flights),
		"Flights": inScope,
		"Stats":   stats.ScopeStatistics(scope, inScope),
		"Recaps":  stats.YearlyRecaps(flights, years),
	})
}
