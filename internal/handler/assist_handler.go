package handler

import (
	"strings"

	"flightlog-service/internal/usecase"
	"flightlog-service/pkg/logger"
	"flightlog-service/pkg/response"

	"github.com/gin-gonic/gin"
)

// AssistHandler serves the generative assistant endpoints
type AssistHandler struct {
	assist  *usecase.AssistService
	flights *usecase.FlightService
	logger  logger.Logger
}

// NewAssistHandler creates a new assist handler
func NewAssistHandler(assist *usecase.AssistService, flights *usecase.FlightService, logger logger.Logger) *AssistHandler {
	return &AssistHandler{
		assist:  assist,
		flights: flights,
		logger:  logger,
	}
}

type parseRequest struct {
	Text string `json:"text"`
}

// Parse extracts a structured flight draft from free text. On any assistant
// failure the endpoint returns an error and no draft, leaving the client's
// form untouched.
func (h *AssistHandler) Parse(c *gin.Context) {
	var req parseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		response.BadRequest(c, "text is required")
		return
	}

	draft, err := h.assist.ParseFlight(c.Request.Context(), req.Text)
	if err != nil {
		h.logger.Warn("Assist parse failed", "error", err)
		response.BadGateway(c, "assistant could not parse the text")
		return
	}

	response.Success(c, draft)
}

// Profile narrates a traveler profile from the full flight history. It
// always answers 200; assistant failures surface as the fallback profile.
func (h *AssistHandler) Profile(c *gin.Context) {
	response.Success(c, h.assist.Profile(c.Request.Context(), h.flights.List()))
}
