package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"
	"time"

	"flightlog-service/internal/domain/entity"
	"flightlog-service/internal/domain/repository"
	"flightlog-service/pkg/logger"
)

const (
	chatMaxRetries   = 3
	chatInitialDelay = 1 * time.Second

	parseSystemPrompt = `You extract flight details from free text. Today is %s.
Reply with a single JSON object with exactly these string fields:
"departure", "arrival", "date" (YYYY-MM-DD, resolve relative dates against today), "airline".
Use "" for anything the text does not mention. Reply with the JSON object only.`

	profileSystemPrompt = `You are a travel writer. Given a person's flight log, write a short
"traveler profile" of two or three sentences in the second person: describe their travel
persona from patterns you actually see in the log, then suggest one next destination.
Plain text only.`
)

// OpenAIAssistantRepository implements the AssistantRepository interface
// against an OpenAI-compatible chat completions API
type OpenAIAssistantRepository struct {
	logger       logger.Logger
	baseURL      string
	apiKey       string
	model        string
	client       *http.Client
	initialDelay time.Duration
}

// NewOpenAIAssistantRepository creates a new chat completions assistant repository
func NewOpenAIAssistantRepository(baseURL, apiKey, model string, timeout time.Duration, logger logger.Logger) repository.AssistantRepository {
	return &OpenAIAssistantRepository{
		logger:       logger,
		baseURL:      strings.TrimRight(baseURL, "/"),
		apiKey:       apiKey,
		model:        model,
		client:       &http.Client{Timeout: timeout},
		initialDelay: chatInitialDelay,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string              `json:"model"`
	Messages       []chatMessage       `json:"messages"`
	Temperature    float64             `json:"temperature"`
	ResponseFormat *chatResponseFormat `json:"response_format,omitempty"`
}

type chatResponseFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

type chatError struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    string `json:"code"`
	} `json:"error"`
}

// ParseFlight asks the model to turn free text into a structured flight draft
func (r *OpenAIAssistantRepository) ParseFlight(ctx context.Context, text string, today string) (*entity.FlightDraft, error) {
	content, err := r.chat(ctx, []chatMessage{
		{Role: "system", Content: fmt.Sprintf(parseSystemPrompt, today)},
		{Role: "user", Content: text},
	}, 0, true)
	if err != nil {
		return nil, err
	}

	var draft entity.FlightDraft
	if err := json.Unmarshal([]byte(stripJSONFence(content)), &draft); err != nil {
		return nil, fmt.Errorf("failed to decode flight draft: %w", err)
	}

	draft.Departure = strings.TrimSpace(draft.Departure)
	draft.Arrival = strings.TrimSpace(draft.Arrival)
	draft.Date = strings.TrimSpace(draft.Date)
	draft.Airline = strings.TrimSpace(draft.Airline)

	r.logger.Info("Parsed flight draft",
		"departure", draft.Departure,
		"arrival", draft.Arrival,
		"date", draft.Date,
		"airline", draft.Airline)

	return &draft, nil
}

// Narrate asks the model for a traveler profile over the given history lines
func (r *OpenAIAssistantRepository) Narrate(ctx context.Context, history []string) (string, error) {
	content, err := r.chat(ctx, []chatMessage{
		{Role: "system", Content: profileSystemPrompt},
		{Role: "user", Content: strings.Join(history, "\n")},
	}, 0.7, false)
	if err != nil {
		return "", err
	}

	profile := strings.TrimSpace(content)
	if profile == "" {
		return "", fmt.Errorf("assistant returned an empty profile")
	}

	return profile, nil
}

// chat performs one chat completion, retrying rate limits and server errors
// with exponential backoff
func (r *OpenAIAssistantRepository) chat(ctx context.Context, messages []chatMessage, temperature float64, jsonMode bool) (string, error) {
	if r.apiKey == "" {
		return "", fmt.Errorf("assistant API key not configured")
	}

	reqBody := chatRequest{
		Model:       r.model,
		Messages:    messages,
		Temperature: temperature,
	}
	if jsonMode {
		reqBody.ResponseFormat = &chatResponseFormat{Type: "json_object"}
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/chat/completions", r.baseURL)

	var lastErr error
	for attempt := 0; attempt < chatMaxRetries; attempt++ {
		if attempt > 0 {
			delay := time.Duration(math.Pow(2, float64(attempt-1))) * r.initialDelay
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}

		req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(body))
		if err != nil {
			return "", fmt.Errorf("failed to create request: %w", err)
		}

		req.Header.Set("Authorization", "Bearer "+r.apiKey)
		req.Header.Set("Content-Type", "application/json")

		resp, err := r.client.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("failed to send request: %w", err)
			continue
		}

		respBody, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("failed to read response body: %w", err)
			continue
		}

		if resp.StatusCode != http.StatusOK {
			var apiErr chatError
			if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Error.Message != "" {
				lastErr = fmt.Errorf("assistant API error (%d): %s", resp.StatusCode, apiErr.Error.Message)
			} else {
				lastErr = fmt.Errorf("assistant API error (%d): %s", resp.StatusCode, string(respBody))
			}

			// Retry on rate limit (429) or server errors (5xx)
			if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
				r.logger.Warn("Assistant call failed, retrying",
					"status", resp.StatusCode,
					"attempt", attempt+1)
				continue
			}

			return "", lastErr
		}

		var chatResp chatResponse
		if err := json.Unmarshal(respBody, &chatResp); err != nil {
			return "", fmt.Errorf("failed to decode response: %w", err)
		}
		if len(chatResp.Choices) == 0 {
			return "", fmt.Errorf("assistant returned no choices")
		}

		return chatResp.Choices[0].Message.Content, nil
	}

	return "", fmt.Errorf("max retries (%d) exceeded: %w", chatMaxRetries, lastErr)
}

// stripJSONFence unwraps a reply of the form ```json ... ``` since some
// backends fence JSON replies even in JSON mode
func stripJSONFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	s = strings.TrimPrefix(s, "```")
	if idx := strings.Index(s, "\n"); idx >= 0 {
		s = s[idx+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")

	return strings.TrimSpace(s)
}
