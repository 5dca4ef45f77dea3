// Package suggestions talks to the remote suggestion service. The
// service is an opaque text-generation endpoint; on any failure the
// client answers from a local fallback list instead of surfacing an
// error, so the feature degrades rather than breaks.
package suggestions

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"
)

// HabitContext is the per-habit slice of state sent to the service.
type HabitContext struct {
	Name             string `json:"name"`
	Category         string `json:"category"`
	CompletionRate   int    `json:"completionRate"`
	CurrentStreak    int    `json:"currentStreak"`
	IsCompletedToday bool   `json:"isCompletedToday"`
}

// Request is the fixed request contract.
type Request struct {
	Habits      []HabitContext `json:"habits"`
	MoodTrend   string         `json:"moodTrend"` // positive, neutral, negative
	TimeOfDay   string         `json:"timeOfDay"` // morning, afternoon, evening, night
	JournalMood string         `json:"journalMood,omitempty"`
}

// Suggestion is what the caller renders. Tip may be empty.
type Suggestion struct {
	Suggestion  string `json:"suggestion"`
	Affirmation string `json:"affirmation"`
	Tip         string `json:"tip,omitempty"`
}

// response covers both the success shape and the error-with-fallback
// shape the service may return.
type response struct {
	Suggestion  string      `json:"suggestion"`
	Affirmation string      `json:"affirmation"`
	Tip         string      `json:"tip"`
	Error       string      `json:"error"`
	Fallback    *Suggestion `json:"fallback"`
}

// Config configures the client.
type Config struct {
	BaseURL string

	// RequestTimeout bounds a single HTTP round trip.
	RequestTimeout time.Duration

	// MaxRequests is the number of probes allowed in half-open state.
	MaxRequests uint32

	// Interval is the cyclic period of the closed state.
	Interval time.Duration

	// Timeout is the period of the open state.
	Timeout time.Duration

	// FailureThreshold is the consecutive-failure count that trips
	// the breaker.
	FailureThreshold uint32
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig(baseURL string) Config {
	return Config{
		BaseURL:          baseURL,
		RequestTimeout:   10 * time.Second,
		MaxRequests:      2,
		Interval:         30 * time.Second,
		Timeout:          60 * time.Second,
		FailureThreshold: 3,
	}
}

// Client fetches suggestions with circuit breaker protection.
type Client struct {
	baseURL    string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[Suggestion]
	logger     *slog.Logger
}

// NewClient creates a suggestion client.
func NewClient(config Config, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}

	settings := gobreaker.Settings{
		Name:        "suggestions",
		MaxRequests: config.MaxRequests,
		Interval:    config.Interval,
		Timeout:     config.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= config.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Info("circuit breaker state changed",
				"service", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	}

	return &Client{
		baseURL:    config.BaseURL,
		httpClient: &http.Client{Timeout: config.RequestTimeout},
		breaker:    gobreaker.NewCircuitBreaker[Suggestion](settings),
		logger:     logger,
	}
}

// Fetch returns a suggestion for the given context. It never returns an
// error: a network failure, non-2xx status, malformed body, or open
// breaker all resolve to a local fallback pick.
func (c *Client) Fetch(ctx context.Context, req Request) Suggestion {
	if c.baseURL == "" {
		return PickFallback(req.TimeOfDay)
	}

	result, err := c.breaker.Execute(func() (Suggestion, error) {
		return c.fetch(ctx, req)
	})
	if err != nil {
		c.logger.Warn("suggestion fetch failed, using local fallback", "error", err)
		return PickFallback(req.TimeOfDay)
	}
	return result
}

func (c *Client) fetch(ctx context.Context, req Request) (Suggestion, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return Suggestion{}, fmt.Errorf("failed to encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/suggestions", bytes.NewReader(body))
	if err != nil {
		return Suggestion{}, fmt.Errorf("failed to build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return Suggestion{}, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, resp.Body)
		return Suggestion{}, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var decoded response
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return Suggestion{}, fmt.Errorf("failed to decode response: %w", err)
	}

	// The service may report its own failure with an inline fallback.
	if decoded.Error != "" {
		if decoded.Fallback != nil && decoded.Fallback.Suggestion != "" {
			return *decoded.Fallback, nil
		}
		return Suggestion{}, fmt.Errorf("service error: %s", decoded.Error)
	}

	if decoded.Suggestion == "" || decoded.Affirmation == "" {
		return Suggestion{}, fmt.Errorf("incomplete response body")
	}

	return Suggestion{
		Suggestion:  decoded.Suggestion,
		Affirmation: decoded.Affirmation,
		Tip:         decoded.Tip,
	}, nil
}

// TimeOfDay buckets a clock time into the contract's four segments.
func TimeOfDay(t time.Time) string {
	switch hour := t.Hour(); {
	case hour < 5:
		return "night"
	case hour < 12:
		return "morning"
	case hour < 18:
		return "afternoon"
	case hour < 22:
		return "evening"
	default:
		return "night"
	}
}
