package suggestions

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(baseURL string) Config {
	cfg := DefaultConfig(baseURL)
	cfg.RequestTimeout = 2 * time.Second
	return cfg
}

func TestClientFetch(t *testing.T) {
	req := Request{
		Habits: []HabitContext{
			{Name: "Run", Category: "fitness", CompletionRate: 80, CurrentStreak: 4, IsCompletedToday: false},
		},
		MoodTrend: "positive",
		TimeOfDay: "morning",
	}

	t.Run("returns the remote suggestion on success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/v1/suggestions", r.URL.Path)

			var got Request
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			assert.Equal(t, "positive", got.MoodTrend)
			require.Len(t, got.Habits, 1)
			assert.Equal(t, "Run", got.Habits[0].Name)

			json.NewEncoder(w).Encode(map[string]string{
				"suggestion":  "Lace up before breakfast.",
				"affirmation": "Four days strong.",
				"tip":         "Lay out your gear the night before.",
			})
		}))
		defer server.Close()

		client := NewClient(testConfig(server.URL), nil)
		got := client.Fetch(context.Background(), req)

		assert.Equal(t, "Lace up before breakfast.", got.Suggestion)
		assert.Equal(t, "Four days strong.", got.Affirmation)
		assert.Equal(t, "Lay out your gear the night before.", got.Tip)
	})

	t.Run("uses the service-provided fallback on inline error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]any{
				"error": "model overloaded",
				"fallback": map[string]string{
					"suggestion":  "Take a breather.",
					"affirmation": "You are doing fine.",
					"tip":         "Try again in a bit.",
				},
			})
		}))
		defer server.Close()

		client := NewClient(testConfig(server.URL), nil)
		got := client.Fetch(context.Background(), req)

		assert.Equal(t, "Take a breather.", got.Suggestion)
		assert.Equal(t, "You are doing fine.", got.Affirmation)
	})

	t.Run("falls back locally on non-2xx status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		client := NewClient(testConfig(server.URL), nil)
		got := client.Fetch(context.Background(), req)

		assert.Contains(t, FallbackPool(), got)
	})

	t.Run("falls back locally on malformed JSON", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("not json"))
		}))
		defer server.Close()

		client := NewClient(testConfig(server.URL), nil)
		got := client.Fetch(context.Background(), req)

		assert.Contains(t, FallbackPool(), got)
		assert.NotEmpty(t, got.Suggestion)
		assert.NotEmpty(t, got.Affirmation)
	})

	t.Run("falls back locally on incomplete body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]string{"suggestion": "only half"})
		}))
		defer server.Close()

		client := NewClient(testConfig(server.URL), nil)
		got := client.Fetch(context.Background(), req)

		assert.Contains(t, FallbackPool(), got)
	})

	t.Run("falls back locally when unconfigured", func(t *testing.T) {
		client := NewClient(testConfig(""), nil)
		got := client.Fetch(context.Background(), req)
		assert.Contains(t, FallbackPool(), got)
	})

	t.Run("open breaker short-circuits to local fallback", func(t *testing.T) {
		calls := 0
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		cfg := testConfig(server.URL)
		cfg.FailureThreshold = 2
		client := NewClient(cfg, nil)

		for i := 0; i < 5; i++ {
			got := client.Fetch(context.Background(), req)
			assert.Contains(t, FallbackPool(), got)
		}

		// after two consecutive failures the breaker opens and stops
		// hitting the server
		assert.Equal(t, 2, calls)
	})
}

func TestTimeOfDay(t *testing.T) {
	cases := []struct {
		hour int
		want string
	}{
		{3, "night"},
		{5, "morning"},
		{11, "morning"},
		{12, "afternoon"},
		{17, "afternoon"},
		{18, "evening"},
		{21, "evening"},
		{22, "night"},
	}
	for _, tc := range cases {
		at := time.Date(2025, 6, 15, tc.hour, 0, 0, 0, time.UTC)
		assert.Equal(t, tc.want, TimeOfDay(at), "hour %d", tc.hour)
	}
}
