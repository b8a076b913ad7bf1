package googlenl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/akolanti/DocIntakeAPI/internal/config"
	"github.com/akolanti/DocIntakeAPI/internal/customHttpClient"
	"github.com/akolanti/DocIntakeAPI/internal/docai/classify"
	"github.com/akolanti/DocIntakeAPI/internal/metrics"
	"github.com/akolanti/DocIntakeAPI/pkg/logger_i"
	"github.com/sony/gobreaker/v2"
)

type nlClient struct {
	httpClient *http.Client
	endpoint   string
	apiKey     string
	breaker    *gobreaker.CircuitBreaker[[]classify.ExternalCategory]
}

var logger *logger_i.Logger
var client *nlClient
var once sync.Once

// GetGoogleNLClassifier returns the singleton REST client for the Google
// Natural Language classifyText endpoint. Nil when unconfigured; the
// engine then runs keyword-fallback only.
func GetGoogleNLClassifier(endpoint string, apiKey string) classify.Provider {
	once.Do(func() {
		logger = logger_i.NewLogger("classifier_googlenl")
		if apiKey == "" {
			logger.Warn("no content-classifier API key configured")
			return
		}
		client = &nlClient{
			httpClient: customHttpClient.NewPooledClient(config.ContentClassifierTimeout),
			endpoint:   endpoint,
			apiKey:     apiKey,
			breaker: gobreaker.NewCircuitBreaker[[]classify.ExternalCategory](gobreaker.Settings{
				Name:    "google-nl-classify",
				Timeout: config.BreakerOpenTimeout,
				ReadyToTrip: func(counts gobreaker.Counts) bool {
					return counts.ConsecutiveFailures >= config.BreakerConsecutiveFailures
				},
			}),
		}
		logger.Info("Google NL classifier client created")
	})

	if client == nil {
		return nil
	}
	return client
}

type classifyRequest struct {
	Document struct {
		Type    string `json:"type"`
		Content string `json:"content"`
	} `json:"document"`
}

type classifyResponse struct {
	Categories []struct {
		Name       string  `json:"name"`
		Confidence float64 `json:"confidence"`
	} `json:"categories"`
}

func (c *nlClient) Classify(ctx context.Context, text string) ([]classify.ExternalCategory, error) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("classify_googlenl", time.Since(start)) }()

	return c.breaker.Execute(func() ([]classify.ExternalCategory, error) {
		callCtx, cancel := context.WithTimeout(ctx, config.ContentClassifierTimeout)
		defer cancel()

		var payload classifyRequest
		payload.Document.Type = "PLAIN_TEXT"
		payload.Document.Content = text

		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}

		req, err := http.NewRequestWithContext(callCtx, http.MethodPost, c.endpoint+"?key="+c.apiKey, bytes.NewReader(raw))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			logger.Error("classifyText call failed", "error", err)
			return nil, err
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode != http.StatusOK {
			logger.Error("classifyText returned non-200", "status", resp.StatusCode)
			return nil, fmt.Errorf("classifyText endpoint returned %d", resp.StatusCode)
		}

		var parsed classifyResponse
		if err := json.Unmarshal(body, &parsed); err != nil {
			return nil, fmt.Errorf("decoding classifyText response: %w", err)
		}

		categories := make([]classify.ExternalCategory, 0, len(parsed.Categories))
		for _, cat := range parsed.Categories {
			categories = append(categories, classify.ExternalCategory{
				Path:       cat.Name,
				Confidence: cat.Confidence,
			})
		}
		return categories, nil
	})
}
