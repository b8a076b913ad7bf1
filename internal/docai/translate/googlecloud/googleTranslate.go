package googlecloud

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/akolanti/DocIntakeAPI/internal/config"
	"github.com/akolanti/DocIntakeAPI/internal/customHttpClient"
	"github.com/akolanti/DocIntakeAPI/internal/docai/translate"
	"github.com/akolanti/DocIntakeAPI/internal/metrics"
	"github.com/akolanti/DocIntakeAPI/pkg/logger_i"
	"github.com/sony/gobreaker/v2"
)

type translateClient struct {
	httpClient *http.Client
	endpoint   string
	apiKey     string
	breaker    *gobreaker.CircuitBreaker[[]byte]
}

var logger *logger_i.Logger
var client *translateClient
var once sync.Once

// GetGoogleTranslate returns the singleton REST client for the Google
// Translation v2 endpoint. Nil when no API key is configured, which the
// pipeline treats as "translation collaborator unavailable".
func GetGoogleTranslate(endpoint string, apiKey string) translate.Provider {
	once.Do(func() {
		logger = logger_i.NewLogger("translate_google")
		if apiKey == "" {
			logger.Warn("no translation API key configured")
			return
		}
		client = &translateClient{
			httpClient: customHttpClient.NewPooledClient(config.TranslateTimeout),
			endpoint:   endpoint,
			apiKey:     apiKey,
			breaker: gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
				Name:    "google-translate",
				Timeout: config.BreakerOpenTimeout,
				ReadyToTrip: func(counts gobreaker.Counts) bool {
					return counts.ConsecutiveFailures >= config.BreakerConsecutiveFailures
				},
			}),
		}
		logger.Info("Google Translate client created")
	})

	if client == nil {
		return nil
	}
	return client
}

type translatePayload struct {
	Q      []string `json:"q"`
	Target string   `json:"target"`
	Source string   `json:"source,omitempty"`
	Format string   `json:"format"`
}

type translateResponse struct {
	Data struct {
		Translations []struct {
			TranslatedText         string `json:"translatedText"`
			DetectedSourceLanguage string `json:"detectedSourceLanguage"`
		} `json:"translations"`
	} `json:"data"`
}

type detectResponse struct {
	Data struct {
		Detections [][]struct {
			Language   string  `json:"language"`
			Confidence float64 `json:"confidence"`
		} `json:"detections"`
	} `json:"data"`
}

func (c *translateClient) Translate(ctx context.Context, text string, target string, source string) (string, string, error) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("translate_google", time.Since(start)) }()

	payload := translatePayload{Q: []string{text}, Target: target, Source: source, Format: "text"}

	body, err := c.post(ctx, c.endpoint, payload)
	if err != nil {
		return "", "", err
	}

	var parsed translateResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", "", fmt.Errorf("decoding translate response: %w", err)
	}
	if len(parsed.Data.Translations) == 0 {
		return "", "", errors.New("translate response contained no translations")
	}

	t := parsed.Data.Translations[0]
	return t.TranslatedText, t.DetectedSourceLanguage, nil
}

func (c *translateClient) DetectLanguage(ctx context.Context, text string) (string, float64, error) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("detect_google", time.Since(start)) }()

	body, err := c.post(ctx, c.endpoint+"/detect", map[string]any{"q": []string{text}})
	if err != nil {
		return "", 0, err
	}

	var parsed detectResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", 0, fmt.Errorf("decoding detect response: %w", err)
	}
	if len(parsed.Data.Detections) == 0 || len(parsed.Data.Detections[0]) == 0 {
		return "", 0, errors.New("detect response contained no detections")
	}

	d := parsed.Data.Detections[0][0]
	return d.Language, d.Confidence, nil
}

// post runs one bounded call through the circuit breaker; an open breaker
// fails fast and counts as a collaborator failure upstream.
func (c *translateClient) post(ctx context.Context, url string, payload any) ([]byte, error) {
	return c.breaker.Execute(func() ([]byte, error) {
		callCtx, cancel := context.WithTimeout(ctx, config.TranslateTimeout)
		defer cancel()

		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}

		req, err := http.NewRequestWithContext(callCtx, http.MethodPost, url+"?key="+c.apiKey, bytes.NewReader(raw))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			logger.Error("translate call failed", "error", err)
			return nil, err
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode != http.StatusOK {
			logger.Error("translate call returned non-200", "status", resp.StatusCode)
			return nil, fmt.Errorf("translate endpoint returned %d", resp.StatusCode)
		}
		return body, nil
	})
}
