package predict

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	defaultBaseURL = "http://ml_service:8001"
	requestTimeout = 5 * time.Second
)

var (
	// ErrUnavailable means the prediction service could not be reached or
	// returned a non-success status. Callers decide whether to retry.
	ErrUnavailable = errors.New("prediction service unavailable")
	// ErrMalformed means the prediction service answered successfully but
	// the payload is structurally or semantically invalid.
	ErrMalformed = errors.New("malformed prediction response")
)

// Estimate is the prediction service's answer for one admission.
type Estimate struct {
	PredictedWaitMinutes float64 `json:"predicted_wait_minutes"`
	PriorityScore        float64 `json:"priority_score"`
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(configuredURL string) *Client {
	return &Client{
		baseURL: resolveBaseURL(configuredURL),
		httpClient: &http.Client{
			Timeout:   requestTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// resolveBaseURL picks the first non-empty source: the ML_SERVICE_URL
// environment override, the configured value, then the built-in default.
func resolveBaseURL(configured string) string {
	if env := strings.TrimSpace(os.Getenv("ML_SERVICE_URL")); env != "" {
		return strings.TrimRight(env, "/")
	}
	if configured != "" {
		return strings.TrimRight(configured, "/")
	}
	return defaultBaseURL
}

// Estimate sends the normalized symptom set and current queue size to the
// prediction service and decodes the estimate. Every admission issues a
// fresh call; results are never cached.
func (c *Client) Estimate(ctx context.Context, symptomTags []string, queueSize int) (Estimate, error) {
	if symptomTags == nil {
		symptomTags = []string{}
	}
	body, err := json.Marshal(struct {
		Symptoms  []string `json:"symptoms"`
		QueueSize int      `json:"queue_size"`
	}{symptomTags, queueSize})
	if err != nil {
		return Estimate{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict", bytes.NewReader(body))
	if err != nil {
		return Estimate{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Estimate{}, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Estimate{}, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var payload struct {
		PredictedWaitMinutes *float64 `json:"predicted_wait_minutes"`
		PriorityScore        *float64 `json:"priority_score"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Estimate{}, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	if payload.PredictedWaitMinutes == nil || payload.PriorityScore == nil {
		return Estimate{}, fmt.Errorf("%w: missing required field", ErrMalformed)
	}
	if *payload.PredictedWaitMinutes < 0 {
		return Estimate{}, fmt.Errorf("%w: negative wait minutes", ErrMalformed)
	}
	if *payload.PriorityScore < 1.0 || *payload.PriorityScore > 10.0 {
		return Estimate{}, fmt.Errorf("%w: priority score %.2f out of range", ErrMalformed, *payload.PriorityScore)
	}

	return Estimate{
		PredictedWaitMinutes: *payload.PredictedWaitMinutes,
		PriorityScore:        *payload.PriorityScore,
	}, nil
}
