// Package insights produces a short natural-language analysis of a
// single-snapshot measurement by calling a generative-language API.
// It is strictly optional: callers fall back to plain output when the
// client is disabled or the request fails.
package insights

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"gitlab.com/tinyland/lab/port-pulse/collectors"
	"gitlab.com/tinyland/lab/port-pulse/collectors/procstat"
	"gitlab.com/tinyland/lab/port-pulse/internal/format"
)

const (
	// defaultBaseURL is the Google Generative Language API endpoint.
	defaultBaseURL = "https://generativelanguage.googleapis.com"

	// requestTimeout is the per-request timeout for analysis calls.
	requestTimeout = 15 * time.Second
)

// ErrDisabled indicates the client has no API key and cannot analyze.
var ErrDisabled = errors.New("insights disabled: no API key configured")

// Config holds client construction parameters.
type Config struct {
	// APIKey authenticates requests. Empty disables the client.
	APIKey string

	// Model is the generative model identifier (e.g. "gemini-1.5-flash").
	Model string

	// BaseURL overrides the API endpoint; used by tests.
	BaseURL string

	// Logger receives debug output. Nil means no logging.
	Logger *slog.Logger
}

// Client calls the generative-language API.
type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// New creates a Client. A client without an API key is valid but every
// Analyze call returns ErrDisabled.
func New(cfg Config) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Client{
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
		logger: logger,
	}
}

// Enabled reports whether the client can make requests.
func (c *Client) Enabled() bool {
	return c.apiKey != ""
}

// Request carries everything the analysis prompt is built from.
type Request struct {
	Port        uint16
	PID         int32
	ProcessName string
	Sample      collectors.Sample
	System      *procstat.SystemSnapshot
}

// generateRequest mirrors the generateContent request body.
type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

// generateResponse mirrors the fields of the response we consume.
type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Analyze sends the snapshot to the model and returns its text verdict.
func (c *Client) Analyze(ctx context.Context, req Request) (string, error) {
	if !c.Enabled() {
		return "", ErrDisabled
	}

	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: buildPrompt(req)}}}},
	})
	if err != nil {
		return "", fmt.Errorf("marshaling analysis request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	c.logger.Debug("requesting snapshot analysis", "model", c.model)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("analysis API returned %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}

	var parsed generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}

	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("analysis API returned no candidates")
	}

	text := strings.TrimSpace(parsed.Candidates[0].Content.Parts[0].Text)
	if text == "" {
		return "", fmt.Errorf("analysis API returned empty text")
	}

	return text, nil
}

// buildPrompt renders the measurement into the analysis prompt.
func buildPrompt(req Request) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are a systems engineer. Analyze this process snapshot and give a brief health assessment (3-4 sentences): is the process healthy, and does anything warrant attention?\n\n")
	fmt.Fprintf(&b, "Process: %s (PID %d), listening on port %d\n", req.ProcessName, req.PID, req.Port)
	fmt.Fprintf(&b, "CPU: %s\n", format.Percent(req.Sample.CPUPercent))
	fmt.Fprintf(&b, "Memory: %s\n", format.Bytes(req.Sample.MemoryBytes))

	if sys := req.System; sys != nil {
		fmt.Fprintf(&b, "\nHost context:\n")
		fmt.Fprintf(&b, "Global CPU: %s across %d cores\n", format.Percent(sys.CPUPercent), sys.CPUCount)
		fmt.Fprintf(&b, "Load average: %.2f %.2f %.2f\n", sys.Load1, sys.Load5, sys.Load15)
		fmt.Fprintf(&b, "Memory: %s available of %s\n", format.Bytes(sys.MemoryAvailable), format.Bytes(sys.MemoryTotal))
		fmt.Fprintf(&b, "Swap: %s free of %s\n", format.Bytes(sys.SwapFree), format.Bytes(sys.SwapTotal))
		fmt.Fprintf(&b, "Processes: %d\n", sys.ProcessCount)
	}

	return b.String()
}
