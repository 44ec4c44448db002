// ABOUTME: HTTP client for the capacity planner API
// ABOUTME: Wraps API calls with user-facing error messages for CLI usage

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/markalston/graphite-capacity-planner/models"
)

// DefaultTimeout bounds every API call.
const DefaultTimeout = 30 * time.Second

// Client is the API client for a remote capacity planner server
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a new API client with the given base URL
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
}

// BaseURL returns the server address the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Health calls GET /api/v1/health
func (c *Client) Health(ctx context.Context) (*models.HealthResponse, error) {
	var health models.HealthResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/health", nil, &health); err != nil {
		return nil, err
	}
	return &health, nil
}

// Estimate calls POST /api/v1/estimate
func (c *Client) Estimate(ctx context.Context, w *models.WorkloadParams, r *models.UserResources) (*models.EstimateResponse, error) {
	var est models.EstimateResponse
	req := models.EstimateRequest{Workload: w, Resources: r}
	if err := c.do(ctx, http.MethodPost, "/api/v1/estimate", req, &est); err != nil {
		return nil, err
	}
	return &est, nil
}

// Scaling calls POST /api/v1/scaling
func (c *Client) Scaling(ctx context.Context, w *models.WorkloadParams, r *models.UserResources) (*models.ScalingAnalysis, error) {
	var analysis models.ScalingAnalysis
	req := models.EstimateRequest{Workload: w, Resources: r}
	if err := c.do(ctx, http.MethodPost, "/api/v1/scaling", req, &analysis); err != nil {
		return nil, err
	}
	return &analysis, nil
}

// Analysis calls POST /api/v1/analysis
func (c *Client) Analysis(ctx context.Context, req models.ResourceRequirements) (*models.BottleneckAnalysis, error) {
	var analysis models.BottleneckAnalysis
	if err := c.do(ctx, http.MethodPost, "/api/v1/analysis", models.AnalysisRequest{Requirements: req}, &analysis); err != nil {
		return nil, err
	}
	return &analysis, nil
}

// do sends body as JSON (when non-nil) and decodes a 200 response into out.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal input: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.handleRequestError(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.handleErrorResponse(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("invalid response from backend: %w", err)
	}
	return nil
}

// handleRequestError converts context errors to user-friendly messages
func (c *Client) handleRequestError(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.Canceled) {
		return fmt.Errorf("request canceled")
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("request timed out")
	}
	return fmt.Errorf("cannot connect to backend at %s: %w", c.baseURL, err)
}

// handleErrorResponse parses API error responses
func (c *Client) handleErrorResponse(resp *http.Response) error {
	var errResp models.ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil || errResp.Error == "" {
		return fmt.Errorf("backend returned status %d", resp.StatusCode)
	}
	return fmt.Errorf("backend error: %s", errResp.Error)
}
