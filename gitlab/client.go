package gitlab

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

const apiPrefix = "/api/v4"

// UpstreamError reports a failed CI API call: either a transport failure
// (Status 0, Err set) or a non-2xx response (Status and Body set).
type UpstreamError struct {
	Status int
	Body   string
	Err    error
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("gitlab request failed: %v", e.Err)
	}
	return fmt.Sprintf("gitlab api returned %d: %s", e.Status, e.Body)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// Client talks to the GitLab REST API. Every request is authenticated by the
// access_token query parameter. Calls are not retried; failures propagate to
// the caller as UpstreamError.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL:    baseURL,
		token:      token,
		httpClient: &http.Client{},
	}
}

// ListJobs returns a project's jobs, most recent first, as returned by the
// provider. A non-empty scope filters server-side (e.g. "failed").
func (c *Client) ListJobs(ctx context.Context, projectID int, scope string) ([]Job, error) {
	params := url.Values{}
	if scope != "" {
		params.Set("scope[]", scope)
	}

	var jobs []Job
	endpoint := fmt.Sprintf("/projects/%d/jobs", projectID)
	if err := c.do(ctx, http.MethodGet, endpoint, params, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

// JobTrace fetches a job's raw log output.
func (c *Client) JobTrace(ctx context.Context, projectID int, jobID string) (string, error) {
	endpoint := fmt.Sprintf("/projects/%d/jobs/%s/trace", projectID, url.PathEscape(jobID))
	body, err := c.raw(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// RetryJob retries a job and returns the provider's new job record.
func (c *Client) RetryJob(ctx context.Context, projectID int, jobID string) (*Job, error) {
	var job Job
	endpoint := fmt.Sprintf("/projects/%d/jobs/%s/retry", projectID, url.PathEscape(jobID))
	if err := c.do(ctx, http.MethodPost, endpoint, nil, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// CreatePipeline triggers a new pipeline on ref.
func (c *Client) CreatePipeline(ctx context.Context, projectID int, ref string) (*Pipeline, error) {
	params := url.Values{"ref": {ref}}
	var pipeline Pipeline
	endpoint := fmt.Sprintf("/projects/%d/pipeline", projectID)
	if err := c.do(ctx, http.MethodPost, endpoint, params, &pipeline); err != nil {
		return nil, err
	}
	return &pipeline, nil
}

// --------------------------------------------------------------------------
// HTTP transport
// --------------------------------------------------------------------------

func (c *Client) do(ctx context.Context, method, endpoint string, params url.Values, target interface{}) error {
	body, err := c.raw(ctx, method, endpoint, params)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, target); err != nil {
		return fmt.Errorf("failed to parse gitlab response: %w", err)
	}
	return nil
}

func (c *Client) raw(ctx context.Context, method, endpoint string, params url.Values) ([]byte, error) {
	if params == nil {
		params = url.Values{}
	}
	params.Set("access_token", c.token)

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+apiPrefix+endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create gitlab request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &UpstreamError{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &UpstreamError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &UpstreamError{Status: resp.StatusCode, Body: truncate(string(body), 300)}
	}
	return body, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "…"
}
