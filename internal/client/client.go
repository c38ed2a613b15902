package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/docextract/internal/batch"
)

// Extraction mirrors the API's extraction representation.
type Extraction struct {
	ID           uuid.UUID       `json:"id"`
	UserID       uuid.UUID       `json:"user_id"`
	DocumentName string          `json:"document_name"`
	Status       string          `json:"status"`
	Fields       json.RawMessage `json:"fields,omitempty"`
	Error        string          `json:"error,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// BatchItem is one entry of a server-side batch response.
type BatchItem struct {
	Index      int         `json:"index"`
	ID         uuid.UUID   `json:"id"`
	Status     string      `json:"status"`
	Extraction *Extraction `json:"extraction,omitempty"`
	Error      string      `json:"error,omitempty"`
}

// BatchResult is a server-side batch response.
type BatchResult struct {
	Items     []BatchItem `json:"items"`
	Succeeded int         `json:"succeeded"`
	Failed    int         `json:"failed"`
	Cancelled int         `json:"cancelled"`
}

// Client talks to the extraction API.
type Client struct {
	baseURL     *url.URL
	httpClient  *http.Client
	token       string
	concurrency int
	logger      *slog.Logger
}

// New creates a Client for the API rooted at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBaseURL, baseURL)
	}

	c := &Client{
		baseURL:     u,
		httpClient:  &http.Client{Timeout: 30 * time.Second},
		concurrency: DefaultConcurrency,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.concurrency < 1 {
		return nil, fmt.Errorf("%w: concurrency must be positive, got %d",
			batch.ErrInvalidConfiguration, c.concurrency)
	}
	return c, nil
}

// GetExtraction fetches a single extraction.
func (c *Client) GetExtraction(ctx context.Context, id uuid.UUID) (*Extraction, error) {
	var e Extraction
	if err := c.do(ctx, http.MethodGet, "/api/extractions/"+id.String(), nil, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// FetchExtractions fetches every id with its own request. Outcomes are
// aligned with ids; a failed request fails only its own outcome.
func (c *Client) FetchExtractions(ctx context.Context, ids []uuid.UUID) ([]batch.Outcome[*Extraction], error) {
	return batch.Execute(ctx, ids, c.concurrency, c.GetExtraction,
		batch.WithLogger(c.logger.With(slog.String("operation", "fetch_extractions"))))
}

// DeleteExtractions asks the server to delete ids in one batch request.
func (c *Client) DeleteExtractions(ctx context.Context, ids []uuid.UUID) (*BatchResult, error) {
	var res BatchResult
	body := struct {
		IDs []uuid.UUID `json:"ids"`
	}{IDs: ids}
	if err := c.do(ctx, http.MethodPost, "/api/extractions/batch/delete", body, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.String()+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	var payload struct {
		Error   string `json:"error"`
		TraceID string `json:"trace_id"`
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if json.Unmarshal(raw, &payload) == nil {
		apiErr.Message = payload.Error
		apiErr.TraceID = payload.TraceID
	}
	return apiErr
}
