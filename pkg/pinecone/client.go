package pinecone

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

	pkgerrors "github.com/gelaboca/gelaboca-backend/pkg/errors"
)

const (
	apiKeyHeader                = "Api-Key"
	responseBodyReadLimit int64 = 1024
)

var errIndexHostRequired = errors.New("pinecone index host is required")

// Client talks to a single Pinecone index over its REST data plane.
type Client struct {
	httpClient *http.Client
	indexHost  string
	apiKey     string
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout overrides the default request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient = &http.Client{Timeout: timeout}
		}
	}
}

// NewClient builds a Pinecone index client for the given host.
func NewClient(apiKey, indexHost string, opts ...Option) (*Client, error) {
	trimmedHost := strings.TrimSpace(indexHost)
	if trimmedHost == "" {
		return nil, errIndexHostRequired
	}
	if !strings.HasPrefix(trimmedHost, "http://") && !strings.HasPrefix(trimmedHost, "https://") {
		trimmedHost = "https://" + trimmedHost
	}

	client := &Client{
		apiKey:     strings.TrimSpace(apiKey),
		indexHost:  strings.TrimRight(trimmedHost, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: 15 * time.Second}
	}

	return client, nil
}

// QueryRequest describes a similarity query against the index.
type QueryRequest struct {
	Vector          []float32      `json:"vector"`
	TopK            int            `json:"topK"`
	IncludeMetadata bool           `json:"includeMetadata"`
	Filter          map[string]any `json:"filter,omitempty"`
}

// Match is a single similarity hit with its metadata bag.
type Match struct {
	ID       string         `json:"id"`
	Score    float64        `json:"score"`
	Metadata map[string]any `json:"metadata"`
}

// ActiveOnlyFilter restricts matches to products flagged as active.
func ActiveOnlyFilter() map[string]any {
	return map[string]any{"ativado": map[string]any{"$eq": true}}
}

// ZeroVector returns an all-zero query vector of the given dimension, used
// for broad unranked listings.
func ZeroVector(dims int) []float32 {
	return make([]float32, dims)
}

// Query runs a similarity search and returns the raw matches.
func (c *Client) Query(ctx context.Context, req QueryRequest) ([]Match, error) {
	if c == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "pinecone client not configured")
	}
	if len(req.Vector) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "query vector is required")
	}
	if req.TopK <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "topK must be positive")
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "marshal query request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.indexHost+"/query", bytes.NewReader(payload))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build query request")
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set(apiKeyHeader, c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute query request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, responseBodyReadLimit))
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg))), "query request failed")
	}

	var apiResp struct {
		Matches []Match `json:"matches"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode query response")
	}

	return apiResp.Matches, nil
}

// Ping verifies the index is reachable by requesting its stats.
func (c *Client) Ping(ctx context.Context) error {
	if c == nil {
		return pkgerrors.New(pkgerrors.CodeDependency, "pinecone client not configured")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.indexHost+"/describe_index_stats", strings.NewReader("{}"))
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build stats request")
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set(apiKeyHeader, c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute stats request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, responseBodyReadLimit))
		return pkgerrors.Wrap(pkgerrors.CodeDependency, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg))), "stats request failed")
	}

	return nil
}
