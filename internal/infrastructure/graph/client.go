package graph

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

	"github.com/openmarket/econbridge/internal/domain/bridge"
	"go.uber.org/zap"
)

// maxResponseSize is the maximum allowed response size from the graph
// service (10MB)
const maxResponseSize = 10 * 1024 * 1024

// Config holds connection settings for the external graph service
type Config struct {
	// Endpoint is the GraphQL endpoint URL
	Endpoint string
	// TimeoutSeconds bounds each RPC call
	TimeoutSeconds int
	// AuthToken is sent as a bearer token when non-empty
	AuthToken string
}

// Validate checks the configuration
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Endpoint) == "" {
		return errors.New("graph: endpoint cannot be empty")
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 30
	}
	return nil
}

// Client implements bridge.GraphClient against the GraphQL API of the
// external economic graph service
type Client struct {
	config     *Config
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a new graph client with the given configuration
func NewClient(config *Config, logger *zap.Logger) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: time.Duration(config.TimeoutSeconds) * time.Second,
		},
		logger: logger,
	}, nil
}

// graphqlRequest is the wire shape of one GraphQL call
type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

// graphqlError is one entry of a GraphQL error response
type graphqlError struct {
	Message string `json:"message"`
}

// graphqlResponse is the wire shape of one GraphQL response
type graphqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphqlError  `json:"errors"`
}

// execute runs one GraphQL operation and unmarshals the data payload into
// out. A schema error on an unknown query field maps to
// bridge.ErrCapabilityUnavailable so callers can degrade.
func (c *Client) execute(ctx context.Context, query string, variables map[string]any, out any) error {
	body, err := json.Marshal(graphqlRequest{Query: query, Variables: variables})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.Endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.config.AuthToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.config.AuthToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("graph: request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("graph: reading response failed: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("graph: unexpected status %d: %s", resp.StatusCode, raw)
	}

	var parsed graphqlResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("graph: invalid response: %w", err)
	}
	if len(parsed.Errors) > 0 {
		msg := parsed.Errors[0].Message
		if isUnknownField(msg) {
			return bridge.ErrCapabilityUnavailable
		}
		return fmt.Errorf("graph: %s", msg)
	}

	if out != nil {
		if err := json.Unmarshal(parsed.Data, out); err != nil {
			return fmt.Errorf("graph: invalid data payload: %w", err)
		}
	}
	return nil
}

// isUnknownField detects schema errors caused by querying an endpoint the
// deployment does not expose
func isUnknownField(msg string) bool {
	lower := strings.ToLower(msg)
	return strings.Contains(lower, "cannot query field") ||
		strings.Contains(lower, "unknown field") ||
		strings.Contains(lower, "unknown operation")
}
