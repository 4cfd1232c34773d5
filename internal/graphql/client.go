package graphql

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Request is one GraphQL operation.
type Request struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

// ErrorItem is one entry of a GraphQL "errors" array.
type ErrorItem struct {
	Message   string `json:"message"`
	ErrorType string `json:"errorType,omitempty"`
	Path      []any  `json:"path,omitempty"`
}

// Error is returned when the server answers 200 but reports errors for the operation.
type Error struct {
	Items []ErrorItem
}

func (e *Error) Error() string {
	msgs := make([]string, len(e.Items))
	for i, it := range e.Items {
		msgs[i] = it.Message
		if it.ErrorType != "" {
			msgs[i] = it.ErrorType + ": " + it.Message
		}
	}
	return "graphql: " + strings.Join(msgs, "; ")
}

type response struct {
	Data   json.RawMessage `json:"data"`
	Errors []ErrorItem     `json:"errors"`
}

// Client posts operations to a single GraphQL endpoint, authenticating with an API key.
type Client struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

// New returns a Client for endpoint. apiKey is sent as x-api-key when non-empty.
func New(endpoint, apiKey string, timeout time.Duration) *Client {
	return &Client{
		endpoint: endpoint,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: timeout},
	}
}

// Do sends req and decodes the "data" object into out (out may be nil).
func (c *Client) Do(ctx context.Context, req Request, out any) error {
	if c.endpoint == "" {
		return errors.New("graphql: endpoint not set")
	}
	body, err := json.Marshal(req)
	if err != nil {
		return errors.Wrap(err, "graphql: encode request")
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(err, "graphql")
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("x-api-key", c.apiKey)
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return errors.Wrap(err, "graphql")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.Errorf("graphql: %s", resp.Status)
	}
	var r response
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return errors.Wrap(err, "graphql: decode response")
	}
	if len(r.Errors) > 0 {
		return &Error{Items: r.Errors}
	}
	if out == nil || len(r.Data) == 0 || string(r.Data) == "null" {
		return nil
	}
	return errors.Wrap(json.Unmarshal(r.Data, out), "graphql: decode data")
}
