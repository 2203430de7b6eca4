// Package api implements the admin API client used by the fetch command.
//
// The client owns transport concerns only: building requests, carrying
// the bearer token, tagging requests for tracing. Every response body is
// shape-validated through the checks facade (and optionally against a
// JSON Schema) before any field is read, so malformed upstream responses
// never propagate missing data into command handlers.
package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"github.com/xeipuuv/gojsonschema"

	"github.com/opskit/adminctl/pkg/checks"
	"github.com/opskit/adminctl/pkg/domain/user"
)

// maxResponseBytes caps how much of a response body is read: 4MB is far
// beyond any legitimate single-user payload.
const maxResponseBytes = 4 << 20

// Client talks to the admin API.
type Client struct {
	baseURL string
	token   string
	checker *checks.Checker
	httpc   *http.Client
	schema  *gojsonschema.Schema
}

// NewClient creates an API client. token may be empty for unauthenticated
// endpoints. schemaPath optionally names a JSON Schema file; when set,
// responses are schema-validated in addition to the shape check.
func NewClient(baseURL, token string, checker *checks.Checker, schemaPath string) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("API base URL cannot be empty")
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("invalid API base URL: %w", err)
	}

	c := &Client{
		baseURL: baseURL,
		token:   token,
		checker: checker,
		httpc:   &http.Client{Timeout: 30 * time.Second},
	}

	if schemaPath != "" {
		schemaBytes, err := os.ReadFile(schemaPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read API schema: %w", err)
		}
		schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(schemaBytes))
		if err != nil {
			return nil, fmt.Errorf("failed to compile API schema: %w", err)
		}
		c.schema = schema
	}

	return c, nil
}

// FetchUser retrieves one user record from GET /users/{id}.
//
// The response is trusted only after the configured fetch_user field
// paths are confirmed present; a response missing any of them aborts
// with an error naming the path.
func (c *Client) FetchUser(ctx context.Context, id string) (user.User, error) {
	body, err := c.get(ctx, "/users/"+url.PathEscape(id))
	if err != nil {
		return user.User{}, err
	}

	if err := c.checker.ValidateAPIResponse(body, "fetch_user"); err != nil {
		return user.User{}, err
	}
	if err := c.validateSchema(body); err != nil {
		return user.User{}, err
	}

	data := gjson.GetBytes(body, "data.user")
	return user.User{
		ID:        data.Get("id").String(),
		Email:     data.Get("email").String(),
		Name:      data.Get("name").String(),
		Role:      data.Get("role").String(),
		CreatedAt: data.Get("created_at").String(),
	}, nil
}

// get performs a GET request and returns the response body. Each request
// carries a fresh X-Request-ID for upstream tracing.
func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("API request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read API response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API returned status %d for %s", resp.StatusCode, path)
	}

	return body, nil
}

// validateSchema checks the body against the configured JSON Schema, if
// any, collecting every violation into one error.
func (c *Client) validateSchema(body []byte) error {
	if c.schema == nil {
		return nil
	}

	result, err := c.schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return fmt.Errorf("schema validation error: %w", err)
	}

	if !result.Valid() {
		var errMsg string
		for i, desc := range result.Errors() {
			if i > 0 {
				errMsg += "; "
			}
			errMsg += fmt.Sprintf("%s: %s", desc.Field(), desc.Description())
		}
		return fmt.Errorf("API response failed schema validation: %s", errMsg)
	}

	return nil
}
