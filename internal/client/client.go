package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"atelier/internal/config"
	"atelier/internal/types"
)

// Client talks to the studio gateway's REST surface. The token is read
// lazily from the token file the gateway writes at startup.
type Client struct {
	baseURL   string
	tokenPath string
	token     string
	http      *http.Client
}

func New(settings *config.Settings) (*Client, error) {
	tokenPath, err := config.TokenPath()
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL:   settings.GatewayBaseURL(),
		tokenPath: tokenPath,
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
	_ = c.loadToken()
	return c, nil
}

func NewWithBaseURL(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	var resp HealthResponse
	if err := c.doJSON(ctx, http.MethodGet, "/health", nil, "", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Token resolves the bearer token for one session. The gateway writes
// a single shared token file; the user only scopes the error message.
func (c *Client) Token(_ context.Context, user string) (string, error) {
	if strings.TrimSpace(c.token) == "" {
		if err := c.loadToken(); err != nil {
			return "", err
		}
	}
	if strings.TrimSpace(c.token) == "" {
		who := strings.TrimSpace(user)
		if who == "" {
			who = "session"
		}
		return "", fmt.Errorf("no token for %s; is the gateway running?", who)
	}
	return c.token, nil
}

func (c *Client) ListRecords(ctx context.Context, token string) ([]types.Record, error) {
	var resp RecordsResponse
	if err := c.doJSON(ctx, http.MethodGet, "/v1/records", nil, token, &resp); err != nil {
		return nil, err
	}
	return resp.Records, nil
}

func (c *Client) DeleteRecord(ctx context.Context, token, id string) error {
	if strings.TrimSpace(id) == "" {
		return errors.New("record id is required")
	}
	return c.doJSON(ctx, http.MethodDelete, "/v1/records/"+strings.TrimSpace(id), nil, token, nil)
}

func (c *Client) doJSON(ctx context.Context, method, path string, body any, token string, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	httpClient := c.http
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeAPIError(resp)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) loadToken() error {
	if c.tokenPath == "" {
		return nil
	}
	data, err := os.ReadFile(c.tokenPath)
	if err != nil {
		if os.IsNotExist(err) {
			c.token = ""
			return nil
		}
		return err
	}
	c.token = strings.TrimSpace(string(data))
	return nil
}

func decodeAPIError(resp *http.Response) error {
	type errorPayload struct {
		Error string `json:"error"`
	}
	var payload errorPayload
	_ = json.NewDecoder(resp.Body).Decode(&payload)
	if payload.Error != "" {
		return &APIError{StatusCode: resp.StatusCode, Message: payload.Error}
	}
	return &APIError{StatusCode: resp.StatusCode, Message: resp.Status}
}

type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("api error (%d): %s", e.StatusCode, e.Message)
}

func AsAPIError(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return nil
}
