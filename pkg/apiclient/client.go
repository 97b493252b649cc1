// Package apiclient talks to the shiftboard JSON API. It is used by the
// form and view models and by external tools.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shiftboard/shiftboard-backend/internal/domain"
)

// Client handles communication with the shiftboard API
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client for the API rooted at baseURL, e.g.
// "http://localhost:8080/api".
func New(baseURL string) *Client {
	return NewWithHTTPClient(baseURL, &http.Client{Timeout: 30 * time.Second})
}

func NewWithHTTPClient(baseURL string, hc *http.Client) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: hc,
	}
}

// APIError is a failure reported by the API. It matches the domain
// sentinels, so domain.KindOf and errors.Is work on it.
type APIError struct {
	Status  int
	Code    domain.Kind
	Message string
	Field   string
}

func (e *APIError) Error() string { return e.Message }

func (e *APIError) Is(target error) bool {
	switch e.Code {
	case domain.KindValidation:
		return target == domain.ErrValidation
	case domain.KindReference:
		return target == domain.ErrReference
	case domain.KindNotFound:
		return target == domain.ErrNotFound
	default:
		return target == domain.ErrStore
	}
}

type ClientInput struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type ProjectInput struct {
	Name     string  `json:"name"`
	ClientID string  `json:"clientId"`
	Address  string  `json:"address"`
	Location string  `json:"location"`
	Budget   float64 `json:"budget"`
	Manager  string  `json:"manager"`
}

func (c *Client) ListClients(ctx context.Context) ([]domain.Client, error) {
	var out []domain.Client
	if err := c.do(ctx, http.MethodGet, "/clients", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetClient(ctx context.Context, id int64) (*domain.Client, error) {
	var out domain.Client
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/clients/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateClient(ctx context.Context, in ClientInput) (*domain.Client, error) {
	var out domain.Client
	if err := c.do(ctx, http.MethodPost, "/clients", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateClient(ctx context.Context, id int64, in ClientInput) (*domain.Client, error) {
	var out domain.Client
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/clients/%d", id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteClient(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/clients/%d", id), nil, nil)
}

func (c *Client) CreateProject(ctx context.Context, in ProjectInput) (*domain.Project, error) {
	var out domain.Project
	if err := c.do(ctx, http.MethodPost, "/projects", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateProject(ctx context.Context, id int64, in ProjectInput) (*domain.Project, error) {
	var out domain.Project
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/projects/%d", id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteProject(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/projects/%d", id), nil, nil)
}

func (c *Client) ListEmployees(ctx context.Context) ([]domain.Employee, error) {
	var out []domain.Employee
	if err := c.do(ctx, http.MethodGet, "/employees", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.Store(method+" "+path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.Store(method+" "+path, fmt.Errorf("failed to read response: %w", err))
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return decodeError(resp.StatusCode, data)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return domain.Store(method+" "+path, fmt.Errorf("failed to unmarshal response: %w", err))
	}
	return nil
}

func decodeError(status int, data []byte) error {
	var body struct {
		Error string      `json:"error"`
		Code  domain.Kind `json:"code"`
		Field string      `json:"field"`
	}
	_ = json.Unmarshal(data, &body)

	if body.Code == "" {
		body.Code = kindForStatus(status)
	}
	if body.Error == "" {
		body.Error = fmt.Sprintf("api returned status %d", status)
	}
	return &APIError{Status: status, Code: body.Code, Message: body.Error, Field: body.Field}
}

func kindForStatus(status int) domain.Kind {
	switch status {
	case http.StatusBadRequest:
		return domain.KindValidation
	case http.StatusNotFound:
		return domain.KindNotFound
	case http.StatusConflict:
		return domain.KindReference
	default:
		return domain.KindStore
	}
}
