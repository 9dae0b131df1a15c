package api

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/employwise/console/internal/models"
	"github.com/go-resty/resty/v2"
)

// Credentials is the login request body for the remote service
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserFields is the full-record update body. Avatar must carry the
// record's current value: the editor never exposes it, so the caller
// re-attaches the original before submitting or the server-side record
// loses its avatar.
type UserFields struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Avatar    string `json:"avatar"`
}

// UserPage is one server-delivered batch of users. Total may be omitted
// by the server, in which case it decodes as zero.
type UserPage struct {
	Data  []models.User `json:"data"`
	Total int           `json:"total"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// RequestError is returned for any non-success response from the remote
// service. It carries the HTTP status and raw body for diagnostics; the
// views convert it to a fixed display string instead of surfacing either.
type RequestError struct {
	StatusCode int
	Body       string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("remote api request failed: status %d", e.StatusCode)
}

func newRequestError(resp *resty.Response) *RequestError {
	return &RequestError{
		StatusCode: resp.StatusCode(),
		Body:       string(resp.Body()),
	}
}

// Client issues requests against the remote user-management API.
// Every operation is a single attempt: failures are surfaced, never retried.
type Client struct {
	rest   *resty.Client
	logger *slog.Logger
}

// New creates a Client for the given base URL
func New(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	rest := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json").
		SetRetryCount(0)

	return &Client{
		rest:   rest,
		logger: logger,
	}
}

// Login exchanges credentials for an opaque session token via POST /login
func (c *Client) Login(ctx context.Context, creds Credentials) (string, error) {
	var out loginResponse
	resp, err := c.rest.R().
		SetContext(ctx).
		SetBody(creds).
		SetResult(&out).
		Post("/login")
	if err != nil {
		return "", fmt.Errorf("login request: %w", err)
	}
	if resp.IsError() {
		return "", newRequestError(resp)
	}
	return out.Token, nil
}

// ListUsers fetches one page of users via GET /users?page=N (1-indexed)
func (c *Client) ListUsers(ctx context.Context, page int) (UserPage, error) {
	var out UserPage
	resp, err := c.rest.R().
		SetContext(ctx).
		SetQueryParam("page", strconv.Itoa(page)).
		SetResult(&out).
		Get("/users")
	if err != nil {
		return UserPage{}, fmt.Errorf("list users request: %w", err)
	}
	if resp.IsError() {
		return UserPage{}, newRequestError(resp)
	}
	return out, nil
}

// UpdateUser submits a full-record update via PUT /users/{id} and returns
// the server's resulting record
func (c *Client) UpdateUser(ctx context.Context, id int, fields UserFields) (models.User, error) {
	var out models.User
	resp, err := c.rest.R().
		SetContext(ctx).
		SetBody(fields).
		SetResult(&out).
		Put("/users/" + strconv.Itoa(id))
	if err != nil {
		return models.User{}, fmt.Errorf("update user request: %w", err)
	}
	if resp.IsError() {
		return models.User{}, newRequestError(resp)
	}
	if out.ID == 0 {
		out.ID = id
	}
	return out, nil
}

// DeleteUser removes a user via DELETE /users/{id}. The response body is
// not relied upon; any success status is an acknowledgment.
func (c *Client) DeleteUser(ctx context.Context, id int) error {
	resp, err := c.rest.R().
		SetContext(ctx).
		Delete("/users/" + strconv.Itoa(id))
	if err != nil {
		return fmt.Errorf("delete user request: %w", err)
	}
	if resp.IsError() {
		return newRequestError(resp)
	}
	c.logger.Debug("user deleted on remote", slog.Int("user_id", id))
	return nil
}
