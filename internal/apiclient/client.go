// Package apiclient talks to the task API on behalf of a signed-in user.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/taskzen/taskzen/internal/dto"
	"github.com/taskzen/taskzen/internal/models"
	"golang.org/x/oauth2"
)

var (
	// ErrUnauthorized means the session has no token or the API rejected it.
	// The session has already been invalidated.
	ErrUnauthorized = errors.New("session is not authorized")

	ErrInvalidCredentials = errors.New("invalid email or password")
)

// APIError is a non-2xx reply from the task API.
type APIError struct {
	StatusCode int         `json:"-"`
	Code       string      `json:"code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("task API returned %d", e.StatusCode)
	}
	return fmt.Sprintf("task API returned %d: %s", e.StatusCode, e.Message)
}

// Client calls the task API. Requests are never retried.
type Client struct {
	baseURL    string
	session    Session
	httpClient *http.Client
	authClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// New creates a client for the API at baseURL that authenticates with the
// token held by session.
func New(baseURL string, session Session, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		session:    session,
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}

	c.authClient = &http.Client{
		Timeout: c.httpClient.Timeout,
		Transport: &oauth2.Transport{
			Source: sessionTokenSource{session: session},
			Base:   c.httpClient.Transport,
		},
	}
	return c
}

// sessionTokenSource reads the session on every request so a token change is
// picked up without rebuilding the client.
type sessionTokenSource struct {
	session Session
}

func (s sessionTokenSource) Token() (*oauth2.Token, error) {
	token := s.session.Token()
	if token == "" {
		return nil, ErrUnauthorized
	}
	return &oauth2.Token{AccessToken: token, TokenType: "Bearer"}, nil
}

// Login exchanges credentials for a token with the OAuth2 password grant
// and stores it in the session.
func (c *Client) Login(ctx context.Context, email, password string) (*oauth2.Token, error) {
	conf := &oauth2.Config{
		Endpoint: oauth2.Endpoint{
			TokenURL:  c.baseURL + "/auth/token",
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	tok, err := conf.PasswordCredentialsToken(ctx, email, password)
	if err != nil {
		var rerr *oauth2.RetrieveError
		if errors.As(err, &rerr) && rerr.Response != nil {
			if rerr.Response.StatusCode == http.StatusUnauthorized {
				return nil, ErrInvalidCredentials
			}
			return nil, decodeAPIError(rerr.Response.StatusCode, rerr.Body)
		}
		return nil, fmt.Errorf("login request failed: %w", err)
	}

	if err := c.session.SetToken(tok.AccessToken); err != nil {
		return nil, fmt.Errorf("failed to store token: %w", err)
	}
	return tok, nil
}

// Logout revokes the token and clears the session even when the API call
// fails.
func (c *Client) Logout(ctx context.Context) error {
	err := c.do(ctx, http.MethodPost, "/auth/logout", nil, nil, true)
	if ierr := c.session.Invalidate(); ierr != nil {
		log.Printf("Failed to clear session: %v", ierr)
	}
	if errors.Is(err, ErrUnauthorized) {
		return nil
	}
	return err
}

// Me returns the signed-in user.
func (c *Client) Me(ctx context.Context) (models.User, error) {
	var user dto.UserDTO
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &user, true); err != nil {
		return models.User{}, err
	}
	return user.ToModel(), nil
}

// Register creates an account. It does not sign in.
func (c *Client) Register(ctx context.Context, req dto.RegisterRequest) (models.User, error) {
	var user dto.UserDTO
	if err := c.do(ctx, http.MethodPost, "/users/", req, &user, false); err != nil {
		return models.User{}, err
	}
	return user.ToModel(), nil
}

// ListUsers returns the roster.
func (c *Client) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []dto.UserDTO
	if err := c.do(ctx, http.MethodGet, "/users", nil, &users, true); err != nil {
		return nil, err
	}
	result := make([]models.User, 0, len(users))
	for _, u := range users {
		result = append(result, u.ToModel())
	}
	return result, nil
}

// GetUser returns one user.
func (c *Client) GetUser(ctx context.Context, id string) (models.User, error) {
	var user dto.UserDTO
	if err := c.do(ctx, http.MethodGet, "/users/"+url.PathEscape(id), nil, &user, true); err != nil {
		return models.User{}, err
	}
	return user.ToModel(), nil
}

// ListTasks returns every task in creation order.
func (c *Client) ListTasks(ctx context.Context) ([]models.Task, error) {
	var tasks []dto.TaskDTO
	if err := c.do(ctx, http.MethodGet, "/tasks", nil, &tasks, true); err != nil {
		return nil, err
	}
	return dto.ToTaskModels(tasks)
}

// GetTask returns one task.
func (c *Client) GetTask(ctx context.Context, id string) (models.Task, error) {
	var task dto.TaskDTO
	if err := c.do(ctx, http.MethodGet, "/tasks/"+url.PathEscape(id), nil, &task, true); err != nil {
		return models.Task{}, err
	}
	return task.ToModel()
}

// CreateTask stores a new task.
func (c *Client) CreateTask(ctx context.Context, req dto.CreateTaskRequest) (models.Task, error) {
	var task dto.TaskDTO
	if err := c.do(ctx, http.MethodPost, "/tasks", req, &task, true); err != nil {
		return models.Task{}, err
	}
	return task.ToModel()
}

// UpdateTask sends a partial update and returns the stored task.
func (c *Client) UpdateTask(ctx context.Context, id string, req dto.UpdateTaskRequest) (models.Task, error) {
	var task dto.TaskDTO
	if err := c.do(ctx, http.MethodPut, "/tasks/"+url.PathEscape(id), req, &task, true); err != nil {
		return models.Task{}, err
	}
	return task.ToModel()
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}, authenticated bool) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	hc := c.httpClient
	if authenticated {
		hc = c.authClient
	}

	resp, err := hc.Do(req)
	if err != nil {
		if errors.Is(err, ErrUnauthorized) {
			return ErrUnauthorized
		}
		return fmt.Errorf("%s %s failed: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized && authenticated {
		if err := c.session.Invalidate(); err != nil {
			log.Printf("Failed to clear session: %v", err)
		}
		return ErrUnauthorized
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		return decodeAPIError(resp.StatusCode, data)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s %s response: %w", method, path, err)
	}
	return nil
}

func decodeAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: status}
	if err := json.Unmarshal(body, apiErr); err != nil || apiErr.Message == "" {
		apiErr.Message = strings.TrimSpace(string(body))
	}
	return apiErr
}
