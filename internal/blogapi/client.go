package blogapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/five82/bloglist/internal/version"
)

// API defines the remote operations the synchronization layer depends on.
// This interface is implemented by *Client and can be used for testing.
type API interface {
	SetToken(token string)
	FetchPosts(ctx context.Context) ([]Post, error)
	CreatePost(ctx context.Context, post NewPost) (Post, error)
	UpdatePost(ctx context.Context, id string, body any) (Post, error)
	DeletePost(ctx context.Context, id string) error
	AddComment(ctx context.Context, id, comment string) error
	FetchAuthors(ctx context.Context) ([]Author, error)
	Login(ctx context.Context, creds Credentials) (LoginResponse, error)
}

// Ensure Client implements API at compile time.
var _ API = (*Client)(nil)

// ErrUnauthorized matches responses with status 401 or 403.
var ErrUnauthorized = errors.New("unauthorized")

// StatusError reports an API response with status >= 400.
type StatusError struct {
	Method string
	Path   string
	Code   int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("api %s %s returned status %d", e.Method, e.Path, e.Code)
}

// Is reports auth failures as ErrUnauthorized.
func (e *StatusError) Is(target error) bool {
	return target == ErrUnauthorized && (e.Code == http.StatusUnauthorized || e.Code == http.StatusForbidden)
}

// Client talks to the blog-list HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	log       *zap.Logger

	mu    sync.RWMutex
	token string
}

const (
	defaultBaseURL = "http://localhost:3003"
	requestTimeout = 5 * time.Second

	postsPath   = "/api/blogs"
	authorsPath = "/api/users"
	loginPath   = "/api/login"
)

// Option customises a Client.
type Option func(*Client)

// WithTimeout overrides the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithLogger attaches a logger for request tracing.
func WithLogger(log *zap.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// NewClient builds a Client for the API rooted at baseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: version.UserAgent(),
		log:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// SetToken sets the bearer token used for post mutations. An empty token
// removes the Authorization header.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = strings.TrimSpace(token)
}

// FetchPosts retrieves every post.
func (c *Client) FetchPosts(ctx context.Context) ([]Post, error) {
	var payload []Post
	if err := c.do(ctx, http.MethodGet, postsPath, nil, false, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// CreatePost creates a post owned by the logged-in user.
func (c *Client) CreatePost(ctx context.Context, post NewPost) (Post, error) {
	var created Post
	if err := c.do(ctx, http.MethodPost, postsPath, post, true, &created); err != nil {
		return Post{}, err
	}
	return created, nil
}

// UpdatePost issues PUT /api/blogs/{id}. A nil body sends no payload.
func (c *Client) UpdatePost(ctx context.Context, id string, body any) (Post, error) {
	if strings.TrimSpace(id) == "" {
		return Post{}, fmt.Errorf("post id required")
	}
	var updated Post
	if err := c.do(ctx, http.MethodPut, postPath(id), body, true, &updated); err != nil {
		return Post{}, err
	}
	return updated, nil
}

// DeletePost removes a post.
func (c *Client) DeletePost(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("post id required")
	}
	return c.do(ctx, http.MethodDelete, postPath(id), nil, true, nil)
}

// AddComment appends a comment to a post. Comments are anonymous.
func (c *Client) AddComment(ctx context.Context, id, comment string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("post id required")
	}
	return c.do(ctx, http.MethodPost, postPath(id)+"/comments", commentRequest{Comment: comment}, false, nil)
}

// FetchAuthors retrieves every registered user with their posts.
func (c *Client) FetchAuthors(ctx context.Context) ([]Author, error) {
	var payload []Author
	if err := c.do(ctx, http.MethodGet, authorsPath, nil, false, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, creds Credentials) (LoginResponse, error) {
	var payload LoginResponse
	if err := c.do(ctx, http.MethodPost, loginPath, creds, false, &payload); err != nil {
		return LoginResponse{}, err
	}
	if strings.TrimSpace(payload.Token) == "" {
		return LoginResponse{}, fmt.Errorf("login response has no token")
	}
	return payload, nil
}

func postPath(id string) string {
	return postsPath + "/" + strings.TrimSpace(id)
}

func (c *Client) do(ctx context.Context, method, path string, body any, auth bool, dest any) error {
	reqURL := c.baseURL.ResolveReference(&url.URL{Path: path})

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth {
		c.mu.RLock()
		token := c.token
		c.mu.RUnlock()
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug("api request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.String("request_id", requestID),
			zap.Error(err),
		)
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.log.Debug("api request",
		zap.String("method", method),
		zap.String("path", path),
		zap.String("request_id", requestID),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)

	if resp.StatusCode >= 400 {
		return &StatusError{Method: method, Path: path, Code: resp.StatusCode}
	}
	if dest == nil {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		// PUT and POST acks may legitimately come back empty.
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = defaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api url %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse api url %q: missing host", raw)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
