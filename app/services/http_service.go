package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"postview/app/models"
)

// DefaultBaseURL is the public service the original view was written against
const DefaultBaseURL = "https://jsonplaceholder.typicode.com"

// maxBodyBytes bounds how much of a response is read
const maxBodyBytes = 4 << 20

// HTTPPostService implements PostService over a JSON HTTP API serving
// GET /posts/{id} and GET /posts/{id}/comments
type HTTPPostService struct {
	baseURL *url.URL
	client  *http.Client
	logger  *slog.Logger
}

// HTTPOption configures an HTTPPostService
type HTTPOption func(*HTTPPostService)

// WithHTTPClient replaces the default client
func WithHTTPClient(c *http.Client) HTTPOption {
	return func(s *HTTPPostService) { s.client = c }
}

// WithLogger sets the logger used for request tracing
func WithLogger(l *slog.Logger) HTTPOption {
	return func(s *HTTPPostService) { s.logger = l }
}

// NewHTTPPostService creates a client for the API rooted at baseURL
func NewHTTPPostService(baseURL string, opts ...HTTPOption) (*HTTPPostService, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid service url %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid service url %q: scheme must be http or https", baseURL)
	}

	s := &HTTPPostService{
		baseURL: u,
		client:  &http.Client{Timeout: 10 * time.Second},
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// GetPost fetches a single post
func (s *HTTPPostService) GetPost(ctx context.Context, id int) (*Response[models.Post], error) {
	var resp Response[models.Post]
	status, err := s.getJSON(ctx, "posts/"+strconv.Itoa(id), &resp.Data)
	if err != nil {
		return nil, err
	}
	resp.Status = status
	return &resp, nil
}

// GetComments fetches the comments of a post
func (s *HTTPPostService) GetComments(ctx context.Context, postID int) (*Response[[]models.Comment], error) {
	var resp Response[[]models.Comment]
	status, err := s.getJSON(ctx, "posts/"+strconv.Itoa(postID)+"/comments", &resp.Data)
	if err != nil {
		return nil, err
	}
	if resp.Data == nil {
		resp.Data = []models.Comment{}
	}
	resp.Status = status
	return &resp, nil
}

func (s *HTTPPostService) getJSON(ctx context.Context, path string, out interface{}) (int, error) {
	target := s.baseURL.JoinPath(path).String()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	res, err := s.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("GET %s: %w", target, err)
	}
	defer res.Body.Close()

	s.logger.Debug("post service request",
		"url", target,
		"status", res.StatusCode,
		"duration", time.Since(start),
	)

	switch {
	case res.StatusCode == http.StatusNotFound:
		return res.StatusCode, fmt.Errorf("GET %s: %w", target, ErrNotFound)
	case res.StatusCode < 200 || res.StatusCode > 299:
		return res.StatusCode, &StatusError{Method: http.MethodGet, URL: target, Status: res.StatusCode}
	}

	if err := json.NewDecoder(io.LimitReader(res.Body, maxBodyBytes)).Decode(out); err != nil {
		return res.StatusCode, fmt.Errorf("GET %s: malformed response: %w", target, err)
	}
	return res.StatusCode, nil
}
