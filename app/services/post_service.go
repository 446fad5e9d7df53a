package services

import (
	"context"
	"errors"
	"fmt"

	"postview/app/models"
)

// ErrNotFound is returned when the requested post does not exist
var ErrNotFound = errors.New("post not found")

// PostService fetches posts and their comments. Implementations hold no
// state the caller depends on, so one value can serve many views.
type PostService interface {
	GetPost(ctx context.Context, id int) (*Response[models.Post], error)
	GetComments(ctx context.Context, postID int) (*Response[[]models.Comment], error)
}

// Response wraps a payload with the status it was served with
type Response[T any] struct {
	Status int `json:"status"`
	Data   T   `json:"data"`
}

// StatusError reports a non-2xx answer from a remote post service
type StatusError struct {
	Method string
	URL    string
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d", e.Method, e.URL, e.Status)
}
