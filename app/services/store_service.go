package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"postview/app/models"
	"postview/app/repositories"
)

// StorePostService implements PostService over the local repositories
type StorePostService struct {
	postRepo    repositories.PostRepository
	commentRepo repositories.CommentRepository
}

// NewStorePostService creates a new StorePostService
func NewStorePostService(postRepo repositories.PostRepository, commentRepo repositories.CommentRepository) *StorePostService {
	return &StorePostService{
		postRepo:    postRepo,
		commentRepo: commentRepo,
	}
}

// GetPost retrieves a post by ID
func (s *StorePostService) GetPost(ctx context.Context, id int) (*Response[models.Post], error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	post, err := s.postRepo.GetByID(id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("post %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post %d: %w", id, err)
	}
	return &Response[models.Post]{Status: http.StatusOK, Data: *post}, nil
}

// GetComments lists the comments of a post. Like the public API, an
// unknown post simply has no comments.
func (s *StorePostService) GetComments(ctx context.Context, postID int) (*Response[[]models.Comment], error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	comments, err := s.commentRepo.ListByPost(postID)
	if err != nil {
		return nil, fmt.Errorf("failed to get comments for post %d: %w", postID, err)
	}

	data := make([]models.Comment, 0, len(comments))
	for _, c := range comments {
		data = append(data, *c)
	}
	return &Response[[]models.Comment]{Status: http.StatusOK, Data: data}, nil
}

// ListPosts retrieves a page of posts
func (s *StorePostService) ListPosts(page, perPage int) ([]*models.Post, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}
	return s.postRepo.List(perPage, (page-1)*perPage)
}

// CreatePost validates and stores a post
func (s *StorePostService) CreatePost(post *models.Post) error {
	if err := post.Validate(); err != nil {
		return fmt.Errorf("invalid post: %w", err)
	}
	return s.postRepo.Create(post)
}

// CreateComment validates and stores a comment on an existing post
func (s *StorePostService) CreateComment(comment *models.Comment) error {
	if err := comment.Validate(); err != nil {
		return fmt.Errorf("invalid comment: %w", err)
	}
	if _, err := s.postRepo.GetByID(comment.PostID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("post %d: %w", comment.PostID, ErrNotFound)
		}
		return err
	}
	return s.commentRepo.Create(comment)
}
