package services

import (
	"context"
	"errors"
	"testing"

	"postview/app/models"
	"postview/app/repositories/mock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorePostService(t *testing.T) {
	postRepo := mock.NewPostRepository()
	commentRepo := mock.NewCommentRepository()
	svc := NewStorePostService(postRepo, commentRepo)
	ctx := context.Background()

	t.Run("create post", func(t *testing.T) {
		post := &models.Post{Title: "Test Post", Body: "This is a test post"}
		require.NoError(t, svc.CreatePost(post))
		assert.Equal(t, 1, post.ID)
	})

	t.Run("create invalid post", func(t *testing.T) {
		assert.Error(t, svc.CreatePost(&models.Post{Title: "no body"}))
	})

	t.Run("get post", func(t *testing.T) {
		resp, err := svc.GetPost(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.Status)
		assert.Equal(t, "Test Post", resp.Data.Title)
	})

	t.Run("get missing post", func(t *testing.T) {
		_, err := svc.GetPost(ctx, 42)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("create comment", func(t *testing.T) {
		require.NoError(t, svc.CreateComment(&models.Comment{PostID: 1, Body: "first"}))
		require.NoError(t, svc.CreateComment(&models.Comment{PostID: 1, Body: "second"}))

		err := svc.CreateComment(&models.Comment{PostID: 42, Body: "orphan"})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("get comments", func(t *testing.T) {
		resp, err := svc.GetComments(ctx, 1)
		require.NoError(t, err)
		require.Len(t, resp.Data, 2)
		assert.Equal(t, "first", resp.Data[0].Body)
		assert.Equal(t, "second", resp.Data[1].Body)

		resp, err = svc.GetComments(ctx, 42)
		require.NoError(t, err)
		assert.NotNil(t, resp.Data)
		assert.Empty(t, resp.Data)
	})

	t.Run("list posts", func(t *testing.T) {
		for i := 0; i < 4; i++ {
			require.NoError(t, svc.CreatePost(&models.Post{Title: "List Test Post", Body: "body"}))
		}
		posts, err := svc.ListPosts(1, 3)
		require.NoError(t, err)
		assert.Len(t, posts, 3)

		posts, err = svc.ListPosts(2, 3)
		require.NoError(t, err)
		assert.Len(t, posts, 2)

		posts, err = svc.ListPosts(0, 0)
		require.NoError(t, err)
		assert.Len(t, posts, 5)
	})

	t.Run("canceled context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := svc.GetPost(cctx, 1)
		assert.ErrorIs(t, err, context.Canceled)
		_, err = svc.GetComments(cctx, 1)
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("repository failure", func(t *testing.T) {
		boom := errors.New("disk on fire")
		commentRepo.Err = boom
		defer func() { commentRepo.Err = nil }()

		_, err := svc.GetComments(ctx, 1)
		assert.ErrorIs(t, err, boom)
	})
}
