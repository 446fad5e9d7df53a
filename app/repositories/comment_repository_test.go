package repositories

import (
	"testing"

	"postview/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBadgerCommentRepository(db)

	for i := 0; i < 11; i++ {
		require.NoError(t, repo.Create(&models.Comment{PostID: 1, Name: "n", Body: "comment on one"}))
	}
	require.NoError(t, repo.Create(&models.Comment{PostID: 10, Body: "comment on ten"}))

	t.Run("list by post in id order", func(t *testing.T) {
		comments, err := repo.ListByPost(1)
		require.NoError(t, err)
		require.Len(t, comments, 11)
		for i, c := range comments {
			assert.Equal(t, i+1, c.ID)
			assert.Equal(t, 1, c.PostID)
		}
	})

	t.Run("prefix does not leak across posts", func(t *testing.T) {
		comments, err := repo.ListByPost(10)
		require.NoError(t, err)
		require.Len(t, comments, 1)
		assert.Equal(t, "comment on ten", comments[0].Body)
	})

	t.Run("no comments is empty not nil", func(t *testing.T) {
		comments, err := repo.ListByPost(2)
		require.NoError(t, err)
		assert.NotNil(t, comments)
		assert.Empty(t, comments)
	})

	t.Run("invalid comment", func(t *testing.T) {
		assert.Error(t, repo.Create(&models.Comment{PostID: 1}))
	})
}

func TestSeed(t *testing.T) {
	db := setupTestDB(t)
	posts := NewBadgerPostRepository(db)
	comments := NewBadgerCommentRepository(db)

	created, err := Seed(posts, comments)
	require.NoError(t, err)
	assert.Equal(t, len(SeedPosts), created)

	post, err := posts.GetByID(1)
	require.NoError(t, err)
	assert.Equal(t, SeedPosts[0].Title, post.Title)

	list, err := comments.ListByPost(1)
	require.NoError(t, err)
	assert.Len(t, list, 3)

	t.Run("seeding twice is harmless", func(t *testing.T) {
		created, err := Seed(posts, comments)
		require.NoError(t, err)
		assert.Equal(t, 0, created)

		list, err := comments.ListByPost(1)
		require.NoError(t, err)
		assert.Len(t, list, 3)
	})
}
