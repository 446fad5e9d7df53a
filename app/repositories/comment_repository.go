package repositories

import (
	"fmt"

	"postview/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerCommentRepository implements CommentRepository using BadgerDB
type BadgerCommentRepository struct {
	db *badger.DB
}

// NewBadgerCommentRepository creates a new BadgerCommentRepository
func NewBadgerCommentRepository(db *badger.DB) *BadgerCommentRepository {
	return &BadgerCommentRepository{db: db}
}

// Create stores a new comment under its post
func (r *BadgerCommentRepository) Create(comment *models.Comment) error {
	if err := comment.Validate(); err != nil {
		return fmt.Errorf("invalid comment: %w", err)
	}
	return r.db.Update(func(txn *badger.Txn) error {
		if comment.ID == 0 {
			id, err := getNextID(txn, CommentSeqKey)
			if err != nil {
				return err
			}
			comment.ID = id
		} else if err := advanceSequence(txn, CommentSeqKey, comment.ID); err != nil {
			return err
		}

		data, err := marshalEntity(comment)
		if err != nil {
			return err
		}

		// Post ID in the key keeps a post's comments contiguous
		return txn.Set(commentKey(comment.PostID, comment.ID), data)
	})
}

// ListByPost returns the comments of a post in ID order. A post without
// comments yields an empty, non-nil slice.
func (r *BadgerCommentRepository) ListByPost(postID int) ([]*models.Comment, error) {
	comments := []*models.Comment{}
	err := r.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := commentPrefix(postID)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var comment models.Comment
			err := it.Item().Value(func(val []byte) error {
				return unmarshalEntity(val, &comment)
			})
			if err != nil {
				return err
			}
			comments = append(comments, &comment)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return comments, nil
}
