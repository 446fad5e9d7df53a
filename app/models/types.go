package models

import (
	"encoding/json"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Post represents a blog post as served by the post service.
type Post struct {
	ID     int    `json:"id" validate:"gte=0"`
	UserID int    `json:"userId" validate:"gte=0"`
	Title  string `json:"title" validate:"required,max=200"`
	Body   string `json:"body" validate:"required"`

	// set when the decoded payload had no title or body key
	noTitle bool
	noBody  bool
}

// Comment represents a comment on a blog post. Views treat it as opaque:
// keys the service sent that Comment does not model are kept in Extra and
// written back out unchanged.
type Comment struct {
	ID     int    `json:"id" validate:"gte=0"`
	PostID int    `json:"postId" validate:"gte=0"`
	Name   string `json:"name" validate:"max=200"`
	Email  string `json:"email" validate:"omitempty,email"`
	Body   string `json:"body" validate:"required,max=2000"`

	Extra map[string]json.RawMessage `json:"-"`
}
