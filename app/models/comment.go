package models

import (
	"encoding/json"
	"errors"
)

var commentKeys = []string{"id", "postId", "name", "email", "body"}

// Validate checks if the comment meets all validation requirements
func (c *Comment) Validate() error {
	if c == nil {
		return errors.New("comment cannot be nil")
	}
	return validate.Struct(c)
}

// SetPost attaches the comment to a post by ID
func (c *Comment) SetPost(post *Post) error {
	if post == nil {
		return errors.New("post cannot be nil")
	}

	c.PostID = post.ID
	return nil
}

// UnmarshalJSON decodes the known fields and keeps every other key in Extra
func (c *Comment) UnmarshalJSON(data []byte) error {
	type comment Comment
	var known comment
	if err := json.Unmarshal(data, &known); err != nil {
		return err
	}
	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return err
	}
	for _, k := range commentKeys {
		delete(all, k)
	}

	*c = Comment(known)
	c.Extra = nil
	if len(all) > 0 {
		c.Extra = all
	}
	return nil
}

// MarshalJSON writes the id, the known fields that are set and every key
// in Extra.
func (c Comment) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(c.Extra)+len(commentKeys))
	for k, v := range c.Extra {
		out[k] = v
	}
	out["id"] = c.ID
	if c.PostID != 0 {
		out["postId"] = c.PostID
	}
	if c.Name != "" {
		out["name"] = c.Name
	}
	if c.Email != "" {
		out["email"] = c.Email
	}
	if c.Body != "" {
		out["body"] = c.Body
	}
	return json.Marshal(out)
}

// Clone returns a copy that shares no memory with c
func (c Comment) Clone() Comment {
	if c.Extra == nil {
		return c
	}
	extra := make(map[string]json.RawMessage, len(c.Extra))
	for k, v := range c.Extra {
		extra[k] = append(json.RawMessage(nil), v...)
	}
	c.Extra = extra
	return c
}
