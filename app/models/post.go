package models

import (
	"encoding/json"
	"errors"
)

// Validate checks if the post meets all validation requirements
func (p *Post) Validate() error {
	if p == nil {
		return errors.New("post cannot be nil")
	}
	return validate.Struct(p)
}

// UnmarshalJSON decodes a post and remembers whether title and body were
// present, so an empty title can be told apart from a missing one.
func (p *Post) UnmarshalJSON(data []byte) error {
	type post Post
	var decoded struct {
		post
		Title *string `json:"title"`
		Body  *string `json:"body"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}

	*p = Post(decoded.post)
	if decoded.Title != nil {
		p.Title = *decoded.Title
	} else {
		p.noTitle = true
	}
	if decoded.Body != nil {
		p.Body = *decoded.Body
	} else {
		p.noBody = true
	}
	return nil
}

// Summary returns the title and body as optional values. A field is nil
// only when the decoded payload did not carry it; an empty string stays
// an empty string.
func (p *Post) Summary() (title, body *string) {
	if p == nil {
		return nil, nil
	}
	if !p.noTitle {
		t := p.Title
		title = &t
	}
	if !p.noBody {
		b := p.Body
		body = &b
	}
	return title, body
}
