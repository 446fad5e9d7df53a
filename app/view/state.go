package view

import (
	"fmt"

	"postview/app/models"
)

// Phase is the view's load status
type Phase int

const (
	// Idle means no fetch is in flight
	Idle Phase = iota
	// Loading means a combined fetch is in flight
	Loading
	// Failed means the latest fetch returned an error
	Failed
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// MarshalText encodes the phase by name
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// PostContent holds the fields of a post the view displays. Nil means
// not loaded yet.
type PostContent struct {
	Title *string `json:"title"`
	Body  *string `json:"body"`
}

// State is everything a PostView displays
type State struct {
	PostID   int              `json:"postId"`
	Fetching bool             `json:"fetching"`
	Post     PostContent      `json:"post"`
	Comments []models.Comment `json:"comments"`
	Phase    Phase            `json:"phase"`
	Err      string           `json:"error,omitempty"`
}

func initialState(postID int) State {
	return State{
		PostID:   postID,
		Comments: []models.Comment{},
	}
}

// clone copies the state so callers never share its slices or pointers
func (s State) clone() State {
	out := s
	out.Comments = cloneComments(s.Comments)
	if s.Post.Title != nil {
		t := *s.Post.Title
		out.Post.Title = &t
	}
	if s.Post.Body != nil {
		b := *s.Post.Body
		out.Post.Body = &b
	}
	return out
}

func cloneComments(in []models.Comment) []models.Comment {
	out := make([]models.Comment, len(in))
	for i, c := range in {
		out[i] = c.Clone()
	}
	return out
}
