package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"postview/app/models"
	"postview/app/services"

	"github.com/gorilla/mux"
)

// PostController serves the post API backed by the local store. Its
// paths and payloads match what HTTPPostService expects, so the app can
// act as its own post service.
type PostController struct {
	postService *services.StorePostService
}

// NewPostController creates a new PostController
func NewPostController(postService *services.StorePostService) *PostController {
	return &PostController{postService: postService}
}

// Index lists posts
func (pc *PostController) Index(w http.ResponseWriter, r *http.Request) {
	page := 1
	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			page = p
		}
	}

	perPage := 10
	if perPageStr := r.URL.Query().Get("per_page"); perPageStr != "" {
		if pp, err := strconv.Atoi(perPageStr); err == nil && pp > 0 {
			perPage = pp
		}
	}

	posts, err := pc.postService.ListPosts(page, perPage)
	if err != nil {
		sendError(w, r, "Failed to fetch posts: "+err.Error(), http.StatusInternalServerError)
		return
	}
	sendJSON(w, http.StatusOK, posts)
}

// Show returns a single post
func (pc *PostController) Show(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		sendError(w, r, "Invalid post ID", http.StatusBadRequest)
		return
	}

	resp, err := pc.postService.GetPost(r.Context(), id)
	if errors.Is(err, services.ErrNotFound) {
		sendError(w, r, "Post not found", http.StatusNotFound)
		return
	}
	if err != nil {
		sendError(w, r, "Failed to fetch post: "+err.Error(), http.StatusInternalServerError)
		return
	}
	sendJSON(w, http.StatusOK, resp.Data)
}

// Comments lists the comments of a post
func (pc *PostController) Comments(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		sendError(w, r, "Invalid post ID", http.StatusBadRequest)
		return
	}

	resp, err := pc.postService.GetComments(r.Context(), id)
	if err != nil {
		sendError(w, r, "Failed to fetch comments: "+err.Error(), http.StatusInternalServerError)
		return
	}
	sendJSON(w, http.StatusOK, resp.Data)
}

// Create stores a new post
func (pc *PostController) Create(w http.ResponseWriter, r *http.Request) {
	var post models.Post
	if err := json.NewDecoder(r.Body).Decode(&post); err != nil {
		sendError(w, r, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	post.ID = 0

	if err := pc.postService.CreatePost(&post); err != nil {
		sendError(w, r, "Failed to create post: "+err.Error(), http.StatusBadRequest)
		return
	}
	sendJSON(w, http.StatusCreated, post)
}

// CreateComment stores a new comment on a post
func (pc *PostController) CreateComment(w http.ResponseWriter, r *http.Request) {
	postID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		sendError(w, r, "Invalid post ID", http.StatusBadRequest)
		return
	}

	var comment models.Comment
	if err := json.NewDecoder(r.Body).Decode(&comment); err != nil {
		sendError(w, r, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	comment.ID = 0
	comment.PostID = postID

	err = pc.postService.CreateComment(&comment)
	if errors.Is(err, services.ErrNotFound) {
		sendError(w, r, "Post not found", http.StatusNotFound)
		return
	}
	if err != nil {
		sendError(w, r, "Failed to create comment: "+err.Error(), http.StatusBadRequest)
		return
	}
	sendJSON(w, http.StatusCreated, comment)
}
