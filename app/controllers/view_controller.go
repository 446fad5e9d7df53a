package controllers

import (
	"bytes"
	"context"
	"encoding/hex"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"postview/app/middleware"
	"postview/app/services"
	"postview/app/view"

	"golang.org/x/crypto/blake2b"
)

// ViewController serves the post page. Every request mounts a fresh
// PostView, waits for its load and unmounts it when the response is done.
type ViewController struct {
	service services.PostService
	postID  int
	timeout time.Duration
	logger  *slog.Logger
}

// NewViewController creates a ViewController for postID
func NewViewController(service services.PostService, postID int, timeout time.Duration, logger *slog.Logger) *ViewController {
	return &ViewController{
		service: service,
		postID:  postID,
		timeout: timeout,
		logger:  logger,
	}
}

// load mounts a view and returns its state once the initial load settles
func (vc *ViewController) load(ctx context.Context) (view.State, error) {
	ctx, cancel := context.WithTimeout(ctx, vc.timeout)
	defer cancel()

	logger := vc.logger.With("request_id", middleware.GetRequestID(ctx))
	v := view.New(vc.service, view.WithPostID(vc.postID), view.WithLogger(logger))
	defer v.Unmount()

	err := <-v.Mount(ctx)
	return v.Snapshot(), err
}

// statusFor maps a load error to the page status
func statusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}

// Page renders the post page. A failed load still renders the layout with
// the error shown in the content slot.
func (vc *ViewController) Page(w http.ResponseWriter, r *http.Request) {
	state, err := vc.load(r.Context())
	if errors.Is(err, context.Canceled) && r.Context().Err() != nil {
		// client went away
		return
	}
	status := statusFor(err)

	if wantsJSON(r) {
		sendJSON(w, status, state)
		return
	}

	var buf bytes.Buffer
	if err := view.RenderState(&buf, state); err != nil {
		sendError(w, r, "Template error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	sum := blake2b.Sum256(buf.Bytes())
	etag := `"` + hex.EncodeToString(sum[:16]) + `"`
	w.Header().Set("ETag", etag)
	if status == http.StatusOK && r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

// State returns the view state as JSON
func (vc *ViewController) State(w http.ResponseWriter, r *http.Request) {
	state, err := vc.load(r.Context())
	sendJSON(w, statusFor(err), state)
}

// Health reports liveness
func Health(w http.ResponseWriter, r *http.Request) {
	sendJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
