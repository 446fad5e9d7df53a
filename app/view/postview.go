// Package view holds PostView, the component that loads a post together
// with its comments and renders them inside the page layout.
//
// A PostView starts Idle, enters Loading when a load begins and returns to
// Idle when both the post and its comments have arrived. A failed load
// ends in Failed with the error kept in the state. Only the most recent
// load may change the state, and nothing changes after Unmount.
package view

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"postview/app/models"
	"postview/app/services"

	"golang.org/x/sync/errgroup"
)

// DefaultPostID is the post a view loads when mounted
const DefaultPostID = 1

var (
	// ErrUnmounted is returned by operations on an unmounted view
	ErrUnmounted = errors.New("view is unmounted")
	// ErrAlreadyMounted is reported by a second Mount
	ErrAlreadyMounted = errors.New("view is already mounted")
	// ErrSuperseded is returned by a load whose result was dropped
	// because a newer load started after it
	ErrSuperseded = errors.New("load superseded by a newer load")
)

// Listener observes state changes. It receives a private copy of the
// state and is called in mutation order, one call at a time, with no view
// lock held, so it may read the view with Snapshot or Render. It must not
// call Unmount synchronously.
type Listener func(State)

// PostView displays a post and its comments
type PostView struct {
	service services.PostService
	logger  *slog.Logger

	mu        sync.Mutex
	state     State
	gen       uint64
	mounted   bool
	dead      bool
	listeners []Listener

	// pending holds snapshots not yet delivered to listeners. One goroutine
	// at a time drains it, signalling delivered when it stops.
	pending   []State
	draining  bool
	delivered *sync.Cond

	life   context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// Option configures a PostView
type Option func(*PostView)

// WithPostID sets the post loaded on mount
func WithPostID(id int) Option {
	return func(v *PostView) { v.state.PostID = id }
}

// WithLogger sets the view's logger
func WithLogger(l *slog.Logger) Option {
	return func(v *PostView) { v.logger = l }
}

// New creates an Idle view with no post and no comments
func New(service services.PostService, opts ...Option) *PostView {
	v := &PostView{
		service: service,
		logger:  slog.Default(),
		state:   initialState(DefaultPostID),
	}
	v.delivered = sync.NewCond(&v.mu)
	for _, opt := range opts {
		opt(v)
	}
	v.life, v.cancel = context.WithCancel(context.Background())
	return v
}

// Snapshot returns a copy of the current state
func (v *PostView) Snapshot() State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state.clone()
}

// Subscribe registers l for every later state change
func (v *PostView) Subscribe(l Listener) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.listeners = append(v.listeners, l)
}

// Mount starts loading the configured post. It returns once the view is
// Loading; the returned channel yields the outcome of that load and is
// then closed. Only the first Mount loads anything.
func (v *PostView) Mount(ctx context.Context) <-chan error {
	done := make(chan error, 1)

	v.mu.Lock()
	switch {
	case v.dead:
		v.mu.Unlock()
		done <- ErrUnmounted
		close(done)
		return done
	case v.mounted:
		v.mu.Unlock()
		done <- ErrAlreadyMounted
		close(done)
		return done
	}
	v.mounted = true
	postID := v.state.PostID
	v.wg.Add(1)
	v.mu.Unlock()

	gen, lctx, release, err := v.begin(ctx, postID)
	if err != nil {
		v.wg.Done()
		done <- err
		close(done)
		return done
	}

	go func() {
		defer v.wg.Done()
		defer release()
		done <- v.fetch(lctx, gen, postID)
		close(done)
	}()
	return done
}

// LoadPost fetches postID and its comments and applies both to the state
// once the two have arrived. It blocks until then.
func (v *PostView) LoadPost(ctx context.Context, postID int) error {
	gen, lctx, release, err := v.begin(ctx, postID)
	if err != nil {
		return err
	}
	defer release()
	return v.fetch(lctx, gen, postID)
}

// Unmount cancels any load in flight and freezes the state. It waits for
// the load started by Mount to return and for listener deliveries in
// progress to finish, so no listener runs after it returns.
func (v *PostView) Unmount() {
	v.mu.Lock()
	if v.dead {
		v.mu.Unlock()
		return
	}
	v.dead = true
	v.mu.Unlock()

	v.cancel()
	v.wg.Wait()

	v.mu.Lock()
	for v.draining {
		v.delivered.Wait()
	}
	v.mu.Unlock()
	v.logger.Debug("post view unmounted")
}

// begin moves the view to Loading and returns the generation that owns
// the new load and a context that ends with the caller's or the view's
func (v *PostView) begin(ctx context.Context, postID int) (uint64, context.Context, context.CancelFunc, error) {
	var gen uint64
	ok := v.update(func(s *State) bool {
		v.gen++
		gen = v.gen
		s.Fetching = true
		s.Phase = Loading
		s.Err = ""
		return true
	})
	if !ok {
		return 0, nil, nil, ErrUnmounted
	}

	lctx, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(v.life, cancel)
	release := func() {
		stop()
		cancel()
	}

	v.logger.Debug("loading post", "post_id", postID, "generation", gen)
	return gen, lctx, release, nil
}

// fetch requests the post and its comments concurrently. Either failure
// cancels the other request.
func (v *PostView) fetch(ctx context.Context, gen uint64, postID int) error {
	var (
		post     *services.Response[models.Post]
		comments *services.Response[[]models.Comment]
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		resp, err := v.service.GetPost(gctx, postID)
		if err != nil {
			return fmt.Errorf("get post %d: %w", postID, err)
		}
		post = resp
		return nil
	})
	g.Go(func() error {
		resp, err := v.service.GetComments(gctx, postID)
		if err != nil {
			return fmt.Errorf("get comments for post %d: %w", postID, err)
		}
		comments = resp
		return nil
	})

	if err := g.Wait(); err != nil {
		return v.fail(gen, postID, err)
	}
	return v.apply(gen, postID, post, comments)
}

func (v *PostView) apply(gen uint64, postID int, post *services.Response[models.Post], comments *services.Response[[]models.Comment]) error {
	title, body := post.Data.Summary()
	list := cloneComments(comments.Data)

	var stale bool
	ok := v.update(func(s *State) bool {
		if gen != v.gen {
			stale = true
			return false
		}
		s.PostID = postID
		s.Post = PostContent{Title: title, Body: body}
		s.Comments = list
		s.Fetching = false
		s.Phase = Idle
		s.Err = ""
		return true
	})
	switch {
	case stale:
		v.logger.Debug("dropping stale post load", "post_id", postID, "generation", gen)
		return ErrSuperseded
	case !ok:
		return ErrUnmounted
	}

	v.logger.Debug("post loaded", "post_id", postID, "comments", len(list))
	return nil
}

func (v *PostView) fail(gen uint64, postID int, cause error) error {
	var stale bool
	ok := v.update(func(s *State) bool {
		if gen != v.gen {
			stale = true
			return false
		}
		s.Fetching = false
		s.Phase = Failed
		s.Err = cause.Error()
		return true
	})
	switch {
	case stale:
		return ErrSuperseded
	case !ok:
		return ErrUnmounted
	}

	v.logger.Warn("failed to load post", "post_id", postID, "error", cause)
	return cause
}

// update applies fn to the state and queues the result for listeners when
// fn reports a change. It returns false once the view is unmounted.
func (v *PostView) update(fn func(*State) bool) bool {
	v.mu.Lock()
	if v.dead {
		v.mu.Unlock()
		return false
	}
	if !fn(&v.state) {
		v.mu.Unlock()
		return true
	}
	v.pending = append(v.pending, v.state.clone())
	if v.draining {
		v.mu.Unlock()
		return true
	}
	v.draining = true
	v.mu.Unlock()

	v.drain()
	return true
}

// drain delivers queued snapshots in order until the queue is empty
func (v *PostView) drain() {
	for {
		v.mu.Lock()
		if len(v.pending) == 0 {
			v.pending = nil
			v.draining = false
			v.delivered.Broadcast()
			v.mu.Unlock()
			return
		}
		snapshot := v.pending[0]
		v.pending = v.pending[1:]
		listeners := append([]Listener(nil), v.listeners...)
		v.mu.Unlock()

		for _, l := range listeners {
			l(snapshot.clone())
		}
	}
}
