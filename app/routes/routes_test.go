package routes

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"postview/app/repositories"
	"postview/app/services"
	"postview/app/view"

	"github.com/dgraph-io/badger/v4"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *badger.DB {
	db, err := repositories.Open("")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = repositories.Seed(
		repositories.NewBadgerPostRepository(db),
		repositories.NewBadgerCommentRepository(db),
	)
	require.NoError(t, err)
	return db
}

func setupTestRouter(t *testing.T, viewService services.PostService) *mux.Router {
	return SetupRoutes(Options{
		DB:          setupTestDB(t),
		ViewService: viewService,
		PostID:      1,
		Timeout:     time.Second,
		Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
}

func TestWebRoutes(t *testing.T) {
	router := setupTestRouter(t, nil)

	t.Run("GET / renders the post page", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "sunt aut facere")
		assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	})

	t.Run("GET /state returns view state", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/state", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"fetching":false`)
	})

	t.Run("GET /health", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/health", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("POST / is not allowed", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	})
}

func TestAPIRoutes(t *testing.T) {
	router := setupTestRouter(t, nil)

	t.Run("GET /api/posts/1", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/posts/1", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	})

	t.Run("POST then GET comments", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/posts/2/comments", strings.NewReader(`{"name":"n","body":"added"}`))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusCreated, w.Code)

		req = httptest.NewRequest("GET", "/api/posts/2/comments", nil)
		w = httptest.NewRecorder()
		router.ServeHTTP(w, req)

		var comments []map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &comments))
		require.Len(t, comments, 2)
		assert.Equal(t, "added", comments[1]["body"])
	})

	t.Run("unknown post id shape", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/posts/abc", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

// The app's own API satisfies the contract HTTPPostService expects, so a
// view can load through it over real HTTP.
func TestViewLoadsThroughOwnAPI(t *testing.T) {
	srv := httptest.NewServer(setupTestRouter(t, nil))
	defer srv.Close()

	client, err := services.NewHTTPPostService(srv.URL+"/api", services.WithHTTPClient(srv.Client()))
	require.NoError(t, err)

	v := view.New(client)
	defer v.Unmount()
	require.NoError(t, <-v.Mount(context.Background()))

	s := v.Snapshot()
	require.NotNil(t, s.Post.Title)
	assert.Equal(t, repositories.SeedPosts[0].Title, *s.Post.Title)
	assert.Len(t, s.Comments, 3)
	assert.False(t, s.Fetching)
}
