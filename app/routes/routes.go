package routes

import (
	"log/slog"
	"net/http"
	"time"

	"postview/app/controllers"
	"postview/app/middleware"
	"postview/app/repositories"
	"postview/app/services"

	"github.com/dgraph-io/badger/v4"
	"github.com/gorilla/mux"
)

// Options configures SetupRoutes
type Options struct {
	// DB backs the post API
	DB *badger.DB
	// ViewService feeds the page. Nil means the local store.
	ViewService services.PostService
	PostID      int
	Timeout     time.Duration
	Logger      *slog.Logger
}

// SetupRoutes builds the router for the page and the post API
func SetupRoutes(opts Options) *mux.Router {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	store := services.NewStorePostService(
		repositories.NewBadgerPostRepository(opts.DB),
		repositories.NewBadgerCommentRepository(opts.DB),
	)
	viewService := opts.ViewService
	if viewService == nil {
		viewService = store
	}

	postController := controllers.NewPostController(store)
	viewController := controllers.NewViewController(viewService, opts.PostID, opts.Timeout, logger)

	router := mux.NewRouter()

	// Apply global middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Recoverer(logger))

	// Web routes
	router.HandleFunc("/", viewController.Page).Methods("GET")
	router.HandleFunc("/state", viewController.State).Methods("GET")
	router.HandleFunc("/health", controllers.Health).Methods("GET")

	// API routes with JSON content type
	api := router.PathPrefix("/api").Subrouter()
	api.Use(middleware.ContentTypeJSON)

	posts := api.PathPrefix("/posts").Subrouter()
	posts.HandleFunc("", postController.Index).Methods("GET")
	posts.HandleFunc("", postController.Create).Methods("POST")
	posts.HandleFunc("/{id:[0-9]+}", postController.Show).Methods("GET")
	posts.HandleFunc("/{id:[0-9]+}/comments", postController.Comments).Methods("GET")
	posts.HandleFunc("/{id:[0-9]+}/comments", postController.CreateComment).Methods("POST")

	return router
}

// NewServer wraps the router in an http.Server with sane timeouts
func NewServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       time.Minute,
		WriteTimeout:      30 * time.Second,
	}
}
