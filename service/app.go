package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"postview/app/config"
	"postview/app/repositories"
	"postview/app/routes"
	"postview/app/services"
	"postview/app/view"

	"github.com/dgraph-io/badger/v4"
)

const shutdownTimeout = 10 * time.Second

// viewService picks the post service the page reads from. In local mode
// it seeds db and reads from it; otherwise db is not used.
func viewService(cfg *config.Config, db *badger.DB, logger *slog.Logger) (services.PostService, error) {
	if cfg.UsesLocalService() {
		if err := seedLocal(db, logger); err != nil {
			return nil, err
		}
		return services.NewStorePostService(
			repositories.NewBadgerPostRepository(db),
			repositories.NewBadgerCommentRepository(db),
		), nil
	}
	client := &http.Client{Timeout: cfg.RequestTimeout}
	return services.NewHTTPPostService(cfg.ServiceURL,
		services.WithHTTPClient(client),
		services.WithLogger(logger),
	)
}

// seedLocal makes sure a fresh local store has something to show
func seedLocal(db *badger.DB, logger *slog.Logger) error {
	created, err := repositories.Seed(
		repositories.NewBadgerPostRepository(db),
		repositories.NewBadgerCommentRepository(db),
	)
	if err != nil {
		return fmt.Errorf("failed to seed store: %w", err)
	}
	if created > 0 {
		logger.Info("seeded local store", "posts", created)
	}
	return nil
}

// RunAppServer serves the post page and the post API until ctx is done,
// then shuts the server down gracefully.
func RunAppServer(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	db, err := repositories.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()

	svc, err := viewService(cfg, db, logger)
	if err != nil {
		return err
	}

	opts := routes.Options{
		DB:      db,
		PostID:  cfg.PostID,
		Timeout: cfg.RequestTimeout,
		Logger:  logger,

		ViewService: svc,
	}
	srv := routes.NewServer(cfg.Addr, routes.SetupRoutes(opts))

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "addr", cfg.Addr, "service", cfg.ServiceURL, "post_id", cfg.PostID)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	logger.Info("server exited")
	return nil
}

// RenderPage loads postID once and writes the rendered page to w. The page
// is written even when the load fails; the load error is returned after.
func RenderPage(ctx context.Context, cfg *config.Config, logger *slog.Logger, postID int, w io.Writer) error {
	var db *badger.DB
	if cfg.UsesLocalService() {
		var err error
		if db, err = repositories.Open(cfg.DBPath); err != nil {
			return err
		}
		defer db.Close()
	}
	svc, err := viewService(cfg, db, logger)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.RequestTimeout)
	defer cancel()

	v := view.New(svc, view.WithPostID(postID), view.WithLogger(logger))
	loadErr := <-v.Mount(ctx)
	v.Unmount()

	if err := v.Render(w); err != nil {
		return err
	}
	return loadErr
}
