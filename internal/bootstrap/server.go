package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/Domenick1991/eventra/config"
	"github.com/sirupsen/logrus"
	httpSwagger "github.com/swaggo/http-swagger"
)

const (
	openAPIPath     = "/docs/openapi.json"
	openAPIFile     = "openapi.json"
	shutdownTimeout = 5 * time.Second
)

// Run serves the API (and swagger UI when configured) and blocks until ctx
// is canceled or the server fails.
func Run(ctx context.Context, cfg *config.Config, api http.Handler, log logrus.FieldLogger) error {
	srv := &http.Server{
		Addr:              cfg.HTTP.Address,
		Handler:           NewHandler(cfg.HTTP, api),
		ReadHeaderTimeout: 3 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("address", cfg.HTTP.Address).Info("http server started")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		log.Info("shutting down http server")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}

// NewHandler mounts api at the root and, when SwaggerDir is set, the
// OpenAPI document and swagger UI next to it.
func NewHandler(cfg config.HTTPConfig, api http.Handler) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/", api)

	if cfg.SwaggerDir != "" {
		docPath := filepath.Join(cfg.SwaggerDir, openAPIFile)
		mux.HandleFunc(openAPIPath, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			http.ServeFile(w, r, docPath)
		})
		mux.Handle("/swagger/", httpSwagger.Handler(httpSwagger.URL(openAPIPath)))
	}
	return mux
}
