// Package server exposes one editing session over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/kakehashi-asia/auditreport/pagination"
	"github.com/kakehashi-asia/auditreport/render"
	auditmiddleware "github.com/kakehashi-asia/auditreport/server/middleware"
	"github.com/kakehashi-asia/auditreport/session"
)

type WebAPI struct {
	router          *chi.Mux
	logger          *zerolog.Logger
	server          *http.Server
	shutdownTimeout time.Duration
}

type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	// MaxBodyBytes limits request bodies; 0 means 8 MiB.
	MaxBodyBytes  int64
	ViewOptions   []pagination.Option
	RenderOptions []render.Option
}

func NewWebAPI(logger zerolog.Logger, sess *session.Session, config Config) *WebAPI {
	if config.MaxBodyBytes <= 0 {
		config.MaxBodyBytes = 8 << 20
	}
	if config.ShutdownTimeout <= 0 {
		config.ShutdownTimeout = 10 * time.Second
	}
	h := &handler{
		sess:       sess,
		viewOpts:   config.ViewOptions,
		renderOpts: config.RenderOptions,
		maxBody:    config.MaxBodyBytes,
	}

	router := chi.NewRouter()

	router.Use(auditmiddleware.Logger(&logger))
	router.Use(middleware.Recoverer)

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/document", h.getDocument)
		r.Put("/document", h.putDocument)
		r.Patch("/document/fields", h.updateField)
		r.Post("/document/lists/{list}", h.insertEntry)
		r.Delete("/document/lists/{list}/index/{index}", h.removeAt)
		r.Delete("/document/lists/{list}/id/{id}", h.removeByID)
		r.Put("/document/logo", h.setLogo)
		r.Delete("/document/logo", h.clearLogo)
		r.Get("/view", h.getView)
		r.Get("/pages", h.getPages)
		r.Get("/report.pdf", h.getReport)
	})

	return &WebAPI{
		router:          router,
		logger:          &logger,
		shutdownTimeout: config.ShutdownTimeout,
		server: &http.Server{
			Addr:              config.Addr,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Handler returns the routed handler, for tests and embedding.
func (w *WebAPI) Handler() http.Handler {
	return w.router
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (w *WebAPI) Start(ctx context.Context) error {
	serverErrors := make(chan error, 1)

	go func() {
		w.logger.Info().Str("addr", w.server.Addr).Msg("starting server")
		serverErrors <- w.server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		w.logger.Info().Msg("shutdown initiated")

		// Give outstanding requests a deadline for completion.
		sctx, cancel := context.WithTimeout(context.Background(), w.shutdownTimeout)
		defer cancel()

		err := w.server.Shutdown(sctx)
		if err != nil {
			w.logger.Error().Err(err).Msg("graceful shutdown failed")
			err = w.server.Close()
		}

		if err != nil {
			return err
		}
	}

	return nil
}
