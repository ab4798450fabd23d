package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/hemantthp85-ai/Civic-1/config"
	"github.com/hemantthp85-ai/Civic-1/internal/auth"
	"github.com/hemantthp85-ai/Civic-1/internal/db"
	"github.com/hemantthp85-ai/Civic-1/internal/events"
	"github.com/hemantthp85-ai/Civic-1/internal/handlers"
	"github.com/hemantthp85-ai/Civic-1/internal/media"
	"github.com/hemantthp85-ai/Civic-1/internal/services"
	"github.com/hemantthp85-ai/Civic-1/internal/store"
)

// Server wraps the HTTP server and its owned resources.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	db         *sql.DB
	publisher  events.Publisher
}

// New constructs a Server with basic middleware and defaults. It fails
// fast on a missing signing secret: there is deliberately no fallback
// value to silently ship into production.
func New(ctx context.Context, cfg config.Config) (*Server, error) {
	jwtSecret := strings.TrimSpace(cfg.JWTSecret)
	if jwtSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	dbConn, err := db.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}

	publisher, err := newPublisher(ctx, cfg.Events)
	if err != nil {
		_ = dbConn.Close()
		return nil, err
	}

	userRepo := store.NewUserRepository(dbConn)
	complaintRepo := store.NewComplaintRepository(dbConn)

	userService := services.NewUserService(userRepo)
	complaintService := services.NewComplaintService(complaintRepo, publisher)

	tokens := auth.NewTokenService(jwtSecret)
	sessions := auth.NewSessionManager(tokens, cfg.IsProduction())

	signer, err := newMediaSigner(ctx, cfg.Media)
	if err != nil {
		_ = publisher.Close()
		_ = dbConn.Close()
		return nil, err
	}

	router := chi.NewRouter()
	router.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
		middleware.Timeout(60*time.Second),
	)
	router.Get("/healthz", handlers.Healthz)
	router.Route("/auth", func(r chi.Router) {
		handlers.AuthRouter(r, userService, sessions)
	})
	router.Route("/complaints", func(r chi.Router) {
		handlers.ComplaintRouter(r, complaintService, sessions)
	})
	if signer != nil {
		router.Route("/media", func(r chi.Router) {
			handlers.MediaRouter(r, signer, sessions)
		})
	}

	port := cfg.ServerPort
	if port == 0 {
		port = 8080
	}

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{
		httpServer: httpServer,
		router:     router,
		db:         dbConn,
		publisher:  publisher,
	}, nil
}

// Router exposes the chi router for route registration.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Start runs the HTTP server.
func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown attempts a graceful shutdown.
func (s *Server) Shutdown() error {
	if s.publisher != nil {
		_ = s.publisher.Close()
	}
	if s.db != nil {
		_ = s.db.Close()
	}
	return s.httpServer.Close()
}

func newPublisher(ctx context.Context, cfg config.EventsConfig) (events.Publisher, error) {
	switch cfg.Backend {
	case "":
		return events.NopPublisher{}, nil
	case "rabbitmq":
		return events.NewRabbitPublisher(cfg.RabbitMQ)
	case "pubsub":
		return events.NewPubSubPublisher(ctx, cfg.PubSub)
	default:
		return nil, fmt.Errorf("unknown events backend %q", cfg.Backend)
	}
}

// newMediaSigner returns nil when no media backend is configured; the
// media routes are simply not mounted in that case.
func newMediaSigner(ctx context.Context, cfg config.MediaConfig) (media.Signer, error) {
	switch cfg.Backend {
	case "":
		return nil, nil
	case "minio":
		signer, err := media.NewMinioSigner(cfg.Minio)
		if err != nil {
			return nil, err
		}
		if err := signer.EnsureBucket(ctx); err != nil {
			return nil, err
		}
		return signer, nil
	case "gcs":
		return media.NewGCSSigner(ctx, cfg.GCS)
	default:
		return nil, fmt.Errorf("unknown media backend %q", cfg.Backend)
	}
}
