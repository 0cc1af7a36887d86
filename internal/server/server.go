package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/osse101/QRHunt_Go/docs"
	"github.com/osse101/QRHunt_Go/internal/handler"
	"github.com/osse101/QRHunt_Go/internal/member"
	"github.com/osse101/QRHunt_Go/internal/metrics"
	"github.com/osse101/QRHunt_Go/internal/profile"
	"github.com/osse101/QRHunt_Go/internal/redemption"
	"github.com/osse101/QRHunt_Go/internal/sse"
)

// Deps are the services the HTTP surface exposes
type Deps struct {
	Store      handler.Pinger
	Redemption redemption.Service
	Profiles   profile.Service
	Members    member.Service

	// Events is optional; without it /api/v1/events is not served
	Events *sse.Hub
}

// Options configures the HTTP server
type Options struct {
	Port           int
	APIKey         string
	TrustedProxies []string
}

type Server struct {
	httpServer *http.Server
}

// NewRouter builds the chi router with the full middleware stack
func NewRouter(opts Options, deps Deps) chi.Router {
	r := chi.NewRouter()
	detector := NewSuspiciousActivityDetector(nil)

	// Outermost first
	r.Use(SecurityHeadersMiddleware())
	r.Use(loggingMiddleware)
	r.Use(AuthMiddleware(opts.APIKey, opts.TrustedProxies, detector))
	r.Use(RateLimitMiddleware(opts.TrustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(MaxRequestBodyBytes))
	r.Use(metrics.Middleware)

	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(deps.Store))
	r.Get("/version", handler.HandleVersion())
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(IdentityMiddleware)

		r.Post("/redeem", handler.HandleRedeem(deps.Redemption))
		r.Get("/inventory", handler.HandleGetInventory(deps.Redemption))
		r.Get("/catalog", handler.HandleGetCatalog(deps.Redemption))
		r.Get("/members", handler.HandleGetMembers(deps.Members))

		r.Get("/profile", handler.HandleGetProfile(deps.Profiles))
		r.Post("/profile", handler.HandleEnsureProfile(deps.Profiles))

		if deps.Events != nil {
			r.Get("/events", sse.Handler(deps.Events, handler.IdentityFromContext))
		}
	})

	return r
}

// NewServer creates a new Server instance
func NewServer(opts Options, deps Deps) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", opts.Port),
			Handler:           NewRouter(opts, deps),
			ReadHeaderTimeout: ReadHeaderTimeout,
		},
	}
}

// Start serves until Stop is called
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
