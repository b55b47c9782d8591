// Package web hosts the tabletop campaign front-end: campaign and character
// management pages plus the assistant transcript.
package web

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/louisbranch/tabletop/internal/platform/logging"
	"github.com/louisbranch/tabletop/internal/platform/timeouts"
	"github.com/louisbranch/tabletop/internal/services/shared/gateway"
	"github.com/louisbranch/tabletop/internal/services/shared/listview"
	"github.com/louisbranch/tabletop/internal/services/shared/restapi"
	"github.com/louisbranch/tabletop/internal/services/shared/structured"
	"github.com/louisbranch/tabletop/internal/services/web/app"
	"github.com/louisbranch/tabletop/internal/services/web/module"
	"github.com/louisbranch/tabletop/internal/services/web/modules/assistant"
	"github.com/louisbranch/tabletop/internal/services/web/modules/campaigns"
	"github.com/louisbranch/tabletop/internal/services/web/modules/characters"
	"github.com/louisbranch/tabletop/internal/services/web/modules/sessions"
	"github.com/louisbranch/tabletop/internal/services/web/platform/httpx"
	"github.com/louisbranch/tabletop/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/tabletop/internal/services/web/transcript"
)

// Config defines the inputs for the web server.
type Config struct {
	HTTPAddr string
	// APIBaseURL is the campaign backend root. Empty starts the server in
	// degraded mode: pages render but every backend call is unavailable.
	APIBaseURL    string
	ArtPathPrefix string
	// APITimeout caps one backend request. Zero keeps timeouts.APIRequest.
	APITimeout time.Duration
	// APIClient overrides the backend transport. It takes precedence over
	// APITimeout.
	APIClient *http.Client
	// TrustForwardedProto honors X-Forwarded-Proto behind a TLS proxy.
	TrustForwardedProto bool
	Logger              *slog.Logger
}

// Server hosts the web HTTP server.
type Server struct {
	httpAddr   string
	httpServer *http.Server
	logger     *slog.Logger
}

// NewServer builds the web server.
func NewServer(cfg Config) (*Server, error) {
	httpAddr := strings.TrimSpace(cfg.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	handler, err := NewHandler(cfg)
	if err != nil {
		return nil, err
	}
	return &Server{
		httpAddr: httpAddr,
		httpServer: &http.Server{
			Addr:              httpAddr,
			Handler:           handler,
			ReadHeaderTimeout: timeouts.ReadHeader,
		},
		logger: logging.OrDiscard(cfg.Logger),
	}, nil
}

// NewHandler composes the root handler from the feature modules.
func NewHandler(cfg Config) (http.Handler, error) {
	logger := logging.OrDiscard(cfg.Logger)
	modules, err := buildModules(cfg, logger)
	if err != nil {
		return nil, err
	}
	base := modulehandler.NewBase(logger)
	return app.Compose(app.ComposeInput{
		Modules: modules,
		Middleware: []func(http.Handler) http.Handler{
			middleware.RealIP,
			httpx.RequestID(),
			httpx.RequestLogger(logger),
			httpx.RecoverPanic(logger),
		},
		Health:              healthHandler(modules),
		NotFound:            base.WriteNotFound,
		TrustForwardedProto: cfg.TrustForwardedProto,
	})
}

func buildModules(cfg Config, logger *slog.Logger) ([]module.Module, error) {
	base := modulehandler.NewBase(logger)
	var (
		gw         gateway.Gateway = gateway.Unavailable{}
		resolveArt func(string) string
	)
	if strings.TrimSpace(cfg.APIBaseURL) != "" {
		httpClient := cfg.APIClient
		if httpClient == nil && cfg.APITimeout > 0 {
			httpClient = &http.Client{Timeout: cfg.APITimeout}
		}
		client, err := restapi.New(restapi.Config{
			BaseURL:       cfg.APIBaseURL,
			ArtPathPrefix: cfg.ArtPathPrefix,
			HTTPClient:    httpClient,
			Logger:        logger.With("component", "restapi"),
		})
		if err != nil {
			return nil, fmt.Errorf("build api client: %w", err)
		}
		gw = gateway.NewREST(client)
		resolveArt = client.ResolveArtURL
	} else {
		logger.Warn("api base url not set; starting degraded")
	}

	dispatcher := structured.New(structured.Config{
		Fetcher:       gw,
		Logger:        logger.With("component", "structured"),
		ResolveArtURL: resolveArt,
	})
	renderer := transcript.New(dispatcher, logger.With("component", "transcript"))

	return []module.Module{
		campaigns.NewWithGateway(gw, base, listview.NewInflightSet()),
		characters.NewWithGateway(gw, base),
		sessions.NewWithGateway(gw, base),
		assistant.NewWithRenderer(renderer, base),
	}, nil
}

// healthHandler answers 200 when every module reports healthy and 503 with
// the degraded module ids otherwise.
func healthHandler(modules []module.Module) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		var degraded []string
		for _, feature := range modules {
			if reporter, ok := feature.(module.HealthReporter); ok && !reporter.Healthy() {
				degraded = append(degraded, feature.ID())
			}
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if len(degraded) > 0 {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = fmt.Fprintf(w, "degraded: %s", strings.Join(degraded, ","))
			return
		}
		_, _ = w.Write([]byte("OK"))
	})
}

// ListenAndServe serves until ctx is canceled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("web server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}

	serveErr := make(chan error, 1)
	s.logger.Info("web listening", "addr", s.httpAddr)
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}

// Close releases server resources immediately.
func (s *Server) Close() {
	if s == nil || s.httpServer == nil {
		return
	}
	if err := s.httpServer.Close(); err != nil {
		s.logger.Warn("close http server", "error", err)
	}
}
