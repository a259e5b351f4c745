package http

import (
	"context"
	"net/http"
	"time"

	"github.com/estatemanner/hookrelay/pkg/domain/interfaces"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// config holds internal HTTP server configuration
type config struct {
	addr              string
	maxPayloadSize    int64
	processingTimeout time.Duration
	verboseRequestLog bool
}

// Option is a functional option for Server configuration
type Option func(*config)

// WithAddr sets the server address
func WithAddr(addr string) Option {
	return func(c *config) {
		c.addr = addr
	}
}

// WithMaxPayloadSize limits the accepted webhook body size in bytes.
// Zero disables the limit.
func WithMaxPayloadSize(size int64) Option {
	return func(c *config) {
		c.maxPayloadSize = size
	}
}

// WithProcessingTimeout bounds the processing of a single webhook request.
// Zero leaves the server's own timeouts as the only ceiling.
func WithProcessingTimeout(timeout time.Duration) Option {
	return func(c *config) {
		c.processingTimeout = timeout
	}
}

// WithVerboseRequestLog enables debug logging of raw webhook payloads
func WithVerboseRequestLog(verbose bool) Option {
	return func(c *config) {
		c.verboseRequestLog = verbose
	}
}

// Server represents the HTTP server
type Server struct {
	*http.Server
}

// NewServer creates a new HTTP server
func NewServer(
	ctx context.Context,
	webhookUC interfaces.WebhookUseCase,
	opts ...Option,
) (*Server, error) {
	// Default configuration
	cfg := &config{
		addr: "localhost:8080",
	}

	// Apply options
	for _, opt := range opts {
		opt(cfg)
	}

	router := chi.NewRouter()

	// Global middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(LoggingMiddleware(ctx))
	router.Use(middleware.Recoverer)

	// Health check
	router.Get("/health", handleHealth)

	// Webhook endpoint. All methods are routed to the handler so that the
	// method gate can answer 405 with the accepted method list.
	webhookHandler := NewWebhookHandler(webhookUC)
	webhookHandler.maxPayloadSize = cfg.maxPayloadSize
	webhookHandler.processingTimeout = cfg.processingTimeout
	webhookHandler.verbose = cfg.verboseRequestLog
	router.HandleFunc("/webhook/docker-hub", webhookHandler.Handle)

	server := &Server{
		Server: &http.Server{
			Addr:              cfg.addr,
			Handler:           router,
			ReadHeaderTimeout: 15 * time.Second,
		},
	}

	return server, nil
}
