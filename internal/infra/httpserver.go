package infra

import (
	"context"
	"net/http"
	"time"
)

// HTTPServer wraps http.Server with the timeouts from Config so cmd/api
// only deals with Start and Shutdown.
type HTTPServer struct {
	server *http.Server
}

// NewHTTPServer builds the server for the given handler. Header reads get
// a short fixed timeout independent of the body read timeout, keeping
// slow-loris clients from pinning connections.
func NewHTTPServer(cfg *Config, handler http.Handler) *HTTPServer {
	return &HTTPServer{
		server: &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           handler,
			ReadTimeout:       cfg.HTTPReadTimeout,
			ReadHeaderTimeout: 5 * time.Second,
			WriteTimeout:      cfg.HTTPWriteTimeout,
			IdleTimeout:       cfg.HTTPIdleTimeout,
			MaxHeaderBytes:    1 << 20,
		},
	}
}

// Start blocks serving requests until Shutdown or a listener error.
func (s *HTTPServer) Start() error {
	return s.server.ListenAndServe()
}

// Shutdown stops accepting connections and waits for in-flight requests
// up to the context deadline.
func (s *HTTPServer) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
