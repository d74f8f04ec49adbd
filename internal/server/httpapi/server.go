// Package httpapi exposes the service over HTTP: registration, login, and
// the authenticated, owner-scoped case routes.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/supportcase/internal/logging"
	"github.com/dmitrijs2005/supportcase/internal/server/services"
)

type HTTPServer struct {
	address   string
	users     *services.UserService
	cases     *services.CaseService
	logger    logging.Logger
	jwtSecret []byte
}

func NewHTTPServer(a string, l logging.Logger, us *services.UserService, cs *services.CaseService, secretKey string) *HTTPServer {
	return &HTTPServer{
		address:   a,
		logger:    l.With("module", "http_server"),
		users:     us,
		cases:     cs,
		jwtSecret: []byte(secretKey),
	}
}

// Handler builds the route table. Only the /api/cases routes sit behind the
// auth middleware; register and login must stay reachable without a token.
func (s *HTTPServer) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/ping", s.ping)
	mux.HandleFunc("POST /api/register", s.register)
	mux.HandleFunc("POST /api/login", s.login)

	mux.Handle("GET /api/cases", s.requireAuth(http.HandlerFunc(s.listCases)))
	mux.Handle("POST /api/cases", s.requireAuth(http.HandlerFunc(s.createCase)))
	mux.Handle("PUT /api/cases/{id}", s.requireAuth(http.HandlerFunc(s.updateCase)))
	mux.Handle("DELETE /api/cases/{id}", s.requireAuth(http.HandlerFunc(s.deleteCase)))

	return s.logRequests(mux)
}

func (s *HTTPServer) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:         s.address,
		Handler:      s.Handler(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
