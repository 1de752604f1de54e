package web

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/ministryofjustice/hmpps-contacts-ui-sub001/internal/web/module"
	"github.com/ministryofjustice/hmpps-contacts-ui-sub001/internal/web/modules/contacts"
	"github.com/ministryofjustice/hmpps-contacts-ui-sub001/internal/web/storage"
	"github.com/ministryofjustice/hmpps-contacts-ui-sub001/internal/web/storage/memory"
	"github.com/ministryofjustice/hmpps-contacts-ui-sub001/internal/web/storage/sqlite"
)

// Option customises server construction.
type Option func(*options)

type options struct {
	deps    *module.Dependencies
	gateway contacts.ContactsGateway
	backend storage.SessionStore
}

// WithDependencies overrides the request resolvers shared by mounted modules.
func WithDependencies(deps module.Dependencies) Option {
	return func(o *options) {
		o.deps = &deps
	}
}

// WithGateway overrides the contacts gateway.
func WithGateway(gateway contacts.ContactsGateway) Option {
	return func(o *options) {
		o.gateway = gateway
	}
}

// WithSessionBackend overrides the session store. The server takes ownership
// and closes it on Close.
func WithSessionBackend(backend storage.SessionStore) Option {
	return func(o *options) {
		o.backend = backend
	}
}

// Server hosts the contacts web HTTP server.
type Server struct {
	httpAddr   string
	httpServer *http.Server
	backend    storage.SessionStore
}

// NewServer builds a configured web server.
func NewServer(config Config, opts ...Option) (*Server, error) {
	httpAddr := strings.TrimSpace(config.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	backend := o.backend
	if backend == nil {
		opened, err := openSessionBackend(config)
		if err != nil {
			return nil, err
		}
		backend = opened
	}

	handler, err := newHandler(config, backend, o)
	if err != nil {
		if closeErr := backend.Close(); closeErr != nil {
			log.Printf("close session backend: %v", closeErr)
		}
		return nil, err
	}

	httpServer := &http.Server{
		Addr:              httpAddr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return &Server{
		httpAddr:   httpAddr,
		httpServer: httpServer,
		backend:    backend,
	}, nil
}

// openSessionBackend picks the session store named by the config. An empty
// path keeps journey state in process memory.
func openSessionBackend(config Config) (storage.SessionStore, error) {
	path := strings.TrimSpace(config.SessionStorePath)
	if path == "" {
		return memory.NewStore(), nil
	}
	store, err := sqlite.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}
	return store, nil
}

// ListenAndServe runs the HTTP server until the context ends.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("web server is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	serveErr := make(chan error, 1)
	log.Printf("contacts web listening on %s", s.httpAddr)
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
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

// Close releases the session backend.
func (s *Server) Close() {
	if s == nil || s.backend == nil {
		return
	}
	if err := s.backend.Close(); err != nil {
		log.Printf("close session backend: %v", err)
	}
}
