// Package web exposes the viewer commands over HTTP.
package web

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/mogaika/meshcat_client/logger"
)

type Server struct {
	dispatcher Dispatcher
	status     http.Handler
	metrics    http.Handler
}

// NewServer wires the routes. status and metrics may be nil.
func NewServer(d Dispatcher, status, metrics http.Handler) *Server {
	return &Server{dispatcher: d, status: status, metrics: metrics}
}

func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/object/{path:.*}", s.HandlerSetObject).Methods(http.MethodPost)
	r.HandleFunc("/object/{path:.*}", s.HandlerDelete).Methods(http.MethodDelete)
	r.HandleFunc("/transform/{path:.*}", s.HandlerSetTransform).Methods(http.MethodPost)
	r.HandleFunc("/property/{path:.*}", s.HandlerSetProperty).Methods(http.MethodPost)
	if s.status != nil {
		r.Handle("/ws", s.status)
	}
	if s.metrics != nil {
		r.Handle("/metrics", s.metrics).Methods(http.MethodGet)
	}
	return r
}

func (s *Server) Handler() http.Handler {
	out := logger.Log.Writer()
	h := handlers.RecoveryHandler(handlers.RecoveryLogger(logger.Log))(s.Router())
	return handlers.LoggingHandler(out, h)
}

// StartServer serves until ctx is done and then shuts down gracefully.
func StartServer(ctx context.Context, addr string, s *Server) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Component("web").Infof("Starting server %v", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdown)
	}
}
