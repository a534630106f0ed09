// Package web is the REST and websocket surface over the backend
// contract. Routes mirror what the board client expects; mutation
// handlers publish hub events so connected boards refresh live.
package web

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"

	"taskdeck/internal/backend"
)

type Server struct {
	backend backend.Backend
	hub     *Hub
	log     *logrus.Entry
}

func NewServer(b backend.Backend, hub *Hub, log *logrus.Logger) *Server {
	if log == nil {
		log = logrus.New()
	}
	if hub == nil {
		hub = NewHub(log)
	}
	return &Server{
		backend: b,
		hub:     hub,
		log:     log.WithField("component", "web"),
	}
}

func (s *Server) Hub() *Hub { return s.hub }

// Handler builds the full routed handler, CORS included.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/tasks", s.handleListTasks).Methods(http.MethodGet)
	api.HandleFunc("/tasks", s.handleCreateTask).Methods(http.MethodPost)
	api.HandleFunc("/tasks/{id}", s.handleGetTask).Methods(http.MethodGet)
	api.HandleFunc("/tasks/{id}", s.handleUpdateTask).Methods(http.MethodPut)
	api.HandleFunc("/tasks/{id}", s.handleDeleteTask).Methods(http.MethodDelete)
	api.HandleFunc("/tasks/{id}/status", s.handleUpdateTaskStatus).Methods(http.MethodPatch)

	api.HandleFunc("/users", s.handleListUsers).Methods(http.MethodGet)

	api.HandleFunc("/app-state/{userId}", s.handleGetAppState).Methods(http.MethodGet)
	api.HandleFunc("/app-state/{userId}", s.handleResetAppState).Methods(http.MethodDelete)
	api.HandleFunc("/app-state/{userId}/sort-config", s.handleUpdateSortConfig).Methods(http.MethodPut)
	api.HandleFunc("/app-state/{userId}/sequences", s.handleUpdateSequences).Methods(http.MethodPut)
	api.HandleFunc("/app-state/{userId}/bookmarks/{taskId}", s.handleAddBookmark).Methods(http.MethodPost)
	api.HandleFunc("/app-state/{userId}/bookmarks/{taskId}", s.handleRemoveBookmark).Methods(http.MethodDelete)

	api.HandleFunc("/ws", s.hub.ServeWS).Methods(http.MethodGet)

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut,
			http.MethodPatch, http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders: []string{"Content-Type"},
	})

	return c.Handler(s.logRequests(r))
}

// ListenAndServe runs the server with sane timeouts until it fails.
func (s *Server) ListenAndServe(addr string) error {
	go s.hub.Run()
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	s.log.WithField("addr", addr).Info("listening")
	return srv.ListenAndServe()
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"duration": time.Since(start).String(),
		}).Debug("request")
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
