// Package web exposes a running scene over HTTP: inspection as JSON,
// input as POST actions, exports as downloads and rendered frames over a
// websocket.
package web

import (
	"context"
	"log"
	"net/http"
	"os"
	"path"
	"sync"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/mogaika/orrery/render"
	"github.com/mogaika/orrery/scene"
	"github.com/mogaika/orrery/status"
)

// Server serializes every access to the scene behind one mutex: key
// handlers, animation ticks and frame renders never interleave.
type Server struct {
	mu    sync.Mutex
	scene *scene.Context
	hub   *status.Hub

	router *mux.Router
}

// FrameSummary is what /json/frame returns and what the hub broadcasts.
type FrameSummary struct {
	Scene string            `json:"scene"`
	Frame int               `json:"frame"`
	Step  int               `json:"step"`
	Time  time.Time         `json:"time"`
	Calls []render.DrawCall `json:"calls"`
	Error string            `json:"error,omitempty"`
}

// NewServer routes requests to ctx. A nil hub disables /ws/frames.
// Static files are served from webPath/data when webPath is not empty.
func NewServer(ctx *scene.Context, hub *status.Hub, webPath string) *Server {
	s := &Server{scene: ctx, hub: hub}

	r := mux.NewRouter()
	r.HandleFunc("/json/scene", s.HandlerJsonScene).Methods(http.MethodGet)
	r.HandleFunc("/json/keys", s.HandlerJsonKeys).Methods(http.MethodGet)
	r.HandleFunc("/json/node/{id}", s.HandlerJsonNode).Methods(http.MethodGet)
	r.HandleFunc("/json/frame", s.HandlerJsonFrame).Methods(http.MethodGet)
	r.HandleFunc("/action/key/{key}", s.HandlerActionKey).Methods(http.MethodPost)
	r.HandleFunc("/action/step", s.HandlerActionStep).Methods(http.MethodPost)
	r.HandleFunc("/action/node/{name}", s.HandlerActionNode).Methods(http.MethodPost)
	r.HandleFunc("/export/gltf", s.HandlerExportGltf).Methods(http.MethodGet)
	r.HandleFunc("/export/fbx", s.HandlerExportFbx).Methods(http.MethodGet)
	r.HandleFunc("/export/scene", s.HandlerExportScene).Methods(http.MethodGet)
	if hub != nil {
		r.Handle("/ws/frames", hub)
	}
	if webPath != "" {
		r.PathPrefix("/").Handler(http.FileServer(http.Dir(path.Join(webPath, "data"))))
	}
	s.router = r
	return s
}

func (s *Server) Handler() http.Handler {
	h := handlers.RecoveryHandler(handlers.PrintRecoveryStack(true))(s.router)
	return handlers.LoggingHandler(os.Stdout, h)
}

// Tick advances the animations by one step and renders a frame.
func (s *Server) Tick() FrameSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.scene.Step(); err != nil {
		log.Printf("[web] Step error: %v", err)
	}
	return s.frameLocked()
}

// frameLocked renders a frame and publishes it. Render failures are
// reported in the summary; the scene is left as it was.
func (s *Server) frameLocked() FrameSummary {
	calls, err := s.scene.Frame()
	summary := FrameSummary{
		Scene: s.scene.Name,
		Frame: s.scene.Frames(),
		Step:  s.scene.Steps(),
		Time:  time.Now(),
		Calls: calls,
	}
	if err != nil {
		log.Printf("[web] Frame skipped: %v", err)
		summary.Error = err.Error()
	}
	if s.hub != nil {
		if err := s.hub.Publish(summary); err != nil {
			log.Printf("[web] Publish error: %v", err)
		}
	}
	return summary
}

// Run serves until ctx is done.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.Handler()}

	errc := make(chan error, 1)
	go func() {
		log.Printf("[web] Starting server %v", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return errors.Wrap(err, "listen")
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if s.hub != nil {
		s.hub.Close()
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "shutdown")
	}
	return nil
}
