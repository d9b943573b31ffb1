// Package web serves a read-only mirror of the display state: a JSON
// snapshot endpoint and a websocket stream pushed when the snapshot
// changes.
package web

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/vortexhw/vortexpanel/internal/controller"
)

const (
	pollInterval = 100 * time.Millisecond
	writeTimeout = 5 * time.Second
)

// Server mirrors the controller's published snapshot over HTTP.
type Server struct {
	addr string
	snap func() controller.Snapshot
	log  zerolog.Logger

	start time.Time

	mu      sync.Mutex
	clients map[*websocket.Conn]bool
}

// NewServer wires a server to a snapshot source, usually
// (*controller.Controller).Snapshot.
func NewServer(addr string, snap func() controller.Snapshot, log zerolog.Logger) *Server {
	return &Server{
		addr:    addr,
		snap:    snap,
		log:     log,
		start:   time.Now(),
		clients: map[*websocket.Conn]bool{},
	}
}

// Router exposes the HTTP surface. Split from Run so tests can drive the
// handlers without a listener.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", s.handleHealth).Methods("GET")
	r.HandleFunc("/state", s.handleState).Methods("GET")
	r.HandleFunc("/ws/frames", s.handleFramesWS).Methods("GET")
	return r
}

// Run serves until the context is cancelled, pushing snapshot changes to
// websocket clients.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{Addr: s.addr, Handler: s.Router()}

	go s.broadcastLoop(ctx)
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.log.Info().Str("addr", s.addr).Msg("mirror server listening")
	err := srv.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := map[string]any{
		"uptime_s": time.Since(s.start).Seconds(),
		"mode":     s.snap().Mode,
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(s.snap())
}

func (s *Server) handleFramesWS(w http.ResponseWriter, r *http.Request) {
	up := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	conn, err := up.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	// Send the current state immediately so a client needs no initial GET.
	// The connection is registered only afterwards: once it is in
	// s.clients the broadcast loop is its sole writer, and gorilla conns
	// do not tolerate concurrent writes.
	if err := s.send(conn, s.snap()); err != nil {
		return
	}
	s.mu.Lock()
	s.clients[conn] = true
	s.mu.Unlock()

	go func() {
		defer func() {
			s.mu.Lock()
			delete(s.clients, conn)
			s.mu.Unlock()
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// broadcastLoop polls the snapshot and pushes it whenever it differs from
// the last one sent. Snapshot is a comparable value type.
func (s *Server) broadcastLoop(ctx context.Context) {
	tick := time.NewTicker(pollInterval)
	defer tick.Stop()
	last := s.snap()
	for {
		select {
		case <-ctx.Done():
			return
		case <-tick.C:
			cur := s.snap()
			if cur == last {
				continue
			}
			last = cur
			s.broadcast(cur)
		}
	}
}

func (s *Server) broadcast(snap controller.Snapshot) {
	s.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(s.clients))
	for c := range s.clients {
		conns = append(conns, c)
	}
	s.mu.Unlock()
	for _, c := range conns {
		s.send(c, snap)
	}
}

func (s *Server) send(conn *websocket.Conn, snap controller.Snapshot) error {
	conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	if err := conn.WriteJSON(snap); err != nil {
		s.log.Debug().Err(err).Msg("mirror client write failed")
		conn.Close()
		s.mu.Lock()
		delete(s.clients, conn)
		s.mu.Unlock()
		return err
	}
	return nil
}
