package health

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"
)

// State tracks process readiness. The server flips it once the listener is
// bound; until then the probe reports 503 so orchestrators hold traffic.
type State struct {
	mu    sync.RWMutex
	ready bool
}

func NewState() *State {
	return &State{}
}

// SetReady marks the process as ready to serve traffic.
func (s *State) SetReady() {
	s.mu.Lock()
	s.ready = true
	s.mu.Unlock()
}

// Ready reports whether the process has been marked ready.
func (s *State) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

type response struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// Handler returns the readiness probe endpoint. It never touches the
// database.
func Handler(state *State) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		resp := response{Timestamp: time.Now().UTC().Format(time.RFC3339)}
		if state.Ready() {
			resp.Status = "ready"
			w.WriteHeader(http.StatusOK)
		} else {
			resp.Status = "not ready"
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		json.NewEncoder(w).Encode(resp)
	}
}
